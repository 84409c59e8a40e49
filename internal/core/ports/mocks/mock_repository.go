package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kamal-hamza/unpack-cli/internal/core/domain"
)

// MockManifestRepository is an in-memory implementation of ManifestRepository
type MockManifestRepository struct {
	mu        sync.RWMutex
	manifest  *domain.Manifest
	LoadErr   error
	RecordErr error
}

// NewMockManifestRepository creates an empty manifest repository
func NewMockManifestRepository() *MockManifestRepository {
	return &MockManifestRepository{manifest: domain.NewManifest()}
}

func (m *MockManifestRepository) Load() (*domain.Manifest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	cp := &domain.Manifest{
		Assets:    make(map[string]domain.UnpackedAsset, len(m.manifest.Assets)),
		LastRunID: m.manifest.LastRunID,
		LastRunAt: m.manifest.LastRunAt,
	}
	for k, v := range m.manifest.Assets {
		cp.Assets[k] = v
	}
	return cp, nil
}

func (m *MockManifestRepository) Record(ctx context.Context, asset domain.UnpackedAsset) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RecordErr != nil {
		return m.RecordErr
	}
	m.manifest.Assets[asset.Name] = asset
	return nil
}

func (m *MockManifestRepository) Get(ctx context.Context, name string) (*domain.UnpackedAsset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	asset, ok := m.manifest.Assets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotUnpacked, name)
	}
	return &asset, nil
}

func (m *MockManifestRepository) List(ctx context.Context) ([]domain.UnpackedAsset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	assets := make([]domain.UnpackedAsset, 0, len(m.manifest.Assets))
	for _, a := range m.manifest.Assets {
		assets = append(assets, a)
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].Name < assets[j].Name })
	return assets, nil
}

func (m *MockManifestRepository) MarkRun(ctx context.Context, runID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.manifest.LastRunID = runID
	m.manifest.LastRunAt = at
	return nil
}
