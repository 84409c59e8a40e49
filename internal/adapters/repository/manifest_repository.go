package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/kamal-hamza/unpack-cli/internal/core/domain"
)

// ManifestFilename is the manifest's name inside the destination directory
const ManifestFilename = domain.ManifestFilename

// FileManifestRepository stores the manifest as JSON next to the unpacked assets
type FileManifestRepository struct {
	manifestPath string
	mu           sync.RWMutex
	manifest     *domain.Manifest
}

// NewFileManifestRepository creates a repository for the manifest in dir
func NewFileManifestRepository(dir string) *FileManifestRepository {
	return &FileManifestRepository{
		manifestPath: filepath.Join(dir, ManifestFilename),
	}
}

// Path returns the manifest file location
func (r *FileManifestRepository) Path() string {
	return r.manifestPath
}

// Load reads the manifest from disk
func (r *FileManifestRepository) Load() (*domain.Manifest, error) {
	if err := r.ensureLoaded(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked(), nil
}

// ensureLoaded fills the cache under the write lock, once. Readers then only
// need the read lock.
func (r *FileManifestRepository) ensureLoaded() error {
	r.mu.RLock()
	loaded := r.manifest != nil
	r.mu.RUnlock()
	if loaded {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked()
}

// loadLocked populates the cache once. A missing file is an empty manifest.
func (r *FileManifestRepository) loadLocked() error {
	if r.manifest != nil {
		return nil
	}

	m := domain.NewManifest()
	data, err := os.ReadFile(r.manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			r.manifest = m
			return nil
		}
		return fmt.Errorf("failed to read manifest: %w", err)
	}

	if err := json.Unmarshal(data, m); err != nil {
		return fmt.Errorf("failed to parse manifest: %w", err)
	}
	if m.Assets == nil {
		m.Assets = make(map[string]domain.UnpackedAsset)
	}

	r.manifest = m
	return nil
}

func (r *FileManifestRepository) snapshotLocked() *domain.Manifest {
	cp := &domain.Manifest{
		Assets:    make(map[string]domain.UnpackedAsset, len(r.manifest.Assets)),
		LastRunID: r.manifest.LastRunID,
		LastRunAt: r.manifest.LastRunAt,
	}
	for k, v := range r.manifest.Assets {
		cp.Assets[k] = v
	}
	return cp
}

// Record persists an unpacked asset to the manifest
func (r *FileManifestRepository) Record(ctx context.Context, asset domain.UnpackedAsset) error {
	if err := domain.ValidateAssetName(asset.Name); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.loadLocked(); err != nil {
		return err
	}

	r.manifest.Assets[asset.Name] = asset
	return r.flushLocked()
}

// MarkRun stamps the manifest with the last completed run
func (r *FileManifestRepository) MarkRun(ctx context.Context, runID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.loadLocked(); err != nil {
		return err
	}

	r.manifest.LastRunID = runID
	r.manifest.LastRunAt = at
	return r.flushLocked()
}

// flushLocked writes the cache to disk
func (r *FileManifestRepository) flushLocked() error {
	data, err := json.MarshalIndent(r.manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.manifestPath), 0755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}

	return os.WriteFile(r.manifestPath, data, 0644)
}

// Get retrieves the record for an asset
func (r *FileManifestRepository) Get(ctx context.Context, name string) (*domain.UnpackedAsset, error) {
	if err := r.ensureLoaded(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	asset, ok := r.manifest.Assets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotUnpacked, name)
	}
	return &asset, nil
}

// List returns all records sorted by name
func (r *FileManifestRepository) List(ctx context.Context) ([]domain.UnpackedAsset, error) {
	if err := r.ensureLoaded(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	assets := make([]domain.UnpackedAsset, 0, len(r.manifest.Assets))
	for _, a := range r.manifest.Assets {
		assets = append(assets, a)
	}
	sort.Slice(assets, func(i, j int) bool {
		return assets[i].Name < assets[j].Name
	})
	return assets, nil
}
