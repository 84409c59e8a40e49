package mocks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/kamal-hamza/unpack-cli/internal/core/domain"
)

// MockAssetSource is an in-memory asset store with failure injection
type MockAssetSource struct {
	mu       sync.Mutex
	files    map[string][]byte
	ListErr  error
	OpenErrs map[string]error
	ReadErrs map[string]error // Returned by Read after the first chunk

	opened []string
	live   int
}

// NewMockAssetSource creates a store holding files
func NewMockAssetSource(files map[string]string) *MockAssetSource {
	m := &MockAssetSource{
		files:    make(map[string][]byte, len(files)),
		OpenErrs: make(map[string]error),
		ReadErrs: make(map[string]error),
	}
	for name, content := range files {
		m.files[name] = []byte(content)
	}
	return m
}

func (m *MockAssetSource) Describe() string { return "mock" }

func (m *MockAssetSource) List(ctx context.Context) ([]domain.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListErr != nil {
		return nil, m.ListErr
	}

	assets := make([]domain.Asset, 0, len(m.files))
	for name, data := range m.files {
		assets = append(assets, domain.Asset{Name: name, Size: int64(len(data))})
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].Name < assets[j].Name })
	return assets, nil
}

func (m *MockAssetSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.opened = append(m.opened, name)
	if err := m.OpenErrs[name]; err != nil {
		return nil, err
	}
	data, ok := m.files[name]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", name, os.ErrNotExist)
	}

	var r io.Reader = bytes.NewReader(data)
	if err := m.ReadErrs[name]; err != nil {
		r = &failingReader{r: r, err: err}
	}
	m.live++
	return &trackedReader{Reader: r, onClose: m.markClosed}, nil
}

// Opened returns the names passed to Open, in call order
func (m *MockAssetSource) Opened() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.opened...)
}

// OpenReaders returns how many opened readers have not been closed
func (m *MockAssetSource) OpenReaders() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.live
}

func (m *MockAssetSource) markClosed() {
	m.mu.Lock()
	m.live--
	m.mu.Unlock()
}

type trackedReader struct {
	io.Reader
	onClose func()
}

func (t *trackedReader) Close() error {
	t.onClose()
	return nil
}

// failingReader returns one chunk of data and then err
type failingReader struct {
	r    io.Reader
	err  error
	read bool
}

func (f *failingReader) Read(p []byte) (int, error) {
	if f.read {
		return 0, f.err
	}
	f.read = true
	if len(p) > 4 {
		p = p[:4]
	}
	return f.r.Read(p)
}
