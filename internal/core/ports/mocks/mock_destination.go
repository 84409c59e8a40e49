package mocks

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/kamal-hamza/unpack-cli/internal/core/ports"
	"github.com/kamal-hamza/unpack-cli/pkg/checksum"
)

// MockDestination keeps committed files in memory
type MockDestination struct {
	mu         sync.Mutex
	files      map[string][]byte
	EnsureErr  error
	CreateErrs map[string]error
	CommitErrs map[string]error

	ensures int
	creates int
	aborted int
}

// NewMockDestination creates an empty destination
func NewMockDestination() *MockDestination {
	return &MockDestination{
		files:      make(map[string][]byte),
		CreateErrs: make(map[string]error),
		CommitErrs: make(map[string]error),
	}
}

func (m *MockDestination) Ensure() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensures++
	return m.EnsureErr
}

// Ensures returns how many times Ensure was called
func (m *MockDestination) Ensures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ensures
}

func (m *MockDestination) Path(name string) string { return "/mock/files/" + name }

func (m *MockDestination) Checksum(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.files[name]
	if !ok {
		return "", fmt.Errorf("checksum %s: %w", name, os.ErrNotExist)
	}
	return checksum.Bytes(data), nil
}

func (m *MockDestination) Create(name string) (ports.PendingFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.CreateErrs[name]; err != nil {
		return nil, err
	}
	m.creates++
	return &mockPendingFile{dest: m, name: name}, nil
}

// Put stores a file directly, bypassing Create
func (m *MockDestination) Put(name, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = []byte(content)
}

// File returns the committed content for name
func (m *MockDestination) File(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[name]
	return string(data), ok
}

// Files returns a copy of every committed file, keyed by name
func (m *MockDestination) Files() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.files))
	for k, v := range m.files {
		out[k] = string(v)
	}
	return out
}

// Creates returns how many pending files were opened
func (m *MockDestination) Creates() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creates
}

// Aborted returns how many pending files were discarded
func (m *MockDestination) Aborted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.aborted
}

type mockPendingFile struct {
	dest *MockDestination
	name string
	buf  bytes.Buffer
	done bool
}

func (p *mockPendingFile) Write(b []byte) (int, error) {
	if p.done {
		return 0, errors.New("write after finalize")
	}
	return p.buf.Write(b)
}

func (p *mockPendingFile) Commit() error {
	p.dest.mu.Lock()
	defer p.dest.mu.Unlock()

	if p.done {
		return errors.New("already finalized")
	}
	p.done = true
	if err := p.dest.CommitErrs[p.name]; err != nil {
		p.dest.aborted++
		return err
	}
	p.dest.files[p.name] = append([]byte(nil), p.buf.Bytes()...)
	return nil
}

func (p *mockPendingFile) Abort() error {
	p.dest.mu.Lock()
	defer p.dest.mu.Unlock()

	if p.done {
		return nil
	}
	p.done = true
	p.dest.aborted++
	return nil
}
