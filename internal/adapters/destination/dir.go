package destination

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kamal-hamza/unpack-cli/internal/core/domain"
	"github.com/kamal-hamza/unpack-cli/internal/core/ports"
	"github.com/kamal-hamza/unpack-cli/pkg/checksum"
)

// Dir writes assets into a single directory on disk
type Dir struct {
	root string
	perm os.FileMode
}

// NewDir creates a destination rooted at root
func NewDir(root string) *Dir {
	return &Dir{root: root, perm: 0644}
}

// Root returns the destination directory
func (d *Dir) Root() string {
	return d.root
}

// Ensure creates the destination directory if it doesn't exist
func (d *Dir) Ensure() error {
	if err := os.MkdirAll(d.root, 0755); err != nil {
		return fmt.Errorf("failed to create destination %s: %w", d.root, err)
	}
	return nil
}

// Path returns the full path for an asset
func (d *Dir) Path(name string) string {
	return filepath.Join(d.root, name)
}

// Checksum returns the checksum of the asset currently on disk
func (d *Dir) Checksum(name string) (string, error) {
	if err := domain.ValidateAssetName(name); err != nil {
		return "", err
	}
	return checksum.File(d.Path(name))
}

// Create opens a temp file next to the final path. The asset only appears
// at Path(name) once the returned file is committed.
func (d *Dir) Create(name string) (ports.PendingFile, error) {
	if err := domain.ValidateAssetName(name); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(d.root, "."+name+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}

	return &pendingFile{
		file:   tmp,
		target: d.Path(name),
		perm:   d.perm,
	}, nil
}

type pendingFile struct {
	file   *os.File
	target string
	perm   os.FileMode
	done   bool
}

func (p *pendingFile) Write(b []byte) (int, error) {
	return p.file.Write(b)
}

// Commit flushes the temp file and renames it over the target
func (p *pendingFile) Commit() error {
	if p.done {
		return errors.New("pending file already finalized")
	}
	p.done = true

	if err := p.file.Sync(); err != nil {
		p.cleanup()
		return fmt.Errorf("failed to sync %s: %w", p.target, err)
	}
	if err := p.file.Close(); err != nil {
		os.Remove(p.file.Name())
		return fmt.Errorf("failed to close %s: %w", p.target, err)
	}
	if err := os.Chmod(p.file.Name(), p.perm); err != nil {
		os.Remove(p.file.Name())
		return fmt.Errorf("failed to set permissions on %s: %w", p.target, err)
	}
	if err := os.Rename(p.file.Name(), p.target); err != nil {
		os.Remove(p.file.Name())
		return fmt.Errorf("failed to move %s into place: %w", p.target, err)
	}
	return nil
}

// Abort discards the temp file. Calling it after Commit is a no-op.
func (p *pendingFile) Abort() error {
	if p.done {
		return nil
	}
	p.done = true
	return p.cleanup()
}

func (p *pendingFile) cleanup() error {
	closeErr := p.file.Close()
	if err := os.Remove(p.file.Name()); err != nil && !os.IsNotExist(err) {
		return err
	}
	if closeErr != nil && !errors.Is(closeErr, os.ErrClosed) {
		return closeErr
	}
	return nil
}
