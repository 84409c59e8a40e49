package source

import (
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/kamal-hamza/unpack-cli/internal/core/domain"
)

//go:embed bundle
var bundleFS embed.FS

// FSSource exposes the root of an fs.FS as a read-only asset store
type FSSource struct {
	fsys fs.FS
	name string
}

// New wraps fsys. name is used to identify the store in logs.
func New(fsys fs.FS, name string) *FSSource {
	return &FSSource{fsys: fsys, name: name}
}

// Bundled returns the asset store compiled into the binary
func Bundled() *FSSource {
	sub, err := fs.Sub(bundleFS, "bundle")
	if err != nil {
		// fs.Sub only fails for an invalid directory name
		panic(err)
	}
	return New(sub, "bundled")
}

// Dir returns an asset store backed by a directory on disk
func Dir(path string) *FSSource {
	return New(os.DirFS(path), path)
}

// Describe returns the store name
func (s *FSSource) Describe() string {
	return s.name
}

// List returns the regular files at the store root, sorted by name
func (s *FSSource) List(ctx context.Context) ([]domain.Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to list assets in %s: %w", s.name, err)
	}

	assets := make([]domain.Asset, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		asset := domain.Asset{Name: entry.Name()}
		if info, err := entry.Info(); err == nil {
			asset.Size = info.Size()
		}
		assets = append(assets, asset)
	}

	return assets, nil
}

// Open opens the named asset for reading
func (s *FSSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := domain.ValidateAssetName(name); err != nil {
		return nil, err
	}

	f, err := s.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open asset %s: %w", name, err)
	}
	return f, nil
}
