package ports

import (
	"context"
	"io"
	"time"

	"github.com/kamal-hamza/unpack-cli/internal/core/domain"
)

// AssetSource defines the port for the read-only bundled asset store
type AssetSource interface {
	// List returns the files at the root of the store (directories excluded)
	List(ctx context.Context) ([]domain.Asset, error)

	// Open opens an asset by name for reading
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Describe returns a human readable name for the store, used in logs
	Describe() string
}

// Destination defines the port for the writable directory assets are copied into
type Destination interface {
	// Ensure creates the destination directory if it doesn't exist
	Ensure() error

	// Path returns the full path an asset is written to
	Path(name string) string

	// Create opens a pending file for name. Commit makes it visible at
	// Path(name); Abort discards it. Exactly one of them must be called.
	Create(name string) (PendingFile, error)

	// Checksum returns the content checksum of the current file at Path(name)
	Checksum(name string) (string, error)
}

// PendingFile is a destination file that becomes visible only on Commit
type PendingFile interface {
	io.Writer
	Commit() error
	Abort() error
}

// ManifestRepository defines the port for the record of unpacked assets
type ManifestRepository interface {
	// Load reads the manifest, returning an empty one if none exists
	Load() (*domain.Manifest, error)

	// Record adds or replaces the record for an unpacked asset
	Record(ctx context.Context, asset domain.UnpackedAsset) error

	// Get retrieves the record for an asset by name
	Get(ctx context.Context, name string) (*domain.UnpackedAsset, error)

	// List returns all records sorted by name
	List(ctx context.Context) ([]domain.UnpackedAsset, error)

	// MarkRun stamps the manifest with the last completed run
	MarkRun(ctx context.Context, runID string, at time.Time) error
}
