package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidAssetName is returned for names that cannot be written as a
	// single file inside the destination directory
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrNotUnpacked is returned when an asset has no manifest record
	ErrNotUnpacked = errors.New("asset has not been unpacked")

	// ErrReservedName is returned for assets that would overwrite the manifest
	ErrReservedName = errors.New("asset name is reserved")
)

// ManifestFilename is the manifest's name inside the destination directory
const ManifestFilename = ".manifest.json"

// Asset represents a single entry at the root of the bundled asset store
type Asset struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// UnpackedAsset is the manifest record for an asset copied to the destination
type UnpackedAsset struct {
	Name       string    `json:"name"`
	Checksum   string    `json:"checksum"` // xxhash64, hex encoded
	Size       int64     `json:"size"`
	UnpackedAt time.Time `json:"unpacked_at"`
	RunID      string    `json:"run_id"`
}

// Manifest tracks what has been written into the destination directory
type Manifest struct {
	Assets    map[string]UnpackedAsset `json:"assets"`
	LastRunID string                   `json:"last_run_id,omitempty"`
	LastRunAt time.Time                `json:"last_run_at,omitempty"`
}

// NewManifest creates an empty manifest
func NewManifest() *Manifest {
	return &Manifest{
		Assets: make(map[string]UnpackedAsset),
	}
}

// HasRun reports whether at least one unpack run has completed
func (m *Manifest) HasRun() bool {
	return m.LastRunID != ""
}

// MatchesExtension reports whether name ends with ext.
// The comparison is case-sensitive and an empty ext matches every name.
func MatchesExtension(name, ext string) bool {
	return strings.HasSuffix(name, ext)
}

// IsReservedName reports whether name collides with a file the destination
// keeps for itself
func IsReservedName(name string) bool {
	return name == ManifestFilename
}

// ValidateAssetName checks that name refers to a plain file at the store root
func ValidateAssetName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidAssetName, name)
	}
	return nil
}
