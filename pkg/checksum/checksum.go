// Package checksum computes content fingerprints for unpacked assets.
package checksum

import (
	"fmt"
	"hash"
	"io"
	"os"

	xxhash "github.com/cespare/xxhash/v2"
)

// New returns a streaming hasher whose Sum matches Format
func New() hash.Hash64 {
	return xxhash.New()
}

// Format renders a 64-bit digest as the fixed-width hex string stored in manifests
func Format(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}

// Bytes returns the checksum of b
func Bytes(b []byte) string {
	return Format(xxhash.Sum64(b))
}

// Reader returns the checksum of everything read from r
func Reader(r io.Reader) (string, int64, error) {
	h := xxhash.New()
	n, err := io.Copy(h, r)
	if err != nil {
		return "", n, err
	}
	return Format(h.Sum64()), n, nil
}

// File returns the checksum of the file at path
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sum, _, err := Reader(f)
	return sum, err
}
