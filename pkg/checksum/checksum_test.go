package checksum

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestFormat_FixedWidth(t *testing.T) {
	if got := Format(0x1); got != "0000000000000001" {
		t.Errorf("Format(1) = %q, want zero padded 16 chars", got)
	}
	if got := len(Format(^uint64(0))); got != 16 {
		t.Errorf("Format(max) length = %d, want 16", got)
	}
}

func TestReader_MatchesBytes(t *testing.T) {
	content := []byte("client\ndev tun\nproto udp\n")

	sum, n, err := Reader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != int64(len(content)) {
		t.Errorf("expected %d bytes read, got %d", len(content), n)
	}
	if sum != Bytes(content) {
		t.Errorf("Reader checksum %s != Bytes checksum %s", sum, Bytes(content))
	}
}

func TestNew_StreamingMatchesBytes(t *testing.T) {
	content := []byte("remote vpn.example.com 1194")

	h := New()
	h.Write(content[:10])
	h.Write(content[10:])

	if got := Format(h.Sum64()); got != Bytes(content) {
		t.Errorf("streaming checksum %s != %s", got, Bytes(content))
	}
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.ovpn")
	content := []byte("verb 3")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	sum, err := File(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum != Bytes(content) {
		t.Errorf("File checksum mismatch: %s != %s", sum, Bytes(content))
	}

	if _, err := File(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBytes_DiffersOnContent(t *testing.T) {
	if Bytes([]byte("a")) == Bytes([]byte("b")) {
		t.Error("different content should produce different checksums")
	}
}
