package appdir

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_XDG(t *testing.T) {
	data := t.TempDir()
	conf := t.TempDir()
	t.Setenv("XDG_DATA_HOME", data)
	t.Setenv("XDG_CONFIG_HOME", conf)
	t.Setenv("APPDATA", "")

	d, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"RootPath", d.RootPath, filepath.Join(data, "unpack")},
		{"FilesPath", d.FilesPath, filepath.Join(data, "unpack", "files")},
		{"ConfigPath", d.ConfigPath, filepath.Join(conf, "unpack", "config.yaml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestNew_AppData(t *testing.T) {
	appData := t.TempDir()
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("APPDATA", appData)

	d, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.RootPath != filepath.Join(appData, "unpack") {
		t.Errorf("RootPath = %q", d.RootPath)
	}
	if d.ConfigPath != filepath.Join(appData, "unpack-config", "config.yaml") {
		t.Errorf("ConfigPath = %q", d.ConfigPath)
	}
}

func TestNew_HomeFallback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("APPDATA", "")
	t.Setenv("HOME", home)

	d, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.RootPath != filepath.Join(home, ".local", "share", "unpack") {
		t.Errorf("RootPath = %q", d.RootPath)
	}
	if d.ConfigPath != filepath.Join(home, ".config", "unpack", "config.yaml") {
		t.Errorf("ConfigPath = %q", d.ConfigPath)
	}
}

func TestDirs_InitializeAndExists(t *testing.T) {
	root := filepath.Join(t.TempDir(), "unpack")
	d := &Dirs{
		RootPath:  root,
		FilesPath: filepath.Join(root, "files"),
	}

	if d.Exists() {
		t.Fatal("expected Exists() to be false before Initialize")
	}

	if err := d.Initialize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !d.Exists() {
		t.Error("expected Exists() to be true after Initialize")
	}
	if info, err := os.Stat(d.FilesPath); err != nil || !info.IsDir() {
		t.Errorf("files directory not created: %v", err)
	}

	// Idempotent
	if err := d.Initialize(); err != nil {
		t.Errorf("second Initialize failed: %v", err)
	}
}

func TestDirs_Exists_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unpack")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	d := &Dirs{RootPath: path}
	if d.Exists() {
		t.Error("a regular file should not count as an initialized data directory")
	}
}
