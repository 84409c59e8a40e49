package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatcher_Run(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	calls := make(chan []string, 4)

	w := New(dir, ".ovpn", 50*time.Millisecond, func(ctx context.Context, changed []string) {
		calls <- changed
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "home.ovpn"), []byte("remote a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "home.ovpn"), []byte("remote b"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	select {
	case changed := <-calls:
		assert.Equal(t, []string{"home.ovpn"}, changed)
	case <-time.After(5 * time.Second):
		t.Fatal("onChange was not called")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWatcher_Run_MissingDir(t *testing.T) {
	defer goleak.VerifyNone(t)

	w := New(filepath.Join(t.TempDir(), "missing"), ".ovpn", 0, func(context.Context, []string) {}, nil)
	err := w.Run(context.Background())
	assert.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	w := New("/tmp", "", 0, nil, nil)
	assert.Equal(t, DefaultDebounce, w.debounce)
	assert.NotNil(t, w.logger)
}

func TestWatcher_Relevant(t *testing.T) {
	w := New("/assets", ".ovpn", 0, nil, nil)

	tests := []struct {
		name  string
		event fsnotify.Event
		want  string
		ok    bool
	}{
		{"create", fsnotify.Event{Name: "/assets/home.ovpn", Op: fsnotify.Create}, "home.ovpn", true},
		{"write", fsnotify.Event{Name: "/assets/home.ovpn", Op: fsnotify.Write}, "home.ovpn", true},
		{"remove", fsnotify.Event{Name: "/assets/home.ovpn", Op: fsnotify.Remove}, "", false},
		{"chmod", fsnotify.Event{Name: "/assets/home.ovpn", Op: fsnotify.Chmod}, "", false},
		{"other extension", fsnotify.Event{Name: "/assets/ca.crt", Op: fsnotify.Create}, "", false},
		{"dot-named asset", fsnotify.Event{Name: "/assets/.vpn.ovpn", Op: fsnotify.Create}, ".vpn.ovpn", true},
		{"pending destination write", fsnotify.Event{Name: "/assets/.home.ovpn.123.tmp", Op: fsnotify.Create}, "", false},
		{"backup", fsnotify.Event{Name: "/assets/~home.ovpn", Op: fsnotify.Write}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := w.relevant(tt.event)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsScratchFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{".home.ovpn.4821.tmp", true},
		{".home.ovpn.swp", true},
		{".home.ovpn.swx", true},
		{"home.ovpn~", true},
		{"~home.ovpn", true},
		{".#home.ovpn", true},
		{"4913", true},
		{".vpn.ovpn", false},
		{"home.ovpn", false},
		{"notes.tmp", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isScratchFile(tt.name))
		})
	}
}
