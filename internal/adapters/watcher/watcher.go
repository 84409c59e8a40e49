// Package watcher re-runs a callback when matching files in a directory change.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/kamal-hamza/unpack-cli/internal/core/domain"
	"github.com/kamal-hamza/unpack-cli/pkg/logging"
)

// DefaultDebounce is the quiet period used when none is given
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches a single directory (non-recursive) for new or rewritten
// files ending with an extension. Bursts of events collapse into one call.
type Watcher struct {
	dir      string
	ext      string
	debounce time.Duration
	onChange func(ctx context.Context, changed []string)
	logger   *zap.Logger
}

// New creates a watcher for dir. onChange runs on the watcher's goroutine
// with the names that changed since the previous call, in arrival order.
func New(dir, ext string, debounce time.Duration, onChange func(ctx context.Context, changed []string), logger *zap.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		dir:      dir,
		ext:      ext,
		debounce: debounce,
		onChange: onChange,
		logger:   logging.OrNop(logger).With(zap.String("dir", dir)),
	}
}

// Run blocks until ctx is done or the underlying watcher fails to start.
// Cancellation is not an error.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.logger.Debug("Watching", zap.String("extension", w.ext), zap.Duration("debounce", w.debounce))

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	var (
		pending []string
		seen    = make(map[string]bool)
	)

	for {
		select {
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			name, ok := w.relevant(event)
			if !ok {
				continue
			}
			w.logger.Debug("Change detected", zap.String("asset", name), zap.Stringer("op", event.Op))
			if !seen[name] {
				seen[name] = true
				pending = append(pending, name)
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := pending
			pending = nil
			seen = make(map[string]bool)
			w.onChange(ctx, changed)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", zap.Error(err))

		case <-ctx.Done():
			w.logger.Debug("Watcher stopped")
			return nil
		}
	}
}

// relevant reports whether event should trigger an unpack, and the asset name
func (w *Watcher) relevant(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}

	name := filepath.Base(event.Name)
	if isScratchFile(name) || domain.IsReservedName(name) {
		return "", false
	}
	if domain.ValidateAssetName(name) != nil || !domain.MatchesExtension(name, w.ext) {
		return "", false
	}
	return name, true
}

// isScratchFile matches pending destination writes (.<name>.*.tmp) and the
// swap and backup files editors leave next to the file being saved
func isScratchFile(name string) bool {
	switch {
	case strings.HasPrefix(name, ".") && strings.HasSuffix(name, ".tmp"):
		return true
	case strings.HasPrefix(name, ".") && (strings.HasSuffix(name, ".swp") || strings.HasSuffix(name, ".swx")):
		return true
	case strings.HasPrefix(name, "~") || strings.HasSuffix(name, "~"):
		return true
	case strings.HasPrefix(name, ".#"), name == "4913":
		return true
	}
	return false
}
