// Package watch re-runs a callback whenever a chat export on disk changes.
//
// The parent directory is watched rather than the file, so editors and
// sync clients that save by writing a temp file and renaming it over the
// export are followed. Bursts of events are debounced, and content already
// handled within the dedupe window is skipped.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/bimmerbailey/parley/internal/logging"
	"github.com/fsnotify/fsnotify"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	DefaultDebounce  = 250 * time.Millisecond
	DefaultDedupeTTL = 10 * time.Minute
)

// Options configures the watcher behavior.
type Options struct {
	Path      string                                          // Path to the export
	Debounce  time.Duration                                   // Quiet period before content is read
	DedupeTTL time.Duration                                   // How long a content digest is remembered
	OnChange  func(ctx context.Context, content []byte) error // Called with each new content
	Logger    *zap.Logger                                     // Defaults to the logger carried by the Run context
}

// Watcher follows one export file.
type Watcher struct {
	opts   Options
	path   string
	seen   *gocache.Cache
	logger *zap.Logger
}

// New creates a new Watcher with the given options.
func New(opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.DedupeTTL <= 0 {
		opts.DedupeTTL = DefaultDedupeTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		opts:   opts,
		path:   filepath.Clean(opts.Path),
		seen:   gocache.New(opts.DedupeTTL, opts.DedupeTTL),
		logger: logger,
	}
}

// Run processes the current content, then every change until ctx is
// cancelled or OnChange returns an error.
func (w *Watcher) Run(ctx context.Context) error {
	if w.opts.OnChange == nil {
		return errors.New("watch: OnChange is required")
	}
	if w.opts.Logger == nil {
		w.logger = logging.FromContext(ctx)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}

	if err := w.process(ctx); err != nil {
		return err
	}

	timer := time.NewTimer(w.opts.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return fmt.Errorf("watcher closed unexpectedly")
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				timer.Reset(w.opts.Debounce)
				continue
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				w.logger.Debug("export moved away", zap.String("path", w.path), zap.String("op", event.Op.String()))
			}

		case <-timer.C:
			if err := w.process(ctx); err != nil {
				return err
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// process reads the export and hands it to OnChange unless the same
// content was handled within the dedupe window.
func (w *Watcher) process(ctx context.Context) error {
	data, err := os.ReadFile(w.path)
	if errors.Is(err, fs.ErrNotExist) {
		w.logger.Debug("export not present yet", zap.String("path", w.path))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", w.path, err)
	}

	digest := Digest(data)
	if _, found := w.seen.Get(digest); found {
		w.logger.Debug("content unchanged", zap.String("digest", digest[:12]))
		return nil
	}
	w.seen.Set(digest, time.Now(), gocache.DefaultExpiration)

	w.logger.Debug("content changed", zap.String("digest", digest[:12]), zap.Int("bytes", len(data)))
	return w.opts.OnChange(ctx, data)
}

// Digest returns the hex SHA-256 of content.
func Digest(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
