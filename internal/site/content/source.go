package content

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Source serves the current content. It starts from a file when one is
// given and from the embedded default otherwise.
type Source struct {
	path    string
	logger  *slog.Logger
	current atomic.Pointer[Content]

	mu      sync.Mutex
	watcher *fsnotify.Watcher
}

// NewSource loads path, or the embedded content when path is empty.
func NewSource(path string, logger *slog.Logger) (*Source, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Source{path: path, logger: logger}

	if path == "" {
		s.current.Store(Default())
		return s, nil
	}

	c, err := s.load()
	if err != nil {
		return nil, err
	}
	s.current.Store(c)
	logger.Info("content loaded", slog.String("path", path), slog.Int("teams", len(c.Teams)))
	return s, nil
}

// Current returns the latest successfully loaded content.
func (s *Source) Current() *Content {
	return s.current.Load()
}

func (s *Source) load() (*Content, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read content %s: %w", s.path, err)
	}
	// Truncation shows up as a write before the new bytes land.
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("content %s: empty file", s.path)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", s.path, err)
	}
	return c, nil
}

// Watch reloads the file whenever it changes until ctx is done. A file that
// fails to parse is logged and the previous content stays live. onChange,
// when set, runs after each successful reload.
func (s *Source) Watch(ctx context.Context, onChange func(*Content)) error {
	if s.path == "" {
		return fmt.Errorf("content: nothing to watch without a file")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	// Watch the directory so editors that replace the file are seen.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.watcher = watcher
	s.mu.Unlock()

	s.logger.Info("watching content file for changes", slog.String("path", s.path))

	target := filepath.Clean(s.path)
	go func() {
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				s.logger.Debug("content watch stopped")
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}

				c, err := s.load()
				if err != nil {
					s.logger.Error("failed to reload content",
						slog.String("error", err.Error()),
						slog.String("path", s.path))
					continue
				}
				s.current.Store(c)
				s.logger.Info("content reloaded", slog.String("path", s.path))

				if onChange != nil {
					onChange(c)
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Error("content watch error", slog.String("error", err.Error()))
			}
		}
	}()

	return nil
}

// Close stops watching.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watcher != nil {
		err := s.watcher.Close()
		s.watcher = nil
		return err
	}
	return nil
}
