package elements

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/stoich/pkg/formula"
)

// Source hands out element table snapshots. A file-backed Source can reload
// its table; callers that already hold a snapshot keep using it.
type Source struct {
	path    string
	current atomic.Pointer[formula.Table]
	logger  *slog.Logger

	onReload func(*formula.Table)
}

// NewStaticSource returns a Source that always yields tbl.
func NewStaticSource(tbl *formula.Table) *Source {
	s := &Source{logger: slog.New(slog.DiscardHandler)}
	s.current.Store(tbl)
	return s
}

// NewFileSource loads path and returns a Source that can reload it.
func NewFileSource(path string, logger *slog.Logger) (*Source, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Source{path: path, logger: logger}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Table returns the current snapshot.
func (s *Source) Table() *formula.Table {
	return s.current.Load()
}

// Path returns the backing file, or "" for a static source.
func (s *Source) Path() string {
	return s.path
}

// Reload re-reads the backing file. On error the previous table stays active.
func (s *Source) Reload() error {
	if s.path == "" {
		return nil
	}
	tbl, err := LoadFile(s.path)
	if err != nil {
		return err
	}
	s.current.Store(tbl)
	s.logger.Info("element table loaded", "path", s.path, "elements", tbl.Len())
	if s.onReload != nil {
		s.onReload(tbl)
	}
	return nil
}

// OnReload registers fn to run after every successful reload. It must be
// called before Watch starts.
func (s *Source) OnReload(fn func(*formula.Table)) {
	s.onReload = fn
}

// Watch reloads the backing file whenever it changes, until ctx is done.
// The parent directory is watched so editors that replace the file are seen.
func (s *Source) Watch(ctx context.Context) error {
	if s.path == "" {
		<-ctx.Done()
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	target, err := filepath.Abs(s.path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if err := s.Reload(); err != nil {
				s.logger.Warn("element table reload failed, keeping previous table", "path", s.path, "error", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("element watcher error", "error", err)
		}
	}
}
