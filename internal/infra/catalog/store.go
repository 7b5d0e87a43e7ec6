package catalog

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/T3chfalcon/offsec-radar/internal/domain"
)

const reloadDebounce = 200 * time.Millisecond

// Store serves the current curated dataset. It starts from the embedded
// fixture (or an on-disk override) and, when an override path is set, hot
// reloads it on file change.
type Store struct {
	logger *zap.Logger
	loader *Loader
	path   string

	state atomic.Value // []domain.ToolRecord
}

// NewStore loads the dataset and returns a ready store. An empty path means
// embedded-only with no watching.
func NewStore(logger *zap.Logger, path string) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	loader := NewLoader(logger)

	var tools []domain.ToolRecord
	var err error
	if path != "" {
		tools, err = loader.LoadFile(path)
	} else {
		tools, err = loader.LoadEmbedded()
	}
	if err != nil {
		return nil, err
	}

	store := &Store{
		logger: logger.Named("catalog_store"),
		loader: loader,
		path:   path,
	}
	store.state.Store(tools)
	return store, nil
}

// Tools returns the current dataset. Callers must not mutate the slice.
func (s *Store) Tools() []domain.ToolRecord {
	return s.state.Load().([]domain.ToolRecord)
}

// Watch hot reloads the override file until ctx is done. No-op without an
// override path.
func (s *Store) Watch(ctx context.Context) {
	if s.path == "" {
		return
	}
	go s.runWatcher(ctx)
}

func (s *Store) reload() {
	tools, err := s.loader.LoadFile(s.path)
	if err != nil {
		s.logger.Warn("curated dataset reload failed", zap.Error(err))
		return
	}
	s.state.Store(tools)
	s.logger.Info("curated dataset reloaded", zap.Int("tools", len(tools)))
}

func (s *Store) runWatcher(ctx context.Context) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		s.logger.Warn("dataset watcher failed", zap.Error(err))
		return
	}
	defer watcher.Close()

	if err := watcher.Add(s.path); err != nil {
		s.logger.Warn("dataset watcher add failed", zap.String("path", s.path), zap.Error(err))
		return
	}

	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-watcher.Errors:
			if err != nil {
				s.logger.Warn("dataset watcher error", zap.Error(err))
			}
		case event := <-watcher.Events:
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(reloadDebounce)
		case <-timerChan(timer):
			timer = nil
			s.reload()
		}
	}
}

func timerChan(timer *time.Timer) <-chan time.Time {
	if timer == nil {
		return nil
	}
	return timer.C
}
