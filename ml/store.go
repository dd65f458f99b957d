package ml

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Loaded is one immutable model snapshot.
type Loaded struct {
	Model    Regressor
	Type     string
	Path     string
	LoadedAt time.Time
}

// Store owns the process-wide model. Snapshots are never mutated; a reload
// swaps in a new one.
type Store struct {
	modelType string
	path      string
	schema    []string
	logger    *zap.Logger
	debounce  time.Duration

	current atomic.Pointer[Loaded]

	mu        sync.Mutex
	listeners []func(*Loaded)
}

// NewStore loads the artifact and verifies it was trained on schema.
func NewStore(modelType, path string, schema []string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		modelType: modelType,
		path:      path,
		schema:    schema,
		logger:    logger,
		debounce:  200 * time.Millisecond,
	}
	loaded, err := s.load()
	if err != nil {
		return nil, err
	}
	s.current.Store(loaded)
	logger.Info("model loaded",
		zap.String("type", modelType),
		zap.String("path", path),
		zap.Strings("features", loaded.Model.Features()))
	return s, nil
}

func (s *Store) load() (*Loaded, error) {
	model, err := LoadModel(s.modelType, s.path)
	if err != nil {
		return nil, err
	}
	if err := CheckSchema(s.schema, model.Features()); err != nil {
		return nil, fmt.Errorf("model %s: %w", s.path, err)
	}
	return &Loaded{
		Model:    model,
		Type:     s.modelType,
		Path:     s.path,
		LoadedAt: time.Now(),
	}, nil
}

func (s *Store) Current() (*Loaded, error) {
	loaded := s.current.Load()
	if loaded == nil {
		return nil, ErrNotLoaded
	}
	return loaded, nil
}

func (s *Store) Predict(row Row) (float64, error) {
	loaded, err := s.Current()
	if err != nil {
		return 0, err
	}
	return loaded.Model.Predict(row)
}

// OnReload registers fn to run after every successful reload.
func (s *Store) OnReload(fn func(*Loaded)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Reload re-reads the artifact. On failure the previous model stays active.
func (s *Store) Reload() error {
	loaded, err := s.load()
	if err != nil {
		return err
	}
	s.current.Store(loaded)

	s.mu.Lock()
	listeners := append([]func(*Loaded){}, s.listeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(loaded)
	}
	s.logger.Info("model reloaded", zap.String("path", s.path))
	return nil
}

// Watch reloads the model whenever its file changes, until ctx is done.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory so that atomic replace-by-rename is seen.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return err
	}

	target := filepath.Clean(s.path)
	go func() {
		defer watcher.Close()
		var pending <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					pending = time.After(s.debounce)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("model watcher error", zap.Error(err))
			case <-pending:
				pending = nil
				if err := s.Reload(); err != nil {
					s.logger.Error("model reload failed, keeping previous model", zap.Error(err))
				}
			}
		}
	}()
	return nil
}
