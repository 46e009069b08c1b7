package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/five82/binder/internal/collection"
	"github.com/five82/binder/internal/debounce"
	"github.com/five82/binder/internal/state"
)

const (
	defaultWatchDelay = 250 * time.Millisecond
	reloadKey         = "reload"
)

var errNotWatchable = errors.New("collection source is not a local file")

// Watcher reloads the collection whenever its file changes. Bursts of
// file-system events (editors often write, rename and chmod in one save) are
// coalesced into a single reload.
type Watcher struct {
	path   string
	repo   *collection.Repository
	store  *state.Store
	logger *zap.Logger

	fs    *fsnotify.Watcher
	timer *debounce.Timer

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu       sync.Mutex
	closed   bool
	inflight sync.WaitGroup
}

// Watch starts a Watcher for the session's collection file.
func (s *Session) Watch(ctx context.Context) (*Watcher, error) {
	src, ok := s.Repo.Source().(interface{ Path() string })
	if !ok {
		return nil, fmt.Errorf("watch %s: %w", s.Repo.Source().Describe(), errNotWatchable)
	}
	return StartWatcher(ctx, src.Path(), s.Repo, s.Store, s.Logger.Named("watcher"), defaultWatchDelay)
}

// StartWatcher watches path and reloads repo into store after each quiet
// period of delay. It returns once the watch is established.
func StartWatcher(ctx context.Context, path string, repo *collection.Repository, store *state.Store, logger *zap.Logger, delay time.Duration) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if delay <= 0 {
		delay = defaultWatchDelay
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory: editors replace files by renaming over them,
	// which drops a watch placed on the file itself.
	dir := filepath.Dir(abs)
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		path:   abs,
		repo:   repo,
		store:  store,
		logger: logger,
		fs:     fw,
		timer:  debounce.NewTimer(delay),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go w.loop()

	logger.Info("watching collection", zap.String("path", abs), zap.Duration("delay", delay))
	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
				!ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			w.logger.Debug("collection changed", zap.String("op", ev.Op.String()))
			w.timer.Schedule(reloadKey, w.reload)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.inflight.Add(1)
	w.mu.Unlock()
	defer w.inflight.Done()

	err := w.repo.Reload(w.ctx)
	record(w.store, w.repo, err)
}

// Close stops watching and waits for any reload in progress.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	w.timer.Stop()
	w.cancel()
	err := w.fs.Close()
	<-w.done
	w.inflight.Wait()
	return err
}
