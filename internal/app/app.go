package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/binder/internal/browse"
	"github.com/five82/binder/internal/collection"
	"github.com/five82/binder/internal/config"
	"github.com/five82/binder/internal/logging"
	"github.com/five82/binder/internal/prefs"
	"github.com/five82/binder/internal/state"
	"github.com/five82/binder/internal/ui"
)

// Options configure the binder application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/binder/prefs.toml
	Collection string // overrides the configured collection
	Watch      bool   // forces watching on
	Verbose    bool
	// Logger replaces the file logger built from the config.
	Logger *zap.Logger
}

// Session is everything the browser and the headless commands share: the
// resolved config, the repository and the store holding the loaded cards.
type Session struct {
	Config config.Config
	Prefs  prefs.Prefs
	Logger *zap.Logger
	Repo   *collection.Repository
	Store  *state.Store

	ownsLogger bool
}

// Open resolves configuration and performs the initial collection load. A
// failed load is not an error here: it is recorded in the store and reported
// by Err.
func Open(ctx context.Context, opts Options) (*Session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.Collection != "" {
		cfg.Collection = config.ExpandLocation(opts.Collection)
	}
	if opts.Watch {
		cfg.Watch = true
	}

	logger := opts.Logger
	owns := false
	if logger == nil {
		logger, err = logging.New(cfg.LogFile, opts.Verbose)
		if err != nil {
			return nil, fmt.Errorf("init logging: %w", err)
		}
		owns = true
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	src, err := collection.NewSource(cfg.Collection)
	if err != nil {
		if owns {
			_ = logger.Sync()
		}
		return nil, fmt.Errorf("collection source: %w", err)
	}

	s := &Session{
		Config:     cfg,
		Prefs:      userPrefs,
		Logger:     logger,
		Repo:       collection.NewRepository(src, logger.Named("collection")),
		Store:      &state.Store{},
		ownsLogger: owns,
	}
	record(s.Store, s.Repo, s.Repo.Load(ctx))
	return s, nil
}

// Err returns the error of the most recent load attempt.
func (s *Session) Err() error {
	return s.Store.Snapshot().LastError
}

// Cards returns the loaded cards.
func (s *Session) Cards() []collection.Card {
	return s.Repo.All()
}

// Close flushes the logger if the session created it.
func (s *Session) Close() {
	if s.ownsLogger {
		_ = s.Logger.Sync()
	}
}

// Run boots the binder TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	s, err := Open(ctx, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Err(); err != nil {
		s.Logger.Warn("starting without a collection", zap.Error(err))
	}

	if s.Config.Watch {
		w, err := s.Watch(ctx)
		if err != nil {
			s.Logger.Warn("collection watch disabled", zap.Error(err))
		} else {
			defer w.Close()
		}
	}

	uiOpts := ui.Options{
		Context:     ctx,
		Store:       s.Store,
		Logger:      s.Logger.Named("ui"),
		SourceName:  s.Repo.Source().Describe(),
		PageSize:    s.Config.PageSize,
		View:        resolveViewMode(s.Prefs.View, s.Config.DefaultView),
		Grouping:    browse.ParseGrouping(s.Prefs.Grouping),
		SearchDelay: s.Config.SearchDelay,
		PrefsPath:   opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}

// resolveViewMode prefers the saved view, then the configured default.
func resolveViewMode(saved, configured string) state.ViewMode {
	if mode, ok := state.ParseViewMode(saved); ok {
		return mode
	}
	if mode, ok := state.ParseViewMode(configured); ok {
		return mode
	}
	return state.Grid
}

// record publishes the outcome of a load attempt to the store.
func record(store *state.Store, repo *collection.Repository, err error) {
	if err != nil {
		store.Update(nil, 0, err)
		return
	}
	cards, gen := repo.Snapshot()
	store.Update(cards, gen, nil)
}
