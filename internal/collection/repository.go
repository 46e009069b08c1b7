package collection

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Repository holds the loaded card list. Nothing outside the repository can
// mutate it: All returns a deep copy.
type Repository struct {
	source Source
	logger *zap.Logger

	// reloadMu serializes reads from the source so an older read can never
	// replace the result of a newer one.
	reloadMu sync.Mutex

	mu         sync.RWMutex
	cards      []Card
	loaded     bool
	loadedAt   time.Time
	generation uint64
}

// NewRepository builds a repository around src. A nil logger disables logging.
func NewRepository(src Source, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{source: src, logger: logger}
}

// Load fetches the card list once. Later calls return nil without touching
// the source; use Reload to refresh. Failures are reported as *LoadError and
// leave the repository unloaded so a later Load can retry.
func (r *Repository) Load(ctx context.Context) error {
	r.mu.RLock()
	loaded := r.loaded
	r.mu.RUnlock()
	if loaded {
		return nil
	}
	return r.Reload(ctx)
}

// Reload replaces the card list with a fresh read from the source. On error
// the previously loaded cards stay in place.
func (r *Repository) Reload(ctx context.Context) error {
	if r.source == nil {
		return loadError(nil, ErrUnsupportedSource)
	}
	r.reloadMu.Lock()
	defer r.reloadMu.Unlock()

	start := time.Now()
	raw, err := r.source.Load(ctx)
	if err != nil {
		r.logger.Warn("collection load failed", zap.String("source", r.source.Describe()), zap.Error(err))
		return loadError(r.source, err)
	}
	cards, err := normalize(raw)
	if err != nil {
		r.logger.Warn("collection rejected", zap.String("source", r.source.Describe()), zap.Error(err))
		return loadError(r.source, err)
	}

	r.mu.Lock()
	r.cards = cards
	r.loaded = true
	r.loadedAt = time.Now()
	r.generation++
	gen := r.generation
	r.mu.Unlock()

	r.logger.Info("collection loaded",
		zap.String("source", r.source.Describe()),
		zap.Int("cards", len(cards)),
		zap.Uint64("generation", gen),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

// All returns a copy of the loaded cards in load order.
func (r *Repository) All() []Card {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneCards(r.cards)
}

// Snapshot returns a copy of the cards together with the generation they
// belong to.
func (r *Repository) Snapshot() ([]Card, uint64) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneCards(r.cards), r.generation
}

// Loaded reports whether a load has succeeded.
func (r *Repository) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

// LoadedAt returns the time of the last successful load.
func (r *Repository) LoadedAt() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loadedAt
}

// Generation increases by one on every successful load.
func (r *Repository) Generation() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.generation
}

// Source returns the source the repository reads from.
func (r *Repository) Source() Source {
	return r.source
}
