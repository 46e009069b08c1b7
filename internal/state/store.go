package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/binder/internal/collection"
)

// Snapshot is the latest collection data available to the UI.
type Snapshot struct {
	Cards               []collection.Card
	HasCards            bool
	Generation          uint64
	LoadedAt            time.Time
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// Unavailable reports whether no collection has ever loaded and the last
// attempt failed. The UI shows its error state in that case.
func (s Snapshot) Unavailable() bool {
	return !s.HasCards && s.LastError != nil
}

// Store coordinates the loader/watcher goroutine with the UI.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update records a load attempt. When err is non-nil the previous cards are
// kept and only the error is recorded.
func (s *Store) Update(cards []collection.Card, generation uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = now
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Cards = cloneCards(cards)
	s.snapshot.HasCards = true
	s.snapshot.Generation = generation
	s.snapshot.LoadedAt = now
	s.snapshot.LastUpdated = now
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Cards = cloneCards(s.snapshot.Cards)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// Generation returns the generation of the stored cards without copying them.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Generation
}

// LastUpdated returns the time of the last Update without copying the cards.
func (s *Store) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.LastUpdated
}

func cloneCards(cards []collection.Card) []collection.Card {
	if len(cards) == 0 {
		return nil
	}
	dup := make([]collection.Card, len(cards))
	copy(dup, cards)
	return dup
}
