package board

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"codename_board/internal/csvtext"

	"github.com/rs/zerolog/log"
)

// Source yields the leaderboard range as a headed CSV document.
type Source interface {
	Document(ctx context.Context) (csvtext.Document, error)
}

// Repository owns the current leaderboard snapshot. A refresh replaces
// the whole slice in one swap; readers never observe a partial update.
// A failed refresh leaves the previous snapshot untouched.
type Repository struct {
	source Source

	mu       sync.RWMutex
	snapshot []Contestant
	loaded   bool

	refreshing atomic.Bool
}

// NewRepository creates an empty repository backed by the given source.
func NewRepository(source Source) *Repository {
	return &Repository{source: source}
}

// Refresh fetches, parses and projects the leaderboard range, then
// installs the result as the current snapshot. On failure the previous
// snapshot is returned alongside the error so callers can keep serving
// stale data. If another refresh is already in flight this call skips
// the fetch and returns the current snapshot.
func (r *Repository) Refresh(ctx context.Context) ([]Contestant, error) {
	if !r.refreshing.CompareAndSwap(false, true) {
		log.Debug().Msg("Leaderboard refresh already in flight, skipping")
		return r.Current(), nil
	}
	defer r.refreshing.Store(false)

	doc, err := r.source.Document(ctx)
	if err != nil {
		return r.Current(), fmt.Errorf("failed to fetch leaderboard range: %w", err)
	}

	contestants := Project(doc)

	r.mu.Lock()
	r.snapshot = contestants
	r.loaded = true
	r.mu.Unlock()

	log.Info().
		Int("records", len(doc.Records)).
		Int("contestants", len(contestants)).
		Msg("Leaderboard snapshot replaced")

	return r.Current(), nil
}

// Current returns a copy of the present snapshot. Empty (and not yet
// Loaded) before the first successful refresh.
func (r *Repository) Current() []Contestant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make([]Contestant, len(r.snapshot))
	copy(snapshot, r.snapshot)
	return snapshot
}

// Loaded reports whether at least one refresh has succeeded. It
// distinguishes "never loaded" from "loaded an empty leaderboard".
func (r *Repository) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}
