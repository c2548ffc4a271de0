// Package schedule drives the initial load and the periodic
// leaderboard refresh.
package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RefreshFunc triggers one fetch+parse+project cycle. Errors are
// logged here and never abort the schedule; the next tick is the only
// retry mechanism.
type RefreshFunc func(ctx context.Context) error

// Scheduler runs the leaderboard refresh on a fixed interval with no
// jitter or backoff. Overlap between a slow refresh and the next tick
// is resolved by the repository's in-flight guard, not here.
type Scheduler struct {
	interval      time.Duration
	refreshBoard  RefreshFunc
	refreshConfig RefreshFunc
}

// New creates a scheduler for the given refresh interval.
func New(interval time.Duration, refreshBoard, refreshConfig RefreshFunc) *Scheduler {
	return &Scheduler{
		interval:      interval,
		refreshBoard:  refreshBoard,
		refreshConfig: refreshConfig,
	}
}

// InitialLoad refreshes the config and leaderboard ranges concurrently
// and blocks until both complete, success or not. Presentation should
// not go live before this returns.
func (s *Scheduler) InitialLoad(ctx context.Context) {
	cycle := uuid.NewString()
	log.Debug().Str("cycle", cycle).Msg("Starting initial load")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := s.refreshConfig(ctx); err != nil {
			log.Error().Err(err).Str("cycle", cycle).Msg("Initial config load failed")
		}
	}()
	go func() {
		defer wg.Done()
		if err := s.refreshBoard(ctx); err != nil {
			log.Error().Err(err).Str("cycle", cycle).Msg("Initial leaderboard load failed")
		}
	}()
	wg.Wait()

	log.Info().Str("cycle", cycle).Msg("Initial load complete")
}

// Run refreshes the leaderboard every interval until ctx is cancelled.
// It blocks; callers own the goroutine.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Info().
		Dur("interval", s.interval).
		Msg("Starting leaderboard refresh schedule")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Refresh schedule stopped")
			return
		case <-ticker.C:
			cycle := uuid.NewString()
			start := time.Now()
			if err := s.refreshBoard(ctx); err != nil {
				log.Error().
					Err(err).
					Str("cycle", cycle).
					Msg("Scheduled leaderboard refresh failed; keeping previous snapshot")
				continue
			}
			log.Debug().
				Str("cycle", cycle).
				Dur("duration", time.Since(start)).
				Msg("Scheduled leaderboard refresh complete")
		}
	}
}
