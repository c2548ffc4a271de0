// Package settings owns the runtime configuration mirrored from the
// spreadsheet's key/value range: the countdown deadline and the current
// contest week.
package settings

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"
)

// Recognized keys in column A of the config range.
const (
	keyDeadline    = "deadline"
	keyCurrentWeek = "current_week"
)

// RuntimeConfig holds the mirrored configuration. Both fields are nil
// until a config refresh has seen the corresponding key; "never loaded"
// is distinct from any loaded value.
type RuntimeConfig struct {
	Deadline    *string `json:"deadline,omitempty"`
	CurrentWeek *int    `json:"current_week,omitempty"`
}

// Source yields the config range as positional rows; the range is
// unheaded, so every row is data.
type Source interface {
	Rows(ctx context.Context) ([][]string, error)
}

// Store owns the current RuntimeConfig and rebuilds it incrementally
// from the config range.
type Store struct {
	source Source

	mu     sync.RWMutex
	config RuntimeConfig
}

// NewStore creates a store with both fields unset.
func NewStore(source Source) *Store {
	return &Store{source: source}
}

// Refresh fetches the config range and applies each row as a key/value
// pair taken from the first two columns. The deadline is overwritten
// with whatever string is present; current_week only moves when the
// value parses as an integer. Unrecognized keys are ignored. On fetch
// failure the previous config is returned alongside the error.
func (s *Store) Refresh(ctx context.Context) (RuntimeConfig, error) {
	rows, err := s.source.Rows(ctx)
	if err != nil {
		return s.Current(), fmt.Errorf("failed to fetch config range: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, row := range rows {
		if len(row) < 2 {
			log.Debug().Int("row", i+1).Msg("Skipping config row without a value column")
			continue
		}

		key, value := row[0], row[1]
		switch key {
		case keyDeadline:
			deadline := value
			s.config.Deadline = &deadline
		case keyCurrentWeek:
			week, err := strconv.Atoi(value)
			if err != nil {
				log.Debug().
					Str("value", value).
					Msg("Ignoring unparseable current_week value")
				continue
			}
			s.config.CurrentWeek = &week
		default:
			log.Debug().Str("key", key).Msg("Ignoring unrecognized config key")
		}
	}

	log.Info().
		Bool("deadline_set", s.config.Deadline != nil).
		Bool("current_week_set", s.config.CurrentWeek != nil).
		Msg("Runtime config refreshed")

	return s.config, nil
}

// Current returns the present configuration. The pointer fields are
// never mutated in place, so sharing them with callers is safe.
func (s *Store) Current() RuntimeConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}
