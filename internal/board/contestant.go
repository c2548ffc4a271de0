// Package board owns the in-memory leaderboard snapshot: projecting
// parsed spreadsheet records into contestants, keeping the current
// sorted view, and decorating rank movement.
package board

import (
	"sort"
	"strconv"

	"codename_board/internal/csvtext"

	"github.com/rs/zerolog/log"
)

// Leaderboard range column headers as they appear in the spreadsheet.
const (
	headerCodename     = "Codename"
	headerCurrentRank  = "Current Rank"
	headerPreviousRank = "Previous Rank"
	headerShamed       = "Shamed"
)

// shamedSentinel is matched exactly; "true", "1" and friends are false.
const shamedSentinel = "TRUE"

// Contestant is one row of the mirrored leaderboard. Codename is the
// identity but duplicates are not deduplicated; the spreadsheet is the
// system of record.
type Contestant struct {
	Codename     string `json:"codename"`
	CurrentRank  int    `json:"current_rank"`
	PreviousRank int    `json:"previous_rank"`
	Shamed       bool   `json:"shamed"`
}

// Project filters and types the parsed records into contestants sorted
// ascending by current rank. Records without a codename or a numeric
// current rank are skipped; a missing or non-numeric previous rank
// falls back to the current rank. The sort is stable so ties keep the
// original record order.
func Project(doc csvtext.Document) []Contestant {
	for _, issue := range doc.Issues {
		log.Debug().
			Int("line", issue.Line).
			Int("fields", issue.Fields).
			Int("headers", issue.Headers).
			Msg("Row field count does not match header count")
	}

	contestants := make([]Contestant, 0, len(doc.Records))
	for i, record := range doc.Records {
		codename := record[headerCodename]
		rankValue := record[headerCurrentRank]
		if codename == "" || rankValue == "" {
			log.Debug().
				Int("record", i).
				Str("codename", codename).
				Str("current_rank", rankValue).
				Msg("Skipping record with missing required fields")
			continue
		}

		currentRank, err := strconv.Atoi(rankValue)
		if err != nil {
			log.Debug().
				Int("record", i).
				Str("current_rank", rankValue).
				Msg("Skipping record with non-numeric current rank")
			continue
		}

		previousRank := currentRank
		if parsed, err := strconv.Atoi(record[headerPreviousRank]); err == nil {
			previousRank = parsed
		}

		contestants = append(contestants, Contestant{
			Codename:     codename,
			CurrentRank:  currentRank,
			PreviousRank: previousRank,
			Shamed:       record[headerShamed] == shamedSentinel,
		})
	}

	sort.SliceStable(contestants, func(i, j int) bool {
		return contestants[i].CurrentRank < contestants[j].CurrentRank
	})

	return contestants
}
