// Package render prints a one-shot standings snapshot to the terminal
// for operators running in once mode.
package render

import (
	"fmt"
	"strconv"

	"codename_board/internal/board"
	"codename_board/internal/settings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// StandingsTable renders the snapshot as a rounded table with rank,
// codename, movement and the shamed marker.
func StandingsTable(contestants []board.Contestant) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Rank", "Codename", "Movement", "Shamed"})

	for _, contestant := range contestants {
		movement := board.ComputeMovement(contestant.CurrentRank, contestant.PreviousRank)
		shamed := ""
		if contestant.Shamed {
			shamed = "yes"
		}
		tw.AppendRow(table.Row{
			strconv.Itoa(contestant.CurrentRank),
			contestant.Codename,
			movement.Symbol,
			shamed,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}

// ConfigSummary renders the runtime config as a single line, with
// placeholders for fields the config range has not provided yet.
func ConfigSummary(config settings.RuntimeConfig) string {
	deadline := "(not set)"
	if config.Deadline != nil {
		deadline = *config.Deadline
	}
	week := "(not set)"
	if config.CurrentWeek != nil {
		week = strconv.Itoa(*config.CurrentWeek)
	}
	return fmt.Sprintf("Week %s, deadline %s", week, deadline)
}
