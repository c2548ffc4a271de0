package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"codename_board/internal/app"
	"codename_board/internal/board"
	"codename_board/internal/httpapi"
	"codename_board/internal/metrics"
	"codename_board/internal/notifications"
	"codename_board/internal/render"
	"codename_board/internal/schedule"
	"codename_board/internal/settings"
	"codename_board/internal/source"

	"github.com/rs/zerolog/log"
)

func main() {
	log.Debug().Msg("Starting application")
	setupEnvironment()

	ctx := context.Background()

	cfg, err := app.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	leaderboardSource, configSource := buildSources(ctx, cfg)
	repo := board.NewRepository(leaderboardSource)
	store := settings.NewStore(configSource)

	if cfg.RunMode == app.RunModeOnce {
		runOnce(ctx, repo, store)
		return
	}

	notifier := notifications.NewClient(cfg.NtfyURL, cfg.NtfyTopic, cfg.NtfyEnabled)
	watch := notifications.NewLeaderWatch(notifier)

	refreshBoard := func(ctx context.Context) error {
		start := time.Now()
		snapshot, err := repo.Refresh(ctx)
		metrics.ObserveRefresh("leaderboard", time.Since(start), err)
		if err != nil {
			return err
		}
		metrics.SetContestantCount(len(snapshot))
		watch.Observe(ctx, snapshot)
		return nil
	}
	refreshConfig := func(ctx context.Context) error {
		start := time.Now()
		_, err := store.Refresh(ctx)
		metrics.ObserveRefresh("config", time.Since(start), err)
		return err
	}

	scheduler := schedule.New(cfg.RefreshInterval(), refreshBoard, refreshConfig)

	server := httpapi.NewServer(repo, store, cfg.MaxLimit)
	mux := http.NewServeMux()
	server.Register(mux)

	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("Serving board API")
		if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	scheduler.InitialLoad(ctx)
	server.MarkReady()

	log.Info().
		Str("spreadsheet_id", cfg.SpreadsheetID).
		Str("source", cfg.Source).
		Msg("Starting board mirror. Refreshing every interval until stopped...")

	scheduler.Run(ctx)
}

// buildSources wires the configured transport for both ranges.
func buildSources(ctx context.Context, cfg *app.Config) (board.Source, settings.Source) {
	if cfg.Source == app.SourceSheets {
		service, err := source.NewSheetsService(ctx, cfg.CredentialsFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create sheets service")
		}
		leaderboard := source.NewAPIRange(service, cfg.SpreadsheetID, cfg.SheetsLeaderboardRange)
		config := source.NewAPIRange(service, cfg.SpreadsheetID, cfg.SheetsConfigRange)
		return leaderboard, config
	}

	leaderboard := source.NewCSVRange(cfg.ExportURL(), cfg.LeaderboardGID, cfg.ProxyPrefix, cfg.HTTPTimeout())
	config := source.NewCSVRange(cfg.ExportURL(), cfg.ConfigGID, cfg.ProxyPrefix, cfg.HTTPTimeout())
	return leaderboard, config
}

// runOnce fetches both ranges a single time, prints the standings
// table and the config summary, and exits.
func runOnce(ctx context.Context, repo *board.Repository, store *settings.Store) {
	if _, err := store.Refresh(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to fetch config range")
	}
	snapshot, err := repo.Refresh(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to fetch leaderboard range")
	}

	fmt.Println(render.StandingsTable(snapshot))
	fmt.Println(render.ConfigSummary(store.Current()))
}
