package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"reelmatch/internal/config"
	"reelmatch/internal/history"
	"reelmatch/internal/logging"
	"reelmatch/internal/media"
	"reelmatch/internal/recommend"
)

var titleCaser = cases.Title(language.English)

func newRecommendCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOut  bool
		strategy string
		userID   int64
		target   int
	)

	cmd := &cobra.Command{
		Use:   "recommend [file]",
		Short: "Reconcile a model response against the Plex library",
		Long: "Reads an AI model response containing movie and show recommendations,\n" +
			"resolves canonical TMDB IDs, checks Plex availability, and prints the\n" +
			"diversity-capped result. Reads from stdin when no file is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			movies, shows, err := recommend.ParseModelOutput(string(raw))
			if err != nil {
				return fmt.Errorf("parse model output: %w", err)
			}

			if strategy == "" {
				strategy = cfg.Recommendations.Strategy
			}
			pipe, err := ctx.buildPipeline(cfg, logger, strategy)
			if err != nil {
				return err
			}

			req := recommend.Request{
				Movies:      movies,
				Shows:       shows,
				TargetCount: target,
				DirectorCap: cfg.Recommendations.DirectorCap,
				GenreCap:    cfg.Recommendations.GenreCap,
			}
			if target <= 0 {
				req.TargetCount = cfg.Recommendations.TargetCount
			}
			if cfg.History.Enabled && userID > 0 {
				req.WatchedMovies, req.WatchedShows = loadWatched(cmd, cfg, logger, userID)
			}

			report, err := pipe.orchestrator.Reconcile(cmd.Context(), req)
			if err != nil {
				return err
			}
			if err := pipe.cache.Save(); err != nil {
				logger.Warn("resolver cache not persisted",
					logging.String(logging.FieldEventType, "resolver_cache_save_failed"),
					logging.Error(err))
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			renderReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the full report as JSON")
	cmd.Flags().StringVar(&strategy, "strategy", "", "Availability strategy: bulk or targeted")
	cmd.Flags().Int64Var(&userID, "user", 0, "Tautulli user ID for watched-title exclusion")
	cmd.Flags().IntVar(&target, "target", 0, "Recommendation target count")
	return cmd
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("read input file: %w", err)
		}
		return data, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return data, nil
}

func loadWatched(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, userID int64) (movies, shows []string) {
	reader, err := history.Open(cfg.History.DBPath)
	if err != nil {
		logger.Warn("watch history unavailable",
			logging.String(logging.FieldEventType, "history_open_failed"),
			logging.Error(err),
			logging.String(logging.FieldImpact, "watched titles will not be excluded"))
		return nil, nil
	}
	defer reader.Close()

	sections := historySections(cfg)
	movies, err = reader.WatchedTitles(cmd.Context(), userID, media.KindMovie, sections)
	if err != nil {
		logger.Warn("movie history lookup failed", logging.Error(err))
	}
	shows, err = reader.WatchedTitles(cmd.Context(), userID, media.KindShow, sections)
	if err != nil {
		logger.Warn("show history lookup failed", logging.Error(err))
	}
	return movies, shows
}

func renderReport(cmd *cobra.Command, report *recommend.Report) {
	out := cmd.OutOrStdout()
	renderClass(out, media.KindMovie, report.Movies)
	renderClass(out, media.KindShow, report.Shows)
	fmt.Fprintf(out, "Request %s\n", report.RequestID)
}

func renderClass(out io.Writer, kind media.Kind, class recommend.ClassReport) {
	if len(class.Ranked) == 0 {
		return
	}
	fmt.Fprintf(out, "%ss\n", titleCaser.String(kind.String()))

	rows := make([][]string, 0, len(class.Ranked))
	for i, item := range class.Ranked {
		year := ""
		if item.Year > 0 {
			year = strconv.Itoa(item.Year)
		}
		id := ""
		if item.CanonicalID > 0 {
			id = strconv.FormatInt(item.CanonicalID, 10)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			item.Title,
			year,
			id,
			yesNo(item.Available),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]tableColumn{
			{header: "#", numeric: true},
			{header: "Title"},
			{header: "Year", numeric: true},
			{header: "TMDB ID", numeric: true},
			{header: "In Library"},
		},
		rows,
	))
	fmt.Fprintf(out, "%d available, %d to request\n\n",
		len(class.Available), len(class.Unavailable))
}
