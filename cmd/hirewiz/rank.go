package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hirewiz/hirewiz/internal/model"
	"github.com/hirewiz/hirewiz/internal/search"
	"github.com/hirewiz/hirewiz/internal/shortlist"
	"github.com/hirewiz/hirewiz/internal/store"
)

var rankPitch string

var rankCmd = &cobra.Command{
	Use:   "rank <query>",
	Short: "Rank candidates against a query (TUI)",
	Long:  "Runs the search pipeline for a natural-language query and opens the interactive shortlist browser.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRank,
}

func init() {
	rankCmd.Flags().StringVar(&rankPitch, "pitch", "We came across your profile and think you could be a great fit for a role we're hiring for.", "recruiter pitch used when drafting outreach from the detail view")
	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug, pretty)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	sqlStore, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer sqlStore.Close()

	// The TUI owns the terminal; stray log lines before the alt screen starts
	// corrupt the display.
	silentLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	copilot, err := buildCopilot(cmd.Context(), cfg, silentLogger)
	if err != nil {
		logger.Error("failed to build AI provider", "error", err)
		os.Exit(1)
	}

	ranker := search.NewRanker(sqlStore, copilot, cfg.Search.MaxConcurrency, cfg.Search.MinScore, silentLogger)

	query := strings.Join(args, " ")
	ranked, err := shortlist.RunLoader(query, func(ctx context.Context) ([]model.RankedCandidate, error) {
		return ranker.Search(ctx, query)
	})
	if err != nil {
		logger.Error("search failed", "error", err)
		os.Exit(1)
	}

	if len(ranked) == 0 {
		fmt.Println("No candidates matched the query.")
		return nil
	}

	return shortlist.RunShortlist(query, ranked, copilot, rankPitch)
}
