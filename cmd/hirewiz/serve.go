package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hirewiz/hirewiz/internal/search"
	"github.com/hirewiz/hirewiz/internal/server"
	"github.com/hirewiz/hirewiz/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Start the hiring copilot API; blocks until SIGINT/SIGTERM.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug, pretty)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("config loaded",
		"addr", cfg.Server.Addr,
		"provider", cfg.AI.Provider,
		"match_model", cfg.AI.MatchModel,
		"extract_model", cfg.AI.ExtractModel,
		"min_score", cfg.Search.MinScore,
		"max_concurrency", cfg.Search.MaxConcurrency,
	)

	sqlStore, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer sqlStore.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	copilot, err := buildCopilot(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build AI provider", "error", err)
		os.Exit(1)
	}

	ranker := search.NewRanker(sqlStore, copilot, cfg.Search.MaxConcurrency, cfg.Search.MinScore, logger)

	srv := server.New(copilot, ranker, sqlStore, server.Options{
		CORSOrigins: cfg.Server.CORSOrigins,
		AITimeout:   cfg.AI.Timeout,
	}, logger)

	if err := srv.Run(ctx, cfg.Server.Addr); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("goodbye")
	return nil
}
