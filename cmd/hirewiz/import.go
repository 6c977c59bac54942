package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hirewiz/hirewiz/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import candidates from a CSV file",
	Long:  "Bulk-load candidates into the pool. The CSV must have a header row with at least a Name column; Phone, Country, Open To, Email and Resume columns are matched case-insensitively.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
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

	f, err := os.Open(args[0])
	if err != nil {
		logger.Error("failed to open CSV file", "error", err)
		os.Exit(1)
	}
	defer f.Close()

	n, err := store.ImportCSV(sqlStore, f)
	if err != nil {
		logger.Error("import failed", "error", err)
		os.Exit(1)
	}

	total, err := sqlStore.Count()
	if err != nil {
		logger.Error("failed to count candidates", "error", err)
		os.Exit(1)
	}

	logger.Info("import complete", "imported", n, "pool_size", total)
	return nil
}
