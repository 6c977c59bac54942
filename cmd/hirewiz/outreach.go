package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hirewiz/hirewiz/internal/model"
	"github.com/hirewiz/hirewiz/internal/shortlist"
	"github.com/hirewiz/hirewiz/internal/store"
)

var outreachMessage string

var outreachCmd = &cobra.Command{
	Use:   "outreach [candidate-id]",
	Short: "Draft an outreach email for a candidate",
	Long:  "Drafts a personalized outreach email. With no candidate ID, an interactive picker is shown.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runOutreach,
}

func init() {
	outreachCmd.Flags().StringVarP(&outreachMessage, "message", "m", "We came across your profile and think you could be a great fit for a role we're hiring for.", "recruiter pitch to personalize")
	rootCmd.AddCommand(outreachCmd)
}

func runOutreach(cmd *cobra.Command, args []string) error {
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

	var candidate model.Candidate
	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid candidate ID %q: %w", args[0], err)
		}
		candidate, err = sqlStore.Get(id)
		if err != nil {
			return err
		}
	} else {
		candidates, err := sqlStore.List()
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			fmt.Println("The candidate pool is empty. Import candidates first.")
			return nil
		}
		choice, err := shortlist.RunCandidatePicker(candidates)
		if err != nil {
			return err
		}
		if choice < 0 {
			return nil
		}
		candidate = candidates[choice]
	}

	copilot, err := buildCopilot(cmd.Context(), cfg, logger)
	if err != nil {
		logger.Error("failed to build AI provider", "error", err)
		os.Exit(1)
	}

	draft, err := copilot.DraftOutreach(cmd.Context(), candidate.Name, candidate.Resume, outreachMessage)
	if err != nil {
		logger.Error("drafting failed", "error", err)
		os.Exit(1)
	}

	header := color.New(color.FgCyan, color.Bold)
	header.Printf("To: %s <%s>\n\n", candidate.Name, candidate.Email)
	fmt.Println(draft)
	return nil
}
