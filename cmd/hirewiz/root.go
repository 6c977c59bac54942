package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/MatusOllah/slogcolor"
	"github.com/spf13/cobra"

	"github.com/hirewiz/hirewiz/internal/ai"
	"github.com/hirewiz/hirewiz/internal/config"
	"github.com/hirewiz/hirewiz/internal/ratelimit"
	"github.com/hirewiz/hirewiz/internal/retry"
)

var (
	cfgPath string
	debug   bool
	pretty  bool
)

var rootCmd = &cobra.Command{
	Use:   "hirewiz",
	Short: "AI hiring copilot — search, score and reach out to candidates",
	Long:  "HireWiz ranks a candidate pool against natural-language recruiter queries and drafts personalized outreach, backed by an LLM provider.",
	// Default to `serve` so that `hirewiz` with no args runs the API server.
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: HIREWIZ_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "colorized log output")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > HIREWIZ_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("HIREWIZ_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg, pretty bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	if pretty {
		opts := slogcolor.DefaultOptions
		opts.Level = logLevel
		opts.SrcFileMode = slogcolor.Nop
		return slog.New(slogcolor.NewHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

// buildProvider constructs the LLM provider chain:
// base provider → rate limiter → retrier.
func buildProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ai.LLMProvider, error) {
	var provider ai.LLMProvider
	switch cfg.AI.Provider {
	case "gemini":
		gemini, err := ai.NewGeminiProvider(ctx, cfg.AI.APIKey)
		if err != nil {
			return nil, err
		}
		provider = gemini
	default:
		httpClient := &http.Client{Timeout: cfg.AI.Timeout}
		provider = ai.NewOpenAIProvider(cfg.AI.BaseURL, cfg.AI.APIKey, httpClient)
	}

	if cfg.AI.MinDelay > 0 {
		limiter := ratelimit.NewModelRateLimiter(cfg.AI.MinDelay)
		provider = ratelimit.NewRateLimitedProvider(provider, limiter)
		logger.Info("rate limiter configured", "min_delay", cfg.AI.MinDelay.String())
	}

	provider = retry.NewRetryProvider(provider, cfg.AI.MaxRetries, cfg.AI.RetryBaseDelay, logger)
	return provider, nil
}

func buildCopilot(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*ai.Copilot, error) {
	provider, err := buildProvider(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	models := ai.Models{
		Match:   cfg.AI.MatchModel,
		Extract: cfg.AI.ExtractModel,
		Draft:   cfg.AI.DraftModel,
	}
	return ai.NewCopilot(provider, models, logger), nil
}
