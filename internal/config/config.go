package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the HireWiz API service.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	AI       AIConfig
	Search   SearchConfig
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr        string   // listen address, e.g. ":8000"
	CORSOrigins []string // allowed origins; empty means allow all (dev mode)
}

// DatabaseConfig controls the candidate store.
type DatabaseConfig struct {
	Path string // SQLite database file path
}

// AIConfig controls the LLM provider layer.
type AIConfig struct {
	Provider       string        // "openai" or "gemini"
	BaseURL        string        // defaults to https://api.openai.com/v1 (openai only)
	APIKey         string        // expanded from env var by Load
	MatchModel     string        // model for candidate/query matching
	ExtractModel   string        // model for skills/location/experience extraction
	DraftModel     string        // model for outreach drafting
	Timeout        time.Duration // per-request timeout
	MaxRetries     int           // additional attempts after the first failure
	RetryBaseDelay time.Duration // delay before the first retry, doubled each attempt
	MinDelay       time.Duration // minimum gap between requests to the same model, 0 disables
}

// SearchConfig controls the candidate search pipeline.
type SearchConfig struct {
	MaxConcurrency int // concurrent scoring calls per search
	MinScore       int // drop results scoring below this
}

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// rawConfig is used for YAML unmarshaling (snake_case fields and durations as strings).
type rawConfig struct {
	Server   rawServerConfig   `yaml:"server"`
	Database rawDatabaseConfig `yaml:"database"`
	AI       rawAIConfig       `yaml:"ai"`
	Search   rawSearchConfig   `yaml:"search"`
}

type rawServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type rawDatabaseConfig struct {
	Path string `yaml:"path"`
}

type rawAIConfig struct {
	Provider       string `yaml:"provider"`
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	MatchModel     string `yaml:"match_model"`
	ExtractModel   string `yaml:"extract_model"`
	DraftModel     string `yaml:"draft_model"`
	Timeout        string `yaml:"timeout"`
	MaxRetries     *int   `yaml:"max_retries"`
	RetryBaseDelay string `yaml:"retry_base_delay"`
	MinDelay       string `yaml:"min_delay"`
}

type rawSearchConfig struct {
	MaxConcurrency int `yaml:"max_concurrency"`
	MinScore       int `yaml:"min_score"`
}

// Load reads and parses the YAML config file at path, validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables (e.g. ${OPENAI_API_KEY})
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	addr := raw.Server.Addr
	if addr == "" {
		addr = ":8000"
	}

	dbPath := raw.Database.Path
	if dbPath == "" {
		dbPath = "candidates.db"
	}

	provider := raw.AI.Provider
	if provider == "" {
		provider = "openai"
	}

	baseURL := raw.AI.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}

	matchModel := raw.AI.MatchModel
	if matchModel == "" {
		matchModel = "gpt-4.1"
	}
	extractModel := raw.AI.ExtractModel
	if extractModel == "" {
		extractModel = "o4-mini"
	}
	draftModel := raw.AI.DraftModel
	if draftModel == "" {
		draftModel = matchModel
	}

	timeout := 30 * time.Second // default
	if raw.AI.Timeout != "" {
		timeout, err = time.ParseDuration(raw.AI.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse ai.timeout %q: %w", raw.AI.Timeout, err)
		}
	}

	maxRetries := 2 // default
	if raw.AI.MaxRetries != nil {
		maxRetries = *raw.AI.MaxRetries
	}

	retryBaseDelay := 5 * time.Second // default
	if raw.AI.RetryBaseDelay != "" {
		retryBaseDelay, err = time.ParseDuration(raw.AI.RetryBaseDelay)
		if err != nil {
			return nil, fmt.Errorf("parse ai.retry_base_delay %q: %w", raw.AI.RetryBaseDelay, err)
		}
	}

	var minDelay time.Duration // default: no outbound rate limiting
	if raw.AI.MinDelay != "" {
		minDelay, err = time.ParseDuration(raw.AI.MinDelay)
		if err != nil {
			return nil, fmt.Errorf("parse ai.min_delay %q: %w", raw.AI.MinDelay, err)
		}
	}

	maxConcurrency := raw.Search.MaxConcurrency
	if maxConcurrency == 0 {
		maxConcurrency = 4
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:        addr,
			CORSOrigins: raw.Server.CORSOrigins,
		},
		Database: DatabaseConfig{
			Path: dbPath,
		},
		AI: AIConfig{
			Provider:       provider,
			BaseURL:        baseURL,
			APIKey:         raw.AI.APIKey,
			MatchModel:     matchModel,
			ExtractModel:   extractModel,
			DraftModel:     draftModel,
			Timeout:        timeout,
			MaxRetries:     maxRetries,
			RetryBaseDelay: retryBaseDelay,
			MinDelay:       minDelay,
		},
		Search: SearchConfig{
			MaxConcurrency: maxConcurrency,
			MinScore:       raw.Search.MinScore,
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.AI.Provider != "openai" && cfg.AI.Provider != "gemini" {
		return fmt.Errorf("ai.provider must be \"openai\" or \"gemini\", got %q", cfg.AI.Provider)
	}

	if cfg.AI.APIKey == "" {
		return fmt.Errorf("ai.api_key is required (set OPENAI_API_KEY and reference it as ${OPENAI_API_KEY})")
	}

	if cfg.AI.Timeout <= 0 {
		return fmt.Errorf("ai.timeout must be positive, got %v", cfg.AI.Timeout)
	}

	if cfg.AI.MaxRetries < 0 {
		return fmt.Errorf("ai.max_retries must not be negative, got %d", cfg.AI.MaxRetries)
	}

	if cfg.AI.MinDelay < 0 {
		return fmt.Errorf("ai.min_delay must not be negative, got %v", cfg.AI.MinDelay)
	}

	if cfg.Search.MaxConcurrency < 1 {
		return fmt.Errorf("search.max_concurrency must be at least 1, got %d", cfg.Search.MaxConcurrency)
	}

	if cfg.Search.MinScore < 0 || cfg.Search.MinScore > 100 {
		return fmt.Errorf("search.min_score must be between 0 and 100, got %d", cfg.Search.MinScore)
	}

	return nil
}
