package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/lamim/replicaforge/pkg/models"
)

// Load reads and parses the configuration file and environment variables
func Load(configPath string) (*Config, *Secrets, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	secrets, err := LoadSecrets()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	return &cfg, secrets, nil
}

// ApplyDefaults sets default values for optional configuration fields
func ApplyDefaults(cfg *Config) {
	if cfg.Generation.Protocol == "" {
		cfg.Generation.Protocol = models.ProtocolDelimiter
	}
	if cfg.Generation.Concurrency == 0 {
		cfg.Generation.Concurrency = 4
	}
	if cfg.Generation.SnippetLength == 0 {
		cfg.Generation.SnippetLength = 500
	}
	if cfg.Generation.FallbackTitle == "" {
		cfg.Generation.FallbackTitle = "Custom Theme"
	}
	if cfg.Generation.FallbackIDSuffix == "" {
		cfg.Generation.FallbackIDSuffix = "variant"
	}
	if cfg.Generation.MaxUnitsPerBatch == 0 {
		cfg.Generation.MaxUnitsPerBatch = DefaultMaxUnitsPerBatch
	}

	if cfg.Model.Temperature == 0 {
		cfg.Model.Temperature = 0.7
	}
	if cfg.Model.TopP == 0 {
		cfg.Model.TopP = 1.0
	}
	if cfg.Model.MaxOutputTokens == 0 {
		cfg.Model.MaxOutputTokens = 2500
	}
	if cfg.Model.RateLimitPerMinute == 0 {
		cfg.Model.RateLimitPerMinute = 60
	}
	if cfg.Model.HTTPTimeoutSeconds == 0 {
		cfg.Model.HTTPTimeoutSeconds = 120
	}
	// NOTE: in TOML we can't distinguish 0 from unset, so:
	// - Unset (0) defaults to 3
	// - Explicitly set to -1 means no retries
	if cfg.Model.MaxRetries == 0 {
		cfg.Model.MaxRetries = 3
	}
	if cfg.Model.TokenizerModel == "" {
		cfg.Model.TokenizerModel = cfg.Model.ModelName
	}

	if cfg.Ledger.Path == "" {
		cfg.Ledger.Path = "token_tracking.db"
	}

	if cfg.PromptTemplates.SystemInstruction == "" {
		cfg.PromptTemplates.SystemInstruction = GetDefaultSystemTemplate()
	}
	if cfg.PromptTemplates.UserInstruction == "" {
		cfg.PromptTemplates.UserInstruction = GetDefaultUserTemplate()
	}
}
