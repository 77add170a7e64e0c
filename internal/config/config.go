package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/lamim/replicaforge/pkg/models"
)

// Config represents the complete application configuration
type Config struct {
	Generation      GenerationConfig `toml:"generation"`
	Model           ModelConfig      `toml:"model"`
	Ledger          LedgerConfig     `toml:"ledger"`
	PromptTemplates PromptTemplates  `toml:"prompt_templates"`
	Pools           PoolsConfig      `toml:"pools"`
}

// GenerationConfig holds batch-level settings
type GenerationConfig struct {
	Protocol          models.Protocol `toml:"protocol"`            // delimiter (default) or json
	Concurrency       int             `toml:"concurrency"`         // worker pool size (default 4)
	SnippetLength     int             `toml:"snippet_length"`      // raw-response bytes kept on failure (default 500)
	ShuffleSeed       int64           `toml:"shuffle_seed"`        // 0 = time-seeded; fixed value for reproducible pools
	FallbackTitle     string          `toml:"fallback_title"`      // title when the model omits or mangles THEME (default "Custom Theme")
	FallbackIDSuffix  string          `toml:"fallback_id_suffix"`  // suffix when stripping empties a theme label (default "variant")
	MaxUnitsPerBatch  int             `toml:"max_units_per_batch"` // upper bound on num_replicas (default 100)
	DisableUnitLimits bool            `toml:"disable_unit_limits"` // disable the upper bound (use with caution)
}

// ModelConfig represents configuration for the generation model endpoint
type ModelConfig struct {
	BaseURL            string  `toml:"base_url"`
	ModelName          string  `toml:"model_name"`
	Temperature        float64 `toml:"temperature"`
	TopP               float64 `toml:"top_p"`
	MaxOutputTokens    int     `toml:"max_output_tokens"`
	RateLimitPerMinute int     `toml:"rate_limit_per_minute"`
	HTTPTimeoutSeconds int     `toml:"http_timeout_seconds"` // default 120
	MaxRetries         int     `toml:"max_retries"`          // transport-level retries (default 3)
	UseJSONMode        bool    `toml:"use_json_mode"`        // request json_object response format (json protocol only)
	TokenizerModel     string  `toml:"tokenizer_model"`      // model name for exact token counting (defaults to model_name)
}

// LedgerConfig holds the persistent token ledger settings
type LedgerConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"` // sqlite database file (default "token_tracking.db")
}

// PromptTemplates holds the customizable instruction templates
type PromptTemplates struct {
	SystemInstruction string `toml:"system_instruction"`
	UserInstruction   string `toml:"user_instruction"`
}

// PoolsConfig optionally overrides the built-in theme and palette pools
type PoolsConfig struct {
	Themes   []string         `toml:"themes"`
	Palettes []models.Palette `toml:"palettes"`
}

// Secrets holds sensitive credentials loaded from environment variables
type Secrets struct {
	APIKeys map[string]string
}

const (
	// MaxConcurrency is the maximum allowed worker pool size
	MaxConcurrency = 256
	// DefaultMaxUnitsPerBatch bounds num_replicas unless limits are disabled
	DefaultMaxUnitsPerBatch = 100
)

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Generation.Protocol {
	case models.ProtocolDelimiter, models.ProtocolJSON:
	default:
		return fmt.Errorf("generation.protocol must be %q or %q (got %q)",
			models.ProtocolDelimiter, models.ProtocolJSON, c.Generation.Protocol)
	}

	if c.Generation.Concurrency < 1 {
		return fmt.Errorf("generation.concurrency must be at least 1")
	}
	if c.Generation.Concurrency > MaxConcurrency {
		return fmt.Errorf("generation.concurrency must not exceed %d (got %d)", MaxConcurrency, c.Generation.Concurrency)
	}
	if c.Generation.SnippetLength < 1 {
		return fmt.Errorf("generation.snippet_length must be at least 1")
	}
	if !c.Generation.DisableUnitLimits && c.Generation.MaxUnitsPerBatch < 1 {
		return fmt.Errorf("generation.max_units_per_batch must be at least 1")
	}

	if err := validateModelConfig(c.Model); err != nil {
		return err
	}

	if c.Ledger.Enabled && c.Ledger.Path == "" {
		return fmt.Errorf("ledger.path is required when ledger.enabled is true")
	}

	// Either pool may be overridden, but never to empty-with-table-present
	for i, p := range c.Pools.Palettes {
		if p.Primary == "" || p.Secondary == "" || p.Accent == "" || p.Background == "" || p.Text == "" {
			return fmt.Errorf("pools.palettes[%d] must set primary, secondary, accent, background and text", i)
		}
	}

	return nil
}

func validateModelConfig(mc ModelConfig) error {
	if mc.BaseURL == "" {
		return fmt.Errorf("model.base_url is required")
	}
	if mc.ModelName == "" {
		return fmt.Errorf("model.model_name is required")
	}
	if mc.Temperature < 0 || mc.Temperature > 2 {
		return fmt.Errorf("model.temperature must be between 0 and 2")
	}
	if mc.TopP < 0 || mc.TopP > 1 {
		return fmt.Errorf("model.top_p must be between 0 and 1")
	}
	if mc.MaxOutputTokens < 1 {
		return fmt.Errorf("model.max_output_tokens must be at least 1")
	}
	if mc.RateLimitPerMinute < 1 {
		return fmt.Errorf("model.rate_limit_per_minute must be at least 1")
	}
	return nil
}

// LoadSecrets loads sensitive credentials from environment variables
func LoadSecrets() (*Secrets, error) {
	secrets := &Secrets{
		APIKeys: make(map[string]string),
	}

	// Generic API key works with any OpenAI-compatible provider
	if key := os.Getenv("API_KEY"); key != "" {
		secrets.APIKeys["generic"] = key
	}

	// Provider-specific keys override the generic one
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		secrets.APIKeys["openai"] = key
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		secrets.APIKeys["anthropic"] = key
	}
	if key := os.Getenv("TOGETHER_API_KEY"); key != "" {
		secrets.APIKeys["together"] = key
	}

	return secrets, nil
}

// GetAPIKey returns the API key for a given base URL
func (s *Secrets) GetAPIKey(baseURL string) string {
	if strings.Contains(baseURL, "openai.com") {
		if key := s.APIKeys["openai"]; key != "" {
			return key
		}
	}
	if strings.Contains(baseURL, "anthropic.com") {
		if key := s.APIKeys["anthropic"]; key != "" {
			return key
		}
	}
	if strings.Contains(baseURL, "together.xyz") || strings.Contains(baseURL, "together.ai") {
		if key := s.APIKeys["together"]; key != "" {
			return key
		}
	}

	// Fall back to generic API_KEY for any OpenAI-compatible provider
	if key := s.APIKeys["generic"]; key != "" {
		return key
	}

	// Empty is allowed (local server without auth)
	return ""
}
