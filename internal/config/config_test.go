package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lamim/replicaforge/pkg/models"
)

const minimalConfig = `
[model]
base_url = "https://api.example.com/v1"
model_name = "test-model"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, _, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Generation.Protocol != models.ProtocolDelimiter {
		t.Errorf("protocol = %q, want delimiter", cfg.Generation.Protocol)
	}
	if cfg.Generation.Concurrency != 4 {
		t.Errorf("concurrency = %d, want 4", cfg.Generation.Concurrency)
	}
	if cfg.Generation.SnippetLength != 500 {
		t.Errorf("snippet_length = %d, want 500", cfg.Generation.SnippetLength)
	}
	if cfg.Generation.FallbackTitle != "Custom Theme" {
		t.Errorf("fallback_title = %q", cfg.Generation.FallbackTitle)
	}
	if cfg.Generation.MaxUnitsPerBatch != DefaultMaxUnitsPerBatch {
		t.Errorf("max_units_per_batch = %d", cfg.Generation.MaxUnitsPerBatch)
	}
	if cfg.Model.Temperature != 0.7 || cfg.Model.MaxOutputTokens != 2500 {
		t.Errorf("model defaults not applied: %+v", cfg.Model)
	}
	if cfg.Model.TokenizerModel != "test-model" {
		t.Errorf("tokenizer_model = %q, want model name", cfg.Model.TokenizerModel)
	}
	if cfg.PromptTemplates.SystemInstruction == "" || cfg.PromptTemplates.UserInstruction == "" {
		t.Error("default templates not applied")
	}
}

func TestLoadRejectsBadProtocol(t *testing.T) {
	content := minimalConfig + `
[generation]
protocol = "yaml"
`
	if _, _, err := Load(writeConfig(t, content)); err == nil || !strings.Contains(err.Error(), "protocol") {
		t.Fatalf("expected protocol error, got %v", err)
	}
}

func TestLoadRejectsMissingModel(t *testing.T) {
	if _, _, err := Load(writeConfig(t, "[generation]\nconcurrency = 2\n")); err == nil {
		t.Fatal("expected error for missing model config")
	}
}

func TestLoadRejectsIncompletePalette(t *testing.T) {
	content := minimalConfig + `
[[pools.palettes]]
label = "Broken"
primary = "#FF6B6B"
`
	if _, _, err := Load(writeConfig(t, content)); err == nil || !strings.Contains(err.Error(), "palettes") {
		t.Fatalf("expected palette error, got %v", err)
	}
}

func TestLoadRejectsExcessiveConcurrency(t *testing.T) {
	content := minimalConfig + `
[generation]
concurrency = 1000
`
	if _, _, err := Load(writeConfig(t, content)); err == nil {
		t.Fatal("expected concurrency error")
	}
}

func TestMaxRetriesConvention(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Model.MaxRetries != 3 {
		t.Errorf("unset max_retries = %d, want 3", cfg.Model.MaxRetries)
	}

	cfg = &Config{}
	cfg.Model.MaxRetries = -1
	ApplyDefaults(cfg)
	if cfg.Model.MaxRetries != -1 {
		t.Errorf("explicit -1 must survive defaults, got %d", cfg.Model.MaxRetries)
	}
}

func TestGetAPIKey(t *testing.T) {
	secrets := &Secrets{APIKeys: map[string]string{
		"openai":  "sk-openai",
		"generic": "generic-key",
	}}

	tests := []struct {
		baseURL string
		want    string
	}{
		{"https://api.openai.com/v1", "sk-openai"},
		{"https://api.together.xyz/v1", "generic-key"},
		{"http://localhost:8080/v1", "generic-key"},
	}
	for _, tt := range tests {
		if got := secrets.GetAPIKey(tt.baseURL); got != tt.want {
			t.Errorf("GetAPIKey(%q) = %q, want %q", tt.baseURL, got, tt.want)
		}
	}

	empty := &Secrets{APIKeys: map[string]string{}}
	if got := empty.GetAPIKey("http://localhost:8080/v1"); got != "" {
		t.Errorf("expected empty key for unauthenticated local server, got %q", got)
	}
}

func TestLoadSecretsFromEnv(t *testing.T) {
	t.Setenv("API_KEY", "from-env")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	secrets, err := LoadSecrets()
	if err != nil {
		t.Fatalf("LoadSecrets failed: %v", err)
	}
	if secrets.APIKeys["generic"] != "from-env" || secrets.APIKeys["openai"] != "sk-test" {
		t.Errorf("secrets = %+v", secrets.APIKeys)
	}
}
