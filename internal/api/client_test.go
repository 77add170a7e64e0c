package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/lamim/replicaforge/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testModelConfig(baseURL string) config.ModelConfig {
	return config.ModelConfig{
		BaseURL:            baseURL,
		ModelName:          "test-model",
		Temperature:        0.7,
		TopP:               1.0,
		MaxOutputTokens:    100,
		RateLimitPerMinute: 600,
		HTTPTimeoutSeconds: 10,
		MaxRetries:         2,
	}
}

func completionBody(content string) string {
	return `{
		"id": "test-123",
		"object": "chat.completion",
		"created": 1234567890,
		"model": "test-model",
		"choices": [{
			"index": 0,
			"message": {"role": "assistant", "content": "` + content + `"},
			"finish_reason": "stop"
		}],
		"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
	}`
}

func TestGenerate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Expected Authorization header 'Bearer test-key', got '%s'", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type 'application/json', got '%s'", r.Header.Get("Content-Type"))
		}

		var req ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("Unexpected messages: %+v", req.Messages)
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(completionBody("Test response")))
	}))
	defer server.Close()

	client := NewClient(testModelConfig(server.URL), "test-key", nil, testLogger())

	result, err := client.Generate(context.Background(), "system instruction", "user instruction")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.Content != "Test response" {
		t.Errorf("Expected content 'Test response', got '%s'", result.Content)
	}
	if result.Usage.InputTokens != 10 || result.Usage.OutputTokens != 5 || result.Usage.TotalTokens != 15 {
		t.Errorf("Unexpected usage: %+v", result.Usage)
	}
}

func TestGenerate_JSONMode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_object" {
			t.Errorf("Expected json_object response format, got %+v", req.ResponseFormat)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(completionBody("{}")))
	}))
	defer server.Close()

	cfg := testModelConfig(server.URL)
	cfg.UseJSONMode = true
	client := NewClient(cfg, "key", nil, testLogger())

	if _, err := client.Generate(context.Background(), "s", "u"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
}

func TestChatCompletion_RetriesServerError(t *testing.T) {
	callCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		if callCount < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error": {"message": "overloaded", "type": "server_error"}}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(completionBody("ok")))
	}))
	defer server.Close()

	cfg := testModelConfig(server.URL)
	client := NewClient(cfg, "key", nil, testLogger())
	client.baseRetryDelay = 0 // keep the test fast

	resp, err := client.ChatCompletion(context.Background(), []Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("Expected eventual success, got: %v", err)
	}
	if callCount != 3 {
		t.Errorf("Expected 3 attempts, got %d", callCount)
	}
	if resp.Choices[0].Message.Content != "ok" {
		t.Errorf("Unexpected content: %s", resp.Choices[0].Message.Content)
	}
}

func TestChatCompletion_NoRetryOnBadRequest(t *testing.T) {
	callCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"message": "bad model name", "type": "invalid_request_error", "code": "model_not_found"}}`))
	}))
	defer server.Close()

	client := NewClient(testModelConfig(server.URL), "key", nil, testLogger())

	_, err := client.ChatCompletion(context.Background(), []Message{{Role: "user", Content: "hi"}})
	if err == nil {
		t.Fatal("Expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Code != "model_not_found" {
		t.Errorf("Unexpected APIError: %+v", apiErr)
	}
	if callCount != 1 {
		t.Errorf("Expected exactly 1 attempt, got %d", callCount)
	}
}

func TestChatCompletion_MaxRetriesDisabled(t *testing.T) {
	callCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := testModelConfig(server.URL)
	cfg.MaxRetries = -1
	client := NewClient(cfg, "key", nil, testLogger())

	if _, err := client.ChatCompletion(context.Background(), []Message{{Role: "user", Content: "hi"}}); err == nil {
		t.Fatal("Expected error")
	}
	if callCount != 1 {
		t.Errorf("Expected exactly 1 attempt with retries disabled, got %d", callCount)
	}
}

func TestRateLimiterPool_SharedAcrossClients(t *testing.T) {
	pool := NewRateLimiterPool()
	a := pool.GetOrCreate("endpoint:model", 60)
	b := pool.GetOrCreate("endpoint:model", 120)
	if a != b {
		t.Error("expected the same limiter instance for one endpoint")
	}
}
