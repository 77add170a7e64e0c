package util

import (
	"strings"
	"testing"
)

func TestRenderTemplate(t *testing.T) {
	out, err := RenderTemplate("Hello {{.Name}}", map[string]interface{}{"Name": "World"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Hello World" {
		t.Errorf("got %q", out)
	}
}

func TestRenderTemplateForbiddenDirectives(t *testing.T) {
	for _, tmpl := range []string{
		"{{call .F}}",
		"{{define \"x\"}}{{end}}",
		"{{template \"x\"}}",
		"{{block \"x\" .}}{{end}}",
	} {
		if _, err := RenderTemplate(tmpl, nil); err == nil {
			t.Errorf("expected error for %q", tmpl)
		}
	}
}

func TestRenderTemplateMissingKey(t *testing.T) {
	if _, err := RenderTemplate("{{.Missing}}", map[string]interface{}{"Name": "x"}); err == nil {
		t.Error("expected error for missing key")
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly-10", 10, "exactly-10"},
		{"this is too long", 7, "this is..."},
		{"héllo wörld", 5, "héllo..."},
	}
	for _, tt := range tests {
		if got := TruncateString(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestSnippet(t *testing.T) {
	long := strings.Repeat("a", 600)
	if got := Snippet(long, 500); len(got) != 500 {
		t.Errorf("snippet length = %d, want 500", len(got))
	}
	if got := Snippet("short", 500); got != "short" {
		t.Errorf("got %q", got)
	}
}
