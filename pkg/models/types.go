package models

import "time"

// Protocol selects the output format the model is instructed to emit and the
// extraction strategy applied to its response.
type Protocol string

const (
	// ProtocolDelimiter uses the sentinel-tagged text format (THEME:, HTML_START...).
	// Default; tolerates partial output without failing outright.
	ProtocolDelimiter Protocol = "delimiter"
	// ProtocolJSON uses the legacy single-object JSON format with layered repair
	ProtocolJSON Protocol = "json"
)

// DefaultEvaluationType is applied to test cases that do not specify one
const DefaultEvaluationType = "CLIENT_SIDE_EVALUATION"

// DefaultWeightage is applied to test cases that do not specify a weight
const DefaultWeightage = 10

// TestCase is a single acceptance check attached to a generation request
type TestCase struct {
	ID             string `json:"id"`
	DisplayText    string `json:"display_text"`
	Criteria       string `json:"criteria"`
	EvaluationType string `json:"evaluation_type,omitempty"`
	Order          int    `json:"order"`
	Weightage      int    `json:"weightage,omitempty"`
	FailureReason  string `json:"reason_for_failure,omitempty"`
}

// CodeDetail is one language entry inside the request's solutions metadata
type CodeDetail struct {
	Language string `json:"language"` // HTML, CSS, JAVASCRIPT
	CodeData string `json:"code_data"`
}

// SolutionMetadata carries the canonical code triple in its original envelope
type SolutionMetadata struct {
	CodeDetails []CodeDetail `json:"code_details"`
}

// GenerationRequest is the immutable input to a batch: one canonical
// markup/style/script triple, its question and test cases, and how many
// themed variants to produce.
type GenerationRequest struct {
	QuestionText      string             `json:"question_text"`
	ShortText         string             `json:"short_text"`
	Markup            string             `json:"html_code,omitempty"`
	Style             string             `json:"css_code,omitempty"`
	Script            string             `json:"js_code,omitempty"`
	SolutionsMetadata []SolutionMetadata `json:"solutions_metadata,omitempty"`
	TestCases         []TestCase         `json:"test_cases"`
	ReplicaType       string             `json:"replica_type,omitempty"`
	UnitCount         int                `json:"num_replicas"`
	TagNames          []string           `json:"tag_names,omitempty"`
}

// Palette is a five-slot color scheme assigned to a unit
type Palette struct {
	Label      string `json:"label,omitempty"`
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

// Identity is the theme + palette + derived element-ID suffix assigned to a
// unit. Within a batch of size N <= pool size, no two units share one.
type Identity struct {
	ThemeName    string  `json:"theme_name"`
	PaletteLabel string  `json:"palette_label,omitempty"`
	IDSuffix     string  `json:"id_suffix"`
	Colors       Palette `json:"colors"`
}

// ReplicaRecord is the structured record harvested from one model response.
// The three solution fields always equal their code counterparts: a variant's
// own code is defined to be its own solution.
type ReplicaRecord struct {
	Title          string     `json:"short_text"`
	Markup         string     `json:"html_code"`
	Style          string     `json:"css_code"`
	Script         string     `json:"js_code"`
	Question       string     `json:"question_text"`
	TestCases      []TestCase `json:"test_cases"`
	TestCasesText  string     `json:"-"` // raw harvested text before re-numbering
	MarkupSolution string     `json:"html_solution"`
	StyleSolution  string     `json:"css_solution"`
	ScriptSolution string     `json:"js_solution"`
	Subtopic       string     `json:"subtopic"`
	Course         string     `json:"course"`
	Module         string     `json:"module"`
	Unit           string     `json:"unit"`
}

// UnitOutcome is the terminal state of one unit: a parsed record or a
// failure with enough raw context to diagnose without re-running.
type UnitOutcome struct {
	Record     *ReplicaRecord `json:"record,omitempty"`
	Err        string         `json:"error,omitempty"`
	RawSnippet string         `json:"raw_response,omitempty"`
}

// Parsed reports whether the unit produced a usable record
func (u UnitOutcome) Parsed() bool {
	return u.Record != nil
}

// GenerationUnit is one requested variant, indexed 1..N within a batch.
// Created at dispatch time, its outcome is written exactly once.
type GenerationUnit struct {
	Index          int           `json:"index"`
	Identity       Identity      `json:"identity"`
	CompiledPrompt string        `json:"-"`
	RawResponse    string        `json:"-"`
	Outcome        UnitOutcome   `json:"outcome"`
	Duration       time.Duration `json:"-"`
}

// TokenUsage aggregates estimated token cost for a batch
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// BatchResult is the complete ordered result set for one batch. Every
// requested slot is present, successes and failures side by side.
type BatchResult struct {
	Units []GenerationUnit `json:"units"`
	Usage TokenUsage       `json:"token_usage"`
	Stats SessionStats     `json:"stats"`
}

// Unit returns the unit at 1-based index i, or nil if out of range
func (b *BatchResult) Unit(i int) *GenerationUnit {
	if i < 1 || i > len(b.Units) {
		return nil
	}
	return &b.Units[i-1]
}

// SessionStats tracks statistics for a batch run
type SessionStats struct {
	StartTime       time.Time
	EndTime         time.Time
	TotalUnits      int
	SuccessCount    int
	FailureCount    int
	TotalDuration   time.Duration
	AverageDuration time.Duration
}
