// Package parser turns raw model responses into replica records. It speaks
// two protocols: the sentinel-delimited text format, and a legacy
// single-object JSON format that runs through a layered repair chain when
// the model emits broken JSON.
package parser

import (
	"strings"

	"github.com/lamim/replicaforge/internal/util"
	"github.com/lamim/replicaforge/pkg/models"
)

// DefaultSnippetLength bounds the payload excerpt attached to parse errors.
const DefaultSnippetLength = 500

// DefaultFallbackTitle is used when a response omits its theme label.
const DefaultFallbackTitle = "Custom Theme"

// Engine parses model responses according to a configured protocol.
type Engine struct {
	protocol      models.Protocol
	snippetLen    int
	fallbackTitle string
	onRepair      func(strategy string)
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithSnippetLength overrides the error excerpt length.
func WithSnippetLength(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.snippetLen = n
		}
	}
}

// WithRepairHook registers a callback invoked with the strategy name each
// time a broken payload is successfully repaired. Must be safe for
// concurrent use.
func WithRepairHook(hook func(strategy string)) EngineOption {
	return func(e *Engine) {
		e.onRepair = hook
	}
}

// WithFallbackTitle overrides the title used when no theme label is found.
func WithFallbackTitle(title string) EngineOption {
	return func(e *Engine) {
		if title != "" {
			e.fallbackTitle = title
		}
	}
}

// NewEngine creates a parser for the given protocol.
func NewEngine(protocol models.Protocol, opts ...EngineOption) *Engine {
	e := &Engine{
		protocol:      protocol,
		snippetLen:    DefaultSnippetLength,
		fallbackTitle: DefaultFallbackTitle,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Parse extracts a replica record from a raw model response. A failure never
// carries the full payload, only a bounded snippet inside the error.
func (e *Engine) Parse(raw string) (*models.ReplicaRecord, error) {
	switch e.protocol {
	case models.ProtocolJSON:
		return e.parseJSON(raw)
	default:
		return e.parseDelimited(raw)
	}
}

// parseDelimited always yields a record. A section the response omits
// comes back as an empty field; downstream consumers decide what a usable
// record needs.
func (e *Engine) parseDelimited(raw string) (*models.ReplicaRecord, error) {
	secs := splitSections(raw)

	title := secs.Theme
	if title == "" {
		title = e.fallbackTitle
	}

	return &models.ReplicaRecord{
		Title:         title,
		Markup:        secs.Markup,
		Style:         secs.Style,
		Script:        secs.Script,
		Question:      secs.Question,
		TestCasesText: secs.Tests,
	}, nil
}

// jsonReplica mirrors the legacy JSON protocol's per-replica object.
type jsonReplica struct {
	ShortText      string `json:"short_text"`
	Markup         string `json:"html_code"`
	Style          string `json:"css_code"`
	Script         string `json:"js_code"`
	Question       string `json:"question_text"`
	TestCasesText  string `json:"test_cases"`
	MarkupSolution string `json:"html_solution"`
	StyleSolution  string `json:"css_solution"`
	ScriptSolution string `json:"js_solution"`
	Subtopic       string `json:"subtopic"`
	Course         string `json:"course"`
	Module         string `json:"module"`
	Unit           string `json:"unit"`
}

func (e *Engine) parseJSON(raw string) (*models.ReplicaRecord, error) {
	// The model may wrap the replica in a replica_N envelope or return the
	// object bare. Try the envelope first.
	var envelope map[string]jsonReplica
	if strategy, err := decodeValue(raw, &envelope, e.snippetLen); err == nil {
		for key, rep := range envelope {
			if strings.HasPrefix(key, "replica_") {
				e.noteRepair(strategy)
				return e.recordFromJSON(rep), nil
			}
		}
	}

	var rep jsonReplica
	strategy, err := decodeValue(raw, &rep, e.snippetLen)
	if err != nil {
		return nil, err
	}
	e.noteRepair(strategy)
	if rep.Markup == "" && rep.Style == "" && rep.Script == "" {
		return nil, &UnrecoverableParseError{
			Reason:  "decoded JSON carries no code fields",
			Snippet: util.Snippet(raw, e.snippetLen),
		}
	}
	return e.recordFromJSON(rep), nil
}

func (e *Engine) noteRepair(strategy string) {
	if strategy != "" && e.onRepair != nil {
		e.onRepair(strategy)
	}
}

func (e *Engine) recordFromJSON(rep jsonReplica) *models.ReplicaRecord {
	title := strings.TrimSpace(rep.ShortText)
	title = replicaTailRe.ReplaceAllString(title, "")
	if title == "" {
		title = e.fallbackTitle
	}
	return &models.ReplicaRecord{
		Title:          title,
		Markup:         rep.Markup,
		Style:          rep.Style,
		Script:         rep.Script,
		Question:       rep.Question,
		TestCasesText:  rep.TestCasesText,
		MarkupSolution: rep.MarkupSolution,
		StyleSolution:  rep.StyleSolution,
		ScriptSolution: rep.ScriptSolution,
		Subtopic:       rep.Subtopic,
		Course:         rep.Course,
		Module:         rep.Module,
		Unit:           rep.Unit,
	}
}
