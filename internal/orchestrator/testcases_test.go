package orchestrator

import (
	"testing"

	"github.com/lamim/replicaforge/pkg/models"
)

func TestFormatTestCases(t *testing.T) {
	original := []models.TestCase{
		{ID: "source-1", DisplayText: "First check", Criteria: "works", Order: 5, Weightage: 20, EvaluationType: "MANUAL"},
		{ID: "source-2", DisplayText: "Second check"},
	}

	got := FormatTestCases(original, len(original))
	if len(got) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(got))
	}

	if got[0].ID == "source-1" || got[1].ID == "source-2" {
		t.Error("source IDs must be replaced with fresh identifiers")
	}
	if got[0].ID == got[1].ID {
		t.Error("fresh identifiers must be unique")
	}

	// Explicit fields survive
	if got[0].Order != 5 || got[0].Weightage != 20 || got[0].EvaluationType != "MANUAL" {
		t.Errorf("explicit fields lost: %+v", got[0])
	}
	// Missing fields take defaults
	if got[1].Order != 2 {
		t.Errorf("order = %d, want positional 2", got[1].Order)
	}
	if got[1].EvaluationType != models.DefaultEvaluationType {
		t.Errorf("evaluation type = %q", got[1].EvaluationType)
	}
	if got[1].Weightage != models.DefaultWeightage {
		t.Errorf("weightage = %d", got[1].Weightage)
	}
}

func TestFormatTestCasesLimit(t *testing.T) {
	original := []models.TestCase{
		{DisplayText: "a"}, {DisplayText: "b"}, {DisplayText: "c"},
	}
	if got := FormatTestCases(original, 2); len(got) != 2 {
		t.Errorf("expected limit of 2, got %d", len(got))
	}
	if got := FormatTestCases(original, 0); len(got) != 3 {
		t.Errorf("zero limit must mean no cap, got %d", len(got))
	}
	if got := FormatTestCases(nil, 5); len(got) != 0 {
		t.Errorf("expected empty result, got %d", len(got))
	}
}

func TestExtractTagValue(t *testing.T) {
	tags := []string{
		"COURSE_web_development",
		"SUB_TOPIC_dom_manipulation",
		"MODULE_javascript_basics",
		"UNIT_event_handling",
	}

	tests := []struct {
		prefix string
		want   string
	}{
		{TagPrefixSubtopic, "Dom Manipulation"},
		{TagPrefixCourse, "Web Development"},
		{TagPrefixModule, "Javascript Basics"},
		{TagPrefixUnit, "Event Handling"},
		{"MISSING_", ""},
	}
	for _, tt := range tests {
		if got := ExtractTagValue(tags, tt.prefix); got != tt.want {
			t.Errorf("ExtractTagValue(%q) = %q, want %q", tt.prefix, got, tt.want)
		}
	}

	if got := ExtractTagValue(nil, TagPrefixCourse); got != "" {
		t.Errorf("expected empty value for nil tags, got %q", got)
	}
}
