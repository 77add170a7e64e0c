package models

import (
	"fmt"
	"strings"
)

// CodeTriple returns the canonical markup/style/script sources. Flat fields
// win; otherwise the triple is pulled out of the first solutions_metadata
// entry by language tag.
func (r *GenerationRequest) CodeTriple() (markup, style, script string) {
	markup, style, script = r.Markup, r.Style, r.Script
	if markup != "" || style != "" || script != "" {
		return markup, style, script
	}
	if len(r.SolutionsMetadata) == 0 {
		return "", "", ""
	}
	for _, detail := range r.SolutionsMetadata[0].CodeDetails {
		switch strings.ToUpper(detail.Language) {
		case "HTML":
			markup = detail.CodeData
		case "CSS":
			style = detail.CodeData
		case "JAVASCRIPT", "JS":
			script = detail.CodeData
		}
	}
	return markup, style, script
}

// Validate checks the structural requirements a batch needs before any unit
// is attempted. A request failing here aborts the batch up front; per-unit
// errors never do.
func (r *GenerationRequest) Validate() error {
	if r.QuestionText == "" {
		return fmt.Errorf("question_text is required")
	}
	if r.ShortText == "" {
		return fmt.Errorf("short_text is required")
	}
	if r.UnitCount < 1 {
		return fmt.Errorf("num_replicas must be at least 1 (got %d)", r.UnitCount)
	}
	markup, style, script := r.CodeTriple()
	if markup == "" && style == "" && script == "" {
		return fmt.Errorf("no source code found: provide html_code/css_code/js_code or solutions_metadata")
	}
	return nil
}
