package parser

import (
	"regexp"
	"strings"
)

// Sentinel markers of the delimiter protocol. Each code section is fenced
// by a START/END pair, inline or on their own lines; the theme label rides
// on a single prefixed line.
var (
	themeLineRe    = regexp.MustCompile(`(?m)^\s*THEME:\s*(.+)$`)
	replicaTailRe  = regexp.MustCompile(`(?i)\s*-\s*Replica\s+\d+\s*$`)
	sectionPattern = `(?s)%s_START\s*(.*?)\s*%s_END`
)

// sections holds the raw text of every fenced block in a delimited response.
type sections struct {
	Theme    string
	Markup   string
	Style    string
	Script   string
	Question string
	Tests    string
}

// splitSections extracts every fenced block from a delimited response.
// Missing blocks come back empty rather than failing; the validator decides
// what is mandatory.
func splitSections(raw string) sections {
	return sections{
		Theme:    extractTheme(raw),
		Markup:   extractSection(raw, "HTML"),
		Style:    extractSection(raw, "CSS"),
		Script:   extractSection(raw, "JS"),
		Question: extractSection(raw, "QUESTION"),
		Tests:    extractSection(raw, "TESTS"),
	}
}

func extractSection(raw, name string) string {
	re := regexp.MustCompile(strings.ReplaceAll(sectionPattern, "%s", name))
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// extractTheme pulls the theme label off its sentinel line and drops any
// trailing "- Replica N" tag the model may have appended.
func extractTheme(raw string) string {
	m := themeLineRe.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	theme := strings.TrimSpace(m[1])
	theme = replicaTailRe.ReplaceAllString(theme, "")
	return strings.TrimSpace(theme)
}
