// Package prompt compiles the per-unit system and user instructions sent to
// the model. Templates come from configuration; each unit is rendered with
// its own theme identity and the shared source material.
package prompt

import (
	"fmt"
	"strings"

	"github.com/lamim/replicaforge/internal/util"
	"github.com/lamim/replicaforge/pkg/models"
)

// Compiler renders instruction templates for generation units.
type Compiler struct {
	systemTmpl string
	userTmpl   string
	contract   string
}

// NewCompiler creates a compiler from the configured template pair and the
// output-format contract for the active protocol.
func NewCompiler(systemTmpl, userTmpl, contract string) *Compiler {
	return &Compiler{
		systemTmpl: systemTmpl,
		userTmpl:   userTmpl,
		contract:   contract,
	}
}

// Compile renders the system and user instructions for one unit.
func (c *Compiler) Compile(req *models.GenerationRequest, identity models.Identity) (system, user string, err error) {
	markup, style, script := req.CodeTriple()

	data := map[string]interface{}{
		"ThemeName":      identity.ThemeName,
		"IDSuffix":       identity.IDSuffix,
		"Primary":        identity.Colors.Primary,
		"Secondary":      identity.Colors.Secondary,
		"Accent":         identity.Colors.Accent,
		"Background":     identity.Colors.Background,
		"Text":           identity.Colors.Text,
		"FormatContract": c.contract,
		"Markup":         markup,
		"Style":          style,
		"Script":         script,
		"Question":       req.QuestionText,
		"TestCasesText":  SerializeTestCases(req.TestCases),
	}

	system, err = util.RenderTemplate(c.systemTmpl, data)
	if err != nil {
		return "", "", fmt.Errorf("failed to render system template: %w", err)
	}
	user, err = util.RenderTemplate(c.userTmpl, data)
	if err != nil {
		return "", "", fmt.Errorf("failed to render user template: %w", err)
	}
	return system, user, nil
}

// SerializeTestCases flattens the source test cases into the numbered text
// block the templates embed.
func SerializeTestCases(cases []models.TestCase) string {
	if len(cases) == 0 {
		return "No test cases provided"
	}

	var b strings.Builder
	for i, tc := range cases {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Test Case %d: %s", i+1, tc.DisplayText)
		if tc.Criteria != "" {
			fmt.Fprintf(&b, "\nCriteria: %s", tc.Criteria)
		}
	}
	return b.String()
}
