package config

// GetDefaultSystemTemplate returns the default system instruction for
// variant generation. The compiler renders it once per unit with that unit's
// identity.
func GetDefaultSystemTemplate() string {
	return `You are a web developer who creates themed code replicas with completely unique contexts and vibrant color schemes.

MANDATORY REQUIREMENTS FOR "{{.ThemeName}}" THEME:
1. Transform ALL text content to match "{{.ThemeName}}" context exactly
2. Use ONLY IDs with "{{.IDSuffix}}" suffix (e.g., 'calculate-{{.IDSuffix}}', 'total-{{.IDSuffix}}')
3. ALL HTML element IDs must use the "{{.IDSuffix}}" suffix consistently
4. ALL JavaScript getElementById calls must match HTML IDs exactly
5. Replace ALL labels, headings, and UI text to fit "{{.ThemeName}}" context

CRITICAL COLOR REQUIREMENTS:
- Primary: {{.Primary}} - main buttons, headers, important elements
- Secondary: {{.Secondary}} - accents, borders, secondary buttons
- Accent: {{.Accent}} - hover effects, active states, highlights
- Background: {{.Background}} - main background areas
- Text: {{.Text}} - all text content

FORBIDDEN COLORS:
- NO white (#FFFFFF, #FFF, white) backgrounds
- NO black (#000000, #000, black) backgrounds
- NO gray (#808080, gray) as primary colors
- MUST use the provided colors EXACTLY

{{.FormatContract}}`
}

// GetDefaultUserTemplate returns the default per-unit user instruction
func GetDefaultUserTemplate() string {
	return `Create a web coding replica of the original content below.

THEME: {{.ThemeName}}

CRITICAL REQUIREMENTS FOR "{{.ThemeName}}" THEME:
1. Use theme suffix "{{.IDSuffix}}" in ALL IDs (e.g., calculate-{{.IDSuffix}}, total-{{.IDSuffix}})
2. Transform ALL text content to match "{{.ThemeName}}" context
3. Change labels, headings, and descriptions to fit the theme
4. ALL HTML IDs must match ALL JavaScript getElementById calls exactly
5. Apply the MANDATORY color scheme from the system instructions exactly

Example transformations for "{{.ThemeName}}":
- Original: "Calculate Total" -> New: "Calculate {{.ThemeName}} Total"
- Original: id="calculate" -> New: id="calculate-{{.IDSuffix}}"
- Original: getElementById('total') -> New: getElementById('total-{{.IDSuffix}}')

ORIGINAL_HTML_CODE:
{{.Markup}}

ORIGINAL_CSS_CODE:
{{.Style}}

ORIGINAL_JS_CODE:
{{.Script}}

QUESTION_TEXT:
{{.Question}}

TEST_CASES:
{{.TestCasesText}}

Generate exactly ONE replica with "{{.ThemeName}}" theme, consistent ID naming using the "{{.IDSuffix}}" suffix, and the EXACT color scheme provided.`
}

// GetDelimiterFormatContract returns the output-format section instructing
// the model to emit the sentinel-tagged text protocol.
func GetDelimiterFormatContract() string {
	return `OUTPUT FORMAT (use this structure exactly, do NOT use JSON):

THEME: [theme name]
HTML_START
[complete HTML code]
HTML_END
CSS_START
[complete CSS code with matching selectors and the mandatory color scheme]
CSS_END
JS_START
[complete JavaScript code with matching getElementById calls]
JS_END
QUESTION_START
[modified question text with the new theme context]
QUESTION_END
TESTS_START
[test cases separated by newlines, adapted for the theme]
TESTS_END`
}

// GetJSONFormatContract returns the output-format section for the legacy
// single-object JSON protocol.
func GetJSONFormatContract() string {
	return `OUTPUT FORMAT - CRITICAL JSON RULES, FOLLOW EXACTLY:

1. Return ONLY valid JSON - no text, no markdown, no explanations
2. ALL code must be on single lines with \n for line breaks
3. ALL quotes in code must be escaped as \"
4. ALL backslashes must be doubled as \\
5. Remove ALL comments from code

REQUIRED JSON FORMAT:
{
"replica_1": {
"short_text": "Theme name (no quotes)",
"html_code": "Complete HTML (escaped and minified)",
"css_code": "Complete CSS (escaped and minified)",
"js_code": "Complete JavaScript (escaped and minified)",
"question_text": "Brief modified question (under 300 chars)",
"test_cases": "Test case 1\nTest case 2",
"html_solution": "Same as html_code",
"css_solution": "Same as css_code",
"js_solution": "Same as js_code",
"subtopic": "",
"course": "",
"module": "",
"unit": ""
}
}`
}
