package parser

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/lamim/replicaforge/internal/util"
)

var (
	fenceOpenRe     = regexp.MustCompile("(?m)^\\s*```(?:json)?\\s*$")
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	missingCommaRe  = regexp.MustCompile(`}(\s*)"`)
)

// repairStrategy attempts one class of fix on a broken JSON candidate.
// The chain stops at the first candidate that validates.
type repairStrategy struct {
	name  string
	apply func(string) string
}

var repairChain = []repairStrategy{
	{"escape control characters", escapeControlChars},
	{"collapse doubled quotes", fixDoubledQuotes},
	{"remove trailing commas", removeTrailingCommas},
	{"close unterminated strings", closeUnterminatedStrings},
	{"insert missing commas", insertMissingCommas},
}

// ExtractJSON locates the outermost JSON value in a model response. It
// strips markdown code fences first, then slices from the first opening
// brace or bracket to the last matching closer. Returns ErrNoJSONFound
// when the response carries no JSON at all.
func ExtractJSON(raw string) (string, error) {
	cleaned := fenceOpenRe.ReplaceAllString(raw, "")

	objStart := strings.IndexByte(cleaned, '{')
	arrStart := strings.IndexByte(cleaned, '[')

	start, closer := objStart, byte('}')
	if start < 0 || (arrStart >= 0 && arrStart < start) {
		start, closer = arrStart, ']'
	}
	if start < 0 {
		return "", ErrNoJSONFound
	}

	end := strings.LastIndexByte(cleaned, closer)
	if end <= start {
		return "", ErrNoJSONFound
	}
	return cleaned[start : end+1], nil
}

// RepairJSON runs the repair chain over a candidate that failed to decode.
// Each strategy is first tried on its own: one class of breakage can mask
// another, and an earlier fix can destroy a later one's input (globally
// escaping control characters merges the lines the per-line
// unterminated-string repair keys on). If no single strategy validates,
// all of them are applied cumulatively as a last resort. Returns the
// repaired text and the name of the strategy that produced a valid
// document, or ok=false when every strategy is exhausted.
func RepairJSON(candidate string) (repaired string, strategy string, ok bool) {
	for _, s := range repairChain {
		fixed := s.apply(candidate)
		if json.Valid([]byte(fixed)) {
			return fixed, s.name, true
		}
	}

	current := candidate
	for _, s := range repairChain {
		current = s.apply(current)
		if json.Valid([]byte(current)) {
			return current, "combined through "+s.name, true
		}
	}
	return candidate, "", false
}

// DecodeValue extracts, repairs if necessary, and unmarshals the JSON value
// embedded in raw. snippetLen bounds the payload excerpt attached to an
// unrecoverable failure.
func DecodeValue(raw string, v any, snippetLen int) error {
	_, err := decodeValue(raw, v, snippetLen)
	return err
}

// decodeValue additionally reports which repair strategy landed, or "" when
// the payload decoded cleanly.
func decodeValue(raw string, v any, snippetLen int) (string, error) {
	candidate, err := ExtractJSON(raw)
	if err != nil {
		return "", err
	}

	if err := json.Unmarshal([]byte(candidate), v); err == nil {
		return "", nil
	}

	repaired, strategy, ok := RepairJSON(candidate)
	if !ok {
		return "", &UnrecoverableParseError{
			Reason:  "all repair strategies exhausted",
			Snippet: util.Snippet(candidate, snippetLen),
		}
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return "", &UnrecoverableParseError{
			Reason:  err.Error(),
			Snippet: util.Snippet(repaired, snippetLen),
		}
	}
	return strategy, nil
}

// memberStartRe matches text that begins a new object member or closes a
// container. Used to tell an in-string newline apart from a string the
// model forgot to terminate.
var memberStartRe = regexp.MustCompile(`^[ \t]*(?:"[^"\n]*"[ \t]*:|[}\]])`)

// escapeControlChars walks the candidate tracking string state and escapes
// raw newlines, tabs and carriage returns that appear inside string values.
// A newline followed by what reads as the next member means the string was
// never terminated; the string is closed there instead, with any trailing
// comma hoisted out of the value. Other control characters inside strings
// are dropped.
func escapeControlChars(s string) string {
	buf := make([]byte, 0, len(s)+16)

	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			buf = append(buf, c)
			escaped = false
			continue
		}
		switch {
		case inString && c == '\\':
			buf = append(buf, c)
			escaped = true
		case c == '"':
			inString = !inString
			buf = append(buf, c)
		case inString && c == '\n':
			if memberStartRe.MatchString(s[i+1:]) {
				if n := len(buf); n > 0 && buf[n-1] == ',' {
					buf = append(buf[:n-1], '"', ',')
				} else {
					buf = append(buf, '"')
				}
				buf = append(buf, '\n')
				inString = false
			} else {
				buf = append(buf, '\\', 'n')
			}
		case inString && c == '\t':
			buf = append(buf, '\\', 't')
		case inString && c == '\r':
			buf = append(buf, '\\', 'r')
		case inString && c < 0x20:
			// drop
		default:
			buf = append(buf, c)
		}
	}
	return string(buf)
}

// fixDoubledQuotes rewrites "" inside a value as an escaped quote. A ""
// directly after a structural character is a legitimate empty string and
// is left alone.
func fixDoubledQuotes(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == '"' && i+1 < len(s) && s[i+1] == '"' {
			prev := lastNonSpace(s, i)
			next := nextNonSpace(s, i+2)
			if !isStructural(prev) && next != ',' && next != '}' && next != ']' && next != ':' {
				b.WriteString(`\"`)
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func removeTrailingCommas(s string) string {
	return trailingCommaRe.ReplaceAllString(s, "$1")
}

// closeUnterminatedStrings appends a closing quote to any line with an odd
// number of unescaped quotes, before a trailing comma when one is present.
func closeUnterminatedStrings(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if countUnescapedQuotes(line)%2 == 0 {
			continue
		}
		trimmed := strings.TrimRight(line, " \t")
		if strings.HasSuffix(trimmed, ",") {
			lines[i] = trimmed[:len(trimmed)-1] + `",`
		} else {
			lines[i] = trimmed + `"`
		}
	}
	return strings.Join(lines, "\n")
}

// insertMissingCommas adds the comma the model dropped between a closing
// brace and the next key.
func insertMissingCommas(s string) string {
	return missingCommaRe.ReplaceAllString(s, `},$1"`)
}

func countUnescapedQuotes(line string) int {
	n := 0
	escaped := false
	for i := 0; i < len(line); i++ {
		switch {
		case escaped:
			escaped = false
		case line[i] == '\\':
			escaped = true
		case line[i] == '"':
			n++
		}
	}
	return n
}

func lastNonSpace(s string, before int) byte {
	for i := before - 1; i >= 0; i-- {
		if s[i] != ' ' && s[i] != '\t' && s[i] != '\n' && s[i] != '\r' {
			return s[i]
		}
	}
	return 0
}

func nextNonSpace(s string, from int) byte {
	for i := from; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' && s[i] != '\n' && s[i] != '\r' {
			return s[i]
		}
	}
	return 0
}

func isStructural(c byte) bool {
	switch c {
	case ':', ',', '[', '{', 0:
		return true
	}
	return false
}
