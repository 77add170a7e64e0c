package orchestrator

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/lamim/replicaforge/pkg/models"
)

// Tag prefixes carrying curriculum metadata on a request.
const (
	TagPrefixSubtopic = "SUB_TOPIC_"
	TagPrefixCourse   = "COURSE_"
	TagPrefixModule   = "MODULE_"
	TagPrefixUnit     = "UNIT_"
)

// FormatTestCases rebuilds the source test cases for one replica: every
// case gets a fresh identifier so replicas never share IDs with the source
// or each other, missing fields take their defaults, and order is filled
// positionally when absent. A positive limit caps how many cases are taken.
func FormatTestCases(original []models.TestCase, limit int) []models.TestCase {
	n := len(original)
	if limit > 0 && limit < n {
		n = limit
	}

	formatted := make([]models.TestCase, 0, n)
	for i, tc := range original[:n] {
		out := models.TestCase{
			ID:             uuid.New().String(),
			DisplayText:    tc.DisplayText,
			Criteria:       tc.Criteria,
			EvaluationType: tc.EvaluationType,
			Order:          tc.Order,
			Weightage:      tc.Weightage,
			FailureReason:  tc.FailureReason,
		}
		if out.EvaluationType == "" {
			out.EvaluationType = models.DefaultEvaluationType
		}
		if out.Order == 0 {
			out.Order = i + 1
		}
		if out.Weightage == 0 {
			out.Weightage = models.DefaultWeightage
		}
		formatted = append(formatted, out)
	}
	return formatted
}

// ExtractTagValue finds the first tag with the given prefix and returns its
// value in display form: underscores become spaces, words are title-cased.
func ExtractTagValue(tags []string, prefix string) string {
	for _, tag := range tags {
		if strings.HasPrefix(tag, prefix) {
			value := strings.TrimPrefix(tag, prefix)
			value = strings.ReplaceAll(value, "_", " ")
			return titleCase(value)
		}
	}
	return ""
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
