// Package tokens provides token estimation for prompts and a persistent
// ledger of cumulative usage across sessions.
package tokens

import (
	"math"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// WordTokenRatio approximates tokens per word when no tokenizer is
// available for the configured model.
const WordTokenRatio = 1.3

// fallbackEncoding covers models tiktoken has no mapping for.
const fallbackEncoding = "cl100k_base"

// Estimator counts tokens for a model. The tokenizer is resolved lazily on
// first use; when neither the model mapping nor the fallback encoding can
// be loaded, estimates degrade to a word-count heuristic.
type Estimator struct {
	model string

	once    sync.Once
	encoder *tiktoken.Tiktoken
}

// NewEstimator creates an estimator for the given model name.
func NewEstimator(model string) *Estimator {
	return &Estimator{model: model}
}

// Estimate returns the token count of text, exact when a tokenizer is
// available and approximate otherwise.
func (e *Estimator) Estimate(text string) int {
	if text == "" {
		return 0
	}

	e.once.Do(func() {
		enc, err := tiktoken.EncodingForModel(e.model)
		if err != nil {
			enc, err = tiktoken.GetEncoding(fallbackEncoding)
		}
		if err == nil {
			e.encoder = enc
		}
	})

	if e.encoder != nil {
		return len(e.encoder.Encode(text, nil, nil))
	}
	return ApproximateTokens(text)
}

// EstimatePrompt returns the combined count of a system/user pair.
func (e *Estimator) EstimatePrompt(system, user string) int {
	return e.Estimate(system) + e.Estimate(user)
}

// ApproximateTokens estimates a token count from the word count alone.
func ApproximateTokens(text string) int {
	words := len(strings.Fields(text))
	return int(math.Round(float64(words) * WordTokenRatio))
}
