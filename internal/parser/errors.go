package parser

import (
	"errors"
	"fmt"
)

// ErrNoJSONFound indicates the model response contains no JSON object at all.
var ErrNoJSONFound = errors.New("no JSON object found in response")

// UnrecoverableParseError is returned when every repair strategy has been
// exhausted. Snippet carries a bounded prefix of the offending payload for
// logs and session reports.
type UnrecoverableParseError struct {
	Reason  string
	Snippet string
}

func (e *UnrecoverableParseError) Error() string {
	return fmt.Sprintf("unrecoverable parse failure: %s", e.Reason)
}
