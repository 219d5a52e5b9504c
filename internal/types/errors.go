package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for specification validation. A structurally invalid
// document must never reach the evaluator: callers reject the whole
// document on the first of these, since running with a partially valid
// specification risks over- or under-hiding content.
var (
	// ErrBadSpecVersion indicates an unrecognized specVersion string.
	ErrBadSpecVersion = errors.New("unsupported specVersion")

	// ErrNoRules indicates a document with an empty or missing rule list.
	ErrNoRules = errors.New("specification has no rules")

	// ErrRuleNoMatcher indicates a rule carrying neither "all" nor "any".
	ErrRuleNoMatcher = errors.New("rule has neither all nor any matcher")

	// ErrAmbiguousTerm indicates a matcher-list entry mixing condition
	// keys with a nested group, or nesting both all and any in one entry.
	ErrAmbiguousTerm = errors.New("term is not exactly one of condition or nested group")

	// ErrBadField indicates a condition field outside the closed field set.
	ErrBadField = errors.New("unrecognized condition field")

	// ErrBadOp indicates an unknown condition operator.
	ErrBadOp = errors.New("unrecognized condition op")

	// ErrEmptyPattern indicates a condition with an empty pattern.
	ErrEmptyPattern = errors.New("condition pattern is empty")

	// ErrBadNormalize indicates an unknown options.normalize mode.
	ErrBadNormalize = errors.New("unrecognized normalize mode")

	// ErrBadBodyCap indicates a negative or non-integer options.maxBodyChars.
	ErrBadBodyCap = errors.New("maxBodyChars must be a non-negative integer")

	// ErrSpecNotFound indicates a stored specification ID with no row.
	ErrSpecNotFound = errors.New("specification not found")
)

// ValidationError reports a structural problem in a filter document,
// qualified by a JSON-ish path (e.g. "rules[2].all[0].pattern") so the
// author can find the offending element. Unwraps to one of the sentinel
// errors above.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Invalid wraps a sentinel error with the document path it occurred at.
func Invalid(path string, err error) error {
	return &ValidationError{Path: path, Err: err}
}
