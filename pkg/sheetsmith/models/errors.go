package models

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure so callers can react without parsing messages.
type Kind string

const (
	// KindValidation marks a rejected generation request.
	KindValidation Kind = "validation"
	// KindParse marks an unreadable spreadsheet.
	KindParse Kind = "parse"
	// KindAIProcessing marks a failed or malformed LLM exchange.
	KindAIProcessing Kind = "ai_processing"
	// KindIndex marks an out-of-range row, column or sheet index.
	KindIndex Kind = "index"
)

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrValidation   = errors.New("validation error")
	ErrParse        = errors.New("parse error")
	ErrAIProcessing = errors.New("AI processing error")
	ErrIndex        = errors.New("index error")
)

// Error is the error type returned across sheetsmith package boundaries.
type Error struct {
	Kind Kind
	// Op names the operation that failed (e.g. "remove column", "transform").
	Op string
	// Messages holds human-readable reasons; used by validation failures.
	Messages []string
	Err      error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	switch {
	case len(e.Messages) > 0:
		b.WriteString(strings.Join(e.Messages, "; "))
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	default:
		b.WriteString(string(e.Kind))
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinel for e.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrParse:
		return e.Kind == KindParse
	case ErrAIProcessing:
		return e.Kind == KindAIProcessing
	case ErrIndex:
		return e.Kind == KindIndex
	}
	return false
}

// NewError creates a new Error.
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// NewValidationError creates a validation Error carrying every failed rule.
func NewValidationError(op string, messages []string) *Error {
	return &Error{Kind: KindValidation, Op: op, Messages: messages}
}

// NewIndexError reports an index outside [0, size).
func NewIndexError(op, what string, index, size int) *Error {
	return &Error{
		Kind: KindIndex,
		Op:   op,
		Err:  fmt.Errorf("invalid %s index %d (have %d)", what, index, size),
	}
}

// KindOf returns the Kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
