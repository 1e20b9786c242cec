package strparser

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrGrammar is the root of every failure caused by input that does not
	// match the expected grammar. More specific kinds below wrap it.
	ErrGrammar = errors.New("input does not match grammar")

	ErrEndOfInput       = fmt.Errorf("%w: unexpected end of input", ErrGrammar)
	ErrOutOfRange       = fmt.Errorf("%w: read beyond end of input", ErrGrammar)
	ErrInvalidDigit     = fmt.Errorf("%w: digit expected", ErrGrammar)
	ErrTooFewDigits     = fmt.Errorf("%w: too few digits", ErrGrammar)
	ErrMissingSign      = fmt.Errorf("%w: sign expected", ErrGrammar)
	ErrUnexpectedSign   = fmt.Errorf("%w: sign not allowed", ErrGrammar)
	ErrExpectedText     = fmt.Errorf("%w: expected text not found", ErrGrammar)
	ErrMissingDelimiter = fmt.Errorf("%w: delimiter expected", ErrGrammar)

	// ErrTrailingInput is returned when a grammar matched a prefix of the
	// input but characters remained.
	ErrTrailingInput = errors.New("trailing input")

	// ErrOverflow is returned when an integer does not fit into 32 bits.
	ErrOverflow = errors.New("integer overflow")

	// ErrInvalidPosition is returned for cursor positions outside the text.
	ErrInvalidPosition = errors.New("invalid parser position")
)

// =============================================================================
// STRUCTURED ERROR - Carries the failure position
// =============================================================================

// Error describes a parse failure at a given position of the source text.
// Kind is one of the sentinel errors above; Err is an optional cause, for
// instance a range violation of an otherwise well formed component.
type Error struct {
	Text string
	Pos  int
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%v at position %d of %q", e.Kind, e.Pos, e.Text)
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// Position returns the position of a parse failure, or -1 if err does not
// carry one.
func Position(err error) int {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Pos
	}
	return -1
}
