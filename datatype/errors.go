/*
errors.go - Error kinds of the datatype layer

PURPOSE:
  All error kinds in one place. Factories and parsers return these (possibly
  wrapped) and never a partially constructed value.

ERROR CATEGORIES:
  1. Validation errors - impossible calendar dates, values out of range
  2. Grammar errors - text that does not match an accepted encoding
  3. Sentinel errors - combinations of sentinels without a defined result

USAGE:
  if _, err := datatype.ParseDate(s); errors.Is(err, datatype.ErrParseGrammar) {
      pos := strparser.Position(err)
      ...
  }

SEE ALSO:
  - strparser/errors.go: Position-tagged grammar failures
*/
package datatype

import (
	"errors"
	"fmt"

	"github.com/MichalStehlikCz/common-sub000/strparser"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrCalendar is returned for dates that do not exist, e.g. February 30.
	ErrCalendar = errors.New("invalid calendar date")

	// ErrRange is returned for values outside the representable envelope or
	// components outside their sub-range, e.g. minutes >= 60.
	ErrRange = errors.New("value out of range")

	// ErrIncompatibleSentinels is returned when an operation combines
	// sentinels that have no defined result, e.g. Min date with Max time.
	ErrIncompatibleSentinels = errors.New("incompatible sentinel values")

	// ErrNotRegular is returned by conversions that need a regular value.
	ErrNotRegular = errors.New("value is not regular")

	// Grammar errors come from the cursor parser.
	ErrParseGrammar     = strparser.ErrGrammar
	ErrTrailingInput    = strparser.ErrTrailingInput
	ErrMissingDelimiter = strparser.ErrMissingDelimiter
	ErrOverflow         = strparser.ErrOverflow
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// RangeError describes a value or component outside its accepted bounds.
type RangeError struct {
	Field string
	Value any
	Min   any
	Max   any
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %v outside [%v, %v]", e.Field, e.Value, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error {
	return ErrRange
}

// CalendarError describes a year/month/day triple that is not a date.
type CalendarError struct {
	Year, Month, Day int
}

func (e *CalendarError) Error() string {
	return fmt.Sprintf("%04d-%02d-%02d is not a valid date", e.Year, e.Month, e.Day)
}

func (e *CalendarError) Unwrap() error {
	return ErrCalendar
}

func checkRange(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return &RangeError{Field: field, Value: v, Min: lo, Max: hi}
	}
	return nil
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsParseError returns true if err was caused by malformed text.
func IsParseError(err error) bool {
	return errors.Is(err, ErrParseGrammar) ||
		errors.Is(err, ErrTrailingInput) ||
		errors.Is(err, ErrOverflow)
}

// IsClientError returns true if err is due to invalid caller input.
func IsClientError(err error) bool {
	return IsParseError(err) ||
		errors.Is(err, ErrCalendar) ||
		errors.Is(err, ErrRange) ||
		errors.Is(err, ErrIncompatibleSentinels) ||
		errors.Is(err, ErrNotRegular)
}

// Code returns a stable identifier for the kind of err, suitable for error
// responses.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTrailingInput):
		return "trailing_input"
	case errors.Is(err, ErrMissingDelimiter):
		return "missing_delimiter"
	case errors.Is(err, ErrOverflow):
		return "overflow"
	case errors.Is(err, ErrParseGrammar):
		return "parse_grammar"
	case errors.Is(err, ErrCalendar):
		return "calendar"
	case errors.Is(err, ErrRange):
		return "range"
	case errors.Is(err, ErrIncompatibleSentinels):
		return "incompatible_sentinels"
	case errors.Is(err, ErrNotRegular):
		return "not_regular"
	}
	return "internal"
}
