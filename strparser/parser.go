/*
Package strparser provides the forward-only character cursor used by every
textual grammar of the datatype layer.

PURPOSE:
  A Parser owns a string and the index of the next unread character. Read
  operations either advance past what they consumed or fail with a
  position-tagged *Error and leave the cursor at the point of failure.
  Probing operations (IsOnText, Peek) never move the cursor; callers that
  need to backtrack save Pos() and restore it with SetPos().

USAGE:
  p := strparser.New("12:30")
  hours, err := p.ReadUnsignedInt(2, 2)
  if err != nil {
      return err
  }
  if !p.OnChar(':') {
      return p.Fail(strparser.ErrMissingDelimiter, "':' expected")
  }

SEE ALSO:
  - grammar.go: Composable rules built on top of the cursor
  - datatype/: Date, time and offset grammars
*/
package strparser

import (
	"fmt"
	"math"
	"strings"
)

// SignMode controls how ReadInt treats a leading '+' or '-'.
type SignMode int

const (
	// SignMandatory requires a sign; the sign counts towards the width.
	SignMandatory SignMode = iota
	// SignIncluded allows an optional sign that counts towards the width.
	SignIncluded
	// SignExtend allows an optional sign that does not count towards the width.
	SignExtend
	// SignNone forbids a sign.
	SignNone
)

// Parser is a cursor over a string. It is not safe for concurrent use.
type Parser struct {
	text string
	pos  int
}

// New creates a parser positioned at the start of text.
func New(text string) *Parser {
	return &Parser{text: text}
}

// Text returns the source string.
func (p *Parser) Text() string { return p.text }

// Pos returns the index of the next unread character.
func (p *Parser) Pos() int { return p.pos }

// SetPos moves the cursor. Positions past the end of the text are invalid,
// the end itself is allowed.
func (p *Parser) SetPos(pos int) error {
	if pos < 0 || pos > len(p.text) {
		return &Error{Text: p.text, Pos: pos, Kind: ErrInvalidPosition}
	}
	p.pos = pos
	return nil
}

// HasNext reports whether unread characters remain.
func (p *Parser) HasNext() bool { return p.pos < len(p.text) }

// Remaining returns the number of unread characters.
func (p *Parser) Remaining() int { return len(p.text) - p.pos }

// Peek returns the next character without consuming it.
func (p *Parser) Peek() (byte, error) {
	if p.pos >= len(p.text) {
		return 0, p.Fail(ErrOutOfRange, "")
	}
	return p.text[p.pos], nil
}

// Next consumes and returns the next character.
func (p *Parser) Next() (byte, error) {
	if p.pos >= len(p.text) {
		return 0, p.Fail(ErrEndOfInput, "")
	}
	c := p.text[p.pos]
	p.pos++
	return c, nil
}

// Current returns the most recently consumed character.
func (p *Parser) Current() (byte, error) {
	if p.pos == 0 || p.pos > len(p.text) {
		return 0, p.Fail(ErrInvalidPosition, "no character consumed yet")
	}
	return p.text[p.pos-1], nil
}

// IsOnChar reports whether the next character is c.
func (p *Parser) IsOnChar(c byte) bool {
	return p.pos < len(p.text) && p.text[p.pos] == c
}

// OnChar consumes the next character if it is c.
func (p *Parser) OnChar(c byte) bool {
	if p.IsOnChar(c) {
		p.pos++
		return true
	}
	return false
}

// IsOnDigit reports whether the next character is an ASCII digit.
func (p *Parser) IsOnDigit() bool {
	return p.pos < len(p.text) && isDigit(p.text[p.pos])
}

// IsOnText reports whether the upcoming characters equal text.
func (p *Parser) IsOnText(text string) bool {
	return strings.HasPrefix(p.text[p.pos:], text)
}

// OnText consumes text if the upcoming characters equal it.
func (p *Parser) OnText(text string) bool {
	if p.IsOnText(text) {
		p.pos += len(text)
		return true
	}
	return false
}

// IsOnTextIgnoreCase is IsOnText with ASCII case folding.
func (p *Parser) IsOnTextIgnoreCase(text string) bool {
	rest := p.text[p.pos:]
	return len(rest) >= len(text) && strings.EqualFold(rest[:len(text)], text)
}

// OnTextIgnoreCase is OnText with ASCII case folding.
func (p *Parser) OnTextIgnoreCase(text string) bool {
	if p.IsOnTextIgnoreCase(text) {
		p.pos += len(text)
		return true
	}
	return false
}

// ExpectChar consumes c or fails with ErrExpectedText.
func (p *Parser) ExpectChar(c byte) error {
	if !p.OnChar(c) {
		return p.Fail(ErrExpectedText, fmt.Sprintf("%q expected", c))
	}
	return nil
}

// ExpectText consumes text or fails with ErrExpectedText.
func (p *Parser) ExpectText(text string) error {
	if !p.OnText(text) {
		return p.Fail(ErrExpectedText, fmt.Sprintf("%q expected", text))
	}
	return nil
}

// ExpectEnd fails with ErrTrailingInput unless the whole text was consumed.
func (p *Parser) ExpectEnd() error {
	if p.HasNext() {
		return p.Fail(ErrTrailingInput, fmt.Sprintf("unparsed %q", p.text[p.pos:]))
	}
	return nil
}

// CountDigits returns the length of the digit run at the cursor.
func (p *Parser) CountDigits() int {
	n := 0
	for p.pos+n < len(p.text) && isDigit(p.text[p.pos+n]) {
		n++
	}
	return n
}

// ReadUnsignedInt greedily reads between minDigits and maxDigits ASCII digits.
// It panics if the bounds are inconsistent.
func (p *Parser) ReadUnsignedInt(minDigits, maxDigits int) (int, error) {
	if minDigits < 0 || maxDigits < minDigits || maxDigits < 1 {
		panic(fmt.Sprintf("strparser: invalid digit bounds [%d, %d]", minDigits, maxDigits))
	}
	var acc int64
	n := 0
	for n < maxDigits && p.pos < len(p.text) && isDigit(p.text[p.pos]) {
		acc = acc*10 + int64(p.text[p.pos]-'0')
		if acc > math.MaxInt32 {
			return 0, p.Fail(ErrOverflow, fmt.Sprintf("value exceeds %d", math.MaxInt32))
		}
		p.pos++
		n++
	}
	if n < minDigits {
		switch {
		case n == 0 && !p.HasNext():
			return 0, p.Fail(ErrEndOfInput, "digit expected")
		case n == 0:
			return 0, p.Fail(ErrInvalidDigit, fmt.Sprintf("found %q", p.text[p.pos]))
		default:
			return 0, p.Fail(ErrTooFewDigits, fmt.Sprintf("%d read, %d required", n, minDigits))
		}
	}
	return int(acc), nil
}

// ReadUnsignedIntExact reads exactly digits ASCII digits.
func (p *Parser) ReadUnsignedIntExact(digits int) (int, error) {
	return p.ReadUnsignedInt(digits, digits)
}

// ReadInt reads an optionally signed integer; see SignMode for how the sign
// interacts with the digit bounds.
func (p *Parser) ReadInt(minChars, maxChars int, mode SignMode) (int, error) {
	negative, signed := false, false
	if p.IsOnChar('+') || p.IsOnChar('-') {
		if mode == SignNone {
			return 0, p.Fail(ErrUnexpectedSign, "")
		}
		negative = p.text[p.pos] == '-'
		signed = true
		p.pos++
	} else if mode == SignMandatory {
		return 0, p.Fail(ErrMissingSign, "")
	}
	minDigits, maxDigits := minChars, maxChars
	if signed && mode != SignExtend {
		minDigits--
		maxDigits--
	}
	if minDigits < 1 {
		minDigits = 1
	}
	if maxDigits < minDigits {
		return 0, p.Fail(ErrTooFewDigits, "no room for digits after sign")
	}
	v, err := p.ReadUnsignedInt(minDigits, maxDigits)
	if err != nil {
		return 0, err
	}
	if negative {
		v = -v
	}
	return v, nil
}

// Fail builds an *Error at the current position.
func (p *Parser) Fail(kind error, msg string) *Error {
	return &Error{Text: p.text, Pos: p.pos, Kind: kind, Msg: msg}
}

// FailAt builds an *Error of kind ErrGrammar at pos caused by err.
func (p *Parser) FailAt(pos int, err error) *Error {
	return &Error{Text: p.text, Pos: pos, Kind: ErrGrammar, Err: err}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
