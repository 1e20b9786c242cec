package strparser

import "errors"

// =============================================================================
// GRAMMAR RULES - Small combinators over the cursor
// =============================================================================
//
// A Rule consumes input from a Parser or fails. Seq stops at the first
// failing rule and leaves the cursor there, so the error position points at
// the offending character. Optional and FirstOf backtrack.

// Rule is a grammar element.
type Rule func(p *Parser) error

// Run applies r and then requires the whole input to be consumed.
func Run(p *Parser, r Rule) error {
	if err := r(p); err != nil {
		return err
	}
	return p.ExpectEnd()
}

// Seq matches all rules in order.
func Seq(rules ...Rule) Rule {
	return func(p *Parser) error {
		for _, r := range rules {
			if err := r(p); err != nil {
				return err
			}
		}
		return nil
	}
}

// Optional matches r or nothing. A failure of r is swallowed only when r
// failed before consuming anything; once r has made progress its error is
// reported, which keeps failure positions precise.
func Optional(r Rule) Rule {
	return func(p *Parser) error {
		start := p.pos
		err := r(p)
		if err == nil {
			return nil
		}
		if Position(err) == start && errors.Is(err, ErrGrammar) {
			p.pos = start
			return nil
		}
		return err
	}
}

// FirstOf tries each alternative from the same position and keeps the first
// that matches. When all fail, the error that got furthest is returned.
func FirstOf(alternatives ...Rule) Rule {
	return func(p *Parser) error {
		start := p.pos
		var best error
		for _, r := range alternatives {
			err := r(p)
			if err == nil {
				return nil
			}
			if !errors.Is(err, ErrGrammar) {
				return err
			}
			if best == nil || Position(err) > Position(best) {
				best = err
			}
			p.pos = start
		}
		return best
	}
}

// Literal matches text exactly.
func Literal(text string) Rule {
	return func(p *Parser) error { return p.ExpectText(text) }
}

// Char matches a single character.
func Char(c byte) Rule {
	return func(p *Parser) error { return p.ExpectChar(c) }
}

// Digits reads an unsigned integer of minDigits..maxDigits digits into dst.
func Digits(minDigits, maxDigits int, dst *int) Rule {
	return func(p *Parser) error {
		v, err := p.ReadUnsignedInt(minDigits, maxDigits)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

// Sign consumes an optional '-' (and '+' when allowPlus is set) and records
// whether the value is negative.
func Sign(allowPlus bool, negative *bool) Rule {
	return func(p *Parser) error {
		switch {
		case p.OnChar('-'):
			*negative = true
		case allowPlus && p.OnChar('+'):
			*negative = false
		}
		return nil
	}
}

// Mark records the cursor position, typically the start of a component that
// is range checked after the grammar matched.
func Mark(dst *int) Rule {
	return func(p *Parser) error {
		*dst = p.pos
		return nil
	}
}

// SignRequired consumes a mandatory '+' or '-'.
func SignRequired(negative *bool) Rule {
	return func(p *Parser) error {
		switch {
		case p.OnChar('-'):
			*negative = true
		case p.OnChar('+'):
			*negative = false
		default:
			return p.Fail(ErrMissingSign, "")
		}
		return nil
	}
}

// Fraction consumes '.' followed by at least one digit and reports whether
// the fraction is at least one half. Digits beyond the first only matter for
// being consumed; whole-second precision never needs more.
func Fraction(roundUp *bool) Rule {
	return func(p *Parser) error {
		if err := p.ExpectChar('.'); err != nil {
			return err
		}
		if !p.IsOnDigit() {
			if !p.HasNext() {
				return p.Fail(ErrEndOfInput, "fraction digit expected")
			}
			return p.Fail(ErrInvalidDigit, "fraction digit expected")
		}
		*roundUp = p.text[p.pos] >= '5'
		for p.IsOnDigit() {
			p.pos++
		}
		return nil
	}
}
