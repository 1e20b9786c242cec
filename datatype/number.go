package datatype

import (
	"fmt"

	"github.com/MichalStehlikCz/common-sub000/sentinel"
	"github.com/MichalStehlikCz/common-sub000/strparser"
	"github.com/shopspring/decimal"
)

// =============================================================================
// NUMBER - Arbitrary precision decimal
// =============================================================================

// Number is a decimal value or a sentinel. Sentinels reuse the numeric
// codes so they survive conversion to and from Integer and Double.
type Number struct {
	kind sentinel.Kind
	v    decimal.Decimal
}

var (
	numberPriv = decimal.NewFromInt32(sentinel.Int32.Priv)
	numberME   = decimal.NewFromInt32(sentinel.Int32.ME)
	numberMin  = decimal.NewFromInt32(sentinel.Int32.Min)
	numberMax  = decimal.NewFromInt32(sentinel.Int32.Max)
)

// NumberOf classifies v against the reserved codes; values below the
// reserved range or above Max are rejected.
func NumberOf(v decimal.Decimal) (Number, error) {
	switch {
	case v.Equal(numberPriv):
		return NumberOfKind(sentinel.Priv), nil
	case v.Equal(numberME):
		return NumberOfKind(sentinel.ME), nil
	case v.Equal(numberMin):
		return NumberOfKind(sentinel.Min), nil
	case v.Equal(numberMax):
		return NumberOfKind(sentinel.Max), nil
	case v.GreaterThan(numberMin) && v.LessThan(numberMax):
		return Number{v: v}, nil
	}
	return Number{}, &RangeError{Field: "number", Value: v.String(), Min: numberMin.String(), Max: numberMax.String()}
}

// NumberOfKind returns the Number holding the code of kind k.
func NumberOfKind(k sentinel.Kind) Number {
	return Number{kind: k, v: decimal.NewFromInt32(sentinel.Int32.Code(k))}
}

// NumberOfInteger converts an Integer, sentinels included.
func NumberOfInteger(i Integer) Number {
	return Number{kind: i.kind, v: decimal.NewFromInt32(i.v)}
}

// ParseNumber accepts [-]digits[.digits] or marker text.
func ParseNumber(text string) (Number, error) {
	p := strparser.New(text)
	if k, ok := numericMarkerKind(p); ok {
		if err := p.ExpectEnd(); err != nil {
			return Number{}, err
		}
		return NumberOfKind(k), nil
	}
	var negative, roundUp bool
	var whole int
	rule := strparser.Seq(
		strparser.Sign(false, &negative),
		digitRun(&whole),
		strparser.Optional(strparser.Fraction(&roundUp)),
	)
	if err := strparser.Run(p, rule); err != nil {
		return Number{}, err
	}
	v, err := decimal.NewFromString(text)
	if err != nil {
		return Number{}, p.FailAt(0, err)
	}
	n, err := NumberOf(v)
	if err != nil {
		return Number{}, p.FailAt(0, err)
	}
	return n, nil
}

// digitRun consumes one or more digits of any length, counting them.
func digitRun(count *int) strparser.Rule {
	return func(p *strparser.Parser) error {
		n := p.CountDigits()
		if n == 0 {
			_, err := p.ReadUnsignedInt(1, 1)
			return err
		}
		*count = n
		return p.SetPos(p.Pos() + n)
	}
}

func (n Number) Kind() sentinel.Kind { return n.kind }
func (n Number) IsRegular() bool     { return n.kind == sentinel.Regular }

// Decimal returns the value; sentinels return their code.
func (n Number) Decimal() decimal.Decimal { return n.v }

// Plus adds two numbers with the Priv > ME > bound precedence.
func (n Number) Plus(other Number) (Number, error) {
	switch {
	case n.kind == sentinel.Priv || other.kind == sentinel.Priv:
		return NumberOfKind(sentinel.Priv), nil
	case n.kind == sentinel.ME || other.kind == sentinel.ME:
		return NumberOfKind(sentinel.ME), nil
	case n.kind.IsBound() && other.kind.IsBound() && n.kind != other.kind:
		return Number{}, fmt.Errorf("%w: %s plus %s", ErrIncompatibleSentinels, n.kind, other.kind)
	case n.kind.IsBound():
		return n, nil
	case other.kind.IsBound():
		return other, nil
	}
	sum := n.v.Add(other.v)
	if !sum.GreaterThan(numberMin) || !sum.LessThan(numberMax) {
		return Number{}, &RangeError{Field: "number", Value: sum.String(), Min: numberMin.String(), Max: numberMax.String()}
	}
	return Number{v: sum}, nil
}

func (n Number) Compare(other Number) int { return n.v.Cmp(other.v) }

func (n Number) Equal(other Number) bool {
	return n.kind == other.kind && n.v.Equal(other.v)
}

func (n Number) ToIso() string         { return n.v.String() }
func (n Number) ToProvysValue() string { return n.ToIso() }

func (n Number) String() string {
	if !n.IsRegular() {
		return numericMarker(n.kind)
	}
	return n.ToIso()
}

// =============================================================================
// UID - Non-negative integral identifier of up to 40 digits
// =============================================================================

const maxUidDigits = 40

// Uid identifies a record. Only Priv and ME apply; identifiers have no order
// that would give meaning to interval bounds.
type Uid struct {
	kind sentinel.Kind
	v    decimal.Decimal
}

// UidOf validates v as a non-negative integer of at most 40 digits.
func UidOf(v decimal.Decimal) (Uid, error) {
	if !v.IsInteger() || v.IsNegative() || len(v.Truncate(0).String()) > maxUidDigits {
		return Uid{}, &RangeError{Field: "uid", Value: v.String(), Min: 0, Max: "40 digits"}
	}
	return Uid{v: v.Truncate(0)}, nil
}

func UidPriv() Uid { return Uid{kind: sentinel.Priv} }
func UidME() Uid   { return Uid{kind: sentinel.ME} }

// ParseUid accepts a run of up to 40 digits or the Priv/ME marker text.
func ParseUid(text string) (Uid, error) {
	switch sentinel.TextKind(text) {
	case sentinel.Priv:
		return UidPriv(), nil
	case sentinel.ME:
		return UidME(), nil
	}
	p := strparser.New(text)
	var n int
	if err := strparser.Run(p, digitRun(&n)); err != nil {
		return Uid{}, err
	}
	if n > maxUidDigits {
		return Uid{}, p.FailAt(0, &RangeError{Field: "uid digits", Value: n, Min: 1, Max: maxUidDigits})
	}
	return UidOf(decimal.RequireFromString(text))
}

func (u Uid) Kind() sentinel.Kind { return u.kind }
func (u Uid) IsRegular() bool     { return u.kind == sentinel.Regular }

// Decimal returns the identifier value; zero for sentinels.
func (u Uid) Decimal() decimal.Decimal { return u.v }

func (u Uid) Equal(other Uid) bool {
	return u.kind == other.kind && u.v.Equal(other.v)
}

func (u Uid) String() string {
	switch u.kind {
	case sentinel.Priv:
		return sentinel.TextPriv
	case sentinel.ME:
		return sentinel.TextME
	}
	return u.v.String()
}

func (u Uid) ToIso() string         { return u.String() }
func (u Uid) ToProvysValue() string { return u.String() }
