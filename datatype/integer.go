package datatype

import (
	"fmt"
	"math"
	"strconv"

	"github.com/MichalStehlikCz/common-sub000/sentinel"
	"github.com/MichalStehlikCz/common-sub000/strparser"
	"github.com/shopspring/decimal"
)

// =============================================================================
// INTEGER AND DOUBLE - Numeric types over the shared sentinel scheme
// =============================================================================

const (
	NumericTextMin = "<<<<<<<<<<"
	NumericTextMax = ">>>>>>>>>>"
)

func numericMarker(k sentinel.Kind) string {
	switch k {
	case sentinel.Priv:
		return sentinel.TextPriv
	case sentinel.ME:
		return sentinel.TextME
	case sentinel.Min:
		return NumericTextMin
	case sentinel.Max:
		return NumericTextMax
	}
	return ""
}

func numericMarkerKind(p *strparser.Parser) (sentinel.Kind, bool) {
	switch {
	case p.OnText(sentinel.TextPriv):
		return sentinel.Priv, true
	case p.OnText(sentinel.TextME):
		return sentinel.ME, true
	case p.OnText(NumericTextMin):
		return sentinel.Min, true
	case p.OnText(NumericTextMax):
		return sentinel.Max, true
	}
	return sentinel.Regular, false
}

// Integer is a 32-bit integer or a sentinel.
type Integer struct {
	kind sentinel.Kind
	v    int32
}

// IntegerOf maps regular values directly and the reserved Int32 codes to
// the sentinels.
func IntegerOf(v int) (Integer, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return Integer{}, integerRangeError(v)
	}
	kind, ok := sentinel.Int32.Classify(int32(v))
	if !ok {
		return Integer{}, integerRangeError(v)
	}
	return Integer{kind: kind, v: int32(v)}, nil
}

// IntegerOfKind returns the Integer holding the code of kind k.
func IntegerOfKind(k sentinel.Kind) Integer {
	return Integer{kind: k, v: sentinel.Int32.Code(k)}
}

func integerRangeError(v any) error {
	return &RangeError{Field: "integer", Value: v, Min: sentinel.Int32.Min + 1, Max: sentinel.Int32.Max - 1}
}

// ParseInteger accepts an optionally signed decimal integer or marker text.
func ParseInteger(text string) (Integer, error) {
	p := strparser.New(text)
	if k, ok := numericMarkerKind(p); ok {
		if err := p.ExpectEnd(); err != nil {
			return Integer{}, err
		}
		return IntegerOfKind(k), nil
	}
	v, err := p.ReadInt(1, 10, strparser.SignExtend)
	if err != nil {
		return Integer{}, err
	}
	if err := p.ExpectEnd(); err != nil {
		return Integer{}, err
	}
	i, err := IntegerOf(v)
	if err != nil {
		return Integer{}, p.FailAt(0, err)
	}
	return i, nil
}

func (i Integer) Kind() sentinel.Kind { return i.kind }
func (i Integer) IsRegular() bool     { return i.kind == sentinel.Regular }

// Int returns the value; sentinels return their code.
func (i Integer) Int() int { return int(i.v) }

// Plus adds two integers with the Priv > ME > bound precedence.
func (i Integer) Plus(other Integer) (Integer, error) {
	switch {
	case i.kind == sentinel.Priv || other.kind == sentinel.Priv:
		return IntegerOfKind(sentinel.Priv), nil
	case i.kind == sentinel.ME || other.kind == sentinel.ME:
		return IntegerOfKind(sentinel.ME), nil
	case i.kind.IsBound() && other.kind.IsBound() && i.kind != other.kind:
		return Integer{}, fmt.Errorf("%w: %s plus %s", ErrIncompatibleSentinels, i.kind, other.kind)
	case i.kind.IsBound():
		return i, nil
	case other.kind.IsBound():
		return other, nil
	}
	sum := int(i.v) + int(other.v)
	if sum <= int(sentinel.Int32.Min) || sum >= int(sentinel.Int32.Max) {
		return Integer{}, integerRangeError(sum)
	}
	return Integer{v: int32(sum)}, nil
}

func (i Integer) Compare(other Integer) int {
	switch {
	case i.v < other.v:
		return -1
	case i.v > other.v:
		return 1
	}
	return 0
}

// ToIso renders the decimal value; sentinels render their code.
func (i Integer) ToIso() string { return strconv.Itoa(int(i.v)) }

func (i Integer) ToProvysValue() string { return i.ToIso() }

func (i Integer) String() string {
	if !i.IsRegular() {
		return numericMarker(i.kind)
	}
	return i.ToIso()
}

// Double is a 64-bit float or a sentinel.
type Double struct {
	kind sentinel.Kind
	v    float64
}

// DoubleOf maps regular values directly and the reserved Float64 codes to
// the sentinels.
func DoubleOf(v float64) (Double, error) {
	if math.IsNaN(v) {
		return Double{}, &RangeError{Field: "double", Value: v, Min: sentinel.Float64.Min, Max: sentinel.Float64.Max}
	}
	kind, ok := sentinel.Float64.Classify(v)
	if !ok {
		return Double{}, &RangeError{Field: "double", Value: v, Min: sentinel.Float64.Min, Max: sentinel.Float64.Max}
	}
	return Double{kind: kind, v: v}, nil
}

func DoubleOfKind(k sentinel.Kind) Double {
	return Double{kind: k, v: sentinel.Float64.Code(k)}
}

// ParseDouble accepts a decimal number or marker text.
func ParseDouble(text string) (Double, error) {
	p := strparser.New(text)
	if k, ok := numericMarkerKind(p); ok {
		if err := p.ExpectEnd(); err != nil {
			return Double{}, err
		}
		return DoubleOfKind(k), nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Double{}, p.FailAt(0, err)
	}
	d, err := DoubleOf(v)
	if err != nil {
		return Double{}, p.FailAt(0, err)
	}
	return d, nil
}

func (d Double) Kind() sentinel.Kind { return d.kind }
func (d Double) IsRegular() bool     { return d.kind == sentinel.Regular }

// Float64 returns the value; sentinels return their code.
func (d Double) Float64() float64 { return d.v }

// ToIso renders the shortest exact decimal without exponent.
func (d Double) ToIso() string { return decimal.NewFromFloat(d.v).String() }

func (d Double) ToProvysValue() string { return d.ToIso() }

func (d Double) String() string {
	if !d.IsRegular() {
		return numericMarker(d.kind)
	}
	return d.ToIso()
}
