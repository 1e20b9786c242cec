package sentinel

import "math"

// Numeric is the set of base types with a reserved sentinel range.
type Numeric interface {
	~int32 | ~float64
}

// Scheme holds the reserved constants of a numeric base type. Values between
// Min and Max (both exclusive) are regular; values below Priv are invalid.
type Scheme[T Numeric] struct {
	Priv T
	ME   T
	Min  T
	Max  T
}

// Int32 is shared by INTEGER, TimeS and every accessor that reports a
// sentinel through a plain integer.
var Int32 = Scheme[int32]{
	Priv: -2135412459,
	ME:   -2135412458,
	Min:  -2135412457,
	Max:  math.MaxInt32,
}

// Float64 reuses the Int32 codes so values survive conversion between the two
// base types.
var Float64 = Scheme[float64]{
	Priv: float64(Int32.Priv),
	ME:   float64(Int32.ME),
	Min:  float64(Int32.Min),
	Max:  float64(Int32.Max),
}

// Classify returns the kind of v. The second result is false when v lies
// below the reserved range, where no value is defined.
func (s Scheme[T]) Classify(v T) (Kind, bool) {
	switch {
	case v == s.Priv:
		return Priv, true
	case v == s.ME:
		return ME, true
	case v == s.Min:
		return Min, true
	case v == s.Max:
		return Max, true
	case v > s.Min && v < s.Max:
		return Regular, true
	}
	return Regular, false
}

// Code returns the reserved constant of a sentinel kind. Regular has no code
// and yields the zero value.
func (s Scheme[T]) Code(k Kind) T {
	switch k {
	case Priv:
		return s.Priv
	case ME:
		return s.ME
	case Min:
		return s.Min
	case Max:
		return s.Max
	}
	var zero T
	return zero
}

// IsRegular reports whether v is a regular value.
func (s Scheme[T]) IsRegular(v T) bool { return v > s.Min && v < s.Max }

// IsSpecial reports whether v is one of the reserved constants.
func (s Scheme[T]) IsSpecial(v T) bool {
	return v == s.Priv || v == s.ME || v == s.Min || v == s.Max
}

// IsValidValue reports whether v is regular or an interval bound.
func (s Scheme[T]) IsValidValue(v T) bool { return v >= s.Min && v <= s.Max }

// IsValid additionally admits Priv and ME.
func (s Scheme[T]) IsValid(v T) bool { return v >= s.Priv && v <= s.Max }
