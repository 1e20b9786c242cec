/*
Package sentinel defines the four reserved meanings a datatype value can hold
instead of a regular value, and how they are encoded for numeric and text
base types.

KEY CONCEPTS:
  - Kind: Regular, Priv (no read privilege), ME (values differ across a
    multi-row selection), Min and Max (open interval bounds)
  - Scheme: the four reserved constants of a numeric base type, carved out of
    the extreme ends of its range
  - Text markers: marker strings used when the natural type is text

USAGE:
  kind, ok := sentinel.Int32.Classify(v)
  if !ok {
      return fmt.Errorf("value %d is reserved", v)
  }
  if kind.IsSpecial() {
      return kind
  }

SEE ALSO:
  - datatype/: Date, TimeS and DateTime build on the Int32 scheme
*/
package sentinel

// =============================================================================
// KIND - Four-way sentinel classification
// =============================================================================

// Kind classifies a value as regular or as one of the four sentinels.
type Kind uint8

const (
	Regular Kind = iota
	Priv
	ME
	Min
	Max
)

var kindNames = [...]string{"regular", "priv", "me", "min", "max"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// ParseKind maps a name produced by String back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// IsRegular reports whether k is a genuine domain value.
func (k Kind) IsRegular() bool { return k == Regular }

// IsSpecial reports whether k is one of the four sentinels.
func (k Kind) IsSpecial() bool { return k != Regular && k.IsValid() }

// IsValidValue reports whether a bounded property may hold k: regular values
// and the interval bounds.
func (k Kind) IsValidValue() bool { return k == Regular || k == Min || k == Max }

// IsValid additionally admits Priv and ME, which may be returned but never
// stored as bounds.
func (k Kind) IsValid() bool { return k <= Max }

// IsBound reports whether k is Min or Max.
func (k Kind) IsBound() bool { return k == Min || k == Max }

// =============================================================================
// TEXT MARKERS
// =============================================================================

const (
	// TextPriv stands for Priv where the natural representation is text.
	TextPriv = "##########"
	// TextME stands for ME where the natural representation is text.
	TextME = "**********"
)

// TextKind classifies a string against the text markers.
func TextKind(s string) Kind {
	switch s {
	case TextPriv:
		return Priv
	case TextME:
		return ME
	}
	return Regular
}
