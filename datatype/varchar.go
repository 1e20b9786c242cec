package datatype

import "github.com/MichalStehlikCz/common-sub000/sentinel"

// Varchar is a text value. Priv and ME are represented by the text markers;
// text has no interval bounds.
type Varchar struct {
	kind sentinel.Kind
	v    string
}

// VarcharOf classifies s against the text markers.
func VarcharOf(s string) Varchar {
	if k := sentinel.TextKind(s); k != sentinel.Regular {
		return Varchar{kind: k}
	}
	return Varchar{v: s}
}

// VarcharPriv returns the Priv marker text.
func VarcharPriv() Varchar { return Varchar{kind: sentinel.Priv} }

// VarcharME returns the ME marker text.
func VarcharME() Varchar { return Varchar{kind: sentinel.ME} }

func (s Varchar) Kind() sentinel.Kind { return s.kind }
func (s Varchar) IsRegular() bool     { return s.kind == sentinel.Regular }

func (s Varchar) String() string {
	switch s.kind {
	case sentinel.Priv:
		return sentinel.TextPriv
	case sentinel.ME:
		return sentinel.TextME
	}
	return s.v
}

func (s Varchar) ToIso() string         { return s.String() }
func (s Varchar) ToProvysValue() string { return s.String() }
