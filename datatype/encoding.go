package datatype

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TEXT ENCODING - encoding.TextMarshaler, also used by encoding/json
// =============================================================================
//
// Values encode as ISO. Sentinels that have no ISO form of their own encode
// by value: calendar coordinate, reserved second count or numeric code.

func (d Date) MarshalText() ([]byte, error) { return []byte(d.ToIso()), nil }

func (d *Date) UnmarshalText(b []byte) error {
	v, err := ParseIsoDate(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (t TimeS) MarshalText() ([]byte, error) { return []byte(t.ToIso()), nil }

func (t *TimeS) UnmarshalText(b []byte) error {
	v, err := ParseTimeS(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (dt DateTime) MarshalText() ([]byte, error) { return []byte(dt.ToIso()), nil }

func (dt *DateTime) UnmarshalText(b []byte) error {
	v, err := ParseIsoDateTimeIn(string(b), time.Local)
	if err != nil {
		return err
	}
	*dt = v
	return nil
}

func (i Integer) MarshalText() ([]byte, error) { return []byte(i.ToIso()), nil }

func (i *Integer) UnmarshalText(b []byte) error {
	v, err := ParseInteger(string(b))
	if err != nil {
		return err
	}
	*i = v
	return nil
}

func (d Double) MarshalText() ([]byte, error) { return []byte(d.ToIso()), nil }

func (d *Double) UnmarshalText(b []byte) error {
	v, err := ParseDouble(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (n Number) MarshalText() ([]byte, error) { return []byte(n.ToIso()), nil }

func (n *Number) UnmarshalText(b []byte) error {
	v, err := ParseNumber(string(b))
	if err != nil {
		return err
	}
	*n = v
	return nil
}

func (u Uid) MarshalText() ([]byte, error) { return []byte(u.ToIso()), nil }

func (u *Uid) UnmarshalText(b []byte) error {
	v, err := ParseUid(string(b))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

func (s Varchar) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Varchar) UnmarshalText(b []byte) error {
	*s = VarcharOf(string(b))
	return nil
}

// =============================================================================
// SQL ENCODING - driver.Valuer and sql.Scanner
// =============================================================================

func scanText(src any) (string, bool) {
	switch v := src.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	}
	return "", false
}

func scanError(src any, target string) error {
	if src == nil {
		return fmt.Errorf("datatype: cannot scan NULL into %s", target)
	}
	return fmt.Errorf("datatype: cannot scan %T into %s", src, target)
}

// Value stores the ISO calendar coordinate.
func (d Date) Value() (driver.Value, error) { return d.ToIso(), nil }

func (d *Date) Scan(src any) error {
	if t, ok := src.(time.Time); ok {
		y, m, day := t.Date()
		v, err := DateOfSpecial(y, int(m), day)
		if err != nil {
			return err
		}
		*d = v
		return nil
	}
	if s, ok := scanText(src); ok {
		return d.UnmarshalText([]byte(s))
	}
	return scanError(src, "Date")
}

// Value stores the second count.
func (t TimeS) Value() (driver.Value, error) { return int64(t.secs), nil }

func (t *TimeS) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		ts, err := TimeSOfSeconds(int(v))
		if err != nil {
			return err
		}
		*t = ts
		return nil
	}
	if s, ok := scanText(src); ok {
		return t.UnmarshalText([]byte(s))
	}
	return scanError(src, "TimeS")
}

// Value stores ISO text; sentinels keep their calendar coordinate.
func (dt DateTime) Value() (driver.Value, error) { return dt.ToIso(), nil }

func (dt *DateTime) Scan(src any) error {
	if t, ok := src.(time.Time); ok {
		y, m, day := t.Date()
		d, err := DateOfSpecial(y, int(m), day)
		if err != nil {
			return err
		}
		ts, err := TimeSOfDayToNano(0, t.Hour(), t.Minute(), t.Second(), t.Nanosecond())
		if err != nil {
			return err
		}
		v, err := DateTimeOf(d, ts)
		if err != nil {
			return err
		}
		*dt = v
		return nil
	}
	if s, ok := scanText(src); ok {
		return dt.UnmarshalText([]byte(s))
	}
	return scanError(src, "DateTime")
}

func (i Integer) Value() (driver.Value, error) { return int64(i.v), nil }

func (i *Integer) Scan(src any) error {
	if v, ok := src.(int64); ok {
		iv, err := IntegerOf(int(v))
		if err != nil {
			return err
		}
		*i = iv
		return nil
	}
	if s, ok := scanText(src); ok {
		return i.UnmarshalText([]byte(s))
	}
	return scanError(src, "Integer")
}

func (d Double) Value() (driver.Value, error) { return d.v, nil }

func (d *Double) Scan(src any) error {
	var f float64
	switch v := src.(type) {
	case float64:
		f = v
	case int64:
		f = float64(v)
	default:
		s, ok := scanText(src)
		if !ok {
			return scanError(src, "Double")
		}
		parsed, err := ParseDouble(s)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}
	v, err := DoubleOf(f)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Value stores the decimal as text to keep full precision.
func (n Number) Value() (driver.Value, error) { return n.v.String(), nil }

func (n *Number) Scan(src any) error {
	var v decimal.Decimal
	switch x := src.(type) {
	case int64:
		v = decimal.NewFromInt(x)
	case float64:
		v = decimal.NewFromFloat(x)
	default:
		s, ok := scanText(src)
		if !ok {
			return scanError(src, "Number")
		}
		return n.UnmarshalText([]byte(s))
	}
	nv, err := NumberOf(v)
	if err != nil {
		return err
	}
	*n = nv
	return nil
}

func (u Uid) Value() (driver.Value, error) { return u.String(), nil }

func (u *Uid) Scan(src any) error {
	if v, ok := src.(int64); ok {
		uv, err := UidOf(decimal.NewFromInt(v))
		if err != nil {
			return err
		}
		*u = uv
		return nil
	}
	if s, ok := scanText(src); ok {
		return u.UnmarshalText([]byte(s))
	}
	return scanError(src, "Uid")
}

func (s Varchar) Value() (driver.Value, error) { return s.String(), nil }

func (s *Varchar) Scan(src any) error {
	if text, ok := scanText(src); ok {
		*s = VarcharOf(text)
		return nil
	}
	return scanError(src, "Varchar")
}
