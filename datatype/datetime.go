package datatype

import (
	"fmt"
	"time"

	"github.com/MichalStehlikCz/common-sub000/sentinel"
	"github.com/MichalStehlikCz/common-sub000/strparser"
)

// =============================================================================
// DATETIME - Date plus time of day
// =============================================================================
//
// Invariant: for a regular date the time is in [0, 86400); for a sentinel date
// the time is zero. The four sentinels are (sentinel date, 00:00:00) pairs.

// DateTime is a date and a time of day, or a sentinel.
type DateTime struct {
	date Date
	time TimeS
}

var (
	dateTimePriv = DateTime{date: datePriv}
	dateTimeME   = DateTime{date: dateME}
	dateTimeMin  = DateTime{date: dateMin}
	dateTimeMax  = DateTime{date: dateMax}
)

// DateTimePriv returns the Priv sentinel date time.
func DateTimePriv() DateTime { return dateTimePriv }

// DateTimeME returns the ME sentinel date time.
func DateTimeME() DateTime { return dateTimeME }

// DateTimeMin returns the open lower bound.
func DateTimeMin() DateTime { return dateTimeMin }

// DateTimeMax returns the open upper bound.
func DateTimeMax() DateTime { return dateTimeMax }

// DateTimeOf combines a date with a time. Times beyond a day carry whole days
// into the date; negative times borrow from it.
//
// Precedence: Priv (either), ME (either), Min date (fails with a Max time),
// Max date (fails with a Min time), Min or Max time.
func DateTimeOf(date Date, t TimeS) (DateTime, error) {
	switch {
	case date.kind == sentinel.Priv || t.kind == sentinel.Priv:
		return dateTimePriv, nil
	case date.kind == sentinel.ME || t.kind == sentinel.ME:
		return dateTimeME, nil
	case date.kind == sentinel.Min:
		if t.kind == sentinel.Max {
			return DateTime{}, fmt.Errorf("%w: min date with max time", ErrIncompatibleSentinels)
		}
		return dateTimeMin, nil
	case date.kind == sentinel.Max:
		if t.kind == sentinel.Min {
			return DateTime{}, fmt.Errorf("%w: max date with min time", ErrIncompatibleSentinels)
		}
		return dateTimeMax, nil
	case t.kind == sentinel.Min:
		return dateTimeMin, nil
	case t.kind == sentinel.Max:
		return dateTimeMax, nil
	}
	d, err := date.PlusDays(t.Days())
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{date: d, time: t.Time24()}, nil
}

// DateTimeOfParts builds a regular date time; hours must be 0-23.
func DateTimeOfParts(year, month, day, hours, minutes, seconds int) (DateTime, error) {
	d, err := DateOf(year, month, day)
	if err != nil {
		return DateTime{}, err
	}
	t, err := TimeSOfDayToSecond(0, hours, minutes, seconds)
	if err != nil {
		return DateTime{}, err
	}
	return DateTimeOf(d, t)
}

// DateTimeOfTime takes the wall clock of t in its location, rounding
// nanoseconds half-up to whole seconds.
func DateTimeOfTime(t time.Time) (DateTime, error) {
	d, err := DateOfTime(t)
	if err != nil {
		return DateTime{}, err
	}
	ts, err := TimeSOfDayToNano(0, t.Hour(), t.Minute(), t.Second(), t.Nanosecond())
	if err != nil {
		return DateTime{}, err
	}
	return DateTimeOf(d, ts)
}

// Now returns the current local date time.
func Now() DateTime {
	dt, err := DateTimeOfTime(time.Now())
	if err != nil {
		panic(err)
	}
	return dt
}

// =============================================================================
// ACCESSORS
// =============================================================================

func (dt DateTime) Kind() sentinel.Kind { return dt.date.kind }
func (dt DateTime) IsRegular() bool     { return dt.date.IsRegular() }
func (dt DateTime) IsValidValue() bool  { return dt.date.IsValidValue() }

// Date returns the date part.
func (dt DateTime) Date() Date { return dt.date }

// Time returns the time of day part, always in [0, 86400).
func (dt DateTime) Time() TimeS { return dt.time }

// ToTime returns the wall clock instant in loc; sentinels use their
// calendar coordinate at midnight.
func (dt DateTime) ToTime(loc *time.Location) time.Time {
	y, m, d := dt.date.ToTime().Date()
	return time.Date(y, m, d, 0, 0, int(dt.time.secs), 0, loc)
}

// TimeFrom expresses this date time as a time relative to midnight of base,
// e.g. hours since a reference date. Sentinel handling follows Date.Minus.
func (dt DateTime) TimeFrom(base Date) (TimeS, error) {
	days := dt.date.Minus(base)
	if kind, _ := sentinel.Int32.Classify(int32(days)); kind != sentinel.Regular {
		return TimeSOfKind(kind)
	}
	return regularTimeS(days*secondsPerDay + int(dt.time.secs))
}

// PlusSeconds shifts by n seconds; n may be an Int32 sentinel code. Whole
// days of the shift move the date, so any shift within the calendar
// envelope is accepted.
func (dt DateTime) PlusSeconds(n int) (DateTime, error) {
	if !dt.IsRegular() {
		d, err := dt.date.PlusDays(n)
		if err != nil {
			return DateTime{}, err
		}
		return DateTimeOf(d, TimeS{})
	}
	if n == int(int32(n)) && sentinel.Int32.IsSpecial(int32(n)) {
		t, err := dt.time.PlusSeconds(n)
		if err != nil {
			return DateTime{}, err
		}
		return DateTimeOf(dt.date, t)
	}
	days := floorDiv(int64(n), secondsPerDay)
	if days > int64(lastRegularDay-firstRegularDay) || days < int64(firstRegularDay-lastRegularDay) {
		return DateTime{}, &RangeError{Field: "date time", Value: fmt.Sprintf("%s%+d seconds", dt.ToIso(), n),
			Min: "1000-01-04T00:00:00", Max: "4999-12-31T23:59:59"}
	}
	d, err := dt.date.PlusDays(int(days))
	if err != nil {
		return DateTime{}, err
	}
	t, err := regularTimeS(int(dt.time.secs) + int(int64(n)-days*secondsPerDay))
	if err != nil {
		return DateTime{}, err
	}
	return DateTimeOf(d, t)
}

// Compare orders by date, then by time of day.
func (dt DateTime) Compare(other DateTime) int {
	if c := dt.date.Compare(other.date); c != 0 {
		return c
	}
	return dt.time.Compare(other.time)
}

func (dt DateTime) Before(other DateTime) bool { return dt.Compare(other) < 0 }
func (dt DateTime) After(other DateTime) bool  { return dt.Compare(other) > 0 }

// =============================================================================
// FORMATTING
// =============================================================================

// ToIso renders YYYY-MM-DDTHH:MM:SS; sentinels use their calendar coordinate.
func (dt DateTime) ToIso() string {
	return dt.date.ToIso() + "T" + formatSeconds(int(dt.time.secs), true)
}

// ToZonedIso renders ToIso followed by the offset of the instant in loc.
func (dt DateTime) ToZonedIso(loc *time.Location) string {
	if !dt.IsRegular() {
		return dt.ToIso()
	}
	return dt.ToIso() + ZoneOffsetOfTime(dt.ToTime(loc)).String()
}

// String renders marker text for sentinels and ISO for regular values.
func (dt DateTime) String() string {
	if !dt.IsRegular() {
		return dt.date.String()
	}
	return dt.ToIso()
}

// ToProvysValue renders the legacy DD.MM.YYYY HH:MI:SS format.
func (dt DateTime) ToProvysValue() string {
	return dt.date.ToProvysValue() + " " + formatSeconds(int(dt.time.secs), true)
}

// =============================================================================
// PARSING
// =============================================================================

// ParseDateTime accepts marker text or a strict ISO date, 'T' and a strict
// time.
func ParseDateTime(text string) (DateTime, error) {
	p := strparser.New(text)
	if d, ok := dateMarker(p); ok {
		if err := p.ExpectEnd(); err != nil {
			return DateTime{}, err
		}
		return DateTimeOf(d, TimeS{})
	}
	start := p.Pos()
	d, err := ParseDateFrom(p, false)
	if err != nil {
		return DateTime{}, err
	}
	if !p.OnChar('T') {
		return DateTime{}, p.Fail(ErrMissingDelimiter, "'T' expected between date and time")
	}
	t, err := ParseTimeSFrom(p, false)
	if err != nil {
		return DateTime{}, err
	}
	if err := p.ExpectEnd(); err != nil {
		return DateTime{}, err
	}
	dt, err := DateTimeOf(d, t)
	if err != nil {
		return DateTime{}, p.FailAt(start, err)
	}
	return dt, nil
}

// ParseIsoDateTime is ParseIsoDateTimeIn for the local zone.
func ParseIsoDateTime(text string) (DateTime, error) {
	return ParseIsoDateTimeIn(text, time.Local)
}

// ParseIsoDateTimeIn accepts the lenient grammar: date, 'T' or ' ', lenient
// time and an optional zone offset. A value with an offset is converted to
// the wall clock of loc.
func ParseIsoDateTimeIn(text string, loc *time.Location) (DateTime, error) {
	p := strparser.New(text)
	if d, ok := dateMarker(p); ok {
		if err := p.ExpectEnd(); err != nil {
			return DateTime{}, err
		}
		return DateTimeOf(d, TimeS{})
	}
	start := p.Pos()
	d, err := ParseDateFrom(p, false)
	if err != nil {
		return DateTime{}, err
	}
	if !p.OnChar('T') && !p.OnChar(' ') {
		return DateTime{}, p.Fail(ErrMissingDelimiter, "'T' expected between date and time")
	}
	t, err := parseIsoTimeSFrom(p)
	if err != nil {
		return DateTime{}, err
	}
	var off *ZoneOffset
	if p.HasNext() {
		o, err := ParseZoneOffsetFrom(p, true)
		if err != nil {
			return DateTime{}, err
		}
		off = &o
	}
	if err := p.ExpectEnd(); err != nil {
		return DateTime{}, err
	}
	dt, err := DateTimeOf(d, t)
	if err != nil {
		return DateTime{}, p.FailAt(start, err)
	}
	if off == nil || !dt.IsRegular() {
		return dt, nil
	}
	if dt, err = DateTimeOfTime(dt.ToTime(off.Location()).In(loc)); err != nil {
		return DateTime{}, p.FailAt(start, err)
	}
	return dt, nil
}

// DateTimeOfProvysValue parses the legacy DD.MM.YYYY[ HH:MI[:SS]] format.
func DateTimeOfProvysValue(text string) (DateTime, error) {
	p := strparser.New(text)
	d, err := parseProvysDateFrom(p)
	if err != nil {
		return DateTime{}, err
	}
	var t TimeS
	if p.OnChar(' ') {
		if t, err = parseProvysTimeSFrom(p); err != nil {
			return DateTime{}, err
		}
	}
	if err := p.ExpectEnd(); err != nil {
		return DateTime{}, err
	}
	dt, err := DateTimeOf(d, t)
	if err != nil {
		return DateTime{}, p.FailAt(0, err)
	}
	return dt, nil
}
