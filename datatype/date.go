/*
Package datatype provides the immutable scalar value types of the data
framework: DATE, TIMES, DATETIME, INTEGER, DOUBLE, NUMBER, UID and VARCHAR.

PURPOSE:
  Every value is either regular or one of the four sentinels of package
  sentinel (Priv, ME, Min, Max). Values round-trip losslessly through ISO
  text, the legacy Provys positional format and SQL columns.

KEY CONCEPTS IN THIS FILE (date.go):
  - Date: proleptic Gregorian calendar date in [1000-01-01, 5000-01-01]
  - Sentinel dates keep a calendar coordinate inside that envelope, so ISO,
    legacy and SQL encodings carry them by value:
      ME  1000-01-01    Priv 1000-01-02
      Min 1000-01-03    Max  5000-01-01

DESIGN PRINCIPLES:
  1. Immutability: values are created by validating factories only
  2. Explicit sentinels: the kind is a tag, never inferred by callers
  3. Sentinel-coded accessors: Year(), Hours() etc. answer the Int32
     sentinel code on sentinel values instead of failing

USAGE:
  d, err := datatype.DateOf(2011, 12, 31)
  next, err := d.PlusDays(1)
  fmt.Println(next.ToIso())          // 2012-01-01
  fmt.Println(next.ToProvysValue())  // 01.01.2012

SEE ALSO:
  - times.go: Time in seconds
  - datetime.go: Date and time of day
  - sentinel/: Kind and the numeric sentinel codes
*/
package datatype

import (
	"fmt"
	"time"

	"github.com/MichalStehlikCz/common-sub000/sentinel"
	"github.com/MichalStehlikCz/common-sub000/strparser"
)

// =============================================================================
// DATE - Calendar date with sentinels
// =============================================================================

const (
	secondsPerDay = 86400

	DateTextMin = "<<<<<<<<"
	DateTextMax = ">>>>>>>>"
)

// Date is a calendar date or a sentinel. The zero value is 1970-01-01.
type Date struct {
	kind sentinel.Kind
	day  int32 // days since 1970-01-01 of the calendar coordinate
}

var (
	dateME   = Date{kind: sentinel.ME, day: mustEpochDay(1000, 1, 1)}
	datePriv = Date{kind: sentinel.Priv, day: mustEpochDay(1000, 1, 2)}
	dateMin  = Date{kind: sentinel.Min, day: mustEpochDay(1000, 1, 3)}
	dateMax  = Date{kind: sentinel.Max, day: mustEpochDay(5000, 1, 1)}

	firstRegularDay = mustEpochDay(1000, 1, 4)
	lastRegularDay  = mustEpochDay(4999, 12, 31)
)

// DatePriv returns the Priv sentinel date.
func DatePriv() Date { return datePriv }

// DateME returns the ME sentinel date.
func DateME() Date { return dateME }

// DateMin returns the open lower bound.
func DateMin() Date { return dateMin }

// DateMax returns the open upper bound.
func DateMax() Date { return dateMax }

// DateOfKind returns the sentinel date of a special kind.
func DateOfKind(k sentinel.Kind) (Date, error) {
	switch k {
	case sentinel.Priv:
		return datePriv, nil
	case sentinel.ME:
		return dateME, nil
	case sentinel.Min:
		return dateMin, nil
	case sentinel.Max:
		return dateMax, nil
	}
	return Date{}, fmt.Errorf("%w: date kind %s", ErrNotRegular, k)
}

// DateOf returns a regular date. Calendar coordinates reserved for sentinels
// are rejected; use DateOfSpecial to map them.
func DateOf(year, month, day int) (Date, error) {
	ed, err := epochDay(year, month, day)
	if err != nil {
		return Date{}, err
	}
	if ed < firstRegularDay || ed > lastRegularDay {
		return Date{}, dateRangeError(year, month, day)
	}
	return Date{day: ed}, nil
}

// DateOfSpecial is DateOf that recognizes the four sentinel coordinates and
// returns the canonical sentinel for them.
func DateOfSpecial(year, month, day int) (Date, error) {
	ed, err := epochDay(year, month, day)
	if err != nil {
		return Date{}, err
	}
	return dateOfEpochDay(ed, year, month, day)
}

func dateOfEpochDay(ed int32, year, month, day int) (Date, error) {
	switch ed {
	case dateME.day:
		return dateME, nil
	case datePriv.day:
		return datePriv, nil
	case dateMin.day:
		return dateMin, nil
	case dateMax.day:
		return dateMax, nil
	}
	if ed < firstRegularDay || ed > lastRegularDay {
		return Date{}, dateRangeError(year, month, day)
	}
	return Date{day: ed}, nil
}

// DateOfTime returns the date part of t in t's location.
func DateOfTime(t time.Time) (Date, error) {
	y, m, d := t.Date()
	return DateOf(y, int(m), d)
}

// DateOfInstant returns the date of instant t as seen in loc.
func DateOfInstant(t time.Time, loc *time.Location) (Date, error) {
	return DateOfTime(t.In(loc))
}

// Today returns the current date in the local zone.
func Today() Date { return TodayIn(time.Local) }

// TodayIn returns the current date as seen in loc.
func TodayIn(loc *time.Location) Date {
	d, err := DateOfInstant(time.Now(), loc)
	if err != nil {
		panic(err)
	}
	return d
}

func epochDay(year, month, day int) (int32, error) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, &CalendarError{Year: year, Month: month, Day: day}
	}
	if year < 1 || year > 9999 {
		return 0, dateRangeError(year, month, day)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return 0, &CalendarError{Year: year, Month: month, Day: day}
	}
	return int32(floorDiv(t.Unix(), secondsPerDay)), nil
}

func mustEpochDay(year, month, day int) int32 {
	ed, err := epochDay(year, month, day)
	if err != nil {
		panic(err)
	}
	return ed
}

func dateRangeError(year, month, day int) error {
	return &RangeError{
		Field: "date",
		Value: fmt.Sprintf("%04d-%02d-%02d", year, month, day),
		Min:   "1000-01-04",
		Max:   "4999-12-31",
	}
}

// =============================================================================
// CLASSIFICATION AND ACCESSORS
// =============================================================================

// Kind returns the sentinel classification.
func (d Date) Kind() sentinel.Kind { return d.kind }

func (d Date) IsRegular() bool    { return d.kind == sentinel.Regular }
func (d Date) IsValidValue() bool { return d.kind.IsValidValue() }

// ToTime returns midnight UTC of the calendar coordinate. Sentinels report
// their reserved coordinate.
func (d Date) ToTime() time.Time {
	return time.Unix(int64(d.day)*secondsPerDay, 0).UTC()
}

// EpochDay returns the number of days since 1970-01-01.
func (d Date) EpochDay() int32 { return d.day }

func (d Date) code() int { return int(sentinel.Int32.Code(d.kind)) }

// Year returns the year, or the Int32 sentinel code for sentinel dates.
func (d Date) Year() int {
	if !d.IsRegular() {
		return d.code()
	}
	return d.ToTime().Year()
}

// Month returns the month 1-12, or the Int32 sentinel code.
func (d Date) Month() int {
	if !d.IsRegular() {
		return d.code()
	}
	return int(d.ToTime().Month())
}

// Day returns the day of month, or the Int32 sentinel code.
func (d Date) Day() int {
	if !d.IsRegular() {
		return d.code()
	}
	return d.ToTime().Day()
}

// DayOfYear returns 1-366, or the Int32 sentinel code.
func (d Date) DayOfYear() int {
	if !d.IsRegular() {
		return d.code()
	}
	return d.ToTime().YearDay()
}

// DayOfWeek returns the ISO day of week (Monday = 1), or the Int32 sentinel code.
func (d Date) DayOfWeek() int {
	if !d.IsRegular() {
		return d.code()
	}
	wd := int(d.ToTime().Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// =============================================================================
// ARITHMETIC
// =============================================================================

// PlusDays adds n days. n may itself be an Int32 sentinel code.
//
// Precedence: Priv (either side), ME (either side), a bound receiver is
// returned unchanged, a bound n yields the corresponding bound date.
func (d Date) PlusDays(n int) (Date, error) {
	ints := sentinel.Int32
	switch {
	case d.kind == sentinel.Priv || n == int(ints.Priv):
		return datePriv, nil
	case d.kind == sentinel.ME || n == int(ints.ME):
		return dateME, nil
	case d.kind.IsBound():
		return d, nil
	case n == int(ints.Min):
		return dateMin, nil
	case n == int(ints.Max):
		return dateMax, nil
	case n == 0:
		return d, nil
	}
	ed := int64(d.day) + int64(n)
	if ed < int64(firstRegularDay) || ed > int64(lastRegularDay) {
		return Date{}, &RangeError{Field: "date", Value: fmt.Sprintf("%s%+d days", d.ToIso(), n),
			Min: "1000-01-04", Max: "4999-12-31"}
	}
	return Date{day: int32(ed)}, nil
}

// Minus returns the number of days from other to d as an Int32-coded value.
//
// Precedence: Priv, ME, equal bounds give 0, otherwise an unbounded side
// saturates the result to the matching bound code.
func (d Date) Minus(other Date) int {
	ints := sentinel.Int32
	switch {
	case d.kind == sentinel.Priv || other.kind == sentinel.Priv:
		return int(ints.Priv)
	case d.kind == sentinel.ME || other.kind == sentinel.ME:
		return int(ints.ME)
	case d.kind == sentinel.Min && other.kind == sentinel.Min,
		d.kind == sentinel.Max && other.kind == sentinel.Max:
		return 0
	case d.kind == sentinel.Max || other.kind == sentinel.Min:
		return int(ints.Max)
	case d.kind == sentinel.Min || other.kind == sentinel.Max:
		return int(ints.Min)
	}
	return int(d.day - other.day)
}

// Compare orders dates by calendar coordinate: ME < Priv < Min < regular < Max.
func (d Date) Compare(other Date) int {
	switch {
	case d.day < other.day:
		return -1
	case d.day > other.day:
		return 1
	}
	return 0
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }
func (d Date) Equal(other Date) bool  { return d == other }

// =============================================================================
// FORMATTING
// =============================================================================

// ToIso renders YYYY-MM-DD. Sentinels render their calendar coordinate, as
// marker text is not a valid ISO date.
func (d Date) ToIso() string {
	y, m, day := d.ToTime().Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), day)
}

// String renders marker text for sentinels and ISO for regular dates.
func (d Date) String() string {
	switch d.kind {
	case sentinel.Priv:
		return sentinel.TextPriv
	case sentinel.ME:
		return sentinel.TextME
	case sentinel.Min:
		return DateTextMin
	case sentinel.Max:
		return DateTextMax
	}
	return d.ToIso()
}

// ToProvysValue renders the legacy DD.MM.YYYY format, sentinels included.
func (d Date) ToProvysValue() string {
	y, m, day := d.ToTime().Date()
	return fmt.Sprintf("%02d.%02d.%04d", day, int(m), y)
}

// =============================================================================
// PARSING
// =============================================================================

// ParseDate accepts strict ISO YYYY-MM-DD or sentinel marker text and
// requires the whole text to be consumed.
func ParseDate(text string) (Date, error) {
	p := strparser.New(text)
	d, err := ParseDateFrom(p, true)
	if err != nil {
		return Date{}, err
	}
	if err := p.ExpectEnd(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// ParseDateFrom reads a strict ISO date at the cursor; markers controls
// whether sentinel marker text is accepted. Calendar coordinates of the
// sentinels map to the sentinels.
func ParseDateFrom(p *strparser.Parser, markers bool) (Date, error) {
	if markers {
		if d, ok := dateMarker(p); ok {
			return d, nil
		}
	}
	start := p.Pos()
	year, err := p.ReadUnsignedIntExact(4)
	if err != nil {
		return Date{}, err
	}
	if !p.OnChar('-') {
		return Date{}, p.Fail(ErrMissingDelimiter, "'-' expected after year")
	}
	month, err := p.ReadUnsignedIntExact(2)
	if err != nil {
		return Date{}, err
	}
	if !p.OnChar('-') {
		return Date{}, p.Fail(ErrMissingDelimiter, "'-' expected after month")
	}
	day, err := p.ReadUnsignedIntExact(2)
	if err != nil {
		return Date{}, err
	}
	d, err := DateOfSpecial(year, month, day)
	if err != nil {
		return Date{}, p.FailAt(start, err)
	}
	return d, nil
}

func dateMarker(p *strparser.Parser) (Date, bool) {
	switch {
	case p.OnText(sentinel.TextPriv):
		return datePriv, true
	case p.OnText(sentinel.TextME):
		return dateME, true
	case p.OnText(DateTextMin):
		return dateMin, true
	case p.OnText(DateTextMax):
		return dateMax, true
	}
	return Date{}, false
}

// ParseIsoDate is the lenient ISO grammar: a strict date optionally followed
// by T00:00:00 or T24:00:00 (the latter rolls over to the next day) and by a
// zone offset that must be well formed but is otherwise ignored.
func ParseIsoDate(text string) (Date, error) {
	p := strparser.New(text)
	d, err := ParseDateFrom(p, true)
	if err != nil {
		return Date{}, err
	}
	if p.OnChar('T') {
		start := p.Pos()
		if p.IsOnChar('+') || p.IsOnChar('-') {
			return Date{}, p.Fail(strparser.ErrUnexpectedSign, "time suffix is unsigned")
		}
		t, err := parseIsoTimeSFrom(p)
		if err != nil {
			return Date{}, err
		}
		switch t.secs {
		case 0:
		case secondsPerDay:
			if d, err = d.PlusDays(1); err != nil {
				return Date{}, p.FailAt(start, err)
			}
		default:
			return Date{}, p.FailAt(start, &RangeError{Field: "time of day", Value: t.String(),
				Min: "00:00:00", Max: "24:00:00"})
		}
	}
	if p.HasNext() {
		if _, err := ParseZoneOffsetFrom(p, true); err != nil {
			return Date{}, err
		}
	}
	if err := p.ExpectEnd(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// DateOfProvysValue parses the legacy DD.MM.YYYY[ 00:00:00] format. A time
// part other than midnight is rejected.
func DateOfProvysValue(text string) (Date, error) {
	p := strparser.New(text)
	d, err := parseProvysDateFrom(p)
	if err != nil {
		return Date{}, err
	}
	if p.OnChar(' ') {
		start := p.Pos()
		t, err := parseProvysTimeSFrom(p)
		if err != nil {
			return Date{}, err
		}
		if t.secs != 0 {
			return Date{}, p.FailAt(start, &RangeError{Field: "time of day", Value: t.String(),
				Min: "00:00:00", Max: "00:00:00"})
		}
	}
	if err := p.ExpectEnd(); err != nil {
		return Date{}, err
	}
	return d, nil
}

func parseProvysDateFrom(p *strparser.Parser) (Date, error) {
	start := p.Pos()
	day, err := p.ReadUnsignedIntExact(2)
	if err != nil {
		return Date{}, err
	}
	if !p.OnChar('.') {
		return Date{}, p.Fail(ErrMissingDelimiter, "'.' expected after day")
	}
	month, err := p.ReadUnsignedIntExact(2)
	if err != nil {
		return Date{}, err
	}
	if !p.OnChar('.') {
		return Date{}, p.Fail(ErrMissingDelimiter, "'.' expected after month")
	}
	year, err := p.ReadUnsignedIntExact(4)
	if err != nil {
		return Date{}, err
	}
	d, err := DateOfSpecial(year, month, day)
	if err != nil {
		return Date{}, p.FailAt(start, err)
	}
	return d, nil
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
