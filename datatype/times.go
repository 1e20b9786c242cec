package datatype

import (
	"fmt"
	"math"
	"time"

	"github.com/MichalStehlikCz/common-sub000/sentinel"
	"github.com/MichalStehlikCz/common-sub000/strparser"
)

// =============================================================================
// TIMES - Signed time in whole seconds
// =============================================================================
//
// TimeS is not bounded to a day: 27:00:00 is one day and three hours and
// negative values are allowed. Its sentinels use the Int32 sentinel codes as
// the stored second count.

const (
	TimeSTextMin = "<<<<<<"
	TimeSTextMax = ">>>>>>"

	maxHourDigits = 7

	// Hour field and day suffix limits of the legacy format.
	provysMaxHours = 1000
	provysMaxDays  = 99
)

// TimeS is a number of seconds or a sentinel. The zero value is 00:00:00.
type TimeS struct {
	kind sentinel.Kind
	secs int32
}

var (
	timeSPriv = TimeS{kind: sentinel.Priv, secs: sentinel.Int32.Priv}
	timeSME   = TimeS{kind: sentinel.ME, secs: sentinel.Int32.ME}
	timeSMin  = TimeS{kind: sentinel.Min, secs: sentinel.Int32.Min}
	timeSMax  = TimeS{kind: sentinel.Max, secs: sentinel.Int32.Max}

	// hourCache holds the whole hours 0-30; written once at start-up.
	hourCache = func() (c [31]TimeS) {
		for h := range c {
			c[h] = TimeS{secs: int32(h * 3600)}
		}
		return c
	}()
)

// TimeSPriv returns the Priv sentinel time.
func TimeSPriv() TimeS { return timeSPriv }

// TimeSME returns the ME sentinel time.
func TimeSME() TimeS { return timeSME }

// TimeSMin returns the open lower bound.
func TimeSMin() TimeS { return timeSMin }

// TimeSMax returns the open upper bound.
func TimeSMax() TimeS { return timeSMax }

// TimeSOfKind returns the sentinel time of a special kind.
func TimeSOfKind(k sentinel.Kind) (TimeS, error) {
	switch k {
	case sentinel.Priv:
		return timeSPriv, nil
	case sentinel.ME:
		return timeSME, nil
	case sentinel.Min:
		return timeSMin, nil
	case sentinel.Max:
		return timeSMax, nil
	}
	return TimeS{}, fmt.Errorf("%w: time kind %s", ErrNotRegular, k)
}

// TimeSOfSeconds maps a regular second count directly and the four reserved
// Int32 codes to the sentinels. Anything else is out of range.
func TimeSOfSeconds(seconds int) (TimeS, error) {
	if seconds < math.MinInt32 || seconds > math.MaxInt32 {
		return TimeS{}, timeSRangeError(seconds)
	}
	kind, ok := sentinel.Int32.Classify(int32(seconds))
	if !ok {
		return TimeS{}, timeSRangeError(seconds)
	}
	return TimeS{kind: kind, secs: int32(seconds)}, nil
}

// regularTimeS is TimeSOfSeconds for computed results: a second count that
// lands on a reserved code is out of range rather than a sentinel.
func regularTimeS(seconds int) (TimeS, error) {
	t, err := TimeSOfSeconds(seconds)
	if err != nil {
		return TimeS{}, err
	}
	if !t.IsRegular() {
		return TimeS{}, timeSRangeError(seconds)
	}
	return t, nil
}

func timeSRangeError(seconds any) error {
	return &RangeError{Field: "seconds", Value: seconds, Min: sentinel.Int32.Min + 1, Max: sentinel.Int32.Max - 1}
}

// TimeSOfHours returns a whole number of hours; 0-30 are served from a cache.
func TimeSOfHours(hours int) (TimeS, error) {
	if hours >= 0 && hours < len(hourCache) {
		return hourCache[hours], nil
	}
	return TimeSOfSeconds(hours * 3600)
}

// TimeSOfDayToNano combines days with a time of day. Hours must be 0-23,
// minutes and seconds 0-59; nanoseconds are rounded half-up to whole seconds.
func TimeSOfDayToNano(days, hours, minutes, seconds, nanos int) (TimeS, error) {
	if err := checkRange("hours", hours, 0, 23); err != nil {
		return TimeS{}, err
	}
	rest, err := timeParts(false, hours, minutes, seconds, nanos)
	if err != nil {
		return TimeS{}, err
	}
	return TimeSOfSeconds(days*secondsPerDay + rest)
}

func TimeSOfDayToSecond(days, hours, minutes, seconds int) (TimeS, error) {
	return TimeSOfDayToNano(days, hours, minutes, seconds, 0)
}

// TimeSOfHourToNano combines a non-negative hour count of any magnitude with
// minutes, seconds and nanoseconds.
func TimeSOfHourToNano(hours, minutes, seconds, nanos int) (TimeS, error) {
	if hours < 0 {
		return TimeS{}, &RangeError{Field: "hours", Value: hours, Min: 0, Max: "unbounded"}
	}
	total, err := timeParts(false, hours, minutes, seconds, nanos)
	if err != nil {
		return TimeS{}, err
	}
	return TimeSOfSeconds(total)
}

func TimeSOfHourToSecond(hours, minutes, seconds int) (TimeS, error) {
	return TimeSOfHourToNano(hours, minutes, seconds, 0)
}

func TimeSOfHourToMinute(hours, minutes int) (TimeS, error) {
	return TimeSOfHourToNano(hours, minutes, 0, 0)
}

func timeParts(negative bool, hours, minutes, seconds, nanos int) (int, error) {
	if err := checkRange("minutes", minutes, 0, 59); err != nil {
		return 0, err
	}
	if err := checkRange("seconds", seconds, 0, 59); err != nil {
		return 0, err
	}
	if err := checkRange("nanoseconds", nanos, 0, 999_999_999); err != nil {
		return 0, err
	}
	if hours > math.MaxInt32/3600+1 {
		return 0, timeSRangeError(fmt.Sprintf("%d hours", hours))
	}
	total := hours*3600 + minutes*60 + seconds
	if nanos >= 500_000_000 {
		total++
	}
	if negative {
		total = -total
	}
	return total, nil
}

// =============================================================================
// CLASSIFICATION AND DECOMPOSITION
// =============================================================================

func (t TimeS) Kind() sentinel.Kind { return t.kind }
func (t TimeS) IsRegular() bool     { return t.kind == sentinel.Regular }
func (t TimeS) IsValidValue() bool  { return t.kind.IsValidValue() }

// TotalSeconds returns the second count; sentinels return their code.
func (t TimeS) TotalSeconds() int { return int(t.secs) }

// Days returns whole days, rounded towards negative infinity so that
// Days()*86400 + Time24() always equals the value.
func (t TimeS) Days() int {
	if !t.IsRegular() {
		return int(t.secs)
	}
	return int(floorDiv(int64(t.secs), secondsPerDay))
}

// Hours returns the whole hours including days, signed.
func (t TimeS) Hours() int {
	if !t.IsRegular() {
		return int(t.secs)
	}
	return int(t.secs) / 3600
}

// Minutes returns the minute part, signed like the value.
func (t TimeS) Minutes() int {
	if !t.IsRegular() {
		return int(t.secs)
	}
	return int(t.secs) / 60 % 60
}

// Seconds returns the second part, signed like the value.
func (t TimeS) Seconds() int {
	if !t.IsRegular() {
		return int(t.secs)
	}
	return int(t.secs) % 60
}

// Time24 strips whole days; the result is in [0, 86400). Sentinels are
// returned unchanged.
func (t TimeS) Time24() TimeS {
	if !t.IsRegular() {
		return t
	}
	s := int(t.secs) - t.Days()*secondsPerDay
	if s%3600 == 0 {
		return hourCache[s/3600]
	}
	return TimeS{secs: int32(s)}
}

func (t TimeS) Hours24() int {
	if !t.IsRegular() {
		return int(t.secs)
	}
	return int(t.Time24().secs) / 3600
}

func (t TimeS) Minutes24() int {
	if !t.IsRegular() {
		return int(t.secs)
	}
	return int(t.Time24().secs) / 60 % 60
}

func (t TimeS) Seconds24() int {
	if !t.IsRegular() {
		return int(t.secs)
	}
	return int(t.Time24().secs) % 60
}

// =============================================================================
// ARITHMETIC
// =============================================================================

// Plus adds two times. Min plus Max has no defined result.
func (t TimeS) Plus(other TimeS) (TimeS, error) {
	switch {
	case t.kind == sentinel.Priv || other.kind == sentinel.Priv:
		return timeSPriv, nil
	case t.kind == sentinel.ME || other.kind == sentinel.ME:
		return timeSME, nil
	case t.kind.IsBound() && other.kind.IsBound() && t.kind != other.kind:
		return TimeS{}, fmt.Errorf("%w: %s plus %s", ErrIncompatibleSentinels, t.kind, other.kind)
	case t.kind.IsBound():
		return t, nil
	case other.kind.IsBound():
		return other, nil
	}
	return regularTimeS(int(t.secs) + int(other.secs))
}

// Minus subtracts other. Equal bounds give zero, as with Date.Minus.
func (t TimeS) Minus(other TimeS) (TimeS, error) {
	switch {
	case t.kind == sentinel.Priv || other.kind == sentinel.Priv:
		return timeSPriv, nil
	case t.kind == sentinel.ME || other.kind == sentinel.ME:
		return timeSME, nil
	case t.kind.IsBound() && t.kind == other.kind:
		return hourCache[0], nil
	case t.kind == sentinel.Max || other.kind == sentinel.Min:
		return timeSMax, nil
	case t.kind == sentinel.Min || other.kind == sentinel.Max:
		return timeSMin, nil
	}
	return regularTimeS(int(t.secs) - int(other.secs))
}

// PlusSeconds adds n seconds; n may be an Int32 sentinel code. Precedence
// follows Date.PlusDays.
func (t TimeS) PlusSeconds(n int) (TimeS, error) {
	ints := sentinel.Int32
	switch {
	case t.kind == sentinel.Priv || n == int(ints.Priv):
		return timeSPriv, nil
	case t.kind == sentinel.ME || n == int(ints.ME):
		return timeSME, nil
	case t.kind.IsBound():
		return t, nil
	case n == int(ints.Min):
		return timeSMin, nil
	case n == int(ints.Max):
		return timeSMax, nil
	case n == 0:
		return t, nil
	}
	return regularTimeS(int(t.secs) + n)
}

// PlusDays adds a possibly fractional number of days; days may be a Float64
// sentinel code. The shift is rounded to whole seconds half away from zero.
func (t TimeS) PlusDays(days float64) (TimeS, error) {
	floats := sentinel.Float64
	switch {
	case t.kind == sentinel.Priv || days == floats.Priv:
		return timeSPriv, nil
	case t.kind == sentinel.ME || days == floats.ME:
		return timeSME, nil
	case t.kind.IsBound():
		return t, nil
	case days == floats.Min:
		return timeSMin, nil
	case days == floats.Max:
		return timeSMax, nil
	}
	shift := math.Round(days * secondsPerDay)
	if math.IsNaN(shift) || math.Abs(shift) > math.MaxInt32*2.0 {
		return TimeS{}, timeSRangeError(fmt.Sprintf("%v days", days))
	}
	return regularTimeS(int(t.secs) + int(shift))
}

// Neg negates the value; Min and Max swap.
func (t TimeS) Neg() (TimeS, error) {
	switch t.kind {
	case sentinel.Min:
		return timeSMax, nil
	case sentinel.Max:
		return timeSMin, nil
	case sentinel.Priv, sentinel.ME:
		return t, nil
	}
	return regularTimeS(-int(t.secs))
}

// Compare orders by second count: Priv < ME < Min < regular < Max.
func (t TimeS) Compare(other TimeS) int {
	switch {
	case t.secs < other.secs:
		return -1
	case t.secs > other.secs:
		return 1
	}
	return 0
}

// =============================================================================
// TIME ZONES
// =============================================================================

// ShiftToOffset converts a local time in loc on date ref to the same instant
// expressed as seconds from midnight of ref at offset off.
func (t TimeS) ShiftToOffset(ref Date, off ZoneOffset, loc *time.Location) (TimeS, error) {
	if !t.IsRegular() {
		return t, nil
	}
	y, m, d := ref.ToTime().Date()
	instant := time.Date(y, m, d, 0, 0, int(t.secs), 0, loc)
	midnight := time.Date(y, m, d, 0, 0, 0, 0, off.Location())
	return regularTimeS(int(instant.Sub(midnight) / time.Second))
}

// ShiftFromOffset converts a time at offset off on date ref to seconds
// elapsed since local midnight of ref in loc.
func (t TimeS) ShiftFromOffset(ref Date, off ZoneOffset, loc *time.Location) (TimeS, error) {
	if !t.IsRegular() {
		return t, nil
	}
	y, m, d := ref.ToTime().Date()
	instant := time.Date(y, m, d, 0, 0, int(t.secs), 0, off.Location())
	midnight := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return regularTimeS(int(instant.Sub(midnight) / time.Second))
}

// =============================================================================
// FORMATTING
// =============================================================================

// String renders [-]HH:MM:SS with at least two hour digits; sentinels render
// as marker text.
func (t TimeS) String() string {
	switch t.kind {
	case sentinel.Priv:
		return sentinel.TextPriv
	case sentinel.ME:
		return sentinel.TextME
	case sentinel.Min:
		return TimeSTextMin
	case sentinel.Max:
		return TimeSTextMax
	}
	return formatSeconds(int(t.secs), true)
}

// ToIso renders [-]HH:MM:SS. Sentinels render their reserved second count,
// which ParseTimeS maps back to the sentinel.
func (t TimeS) ToIso() string { return formatSeconds(int(t.secs), true) }

// ToProvysValue renders the legacy [-]HH:MI:SS[±DD] format, markers for
// sentinels. Values of 1000 hours or more move whole days into the day
// suffix; beyond 99 days plus 999:59:59 the hour field is left unbounded.
func (t TimeS) ToProvysValue() string {
	s, err := t.FormatProvys()
	if err != nil {
		return t.String()
	}
	return s
}

// FormatProvys is ToProvysValue failing with ErrRange for values the legacy
// format cannot represent.
func (t TimeS) FormatProvys() (string, error) {
	if !t.IsRegular() {
		return t.String(), nil
	}
	s := int(t.secs)
	if s > -provysMaxHours*3600 && s < provysMaxHours*3600 {
		return formatSeconds(s, true), nil
	}
	sign, daySign := "", '+'
	if s < 0 {
		sign, daySign = "-", '-'
		s = -s
	}
	days := s / secondsPerDay
	if days > provysMaxDays {
		days = provysMaxDays
	}
	rest := s - days*secondsPerDay
	if rest >= provysMaxHours*3600 {
		return "", &RangeError{Field: "legacy time", Value: t.String(),
			Min: "-999:59:59-99", Max: "999:59:59+99"}
	}
	return fmt.Sprintf("%s%s%c%02d", sign, formatSeconds(rest, true), daySign, days), nil
}

// ToTimeInfo renders [-]H:MM:SS without hour padding.
func (t TimeS) ToTimeInfo() string {
	if !t.IsRegular() {
		return t.String()
	}
	return formatSeconds(int(t.secs), false)
}

func formatSeconds(s int, padHours bool) string {
	sign := ""
	if s < 0 {
		sign = "-"
		s = -s
	}
	if padHours {
		return fmt.Sprintf("%s%02d:%02d:%02d", sign, s/3600, s/60%60, s%60)
	}
	return fmt.Sprintf("%s%d:%02d:%02d", sign, s/3600, s/60%60, s%60)
}

// =============================================================================
// PARSING
// =============================================================================

// ParseTimeS accepts the strict [-]HH:MM:SS[.fraction] grammar, with two or
// more hour digits, or marker text.
func ParseTimeS(text string) (TimeS, error) {
	p := strparser.New(text)
	t, err := ParseTimeSFrom(p, true)
	if err != nil {
		return TimeS{}, err
	}
	if err := p.ExpectEnd(); err != nil {
		return TimeS{}, err
	}
	return t, nil
}

// ParseTimeSFrom reads a strict time at the cursor.
func ParseTimeSFrom(p *strparser.Parser, markers bool) (TimeS, error) {
	if markers {
		if t, ok := timeSMarker(p); ok {
			return t, nil
		}
	}
	var c timeComponents
	rule := strparser.Seq(
		strparser.Mark(&c.start),
		strparser.Sign(false, &c.negative),
		strparser.Digits(2, maxHourDigits, &c.hours),
		colon,
		strparser.Mark(&c.minutesAt), strparser.Digits(2, 2, &c.minutes),
		colon,
		strparser.Mark(&c.secondsAt), strparser.Digits(2, 2, &c.seconds),
		strparser.Optional(strparser.Fraction(&c.roundUp)),
	)
	if err := rule(p); err != nil {
		return TimeS{}, err
	}
	return c.build(p)
}

var colon strparser.Rule = func(p *strparser.Parser) error {
	if !p.OnChar(':') {
		return p.Fail(ErrMissingDelimiter, "':' expected")
	}
	return nil
}

func timeSMarker(p *strparser.Parser) (TimeS, bool) {
	switch {
	case p.OnText(sentinel.TextPriv):
		return timeSPriv, true
	case p.OnText(sentinel.TextME):
		return timeSME, true
	case p.OnText(TimeSTextMin):
		return timeSMin, true
	case p.OnText(TimeSTextMax):
		return timeSMax, true
	}
	return TimeS{}, false
}

// timeComponents collects the parts matched by a time grammar together with
// their positions, so range violations point at the offending component.
type timeComponents struct {
	start, minutesAt, secondsAt int
	negative, roundUp           bool
	hours, minutes, seconds     int
	days                        int
}

func (c *timeComponents) build(p *strparser.Parser) (TimeS, error) {
	if err := checkRange("minutes", c.minutes, 0, 59); err != nil {
		return TimeS{}, p.FailAt(c.minutesAt, err)
	}
	if err := checkRange("seconds", c.seconds, 0, 59); err != nil {
		return TimeS{}, p.FailAt(c.secondsAt, err)
	}
	nanos := 0
	if c.roundUp {
		nanos = 500_000_000
	}
	total, err := timeParts(c.negative, c.hours, c.minutes, c.seconds, nanos)
	if err != nil {
		return TimeS{}, p.FailAt(c.start, err)
	}
	t, err := TimeSOfSeconds(total + c.days*secondsPerDay)
	if err != nil {
		return TimeS{}, p.FailAt(c.start, err)
	}
	return t, nil
}

// ParseIsoTimeS is ParseIsoTimeSAt for today in the local zone.
func ParseIsoTimeS(text string) (TimeS, error) {
	return ParseIsoTimeSAt(text, Today(), time.Local)
}

// ParseIsoTimeSAt accepts the lenient grammar: everything ParseTimeS accepts
// plus H:M without seconds, one-digit components, compact HHMM[SS] and an
// optional leading '+'. A trailing zone offset shifts the result from that
// offset to loc on date ref.
func ParseIsoTimeSAt(text string, ref Date, loc *time.Location) (TimeS, error) {
	p := strparser.New(text)
	t, ok := timeSMarker(p)
	if !ok {
		var err error
		if t, err = parseIsoTimeSFrom(p); err != nil {
			return TimeS{}, err
		}
		if p.HasNext() {
			off, err := ParseZoneOffsetFrom(p, true)
			if err != nil {
				return TimeS{}, err
			}
			if t, err = t.ShiftFromOffset(ref, off, loc); err != nil {
				return TimeS{}, err
			}
		}
	}
	if err := p.ExpectEnd(); err != nil {
		return TimeS{}, err
	}
	return t, nil
}

func parseIsoTimeSFrom(p *strparser.Parser) (TimeS, error) {
	var c timeComponents
	c.start = p.Pos()
	if err := strparser.Sign(true, &c.negative)(p); err != nil {
		return TimeS{}, err
	}
	var rule strparser.Rule
	if n := p.CountDigits(); (n == 4 || n == 6) && !isOnColonAfter(p, n) {
		rule = strparser.Seq(
			strparser.Digits(2, 2, &c.hours),
			strparser.Mark(&c.minutesAt), strparser.Digits(2, 2, &c.minutes),
			strparser.Optional(strparser.Seq(
				strparser.Mark(&c.secondsAt), strparser.Digits(2, 2, &c.seconds),
				strparser.Optional(strparser.Fraction(&c.roundUp)),
			)),
		)
	} else {
		rule = strparser.Seq(
			strparser.Digits(1, maxHourDigits, &c.hours),
			colon,
			strparser.Mark(&c.minutesAt), strparser.Digits(1, 2, &c.minutes),
			strparser.Optional(strparser.Seq(
				colon,
				strparser.Mark(&c.secondsAt), strparser.Digits(1, 2, &c.seconds),
				strparser.Optional(strparser.Fraction(&c.roundUp)),
			)),
		)
	}
	if err := rule(p); err != nil {
		return TimeS{}, err
	}
	return c.build(p)
}

func isOnColonAfter(p *strparser.Parser, n int) bool {
	text := p.Text()
	i := p.Pos() + n
	return i < len(text) && text[i] == ':'
}

// TimeSOfProvysValue parses the legacy [-]HH:MI[:SS[:00]][±DD] format, where
// the optional suffix is a signed day offset; marker text is accepted.
func TimeSOfProvysValue(text string) (TimeS, error) {
	p := strparser.New(text)
	t, ok := timeSMarker(p)
	if !ok {
		var err error
		if t, err = parseProvysTimeSFrom(p); err != nil {
			return TimeS{}, err
		}
	}
	if err := p.ExpectEnd(); err != nil {
		return TimeS{}, err
	}
	return t, nil
}

func parseProvysTimeSFrom(p *strparser.Parser) (TimeS, error) {
	var c timeComponents
	var daysNegative bool
	rule := strparser.Seq(
		strparser.Mark(&c.start),
		strparser.Sign(false, &c.negative),
		strparser.Digits(2, 3, &c.hours),
		colon,
		strparser.Mark(&c.minutesAt), strparser.Digits(2, 2, &c.minutes),
		strparser.Optional(strparser.Seq(
			colon,
			strparser.Mark(&c.secondsAt), strparser.Digits(2, 2, &c.seconds),
			strparser.Optional(strparser.Seq(colon, strparser.Literal("00"))),
		)),
		strparser.Optional(strparser.Seq(
			strparser.SignRequired(&daysNegative),
			strparser.Digits(2, 2, &c.days),
		)),
	)
	if err := rule(p); err != nil {
		return TimeS{}, err
	}
	if daysNegative {
		c.days = -c.days
	}
	return c.build(p)
}

// ParseTimeInfo parses [+|-]H:MM[:SS] with an hour count of any magnitude,
// used for durations that exceed a day; marker text is accepted.
func ParseTimeInfo(text string) (TimeS, error) {
	p := strparser.New(text)
	if t, ok := timeSMarker(p); ok {
		if err := p.ExpectEnd(); err != nil {
			return TimeS{}, err
		}
		return t, nil
	}
	var c timeComponents
	rule := strparser.Seq(
		strparser.Mark(&c.start),
		strparser.Sign(true, &c.negative),
		strparser.Digits(1, maxHourDigits, &c.hours),
		colon,
		strparser.Mark(&c.minutesAt), strparser.Digits(2, 2, &c.minutes),
		strparser.Optional(strparser.Seq(
			colon,
			strparser.Mark(&c.secondsAt), strparser.Digits(2, 2, &c.seconds),
		)),
	)
	if err := strparser.Run(p, rule); err != nil {
		return TimeS{}, err
	}
	return c.build(p)
}
