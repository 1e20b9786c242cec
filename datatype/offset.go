package datatype

import (
	"fmt"
	"time"

	"github.com/MichalStehlikCz/common-sub000/strparser"
)

// =============================================================================
// ZONE OFFSET - Fixed UTC offset used by zone-aware parsing and formatting
// =============================================================================

const maxOffsetSeconds = 18 * 3600

// ZoneOffset is a fixed offset from UTC in seconds, within ±18:00.
type ZoneOffset struct {
	seconds int32
}

// UTC is the zero offset.
var UTC = ZoneOffset{}

// ZoneOffsetOf returns the offset of the given number of seconds east of UTC.
func ZoneOffsetOf(seconds int) (ZoneOffset, error) {
	if err := checkRange("zone offset", seconds, -maxOffsetSeconds, maxOffsetSeconds); err != nil {
		return ZoneOffset{}, err
	}
	return ZoneOffset{seconds: int32(seconds)}, nil
}

// ZoneOffsetOfTime returns the offset in effect for t.
func ZoneOffsetOfTime(t time.Time) ZoneOffset {
	_, secs := t.Zone()
	return ZoneOffset{seconds: int32(secs)}
}

func (o ZoneOffset) Seconds() int { return int(o.seconds) }

// Location returns a fixed zone for the offset.
func (o ZoneOffset) Location() *time.Location {
	if o.seconds == 0 {
		return time.UTC
	}
	return time.FixedZone(o.String(), int(o.seconds))
}

// String renders Z for UTC and ±HH:MM[:SS] otherwise.
func (o ZoneOffset) String() string {
	if o.seconds == 0 {
		return "Z"
	}
	s := int(o.seconds)
	sign := byte('+')
	if s < 0 {
		sign = '-'
		s = -s
	}
	if s%60 != 0 {
		return fmt.Sprintf("%c%02d:%02d:%02d", sign, s/3600, s/60%60, s%60)
	}
	return fmt.Sprintf("%c%02d:%02d", sign, s/3600, s/60%60)
}

// ParseZoneOffset accepts the strict grammar Z or ±HH:MM.
func ParseZoneOffset(text string) (ZoneOffset, error) {
	return parseZoneOffset(text, false)
}

// ParseZoneOffsetLenient additionally accepts z, ±H, ±HH, ±HHMM and seconds.
func ParseZoneOffsetLenient(text string) (ZoneOffset, error) {
	return parseZoneOffset(text, true)
}

func parseZoneOffset(text string, lenient bool) (ZoneOffset, error) {
	p := strparser.New(text)
	o, err := ParseZoneOffsetFrom(p, lenient)
	if err != nil {
		return ZoneOffset{}, err
	}
	if err := p.ExpectEnd(); err != nil {
		return ZoneOffset{}, err
	}
	return o, nil
}

// ParseZoneOffsetFrom reads an offset at the cursor.
func ParseZoneOffsetFrom(p *strparser.Parser, lenient bool) (ZoneOffset, error) {
	if p.OnChar('Z') || (lenient && p.OnChar('z')) {
		return UTC, nil
	}
	var negative bool
	var start, minutesAt, secondsAt int
	var hours, minutes, seconds int
	var rule strparser.Rule
	if lenient {
		optColon := strparser.Optional(strparser.Char(':'))
		rule = strparser.Seq(
			strparser.Mark(&start),
			strparser.SignRequired(&negative),
			strparser.Digits(1, 2, &hours),
			strparser.Optional(strparser.Seq(
				optColon, strparser.Mark(&minutesAt), strparser.Digits(2, 2, &minutes),
				strparser.Optional(strparser.Seq(
					optColon, strparser.Mark(&secondsAt), strparser.Digits(2, 2, &seconds),
				)),
			)),
		)
	} else {
		rule = strparser.Seq(
			strparser.Mark(&start),
			strparser.SignRequired(&negative),
			strparser.Digits(2, 2, &hours),
			strparser.Char(':'),
			strparser.Mark(&minutesAt), strparser.Digits(2, 2, &minutes),
		)
	}
	if err := rule(p); err != nil {
		return ZoneOffset{}, err
	}
	if err := checkRange("minutes", minutes, 0, 59); err != nil {
		return ZoneOffset{}, p.FailAt(minutesAt, err)
	}
	if err := checkRange("seconds", seconds, 0, 59); err != nil {
		return ZoneOffset{}, p.FailAt(secondsAt, err)
	}
	total := hours*3600 + minutes*60 + seconds
	if negative {
		total = -total
	}
	o, err := ZoneOffsetOf(total)
	if err != nil {
		return ZoneOffset{}, p.FailAt(start, err)
	}
	return o, nil
}
