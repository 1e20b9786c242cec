package datatype_test

import (
	"testing"
	"time"

	"github.com/MichalStehlikCz/common-sub000/datatype"
	"github.com/MichalStehlikCz/common-sub000/sentinel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dateTime(t *testing.T, y, mo, d, h, mi, s int) datatype.DateTime {
	t.Helper()
	v, err := datatype.DateTimeOfParts(y, mo, d, h, mi, s)
	require.NoError(t, err)
	return v
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

func TestDateTimeOf_DayRollover(t *testing.T) {
	// GIVEN: 2011-12-31 and a time of exactly 24 hours
	// WHEN: Combined
	// THEN: The whole day carries into the date

	midnight, err := datatype.TimeSOfHourToSecond(24, 0, 0)
	require.NoError(t, err)

	got, err := datatype.DateTimeOf(date(t, 2011, 12, 31), midnight)
	require.NoError(t, err)
	assert.Equal(t, dateTime(t, 2012, 1, 1, 0, 0, 0), got)
}

func TestDateTimeOf_NegativeTimeBorrows(t *testing.T) {
	got, err := datatype.DateTimeOf(date(t, 2012, 1, 1), seconds(t, -3600))
	require.NoError(t, err)
	assert.Equal(t, dateTime(t, 2011, 12, 31, 23, 0, 0), got)
	assert.Equal(t, 82800, got.Time().TotalSeconds())
}

func TestDateTimeOf_SentinelPrecedence(t *testing.T) {
	reg := date(t, 2011, 12, 31)
	noon := seconds(t, 43200)

	cases := []struct {
		name string
		d    datatype.Date
		t    datatype.TimeS
		want datatype.DateTime
	}{
		{"priv date", datatype.DatePriv(), noon, datatype.DateTimePriv()},
		{"priv time over me date", datatype.DateME(), datatype.TimeSPriv(), datatype.DateTimePriv()},
		{"me time", reg, datatype.TimeSME(), datatype.DateTimeME()},
		{"me time over min date", datatype.DateMin(), datatype.TimeSME(), datatype.DateTimeME()},
		{"min date", datatype.DateMin(), noon, datatype.DateTimeMin()},
		{"max date with max time", datatype.DateMax(), datatype.TimeSMax(), datatype.DateTimeMax()},
		{"min time", reg, datatype.TimeSMin(), datatype.DateTimeMin()},
		{"max time", reg, datatype.TimeSMax(), datatype.DateTimeMax()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := datatype.DateTimeOf(tc.d, tc.t)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := datatype.DateTimeOf(datatype.DateMin(), datatype.TimeSMax())
	assert.ErrorIs(t, err, datatype.ErrIncompatibleSentinels)
	_, err = datatype.DateTimeOf(datatype.DateMax(), datatype.TimeSMin())
	assert.ErrorIs(t, err, datatype.ErrIncompatibleSentinels)
}

func TestDateTimeOf_SentinelHasZeroTime(t *testing.T) {
	got, err := datatype.DateTimeOf(datatype.DateMax(), seconds(t, 3600))
	require.NoError(t, err)
	assert.Equal(t, sentinel.Max, got.Kind())
	assert.Equal(t, 0, got.Time().TotalSeconds())
}

func TestDateTimeOfParts_Invalid(t *testing.T) {
	_, err := datatype.DateTimeOfParts(2011, 2, 29, 0, 0, 0)
	assert.ErrorIs(t, err, datatype.ErrCalendar)
	_, err = datatype.DateTimeOfParts(2011, 12, 31, 24, 0, 0)
	assert.ErrorIs(t, err, datatype.ErrRange)
}

func TestDateTimeOfTime(t *testing.T) {
	got, err := datatype.DateTimeOfTime(time.Date(2011, 12, 31, 23, 59, 59, 600_000_000, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, dateTime(t, 2012, 1, 1, 0, 0, 0), got, "rounding carries into the next day")

	tm := dateTime(t, 1989, 11, 26, 13, 5, 0).ToTime(time.UTC)
	assert.True(t, time.Date(1989, 11, 26, 13, 5, 0, 0, time.UTC).Equal(tm), tm.String())
}

// =============================================================================
// ARITHMETIC
// =============================================================================

func TestDateTime_PlusSeconds(t *testing.T) {
	got, err := dateTime(t, 2011, 12, 31, 23, 59, 59).PlusSeconds(1)
	require.NoError(t, err)
	assert.Equal(t, dateTime(t, 2012, 1, 1, 0, 0, 0), got)

	got, err = dateTime(t, 2012, 1, 1, 0, 0, 0).PlusSeconds(-86400 * 2)
	require.NoError(t, err)
	assert.Equal(t, dateTime(t, 2011, 12, 30, 0, 0, 0), got)

	got, err = datatype.DateTimePriv().PlusSeconds(5)
	require.NoError(t, err)
	assert.Equal(t, datatype.DateTimePriv(), got)

	got, err = dateTime(t, 2012, 1, 1, 0, 0, 0).PlusSeconds(int(sentinel.Int32.Max))
	require.NoError(t, err)
	assert.Equal(t, datatype.DateTimeMax(), got)
}

func TestDateTime_PlusSecondsBeyondTimeRange(t *testing.T) {
	// GIVEN: A shift of 70 years, more than a TimeS can hold
	// WHEN: It is added in seconds
	// THEN: Whole days move the date and the remainder the time of day

	start := dateTime(t, 2000, 1, 1, 12, 0, 0)
	days := date(t, 2070, 1, 1).Minus(date(t, 2000, 1, 1))

	got, err := start.PlusSeconds(days*86400 + 13*3600)
	require.NoError(t, err)
	assert.Equal(t, dateTime(t, 2070, 1, 2, 1, 0, 0), got)

	got, err = got.PlusSeconds(-(days*86400 + 13*3600))
	require.NoError(t, err)
	assert.Equal(t, start, got)

	_, err = start.PlusSeconds(4000 * 366 * 86400)
	assert.ErrorIs(t, err, datatype.ErrRange)
}

func TestDateTime_TimeFrom(t *testing.T) {
	base := date(t, 2012, 1, 1)

	got, err := dateTime(t, 2012, 1, 2, 1, 0, 0).TimeFrom(base)
	require.NoError(t, err)
	assert.Equal(t, 25*3600, got.TotalSeconds())

	got, err = dateTime(t, 2011, 12, 31, 12, 0, 0).TimeFrom(base)
	require.NoError(t, err)
	assert.Equal(t, -12*3600, got.TotalSeconds())

	got, err = datatype.DateTimeMax().TimeFrom(base)
	require.NoError(t, err)
	assert.Equal(t, datatype.TimeSMax(), got)

	got, err = dateTime(t, 2012, 1, 2, 1, 0, 0).TimeFrom(datatype.DateME())
	require.NoError(t, err)
	assert.Equal(t, datatype.TimeSME(), got)
}

func TestDateTime_Compare(t *testing.T) {
	ordered := []datatype.DateTime{
		datatype.DateTimeME(),
		datatype.DateTimePriv(),
		datatype.DateTimeMin(),
		dateTime(t, 2011, 12, 31, 0, 0, 0),
		dateTime(t, 2011, 12, 31, 0, 0, 1),
		dateTime(t, 2012, 1, 1, 0, 0, 0),
		datatype.DateTimeMax(),
	}
	for i := 1; i < len(ordered); i++ {
		assert.True(t, ordered[i-1].Before(ordered[i]))
		assert.True(t, ordered[i].After(ordered[i-1]))
	}
}

// =============================================================================
// FORMATTING AND PARSING
// =============================================================================

func TestDateTime_Formatting(t *testing.T) {
	dt := dateTime(t, 1989, 11, 26, 13, 5, 0)

	assert.Equal(t, "1989-11-26T13:05:00", dt.ToIso())
	assert.Equal(t, "1989-11-26T13:05:00", dt.String())
	assert.Equal(t, "26.11.1989 13:05:00", dt.ToProvysValue())
	assert.Equal(t, "1989-11-26T13:05:00Z", dt.ToZonedIso(time.UTC))
	assert.Equal(t, "1989-11-26T13:05:00+02:00", dt.ToZonedIso(time.FixedZone("EET", 7200)))

	assert.Equal(t, ">>>>>>>>", datatype.DateTimeMax().String())
	assert.Equal(t, "02.01.1000 00:00:00", datatype.DateTimePriv().ToProvysValue())
	assert.Equal(t, "1000-01-01T00:00:00", datatype.DateTimeME().ToIso())
}

func TestDateTimeOfProvysValue_LegacyRoundTrip(t *testing.T) {
	dt, err := datatype.DateTimeOfProvysValue("26.11.1989 13:05:00")
	require.NoError(t, err)
	assert.Equal(t, dateTime(t, 1989, 11, 26, 13, 5, 0), dt)
	assert.Equal(t, "26.11.1989 13:05:00", dt.ToProvysValue())

	dt, err = datatype.DateTimeOfProvysValue("26.11.1989")
	require.NoError(t, err)
	assert.Equal(t, dateTime(t, 1989, 11, 26, 0, 0, 0), dt)

	dt, err = datatype.DateTimeOfProvysValue("26.11.1989 13:05")
	require.NoError(t, err)
	assert.Equal(t, dateTime(t, 1989, 11, 26, 13, 5, 0), dt)

	_, err = datatype.DateTimeOfProvysValue("26.11.1989T13:05:00")
	assert.ErrorIs(t, err, datatype.ErrTrailingInput)
}

func TestParseDateTime(t *testing.T) {
	dt, err := datatype.ParseDateTime("2011-12-31T10:05:30")
	require.NoError(t, err)
	assert.Equal(t, dateTime(t, 2011, 12, 31, 10, 5, 30), dt)

	dt, err = datatype.ParseDateTime("2011-12-31T24:00:00")
	require.NoError(t, err)
	assert.Equal(t, dateTime(t, 2012, 1, 1, 0, 0, 0), dt)

	dt, err = datatype.ParseDateTime("**********")
	require.NoError(t, err)
	assert.Equal(t, datatype.DateTimeME(), dt)

	_, err = datatype.ParseDateTime("2011-12-31 10:05:30")
	assert.ErrorIs(t, err, datatype.ErrMissingDelimiter)
	_, err = datatype.ParseDateTime("2011-12-31T10:65:30")
	assert.ErrorIs(t, err, datatype.ErrRange)
	_, err = datatype.ParseDateTime("2011-12-31T10:05:30Z")
	assert.ErrorIs(t, err, datatype.ErrTrailingInput)
}

func TestParseIsoDateTimeIn(t *testing.T) {
	cases := []struct {
		text string
		want datatype.DateTime
	}{
		{"2011-12-31T10:05:30", dateTime(t, 2011, 12, 31, 10, 5, 30)},
		{"2011-12-31 10:05", dateTime(t, 2011, 12, 31, 10, 5, 0)},
		{"2011-12-31T1005", dateTime(t, 2011, 12, 31, 10, 5, 0)},
		{"2011-12-31T10:05:30Z", dateTime(t, 2011, 12, 31, 10, 5, 30)},
		{"2011-12-31T23:30:00-01:00", dateTime(t, 2012, 1, 1, 0, 30, 0)},
		{"2012-01-01T00:30:00+0100", dateTime(t, 2011, 12, 31, 23, 30, 0)},
	}
	for _, tc := range cases {
		got, err := datatype.ParseIsoDateTimeIn(tc.text, time.UTC)
		require.NoError(t, err, tc.text)
		assert.Equal(t, tc.want, got, tc.text)
	}

	got, err := datatype.ParseIsoDateTimeIn("2011-12-31T10:00:00Z", time.FixedZone("CET", 3600))
	require.NoError(t, err)
	assert.Equal(t, dateTime(t, 2011, 12, 31, 11, 0, 0), got, "converted to the target zone")

	_, err = datatype.ParseIsoDateTimeIn("2011-12-31X10:00", time.UTC)
	assert.ErrorIs(t, err, datatype.ErrMissingDelimiter)
}

func TestDateTime_RoundTrip(t *testing.T) {
	values := []datatype.DateTime{
		datatype.DateTimePriv(), datatype.DateTimeME(), datatype.DateTimeMin(), datatype.DateTimeMax(),
		dateTime(t, 1000, 1, 4, 0, 0, 0),
		dateTime(t, 1989, 11, 26, 13, 5, 0),
		dateTime(t, 4999, 12, 31, 23, 59, 59),
	}
	for _, dt := range values {
		got, err := datatype.ParseDateTime(dt.String())
		require.NoError(t, err, dt.String())
		assert.Equal(t, dt, got)

		got, err = datatype.ParseIsoDateTimeIn(dt.ToIso(), time.UTC)
		require.NoError(t, err, dt.ToIso())
		assert.Equal(t, dt, got)

		got, err = datatype.DateTimeOfProvysValue(dt.ToProvysValue())
		require.NoError(t, err, dt.ToProvysValue())
		assert.Equal(t, dt, got)
	}
}
