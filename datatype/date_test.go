package datatype_test

import (
	"testing"
	"time"

	"github.com/MichalStehlikCz/common-sub000/datatype"
	"github.com/MichalStehlikCz/common-sub000/sentinel"
	"github.com/MichalStehlikCz/common-sub000/strparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(t *testing.T, y, m, d int) datatype.Date {
	t.Helper()
	v, err := datatype.DateOf(y, m, d)
	require.NoError(t, err)
	return v
}

func allDateSentinels() []datatype.Date {
	return []datatype.Date{datatype.DatePriv(), datatype.DateME(), datatype.DateMin(), datatype.DateMax()}
}

// =============================================================================
// FACTORIES
// =============================================================================

func TestDateOf_Regular(t *testing.T) {
	d := date(t, 2011, 12, 31)

	assert.Equal(t, sentinel.Regular, d.Kind())
	assert.Equal(t, 2011, d.Year())
	assert.Equal(t, 12, d.Month())
	assert.Equal(t, 31, d.Day())
	assert.Equal(t, 365, d.DayOfYear())
	assert.Equal(t, 6, d.DayOfWeek(), "2011-12-31 was a Saturday")
	assert.Equal(t, 7, date(t, 2012, 1, 1).DayOfWeek(), "Sunday is 7")
	assert.Equal(t, 366, date(t, 2012, 12, 31).DayOfYear())
}

func TestDateOf_Invalid(t *testing.T) {
	_, err := datatype.DateOf(2011, 2, 30)
	assert.ErrorIs(t, err, datatype.ErrCalendar)

	_, err = datatype.DateOf(2011, 13, 1)
	assert.ErrorIs(t, err, datatype.ErrCalendar)

	_, err = datatype.DateOf(999, 12, 31)
	assert.ErrorIs(t, err, datatype.ErrRange)

	_, err = datatype.DateOf(5000, 1, 2)
	assert.ErrorIs(t, err, datatype.ErrRange)
}

func TestDateOf_ReservedCoordinates(t *testing.T) {
	// GIVEN: The calendar coordinates reserved for sentinels
	// WHEN: Built through DateOf and DateOfSpecial
	// THEN: DateOf refuses them, DateOfSpecial maps them to the sentinels

	cases := []struct {
		y, m, d int
		want    datatype.Date
	}{
		{1000, 1, 1, datatype.DateME()},
		{1000, 1, 2, datatype.DatePriv()},
		{1000, 1, 3, datatype.DateMin()},
		{5000, 1, 1, datatype.DateMax()},
	}
	for _, tc := range cases {
		_, err := datatype.DateOf(tc.y, tc.m, tc.d)
		assert.ErrorIs(t, err, datatype.ErrRange)

		got, err := datatype.DateOfSpecial(tc.y, tc.m, tc.d)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	first, err := datatype.DateOf(1000, 1, 4)
	require.NoError(t, err)
	assert.True(t, first.IsRegular())
}

func TestDateOfKind(t *testing.T) {
	d, err := datatype.DateOfKind(sentinel.Max)
	require.NoError(t, err)
	assert.Equal(t, datatype.DateMax(), d)

	_, err = datatype.DateOfKind(sentinel.Regular)
	assert.ErrorIs(t, err, datatype.ErrNotRegular)
}

func TestDateOfInstant(t *testing.T) {
	instant := time.Date(2011, 12, 31, 23, 30, 0, 0, time.UTC)

	d, err := datatype.DateOfInstant(instant, time.FixedZone("CET", 3600))
	require.NoError(t, err)
	assert.Equal(t, date(t, 2012, 1, 1), d)
}

func TestDate_SentinelAccessors(t *testing.T) {
	priv := datatype.DatePriv()
	code := int(sentinel.Int32.Priv)

	assert.Equal(t, code, priv.Year())
	assert.Equal(t, code, priv.Month())
	assert.Equal(t, code, priv.Day())
	assert.Equal(t, code, priv.DayOfWeek())
	assert.Equal(t, int(sentinel.Int32.Max), datatype.DateMax().Year())
	assert.False(t, priv.IsValidValue())
	assert.True(t, datatype.DateMin().IsValidValue())
}

// =============================================================================
// ARITHMETIC
// =============================================================================

func TestDate_PlusDays(t *testing.T) {
	d := date(t, 2011, 12, 31)

	next, err := d.PlusDays(1)
	require.NoError(t, err)
	assert.Equal(t, date(t, 2012, 1, 1), next)

	back, err := next.PlusDays(-366)
	require.NoError(t, err)
	assert.Equal(t, date(t, 2010, 12, 31), back)

	same, err := d.PlusDays(0)
	require.NoError(t, err)
	assert.Equal(t, d, same)

	_, err = date(t, 4999, 12, 31).PlusDays(1)
	assert.ErrorIs(t, err, datatype.ErrRange)
}

func TestDate_PlusDays_ZeroIsIdentity(t *testing.T) {
	for _, d := range append(allDateSentinels(), date(t, 1989, 11, 26)) {
		got, err := d.PlusDays(0)
		require.NoError(t, err)
		assert.Equal(t, d, got, d.String())
	}
}

func TestDate_PlusDays_SentinelPrecedence(t *testing.T) {
	ints := sentinel.Int32
	reg := date(t, 2011, 12, 31)

	cases := []struct {
		name string
		d    datatype.Date
		n    int
		want datatype.Date
	}{
		{"priv absorbs", datatype.DatePriv(), 5, datatype.DatePriv()},
		{"priv code absorbs", reg, int(ints.Priv), datatype.DatePriv()},
		{"priv beats me", datatype.DateME(), int(ints.Priv), datatype.DatePriv()},
		{"me absorbs", datatype.DateME(), 5, datatype.DateME()},
		{"me beats bound", datatype.DateMin(), int(ints.ME), datatype.DateME()},
		{"bound receiver unchanged", datatype.DateMax(), int(ints.Min), datatype.DateMax()},
		{"min code", reg, int(ints.Min), datatype.DateMin()},
		{"max code", reg, int(ints.Max), datatype.DateMax()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.d.PlusDays(tc.n)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDate_Minus(t *testing.T) {
	ints := sentinel.Int32
	a := date(t, 2012, 1, 1)
	b := date(t, 2011, 12, 1)

	assert.Equal(t, 31, a.Minus(b))
	assert.Equal(t, -31, b.Minus(a))
	assert.Equal(t, int(ints.Priv), a.Minus(datatype.DatePriv()))
	assert.Equal(t, int(ints.ME), datatype.DateME().Minus(a))
	assert.Equal(t, int(ints.Priv), datatype.DateME().Minus(datatype.DatePriv()), "priv wins over me")
	assert.Equal(t, 0, datatype.DateMax().Minus(datatype.DateMax()))
	assert.Equal(t, 0, datatype.DateMin().Minus(datatype.DateMin()))
}

func TestDate_Minus_BoundarySymmetry(t *testing.T) {
	// GIVEN: A bound and a regular date
	// WHEN: Subtracted in both directions
	// THEN: One direction saturates to Max and the other to Min

	ints := sentinel.Int32
	reg := date(t, 2011, 12, 31)
	pairs := [][2]datatype.Date{
		{datatype.DateMax(), reg},
		{reg, datatype.DateMin()},
		{datatype.DateMax(), datatype.DateMin()},
	}
	for _, pair := range pairs {
		assert.Equal(t, int(ints.Max), pair[0].Minus(pair[1]))
		assert.Equal(t, int(ints.Min), pair[1].Minus(pair[0]))
	}
}

func TestDate_Compare(t *testing.T) {
	ordered := []datatype.Date{
		datatype.DateME(),
		datatype.DatePriv(),
		datatype.DateMin(),
		date(t, 1000, 1, 4),
		date(t, 2011, 12, 31),
		date(t, 4999, 12, 31),
		datatype.DateMax(),
	}
	for i := 1; i < len(ordered); i++ {
		assert.True(t, ordered[i-1].Before(ordered[i]), "%s < %s", ordered[i-1], ordered[i])
		assert.True(t, ordered[i].After(ordered[i-1]))
	}
	assert.Equal(t, 0, datatype.DateMax().Compare(datatype.DateMax()))
}

// =============================================================================
// FORMATTING AND PARSING
// =============================================================================

func TestDate_Formatting(t *testing.T) {
	d := date(t, 1989, 11, 26)

	assert.Equal(t, "1989-11-26", d.ToIso())
	assert.Equal(t, "1989-11-26", d.String())
	assert.Equal(t, "26.11.1989", d.ToProvysValue())

	assert.Equal(t, "##########", datatype.DatePriv().String())
	assert.Equal(t, "**********", datatype.DateME().String())
	assert.Equal(t, "<<<<<<<<", datatype.DateMin().String())
	assert.Equal(t, ">>>>>>>>", datatype.DateMax().String())
	assert.Equal(t, "5000-01-01", datatype.DateMax().ToIso())
	assert.Equal(t, "02.01.1000", datatype.DatePriv().ToProvysValue())
}

func TestParseDate(t *testing.T) {
	d, err := datatype.ParseDate("2011-12-31")
	require.NoError(t, err)
	assert.Equal(t, date(t, 2011, 12, 31), d)

	d, err = datatype.ParseDate("<<<<<<<<")
	require.NoError(t, err)
	assert.Equal(t, datatype.DateMin(), d)

	d, err = datatype.ParseDate("1000-01-02")
	require.NoError(t, err)
	assert.Equal(t, datatype.DatePriv(), d, "reserved coordinate parses to its sentinel")
}

func TestParseDate_Errors(t *testing.T) {
	_, err := datatype.ParseDate("2011-12-31x")
	assert.ErrorIs(t, err, datatype.ErrTrailingInput)
	assert.Equal(t, 10, strparser.Position(err))

	_, err = datatype.ParseDate("2011/12/31")
	assert.ErrorIs(t, err, datatype.ErrMissingDelimiter)
	assert.ErrorIs(t, err, datatype.ErrParseGrammar)
	assert.Equal(t, 4, strparser.Position(err))

	_, err = datatype.ParseDate("2011-02-30")
	assert.ErrorIs(t, err, datatype.ErrParseGrammar)
	assert.ErrorIs(t, err, datatype.ErrCalendar)
	assert.Equal(t, 0, strparser.Position(err))

	_, err = datatype.ParseDate("11-12-31")
	assert.ErrorIs(t, err, datatype.ErrParseGrammar)

	_, err = datatype.ParseDate("")
	assert.ErrorIs(t, err, strparser.ErrEndOfInput)
}

func TestParseIsoDate(t *testing.T) {
	want := date(t, 2011, 12, 31)
	for _, text := range []string{
		"2011-12-31",
		"2011-12-31T00:00:00",
		"2011-12-31T00:00",
		"2011-12-31Z",
		"2011-12-31+01:00",
		"2011-12-31T00:00:00-0530",
	} {
		got, err := datatype.ParseIsoDate(text)
		require.NoError(t, err, text)
		assert.Equal(t, want, got, text)
	}

	got, err := datatype.ParseIsoDate("2011-12-31T24:00:00")
	require.NoError(t, err)
	assert.Equal(t, date(t, 2012, 1, 1), got, "24:00 rolls over")

	_, err = datatype.ParseIsoDate("2011-12-31T10:00:00")
	assert.ErrorIs(t, err, datatype.ErrRange)
	assert.ErrorIs(t, err, datatype.ErrParseGrammar)
	assert.Equal(t, 11, strparser.Position(err))

	_, err = datatype.ParseIsoDate("2011-12-31+25:00")
	assert.ErrorIs(t, err, datatype.ErrRange)
}

func TestParseIsoDate_SignedTimeSuffix(t *testing.T) {
	for _, text := range []string{"2020-01-01T-00:00:00", "2020-01-01T+24:00", "2020-01-01T+00:00:00Z"} {
		_, err := datatype.ParseIsoDate(text)
		assert.ErrorIs(t, err, strparser.ErrUnexpectedSign, text)
		assert.Equal(t, 11, strparser.Position(err), text)
	}
}

func TestDateOfProvysValue(t *testing.T) {
	d, err := datatype.DateOfProvysValue("26.11.1989")
	require.NoError(t, err)
	assert.Equal(t, date(t, 1989, 11, 26), d)

	d, err = datatype.DateOfProvysValue("26.11.1989 00:00:00")
	require.NoError(t, err)
	assert.Equal(t, date(t, 1989, 11, 26), d)

	_, err = datatype.DateOfProvysValue("02.01.2018 05:00:00")
	assert.ErrorIs(t, err, datatype.ErrRange, "non-midnight time rejected")

	_, err = datatype.DateOfProvysValue("2011-12-31")
	assert.ErrorIs(t, err, datatype.ErrMissingDelimiter)
}

func TestDate_RoundTrip(t *testing.T) {
	values := append(allDateSentinels(),
		date(t, 1000, 1, 4),
		date(t, 1989, 11, 26),
		date(t, 2000, 2, 29),
		date(t, 4999, 12, 31),
	)
	for _, d := range values {
		got, err := datatype.ParseDate(d.String())
		require.NoError(t, err, d.String())
		assert.Equal(t, d, got)

		got, err = datatype.ParseIsoDate(d.ToIso())
		require.NoError(t, err, d.ToIso())
		assert.Equal(t, d, got)

		got, err = datatype.DateOfProvysValue(d.ToProvysValue())
		require.NoError(t, err, d.ToProvysValue())
		assert.Equal(t, d, got)
	}
}
