package temporal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateTime(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"NoZone", "2020-01-15T08:30:00.000", time.Date(2020, 1, 15, 8, 30, 0, 0, time.UTC)},
		{"Zulu", "2020-01-15T08:30:00.000Z", time.Date(2020, 1, 15, 8, 30, 0, 0, time.UTC)},
		{"SpaceSeparator", "2020-01-15 08:30:00.123Z", time.Date(2020, 1, 15, 8, 30, 0, 123_000_000, time.UTC)},
		{"Offset", "2020-01-15T08:30:00.000+05:30", time.Date(2020, 1, 15, 8, 30, 0, 0, time.FixedZone("+05:30", 5*3600+30*60))},
		{"NegativeOffset", "2020-01-15T08:30:00.000-03:00", time.Date(2020, 1, 15, 8, 30, 0, 0, time.FixedZone("-03:00", -3*3600))},
		{"ZeroOffset", "2020-01-15T08:30:00.000+00:00", time.Date(2020, 1, 15, 8, 30, 0, 0, time.UTC)},
		{"Region", "2020-07-01T12:00:00.000+02:00[Europe/Berlin]", time.Date(2020, 7, 1, 12, 0, 0, 0, berlin)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateTime(tt.input, Strict)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
			assert.Equal(t, tt.want.Location().String(), got.Location().String())
		})
	}
}

func TestParseDateTimeLenient(t *testing.T) {
	t.Run("OutOfRangeMonthNormalizes", func(t *testing.T) {
		got, err := ParseDateTime("2011-13-01T00:00:00.000Z", Lenient)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2012, 1, 1, 0, 0, 0, 0, time.UTC), got)

		_, err = ParseDateTime("2011-13-01T00:00:00.000Z", Strict)
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("PunctuationIgnored", func(t *testing.T) {
		got, err := ParseDateTime("2011/02/03x04;05;06,007", Lenient)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2011, 2, 3, 4, 5, 6, 7_000_000, time.UTC), got)

		_, err = ParseDateTime("2011/02/03x04;05;06,007", Strict)
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("AnyZoneLetterIsUTC", func(t *testing.T) {
		got, err := ParseDateTime("2011-02-03T04:05:06.007Q", Lenient)
		require.NoError(t, err)
		assert.Equal(t, time.UTC, got.Location())

		_, err = ParseDateTime("2011-02-03T04:05:06.007Q", Strict)
		assert.Error(t, err)
	})
}

func TestParseDateTimeMalformedShape(t *testing.T) {
	inputs := []string{
		"",
		"2020-01-15",
		"2020-01-15T08:30:00.00",
		"20a0-01-15T08:30:00.000Z",
		"2020-01-15T08:30:00.000*05:30",
		"2020-01-15T08:30:00.000+0x:30",
		"2020-01-15T08:30:00.000+01:00[Nowhere/Atlantis]",
	}
	for _, in := range inputs {
		for _, mode := range []Mode{Lenient, Strict} {
			_, err := ParseDateTime(in, mode)
			require.Error(t, err, "%s %q", mode, in)
			assert.ErrorIs(t, err, ErrMalformed)

			var pe *ParseError
			assert.ErrorAs(t, err, &pe)
		}
	}
}

func TestFormatDateTime(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2020, 1, 15, 8, 30, 0, 0, time.UTC), "2020-01-15T08:30:00.000Z"},
		{time.Date(2020, 1, 15, 8, 30, 0, 999_999_999, time.UTC), "2020-01-15T08:30:00.999Z"},
		{time.Date(2020, 1, 15, 8, 30, 0, 0, FixedZone(-(3*3600 + 30*60))), "2020-01-15T08:30:00.000-03:30"},
		{time.Date(2020, 7, 1, 12, 0, 0, 0, berlin), "2020-07-01T12:00:00.000+02:00[Europe/Berlin]"},
		{time.Date(5, 2, 3, 4, 5, 6, 0, time.UTC), "0005-02-03T04:05:06.000Z"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDateTime(tt.in))
	}
}

func TestDateTimeRoundTrip(t *testing.T) {
	inputs := []string{
		"2020-01-15T08:30:00.000Z",
		"1999-12-31T23:59:59.999+14:00",
		"1970-01-01T00:00:00.000-11:45",
		"2020-07-01T12:00:00.000+02:00[Europe/Berlin]",
		"2020-01-01T12:00:00.000+01:00[Europe/Berlin]",
	}
	for _, in := range inputs {
		v, err := ParseDateTime(in, Strict)
		require.NoError(t, err)
		assert.Equal(t, in, FormatDateTime(v))

		again, err := ParseDateTime(FormatDateTime(v), Strict)
		require.NoError(t, err)
		assert.True(t, v.Equal(again))
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-02-29", Strict)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, "2024-02-29", FormatDate(got))

	_, err = ParseDate("2023-02-29", Strict)
	assert.ErrorIs(t, err, ErrMalformed)

	lenient, err := ParseDate("2023-02-29", Lenient)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC), lenient)

	_, err = ParseDate("2023-2-9", Lenient)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestLenientYearRange(t *testing.T) {
	for _, s := range []string{
		"0000-00-00T00:00:00.000Z",
		"0000-01-00T00:00:00.000Z",
		"9999-13-01T00:00:00.000Z",
		"9999-12-31T23:59:60.000Z",
	} {
		_, err := ParseDateTime(s, Lenient)
		var pe *ParseError
		require.ErrorAs(t, err, &pe, s)
		assert.Equal(t, "year", pe.Field)
	}

	_, err := ParseDate("9999-12-32", Lenient)
	assert.ErrorIs(t, err, ErrMalformed)
	_, err = ParseDate("0000-00-01", Lenient)
	assert.ErrorIs(t, err, ErrMalformed)

	// Normalisation that stays within range is still accepted.
	for _, s := range []string{"0000-01-01T00:00:00.000Z", "9999-12-31T23:59:59.999Z", "9998-13-01T00:00:00.000Z"} {
		v, err := ParseDateTime(s, Lenient)
		require.NoError(t, err, s)
		again, err := ParseDateTime(FormatDateTime(v), Lenient)
		require.NoError(t, err, s)
		assert.True(t, v.Equal(again), s)
	}
}

func TestRepeatedWallTimeUsesOffset(t *testing.T) {
	// 02:30 occurs twice in Berlin on 2020-10-25.
	first, err := ParseDateTime("2020-10-25T02:30:00.000+02:00[Europe/Berlin]", Strict)
	require.NoError(t, err)
	second, err := ParseDateTime("2020-10-25T02:30:00.000+01:00[Europe/Berlin]", Strict)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2020, 10, 25, 0, 30, 0, 0, time.UTC).UnixMilli(), first.UnixMilli())
	assert.Equal(t, time.Date(2020, 10, 25, 1, 30, 0, 0, time.UTC).UnixMilli(), second.UnixMilli())
	assert.Equal(t, "2020-10-25T02:30:00.000+01:00[Europe/Berlin]", FormatDateTime(second))

	// An offset the region never uses there does not override it.
	other, err := ParseDateTime("2020-10-25T12:00:00.000+05:00[Europe/Berlin]", Strict)
	require.NoError(t, err)
	assert.Equal(t, "2020-10-25T12:00:00.000+01:00[Europe/Berlin]", FormatDateTime(other))
}

func TestLenientOffsetBound(t *testing.T) {
	v, err := ParseDateTime("2020-01-15T08:30:00.000+99:59", Lenient)
	require.NoError(t, err)
	again, err := ParseDateTime(FormatDateTime(v), Lenient)
	require.NoError(t, err)
	assert.True(t, v.Equal(again))

	_, err = ParseDateTime("2020-01-15T08:30:00.000+99:60", Lenient)
	assert.ErrorIs(t, err, ErrMalformed)
}

func FuzzParseDateTime(f *testing.F) {
	seeds := []string{
		"2020-01-15T08:30:00.000Z",
		"2020-01-15T08:30:00.000+05:30",
		"2020-07-01T12:00:00.000+02:00[Europe/Berlin]",
		"9999-99-99T99:99:99.999",
		"0000-00-00T00:00:00.000Z",
		"9999-13-01T00:00:00.000Z",
		"9999-12-31T23:59:59.999-18:00",
		"2020-10-25T02:30:00.000+01:00[Europe/Berlin]",
		"2020-01-15T08:30:00.000+99:99",
		"2020-01-15T08:30:00.000+",
		"",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, s string) {
		for _, mode := range []Mode{Lenient, Strict} {
			v, err := ParseDateTime(s, mode)
			if err != nil {
				continue
			}
			again, err := ParseDateTime(FormatDateTime(v), mode)
			if err != nil {
				t.Fatalf("%s reparse of %q failed: %v", mode, FormatDateTime(v), err)
			}
			if !again.Equal(v) {
				t.Fatalf("%s round trip mismatch for %q: %v != %v", mode, s, v, again)
			}
		}
	})
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": Lenient, "lenient": Lenient, "STRICT": Strict} {
		got, err := ParseMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseMode("loose")
	assert.Error(t, err)
}
