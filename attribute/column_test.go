package attribute

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/graphattr/attribute/temporal"
)

func mustNew(t *testing.T, name string, opts ...Option) Description {
	t.Helper()
	d, err := NewByName(name, opts...)
	require.NoError(t, err)
	return d
}

func TestDateTimeEndToEnd(t *testing.T) {
	d := mustNew(t, "datetime")

	require.NoError(t, d.SetString(0, "2020-01-15T08:30:00.000Z"))
	assert.Equal(t, int64(1579077000000), d.GetLong(0))
	assert.Equal(t, "2020-01-15T08:30:00.000Z", d.GetString(0))
	assert.Equal(t, float64(1579077000000), d.GetDouble(0))
}

func TestStringRoundTrip(t *testing.T) {
	tests := []struct {
		typ  string
		text string
	}{
		{"boolean", "true"},
		{"boolean", "false"},
		{"integer", "-42"},
		{"integer", "2147483647"},
		{"long", "9223372036854775807"},
		{"float", "1.5"},
		{"float", "-0.25"},
		{"double", "0.1"},
		{"double", "1e+100"},
		{"string", "hello world"},
		{"string", "  padded  "},
		{"datetime", "2020-01-15T08:30:00.000Z"},
		{"datetime", "1999-12-31T23:59:59.999+05:30"},
		{"datetime", "2001-07-04T12:00:00.001-08:00"},
		{"date", "2020-02-29"},
		{"object", "anything"},
	}

	for _, tt := range tests {
		t.Run(tt.typ+"/"+tt.text, func(t *testing.T) {
			d := mustNew(t, tt.typ)
			require.NoError(t, d.SetString(3, tt.text))
			assert.Equal(t, tt.text, d.GetString(3))

			v, err := d.ConvertFromString(d.GetString(3))
			require.NoError(t, err)
			assert.Equal(t, d.GetObject(3), v)
		})
	}
}

func TestBlankMapsToDefault(t *testing.T) {
	for _, k := range Kinds() {
		if k == KindString || k == KindObject {
			continue
		}
		t.Run(k.String(), func(t *testing.T) {
			d, err := New(k)
			require.NoError(t, err)

			for _, s := range []string{"", "   ", "\t\n"} {
				v, err := d.ConvertFromString(s)
				require.NoError(t, err)
				assert.Equal(t, k.Descriptor().Default, v)
			}

			require.NoError(t, d.SetString(0, ""))
			assert.True(t, d.IsDefault(0))
		})
	}
}

func TestVerbatimKindsKeepBlankText(t *testing.T) {
	d := mustNew(t, "string")
	require.NoError(t, d.SetString(0, "  "))
	assert.Equal(t, "  ", d.GetString(0))
	assert.False(t, d.IsDefault(0))
}

func TestNilObjectMapsToDefault(t *testing.T) {
	for _, k := range Kinds() {
		d, err := New(k)
		require.NoError(t, err)

		v, err := d.ConvertFromObject(nil)
		require.NoError(t, err, k)
		assert.Equal(t, k.Descriptor().Default, v, k)
	}
}

func TestConversionError(t *testing.T) {
	d := mustNew(t, "integer")
	d.SetLong(0, 7)

	err := d.SetString(0, "seven")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConversion))

	var ce *ConversionError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "integer", ce.Type)
	assert.Equal(t, "seven", ce.Input)
	assert.Equal(t, int64(7), d.GetLong(0), "cell must be untouched")

	err = d.SetObject(0, struct{}{})
	require.ErrorIs(t, err, ErrConversion)
	assert.Equal(t, int64(7), d.GetLong(0))
}

func TestDateTimeParseErrorIsWrapped(t *testing.T) {
	d := mustNew(t, "datetime")
	err := d.SetString(0, "2020-0x-15T08:30:00.000Z")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConversion)
	assert.ErrorIs(t, err, temporal.ErrMalformed)
}

func TestDateTimeTextRoundTrips(t *testing.T) {
	d := mustNew(t, "datetime")
	for _, in := range []string{"0000-00-00T00:00:00.000Z", "9999-13-01T00:00:00.000Z"} {
		_, err := d.ConvertFromString(in)
		assert.ErrorIs(t, err, ErrConversion, in)
		assert.ErrorIs(t, err, temporal.ErrMalformed, in)
	}

	// Lenient normalisation within range formats to text that parses again.
	require.NoError(t, d.SetString(0, "2020-13-01T00:00:00.000Z"))
	text := d.GetString(0)
	assert.Equal(t, "2021-01-01T00:00:00.000Z", text)
	v, err := d.ConvertFromString(text)
	require.NoError(t, err)
	require.NoError(t, d.SetObject(1, v))
	assert.Equal(t, d.GetLong(0), d.GetLong(1))
}

func TestDateTimeLegacyInputs(t *testing.T) {
	const ms = int64(1579077000000)
	plus2 := time.FixedZone("+02:00", 2*3600)
	ts := time.UnixMilli(ms).UTC()

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"canonical", ts, "2020-01-15T08:30:00.000Z"},
		{"epoch date", EpochDate{Millis: ms}, "2020-01-15T08:30:00.000Z"},
		{"epoch date pointer", &EpochDate{Millis: ms}, "2020-01-15T08:30:00.000Z"},
		{"calendar", Calendar{Millis: ms, Location: plus2}, "2020-01-15T10:30:00.000+02:00"},
		{"calendar without zone", Calendar{Millis: ms}, "2020-01-15T08:30:00.000Z"},
		{"time pointer", &ts, "2020-01-15T08:30:00.000Z"},
		{"int64 millis", ms, "2020-01-15T08:30:00.000Z"},
		{"float millis", float64(ms), "2020-01-15T08:30:00.000Z"},
		{"text", "2020-01-15T08:30:00.000Z", "2020-01-15T08:30:00.000Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustNew(t, "datetime")
			require.NoError(t, d.SetObject(0, tt.in))
			assert.Equal(t, tt.want, d.GetString(0))
			assert.Equal(t, ms, d.GetLong(0))
		})
	}

	for _, name := range []string{"datetime", "date"} {
		d := mustNew(t, name)
		for _, in := range []any{[]int{1}, true, false} {
			_, err := d.ConvertFromObject(in)
			require.ErrorIs(t, err, ErrConversion, "%s from %#v", name, in)
		}
	}
}

func TestNumericLegacyInputs(t *testing.T) {
	d := mustNew(t, "long")
	require.NoError(t, d.SetObject(0, int(12)))
	require.NoError(t, d.SetObject(1, uint8(3)))
	require.NoError(t, d.SetObject(2, true))
	assert.Equal(t, int64(12), d.GetLong(0))
	assert.Equal(t, int64(3), d.GetLong(1))
	assert.Equal(t, int64(1), d.GetLong(2))

	i := mustNew(t, "integer")
	require.NoError(t, i.SetObject(0, int64(math.MaxInt32)))
	require.NoError(t, i.SetObject(1, -7.9))
	assert.Equal(t, int32(math.MaxInt32), i.GetObject(0))
	assert.Equal(t, int32(-7), i.GetObject(1))
	for _, in := range []any{int64(5e9), int64(math.MinInt32) - 1, uint64(math.MaxUint32), 1e10, math.NaN()} {
		_, err := i.ConvertFromObject(in)
		assert.ErrorIs(t, err, ErrConversion, "%#v", in)
	}

	f := mustNew(t, "float")
	require.NoError(t, f.SetObject(0, 2.5))
	assert.Equal(t, float32(2.5), f.GetObject(0))
}

func TestProjections(t *testing.T) {
	b := mustNew(t, "boolean")
	require.NoError(t, b.SetString(0, "true"))
	assert.Equal(t, int64(1), b.GetLong(0))
	assert.Equal(t, 1.0, b.GetDouble(0))

	s := mustNew(t, "string")
	require.NoError(t, s.SetString(0, "12"))
	require.NoError(t, s.SetString(1, "2.5"))
	require.NoError(t, s.SetString(2, "n/a"))
	assert.Equal(t, 12.0, s.GetDouble(0))
	assert.Equal(t, 2.5, s.GetDouble(1))
	assert.Equal(t, int64(0), s.GetLong(2))

	date := mustNew(t, "date")
	require.NoError(t, date.SetString(0, "2020-01-15"))
	assert.Equal(t, int64(1579046400000), date.GetLong(0))

	dt := mustNew(t, "datetime")
	assert.Equal(t, int64(0), dt.GetLong(5), "unset datetime projects to zero")

	dt.SetLong(1, 1579077000000)
	assert.Equal(t, "2020-01-15T08:30:00.000Z", dt.GetString(1))

	d := mustNew(t, "double")
	d.SetDouble(0, math.Pi)
	assert.Equal(t, int64(3), d.GetLong(0))
}

func TestCapacity(t *testing.T) {
	c, ok := AsColumn[int64](mustNew(t, "long"))
	require.True(t, ok)

	assert.Equal(t, int64(0), c.Get(100), "reads beyond length yield the default")

	c.Set(10, 5)
	assert.GreaterOrEqual(t, c.Len(), 11)
	hi, ok := c.HighestAssigned()
	require.True(t, ok)
	assert.Equal(t, 10, hi)

	c.SetCapacity(3)
	assert.Equal(t, 11, c.Len(), "capacity never drops below highest assigned + 1")
	assert.Equal(t, int64(5), c.Get(10))

	c.Clear(10)
	assert.True(t, c.IsDefault(10))
	_, ok = c.HighestAssigned()
	assert.False(t, ok)

	c.SetCapacity(3)
	assert.Equal(t, 3, c.Len())

	c.SetCapacity(40)
	assert.Equal(t, 40, c.Len())
	for i := range 40 {
		assert.True(t, c.IsDefault(i))
	}
}

func TestAsColumnTypeMismatch(t *testing.T) {
	_, ok := AsColumn[int32](mustNew(t, "long"))
	assert.False(t, ok)
}

func TestEqualAndHash(t *testing.T) {
	d := mustNew(t, "datetime")
	require.NoError(t, d.SetString(0, "2020-01-15T08:30:00.000Z"))
	require.NoError(t, d.SetString(1, "2020-01-15T10:30:00.000+02:00"))
	require.NoError(t, d.SetString(2, "2020-01-15T08:30:00.000Z"))

	assert.Equal(t, d.Hash(0), d.Hash(1), "hash is instant based")
	assert.False(t, d.Equal(0, 1), "equality includes the zone")
	assert.True(t, d.Equal(0, 2))

	f := mustNew(t, "double")
	f.SetDouble(0, math.NaN())
	f.SetDouble(1, math.NaN())
	assert.True(t, f.Equal(0, 1))
}

func TestCopyIsIndependent(t *testing.T) {
	d := mustNew(t, "string")
	require.NoError(t, d.SetString(0, "a"))

	cp := d.Copy()
	require.NoError(t, cp.SetString(0, "b"))
	require.NoError(t, cp.SetString(5, "c"))

	assert.Equal(t, "a", d.GetString(0))
	assert.True(t, d.IsDefault(5))
	assert.Equal(t, "b", cp.GetString(0))
	assert.Equal(t, uint64(2), cp.Assigned().GetCardinality())
	assert.Equal(t, uint64(1), d.Assigned().GetCardinality())
}

func TestUnknownType(t *testing.T) {
	_, err := NewByName("decimal")
	require.ErrorIs(t, err, ErrUnknownType)

	_, err = New(KindInvalid)
	require.ErrorIs(t, err, ErrUnknownType)
}

func TestStrictMode(t *testing.T) {
	lenient := mustNew(t, "datetime")
	strict := mustNew(t, "datetime", WithMode(temporal.Strict))
	assert.Equal(t, temporal.Strict, strict.Mode())

	const loose = "2020-01-15 08:30:00.000?"
	require.NoError(t, lenient.SetString(0, loose))
	assert.Error(t, strict.SetString(0, loose))
}
