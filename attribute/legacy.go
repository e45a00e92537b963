package attribute

import (
	"math"
	"time"
)

// EpochDate is the legacy instant wrapper: milliseconds since the Unix
// epoch, interpreted in UTC.
type EpochDate struct {
	Millis int64
}

// Calendar is the legacy calendar wrapper: an instant in epoch milliseconds
// and the zone it was recorded in. A nil Location means UTC.
type Calendar struct {
	Millis   int64
	Location *time.Location
}

// Time returns the instant in the calendar's zone.
func (c Calendar) Time() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return time.UnixMilli(c.Millis).In(loc)
}

// asNumber converts Go numeric types. Booleans are not numbers.
func asNumber(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float32:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}

// asInt64 is asNumber that also reads a bool as 0 or 1.
func asInt64(v any) (int64, bool) {
	if b, ok := v.(bool); ok {
		if b {
			return 1, true
		}
		return 0, true
	}
	return asNumber(v)
}

// asInt32 rejects values that do not fit an int.
func asInt32(v any) (int32, bool) {
	if f, ok := v.(float64); ok && (f != f || f < math.MinInt32 || f > math.MaxInt32) {
		return 0, false
	}
	n, ok := asInt64(v)
	if !ok || n < math.MinInt32 || n > math.MaxInt32 {
		return 0, false
	}
	return int32(n), true
}

func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	if i, ok := asInt64(v); ok {
		return float64(i), true
	}
	return 0, false
}
