package attribute

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/hupe1980/graphattr/attribute/temporal"
)

// decodeFunc decodes one cell and reports the bytes consumed.
type decodeFunc[T any] func(src []byte) (T, int, error)

// typeOps is the per-kind vtable. Instances are built once and shared by
// every column of that kind.
type typeOps[T any] struct {
	kind Kind
	def  T
	// verbatim kinds keep blank text instead of mapping it to the default.
	verbatim bool

	// parse receives non-blank text.
	parse  func(s string, mode temporal.Mode) (T, error)
	format func(v T) string

	canonical func(v any) (T, bool)
	legacy    func(v any) (T, bool)

	toLong     func(v T) int64
	fromLong   func(v int64) T
	toDouble   func(v T) float64
	fromDouble func(v float64) T

	equal func(a, b T) bool
	hash  func(v T) uint64

	encode   func(dst []byte, v T) []byte
	decoders map[int]decodeFunc[T]
}

func exact[T any](v any) (T, bool) {
	t, ok := v.(T)
	return t, ok
}

func hashBytes(b []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(b)
	return h.Sum64()
}

func hashUint64(v uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return hashBytes(buf[:])
}

func eq[T comparable](a, b T) bool { return a == b }

func floatEqual[T float32 | float64](a, b T) bool {
	return a == b || (a != a && b != b)
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

var boolOps = &typeOps[bool]{
	kind: KindBool,
	parse: func(s string, _ temporal.Mode) (bool, error) {
		return strconv.ParseBool(strings.TrimSpace(s))
	},
	format:    strconv.FormatBool,
	canonical: exact[bool],
	legacy: func(v any) (bool, bool) {
		n, ok := asInt64(v)
		return n != 0, ok
	},
	toLong:     boolToInt,
	fromLong:   func(v int64) bool { return v != 0 },
	toDouble:   func(v bool) float64 { return float64(boolToInt(v)) },
	fromDouble: func(v float64) bool { return v != 0 },
	equal:      eq[bool],
	hash:       func(v bool) uint64 { return hashUint64(uint64(boolToInt(v))) },
	encode: func(dst []byte, v bool) []byte {
		return append(dst, byte(boolToInt(v)))
	},
	decoders: map[int]decodeFunc[bool]{
		BoolVersion: func(src []byte) (bool, int, error) {
			if len(src) < 1 {
				return false, 0, ErrCorrupt
			}
			return src[0] != 0, 1, nil
		},
	},
}

var intOps = &typeOps[int32]{
	kind: KindInt,
	parse: func(s string, _ temporal.Mode) (int32, error) {
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
		return int32(n), err
	},
	format:     func(v int32) string { return strconv.FormatInt(int64(v), 10) },
	canonical:  exact[int32],
	legacy:     asInt32,
	toLong:     func(v int32) int64 { return int64(v) },
	fromLong:   func(v int64) int32 { return int32(v) },
	toDouble:   func(v int32) float64 { return float64(v) },
	fromDouble: func(v float64) int32 { return int32(v) },
	equal:      eq[int32],
	hash:       func(v int32) uint64 { return hashUint64(uint64(v)) },
	encode: func(dst []byte, v int32) []byte {
		return binary.LittleEndian.AppendUint32(dst, uint32(v))
	},
	decoders: map[int]decodeFunc[int32]{
		IntVersion: func(src []byte) (int32, int, error) {
			if len(src) < 4 {
				return 0, 0, ErrCorrupt
			}
			return int32(binary.LittleEndian.Uint32(src)), 4, nil
		},
	},
}

var longOps = &typeOps[int64]{
	kind: KindLong,
	parse: func(s string, _ temporal.Mode) (int64, error) {
		return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	},
	format:     func(v int64) string { return strconv.FormatInt(v, 10) },
	canonical:  exact[int64],
	legacy:     asInt64,
	toLong:     func(v int64) int64 { return v },
	fromLong:   func(v int64) int64 { return v },
	toDouble:   func(v int64) float64 { return float64(v) },
	fromDouble: func(v float64) int64 { return int64(v) },
	equal:      eq[int64],
	hash:       func(v int64) uint64 { return hashUint64(uint64(v)) },
	encode: func(dst []byte, v int64) []byte {
		return binary.LittleEndian.AppendUint64(dst, uint64(v))
	},
	decoders: map[int]decodeFunc[int64]{
		LongVersion: func(src []byte) (int64, int, error) {
			if len(src) < 8 {
				return 0, 0, ErrCorrupt
			}
			return int64(binary.LittleEndian.Uint64(src)), 8, nil
		},
	},
}

var floatOps = &typeOps[float32]{
	kind: KindFloat,
	parse: func(s string, _ temporal.Mode) (float32, error) {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
		return float32(f), err
	},
	format:    func(v float32) string { return strconv.FormatFloat(float64(v), 'g', -1, 32) },
	canonical: exact[float32],
	legacy: func(v any) (float32, bool) {
		f, ok := asFloat64(v)
		return float32(f), ok
	},
	toLong:     func(v float32) int64 { return int64(v) },
	fromLong:   func(v int64) float32 { return float32(v) },
	toDouble:   func(v float32) float64 { return float64(v) },
	fromDouble: func(v float64) float32 { return float32(v) },
	equal:      floatEqual[float32],
	hash:       func(v float32) uint64 { return hashUint64(uint64(math.Float32bits(v))) },
	encode: func(dst []byte, v float32) []byte {
		return binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
	},
	decoders: map[int]decodeFunc[float32]{
		FloatVersion: func(src []byte) (float32, int, error) {
			if len(src) < 4 {
				return 0, 0, ErrCorrupt
			}
			return math.Float32frombits(binary.LittleEndian.Uint32(src)), 4, nil
		},
	},
}

var doubleOps = &typeOps[float64]{
	kind: KindDouble,
	parse: func(s string, _ temporal.Mode) (float64, error) {
		return strconv.ParseFloat(strings.TrimSpace(s), 64)
	},
	format:     func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) },
	canonical:  exact[float64],
	legacy:     asFloat64,
	toLong:     func(v float64) int64 { return int64(v) },
	fromLong:   func(v int64) float64 { return float64(v) },
	toDouble:   func(v float64) float64 { return v },
	fromDouble: func(v float64) float64 { return v },
	equal:      floatEqual[float64],
	hash:       func(v float64) uint64 { return hashUint64(math.Float64bits(v)) },
	encode: func(dst []byte, v float64) []byte {
		return binary.LittleEndian.AppendUint64(dst, math.Float64bits(v))
	},
	decoders: map[int]decodeFunc[float64]{
		DoubleVersion: func(src []byte) (float64, int, error) {
			if len(src) < 8 {
				return 0, 0, ErrCorrupt
			}
			return math.Float64frombits(binary.LittleEndian.Uint64(src)), 8, nil
		},
	},
}

func appendString(dst []byte, s string) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(s)))
	return append(dst, s...)
}

func readString(src []byte) (string, int, error) {
	n, w := binary.Uvarint(src)
	if w <= 0 || uint64(len(src)-w) < n {
		return "", 0, ErrCorrupt
	}
	end := w + int(n)
	return string(src[w:end]), end, nil
}

func parseNumberText(s string) (int64, float64, bool) {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, float64(i), true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f), f, true
	}
	return 0, 0, false
}

var stringOps = &typeOps[string]{
	kind:      KindString,
	verbatim:  true,
	parse:     func(s string, _ temporal.Mode) (string, error) { return s, nil },
	format:    func(v string) string { return v },
	canonical: exact[string],
	legacy: func(v any) (string, bool) {
		if s, ok := v.(fmt.Stringer); ok {
			return s.String(), true
		}
		if _, ok := asFloat64(v); ok {
			return fmt.Sprint(v), true
		}
		return "", false
	},
	toLong: func(v string) int64 {
		i, _, _ := parseNumberText(v)
		return i
	},
	fromLong: func(v int64) string { return strconv.FormatInt(v, 10) },
	toDouble: func(v string) float64 {
		_, f, _ := parseNumberText(v)
		return f
	},
	fromDouble: func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) },
	equal:      eq[string],
	hash:       func(v string) uint64 { return hashBytes([]byte(v)) },
	encode:     appendString,
	decoders: map[int]decodeFunc[string]{
		StringVersion: readString,
	},
}

func timeOrZero(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func epochMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func sameInstantAndZone(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return a.IsZero() && b.IsZero()
	}
	return a.Equal(b) && a.Location().String() == b.Location().String()
}

// legacyMillisNull marks an unset cell in version 1 datetime data.
const legacyMillisNull = math.MinInt64

func restoreLocation(name string, offset int) *time.Location {
	if name == "" && offset == 0 {
		return time.UTC
	}
	if name != "" && name != "Local" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.FixedZone(name, offset)
}

var dateTimeOps = &typeOps[time.Time]{
	kind: KindDateTime,
	parse: func(s string, mode temporal.Mode) (time.Time, error) {
		return temporal.ParseDateTime(s, mode)
	},
	format: func(v time.Time) string {
		if v.IsZero() {
			return ""
		}
		return temporal.FormatDateTime(v)
	},
	canonical: exact[time.Time],
	legacy: func(v any) (time.Time, bool) {
		switch t := v.(type) {
		case EpochDate:
			return timeOrZero(t.Millis), true
		case *EpochDate:
			if t != nil {
				return timeOrZero(t.Millis), true
			}
		case Calendar:
			return t.Time(), true
		case *Calendar:
			if t != nil {
				return t.Time(), true
			}
		case *time.Time:
			if t != nil {
				return *t, true
			}
		}
		if ms, ok := asNumber(v); ok {
			return timeOrZero(ms), true
		}
		return time.Time{}, false
	},
	toLong:     epochMillis,
	fromLong:   timeOrZero,
	toDouble:   func(v time.Time) float64 { return float64(epochMillis(v)) },
	fromDouble: func(v float64) time.Time { return timeOrZero(int64(v)) },
	equal:      sameInstantAndZone,
	hash: func(v time.Time) uint64 {
		if v.IsZero() {
			return 0
		}
		return hashUint64(uint64(v.UnixMilli()))
	},
	encode: func(dst []byte, v time.Time) []byte {
		if v.IsZero() {
			return append(dst, 0)
		}
		dst = append(dst, 1)
		dst = binary.AppendVarint(dst, v.Unix())
		dst = binary.AppendUvarint(dst, uint64(v.Nanosecond()))
		_, offset := v.Zone()
		dst = binary.AppendVarint(dst, int64(offset))
		name := v.Location().String()
		if v.Location() == time.UTC {
			name = ""
		}
		return appendString(dst, name)
	},
	decoders: map[int]decodeFunc[time.Time]{
		// Version 1 stored epoch milliseconds only and always read as UTC.
		1: func(src []byte) (time.Time, int, error) {
			if len(src) < 8 {
				return time.Time{}, 0, ErrCorrupt
			}
			ms := int64(binary.LittleEndian.Uint64(src))
			if ms == legacyMillisNull {
				return time.Time{}, 8, nil
			}
			return timeOrZero(ms), 8, nil
		},
		DateTimeVersion: func(src []byte) (time.Time, int, error) {
			if len(src) < 1 {
				return time.Time{}, 0, ErrCorrupt
			}
			if src[0] == 0 {
				return time.Time{}, 1, nil
			}
			pos := 1
			sec, w := binary.Varint(src[pos:])
			if w <= 0 {
				return time.Time{}, 0, ErrCorrupt
			}
			pos += w
			nsec, w := binary.Uvarint(src[pos:])
			if w <= 0 || nsec >= uint64(time.Second) {
				return time.Time{}, 0, ErrCorrupt
			}
			pos += w
			offset, w := binary.Varint(src[pos:])
			if w <= 0 {
				return time.Time{}, 0, ErrCorrupt
			}
			pos += w
			name, w, err := readString(src[pos:])
			if err != nil {
				return time.Time{}, 0, err
			}
			pos += w
			return time.Unix(sec, int64(nsec)).In(restoreLocation(name, int(offset))), pos, nil
		},
	},
}

const millisPerDay = 24 * 60 * 60 * 1000

func dateOf(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

var dateOps = &typeOps[time.Time]{
	kind: KindDate,
	parse: func(s string, mode temporal.Mode) (time.Time, error) {
		return temporal.ParseDate(s, mode)
	},
	format: func(v time.Time) string {
		if v.IsZero() {
			return ""
		}
		return temporal.FormatDate(v)
	},
	canonical: func(v any) (time.Time, bool) {
		t, ok := v.(time.Time)
		return dateOf(t), ok
	},
	legacy: func(v any) (time.Time, bool) {
		t, ok := dateTimeOps.legacy(v)
		return dateOf(t), ok
	},
	toLong:     epochMillis,
	fromLong:   func(v int64) time.Time { return dateOf(timeOrZero(v)) },
	toDouble:   func(v time.Time) float64 { return float64(epochMillis(v)) },
	fromDouble: func(v float64) time.Time { return dateOf(timeOrZero(int64(v))) },
	equal:      func(a, b time.Time) bool { return a.Equal(b) },
	hash: func(v time.Time) uint64 {
		if v.IsZero() {
			return 0
		}
		return hashUint64(uint64(v.UnixMilli()))
	},
	encode: func(dst []byte, v time.Time) []byte {
		if v.IsZero() {
			return append(dst, 0)
		}
		dst = append(dst, 1)
		return binary.AppendVarint(dst, floorDiv(v.UnixMilli(), millisPerDay))
	},
	decoders: map[int]decodeFunc[time.Time]{
		DateVersion: func(src []byte) (time.Time, int, error) {
			if len(src) < 1 {
				return time.Time{}, 0, ErrCorrupt
			}
			if src[0] == 0 {
				return time.Time{}, 1, nil
			}
			days, w := binary.Varint(src[1:])
			if w <= 0 {
				return time.Time{}, 0, ErrCorrupt
			}
			return time.UnixMilli(days * millisPerDay).UTC(), 1 + w, nil
		},
	},
}

func objectString(v any) string {
	switch o := v.(type) {
	case nil:
		return ""
	case string:
		return o
	case fmt.Stringer:
		return o.String()
	}
	return fmt.Sprint(v)
}

// Object columns persist the text form of their values; decoding yields
// strings.
var objectOps = &typeOps[any]{
	kind:      KindObject,
	verbatim:  true,
	parse:     func(s string, _ temporal.Mode) (any, error) { return s, nil },
	format:    objectString,
	canonical: func(v any) (any, bool) { return v, true },
	toLong: func(v any) int64 {
		if n, ok := asInt64(v); ok {
			return n
		}
		return 0
	},
	fromLong: func(v int64) any { return v },
	toDouble: func(v any) float64 {
		if f, ok := asFloat64(v); ok {
			return f
		}
		return 0
	},
	fromDouble: func(v float64) any { return v },
	equal:      func(a, b any) bool { return reflect.DeepEqual(a, b) },
	hash:       func(v any) uint64 { return hashBytes([]byte(objectString(v))) },
	encode: func(dst []byte, v any) []byte {
		if v == nil {
			return append(dst, 0)
		}
		return appendString(append(dst, 1), objectString(v))
	},
	decoders: map[int]decodeFunc[any]{
		ObjectVersion: func(src []byte) (any, int, error) {
			if len(src) < 1 {
				return nil, 0, ErrCorrupt
			}
			if src[0] == 0 {
				return nil, 1, nil
			}
			s, w, err := readString(src[1:])
			if err != nil {
				return nil, 0, err
			}
			return s, 1 + w, nil
		},
	},
}
