package temporal

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Mode selects how strictly text is validated.
type Mode uint8

const (
	// Lenient checks only the shape (length and digit positions).
	Lenient Mode = iota
	// Strict additionally checks separators, the zone letter and field ranges.
	Strict
)

func (m Mode) String() string {
	if m == Strict {
		return "strict"
	}
	return "lenient"
}

// ParseMode resolves "lenient" or "strict". The empty string is Lenient.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "lenient":
		return Lenient, nil
	case "strict":
		return Strict, nil
	}
	return Lenient, fmt.Errorf("unknown temporal mode %q", s)
}

// ErrMalformed is the sentinel behind *ParseError.
var ErrMalformed = errors.New("malformed temporal text")

// ParseError describes why text could not be decoded.
type ParseError struct {
	Input  string
	Field  string
	Reason string
	cause  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %s: %s", e.Input, e.Field, e.Reason)
}

func (e *ParseError) Unwrap() []error {
	if e.cause != nil {
		return []error{ErrMalformed, e.cause}
	}
	return []error{ErrMalformed}
}

type decoder struct {
	s     string
	mode  Mode
	err   *ParseError
	fixed *time.Location
}

func (d *decoder) fail(field, reason string, cause error) {
	if d.err == nil {
		d.err = &ParseError{Input: d.s, Field: field, Reason: reason, cause: cause}
	}
}

func (d *decoder) digits(field string, start, end int) int {
	if d.err != nil {
		return 0
	}
	n := 0
	for i := start; i < end; i++ {
		c := d.s[i]
		if c < '0' || c > '9' {
			d.fail(field, fmt.Sprintf("non-digit %q at offset %d", c, i), nil)
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}

func (d *decoder) separator(pos int, want ...byte) {
	if d.err != nil || d.mode != Strict {
		return
	}
	for _, w := range want {
		if d.s[pos] == w {
			return
		}
	}
	d.fail("separator", fmt.Sprintf("unexpected %q at offset %d", d.s[pos], pos), nil)
}

func (d *decoder) within(field string, v, lo, hi int) {
	if d.err != nil || d.mode != Strict {
		return
	}
	if v < lo || v > hi {
		d.fail(field, fmt.Sprintf("%d out of range [%d, %d]", v, lo, hi), nil)
	}
}

func (d *decoder) date() (year int, month time.Month, day int) {
	year = d.digits("year", yearStart, yearEnd)
	d.separator(yearEnd, '-')
	m := d.digits("month", monthStart, monthEnd)
	d.separator(monthEnd, '-')
	day = d.digits("day", dayStart, dayEnd)

	d.within("month", m, 1, 12)
	if d.err == nil && d.mode == Strict {
		d.within("day", day, 1, daysIn(time.Month(m), year))
	}
	return year, time.Month(m), day
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseDate decodes yyyy-MM-dd into UTC midnight.
func ParseDate(s string, mode Mode) (time.Time, error) {
	if len(s) < DateLength || (mode == Strict && len(s) != DateLength) {
		return time.Time{}, &ParseError{Input: s, Field: "length", Reason: fmt.Sprintf("expected %d bytes, got %d", DateLength, len(s))}
	}
	d := decoder{s: s, mode: mode}
	y, m, day := d.date()
	if d.err != nil {
		return time.Time{}, d.err
	}
	return representable(s, time.Date(y, m, day, 0, 0, 0, 0, time.UTC))
}

// Years that fit the four-digit layout.
const (
	MinYear = 0
	MaxYear = 9999
)

// representable rejects values that Lenient normalisation pushed out of the
// four-digit year range. Their text form would not parse again.
func representable(s string, t time.Time) (time.Time, error) {
	if y := t.Year(); y < MinYear || y > MaxYear {
		return time.Time{}, &ParseError{Input: s, Field: "year", Reason: fmt.Sprintf("year %d out of representable range [%d, %d]", y, MinYear, MaxYear)}
	}
	return t, nil
}

// ParseDateTime decodes the canonical datetime form.
//
// Lengths between ZoneLetterLength and OffsetLength are read as UTC in
// Lenient mode, whatever the trailing bytes are. A region suffix takes
// precedence over the offset; the offset only picks between the two instants
// of a wall time the region repeats.
func ParseDateTime(s string, mode Mode) (time.Time, error) {
	if len(s) < DateTimeLength {
		return time.Time{}, &ParseError{Input: s, Field: "length", Reason: fmt.Sprintf("expected at least %d bytes, got %d", DateTimeLength, len(s))}
	}

	d := decoder{s: s, mode: mode}
	year, month, day := d.date()
	d.separator(dayEnd, 'T', ' ')
	hour := d.digits("hour", hourStart, hourEnd)
	d.separator(hourEnd, ':')
	minute := d.digits("minute", minuteStart, minuteEnd)
	d.separator(minuteEnd, ':')
	second := d.digits("second", secondStart, secondEnd)
	d.separator(secondEnd, '.')
	milli := d.digits("millisecond", milliStart, milliEnd)

	d.within("hour", hour, 0, 23)
	d.within("minute", minute, 0, 59)
	d.within("second", second, 0, 59)

	loc := d.zone()
	if d.err != nil {
		return time.Time{}, d.err
	}
	nsec := milli * int(time.Millisecond)
	t := time.Date(year, month, day, hour, minute, second, nsec, loc)
	if d.fixed != nil && d.fixed != loc {
		// A wall time that occurs twice in the region is resolved by the offset.
		alt := time.Date(year, month, day, hour, minute, second, nsec, d.fixed).In(loc)
		if sameWallClock(alt, t) {
			t = alt
		}
	}
	return representable(s, t)
}

func sameWallClock(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ah, amin, as := a.Clock()
	bh, bmin, bs := b.Clock()
	return ay == by && am == bm && ad == bd && ah == bh && amin == bmin && as == bs && a.Nanosecond() == b.Nanosecond()
}

func (d *decoder) zone() *time.Location {
	s := d.s
	switch {
	case d.err != nil:
		return nil
	case len(s) == DateTimeLength:
		return time.UTC
	case len(s) < OffsetLength:
		if d.mode == Strict && (len(s) != ZoneLetterLength || s[offsetStart] != 'Z') {
			d.fail("zone", "expected Z, an offset or no zone", nil)
		}
		return time.UTC
	}

	offset := d.offset()
	if len(s) == OffsetLength || d.err != nil {
		return offset
	}
	d.fixed = offset

	if d.mode == Strict && (s[OffsetLength] != '[' || s[len(s)-1] != ']') {
		d.fail("region", "expected [Region] suffix", nil)
		return nil
	}
	var name string
	if len(s) > regionStart {
		name = s[regionStart : len(s)-1]
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		d.fail("region", "unknown zone "+name, err)
		return nil
	}
	return loc
}

func (d *decoder) offset() *time.Location {
	sign := 1
	switch d.s[offsetStart] {
	case '+':
	case '-':
		sign = -1
	default:
		d.fail("offset", fmt.Sprintf("unexpected sign %q", d.s[offsetStart]), nil)
		return nil
	}
	hh := d.digits("offset hours", offsetStart+1, offsetStart+3)
	d.separator(offsetStart+3, ':')
	mm := d.digits("offset minutes", offsetStart+4, offsetStart+6)
	d.within("offset hours", hh, 0, 18)
	d.within("offset minutes", mm, 0, 59)
	if d.err != nil {
		return nil
	}
	seconds := hh*3600 + mm*60
	if seconds > maxOffsetSeconds {
		d.fail("offset", fmt.Sprintf("%d seconds exceeds two-digit hours", seconds), nil)
		return nil
	}
	return FixedZone(sign * seconds)
}

const maxOffsetSeconds = 99*3600 + 59*60

// FixedZone returns the location used for a parsed numeric offset.
// A zero offset maps to time.UTC.
func FixedZone(offsetSeconds int) *time.Location {
	if offsetSeconds == 0 {
		return time.UTC
	}
	return time.FixedZone(string(appendOffset(nil, offsetSeconds)), offsetSeconds)
}

// IsBlank reports whether s is empty or only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
