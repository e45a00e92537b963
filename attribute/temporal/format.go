package temporal

import "time"

func appendPadded(b []byte, v, width int) []byte {
	if v < 0 {
		b = append(b, '-')
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 || i == len(buf) {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	for n := len(buf) - i; n < width; n++ {
		b = append(b, '0')
	}
	return append(b, buf[i:]...)
}

func appendOffset(b []byte, seconds int) []byte {
	sign := byte('+')
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	b = append(b, sign)
	b = appendPadded(b, seconds/3600, 2)
	b = append(b, ':')
	return appendPadded(b, seconds%3600/60, 2)
}

// FormatDate renders t's calendar date as yyyy-MM-dd.
func FormatDate(t time.Time) string {
	return string(appendDate(make([]byte, 0, DateLength), t))
}

func appendDate(b []byte, t time.Time) []byte {
	y, m, d := t.Date()
	b = appendPadded(b, y, 4)
	b = append(b, '-')
	b = appendPadded(b, int(m), 2)
	b = append(b, '-')
	return appendPadded(b, d, 2)
}

// FormatDateTime renders t in the canonical datetime form.
//
// UTC renders as a trailing "Z". Other locations render their offset, and a
// region suffix when the location name is not the offset itself.
// Sub-millisecond precision is truncated.
func FormatDateTime(t time.Time) string {
	b := make([]byte, 0, OffsetLength+32)
	b = appendDate(b, t)
	b = append(b, 'T')
	b = appendPadded(b, t.Hour(), 2)
	b = append(b, ':')
	b = appendPadded(b, t.Minute(), 2)
	b = append(b, ':')
	b = appendPadded(b, t.Second(), 2)
	b = append(b, '.')
	b = appendPadded(b, t.Nanosecond()/int(time.Millisecond), 3)

	loc := t.Location()
	if loc == time.UTC {
		return string(append(b, 'Z'))
	}
	_, offset := t.Zone()
	start := len(b)
	b = appendOffset(b, offset)
	if name := loc.String(); name != "" && name != string(b[start:]) {
		b = append(b, '[')
		b = append(b, name...)
		b = append(b, ']')
	}
	return string(b)
}
