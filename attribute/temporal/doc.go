// Package temporal implements the canonical fixed-width datetime and date
// text forms used for attribute persistence.
//
// The datetime form is
//
//	yyyy-MM-ddTHH:mm:ss.SSS[zone]
//
// where zone is empty (UTC), "Z", a "+hh:mm" offset, or an offset followed by
// a bracketed region name such as "+01:00[Europe/Berlin]".
//
// Parsing reads digits at fixed byte offsets. In Lenient mode separators and
// field ranges are not checked: "2011-99-01" yields a normalized but
// unintended instant. Strict mode validates both. In either mode a value
// whose year ends up outside MinYear..MaxYear is rejected, so every parsed
// value formats back to text that parses again.
package temporal
