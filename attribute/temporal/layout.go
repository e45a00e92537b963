package temporal

// Byte offsets of the canonical datetime form.
const (
	yearStart   = 0
	yearEnd     = 4
	monthStart  = 5
	monthEnd    = 7
	dayStart    = 8
	dayEnd      = 10
	hourStart   = 11
	hourEnd     = 13
	minuteStart = 14
	minuteEnd   = 16
	secondStart = 17
	secondEnd   = 19
	milliStart  = 20
	milliEnd    = 23

	// DateLength is the length of yyyy-MM-dd.
	DateLength = dayEnd
	// DateTimeLength is the length of the form without zone.
	DateTimeLength = milliEnd
	// ZoneLetterLength is the length of the form with a single zone letter.
	ZoneLetterLength = DateTimeLength + 1

	offsetStart = DateTimeLength
	// OffsetLength is the length of the form with a +hh:mm offset.
	OffsetLength = offsetStart + 6
	regionStart  = OffsetLength + 1
)
