package operator

import "fmt"

// Kind identifies a primitive numeric kind.
type Kind uint8

const (
	// KindInvalid is the zero Kind.
	KindInvalid Kind = iota
	// KindInt is a 32-bit signed integer.
	KindInt
	// KindLong is a 64-bit signed integer.
	KindLong
	// KindFloat is a 32-bit IEEE 754 float.
	KindFloat
	// KindDouble is a 64-bit IEEE 754 float.
	KindDouble
)

// Kinds lists the valid kinds in promotion order.
var Kinds = [...]Kind{KindInt, KindLong, KindFloat, KindDouble}

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Valid reports whether k is one of the four numeric kinds.
func (k Kind) Valid() bool {
	return k >= KindInt && k <= KindDouble
}

// IsInteger reports whether k is an integer kind.
func (k Kind) IsInteger() bool {
	return k == KindInt || k == KindLong
}

// Promote returns the kind both operands are converted to before dispatch.
//
// The order is total: int < long < float < double. A long promoted to float
// may lose precision.
func Promote(a, b Kind) Kind {
	if !a.Valid() || !b.Valid() {
		return KindInvalid
	}
	if a > b {
		return a
	}
	return b
}

// Number is the set of Go types backing the numeric kinds.
type Number interface {
	int32 | int64 | float32 | float64
}

// KindOf returns the Kind backing T.
func KindOf[T Number]() Kind {
	var zero T
	switch any(zero).(type) {
	case int32:
		return KindInt
	case int64:
		return KindLong
	case float32:
		return KindFloat
	case float64:
		return KindDouble
	}
	return KindInvalid
}
