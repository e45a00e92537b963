package attribute

import (
	"fmt"
	"time"

	"github.com/hupe1980/graphattr/operator"
)

// Kind identifies an attribute type.
type Kind uint8

const (
	// KindInvalid represents an invalid kind.
	KindInvalid Kind = iota
	// KindBool represents boolean attributes.
	KindBool
	// KindInt represents 32-bit integer attributes.
	KindInt
	// KindLong represents 64-bit integer attributes.
	KindLong
	// KindFloat represents 32-bit float attributes.
	KindFloat
	// KindDouble represents 64-bit float attributes.
	KindDouble
	// KindString represents text attributes.
	KindString
	// KindDateTime represents zoned datetime attributes.
	KindDateTime
	// KindDate represents calendar date attributes.
	KindDate
	// KindObject represents untyped attributes.
	KindObject

	kindCount
)

// Capability flags describe what a type can be projected to.
type Capability uint8

const (
	// CapNumeric marks types whose long/double projection is meaningful.
	CapNumeric Capability = 1 << iota
	// CapString marks types with a canonical round-tripping text form.
	CapString
	// CapTemporal marks types holding instants or dates.
	CapTemporal
)

// Has reports whether all bits of o are set.
func (c Capability) Has(o Capability) bool { return c&o == o }

// Descriptor is the immutable identity of an attribute type.
type Descriptor struct {
	Name         string
	Kind         Kind
	Version      int
	Default      any
	Capabilities Capability
	// Numeric is the operator kind of the native value, or
	// operator.KindInvalid for non-numeric types.
	Numeric operator.Kind
}

// Type versions. Bump when the binary cell encoding changes and keep the
// old decoder registered.
const (
	BoolVersion     = 1
	IntVersion      = 1
	LongVersion     = 1
	FloatVersion    = 1
	DoubleVersion   = 1
	StringVersion   = 1
	DateTimeVersion = 2
	DateVersion     = 1
	ObjectVersion   = 1
)

var descriptors = [kindCount]Descriptor{
	KindBool:     {Name: "boolean", Kind: KindBool, Version: BoolVersion, Default: false, Capabilities: CapNumeric | CapString},
	KindInt:      {Name: "integer", Kind: KindInt, Version: IntVersion, Default: int32(0), Capabilities: CapNumeric | CapString, Numeric: operator.KindInt},
	KindLong:     {Name: "long", Kind: KindLong, Version: LongVersion, Default: int64(0), Capabilities: CapNumeric | CapString, Numeric: operator.KindLong},
	KindFloat:    {Name: "float", Kind: KindFloat, Version: FloatVersion, Default: float32(0), Capabilities: CapNumeric | CapString, Numeric: operator.KindFloat},
	KindDouble:   {Name: "double", Kind: KindDouble, Version: DoubleVersion, Default: float64(0), Capabilities: CapNumeric | CapString, Numeric: operator.KindDouble},
	KindString:   {Name: "string", Kind: KindString, Version: StringVersion, Default: "", Capabilities: CapString},
	KindDateTime: {Name: "datetime", Kind: KindDateTime, Version: DateTimeVersion, Default: time.Time{}, Capabilities: CapNumeric | CapString | CapTemporal},
	KindDate:     {Name: "date", Kind: KindDate, Version: DateVersion, Default: time.Time{}, Capabilities: CapNumeric | CapString | CapTemporal},
	KindObject:   {Name: "object", Kind: KindObject, Version: ObjectVersion, Default: nil},
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, kindCount)
	for k := KindBool; k < kindCount; k++ {
		m[descriptors[k].Name] = k
	}
	return m
}()

// String returns the type name of the Kind.
func (k Kind) String() string {
	if k.Valid() {
		return descriptors[k].Name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Valid reports whether k names a registered type.
func (k Kind) Valid() bool {
	return k > KindInvalid && k < kindCount
}

// Descriptor returns the descriptor of k. Invalid kinds return the zero
// Descriptor.
func (k Kind) Descriptor() Descriptor {
	if !k.Valid() {
		return Descriptor{}
	}
	return descriptors[k]
}

// KindByName resolves a type name such as "datetime".
func KindByName(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

// Kinds returns all valid kinds in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindBool; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}
