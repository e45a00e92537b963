package attribute

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/graphattr/attribute/temporal"
)

// Description is the type-erased view of a Column. Every attribute type
// implements the same contract, so graph code can read, write and convert
// values without knowing the native type.
type Description interface {
	Descriptor() Descriptor
	Kind() Kind
	Name() string
	Version() int
	Mode() temporal.Mode

	Len() int
	SetCapacity(n int)
	HighestAssigned() (int, bool)
	Assigned() *roaring.Bitmap

	ConvertFromObject(v any) (any, error)
	ConvertFromString(s string) (any, error)

	GetObject(id int) any
	SetObject(id int, v any) error
	GetString(id int) string
	SetString(id int, s string) error
	GetLong(id int) int64
	SetLong(id int, v int64)
	GetDouble(id int) float64
	SetDouble(id int, v float64)

	IsDefault(id int) bool
	Clear(id int)
	Equal(a, b int) bool
	Hash(id int) uint64
	Copy() Description

	MarshalBinary() ([]byte, error)
	UnmarshalBinary(data []byte) error
}

var (
	_ Description = (*Column[bool])(nil)
	_ Description = (*Column[any])(nil)
)

type options struct {
	mode      temporal.Mode
	capacity  int
	maxLength int
}

// DefaultMaxLength is the largest slot count UnmarshalBinary accepts unless
// WithMaxLength says otherwise.
const DefaultMaxLength = 1 << 26

// Option configures a new column.
type Option func(*options)

// WithMode sets the text parsing mode. The default is temporal.Lenient.
func WithMode(m temporal.Mode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithCapacity preallocates n slots.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithMaxLength bounds the slot count accepted when decoding column bytes.
// Values below 1 keep DefaultMaxLength.
func WithMaxLength(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxLength = n
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{mode: temporal.Lenient, maxLength: DefaultMaxLength}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// New creates an empty column of the given kind.
func New(kind Kind, opts ...Option) (Description, error) {
	o := buildOptions(opts)
	switch kind {
	case KindBool:
		return newColumn(boolOps, o), nil
	case KindInt:
		return newColumn(intOps, o), nil
	case KindLong:
		return newColumn(longOps, o), nil
	case KindFloat:
		return newColumn(floatOps, o), nil
	case KindDouble:
		return newColumn(doubleOps, o), nil
	case KindString:
		return newColumn(stringOps, o), nil
	case KindDateTime:
		return newColumn(dateTimeOps, o), nil
	case KindDate:
		return newColumn(dateOps, o), nil
	case KindObject:
		return newColumn(objectOps, o), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, kind)
	}
}

// NewByName creates an empty column for a type name such as "datetime".
func NewByName(name string, opts ...Option) (Description, error) {
	k, ok := KindByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return New(k, opts...)
}

// AsColumn returns the typed column behind d.
func AsColumn[T any](d Description) (*Column[T], bool) {
	c, ok := d.(*Column[T])
	return c, ok
}
