package attribute

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/graphattr/attribute/temporal"
)

// Column is a dense per-element value array of one attribute type.
//
// Element ids index the array directly. Reads of unassigned slots, or of
// slots beyond the current length, yield the type's default. A Column is not
// safe for concurrent mutation; concurrent readers are fine as long as no
// writer is active.
type Column[T any] struct {
	ops       *typeOps[T]
	mode      temporal.Mode
	maxLength int
	data      []T
	assigned  *roaring.Bitmap
}

func newColumn[T any](ops *typeOps[T], o options) *Column[T] {
	c := &Column[T]{
		ops:       ops,
		mode:      o.mode,
		maxLength: o.maxLength,
		assigned:  roaring.New(),
	}
	if o.capacity > 0 {
		c.SetCapacity(o.capacity)
	}
	return c
}

// Descriptor returns the type descriptor of the column.
func (c *Column[T]) Descriptor() Descriptor { return c.ops.kind.Descriptor() }

// Kind returns the attribute kind.
func (c *Column[T]) Kind() Kind { return c.ops.kind }

// Name returns the type name, e.g. "datetime".
func (c *Column[T]) Name() string { return c.ops.kind.String() }

// Version returns the type version written by MarshalBinary.
func (c *Column[T]) Version() int { return c.Descriptor().Version }

// Mode returns the text parsing mode.
func (c *Column[T]) Mode() temporal.Mode { return c.mode }

// Default returns the type's default value.
func (c *Column[T]) Default() T { return c.ops.def }

// Len returns the number of addressable slots.
func (c *Column[T]) Len() int { return len(c.data) }

// HighestAssigned returns the largest id ever set and not cleared.
func (c *Column[T]) HighestAssigned() (int, bool) {
	if c.assigned.IsEmpty() {
		return 0, false
	}
	return int(c.assigned.Maximum()), true
}

// Assigned returns a copy of the set of assigned ids.
func (c *Column[T]) Assigned() *roaring.Bitmap { return c.assigned.Clone() }

// SetCapacity resizes the column to n slots. It never shrinks below the
// highest assigned id + 1.
func (c *Column[T]) SetCapacity(n int) {
	if hi, ok := c.HighestAssigned(); ok && n < hi+1 {
		n = hi + 1
	}
	if n < 0 {
		n = 0
	}
	switch {
	case n < len(c.data):
		clear(c.data[n:])
		c.data = c.data[:n:n]
	case n > len(c.data):
		c.resize(n)
	}
}

func (c *Column[T]) resize(n int) {
	if n <= cap(c.data) {
		old := len(c.data)
		c.data = c.data[:n]
		for i := old; i < n; i++ {
			c.data[i] = c.ops.def
		}
		return
	}
	grown := make([]T, n)
	copy(grown, c.data)
	for i := len(c.data); i < n; i++ {
		grown[i] = c.ops.def
	}
	c.data = grown
}

func (c *Column[T]) ensure(id int) {
	if id < 0 || uint64(id) > uint64(^uint32(0)) {
		panic(fmt.Sprintf("attribute: element id %d out of range", id))
	}
	if id < len(c.data) {
		return
	}
	n := max(2*len(c.data), id+1, 16)
	if uint64(n) > uint64(^uint32(0))+1 {
		n = id + 1
	}
	c.resize(n)
}

// Get returns the value stored for id.
func (c *Column[T]) Get(id int) T {
	if id < 0 || id >= len(c.data) {
		return c.ops.def
	}
	return c.data[id]
}

// Set stores v for id, growing the column as needed.
func (c *Column[T]) Set(id int, v T) {
	c.ensure(id)
	c.data[id] = v
	c.assigned.Add(uint32(id))
}

// Clear resets id to the default.
func (c *Column[T]) Clear(id int) {
	if id < 0 || id >= len(c.data) {
		return
	}
	c.data[id] = c.ops.def
	c.assigned.Remove(uint32(id))
}

// IsDefault reports whether the value for id equals the default.
func (c *Column[T]) IsDefault(id int) bool {
	return c.ops.equal(c.Get(id), c.ops.def)
}

// FromString converts text into a native value. Blank text yields the
// default for every type except string and object, which keep it.
func (c *Column[T]) FromString(s string) (T, error) {
	if !c.ops.verbatim && temporal.IsBlank(s) {
		return c.ops.def, nil
	}
	v, err := c.ops.parse(s, c.mode)
	if err != nil {
		return c.ops.def, &ConversionError{Type: c.Name(), Input: s, Reason: "unparseable text", cause: err}
	}
	return v, nil
}

// FromObject converts an arbitrary value into a native value. The canonical
// native form is tried first; legacy representations only when that fails.
func (c *Column[T]) FromObject(v any) (T, error) {
	switch o := v.(type) {
	case nil:
		return c.ops.def, nil
	case string:
		if c.ops.kind != KindObject {
			return c.FromString(o)
		}
	}
	if t, ok := c.ops.canonical(v); ok {
		return t, nil
	}
	if c.ops.legacy != nil {
		if t, ok := c.ops.legacy(v); ok {
			return t, nil
		}
	}
	return c.ops.def, &ConversionError{Type: c.Name(), Input: v, Reason: fmt.Sprintf("unsupported representation %T", v)}
}

// ConvertFromObject is FromObject with a type-erased result.
func (c *Column[T]) ConvertFromObject(v any) (any, error) {
	t, err := c.FromObject(v)
	return t, err
}

// ConvertFromString is FromString with a type-erased result.
func (c *Column[T]) ConvertFromString(s string) (any, error) {
	t, err := c.FromString(s)
	return t, err
}

// GetObject returns the value for id boxed as any.
func (c *Column[T]) GetObject(id int) any { return c.Get(id) }

// SetObject converts v and stores it. The cell is untouched on error.
func (c *Column[T]) SetObject(id int, v any) error {
	t, err := c.FromObject(v)
	if err != nil {
		return err
	}
	c.Set(id, t)
	return nil
}

// GetString returns the canonical text of the value for id. It is the exact
// inverse of SetString.
func (c *Column[T]) GetString(id int) string { return c.ops.format(c.Get(id)) }

// SetString parses s and stores it. The cell is untouched on error.
func (c *Column[T]) SetString(id int, s string) error {
	t, err := c.FromString(s)
	if err != nil {
		return err
	}
	c.Set(id, t)
	return nil
}

// GetLong returns the long projection of the value for id.
func (c *Column[T]) GetLong(id int) int64 { return c.ops.toLong(c.Get(id)) }

// SetLong stores the value whose long projection is v.
func (c *Column[T]) SetLong(id int, v int64) { c.Set(id, c.ops.fromLong(v)) }

// GetDouble returns the double projection of the value for id.
func (c *Column[T]) GetDouble(id int) float64 { return c.ops.toDouble(c.Get(id)) }

// SetDouble stores the value whose double projection is v.
func (c *Column[T]) SetDouble(id int, v float64) { c.Set(id, c.ops.fromDouble(v)) }

// Equal compares the values of two ids.
func (c *Column[T]) Equal(a, b int) bool { return c.ops.equal(c.Get(a), c.Get(b)) }

// Hash returns a value hash for id. Datetimes hash by instant, so equal
// instants in different zones collide.
func (c *Column[T]) Hash(id int) uint64 { return c.ops.hash(c.Get(id)) }

// Clone returns a deep copy of the column. Object values are shared.
func (c *Column[T]) Clone() *Column[T] {
	return &Column[T]{
		ops:       c.ops,
		mode:      c.mode,
		maxLength: c.maxLength,
		data:      append([]T(nil), c.data...),
		assigned:  c.assigned.Clone(),
	}
}

// Copy implements Description.
func (c *Column[T]) Copy() Description { return c.Clone() }
