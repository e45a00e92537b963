package readable

import (
	"github.com/hupe1980/graphattr/operator"
)

type composite[T operator.Number] struct {
	h           operator.Handle
	left, right Readable[T]
}

func (c composite[T]) Kind() operator.Kind { return c.h.Result }

func (c composite[T]) Read() (T, error) {
	a, err := c.left.Read()
	if err != nil {
		var zero T
		return zero, err
	}
	b, err := c.right.Read()
	if err != nil {
		var zero T
		return zero, err
	}
	return operator.Call(c.h, a, b)
}

// Apply combines two readables with the operation held by reg.
//
// The signature is resolved here, once: an operand pair without an
// implementation fails with *operator.UnsupportedSignatureError before any
// value is read. Mixed operands are promoted to the wider kind and the
// result has that kind.
func Apply(reg *operator.Registry, left, right Any) (Any, error) {
	h, err := reg.Resolve(left.Kind(), right.Kind())
	if err != nil {
		return nil, err
	}
	switch h.Result {
	case operator.KindInt:
		return newComposite[int32](h, left, right), nil
	case operator.KindLong:
		return newComposite[int64](h, left, right), nil
	case operator.KindFloat:
		return newComposite[float32](h, left, right), nil
	default:
		return newComposite[float64](h, left, right), nil
	}
}

func newComposite[T operator.Number](h operator.Handle, left, right Any) composite[T] {
	return composite[T]{h: h, left: Convert[T](left), right: Convert[T](right)}
}

// ApplyNamed resolves name in ops and applies it.
func ApplyNamed(ops *operator.Operators, name string, left, right Any) (Any, error) {
	reg, ok := ops.Lookup(name)
	if !ok {
		return nil, &operator.UnsupportedSignatureError{Operation: name, Left: left.Kind(), Right: right.Kind()}
	}
	return Apply(reg, left, right)
}
