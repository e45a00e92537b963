package readable

import (
	"github.com/hupe1980/graphattr/operator"
)

// Any is a Readable of unknown numeric type.
type Any interface {
	Kind() operator.Kind
}

// Readable produces values of type T.
type Readable[T operator.Number] interface {
	Any
	Read() (T, error)
}

// Shapes, one per numeric kind.
type (
	Int    = Readable[int32]
	Long   = Readable[int64]
	Float  = Readable[float32]
	Double = Readable[float64]
)

type constant[T operator.Number] struct {
	v T
}

// Constant returns a Readable that always yields v.
func Constant[T operator.Number](v T) Readable[T] {
	return constant[T]{v: v}
}

func (c constant[T]) Kind() operator.Kind { return operator.KindOf[T]() }
func (c constant[T]) Read() (T, error)    { return c.v, nil }

// Func adapts a function to Readable.
type Func[T operator.Number] func() (T, error)

// Kind implements Any.
func (f Func[T]) Kind() operator.Kind { return operator.KindOf[T]() }

// Read implements Readable.
func (f Func[T]) Read() (T, error) { return f() }

func castNumber[T, S operator.Number](v S) T { return T(v) }

// ReadAs reads a and converts the value to T with Go conversion rules.
func ReadAs[T operator.Number](a Any) (T, error) {
	var zero T
	switch r := a.(type) {
	case Readable[int32]:
		v, err := r.Read()
		return castNumber[T](v), err
	case Readable[int64]:
		v, err := r.Read()
		return castNumber[T](v), err
	case Readable[float32]:
		v, err := r.Read()
		return castNumber[T](v), err
	case Readable[float64]:
		v, err := r.Read()
		return castNumber[T](v), err
	}
	return zero, &operator.UnsupportedSignatureError{Operation: "READ", Left: a.Kind(), Right: a.Kind()}
}

// Convert views a as a Readable of type T. The result reads a on every call.
func Convert[T operator.Number](a Any) Readable[T] {
	if r, ok := a.(Readable[T]); ok {
		return r
	}
	return Func[T](func() (T, error) { return ReadAs[T](a) })
}

// ReadFloat64 reads any Readable as a float64.
func ReadFloat64(a Any) (float64, error) {
	return ReadAs[float64](a)
}
