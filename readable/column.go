package readable

import (
	"github.com/hupe1980/graphattr/attribute"
	"github.com/hupe1980/graphattr/operator"
)

type cell[T operator.Number] struct {
	col *attribute.Column[T]
	id  int
}

// Column reads cell id of a native numeric column.
func Column[T operator.Number](col *attribute.Column[T], id int) Readable[T] {
	return cell[T]{col: col, id: id}
}

func (c cell[T]) Kind() operator.Kind { return operator.KindOf[T]() }
func (c cell[T]) Read() (T, error)    { return c.col.Get(c.id), nil }

// LongOf reads the long projection of cell id of any attribute.
func LongOf(d attribute.Description, id int) Long {
	return Func[int64](func() (int64, error) { return d.GetLong(id), nil })
}

// DoubleOf reads the double projection of cell id of any attribute.
func DoubleOf(d attribute.Description, id int) Double {
	return Func[float64](func() (float64, error) { return d.GetDouble(id), nil })
}

// Attribute reads cell id of d in its native numeric kind. String and object
// attributes read their double projection, every other kind its long
// projection.
func Attribute(d attribute.Description, id int) Any {
	switch d.Kind() {
	case attribute.KindInt:
		if c, ok := attribute.AsColumn[int32](d); ok {
			return Column(c, id)
		}
	case attribute.KindLong:
		if c, ok := attribute.AsColumn[int64](d); ok {
			return Column(c, id)
		}
	case attribute.KindFloat:
		if c, ok := attribute.AsColumn[float32](d); ok {
			return Column(c, id)
		}
	case attribute.KindDouble:
		if c, ok := attribute.AsColumn[float64](d); ok {
			return Column(c, id)
		}
	case attribute.KindString, attribute.KindObject:
		return DoubleOf(d, id)
	}
	return LongOf(d, id)
}
