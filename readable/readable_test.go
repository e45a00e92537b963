package readable

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/graphattr/attribute"
	"github.com/hupe1980/graphattr/operator"
)

func newOperators(t *testing.T) *operator.Operators {
	t.Helper()
	ops, err := operator.New(operator.BuiltinModules()...)
	require.NoError(t, err)
	return ops
}

func TestConstant(t *testing.T) {
	r := Constant(int32(7))
	assert.Equal(t, operator.KindInt, r.Kind())

	v, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, int32(7), v)
}

func TestColumnReflectsCurrentContent(t *testing.T) {
	d, err := attribute.New(attribute.KindLong)
	require.NoError(t, err)
	col, ok := attribute.AsColumn[int64](d)
	require.True(t, ok)

	r := Column(col, 2)
	v, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)

	col.Set(2, 40)
	v, err = r.Read()
	require.NoError(t, err)
	assert.Equal(t, int64(40), v)

	d.SetLong(2, 41)
	v, err = r.Read()
	require.NoError(t, err)
	assert.Equal(t, int64(41), v)
}

func TestAttribute(t *testing.T) {
	dt, err := attribute.New(attribute.KindDateTime)
	require.NoError(t, err)
	require.NoError(t, dt.SetString(0, "2020-01-15T08:30:00.000Z"))

	r := Attribute(dt, 0)
	assert.Equal(t, operator.KindLong, r.Kind())
	v, err := ReadAs[int64](r)
	require.NoError(t, err)
	assert.Equal(t, int64(1579077000000), v)

	f, err := attribute.New(attribute.KindFloat)
	require.NoError(t, err)
	f.SetDouble(1, 0.5)
	r = Attribute(f, 1)
	assert.Equal(t, operator.KindFloat, r.Kind())

	s, err := attribute.New(attribute.KindString)
	require.NoError(t, err)
	require.NoError(t, s.SetString(0, "2.5"))
	got, err := ReadFloat64(Attribute(s, 0))
	require.NoError(t, err)
	assert.Equal(t, 2.5, got)
}

func TestApplyQuotient(t *testing.T) {
	reg, ok := newOperators(t).Lookup(operator.QuotientName)
	require.True(t, ok)

	tests := []struct {
		name        string
		left, right Any
		kind        operator.Kind
		want        float64
	}{
		{"double", Constant(6.0), Constant(3.0), operator.KindDouble, 2},
		{"int truncates", Constant(int32(7)), Constant(int32(2)), operator.KindInt, 3},
		{"int by long promotes", Constant(int32(9)), Constant(int64(2)), operator.KindLong, 4},
		{"long by float promotes", Constant(int64(1)), Constant(float32(4)), operator.KindFloat, 0.25},
		{"float division by zero", Constant(5.0), Constant(0.0), operator.KindDouble, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Apply(reg, tt.left, tt.right)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, r.Kind())

			v, err := ReadFloat64(r)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestApplyIntegerDivisionByZero(t *testing.T) {
	r, err := ApplyNamed(newOperators(t), "quotient", Constant(int64(5)), Constant(int64(0)))
	require.NoError(t, err)

	_, err = ReadFloat64(r)
	var ae *operator.ArithmeticError
	require.True(t, errors.As(err, &ae))
	assert.ErrorIs(t, err, operator.ErrDivisionByZero)
}

func TestApplyUnsupportedSignature(t *testing.T) {
	ops, err := operator.New(operator.ArithmeticOperation{
		Name: "HALF_ONLY",
		Int:  operator.Total(func(a, b int32) int32 { return (a + b) / 2 }),
	}.Module())
	require.NoError(t, err)

	reg, ok := ops.Lookup("half_only")
	require.True(t, ok)

	_, err = Apply(reg, Constant(1.0), Constant(2.0))
	require.ErrorIs(t, err, operator.ErrUnsupportedSignature)

	_, err = ApplyNamed(ops, "missing", Constant(1.0), Constant(2.0))
	require.ErrorIs(t, err, operator.ErrUnsupportedSignature)
}

func TestCompositeIsLazy(t *testing.T) {
	reg, ok := newOperators(t).Lookup(operator.SumName)
	require.True(t, ok)

	d, err := attribute.New(attribute.KindDouble)
	require.NoError(t, err)
	col, _ := attribute.AsColumn[float64](d)

	r, err := Apply(reg, Column(col, 0), Constant(1.0))
	require.NoError(t, err)

	inner, err := Apply(reg, r, r)
	require.NoError(t, err)

	v, err := ReadFloat64(inner)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	col.Set(0, 10)
	v, err = ReadFloat64(inner)
	require.NoError(t, err)
	assert.Equal(t, 22.0, v)
}

func TestConvertPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	r := Convert[float64](Func[int32](func() (int32, error) { return 0, boom }))
	_, err := r.Read()
	require.ErrorIs(t, err, boom)
}
