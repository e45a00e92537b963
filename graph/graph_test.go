package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/graphattr/attribute"
	"github.com/hupe1980/graphattr/bin"
)

var _ bin.Topology = (*Graph)(nil)

func TestGraph(t *testing.T) {
	g := New()
	a, b, c := g.AddVertex(), g.AddVertex(), g.AddVertex()
	ab, err := g.AddTransaction(a, b)
	require.NoError(t, err)
	loop, err := g.AddTransaction(c, c)
	require.NoError(t, err)

	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, 2, g.TransactionCount())
	assert.Equal(t, []int{0, 1, 2}, g.Elements(attribute.ElementVertex))
	assert.Equal(t, []int{0, 1}, g.Elements(attribute.ElementTransaction))
	assert.Equal(t, 1, g.VertexTransactionCount(a))
	assert.Equal(t, 1, g.VertexTransactionCount(c), "loops are incident once")
	assert.Equal(t, loop, g.VertexTransaction(c, 0))

	src, dst := g.TransactionEndpoints(ab)
	assert.Equal(t, a, src)
	assert.Equal(t, b, dst)

	_, err = g.AddTransaction(a, 42)
	assert.ErrorIs(t, err, ErrUnknownElement)
	_, err = g.AddTransaction(-1, a)
	assert.ErrorIs(t, err, ErrUnknownElement)
}

func TestAttributes(t *testing.T) {
	g := New()
	v := g.AddVertex()
	tx, err := g.AddTransaction(v, v)
	require.NoError(t, err)

	w, err := g.AddAttribute(attribute.ElementTransaction, "weight", "double")
	require.NoError(t, err)
	require.NoError(t, g.Set(w, tx, 1.5))
	assert.Equal(t, 1.5, g.DoubleValue(w, tx))
	assert.Equal(t, int64(1), g.LongValue(w, tx))
	assert.Equal(t, "1.5", g.StringValue(w, tx))

	when, err := g.AddAttribute(attribute.ElementTransaction, "when", "datetime")
	require.NoError(t, err)
	require.NoError(t, g.SetString(when, tx, "2020-01-15T08:30:00.000Z"))
	assert.Equal(t, int64(1579077000000), g.LongValue(when, tx))

	var ce *attribute.ConversionError
	require.ErrorAs(t, g.SetString(when, tx, "yesterday"), &ce)

	assert.ErrorIs(t, g.Set(99, tx, 1), ErrUnknownElement)
	assert.ErrorIs(t, g.SetString(99, tx, "1"), ErrUnknownElement)
	assert.Panics(t, func() { g.LongValue(99, tx) })
}

func TestWithStore(t *testing.T) {
	s := attribute.NewStore()
	id, err := s.Add(attribute.ElementVertex, "group", "long")
	require.NoError(t, err)

	g := WithStore(s)
	v := g.AddVertex()
	require.NoError(t, g.Set(id, v, int64(3)))
	assert.Same(t, s, g.Store())
	assert.Equal(t, int64(3), g.LongValue(id, v))
}
