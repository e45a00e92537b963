package attribute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/graphattr/attribute/temporal"
)

func TestStore(t *testing.T) {
	s := NewStore(WithMode(temporal.Strict))

	when, err := s.Add(ElementTransaction, "when", "datetime")
	require.NoError(t, err)
	label, err := s.Add(ElementVertex, "label", "string")
	require.NoError(t, err)

	// Same name on the other element type is a different attribute.
	_, err = s.Add(ElementVertex, "when", "date")
	require.NoError(t, err)

	_, err = s.Add(ElementTransaction, "when", "long")
	require.ErrorIs(t, err, ErrDuplicateAttribute)

	_, err = s.Add(ElementVertex, "weight", "decimal")
	require.ErrorIs(t, err, ErrUnknownType)

	a, ok := s.ByName(ElementTransaction, "when")
	require.True(t, ok)
	assert.Equal(t, when, a.ID)
	assert.Equal(t, KindDateTime, a.Description.Kind())
	assert.Equal(t, temporal.Strict, a.Description.Mode())

	attrs := s.Attributes()
	require.Len(t, attrs, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{attrs[0].ID, attrs[1].ID, attrs[2].ID})

	assert.True(t, s.Remove(label))
	assert.False(t, s.Remove(label))
	_, ok = s.Description(label)
	assert.False(t, ok)
	_, ok = s.ByName(ElementVertex, "label")
	assert.False(t, ok)
	assert.Equal(t, 2, s.Len())

	id, err := s.Add(ElementVertex, "label", "string")
	require.NoError(t, err)
	assert.Equal(t, 3, id, "ids are not reused")
}

func TestParseElementType(t *testing.T) {
	et, err := ParseElementType("transaction")
	require.NoError(t, err)
	assert.Equal(t, ElementTransaction, et)
	assert.Equal(t, "transaction", et.String())

	_, err = ParseElementType("edge")
	assert.Error(t, err)
}

func TestAttachAt(t *testing.T) {
	s := NewStore()
	d, err := New(KindLong)
	require.NoError(t, err)

	require.NoError(t, s.AttachAt(5, ElementVertex, "group", d))
	assert.Equal(t, 6, s.NextID())
	require.ErrorIs(t, s.AttachAt(5, ElementVertex, "other", d), ErrDuplicateAttribute)
	require.ErrorIs(t, s.AttachAt(2, ElementVertex, "group", d), ErrDuplicateAttribute)
	require.Error(t, s.AttachAt(-1, ElementVertex, "neg", d))

	require.NoError(t, s.AttachAt(2, ElementTransaction, "group", d))
	assert.Equal(t, 6, s.NextID(), "lower ids do not move the counter back")

	s.Reserve(10)
	s.Reserve(3)
	id, err := s.Attach(ElementVertex, "next", d)
	require.NoError(t, err)
	assert.Equal(t, 10, id)
}
