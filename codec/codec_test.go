package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Name    string    `json:"name"`
	Version int       `json:"version"`
	Size    int64     `json:"size"`
	Created time.Time `json:"created"`
	Tags    []string  `json:"tags,omitempty"`
}

func TestCodecsAgree(t *testing.T) {
	in := entry{
		Name:    "when",
		Version: 2,
		Size:    1 << 40,
		Created: time.Date(2020, 1, 15, 8, 30, 0, 0, time.UTC),
		Tags:    []string{"transaction", "datetime"},
	}

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			c, ok := ByName(name)
			require.True(t, ok)
			assert.Equal(t, name, c.Name())

			data, err := c.Marshal(in)
			require.NoError(t, err)

			var out entry
			require.NoError(t, c.Unmarshal(data, &out))
			assert.Equal(t, in, out)

			// Each codec reads the other's output.
			for _, other := range Names() {
				o, _ := ByName(other)
				var cross entry
				require.NoError(t, o.Unmarshal(data, &cross))
				assert.Equal(t, in, cross)
			}
		})
	}
}

func TestByNameUnknown(t *testing.T) {
	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestMarshalIndent(t *testing.T) {
	b, err := GoJSON{}.MarshalIndent(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(b))
}
