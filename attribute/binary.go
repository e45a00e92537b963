package attribute

import (
	"encoding/binary"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// Column layout:
//
//	kind     byte
//	version  uvarint
//	length   uvarint
//	assigned uvarint length + roaring bitmap
//	cells    one encoded value per assigned id, ascending
//
// Integers inside cells are little-endian.

// MarshalBinary implements encoding.BinaryMarshaler using the current type
// version.
func (c *Column[T]) MarshalBinary() ([]byte, error) {
	bm, err := c.assigned.MarshalBinary()
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, 16+len(bm)+int(c.assigned.GetCardinality())*8)
	buf = append(buf, byte(c.ops.kind))
	buf = binary.AppendUvarint(buf, uint64(c.Version()))
	buf = binary.AppendUvarint(buf, uint64(len(c.data)))
	buf = binary.AppendUvarint(buf, uint64(len(bm)))
	buf = append(buf, bm...)

	it := c.assigned.Iterator()
	for it.HasNext() {
		buf = c.ops.encode(buf, c.data[it.Next()])
	}
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. The decoder is
// selected by the version stored in data, so columns written by older type
// versions remain readable.
func (c *Column[T]) UnmarshalBinary(data []byte) error {
	h, rest, err := readHeader(data)
	if err != nil {
		return err
	}
	if h.kind != c.ops.kind {
		return fmt.Errorf("%w: column holds %s, want %s", ErrCorrupt, h.kind, c.ops.kind)
	}
	decode, ok := c.ops.decoders[h.version]
	if !ok {
		return fmt.Errorf("%w: %s version %d", ErrUnsupportedVersion, h.kind, h.version)
	}

	if h.length > uint64(c.maxLength) {
		return fmt.Errorf("%w: length %d exceeds limit %d", ErrCorrupt, h.length, c.maxLength)
	}

	assigned := roaring.New()
	if err := assigned.UnmarshalBinary(rest[:h.bitmapLen]); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	rest = rest[h.bitmapLen:]
	if !assigned.IsEmpty() && uint64(assigned.Maximum()) >= h.length {
		return fmt.Errorf("%w: assigned id %d beyond length %d", ErrCorrupt, assigned.Maximum(), h.length)
	}
	// Every cell encodes to at least one byte.
	if n := assigned.GetCardinality(); n > uint64(len(rest)) {
		return fmt.Errorf("%w: %d cells in %d bytes", ErrCorrupt, n, len(rest))
	}

	values := make([]T, h.length)
	for i := range values {
		values[i] = c.ops.def
	}
	it := assigned.Iterator()
	for it.HasNext() {
		id := it.Next()
		v, n, err := decode(rest)
		if err != nil {
			return fmt.Errorf("decode %s cell %d: %w", h.kind, id, err)
		}
		values[id] = v
		rest = rest[n:]
	}
	if len(rest) != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(rest))
	}

	c.data = values
	c.assigned = assigned
	return nil
}

type header struct {
	kind      Kind
	version   int
	length    uint64
	bitmapLen uint64
}

func readHeader(data []byte) (header, []byte, error) {
	var h header
	if len(data) < 1 {
		return h, nil, fmt.Errorf("%w: empty", ErrCorrupt)
	}
	h.kind = Kind(data[0])
	if !h.kind.Valid() {
		return h, nil, fmt.Errorf("%w: kind %d", ErrUnknownType, data[0])
	}
	data = data[1:]

	var fields [3]uint64
	for i := range fields {
		v, n := binary.Uvarint(data)
		if n <= 0 {
			return h, nil, fmt.Errorf("%w: truncated header", ErrCorrupt)
		}
		fields[i] = v
		data = data[n:]
	}
	h.version = int(fields[0])
	h.length = fields[1]
	h.bitmapLen = fields[2]
	if h.length > uint64(^uint32(0))+1 {
		return h, nil, fmt.Errorf("%w: length %d", ErrCorrupt, h.length)
	}
	if uint64(len(data)) < h.bitmapLen {
		return h, nil, fmt.Errorf("%w: short bitmap", ErrCorrupt)
	}
	return h, data, nil
}

// PeekKind returns the kind and type version recorded in column bytes.
func PeekKind(data []byte) (Kind, int, error) {
	h, _, err := readHeader(data)
	if err != nil {
		return KindInvalid, 0, err
	}
	return h.kind, h.version, nil
}

// MarshalColumn encodes d.
func MarshalColumn(d Description) ([]byte, error) {
	return d.MarshalBinary()
}

// UnmarshalColumn decodes a column of whatever kind data holds.
func UnmarshalColumn(data []byte, opts ...Option) (Description, error) {
	kind, _, err := PeekKind(data)
	if err != nil {
		return nil, err
	}
	d, err := New(kind, opts...)
	if err != nil {
		return nil, err
	}
	if err := d.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return d, nil
}
