package persistence

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hupe1980/graphattr/attribute"
)

const (
	// MagicNumber identifies column files (ASCII: "GATR").
	MagicNumber = 0x47415452
	// FormatVersion is the current file layout version.
	FormatVersion = 1
	// HeaderSize is the fixed size of Header on disk.
	HeaderSize = 36
)

var (
	ErrInvalidMagic   = errors.New("invalid magic number")
	ErrInvalidVersion = errors.New("unsupported format version")
	ErrTruncated      = errors.New("truncated column file")
)

// Header is the fixed prefix of a column file.
type Header struct {
	Format      uint16
	Compression Compression
	Kind        attribute.Kind
	TypeVersion uint16
	RawLength   uint64
	Payload     uint64
	Checksum    uint32
}

// AppendBinary appends the encoded header to dst.
func (h Header) AppendBinary(dst []byte) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, MagicNumber)
	dst = binary.LittleEndian.AppendUint16(dst, h.Format)
	dst = append(dst, byte(h.Compression), byte(h.Kind))
	dst = binary.LittleEndian.AppendUint16(dst, h.TypeVersion)
	dst = binary.LittleEndian.AppendUint16(dst, 0)
	dst = binary.LittleEndian.AppendUint64(dst, h.RawLength)
	dst = binary.LittleEndian.AppendUint64(dst, h.Payload)
	dst = binary.LittleEndian.AppendUint32(dst, h.Checksum)
	return binary.LittleEndian.AppendUint32(dst, 0)
}

// ReadHeader decodes and validates the header at the start of data.
func ReadHeader(data []byte) (Header, error) {
	var h Header
	if len(data) < HeaderSize {
		return h, ErrTruncated
	}
	if magic := binary.LittleEndian.Uint32(data[0:]); magic != MagicNumber {
		return h, fmt.Errorf("%w: 0x%08x", ErrInvalidMagic, magic)
	}
	h.Format = binary.LittleEndian.Uint16(data[4:])
	if h.Format != FormatVersion {
		return h, fmt.Errorf("%w: %d", ErrInvalidVersion, h.Format)
	}
	h.Compression = Compression(data[6])
	h.Kind = attribute.Kind(data[7])
	h.TypeVersion = binary.LittleEndian.Uint16(data[8:])
	h.RawLength = binary.LittleEndian.Uint64(data[12:])
	h.Payload = binary.LittleEndian.Uint64(data[20:])
	h.Checksum = binary.LittleEndian.Uint32(data[28:])
	if h.Compression > CompressionZstd {
		return h, fmt.Errorf("persistence: unknown compression %d", data[6])
	}
	return h, nil
}

// EncodeColumn serializes d into a column file.
func EncodeColumn(d attribute.Description, c Compression) ([]byte, error) {
	raw, err := attribute.MarshalColumn(d)
	if err != nil {
		return nil, fmt.Errorf("persistence: marshal %s column: %w", d.Name(), err)
	}

	payload := raw
	if c != CompressionNone {
		payload, err = compressBlocks(make([]byte, 0, len(raw)/2), raw, c)
		if err != nil {
			return nil, fmt.Errorf("persistence: compress: %w", err)
		}
	}

	h := Header{
		Format:      FormatVersion,
		Compression: c,
		Kind:        d.Kind(),
		TypeVersion: uint16(d.Version()),
		RawLength:   uint64(len(raw)),
		Payload:     uint64(len(payload)),
		Checksum:    CalculateChecksum(payload),
	}
	out := h.AppendBinary(make([]byte, 0, HeaderSize+len(payload)))
	return append(out, payload...), nil
}

// DecodeColumn parses a column file. The checksum is verified before any
// decoding takes place.
func DecodeColumn(data []byte, opts ...attribute.Option) (attribute.Description, error) {
	h, err := ReadHeader(data)
	if err != nil {
		return nil, err
	}
	payload := data[HeaderSize:]
	if uint64(len(payload)) < h.Payload {
		return nil, ErrTruncated
	}
	payload = payload[:h.Payload]
	if err := VerifyChecksum(payload, h.Checksum); err != nil {
		return nil, err
	}

	raw := payload
	if h.Compression != CompressionNone {
		raw, err = decompressBlocks(payload, h.RawLength, h.Compression)
		if err != nil {
			return nil, err
		}
	}

	kind, version, err := attribute.PeekKind(raw)
	if err != nil {
		return nil, err
	}
	if kind != h.Kind || version != int(h.TypeVersion) {
		return nil, fmt.Errorf("%w: header says %s v%d, column holds %s v%d",
			attribute.ErrCorrupt, h.Kind, h.TypeVersion, kind, version)
	}
	return attribute.UnmarshalColumn(raw, opts...)
}
