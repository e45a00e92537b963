package persistence

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the block codec of a column file.
type Compression uint8

const (
	// CompressionNone stores the column bytes as they are.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 blocks (fast, for hot data).
	CompressionLZ4 Compression = 1
	// CompressionZstd uses Zstandard blocks (better ratio, for cold data).
	CompressionZstd Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	}
	return fmt.Sprintf("Compression(%d)", uint8(c))
}

// ParseCompression resolves "none", "lz4" or "zstd".
func ParseCompression(s string) (Compression, error) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd} {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("persistence: unknown compression %q", s)
}

// BlockSize is the amount of raw column data compressed as one block.
const BlockSize = 256 * 1024

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Block framing: [raw size uint32][stored size uint32][data]. A stored size
// of 0 marks a block kept uncompressed because compression did not pay off.
const blockHeaderSize = 8

var errShortBlock = errors.New("persistence: truncated block")

func compressBlocks(dst, data []byte, c Compression) ([]byte, error) {
	for start := 0; start < len(data); start += BlockSize {
		block := data[start:min(start+BlockSize, len(data))]

		compressed, err := compressBlock(block, c)
		if err != nil {
			return nil, err
		}

		// Keep blocks that shrink by less than 10% raw.
		if len(compressed) == 0 || float64(len(compressed)) > float64(len(block))*0.9 {
			dst = binary.LittleEndian.AppendUint32(dst, uint32(len(block)))
			dst = binary.LittleEndian.AppendUint32(dst, 0)
			dst = append(dst, block...)
			continue
		}
		dst = binary.LittleEndian.AppendUint32(dst, uint32(len(block)))
		dst = binary.LittleEndian.AppendUint32(dst, uint32(len(compressed)))
		dst = append(dst, compressed...)
	}
	return dst, nil
}

func compressBlock(block []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(block)))
		n, err := lz4.CompressBlock(block, buf, nil)
		if err != nil {
			return nil, err
		}
		return buf[:n], nil
	case CompressionZstd:
		enc := getZstdEncoder()
		defer zstdEncoderPool.Put(enc)
		return enc.EncodeAll(block, nil), nil
	}
	return nil, fmt.Errorf("persistence: unsupported compression %s", c)
}

func decompressBlocks(data []byte, rawLen uint64, c Compression) ([]byte, error) {
	// Blocks never exceed BlockSize, so the header count bounds the output.
	if blocks := uint64(len(data) / blockHeaderSize); rawLen > blocks*BlockSize {
		return nil, fmt.Errorf("persistence: raw length %d exceeds %d blocks", rawLen, blocks)
	}
	out := make([]byte, 0, rawLen)
	for len(data) > 0 {
		if len(data) < blockHeaderSize {
			return nil, errShortBlock
		}
		raw := binary.LittleEndian.Uint32(data[0:])
		stored := binary.LittleEndian.Uint32(data[4:])
		data = data[blockHeaderSize:]
		if raw > BlockSize {
			return nil, fmt.Errorf("persistence: block of %d bytes exceeds %d", raw, BlockSize)
		}

		if stored == 0 {
			if uint64(len(data)) < uint64(raw) {
				return nil, errShortBlock
			}
			out = append(out, data[:raw]...)
			data = data[raw:]
			continue
		}
		if uint64(len(data)) < uint64(stored) {
			return nil, errShortBlock
		}
		block, err := decompressBlock(data[:stored], int(raw), c)
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
		data = data[stored:]
	}
	if uint64(len(out)) != rawLen {
		return nil, fmt.Errorf("persistence: decompressed %d bytes, want %d", len(out), rawLen)
	}
	return out, nil
}

func decompressBlock(src []byte, raw int, c Compression) ([]byte, error) {
	dst := make([]byte, raw)
	switch c {
	case CompressionLZ4:
		n, err := lz4.UncompressBlock(src, dst)
		if err != nil {
			return nil, err
		}
		if n != raw {
			return nil, errors.New("persistence: decompressed size mismatch")
		}
		return dst, nil
	case CompressionZstd:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)
		decoded, err := dec.DecodeAll(src, dst[:0])
		if err != nil {
			return nil, err
		}
		if len(decoded) != raw {
			return nil, errors.New("persistence: decompressed size mismatch")
		}
		return decoded, nil
	}
	return nil, fmt.Errorf("persistence: unsupported compression %s", c)
}
