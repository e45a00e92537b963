// Package persistence implements the on-disk form of attribute columns.
//
// A column file is a fixed header followed by the column bytes produced by
// attribute.MarshalColumn, optionally split into LZ4 or Zstandard blocks:
//
//	magic        uint32  "GATR"
//	format       uint16
//	compression  uint8
//	kind         uint8   attribute.Kind
//	type version uint16  version of the cell encoding
//	reserved     uint16
//	raw length   uint64  uncompressed column bytes
//	payload      uint64  stored payload bytes
//	checksum     uint32  CRC32 (IEEE) of the stored payload
//	reserved     uint32
//
// All integers are little-endian. The type version is read before the
// column is decoded, so files written by older type versions stay readable.
package persistence
