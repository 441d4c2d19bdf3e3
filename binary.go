package las

import (
	"encoding/binary"
	"math"
)

// This file holds the little-endian scalar and bit-pack primitives the
// rest of the codec builds on. No endianness runtime detection is
// performed: every multi-byte field is packed/unpacked byte-wise via
// encoding/binary.LittleEndian, matching the on-disk byte order mandated
// by the format regardless of host architecture.

func getU16(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }
func getU32(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }
func getU64(b []byte) uint64 { return binary.LittleEndian.Uint64(b) }
func getI8(b []byte) int8    { return int8(b[0]) }
func getI16(b []byte) int16  { return int16(binary.LittleEndian.Uint16(b)) }
func getI32(b []byte) int32  { return int32(binary.LittleEndian.Uint32(b)) }
func getF32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
func getF64(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}

func putU16(b []byte, v uint16) { binary.LittleEndian.PutUint16(b, v) }
func putU32(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }
func putU64(b []byte, v uint64) { binary.LittleEndian.PutUint64(b, v) }
func putI8(b []byte, v int8)    { b[0] = byte(v) }
func putI16(b []byte, v int16)  { binary.LittleEndian.PutUint16(b, uint16(v)) }
func putI32(b []byte, v int32)  { binary.LittleEndian.PutUint32(b, uint32(v)) }
func putF32(b []byte, v float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
}
func putF64(b []byte, v float64) {
	binary.LittleEndian.PutUint64(b, math.Float64bits(v))
}

// getBits extracts an nbits-wide field starting at bit `shift` (LSB-first) from b.
func getBits(b byte, shift, nbits uint) uint8 {
	mask := byte(1<<nbits) - 1
	return (b >> shift) & mask
}

// setBits ORs an nbits-wide field (masked to its width) into *b at bit `shift`.
func setBits(b *byte, shift, nbits uint, v uint8) {
	mask := byte(1<<nbits) - 1
	*b |= (v & mask) << shift
}

// getBit extracts a single bit as a 0/1 uint8.
func getBit(b byte, shift uint) uint8 { return (b >> shift) & 1 }

// boolBit returns 1 if v, else 0.
func boolBit(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}

// writeFixedString copies s into dst left-justified, zero-padding the rest.
// s is truncated if longer than dst. Fixed-length character fields are
// copied verbatim without any added null terminator.
func writeFixedString(dst []byte, s string) {
	for i := range dst {
		dst[i] = 0
	}
	n := copy(dst, s)
	_ = n
}

// readFixedString returns the contents of a fixed-length character field,
// trimming trailing NUL padding.
func readFixedString(src []byte) string {
	end := len(src)
	for end > 0 && src[end-1] == 0 {
		end--
	}
	return string(src[:end])
}
