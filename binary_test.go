package las

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScalarRoundTrip(t *testing.T) {
	buf := make([]byte, 8)

	putU16(buf, 0xBEEF)
	require.Equal(t, uint16(0xBEEF), getU16(buf))

	putU32(buf, 0xDEADBEEF)
	require.Equal(t, uint32(0xDEADBEEF), getU32(buf))

	putU64(buf, 0x0102030405060708)
	require.Equal(t, uint64(0x0102030405060708), getU64(buf))

	putI8(buf, -5)
	require.Equal(t, int8(-5), getI8(buf))

	putI16(buf, -1000)
	require.Equal(t, int16(-1000), getI16(buf))

	putI32(buf, -123456)
	require.Equal(t, int32(-123456), getI32(buf))

	putF32(buf, 3.5)
	require.Equal(t, float32(3.5), getF32(buf))

	putF64(buf, 3.14159)
	require.Equal(t, 3.14159, getF64(buf))
}

func TestBitPack(t *testing.T) {
	var b byte
	setBits(&b, 0, 3, 5)
	setBits(&b, 3, 3, 2)
	setBits(&b, 6, 1, 1)
	setBits(&b, 7, 1, 0)

	require.Equal(t, uint8(5), getBits(b, 0, 3))
	require.Equal(t, uint8(2), getBits(b, 3, 3))
	require.Equal(t, uint8(1), getBit(b, 6))
	require.Equal(t, uint8(0), getBit(b, 7))
}

func TestFixedString(t *testing.T) {
	dst := make([]byte, 16)
	writeFixedString(dst, "hello")
	require.Equal(t, "hello", readFixedString(dst))
	require.Equal(t, byte(0), dst[5])

	// Truncates when longer than the field.
	writeFixedString(dst, "this string is definitely too long")
	require.Len(t, readFixedString(dst), 16)
}

func TestBoolBit(t *testing.T) {
	require.Equal(t, uint8(1), boolBit(true))
	require.Equal(t, uint8(0), boolBit(false))
}
