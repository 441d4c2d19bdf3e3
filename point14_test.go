package las

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStandardSizeFamily14(t *testing.T) {
	cases := []struct {
		id   uint8
		want uint16
	}{
		{6, 30},
		{7, 36}, // +rgb
		{8, 38}, // +rgb +nir
		{9, 59}, // +wavepacket
		{10, 67}, // +rgb +nir +wavepacket
	}
	for _, c := range cases {
		got, err := StandardSize(c.id)
		require.NoError(t, err)
		require.Equal(t, c.want, got, "format %d", c.id)
	}
}

func TestPoint14BitLayout(t *testing.T) {
	format := PointFormat{ID: 7}
	buf := make([]byte, mustStandardSize(7))

	p := RawPoint14{
		X: 1, Y: 2, Z: 3,
		Intensity:         42,
		ReturnNumber:      9,  // 4-bit field, exercise a value > family-10's 3-bit range
		NumberOfReturns:   12, // 4-bit field
		Synthetic:         true,
		KeyPoint:          true,
		Withheld:          false,
		Overlap:           true,
		ScannerChannel:    2,
		ScanDirectionFlag: 1,
		EdgeOfFlightLine:  0,
		Classification:    200,
		UserData:          5,
		ScanAngle:         -15000,
		PointSourceID:     3,
		GPSTime:           456.789,
		Red:               100, Green: 200, Blue: 300,
	}

	require.NoError(t, encodeRawPoint14(buf, format, p))

	require.Equal(t, byte(9|12<<4), buf[14])
	wantB15 := byte(1) | byte(1)<<1 | byte(0)<<2 | byte(1)<<3 | byte(2)<<4 | byte(1)<<6 | byte(0)<<7
	require.Equal(t, wantB15, buf[15])

	got, err := decodeRawPoint14(buf, format)
	require.NoError(t, err)
	require.True(t, rawPoint14Equal(p, got))
}

func TestPoint14EncodeDecodeRoundTrip(t *testing.T) {
	for _, id := range []uint8{6, 7, 8, 9, 10} {
		format := PointFormat{ID: id, NumExtraBytes: 2}
		size, err := format.RecordSize()
		require.NoError(t, err)

		p := NewRawPoint(format)
		p.Point14.X, p.Point14.Y, p.Point14.Z = 1, 2, 3
		p.Point14.ReturnNumber = 4
		p.Point14.NumberOfReturns = 6
		p.Point14.Overlap = true
		p.Point14.ScannerChannel = 3
		p.Point14.Classification = 250
		p.Point14.ScanAngle = -30000
		p.Point14.GPSTime = 1.25
		p.Point14.Red, p.Point14.Green, p.Point14.Blue = 1, 2, 3
		p.Point14.NIR = 4
		copy(p.Point14.ExtraBytes, []byte{9, 8})

		buf := make([]byte, size)
		require.NoError(t, encodeRawPoint14(buf, format, p.Point14))

		// Fields the format does not carry are not stored and decode as zero.
		want := p.Point14
		if !family14HasRGB(id) {
			want.Red, want.Green, want.Blue = 0, 0, 0
		}
		if !family14HasNIR(id) {
			want.NIR = 0
		}

		got, err := decodeRawPoint14(buf, format)
		require.NoError(t, err)
		require.True(t, rawPoint14Equal(want, got), "format %d round trip", id)
	}
}
