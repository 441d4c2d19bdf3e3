package las

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tmontaigu/las-go/lazcodec"
)

func rawPoint10At(formatID uint8, x, y, z int32, returnNumber uint8) RawPoint {
	p := NewRawPoint(PointFormat{ID: formatID})
	p.Point10.X, p.Point10.Y, p.Point10.Z = x, y, z
	p.Point10.ReturnNumber = returnNumber
	p.Point10.NumberOfReturns = returnNumber
	return p
}

// TestWriteReadRoundTrip12Format3 is scenario 1: three points through a
// 1.2/format-3 header with nonzero scaling, reopened and compared.
func TestWriteReadRoundTrip12Format3(t *testing.T) {
	h := newTestHeader(Version{1, 2}, 3)

	w, dst, err := CreateBuffer(h)
	require.NoError(t, err)

	scaled2 := h.Scaling.Unapply(2.0, AxisX)
	points := []RawPoint{
		rawPoint10At(3, 0, 0, 0, 1),
		rawPoint10At(3, 100, 100, 100, 1),
		rawPoint10At(3, scaled2, scaled2, scaled2, 1),
	}
	for _, p := range points {
		require.NoError(t, w.WriteRawPoint(p))
	}
	require.NoError(t, w.Close())

	r, err := Open(NewMemorySource(dst.Bytes()))
	require.NoError(t, err)
	require.EqualValues(t, 3, r.Header().PointCount)

	for i, want := range points {
		got, err := r.ReadNextRaw()
		require.NoError(t, err)
		require.True(t, RawPointEqual(want, got), "point %d", i)
	}
}

// TestReturnHistogram14 is scenario 2: ten points over formats 6, return
// numbers in {1,2,3}, verifying the histogram matches the input exactly
// (the corrected masked/clamped indexing, not a modulo that would alias
// return number 4 into bucket 0 the way write_many's original did).
func TestReturnHistogram14(t *testing.T) {
	h := newTestHeader(Version{1, 4}, 6)

	w, dst, err := CreateBuffer(h)
	require.NoError(t, err)

	returns := []uint8{1, 2, 3, 1, 2, 3, 1, 1, 2, 3}
	want := map[uint8]uint64{}
	for _, rn := range returns {
		p := NewRawPoint(PointFormat{ID: 6})
		p.Point14.ReturnNumber = rn
		require.NoError(t, w.WriteRawPoint(p))
		want[rn]++
	}
	require.NoError(t, w.Close())

	r, err := Open(NewMemorySource(dst.Bytes()))
	require.NoError(t, err)
	for rn, count := range want {
		require.Equal(t, count, r.Header().PointsByReturn[rn])
	}
	require.EqualValues(t, len(returns), r.Header().PointCount)
}

// TestConvertFamily10To14 is scenario 3: re-emit a 1.2/format-3 point
// stream through CopyRawPoint into a 1.4/format-6 writer and check
// per-field equivalence modulo the documented truncation rules.
func TestConvertFamily10To14(t *testing.T) {
	srcHeader := newTestHeader(Version{1, 2}, 3)
	srcW, srcDst, err := CreateBuffer(srcHeader)
	require.NoError(t, err)

	original := rawPoint10At(3, 50, 60, 70, 2)
	original.Point10.ScanAngleRank = 30
	original.Point10.Red, original.Point10.Green, original.Point10.Blue = 1, 2, 3
	require.NoError(t, srcW.WriteRawPoint(original))
	require.NoError(t, srcW.Close())

	srcR, err := Open(NewMemorySource(srcDst.Bytes()))
	require.NoError(t, err)
	readBack, err := srcR.ReadNextRaw()
	require.NoError(t, err)

	dstHeader := newTestHeader(Version{1, 4}, 6)
	dstW, dstDst, err := CreateBuffer(dstHeader)
	require.NoError(t, err)

	converted := NewRawPoint(PointFormat{ID: 6})
	CopyRawPoint(&converted, readBack)
	require.NoError(t, dstW.WriteRawPoint(converted))
	require.NoError(t, dstW.Close())

	dstR, err := Open(NewMemorySource(dstDst.Bytes()))
	require.NoError(t, err)
	got, err := dstR.ReadNextRaw()
	require.NoError(t, err)

	require.Equal(t, readBack.Point10.X, got.Point14.X)
	require.Equal(t, readBack.Point10.Y, got.Point14.Y)
	require.Equal(t, readBack.Point10.Z, got.Point14.Z)
	require.Equal(t, int16(readBack.Point10.ScanAngleRank), got.Point14.ScanAngle)
	// Format 6 carries no RGB, so red does not survive the write.
	require.Equal(t, uint16(0), got.Point14.Red)
	require.False(t, got.Point14.Overlap)
}

// TestEmptyFileRoundTrip covers the zero-points boundary case.
func TestEmptyFileRoundTrip(t *testing.T) {
	h := newTestHeader(Version{1, 2}, 0)
	w, dst, err := CreateBuffer(h)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := Open(NewMemorySource(dst.Bytes()))
	require.NoError(t, err)
	require.EqualValues(t, 0, r.Header().PointCount)
}

// TestWriteManyRawPoints exercises the batch write and batch read paths:
// five points written in one call come back unchanged from ReadManyNextRaw.
func TestWriteManyRawPoints(t *testing.T) {
	h := newTestHeader(Version{1, 2}, 0)
	w, dst, err := CreateBuffer(h)
	require.NoError(t, err)

	points := make([]RawPoint, 0, 5)
	for i := 0; i < 5; i++ {
		p := rawPoint10At(0, int32(i), int32(i*2), int32(i*3), uint8(i%7))
		points = append(points, p)
	}
	require.NoError(t, w.WriteManyRawPoints(points))
	require.NoError(t, w.Close())

	r, err := Open(NewMemorySource(dst.Bytes()))
	require.NoError(t, err)
	require.EqualValues(t, 5, r.Header().PointCount)

	got, err := r.ReadManyNextRaw(5)
	require.NoError(t, err)
	for i := range points {
		require.True(t, RawPointEqual(points[i], got[i]))
	}
}

func TestWriteRawPointFormatMismatch(t *testing.T) {
	h := newTestHeader(Version{1, 2}, 0)
	w, _, err := CreateBuffer(h)
	require.NoError(t, err)

	err = w.WriteRawPoint(RawPoint{FormatID: 3})
	require.ErrorIs(t, err, ErrIncompatiblePointFormat)
}

// TestLAZRoundTripViaCodec is the LAZ/LAS equivalence scenario, run
// against our own lazcodec wrapping rather than a real ASPRS-LASzip
// stream (entropy coding is out of scope).
func TestLAZRoundTripViaCodec(t *testing.T) {
	h := newTestHeader(Version{1, 2}, 3)

	w, dst, err := CreateBuffer(h, WithWriterLazCodec(lazcodec.NewFlateFactory(-1)), WithCompression())
	require.NoError(t, err)

	var points []RawPoint
	for i := 0; i < 20; i++ {
		p := rawPoint10At(3, int32(i), int32(i), int32(i), uint8(1+i%3))
		p.Point10.Red = uint16(i)
		points = append(points, p)
	}
	require.NoError(t, w.WriteManyRawPoints(points))
	require.NoError(t, w.Close())

	r, err := Open(NewMemorySource(dst.Bytes()), WithReaderLazCodec(lazcodec.NewFlateFactory(-1)))
	require.NoError(t, err)

	for _, v := range r.Header().VLRs {
		require.False(t, v.IsLaszip(), "laszip VLR must not be exposed on the public header")
	}

	got, err := r.ReadManyNextRaw(len(points))
	require.NoError(t, err)
	for i := range points {
		require.True(t, RawPointEqual(points[i], got[i]), "point %d", i)
	}
}

func TestOpenCompressedWithoutCodecFails(t *testing.T) {
	h := newTestHeader(Version{1, 2}, 0)
	w, dst, err := CreateBuffer(h, WithWriterLazCodec(lazcodec.NewNoopFactory()), WithCompression())
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = Open(NewMemorySource(dst.Bytes()))
	require.ErrorIs(t, err, ErrNoLazSupport)
}
