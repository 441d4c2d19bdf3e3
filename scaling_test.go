package las

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScalingApplyUnapplyRoundTrip(t *testing.T) {
	s := Scaling{
		Scales:  [3]float64{0.01, 0.01, 0.001},
		Offsets: [3]float64{100, -200, 0},
	}

	for _, raw := range []int32{0, 1, -1, 100, -100, 123456, -123456} {
		got := s.Unapply(s.Apply(raw, AxisX), AxisX)
		require.Equal(t, raw, got)
	}
}

func TestScalingApplyXYZ(t *testing.T) {
	s := Scaling{Scales: [3]float64{0.01, 0.01, 0.01}}
	x, y, z := s.ApplyXYZ(100, 200, 300)
	require.InDelta(t, 1.0, x, 1e-9)
	require.InDelta(t, 2.0, y, 1e-9)
	require.InDelta(t, 3.0, z, 1e-9)

	rx, ry, rz := s.UnapplyXYZ(1.0, 2.0, 3.0)
	require.Equal(t, int32(100), rx)
	require.Equal(t, int32(200), ry)
	require.Equal(t, int32(300), rz)
}

func TestScalingUnapplyTruncatesTowardZero(t *testing.T) {
	s := Scaling{Scales: [3]float64{1, 1, 1}}
	require.Equal(t, int32(2), s.Unapply(2.9, AxisX))
	require.Equal(t, int32(-2), s.Unapply(-2.9, AxisX))
}
