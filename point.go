package las

// RawPoint is a tagged-variant point record: exactly one of Point10 or
// Point14 is meaningful, selected by FormatID's partition (<=5 vs >=6).
// It is modeled as a sum type, not an embedding/inheritance hierarchy: the
// four-way conversion matrix in CopyRawPoint is exhaustive over the two
// variants, and nothing about either variant depends on the other.
type RawPoint struct {
	FormatID uint8
	Point10  RawPoint10
	Point14  RawPoint14
}

// NewRawPoint allocates a RawPoint for format, with a zeroed extra_bytes
// buffer of the format's declared length.
func NewRawPoint(format PointFormat) RawPoint {
	p := RawPoint{FormatID: format.ID}
	extra := make([]byte, format.NumExtraBytes)
	if format.IsFamily10() {
		p.Point10.ExtraBytes = extra
	} else {
		p.Point14.ExtraBytes = extra
	}
	return p
}

// IsFamily10 reports whether this point's Point10 variant is the active one.
func (p RawPoint) IsFamily10() bool { return p.FormatID <= 5 }

// IsFamily14 reports whether this point's Point14 variant is the active one.
func (p RawPoint) IsFamily14() bool { return p.FormatID >= 6 && p.FormatID <= 10 }

func decodeRawPoint(buf []byte, format PointFormat) (RawPoint, error) {
	if format.IsFamily10() {
		p10, err := decodeRawPoint10(buf, format)
		if err != nil {
			return RawPoint{}, err
		}
		return RawPoint{FormatID: format.ID, Point10: p10}, nil
	}
	p14, err := decodeRawPoint14(buf, format)
	if err != nil {
		return RawPoint{}, err
	}
	return RawPoint{FormatID: format.ID, Point14: p14}, nil
}

func encodeRawPoint(buf []byte, format PointFormat, p RawPoint) error {
	if format.IsFamily10() {
		return encodeRawPoint10(buf, format, p.Point10)
	}
	return encodeRawPoint14(buf, format, p.Point14)
}

// CopyRawPoint converts src (in its own format) into dst's format,
// preserving dst's FormatID and extra_bytes buffer (which must already be
// sized for dst's format; it is left untouched here — callers copy extra
// bytes themselves when the two formats share a length). The four
// src/dst family combinations are handled explicitly:
//
//   - 10 -> 10 and 14 -> 14: same-family copy, field for field.
//   - 10 -> 14 (widening): overlap, scanner_channel, and nir become zero;
//     scan_angle_rank is stored into scan_angle unchanged (sign-extended).
//   - 14 -> 10 (narrowing): scan_angle is truncated to a signed 8-bit
//     scan_angle_rank; nir, overlap, and scanner_channel are dropped;
//     classification is masked to 5 bits.
//
// This fixes the y=unapply_x(point.x)-style mismapping bug some
// implementations of this conversion carry: every axis and field below
// maps from its own source field, never a neighboring one.
func CopyRawPoint(dst *RawPoint, src RawPoint) {
	switch {
	case src.IsFamily10() && dst.IsFamily10():
		extra := dst.Point10.ExtraBytes
		dst.Point10 = src.Point10
		dst.Point10.ExtraBytes = extra

	case src.IsFamily14() && dst.IsFamily14():
		extra := dst.Point14.ExtraBytes
		dst.Point14 = src.Point14
		dst.Point14.ExtraBytes = extra

	case src.IsFamily10() && dst.IsFamily14():
		s := src.Point10
		extra := dst.Point14.ExtraBytes
		dst.Point14 = RawPoint14{
			X: s.X, Y: s.Y, Z: s.Z,
			Intensity:         s.Intensity,
			ReturnNumber:      s.ReturnNumber,
			NumberOfReturns:   s.NumberOfReturns,
			Synthetic:         s.Synthetic,
			KeyPoint:          s.KeyPoint,
			Withheld:          s.Withheld,
			Overlap:           false,
			ScannerChannel:    0,
			ScanDirectionFlag: s.ScanDirectionFlag,
			EdgeOfFlightLine:  s.EdgeOfFlightLine,
			Classification:    s.Classification,
			UserData:          s.UserData,
			ScanAngle:         int16(s.ScanAngleRank),
			PointSourceID:     s.PointSourceID,
			GPSTime:           s.GPSTime,
			Red:               s.Red,
			Green:             s.Green,
			Blue:              s.Blue,
			NIR:               0,
			WavePacket:        s.WavePacket,
			ExtraBytes:        extra,
		}

	case src.IsFamily14() && dst.IsFamily10():
		s := src.Point14
		extra := dst.Point10.ExtraBytes
		dst.Point10 = RawPoint10{
			X: s.X, Y: s.Y, Z: s.Z,
			Intensity:         s.Intensity,
			ReturnNumber:      s.ReturnNumber & 0x7,
			NumberOfReturns:   s.NumberOfReturns & 0x7,
			ScanDirectionFlag: s.ScanDirectionFlag,
			EdgeOfFlightLine:  s.EdgeOfFlightLine,
			Classification:    s.Classification & 0x1F,
			Synthetic:         s.Synthetic,
			KeyPoint:          s.KeyPoint,
			Withheld:          s.Withheld,
			ScanAngleRank:     truncateScanAngle(s.ScanAngle),
			UserData:          s.UserData,
			PointSourceID:     s.PointSourceID,
			GPSTime:           s.GPSTime,
			Red:               s.Red,
			Green:             s.Green,
			Blue:              s.Blue,
			WavePacket:        s.WavePacket,
			ExtraBytes:        extra,
		}
	}
}

// truncateScanAngle narrows a family-14 scan_angle to the 8-bit signed
// scan_angle_rank range used by family 10.
func truncateScanAngle(v int16) int8 {
	if v > 127 {
		return 127
	}
	if v < -128 {
		return -128
	}
	return int8(v)
}

// RawPointEqual reports whether a and b are equal in every field,
// including extra-byte contents and (when present) the wave packet.
func RawPointEqual(a, b RawPoint) bool {
	if a.FormatID != b.FormatID {
		return false
	}
	if a.IsFamily10() {
		return rawPoint10Equal(a.Point10, b.Point10)
	}
	return rawPoint14Equal(a.Point14, b.Point14)
}

func rawPoint10Equal(a, b RawPoint10) bool {
	if a.X != b.X || a.Y != b.Y || a.Z != b.Z || a.Intensity != b.Intensity ||
		a.ReturnNumber != b.ReturnNumber || a.NumberOfReturns != b.NumberOfReturns ||
		a.ScanDirectionFlag != b.ScanDirectionFlag || a.EdgeOfFlightLine != b.EdgeOfFlightLine ||
		a.Classification != b.Classification || a.Synthetic != b.Synthetic ||
		a.KeyPoint != b.KeyPoint || a.Withheld != b.Withheld ||
		a.ScanAngleRank != b.ScanAngleRank || a.UserData != b.UserData ||
		a.PointSourceID != b.PointSourceID || a.GPSTime != b.GPSTime ||
		a.Red != b.Red || a.Green != b.Green || a.Blue != b.Blue ||
		a.WavePacket != b.WavePacket {
		return false
	}
	return bytesEqual(a.ExtraBytes, b.ExtraBytes)
}

func rawPoint14Equal(a, b RawPoint14) bool {
	if a.X != b.X || a.Y != b.Y || a.Z != b.Z || a.Intensity != b.Intensity ||
		a.ReturnNumber != b.ReturnNumber || a.NumberOfReturns != b.NumberOfReturns ||
		a.Synthetic != b.Synthetic || a.KeyPoint != b.KeyPoint || a.Withheld != b.Withheld ||
		a.Overlap != b.Overlap || a.ScannerChannel != b.ScannerChannel ||
		a.ScanDirectionFlag != b.ScanDirectionFlag || a.EdgeOfFlightLine != b.EdgeOfFlightLine ||
		a.Classification != b.Classification || a.UserData != b.UserData ||
		a.ScanAngle != b.ScanAngle || a.PointSourceID != b.PointSourceID ||
		a.GPSTime != b.GPSTime || a.Red != b.Red || a.Green != b.Green || a.Blue != b.Blue ||
		a.NIR != b.NIR || a.WavePacket != b.WavePacket {
		return false
	}
	return bytesEqual(a.ExtraBytes, b.ExtraBytes)
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Point is the user-facing scaled point: real-world XYZ plus the union of
// every optional attribute across both raw families. Fields absent from
// the point's originating family (Overlap, ScannerChannel, NIR for a
// family-10 point) read as zero.
type Point struct {
	X, Y, Z float64

	Intensity         uint16
	ReturnNumber      uint8
	NumberOfReturns   uint8
	ScanDirectionFlag uint8
	EdgeOfFlightLine  uint8
	Classification    uint8
	Synthetic         bool
	KeyPoint          bool
	Withheld          bool
	Overlap           bool
	ScannerChannel    uint8
	ScanAngle         float32 // degrees; family-10 scan_angle_rank is an integer degree value
	UserData          uint8
	PointSourceID     uint16
	GPSTime           float64
	Red, Green, Blue  uint16
	NIR               uint16
	WavePacket        WavePacket
	ExtraBytes        []byte
}

// ToPoint applies scaling to raw and flattens it into the user-facing Point.
func ToPoint(raw RawPoint, scaling Scaling) Point {
	if raw.IsFamily10() {
		p := raw.Point10
		x, y, z := scaling.ApplyXYZ(p.X, p.Y, p.Z)
		return Point{
			X: x, Y: y, Z: z,
			Intensity:         p.Intensity,
			ReturnNumber:      p.ReturnNumber,
			NumberOfReturns:   p.NumberOfReturns,
			ScanDirectionFlag: p.ScanDirectionFlag,
			EdgeOfFlightLine:  p.EdgeOfFlightLine,
			Classification:    p.Classification,
			Synthetic:         p.Synthetic,
			KeyPoint:          p.KeyPoint,
			Withheld:          p.Withheld,
			ScanAngle:         float32(p.ScanAngleRank),
			UserData:          p.UserData,
			PointSourceID:     p.PointSourceID,
			GPSTime:           p.GPSTime,
			Red:               p.Red,
			Green:             p.Green,
			Blue:              p.Blue,
			WavePacket:        p.WavePacket,
			ExtraBytes:        p.ExtraBytes,
		}
	}
	p := raw.Point14
	x, y, z := scaling.ApplyXYZ(p.X, p.Y, p.Z)
	return Point{
		X: x, Y: y, Z: z,
		Intensity:         p.Intensity,
		ReturnNumber:      p.ReturnNumber,
		NumberOfReturns:   p.NumberOfReturns,
		ScanDirectionFlag: p.ScanDirectionFlag,
		EdgeOfFlightLine:  p.EdgeOfFlightLine,
		Classification:    p.Classification,
		Synthetic:         p.Synthetic,
		KeyPoint:          p.KeyPoint,
		Withheld:          p.Withheld,
		Overlap:           p.Overlap,
		ScannerChannel:    p.ScannerChannel,
		ScanAngle:         float32(p.ScanAngle) * 0.006,
		UserData:          p.UserData,
		PointSourceID:     p.PointSourceID,
		GPSTime:           p.GPSTime,
		Red:               p.Red,
		Green:             p.Green,
		Blue:              p.Blue,
		NIR:               p.NIR,
		WavePacket:        p.WavePacket,
		ExtraBytes:        p.ExtraBytes,
	}
}
