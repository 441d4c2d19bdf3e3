package las

// Version is a LAS format version. Only 1.{0,1,2,3,4} are recognized.
type Version struct {
	Major uint8
	Minor uint8
}

// IsValid reports whether v is one of the five recognized LAS versions.
func (v Version) IsValid() bool {
	return v.Major == 1 && v.Minor <= 4
}

// HeaderSize returns the on-disk fixed header size for v, or 0 if v is invalid.
func (v Version) HeaderSize() uint16 {
	if v.Major != 1 {
		return 0
	}
	switch v.Minor {
	case 0, 1, 2:
		return 227
	case 3:
		return 235
	case 4:
		return 375
	default:
		return 0
	}
}

// SupportsPointFormat reports whether this version can carry the given
// point format id, per the matrix in the header codec: formats 0-3 need
// at least 1.0, 4-5 need at least 1.3, 6-10 need at least 1.4.
func (v Version) SupportsPointFormat(formatID uint8) bool {
	switch {
	case formatID <= 3:
		return v.Minor >= 0
	case formatID <= 5:
		return v.Minor >= 3
	case formatID <= 10:
		return v.Minor >= 4
	default:
		return false
	}
}

// PointFormat identifies a point record layout. ID plus NumExtraBytes fully
// determine the on-disk record size (see StandardSize). IsCompressed is
// transport metadata: it is never serialized as its own field, only as bit
// 7 of the on-disk point-format-id byte.
type PointFormat struct {
	ID            uint8
	NumExtraBytes uint16
	IsCompressed  bool
}

// IsFamily10 reports whether this format uses the RawPoint10 record family (ids 0-5).
func (f PointFormat) IsFamily10() bool { return f.ID <= 5 }

// IsFamily14 reports whether this format uses the RawPoint14 record family (ids 6-10).
func (f PointFormat) IsFamily14() bool { return f.ID >= 6 && f.ID <= 10 }

// RecordSize returns the full on-disk point record size: StandardSize(ID) + NumExtraBytes.
func (f PointFormat) RecordSize() (uint16, error) {
	std, err := StandardSize(f.ID)
	if err != nil {
		return 0, err
	}
	return std + f.NumExtraBytes, nil
}
