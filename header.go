package las

import (
	"bytes"
	"io"
	"math"
	"time"
)

const lasSignature = "LASF"

const legacyReturnSlots = 5
const extendedReturnSlots = 15

// legacyMaxPointCount is the ceiling a 1.0-1.3 file's u32 point_count field can hold.
const legacyMaxPointCount = math.MaxUint32

// Header is the parsed LAS header block: file-level metadata, the point
// format and scaling in effect for every record that follows, the
// per-return histogram, and the header's VLRs.
//
// PointCount and PointsByReturn are always the 64-bit canonical values;
// readHeaderFrom/writeTo handle translating to/from the legacy 32-bit
// on-disk fields for versions <=1.3.
type Header struct {
	FileSourceID   uint16
	GlobalEncoding uint16
	GUID           [16]byte
	Version        Version

	SystemIdentifier   string
	GeneratingSoftware string
	CreationDayOfYear  uint16
	CreationYear       uint16

	PointFormat PointFormat

	PointCount     uint64
	PointsByReturn [extendedReturnSlots]uint64

	Scaling    Scaling
	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64

	// Version-gated (>=1.3 / >=1.4) fields. Zero when the version does not carry them.
	StartOfWaveformDataPacket uint64
	StartOfEVLRs              uint64
	NumberOfEVLRs             uint32

	VLRs []VLR

	// ExtraHeaderBytes preserves any bytes declared by the on-disk header_size
	// field beyond what this version's fixed layout occupies.
	ExtraHeaderBytes []byte
}

// NewHeader returns a Header with sane defaults for version v and format:
// today's creation date, an empty VLR list, and a unit scaling (scales of
// 1 and zero offsets; callers set their own scaling before writing
// real-valued points).
func NewHeader(v Version, format PointFormat) Header {
	now := time.Now().UTC()
	return Header{
		Version:            v,
		SystemIdentifier:   "",
		GeneratingSoftware: "las-go",
		CreationDayOfYear:  uint16(now.YearDay()),
		CreationYear:       uint16(now.Year()),
		PointFormat:        format,
		Scaling:            Scaling{Scales: [3]float64{1, 1, 1}},
	}
}

// OffsetToPointData returns the computed offset: the version's fixed header
// size + len(ExtraHeaderBytes) + sum(VLR sizes).
func (h *Header) OffsetToPointData() uint32 {
	total := uint32(h.Version.HeaderSize()) + uint32(len(h.ExtraHeaderBytes))
	for _, v := range h.VLRs {
		total += uint32(v.Size())
	}
	return total
}

// stripLaszipVLR removes the laszip VLR, if any, returning it. The reader
// calls this right after open: the laszip VLR is an implementation detail
// of compressed-stream framing, never exposed to callers.
func (h *Header) stripLaszipVLR() (VLR, bool) {
	for i, v := range h.VLRs {
		if v.IsLaszip() {
			h.VLRs = append(h.VLRs[:i:i], h.VLRs[i+1:]...)
			return v, true
		}
	}
	return VLR{}, false
}

// findLaszipVLR reports the laszip VLR without mutating h.
func (h *Header) findLaszipVLR() (VLR, bool) {
	for _, v := range h.VLRs {
		if v.IsLaszip() {
			return v, true
		}
	}
	return VLR{}, false
}

func readHeaderFrom(src Source) (*Header, error) {
	base := make([]byte, 227)
	if err := readAll(src, base); err != nil {
		return nil, err
	}

	sig := base[0:4]
	if !bytes.Equal(sig, []byte(lasSignature)) {
		return nil, newInvalidSignatureError(sig)
	}

	h := &Header{}
	h.FileSourceID = getU16(base[4:6])
	h.GlobalEncoding = getU16(base[6:8])
	copy(h.GUID[:], base[8:24])
	h.Version = Version{Major: base[24], Minor: base[25]}
	if !h.Version.IsValid() {
		return nil, newInvalidVersionError(h.Version)
	}

	h.SystemIdentifier = readFixedString(base[26:58])
	h.GeneratingSoftware = readFixedString(base[58:90])
	h.CreationDayOfYear = getU16(base[90:92])
	h.CreationYear = getU16(base[92:94])

	declaredHeaderSize := getU16(base[94:96])
	offsetToPointData := getU32(base[96:100])
	numberOfVLRs := getU32(base[100:104])

	rawFormatID := base[104]
	isCompressed := rawFormatID&0x80 != 0
	effectiveID := rawFormatID &^ 0xC0
	if effectiveID > 10 {
		return nil, newInvalidPointFormatError(effectiveID)
	}

	declaredRecordLen := getU16(base[105:107])
	stdSize, err := StandardSize(effectiveID)
	if err != nil {
		return nil, err
	}
	if declaredRecordLen < stdSize {
		return nil, newInvalidPointSizeError(declaredRecordLen, effectiveID, stdSize)
	}
	h.PointFormat = PointFormat{
		ID:            effectiveID,
		NumExtraBytes: declaredRecordLen - stdSize,
		IsCompressed:  isCompressed,
	}

	legacyCount := getU32(base[107:111])
	h.PointCount = uint64(legacyCount)
	for i := 0; i < legacyReturnSlots; i++ {
		off := 111 + i*4
		h.PointsByReturn[i] = uint64(getU32(base[off : off+4]))
	}

	h.Scaling.Scales[AxisX] = getF64(base[131:139])
	h.Scaling.Scales[AxisY] = getF64(base[139:147])
	h.Scaling.Scales[AxisZ] = getF64(base[147:155])
	h.Scaling.Offsets[AxisX] = getF64(base[155:163])
	h.Scaling.Offsets[AxisY] = getF64(base[163:171])
	h.Scaling.Offsets[AxisZ] = getF64(base[171:179])
	h.MaxX = getF64(base[179:187])
	h.MinX = getF64(base[187:195])
	h.MaxY = getF64(base[195:203])
	h.MinY = getF64(base[203:211])
	h.MaxZ = getF64(base[211:219])
	h.MinZ = getF64(base[219:227])

	if h.Version.Minor >= 3 {
		more := make([]byte, 8)
		if err := readAll(src, more); err != nil {
			return nil, err
		}
		h.StartOfWaveformDataPacket = getU64(more[0:8])
	}
	if h.Version.Minor >= 4 {
		more := make([]byte, 140)
		if err := readAll(src, more); err != nil {
			return nil, err
		}
		h.StartOfEVLRs = getU64(more[0:8])
		h.NumberOfEVLRs = getU32(more[8:12])
		h.PointCount = getU64(more[12:20])
		for i := 0; i < extendedReturnSlots; i++ {
			off := 20 + i*8
			h.PointsByReturn[i] = getU64(more[off : off+8])
		}
	}

	consumed := int(h.Version.HeaderSize())
	if int(declaredHeaderSize) > consumed {
		extra := make([]byte, int(declaredHeaderSize)-consumed)
		if err := readAll(src, extra); err != nil {
			return nil, err
		}
		h.ExtraHeaderBytes = extra
	}

	h.VLRs = make([]VLR, 0, numberOfVLRs)
	for i := uint32(0); i < numberOfVLRs; i++ {
		v, err := readVLR(src)
		if err != nil {
			return nil, err
		}
		h.VLRs = append(h.VLRs, v)
	}

	if _, err := src.Seek(int64(offsetToPointData), io.SeekStart); err != nil {
		return nil, err
	}

	return h, nil
}

// writeTo validates h for the target version/format and serializes it.
// isCompressed controls whether bit 7 of the on-disk point-format-id byte
// is set; it is the writer's only on-disk compression signal.
func (h *Header) writeTo(dst Dest, isCompressed bool) error {
	if !h.Version.IsValid() {
		return newInvalidVersionError(h.Version)
	}
	if h.PointFormat.ID > 10 {
		return newInvalidPointFormatError(h.PointFormat.ID)
	}
	if !h.Version.SupportsPointFormat(h.PointFormat.ID) {
		return newIncompatibleVersionAndFormatError(h.Version, h.PointFormat.ID)
	}
	if h.PointCount > legacyMaxPointCount && h.Version.Minor <= 3 {
		return newPointCountTooHighError(h.PointCount)
	}

	headerSize := h.Version.HeaderSize() + uint16(len(h.ExtraHeaderBytes))
	offsetToPointData := h.OffsetToPointData()

	base := make([]byte, 227)
	copy(base[0:4], lasSignature)
	putU16(base[4:6], h.FileSourceID)
	putU16(base[6:8], h.GlobalEncoding)
	copy(base[8:24], h.GUID[:])
	base[24] = h.Version.Major
	base[25] = h.Version.Minor
	writeFixedString(base[26:58], h.SystemIdentifier)
	writeFixedString(base[58:90], h.GeneratingSoftware)
	putU16(base[90:92], h.CreationDayOfYear)
	putU16(base[92:94], h.CreationYear)
	putU16(base[94:96], headerSize)
	putU32(base[96:100], offsetToPointData)
	putU32(base[100:104], uint32(len(h.VLRs)))

	formatByte := h.PointFormat.ID
	if isCompressed {
		formatByte |= 0x80
	}
	base[104] = formatByte

	recordLen, err := h.PointFormat.RecordSize()
	if err != nil {
		return err
	}
	putU16(base[105:107], recordLen)

	legacyCount := uint32(0)
	if h.Version.Minor <= 3 {
		legacyCount = uint32(h.PointCount)
	} else if h.PointCount <= legacyMaxPointCount {
		legacyCount = uint32(h.PointCount)
	}
	putU32(base[107:111], legacyCount)
	for i := 0; i < legacyReturnSlots; i++ {
		off := 111 + i*4
		v := h.PointsByReturn[i]
		if v > math.MaxUint32 {
			v = math.MaxUint32
		}
		putU32(base[off:off+4], uint32(v))
	}

	putF64(base[131:139], h.Scaling.Scales[AxisX])
	putF64(base[139:147], h.Scaling.Scales[AxisY])
	putF64(base[147:155], h.Scaling.Scales[AxisZ])
	putF64(base[155:163], h.Scaling.Offsets[AxisX])
	putF64(base[163:171], h.Scaling.Offsets[AxisY])
	putF64(base[171:179], h.Scaling.Offsets[AxisZ])
	putF64(base[179:187], h.MaxX)
	putF64(base[187:195], h.MinX)
	putF64(base[195:203], h.MaxY)
	putF64(base[203:211], h.MinY)
	putF64(base[211:219], h.MaxZ)
	putF64(base[219:227], h.MinZ)

	if err := writeAll(dst, base); err != nil {
		return err
	}

	if h.Version.Minor >= 3 {
		more := make([]byte, 8)
		putU64(more[0:8], h.StartOfWaveformDataPacket)
		if err := writeAll(dst, more); err != nil {
			return err
		}
	}
	if h.Version.Minor >= 4 {
		more := make([]byte, 140)
		putU64(more[0:8], h.StartOfEVLRs)
		putU32(more[8:12], h.NumberOfEVLRs)
		putU64(more[12:20], h.PointCount)
		for i := 0; i < extendedReturnSlots; i++ {
			off := 20 + i*8
			putU64(more[off:off+8], h.PointsByReturn[i])
		}
		if err := writeAll(dst, more); err != nil {
			return err
		}
	}

	if len(h.ExtraHeaderBytes) > 0 {
		if err := writeAll(dst, h.ExtraHeaderBytes); err != nil {
			return err
		}
	}

	for _, v := range h.VLRs {
		if err := writeVLR(dst, v); err != nil {
			return err
		}
	}

	return nil
}
