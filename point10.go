package las

// WavePacket is the optional 29-byte full-waveform descriptor carried by
// point formats 4, 5, 9, and 10.
type WavePacket struct {
	DescriptorIndex             uint8
	ByteOffsetToData            uint64
	SizeInBytes                 uint32
	ReturnPointWaveformLocation float32
	XT                          float32
	YT                          float32
	ZT                          float32
}

const wavePacketSize = 29

func decodeWavePacket(b []byte) WavePacket {
	return WavePacket{
		DescriptorIndex:             b[0],
		ByteOffsetToData:            getU64(b[1:9]),
		SizeInBytes:                 getU32(b[9:13]),
		ReturnPointWaveformLocation: getF32(b[13:17]),
		XT:                          getF32(b[17:21]),
		YT:                          getF32(b[21:25]),
		ZT:                          getF32(b[25:29]),
	}
}

func encodeWavePacket(b []byte, w WavePacket) {
	b[0] = w.DescriptorIndex
	putU64(b[1:9], w.ByteOffsetToData)
	putU32(b[9:13], w.SizeInBytes)
	putF32(b[13:17], w.ReturnPointWaveformLocation)
	putF32(b[17:21], w.XT)
	putF32(b[21:25], w.YT)
	putF32(b[25:29], w.ZT)
}

// family10HasGPSTime reports whether point format id (0-5) carries gps_time.
func family10HasGPSTime(id uint8) bool { return id == 1 || id == 3 || id == 4 || id == 5 }

// family10HasRGB reports whether point format id (0-5) carries RGB.
func family10HasRGB(id uint8) bool { return id == 2 || id == 3 || id == 5 }

// family10HasWavePacket reports whether point format id (0-5) carries a wave packet.
func family10HasWavePacket(id uint8) bool { return id == 4 || id == 5 }

// RawPoint10 is the point record for formats 0-5: a fixed 20-byte core
// plus the optional gps_time / RGB / wave-packet tails and trailing extra
// bytes, per the format's id.
type RawPoint10 struct {
	X, Y, Z           int32
	Intensity         uint16
	ReturnNumber      uint8 // 3 bits
	NumberOfReturns   uint8 // 3 bits
	ScanDirectionFlag uint8 // 1 bit
	EdgeOfFlightLine  uint8 // 1 bit
	Classification    uint8 // 5 bits
	Synthetic         bool
	KeyPoint          bool
	Withheld          bool
	ScanAngleRank     int8
	UserData          uint8
	PointSourceID     uint16

	GPSTime           float64
	Red, Green, Blue  uint16
	WavePacket        WavePacket
	ExtraBytes        []byte
}

// StandardSize returns the on-disk record size (before extra bytes) for
// point format id, per the base-plus-optional-tails table.
func StandardSize(id uint8) (uint16, error) {
	switch {
	case id <= 5:
		size := uint16(20)
		if family10HasGPSTime(id) {
			size += 8
		}
		if family10HasRGB(id) {
			size += 6
		}
		if family10HasWavePacket(id) {
			size += wavePacketSize
		}
		return size, nil
	case id <= 10:
		size := uint16(30)
		if family14HasRGB(id) {
			size += 6
		}
		if family14HasNIR(id) {
			size += 2
		}
		if family14HasWavePacket(id) {
			size += wavePacketSize
		}
		return size, nil
	default:
		return 0, newInvalidPointFormatError(id)
	}
}

// mustStandardSize panics if id is out of range; used internally where id
// has already been validated by the caller (format construction).
func mustStandardSize(id uint8) uint16 {
	size, err := StandardSize(id)
	if err != nil {
		panic(err)
	}
	return size
}

func decodeRawPoint10(buf []byte, format PointFormat) (RawPoint10, error) {
	var p RawPoint10

	std := mustStandardSize(format.ID)
	total := int(std) + int(format.NumExtraBytes)
	if len(buf) < total {
		return p, newUnexpectedEOFError("point buffer shorter than record size")
	}

	p.X = getI32(buf[0:4])
	p.Y = getI32(buf[4:8])
	p.Z = getI32(buf[8:12])
	p.Intensity = getU16(buf[12:14])

	b14 := buf[14]
	p.ReturnNumber = getBits(b14, 0, 3)
	p.NumberOfReturns = getBits(b14, 3, 3)
	p.ScanDirectionFlag = getBit(b14, 6)
	p.EdgeOfFlightLine = getBit(b14, 7)

	b15 := buf[15]
	p.Classification = getBits(b15, 0, 5)
	p.Synthetic = getBit(b15, 5) != 0
	p.KeyPoint = getBit(b15, 6) != 0
	p.Withheld = getBit(b15, 7) != 0

	p.ScanAngleRank = getI8(buf[16:17])
	p.UserData = buf[17]
	p.PointSourceID = getU16(buf[18:20])

	off := 20
	if family10HasGPSTime(format.ID) {
		p.GPSTime = getF64(buf[off : off+8])
		off += 8
	}
	if family10HasRGB(format.ID) {
		p.Red = getU16(buf[off : off+2])
		off += 2
		p.Green = getU16(buf[off : off+2])
		off += 2
		p.Blue = getU16(buf[off : off+2])
		off += 2
	}
	if family10HasWavePacket(format.ID) {
		p.WavePacket = decodeWavePacket(buf[off : off+wavePacketSize])
		off += wavePacketSize
	}
	if off != int(std) {
		panic("internal error: point10 decode did not consume standard size")
	}
	if format.NumExtraBytes > 0 {
		p.ExtraBytes = append([]byte(nil), buf[off:off+int(format.NumExtraBytes)]...)
		off += int(format.NumExtraBytes)
	}
	return p, nil
}

func encodeRawPoint10(buf []byte, format PointFormat, p RawPoint10) error {
	std := mustStandardSize(format.ID)
	total := int(std) + int(format.NumExtraBytes)
	if len(buf) < total {
		return newUnexpectedEOFError("destination buffer shorter than record size")
	}
	if len(p.ExtraBytes) != int(format.NumExtraBytes) {
		return newInvalidPointSizeError(uint16(len(p.ExtraBytes)), format.ID, format.NumExtraBytes)
	}

	putI32(buf[0:4], p.X)
	putI32(buf[4:8], p.Y)
	putI32(buf[8:12], p.Z)
	putU16(buf[12:14], p.Intensity)

	var b14 byte
	setBits(&b14, 0, 3, p.ReturnNumber)
	setBits(&b14, 3, 3, p.NumberOfReturns)
	setBits(&b14, 6, 1, p.ScanDirectionFlag)
	setBits(&b14, 7, 1, p.EdgeOfFlightLine)
	buf[14] = b14

	var b15 byte
	setBits(&b15, 0, 5, p.Classification)
	setBits(&b15, 5, 1, boolBit(p.Synthetic))
	setBits(&b15, 6, 1, boolBit(p.KeyPoint))
	setBits(&b15, 7, 1, boolBit(p.Withheld))
	buf[15] = b15

	putI8(buf[16:17], p.ScanAngleRank)
	buf[17] = p.UserData
	putU16(buf[18:20], p.PointSourceID)

	off := 20
	if family10HasGPSTime(format.ID) {
		putF64(buf[off:off+8], p.GPSTime)
		off += 8
	}
	if family10HasRGB(format.ID) {
		putU16(buf[off:off+2], p.Red)
		off += 2
		putU16(buf[off:off+2], p.Green)
		off += 2
		putU16(buf[off:off+2], p.Blue)
		off += 2
	}
	if family10HasWavePacket(format.ID) {
		encodeWavePacket(buf[off:off+wavePacketSize], p.WavePacket)
		off += wavePacketSize
	}
	if off != int(std) {
		panic("internal error: point10 encode did not produce standard size")
	}
	if format.NumExtraBytes > 0 {
		copy(buf[off:off+int(format.NumExtraBytes)], p.ExtraBytes)
		off += int(format.NumExtraBytes)
	}
	return nil
}
