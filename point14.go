package las

// family14HasRGB reports whether point format id (6-10) carries RGB.
func family14HasRGB(id uint8) bool { return id == 7 || id == 8 || id == 10 }

// family14HasNIR reports whether point format id (6-10) carries near-infrared.
func family14HasNIR(id uint8) bool { return id == 8 || id == 10 }

// family14HasWavePacket reports whether point format id (6-10) carries a wave packet.
func family14HasWavePacket(id uint8) bool { return id == 9 || id == 10 }

// RawPoint14 is the point record for formats 6-10: a fixed 30-byte core
// (gps_time mandatory) plus the optional RGB / NIR / wave-packet tails and
// trailing extra bytes, per the format's id.
type RawPoint14 struct {
	X, Y, Z           int32
	Intensity         uint16
	ReturnNumber      uint8 // 4 bits
	NumberOfReturns   uint8 // 4 bits
	Synthetic         bool
	KeyPoint          bool
	Withheld          bool
	Overlap           bool
	ScannerChannel    uint8 // 2 bits
	ScanDirectionFlag uint8 // 1 bit
	EdgeOfFlightLine  uint8 // 1 bit
	Classification    uint8
	UserData          uint8
	ScanAngle         int16 // stored in 0.006-degree units on disk
	PointSourceID     uint16
	GPSTime           float64

	Red, Green, Blue uint16
	NIR              uint16
	WavePacket       WavePacket
	ExtraBytes       []byte
}

func decodeRawPoint14(buf []byte, format PointFormat) (RawPoint14, error) {
	var p RawPoint14

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
	p.ReturnNumber = getBits(b14, 0, 4)
	p.NumberOfReturns = getBits(b14, 4, 4)

	b15 := buf[15]
	p.Synthetic = getBit(b15, 0) != 0
	p.KeyPoint = getBit(b15, 1) != 0
	p.Withheld = getBit(b15, 2) != 0
	p.Overlap = getBit(b15, 3) != 0
	p.ScannerChannel = getBits(b15, 4, 2)
	p.ScanDirectionFlag = getBit(b15, 6)
	p.EdgeOfFlightLine = getBit(b15, 7)

	p.Classification = buf[16]
	p.UserData = buf[17]
	p.ScanAngle = getI16(buf[18:20])
	p.PointSourceID = getU16(buf[20:22])
	p.GPSTime = getF64(buf[22:30])

	off := 30
	if family14HasRGB(format.ID) {
		p.Red = getU16(buf[off : off+2])
		off += 2
		p.Green = getU16(buf[off : off+2])
		off += 2
		p.Blue = getU16(buf[off : off+2])
		off += 2
	}
	if family14HasNIR(format.ID) {
		p.NIR = getU16(buf[off : off+2])
		off += 2
	}
	if family14HasWavePacket(format.ID) {
		p.WavePacket = decodeWavePacket(buf[off : off+wavePacketSize])
		off += wavePacketSize
	}
	if off != int(std) {
		panic("internal error: point14 decode did not consume standard size")
	}
	if format.NumExtraBytes > 0 {
		p.ExtraBytes = append([]byte(nil), buf[off:off+int(format.NumExtraBytes)]...)
		off += int(format.NumExtraBytes)
	}
	return p, nil
}

func encodeRawPoint14(buf []byte, format PointFormat, p RawPoint14) error {
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
	setBits(&b14, 0, 4, p.ReturnNumber)
	setBits(&b14, 4, 4, p.NumberOfReturns)
	buf[14] = b14

	var b15 byte
	setBits(&b15, 0, 1, boolBit(p.Synthetic))
	setBits(&b15, 1, 1, boolBit(p.KeyPoint))
	setBits(&b15, 2, 1, boolBit(p.Withheld))
	setBits(&b15, 3, 1, boolBit(p.Overlap))
	setBits(&b15, 4, 2, p.ScannerChannel)
	setBits(&b15, 6, 1, p.ScanDirectionFlag)
	setBits(&b15, 7, 1, p.EdgeOfFlightLine)
	buf[15] = b15

	buf[16] = p.Classification
	buf[17] = p.UserData
	putI16(buf[18:20], p.ScanAngle)
	putU16(buf[20:22], p.PointSourceID)
	putF64(buf[22:30], p.GPSTime)

	off := 30
	if family14HasRGB(format.ID) {
		putU16(buf[off:off+2], p.Red)
		off += 2
		putU16(buf[off:off+2], p.Green)
		off += 2
		putU16(buf[off:off+2], p.Blue)
		off += 2
	}
	if family14HasNIR(format.ID) {
		putU16(buf[off:off+2], p.NIR)
		off += 2
	}
	if family14HasWavePacket(format.ID) {
		encodeWavePacket(buf[off:off+wavePacketSize], p.WavePacket)
		off += wavePacketSize
	}
	if off != int(std) {
		panic("internal error: point14 encode did not produce standard size")
	}
	if format.NumExtraBytes > 0 {
		copy(buf[off:off+int(format.NumExtraBytes)], p.ExtraBytes)
		off += int(format.NumExtraBytes)
	}
	return nil
}
