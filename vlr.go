package las

import "io"

// vlrHeaderSize is the fixed 54-byte on-disk VLR header: 2 reserved + 16
// user_id + 2 record_id + 2 data_size + 32 description.
const vlrHeaderSize = 54

// LaszipUserID and LaszipRecordID identify the special VLR carrying LAZ
// parameters. Readers strip it from the public header; writers synthesize
// it when compression is active.
const (
	LaszipUserID   = "laszip encoded"
	LaszipRecordID = uint16(22204)
)

// VLR is a Variable-Length Record: an opaque, user-identified metadata
// block carried in the header area.
type VLR struct {
	UserID      string // on disk: 16 bytes, non-null-terminated ASCII
	RecordID    uint16
	Description string // on disk: 32 bytes, non-null-terminated ASCII
	Data        []byte
}

// DataSize returns len(Data) as the on-disk u16 data_size field.
func (v VLR) DataSize() uint16 { return uint16(len(v.Data)) }

// Size returns the total on-disk size of this VLR, header plus payload.
func (v VLR) Size() int { return vlrHeaderSize + len(v.Data) }

// Clone returns a deep copy of v; the payload is never aliased.
func (v VLR) Clone() VLR {
	data := append([]byte(nil), v.Data...)
	return VLR{UserID: v.UserID, RecordID: v.RecordID, Description: v.Description, Data: data}
}

// IsLaszip reports whether this VLR is the laszip-encoded parameters record.
func (v VLR) IsLaszip() bool {
	return v.UserID == LaszipUserID && v.RecordID == LaszipRecordID
}

func readVLR(src Source) (VLR, error) {
	hdr := make([]byte, vlrHeaderSize)
	n, err := src.Read(hdr)
	if err != nil {
		return VLR{}, err
	}
	if n != vlrHeaderSize {
		if src.EOF() {
			return VLR{}, newUnexpectedEOFError("short read of VLR header")
		}
		return VLR{}, newErrnoError(io.ErrShortBuffer)
	}

	var v VLR
	// hdr[0:2] reserved, ignored.
	v.UserID = readFixedString(hdr[2:18])
	v.RecordID = getU16(hdr[18:20])
	dataSize := getU16(hdr[20:22])
	v.Description = readFixedString(hdr[22:54])

	if dataSize > 0 {
		v.Data = make([]byte, dataSize)
		n, err := src.Read(v.Data)
		if err != nil {
			return VLR{}, err
		}
		if n != int(dataSize) {
			if src.EOF() {
				return VLR{}, newUnexpectedEOFError("short read of VLR payload")
			}
			return VLR{}, newErrnoError(io.ErrShortBuffer)
		}
	}
	return v, nil
}

func writeVLR(dst Dest, v VLR) error {
	hdr := make([]byte, vlrHeaderSize)
	writeFixedString(hdr[2:18], v.UserID)
	putU16(hdr[18:20], v.RecordID)
	putU16(hdr[20:22], v.DataSize())
	writeFixedString(hdr[22:54], v.Description)

	if err := writeAll(dst, hdr); err != nil {
		return err
	}
	if len(v.Data) > 0 {
		if err := writeAll(dst, v.Data); err != nil {
			return err
		}
	}
	return nil
}

// writeAll writes all of buf to dst, surfacing a short write as dst's last error.
func writeAll(dst Dest, buf []byte) error {
	n, err := dst.Write(buf)
	if err != nil {
		return err
	}
	if n != len(buf) {
		if le := dst.LastError(); le != nil {
			return newErrnoError(le)
		}
		return newErrnoError(io.ErrShortWrite)
	}
	return nil
}

// readAll reads exactly len(buf) bytes from src into buf.
func readAll(src Source, buf []byte) error {
	n, err := src.Read(buf)
	if err != nil {
		return err
	}
	if n != len(buf) {
		if src.EOF() {
			return newUnexpectedEOFError("short read")
		}
		return newErrnoError(io.ErrUnexpectedEOF)
	}
	return nil
}
