package las

import (
	"io"
	"sync"

	"github.com/tmontaigu/las-go/internal/bufpool"
	"github.com/tmontaigu/las-go/lazcodec"
)

const laszipDescription = "https://laszip.org"

// Writer drives sequential point encoding into a Dest. Create takes
// ownership of the supplied Header: the writer mutates its counters as
// points are written and rewrites it at offset 0 on Close, which is the
// only point at which the final point_count and per-return histogram
// become visible on disk.
type Writer struct {
	mu sync.Mutex

	dst    Dest
	header Header

	pointSize int
	scratch   []byte

	compressor lazcodec.Compressor
	closed     bool
}

// WriterOption configures a Writer at Create time. See options.go.
type WriterOption func(*writerConfig)

type writerConfig struct {
	codec         lazcodec.Factory
	forceCompress bool
}

// maxPointCount returns the point-count ceiling for version v: u32 max
// below 1.4, u64 max at 1.4.
func maxPointCount(v Version) uint64 {
	if v.Minor >= 4 {
		return ^uint64(0)
	}
	return legacyMaxPointCount
}

// Create takes ownership of header and opens dst for writing. header is
// validated and its point_count / per-return histogram are reset to zero
// regardless of what the caller passed in: Create always starts a fresh
// count. If opts enables compression, a compressor bound to dst is
// constructed and its opaque parameter blob is appended to header as a
// synthesized laszip VLR.
func Create(dst Dest, header Header, opts ...WriterOption) (*Writer, error) {
	cfg := writerConfig{codec: lazcodec.Default()}
	for _, o := range opts {
		o(&cfg)
	}

	header.PointCount = 0
	for i := range header.PointsByReturn {
		header.PointsByReturn[i] = 0
	}

	if !header.Version.IsValid() {
		return nil, newInvalidVersionError(header.Version)
	}
	if !header.Version.SupportsPointFormat(header.PointFormat.ID) {
		return nil, newIncompatibleVersionAndFormatError(header.Version, header.PointFormat.ID)
	}

	w := &Writer{dst: dst, header: header}

	recordSize, err := header.PointFormat.RecordSize()
	if err != nil {
		return nil, err
	}
	w.pointSize = int(recordSize)

	wantCompress := cfg.forceCompress || header.PointFormat.IsCompressed
	if wantCompress {
		if cfg.codec == nil {
			return nil, ErrNoLazSupport
		}
		comp, err := cfg.codec.NewCompressor(dst, w.pointSize)
		if err != nil {
			return nil, newLazCodecError(err)
		}
		w.compressor = comp
		w.header.VLRs = append(w.header.VLRs, VLR{
			UserID:      LaszipUserID,
			RecordID:    LaszipRecordID,
			Description: laszipDescription,
			Data:        comp.VLRData(),
		})
	}
	w.header.PointFormat.IsCompressed = wantCompress

	if err := w.header.writeTo(dst, wantCompress); err != nil {
		return nil, err
	}

	w.scratch = make([]byte, w.pointSize)
	return w, nil
}

// CreateFile creates (truncating) the file at path and opens a Writer on
// it. A ".laz"/".LAZ" path suffix enables compression, per DetectFileKind,
// the same way the caller would by passing WithCompression explicitly.
func CreateFile(path string, header Header, opts ...WriterOption) (*Writer, error) {
	dst, err := CreateFileDest(path)
	if err != nil {
		return nil, err
	}
	if DetectFileKind(path) == KindLAZ {
		opts = append([]WriterOption{WithCompression()}, opts...)
	}
	w, err := Create(dst, header, opts...)
	if err != nil {
		dst.Close()
		return nil, err
	}
	return w, nil
}

// CreateBuffer opens a Writer over a fresh growable in-memory buffer,
// retrievable at any time via Bytes.
func CreateBuffer(header Header, opts ...WriterOption) (*Writer, *MemoryDest, error) {
	dst := NewMemoryDest()
	w, err := Create(dst, header, opts...)
	if err != nil {
		return nil, nil, err
	}
	return w, dst, nil
}

// Header returns the writer's current header. Point_count and the
// per-return histogram reflect only what has been written so far; they
// are not final until Close.
func (w *Writer) Header() *Header { return &w.header }

// incrementReturnHistogram accumulates one point into the per-return
// histogram, clamping return_number into the legal slot range instead of
// the modulo some implementations use (which aliases return_number==4
// into bucket 0 for the 5-slot legacy table); since neither 5 nor 15 is a
// power of two, clamping rather than bit-masking is what actually keeps
// every in-range value in its own bucket.
func incrementReturnHistogram(h *Header, returnNumber uint8) {
	limit := uint8(legacyReturnSlots - 1)
	if h.PointFormat.IsFamily14() {
		limit = extendedReturnSlots - 1
	}
	idx := returnNumber
	if idx > limit {
		idx = limit
	}
	h.PointsByReturn[idx]++
}

// WriteRawPoint encodes and emits one point. The point's FormatID must
// match the header's point format.
func (w *Writer) WriteRawPoint(p RawPoint) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if p.FormatID != w.header.PointFormat.ID {
		return ErrIncompatiblePointFormat
	}
	if w.header.PointCount >= maxPointCount(w.header.Version) {
		return newPointCountTooHighError(w.header.PointCount)
	}

	if err := encodeRawPoint(w.scratch, w.header.PointFormat, p); err != nil {
		return err
	}

	var returnNumber uint8
	if p.IsFamily10() {
		returnNumber = p.Point10.ReturnNumber
	} else {
		returnNumber = p.Point14.ReturnNumber
	}
	incrementReturnHistogram(&w.header, returnNumber)

	if err := w.emit(w.scratch); err != nil {
		return err
	}
	w.header.PointCount++
	return nil
}

// WriteManyRawPoints validates every point's format up front, encodes them
// contiguously into one buffer, and routes the whole block to the
// compressor or dest in a single call.
func (w *Writer) WriteManyRawPoints(points []RawPoint) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	n := len(points)
	if uint64(n) > maxPointCount(w.header.Version)-w.header.PointCount {
		return newPointCountTooHighError(w.header.PointCount + uint64(n))
	}
	for _, p := range points {
		if p.FormatID != w.header.PointFormat.ID {
			return ErrIncompatiblePointFormat
		}
	}

	buf := w.scratch
	need := n * w.pointSize
	if need > len(buf) {
		pooled := bufpool.Get()
		if cap(pooled) < need {
			pooled = make([]byte, need)
		} else {
			pooled = pooled[:need]
		}
		defer bufpool.Put(pooled)
		buf = pooled
	} else {
		buf = buf[:need]
	}

	for i, p := range points {
		if err := encodeRawPoint(buf[i*w.pointSize:(i+1)*w.pointSize], w.header.PointFormat, p); err != nil {
			return err
		}
		var returnNumber uint8
		if p.IsFamily10() {
			returnNumber = p.Point10.ReturnNumber
		} else {
			returnNumber = p.Point14.ReturnNumber
		}
		incrementReturnHistogram(&w.header, returnNumber)
	}

	if err := w.emit(buf); err != nil {
		return err
	}
	w.header.PointCount += uint64(n)
	return nil
}

func (w *Writer) emit(buf []byte) error {
	if w.compressor != nil {
		n, err := w.compressor.Write(buf)
		if err != nil {
			return newLazCodecError(err)
		}
		if n != len(buf) {
			return newLazCodecError(io.ErrShortWrite)
		}
		return nil
	}
	return writeAll(w.dst, buf)
}

// Close finalizes the file: flushes the compressor (if active), rewrites
// the header at offset 0 with the final point_count and per-return
// histogram, and closes dst. It is the only point at which those final
// values, and the compression bit on the point-format-id byte, reach disk.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if w.compressor != nil {
		if err := w.compressor.Close(); err != nil {
			return newLazCodecError(err)
		}
	}

	if _, err := w.dst.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if err := w.header.writeTo(w.dst, w.compressor != nil); err != nil {
		return err
	}
	if err := w.dst.Flush(); err != nil {
		return err
	}
	return w.dst.Close()
}
