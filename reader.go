package las

import (
	"sync"

	"github.com/tmontaigu/las-go/internal/bufpool"
	"github.com/tmontaigu/las-go/lazcodec"
)

// Reader drives sequential point decoding out of a Source. It owns the
// source, a cloned copy of the file's header (with the laszip VLR, if
// any, stripped), a per-point scratch buffer, and optionally a
// decompressor bound to the source.
//
// A Reader is not safe for concurrent use by multiple goroutines; every
// exported method except Header takes an internal mutex, so concurrent
// calls are serialized rather than racing the scratch buffer.
type Reader struct {
	mu sync.Mutex

	src    Source
	header Header

	pointSize int
	scratch   []byte

	decompressor lazcodec.Decompressor
}

// ReaderOption configures a Reader at Open time. See options.go.
type ReaderOption func(*readerConfig)

type readerConfig struct {
	codec lazcodec.Factory
}

// Open parses the header at the front of src and seeks to the point data.
// If the header indicates compression, it also strips the laszip VLR from
// the public header and constructs a decompressor bound to src.
func Open(src Source, opts ...ReaderOption) (*Reader, error) {
	cfg := readerConfig{codec: lazcodec.Default()}
	for _, o := range opts {
		o(&cfg)
	}

	h, err := readHeaderFrom(src)
	if err != nil {
		return nil, err
	}

	r := &Reader{src: src, header: *h}

	recordSize, err := r.header.PointFormat.RecordSize()
	if err != nil {
		return nil, err
	}
	r.pointSize = int(recordSize)

	if r.header.PointFormat.IsCompressed {
		laszipVLR, ok := r.header.stripLaszipVLR()
		if !ok {
			return nil, ErrMissingLaszipVLR
		}
		if cfg.codec == nil {
			return nil, ErrNoLazSupport
		}
		dec, err := cfg.codec.NewDecompressor(src, laszipVLR.Data, r.pointSize)
		if err != nil {
			return nil, newLazCodecError(err)
		}
		r.decompressor = dec
	}

	r.scratch = make([]byte, r.pointSize)
	return r, nil
}

// OpenFile opens the file at path and parses its header.
func OpenFile(path string, opts ...ReaderOption) (*Reader, error) {
	src, err := OpenFileSource(path)
	if err != nil {
		return nil, err
	}
	r, err := Open(src, opts...)
	if err != nil {
		src.Close()
		return nil, err
	}
	return r, nil
}

// OpenBuffer opens an in-memory LAS/LAZ image and parses its header. buf
// is not copied; the caller must not mutate it while the Reader is alive.
func OpenBuffer(buf []byte, opts ...ReaderOption) (*Reader, error) {
	return Open(NewMemorySource(buf), opts...)
}

// Header returns the reader's header. The laszip VLR, if the file was
// compressed, has already been removed: it is implementation state, not
// caller-visible data.
func (r *Reader) Header() *Header { return &r.header }

// fill reads exactly one point record's worth of bytes into r.scratch,
// from the decompressor if active, else directly from the source.
func (r *Reader) fill() error {
	if r.decompressor != nil {
		return r.fillMany(r.scratch)
	}
	n, err := r.src.Read(r.scratch)
	if err != nil {
		return err
	}
	if n != r.pointSize {
		if r.src.EOF() {
			return newUnexpectedEOFError("short read of point record")
		}
		return newErrnoError(errShortRead)
	}
	return nil
}

func (r *Reader) fillMany(buf []byte) error {
	n, err := r.decompressor.Read(buf)
	if err != nil {
		return newLazCodecError(err)
	}
	if n != len(buf) {
		return newUnexpectedEOFError("short read from decompressor")
	}
	return nil
}

// ReadNextRaw decodes the next point record. Per the propagation policy,
// on error the returned point's contents are undefined and the caller
// must stop reading; the reader does not retry or recover.
func (r *Reader) ReadNextRaw() (RawPoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.fill(); err != nil {
		return RawPoint{}, err
	}
	return decodeRawPoint(r.scratch, r.header.PointFormat)
}

// ReadManyNextRaw reads and decodes the next n points in one batch. When
// n points do not fit the reader's one-point scratch buffer, a pooled
// temporary buffer is used for the call instead.
func (r *Reader) ReadManyNextRaw(n int) ([]RawPoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	need := n * r.pointSize
	buf := r.scratch
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

	if r.decompressor != nil {
		if err := r.fillMany(buf); err != nil {
			return nil, err
		}
	} else {
		read, err := r.src.Read(buf)
		if err != nil {
			return nil, err
		}
		if read != need {
			if r.src.EOF() {
				return nil, newUnexpectedEOFError("short read of point batch")
			}
			return nil, newErrnoError(errShortRead)
		}
	}

	points := make([]RawPoint, n)
	for i := 0; i < n; i++ {
		p, err := decodeRawPoint(buf[i*r.pointSize:(i+1)*r.pointSize], r.header.PointFormat)
		if err != nil {
			return nil, err
		}
		points[i] = p
	}
	return points, nil
}

// Close releases the underlying source. It does not rewind or validate
// anything: a Reader performs no finalize step, unlike Writer.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Close()
}
