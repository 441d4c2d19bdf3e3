package las

import (
	"io"
	"os"
)

// Source is a uniform byte-read abstraction the codec drives: a file, an
// in-memory buffer, or (via CustomCallbackSource) a compression engine.
// Short reads are not errors by themselves: callers compare the returned
// byte count to what they requested.
type Source interface {
	Read(dst []byte) (int, error)
	Seek(offset int64, whence int) (int64, error)
	Tell() (int64, error)
	EOF() bool
	Close() error
}

// Dest is the write-side counterpart of Source.
type Dest interface {
	Write(src []byte) (int, error)
	Seek(offset int64, whence int) (int64, error)
	Tell() (int64, error)
	Flush() error
	Close() error
	// LastError returns the error that caused the most recent short write, if any.
	LastError() error
}

// FileSource is a Source backed by an *os.File.
type FileSource struct {
	f     *os.File
	atEOF bool
}

var _ Source = (*FileSource)(nil)

// OpenFileSource opens path for reading and wraps it as a Source.
func OpenFileSource(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newErrnoError(err)
	}
	return &FileSource{f: f}, nil
}

func (s *FileSource) Read(dst []byte) (int, error) {
	n, err := io.ReadFull(s.f, dst)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		s.atEOF = true
		return n, nil
	}
	if err != nil {
		return n, newErrnoError(err)
	}
	return n, nil
}

func (s *FileSource) Seek(offset int64, whence int) (int64, error) {
	pos, err := s.f.Seek(offset, whence)
	if err != nil {
		return pos, newErrnoError(err)
	}
	s.atEOF = false
	return pos, nil
}

func (s *FileSource) Tell() (int64, error) { return s.f.Seek(0, io.SeekCurrent) }
func (s *FileSource) EOF() bool            { return s.atEOF }
func (s *FileSource) Close() error         { return s.f.Close() }

// FileDest is a Dest backed by an *os.File.
type FileDest struct {
	f       *os.File
	lastErr error
}

var _ Dest = (*FileDest)(nil)

// CreateFileDest creates (truncating) path for writing and wraps it as a Dest.
func CreateFileDest(path string) (*FileDest, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, newErrnoError(err)
	}
	return &FileDest{f: f}, nil
}

func (d *FileDest) Write(src []byte) (int, error) {
	n, err := d.f.Write(src)
	if err != nil {
		d.lastErr = err
		return n, newErrnoError(err)
	}
	return n, nil
}

func (d *FileDest) Seek(offset int64, whence int) (int64, error) {
	pos, err := d.f.Seek(offset, whence)
	if err != nil {
		return pos, newErrnoError(err)
	}
	return pos, nil
}

func (d *FileDest) Tell() (int64, error) { return d.f.Seek(0, io.SeekCurrent) }
func (d *FileDest) Flush() error         { return d.f.Sync() }
func (d *FileDest) Close() error         { return d.f.Close() }
func (d *FileDest) LastError() error     { return d.lastErr }

// MemorySource is a Source over a borrowed, fixed-size byte slice.
type MemorySource struct {
	buf []byte
	pos int64
}

var _ Source = (*MemorySource)(nil)

// NewMemorySource wraps buf (not copied) as a Source.
func NewMemorySource(buf []byte) *MemorySource {
	return &MemorySource{buf: buf}
}

func (s *MemorySource) Read(dst []byte) (int, error) {
	if s.pos >= int64(len(s.buf)) {
		return 0, nil
	}
	n := copy(dst, s.buf[s.pos:])
	s.pos += int64(n)
	return n, nil
}

func (s *MemorySource) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = s.pos + offset
	case io.SeekEnd:
		target = int64(len(s.buf)) + offset
	default:
		return s.pos, newErrnoError(os.ErrInvalid)
	}
	if target < 0 {
		return s.pos, newErrnoError(os.ErrInvalid)
	}
	// Seeking past the end is clamped to end.
	if target > int64(len(s.buf)) {
		target = int64(len(s.buf))
	}
	s.pos = target
	return s.pos, nil
}

func (s *MemorySource) Tell() (int64, error) { return s.pos, nil }
func (s *MemorySource) EOF() bool            { return s.pos >= int64(len(s.buf)) }
func (s *MemorySource) Close() error         { return nil }

// MemoryDest is a Dest over a growable in-memory buffer.
type MemoryDest struct {
	buf     []byte
	pos     int64
	lastErr error
}

var _ Dest = (*MemoryDest)(nil)

// NewMemoryDest creates an empty, growable MemoryDest.
func NewMemoryDest() *MemoryDest {
	return &MemoryDest{}
}

// Bytes returns the destination's current contents. The returned slice
// aliases the MemoryDest's internal buffer.
func (d *MemoryDest) Bytes() []byte { return d.buf }

func (d *MemoryDest) Write(src []byte) (int, error) {
	end := d.pos + int64(len(src))
	if end > int64(len(d.buf)) {
		grown := make([]byte, end)
		copy(grown, d.buf)
		d.buf = grown
	}
	n := copy(d.buf[d.pos:end], src)
	d.pos += int64(n)
	return n, nil
}

func (d *MemoryDest) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = d.pos + offset
	case io.SeekEnd:
		target = int64(len(d.buf)) + offset
	default:
		return d.pos, newErrnoError(os.ErrInvalid)
	}
	if target < 0 {
		return d.pos, newErrnoError(os.ErrInvalid)
	}
	if target > int64(len(d.buf)) {
		target = int64(len(d.buf))
	}
	d.pos = target
	return d.pos, nil
}

func (d *MemoryDest) Tell() (int64, error) { return d.pos, nil }
func (d *MemoryDest) Flush() error         { return nil }
func (d *MemoryDest) Close() error         { return nil }
func (d *MemoryDest) LastError() error     { return d.lastErr }

// CustomCallbackSource wraps a set of function fields as a Source, so any
// callback-driven byte stream can stand in for a file or buffer. The
// reader does not use it for compressed data: decompression goes through
// a lazcodec.Decompressor that reads from the Source directly.
type CustomCallbackSource struct {
	ReadFunc  func(dst []byte) (int, error)
	SeekFunc  func(offset int64, whence int) (int64, error)
	TellFunc  func() (int64, error)
	EOFFunc   func() bool
	CloseFunc func() error
}

var _ Source = (*CustomCallbackSource)(nil)

func (s *CustomCallbackSource) Read(dst []byte) (int, error) { return s.ReadFunc(dst) }
func (s *CustomCallbackSource) Seek(offset int64, whence int) (int64, error) {
	return s.SeekFunc(offset, whence)
}
func (s *CustomCallbackSource) Tell() (int64, error) { return s.TellFunc() }
func (s *CustomCallbackSource) EOF() bool {
	if s.EOFFunc == nil {
		return false
	}
	return s.EOFFunc()
}
func (s *CustomCallbackSource) Close() error {
	if s.CloseFunc == nil {
		return nil
	}
	return s.CloseFunc()
}

// CustomCallbackDest is the write-side counterpart of CustomCallbackSource.
type CustomCallbackDest struct {
	WriteFunc     func(src []byte) (int, error)
	SeekFunc      func(offset int64, whence int) (int64, error)
	TellFunc      func() (int64, error)
	FlushFunc     func() error
	CloseFunc     func() error
	LastErrorFunc func() error
}

var _ Dest = (*CustomCallbackDest)(nil)

func (d *CustomCallbackDest) Write(src []byte) (int, error) { return d.WriteFunc(src) }
func (d *CustomCallbackDest) Seek(offset int64, whence int) (int64, error) {
	return d.SeekFunc(offset, whence)
}
func (d *CustomCallbackDest) Tell() (int64, error) { return d.TellFunc() }
func (d *CustomCallbackDest) Flush() error {
	if d.FlushFunc == nil {
		return nil
	}
	return d.FlushFunc()
}
func (d *CustomCallbackDest) Close() error {
	if d.CloseFunc == nil {
		return nil
	}
	return d.CloseFunc()
}
func (d *CustomCallbackDest) LastError() error {
	if d.LastErrorFunc == nil {
		return nil
	}
	return d.LastErrorFunc()
}
