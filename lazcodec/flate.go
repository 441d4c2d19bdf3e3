package lazcodec

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// flateFactory is a Factory backed by klauspost/compress's flate
// implementation: a drop-in, allocation-conscious DEFLATE.
type flateFactory struct {
	level int
}

// NewFlateFactory returns a Factory that compresses point bytes with
// DEFLATE at level (see compress/flate for the level range; -1 selects
// the default).
func NewFlateFactory(level int) Factory { return flateFactory{level: level} }

func (f flateFactory) Name() string { return "flate" }

func (f flateFactory) NewCompressor(dst io.Writer, pointSize int) (Compressor, error) {
	w, err := flate.NewWriter(dst, f.level)
	if err != nil {
		return nil, fmt.Errorf("lazcodec: flate writer: %w", err)
	}
	return &flateCompressor{w: w, level: f.level}, nil
}

func (f flateFactory) NewDecompressor(src io.Reader, vlrData []byte, pointSize int) (Decompressor, error) {
	return &flateDecompressor{r: flate.NewReader(src)}, nil
}

type flateCompressor struct {
	w     *flate.Writer
	level int
}

func (c *flateCompressor) Write(p []byte) (int, error) { return c.w.Write(p) }

func (c *flateCompressor) VLRData() []byte {
	return []byte{byte(c.level)}
}

func (c *flateCompressor) Close() error { return c.w.Close() }

type flateDecompressor struct {
	r io.ReadCloser
}

func (d *flateDecompressor) Read(p []byte) (int, error) { return io.ReadFull(d.r, p) }
func (d *flateDecompressor) Close() error               { return d.r.Close() }
