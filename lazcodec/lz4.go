package lazcodec

import (
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// lz4Factory is a Factory backed by pierrec/lz4/v4's frame-format
// Writer/Reader.
type lz4Factory struct {
	level lz4.CompressionLevel
}

// NewLZ4Factory returns a Factory that compresses point bytes as an LZ4
// frame at level.
func NewLZ4Factory(level lz4.CompressionLevel) Factory { return lz4Factory{level: level} }

func (f lz4Factory) Name() string { return "lz4" }

func (f lz4Factory) NewCompressor(dst io.Writer, pointSize int) (Compressor, error) {
	w := lz4.NewWriter(dst)
	if err := w.Apply(lz4.CompressionLevelOption(f.level)); err != nil {
		return nil, fmt.Errorf("lazcodec: lz4 writer options: %w", err)
	}
	return &lz4Compressor{w: w, level: f.level}, nil
}

func (f lz4Factory) NewDecompressor(src io.Reader, vlrData []byte, pointSize int) (Decompressor, error) {
	r := lz4.NewReader(src)
	return &lz4Decompressor{r: r}, nil
}

type lz4Compressor struct {
	w     *lz4.Writer
	level lz4.CompressionLevel
}

func (c *lz4Compressor) Write(p []byte) (int, error) { return c.w.Write(p) }

func (c *lz4Compressor) VLRData() []byte {
	return []byte{byte(c.level >> 24), byte(c.level >> 16), byte(c.level >> 8), byte(c.level)}
}

func (c *lz4Compressor) Close() error { return c.w.Close() }

// lz4Decompressor adapts lz4.Reader so a short Read always means EOF or a
// genuine stream error, never "ask again for the rest" — the reader's
// fillMany treats any Read returning fewer bytes than requested as fatal.
type lz4Decompressor struct {
	r *lz4.Reader
}

func (d *lz4Decompressor) Read(p []byte) (int, error) { return io.ReadFull(d.r, p) }
func (d *lz4Decompressor) Close() error               { return nil }
