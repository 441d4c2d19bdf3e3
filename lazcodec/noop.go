package lazcodec

import "io"

// noopFactory is an identity codec: bytes pass through unchanged. It
// exercises the Compressor/Decompressor plug point and the laszip VLR
// framing without depending on either real backend, which is useful for
// tests that only care about the reader/writer's compression bookkeeping.
type noopFactory struct{}

// NewNoopFactory returns a Factory whose Compressor/Decompressor copy
// bytes through unchanged.
func NewNoopFactory() Factory { return noopFactory{} }

func (noopFactory) Name() string { return "noop" }

func (noopFactory) NewCompressor(dst io.Writer, pointSize int) (Compressor, error) {
	return &noopCompressor{dst: dst}, nil
}

func (noopFactory) NewDecompressor(src io.Reader, vlrData []byte, pointSize int) (Decompressor, error) {
	return &noopDecompressor{src: src}, nil
}

type noopCompressor struct{ dst io.Writer }

func (c *noopCompressor) Write(p []byte) (int, error) { return c.dst.Write(p) }
func (c *noopCompressor) VLRData() []byte             { return nil }
func (c *noopCompressor) Close() error                { return nil }

type noopDecompressor struct{ src io.Reader }

func (d *noopDecompressor) Read(p []byte) (int, error) { return io.ReadFull(d.src, p) }
func (d *noopDecompressor) Close() error               { return nil }
