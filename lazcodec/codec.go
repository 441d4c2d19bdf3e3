// Package lazcodec defines the plug point through which a LAZ compression
// engine is wired into the reader and writer: a matched Compressor/
// Decompressor pair behind a Factory, bound to the codec's Source/Dest at
// construction. The LAZ entropy coder itself (ASPRS LASzip's arithmetic
// coding over point-field residuals) is out of scope; the factories this
// package ships are real, general-purpose byte compressors standing in
// for that opaque engine, so the abstraction and its third-party backends
// are genuinely exercised end to end.
package lazcodec

import "io"

// Compressor streams encoded point bytes out through an underlying writer.
type Compressor interface {
	io.Writer
	// VLRData returns the opaque parameter blob the writer appends to the
	// header as the laszip VLR's payload.
	VLRData() []byte
	// Close flushes any buffered state to the underlying writer.
	Close() error
}

// Decompressor streams decoded point bytes in from an underlying reader.
type Decompressor interface {
	io.Reader
	Close() error
}

// Factory constructs a matched Compressor/Decompressor pair for one LAZ
// backend. A nil Factory means "no codec configured": Open/Create surface
// NoLazSupport when asked to handle a compressed stream without one.
type Factory interface {
	NewCompressor(dst io.Writer, pointSize int) (Compressor, error)
	NewDecompressor(src io.Reader, vlrData []byte, pointSize int) (Decompressor, error)
	Name() string
}

// Default returns nil: no backend is wired unless a caller opts in via
// WithReaderLazCodec / WithWriterLazCodec (see the root package's options.go).
func Default() Factory { return nil }
