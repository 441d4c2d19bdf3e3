package las

import "github.com/tmontaigu/las-go/lazcodec"

// WithReaderLazCodec configures the Factory a Reader uses to construct a
// decompressor when it opens a file whose header reports compression. A
// Reader opened without this option falls back to lazcodec.Default,
// which is nil: opening a compressed file then fails with NoLazSupport.
func WithReaderLazCodec(f lazcodec.Factory) ReaderOption {
	return func(c *readerConfig) { c.codec = f }
}

// WithWriterLazCodec configures the Factory a Writer uses to construct a
// compressor. Combined with WithCompression, this is how a caller opts
// into writing a LAZ file instead of a plain LAS file.
func WithWriterLazCodec(f lazcodec.Factory) WriterOption {
	return func(c *writerConfig) { c.codec = f }
}

// WithCompression forces Create to build a compressor regardless of the
// header's PointFormat.IsCompressed flag; the header's flag is updated to
// match once the compressor is constructed. Use this with
// WithWriterLazCodec to write a LAZ stream from a header that was built
// as if for plain LAS.
func WithCompression() WriterOption {
	return func(c *writerConfig) { c.forceCompress = true }
}
