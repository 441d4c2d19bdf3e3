// Package las reads and writes LAS point-cloud files (ASPRS LAS 1.0-1.4)
// and their compressed LAZ counterpart.
//
// The package is split into a handful of small components, leaves first:
// a byte-source/byte-destination abstraction ([Source], [Dest]) that lets
// the codec drive a file, an in-memory buffer, or a pluggable compression
// engine; little-endian binary primitives; a VLR codec; a header codec; a
// point-record codec for the two point-record families (formats 0-5 and
// 6-10); a tagged-variant point model with safe cross-family conversion;
// and finally [Reader] and [Writer], which drive the rest sequentially.
//
// Reads are strictly sequential and a single [Reader] or [Writer] is not
// safe for concurrent use - see the package-level contracts on each type.
package las
