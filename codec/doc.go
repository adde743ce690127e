// Package codec provides the narrow, uniform capability each compression
// algorithm family implements: allocate a compressor or decompressor
// context, release it, bound the compressed size of a buffer, and run one
// compress or decompress call. It carries no streaming, chunking, or
// ordering state — the pipeline package owns that discipline, built on top
// of this package's capability boundary.
//
// # Overview
//
// Every family funnels through the same six-operation capability: create a
// compressor at a level, create a decompressor, destroy either, bound an
// input size, compress, decompress. Two implementations satisfy it:
//
//   - deflateCapability, shared by Deflate (raw DEFLATE, no framing), Gzip
//     (header + CRC32 + size trailer), and Zlib (2-byte header + Adler-32
//     trailer) — one algorithm, three framings, selected by CodecKind.
//   - zstdCapability, for Zstandard, with a cgo-backed implementation
//     (zstd_cgo.go, using valyala/gozstd) and a pure-Go fallback
//     (zstd_pure.go, using klauspost/compress/zstd) chosen at build time.
//
// # Context pooling
//
// An Instance owns a mutex-guarded free list of compressor/decompressor
// contexts (contextPool), not a sync.Pool: contexts wrap native library
// state (a gozstd CCtx, a flate.Writer's Huffman tables) that must be
// explicitly released on Destroy, and sync.Pool entries can be collected
// by the GC before that ever happens. AcquireCompressor/ReleaseCompressor
// and their decompressor counterparts are the only way contexts move in
// and out of that free list; DiscardCompressor/DiscardDecompressor destroy
// a context outright instead of recycling it, for use after a failed call
// whose context state may be inconsistent.
//
// # Levels
//
// Level is symbolic (Fastest, Fast, Default, Good, Best, or Explicit(n)),
// mapped to each family's native range at context-creation time. The
// deflate family bakes its level in at that point and ignores any level
// passed to a later compress call; Zstandard honours a level passed per
// call, reconfiguring its context only when the requested level differs
// from the one it is currently holding.
//
// # Thread safety
//
// An Instance's context pool is safe for concurrent Acquire/Release calls
// from multiple goroutines; the contexts it hands out are not — each
// CompressorHandle/DecompressorHandle has exactly one owner between
// Acquire and its matching Release or Discard.
package codec
