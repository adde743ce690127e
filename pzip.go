// Package pzip provides a parallel, ordered, bounded-concurrency block
// compression engine over the DEFLATE family (raw deflate, gzip, zlib) and
// Zstandard. A stream is split into fixed-size chunks, each chunk is
// compressed or decompressed on a worker pool, and results are written to
// the output in the exact order their inputs were read — never out of
// order, regardless of how the pool schedules the underlying work.
//
// # Basic usage
//
//	c, err := pzip.New(pzip.Zstd, pzip.Default)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	if err := c.Compress(srcFile, dstFile); err != nil {
//	    log.Fatal(err)
//	}
//
// For advanced use — a custom worker pool, or direct control over codec
// contexts and stream framing — use the codec and pipeline packages
// directly. This package is a convenience wrapper around both.
package pzip

import (
	"io"

	"github.com/colinmarc/pzip/codec"
	"github.com/colinmarc/pzip/pipeline"
	"github.com/colinmarc/pzip/workerpool"
)

// Re-exported so callers of this package never need to import codec
// directly for the common case.
type (
	// CodecKind selects which compression algorithm family a Codec uses.
	CodecKind = codec.CodecKind
	// Level is a symbolic compression level, scaled to each codec's native
	// range.
	Level = codec.Level
)

const (
	Deflate = codec.Deflate
	Gzip    = codec.Gzip
	Zlib    = codec.Zlib
	Zstd    = codec.Zstd
)

var (
	Fastest = codec.Fastest
	Fast    = codec.Fast
	Default = codec.Default
	Good    = codec.Good
	Best    = codec.Best
)

// Explicit escapes the symbolic Level presets and requests a codec-native
// level number directly.
func Explicit(level int32) Level {
	return codec.Explicit(level)
}

// defaultPoolSize is the worker count used when New is not given an
// explicit pool. It matches ChunkSize/WindowSize's own unit of parallelism
// rather than GOMAXPROCS, since compression is usually not the only thing
// competing for CPU in a process that embeds this package.
const defaultPoolSize = pipeline.WindowSize

// Codec drives compress and decompress stream operations for one
// algorithm family and level. A Codec is safe to reuse across many
// sequential stream operations — its codec contexts are pooled and freed
// only on Close — but a single Codec must not run two stream operations
// concurrently.
type Codec struct {
	inst *codec.Instance
	pool workerpool.Pool

	ownsPool bool
	closer   func()
}

// New creates a Codec for kind at level, with its own internally owned
// worker pool sized to pipeline.WindowSize. Use NewWithPool to share a
// pool across multiple Codecs instead.
func New(kind CodecKind, level Level) (*Codec, error) {
	p, err := workerpool.NewAntsPool(defaultPoolSize)
	if err != nil {
		return nil, err
	}

	return &Codec{
		inst:     codec.New(kind, level),
		pool:     p,
		ownsPool: true,
		closer:   p.Release,
	}, nil
}

// NewWithPool creates a Codec for kind at level that submits work to pool
// rather than one of its own. The caller remains responsible for pool's
// lifetime — Close will not release it.
func NewWithPool(kind CodecKind, level Level, pool workerpool.Pool) *Codec {
	return &Codec{
		inst: codec.New(kind, level),
		pool: pool,
	}
}

// Kind reports which CodecKind this Codec was created with.
func (c *Codec) Kind() CodecKind { return c.inst.Kind() }

// Level reports the Level this Codec was created with.
func (c *Codec) Level() Level { return c.inst.Level() }

// Compress reads all of r, compresses it in parallel chunks, and writes
// the resulting framed container to w.
func (c *Codec) Compress(r io.Reader, w io.Writer) error {
	return pipeline.Compress(c.inst, c.pool, pipeline.NewReaderSource(r), pipeline.NewWriterSink(w))
}

// Decompress reads a framed container produced by Compress from r,
// decompresses it in parallel, and writes the recovered bytes to w in
// their original order.
func (c *Codec) Decompress(r io.Reader, w io.Writer) error {
	return pipeline.Decompress(c.inst, c.pool, pipeline.NewReaderSource(r), pipeline.NewWriterSink(w))
}

// LiveContexts reports the number of codec contexts this Codec currently
// has acquired but not yet released, for diagnostics and tests.
func (c *Codec) LiveContexts() int64 { return c.inst.LiveContexts() }

// Close releases every pooled codec context, and — if this Codec owns its
// worker pool (created via New rather than NewWithPool) — releases that
// pool too. Must not be called while a Compress or Decompress call on this
// Codec is in flight.
func (c *Codec) Close() {
	c.inst.Destroy()
	if c.ownsPool && c.closer != nil {
		c.closer()
	}
}
