package codec

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// deflateCapability implements the six-operation capability for the three
// framings that share one underlying algorithm: Deflate (raw, no header),
// Gzip (header + CRC32 + size trailer), and Zlib (2-byte header + Adler-32
// trailer). framing selects which one a compressor/decompressor writes or
// expects; the compression algorithm underneath is identical.
type deflateCapability struct {
	framing CodecKind
}

// deflateLevel maps a symbolic Level to klauspost/compress/flate's native
// 1-9 range. Best and any Explicit level above 9 clamp to 9 rather than
// erroring.
func deflateLevel(lvl Level) int {
	var n int
	switch lvl.preset {
	case presetFastest:
		n = 1
	case presetFast:
		n = 3
	case presetDefault, presetNone:
		n = 6
	case presetGood:
		n = 9
	case presetBest:
		n = 9
	case presetExplicit:
		n = int(lvl.explicit)
	default:
		n = 6
	}

	if n < flate.BestSpeed {
		n = flate.BestSpeed
	}
	if n > flate.BestCompression {
		n = flate.BestCompression
	}

	return n
}

func (c *deflateCapability) bound(n int) int {
	// Classic zlib compressBound formula for the worst-case DEFLATE
	// expansion, plus per-framing header/trailer overhead.
	b := n + (n >> 12) + (n >> 14) + (n >> 25) + 13
	switch c.framing {
	case Gzip:
		b += 18 // 10-byte header + 8-byte trailer
	case Zlib:
		b += 6 // 2-byte header + 4-byte trailer
	}

	return b
}

// deflateWriter is the minimal surface flate.Writer, gzip.Writer, and
// zlib.Writer all share.
type deflateWriter interface {
	io.Writer
	io.Closer
	Reset(io.Writer)
}

type deflateCompressor struct {
	framing CodecKind
	buf     *limitedBuffer
	w       deflateWriter
}

func (c *deflateCapability) newCompressor(lvl Level) (compressor, error) {
	level := deflateLevel(lvl)
	buf := newLimitedBuffer()

	var w deflateWriter
	var err error
	switch c.framing {
	case Deflate:
		w, err = flate.NewWriter(buf, level)
	case Gzip:
		w, err = gzip.NewWriterLevel(buf, level)
	case Zlib:
		w, err = zlib.NewWriterLevel(buf, level)
	default:
		panic("codec: deflateCapability used with non-deflate framing")
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCodecInit, err)
	}

	return &deflateCompressor{framing: c.framing, buf: buf, w: w}, nil
}

// compress ignores level: the deflate family bakes its level into the
// context at newCompressor time (see deflateLevel), and the engine must not
// silently downgrade by recreating the context mid-stream for a changed
// per-call level.
func (dc *deflateCompressor) compress(in, out []byte, _ Level) (int, error) {
	dc.buf.reset(out)
	dc.w.Reset(dc.buf)

	if _, err := dc.w.Write(in); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCompressFailure, err)
	}
	if err := dc.w.Close(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCompressFailure, err)
	}

	return dc.buf.written, nil
}

func (dc *deflateCompressor) release() {}

// deflateReader is the minimal surface this package needs from a
// decompressing reader, independent of each library's own Reset signature:
// flate and zlib readers take a dictionary argument, gzip's does not.
type deflateReader interface {
	io.Reader
	resetTo(r io.Reader) error
}

// dictResetter is the Reset shape flate.Reader and zlib's reader type both
// implement.
type dictResetter interface {
	io.Reader
	Reset(r io.Reader, dict []byte) error
}

// dictReaderAdapter satisfies deflateReader for flate and zlib readers,
// always resetting with a nil dictionary.
type dictReaderAdapter struct {
	dictResetter
}

func (a dictReaderAdapter) resetTo(r io.Reader) error {
	return a.Reset(r, nil)
}

// gzipReaderAdapter satisfies deflateReader for *gzip.Reader, whose Reset
// takes no dictionary argument.
type gzipReaderAdapter struct {
	*gzip.Reader
}

func (a gzipReaderAdapter) resetTo(r io.Reader) error {
	return a.Reset(r)
}

type deflateDecompressor struct {
	framing CodecKind
	src     *sliceReader
	r       deflateReader
}

func (c *deflateCapability) newDecompressor() (decompressor, error) {
	src := &sliceReader{}

	var r deflateReader
	switch c.framing {
	case Deflate:
		dr, ok := flate.NewReader(src).(dictResetter)
		if !ok {
			return nil, fmt.Errorf("%w: flate reader does not support reset", ErrCodecInit)
		}
		r = dictReaderAdapter{dr}
	case Gzip:
		// gzip.NewReader parses a header on construction; a zero Reader
		// parses it on its first Reset, in decompress, instead.
		r = gzipReaderAdapter{new(gzip.Reader)}
	case Zlib:
		// zlib.NewReader parses a header on construction and offers no
		// zero value, so it is built over a bare zlib header here;
		// decompress resets it onto the real input before any read.
		src.reset([]byte{0x78, 0x9c})
		zr, err := zlib.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCodecInit, err)
		}
		dr, ok := zr.(dictResetter)
		if !ok {
			return nil, fmt.Errorf("%w: zlib reader does not support reset", ErrCodecInit)
		}
		r = dictReaderAdapter{dr}
	default:
		panic("codec: deflateCapability used with non-deflate framing")
	}

	return &deflateDecompressor{framing: c.framing, src: src, r: r}, nil
}

func (dd *deflateDecompressor) decompress(in, out []byte) (int, error) {
	dd.src.reset(in)
	if err := dd.r.resetTo(dd.src); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadData, err)
	}

	n, err := readAllInto(dd.r, out)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadData, err)
	}

	return n, nil
}

func (dd *deflateDecompressor) release() {}

// readAllInto reads r to EOF into out, returning the number of bytes
// written. It returns an error if r has more data than out can hold — out
// is always sized to this engine's own chunk size, so a mismatch
// indicates corrupt input rather than a legitimately larger chunk.
func readAllInto(r io.Reader, out []byte) (int, error) {
	n := 0
	for {
		if n == len(out) {
			// out is exhausted; probe for more data to distinguish a
			// clean EOF from an oversized stream.
			var probe [1]byte
			m, err := r.Read(probe[:])
			if m > 0 {
				return n, fmt.Errorf("decompressed data exceeds chunk capacity")
			}
			if err == io.EOF {
				return n, nil
			}

			return n, err
		}

		m, err := r.Read(out[n:])
		n += m
		if err != nil {
			if err == io.EOF {
				return n, nil
			}

			return n, err
		}
	}
}
