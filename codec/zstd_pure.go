//go:build !cgo

package codec

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// bound returns a conservative upper bound on the Zstandard frame size for
// n uncompressed bytes: klauspost/compress/zstd exposes no equivalent of
// gozstd.CompressBound, so this mirrors the well-known worst-case
// expansion zstd's own ZSTD_compressBound uses directly.
func (c *zstdCapability) bound(n int) int {
	return n + (n >> 8) + 128
}

// zstdWriterCompressor wraps a pooled *zstd.Encoder the same way
// deflateCompressor wraps a *flate.Writer: reset onto a fixed-capacity
// limitedBuffer, write the whole input, close to finalize the frame.
type zstdWriterCompressor struct {
	buf   *limitedBuffer
	enc   *zstd.Encoder
	level int
}

func newZstdEncoder(w *limitedBuffer, level int) (*zstd.Encoder, error) {
	return zstd.NewWriter(w,
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)),
		zstd.WithEncoderCRC(false),
	)
}

func (c *zstdCapability) newCompressor(lvl Level) (compressor, error) {
	buf := newLimitedBuffer()
	level := zstdLevel(lvl)
	enc, err := newZstdEncoder(buf, level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCodecInit, err)
	}

	return &zstdWriterCompressor{buf: buf, enc: enc, level: level}, nil
}

// compress honours level per call: the pure-Go encoder only accepts a level
// at construction time, so a level different from the one this context is
// currently configured at forces a fresh *zstd.Encoder for this call, which
// becomes the context's encoder going forward.
func (zc *zstdWriterCompressor) compress(in, out []byte, level Level) (int, error) {
	zc.buf.reset(out)

	wantLevel := zstdLevel(level)
	if wantLevel != zc.level {
		enc, err := newZstdEncoder(zc.buf, wantLevel)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrCodecInit, err)
		}
		_ = zc.enc.Close()
		zc.enc = enc
		zc.level = wantLevel
	} else {
		zc.enc.Reset(zc.buf)
	}

	if _, err := zc.enc.Write(in); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCompressFailure, err)
	}
	if err := zc.enc.Close(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCompressFailure, err)
	}

	return zc.buf.written, nil
}

func (zc *zstdWriterCompressor) release() {
	_ = zc.enc.Close()
}

// zstdReaderDecompressor wraps a *zstd.Decoder, reset onto a new input
// slice for each decompress call rather than reallocated.
type zstdReaderDecompressor struct {
	src *sliceReader
	dec *zstd.Decoder
}

func (c *zstdCapability) newDecompressor() (decompressor, error) {
	src := &sliceReader{}
	dec, err := zstd.NewReader(src,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(false),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCodecInit, err)
	}

	return &zstdReaderDecompressor{src: src, dec: dec}, nil
}

func (zd *zstdReaderDecompressor) decompress(in, out []byte) (int, error) {
	zd.src.reset(in)
	if err := zd.dec.Reset(zd.src); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadData, err)
	}

	n, err := readAllInto(zd.dec, out)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadData, err)
	}

	return n, nil
}

func (zd *zstdReaderDecompressor) release() {
	zd.dec.Close()
}
