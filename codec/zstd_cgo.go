//go:build cgo

package codec

import (
	"fmt"

	"github.com/valyala/gozstd"
)

// bound returns gozstd's own worst-case compressed-size calculation.
func (c *zstdCapability) bound(n int) int {
	return gozstd.CompressBound(n)
}

// zstdCgoCompressor holds a per-instance CCtx so this context pool does
// real work: the context is created on newCompressor and torn down on
// release, the same lifecycle every other codec family's context follows.
type zstdCgoCompressor struct {
	ctx *gozstd.CCtx
}

func (c *zstdCapability) newCompressor(lvl Level) (compressor, error) {
	return &zstdCgoCompressor{ctx: gozstd.NewCCtx()}, nil
}

func (zc *zstdCgoCompressor) compress(in, out []byte, level Level) (int, error) {
	dst := zc.ctx.CompressLevel(out[:0], in, zstdLevel(level))
	if len(dst) > len(out) {
		return 0, fmt.Errorf("%w: compressed size %d exceeds bound %d", ErrCompressFailure, len(dst), len(out))
	}

	n := copy(out, dst)

	return n, nil
}

func (zc *zstdCgoCompressor) release() {
	zc.ctx.Release()
}

// zstdCgoDecompressor holds a per-instance DCtx, released on teardown the
// same way.
type zstdCgoDecompressor struct {
	ctx *gozstd.DCtx
}

func (c *zstdCapability) newDecompressor() (decompressor, error) {
	return &zstdCgoDecompressor{ctx: gozstd.NewDCtx()}, nil
}

func (zd *zstdCgoDecompressor) decompress(in, out []byte) (int, error) {
	dst, err := zd.ctx.Decompress(out[:0], in)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadData, err)
	}
	if len(dst) > len(out) {
		return 0, fmt.Errorf("%w: decompressed size %d exceeds chunk capacity %d", ErrBadData, len(dst), len(out))
	}

	n := copy(out, dst)

	return n, nil
}

func (zd *zstdCgoDecompressor) release() {
	zd.ctx.Release()
}
