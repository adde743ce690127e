package codec

import "errors"

// CodecKind selects which algorithm family a Instance uses. Deflate, Gzip,
// and Zlib share one implementation that only changes which framing it
// writes; Zstd is a distinct implementation.
type CodecKind int

const (
	// Deflate produces raw DEFLATE streams with no header or trailer.
	Deflate CodecKind = iota
	// Gzip produces gzip-framed DEFLATE streams (header, CRC32, size trailer).
	Gzip
	// Zlib produces zlib-framed DEFLATE streams (2-byte header, Adler-32 trailer).
	Zlib
	// Zstd produces Zstandard frames.
	Zstd
)

// String returns a human-readable name for k, mainly for error messages and logs.
func (k CodecKind) String() string {
	switch k {
	case Deflate:
		return "deflate"
	case Gzip:
		return "gzip"
	case Zlib:
		return "zlib"
	case Zstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// Level is a symbolic compression level, scaled to each codec's native
// range at context-creation time. Once a Instance is created with a Level,
// every context it pools is created at that level — levels are immutable
// for the lifetime of a Instance.
type Level struct {
	preset   levelPreset
	explicit int32
}

type levelPreset int

const (
	presetNone levelPreset = iota
	presetFastest
	presetFast
	presetDefault
	presetGood
	presetBest
	presetExplicit
)

// Fastest favors speed over ratio.
var Fastest = Level{preset: presetFastest}

// Fast favors speed, with some ratio improvement over Fastest.
var Fast = Level{preset: presetFast}

// Default is each codec's own recommended balance of speed and ratio.
var Default = Level{preset: presetDefault}

// Good favors ratio, with some speed cost over Default.
var Good = Level{preset: presetGood}

// Best favors ratio over speed.
var Best = Level{preset: presetBest}

// Explicit escapes the symbolic presets and requests a codec-native level
// number directly. Out-of-range values are clamped to the codec's native
// range rather than rejected.
func Explicit(level int32) Level {
	return Level{preset: presetExplicit, explicit: level}
}

// Sentinel errors for codec failures. The pipeline driver returns whichever
// failure of a stream operation it observes first.
var (
	// ErrCodecInit reports that a compressor or decompressor context could
	// not be allocated.
	ErrCodecInit = errors.New("codec: context allocation failed")
	// ErrCompressFailure reports that a compress call failed despite an
	// output buffer sized to bound(input).
	ErrCompressFailure = errors.New("codec: compression failed")
	// ErrBadData reports that a decompress call rejected its input.
	ErrBadData = errors.New("codec: decompression rejected input")
)

// compressor is an opaque, single-owner compression context.
type compressor interface {
	// compress writes the compressed form of in into out, returning the
	// number of bytes written. out is guaranteed to have length at least
	// capability.bound(len(in)). level is honoured per call by codec
	// families whose native library supports it (Zstd); the deflate family
	// ignores it and uses the level baked in at newCompressor time.
	compress(in, out []byte, level Level) (int, error)
	// release destroys the context's underlying resources. Called when the
	// context pool discards rather than recycles a context.
	release()
}

// decompressor is an opaque, single-owner decompression context.
type decompressor interface {
	// decompress writes the decompressed form of in into out, returning the
	// number of bytes written.
	decompress(in, out []byte) (int, error)
	release()
}

// capability is the six-operation boundary each codec family implements
// once. A Instance dispatches to exactly one capability, fixed at
// construction, so the hot path never needs runtime dispatch across
// families.
type capability interface {
	// newCompressor allocates a compression context baked to level.
	newCompressor(level Level) (compressor, error)
	// newDecompressor allocates a decompression context. Decompression
	// contexts are not level-specific.
	newDecompressor() (decompressor, error)
	// bound returns an upper bound on the compressed size of an
	// uncompressed buffer of length n.
	bound(n int) int
}

// newCapability constructs the capability implementation for kind.
func newCapability(kind CodecKind) capability {
	switch kind {
	case Deflate, Gzip, Zlib:
		return &deflateCapability{framing: kind}
	case Zstd:
		return &zstdCapability{}
	default:
		panic("codec: unknown CodecKind")
	}
}
