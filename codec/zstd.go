package codec

// zstdCapability implements the capability for Zstandard. Unlike the
// deflate family, Zstandard's compressors honour a level passed per call
// (see compressor.compress), so this capability's newCompressor does not
// need to bake a level into anything stateful — the concrete implementation
// selected by build tag (zstd_cgo.go or zstd_pure.go) still accepts lvl so
// the context it creates, if any, starts configured consistently.
type zstdCapability struct{}

// zstdLevel maps a symbolic Level to Zstandard's native 1-22 range.
// Out-of-range Explicit values clamp rather than error.
func zstdLevel(lvl Level) int {
	var n int
	switch lvl.preset {
	case presetFastest:
		n = 1
	case presetFast:
		n = 3
	case presetDefault, presetNone:
		n = 9
	case presetGood:
		n = 19
	case presetBest:
		n = 22
	case presetExplicit:
		n = int(lvl.explicit)
	default:
		n = 3
	}

	if n < 1 {
		n = 1
	}
	if n > 22 {
		n = 22
	}

	return n
}
