package codec

// Instance holds one algorithm family's configuration — kind and level —
// plus its context free list. It is the unit the pipeline package drives a
// compress or decompress stream operation against.
//
// An Instance allocates no codec contexts at construction; contexts are
// created lazily the first time a stream operation acquires one.
type Instance struct {
	k    CodecKind
	pool *contextPool
}

// New creates a Instance for kind at level. Infallible — it allocates no
// codec contexts.
func New(kind CodecKind, level Level) *Instance {
	cap := newCapability(kind)

	return &Instance{
		k:    kind,
		pool: newContextPool(cap, level),
	}
}

// Kind reports which CodecKind this Instance was created with.
func (inst *Instance) Kind() CodecKind {
	return inst.k
}

// Level reports the Level this Instance was created with. Immutable for
// the Instance's lifetime — a level change requires a new Instance.
func (inst *Instance) Level() Level {
	return inst.pool.lvl
}

// Bound returns an upper bound on the compressed size of an uncompressed
// buffer of length n, for this Instance's codec family.
func (inst *Instance) Bound(n int) int {
	return inst.pool.cap.bound(n)
}

// CompressorHandle is an acquired, single-owner compression context. It
// must be returned to its Instance via ReleaseCompressor or
// DiscardCompressor exactly once.
type CompressorHandle struct {
	c compressor
}

// Compress compresses in into out and returns the number of bytes written.
// out must have length at least Bound(len(in)). level is passed through on
// every call — honoured per call for codec families that support it,
// ignored in favor of the baked-in context level otherwise. The pipeline
// driver always passes the Instance's configured level.
func (h *CompressorHandle) Compress(in, out []byte, level Level) (int, error) {
	n, err := h.c.compress(in, out, level)
	if err != nil {
		return 0, err
	}

	return n, nil
}

// DecompressorHandle is an acquired, single-owner decompression context. It
// must be returned to its Instance via ReleaseDecompressor or
// DiscardDecompressor exactly once.
type DecompressorHandle struct {
	d decompressor
}

// Decompress decompresses in into out and returns the number of bytes
// written.
func (h *DecompressorHandle) Decompress(in, out []byte) (int, error) {
	n, err := h.d.decompress(in, out)
	if err != nil {
		return 0, err
	}

	return n, nil
}

// AcquireCompressor takes a compressor context from the free list, creating
// one if the list is empty.
func (inst *Instance) AcquireCompressor() (*CompressorHandle, error) {
	c, err := inst.pool.acquireCompressor()
	if err != nil {
		return nil, err
	}

	return &CompressorHandle{c: c}, nil
}

// ReleaseCompressor returns h's context to the free list for reuse.
func (inst *Instance) ReleaseCompressor(h *CompressorHandle) {
	inst.pool.releaseCompressor(h.c)
}

// DiscardCompressor destroys h's context instead of recycling it. Use this
// after a failed compress call, whose context state may be inconsistent.
func (inst *Instance) DiscardCompressor(h *CompressorHandle) {
	inst.pool.discardCompressor(h.c)
}

// AcquireDecompressor takes a decompressor context from the free list,
// creating one if the list is empty.
func (inst *Instance) AcquireDecompressor() (*DecompressorHandle, error) {
	d, err := inst.pool.acquireDecompressor()
	if err != nil {
		return nil, err
	}

	return &DecompressorHandle{d: d}, nil
}

// ReleaseDecompressor returns h's context to the free list for reuse.
func (inst *Instance) ReleaseDecompressor(h *DecompressorHandle) {
	inst.pool.releaseDecompressor(h.d)
}

// DiscardDecompressor destroys h's context instead of recycling it. Use
// this after a failed decompress call.
func (inst *Instance) DiscardDecompressor(h *DecompressorHandle) {
	inst.pool.discardDecompressor(h.d)
}

// LiveContexts reports the number of contexts currently acquired but not
// yet released or discarded. Exposed for tests that verify context-pool
// reuse stays bounded across repeated stream operations.
func (inst *Instance) LiveContexts() int64 {
	return inst.pool.live()
}

// PooledContexts reports the number of contexts currently sitting in the
// free list.
func (inst *Instance) PooledContexts() int {
	return inst.pool.pooled()
}

// Destroy releases every pooled codec context. Must not be called while a
// stream operation is in flight.
func (inst *Instance) Destroy() {
	inst.pool.destroy()
}
