package pool

import "sync"

// ChunkBufferMaxThreshold bounds the capacity of a buffer this package will
// retain for reuse. Buffers grown past it (which should not happen for the
// fixed-size chunk and bound buffers the pipeline package requests, but can
// happen for a caller-supplied size) are left for the garbage collector
// instead of bloating the pool.
const ChunkBufferMaxThreshold = 1024 * 1024 * 4 // 4MiB

// ByteBuffer is a reusable, growable byte slice.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// SetLength sets the length of the buffer to n.
// Panics if n is negative or greater than the capacity.
func (bb *ByteBuffer) SetLength(n int) {
	if n < 0 || n > cap(bb.B) {
		panic("SetLength: invalid length")
	}
	bb.B = bb.B[:n]
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes
// without reallocating. If the buffer has sufficient capacity, Grow does
// nothing.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+requiredBytes)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// ByteBufferPool is a pool of fixed-capacity ByteBuffers.
//
// It uses sync.Pool internally to manage the buffers. Every buffer the pool
// hands out is reset to length defaultSize; callers that need a shorter
// slice should reslice, not shrink the pool's notion of default size.
type ByteBufferPool struct {
	pool        sync.Pool
	defaultSize int
}

// NewByteBufferPool creates a new ByteBufferPool whose buffers default to
// length defaultSize.
func NewByteBufferPool(defaultSize int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		defaultSize: defaultSize,
	}
}

// Get retrieves a ByteBuffer of length p.defaultSize from the pool,
// allocating a new one if the pool is empty.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	bb.Grow(p.defaultSize)
	bb.SetLength(p.defaultSize)

	return bb
}

// Put returns a ByteBuffer to the pool for reuse. Buffers whose capacity has
// grown past ChunkBufferMaxThreshold are dropped instead of pooled.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bb.Cap() > ChunkBufferMaxThreshold {
		return
	}

	bb.Reset()
	p.pool.Put(bb)
}
