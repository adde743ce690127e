package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	capacity := 1024
	bb := NewByteBuffer(capacity)

	require.NotNil(t, bb)
	require.NotNil(t, bb.B)
	assert.Equal(t, 0, len(bb.B), "new buffer should have zero length")
	assert.Equal(t, capacity, cap(bb.B), "new buffer should have specified capacity")
}

func TestByteBuffer_Bytes(t *testing.T) {
	bb := NewByteBuffer(64)
	bb.B = append(bb.B, []byte("hello")...)

	got := bb.Bytes()

	assert.Equal(t, []byte("hello"), got)
	assert.True(t, &bb.B[0] == &got[0], "Bytes() should return the same underlying slice")
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(64)
	bb.B = append(bb.B, []byte("some data")...)
	originalCap := cap(bb.B)

	bb.Reset()

	assert.Equal(t, 0, len(bb.B), "Reset should clear the buffer length")
	assert.Equal(t, originalCap, cap(bb.B), "Reset should preserve capacity")
}

func TestByteBuffer_LenCap(t *testing.T) {
	bb := NewByteBuffer(64)
	assert.Equal(t, 0, bb.Len())

	bb.B = append(bb.B, make([]byte, 10)...)
	assert.Equal(t, 10, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), 10)
}

func TestByteBuffer_SetLength(t *testing.T) {
	bb := NewByteBuffer(64)
	bb.SetLength(32)
	assert.Equal(t, 32, bb.Len())

	assert.Panics(t, func() { bb.SetLength(-1) })
	assert.Panics(t, func() { bb.SetLength(1000) })
}

func TestByteBuffer_Grow_SufficientCapacity(t *testing.T) {
	bb := NewByteBuffer(1024)
	originalCap := cap(bb.B)

	bb.Grow(100)

	assert.Equal(t, originalCap, cap(bb.B), "should not reallocate when capacity is sufficient")
}

func TestByteBuffer_Grow_Reallocates(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.SetLength(16)

	bb.Grow(1024)

	assert.GreaterOrEqual(t, cap(bb.B), 16+1024)
	assert.Equal(t, 16, len(bb.B), "length should not change")
}

func TestByteBuffer_Grow_PreservesData(t *testing.T) {
	bb := NewByteBuffer(16)
	testData := []byte("important data that must be preserved")
	bb.B = append(bb.B[:0], testData...)

	bb.Grow(1024)

	assert.Equal(t, testData, bb.B, "data should be preserved after growth")
}

func TestByteBufferPool_GetHasDefaultLength(t *testing.T) {
	pool := NewByteBufferPool(8192)

	bb := pool.Get()
	require.NotNil(t, bb)
	assert.Equal(t, 8192, bb.Len(), "pool.Get should return a buffer of the default length")

	pool.Put(bb)
}

func TestByteBufferPool_Reuse(t *testing.T) {
	pool := NewByteBufferPool(1024)

	bb1 := pool.Get()
	bb1.B[0] = 0xFF
	pool.Put(bb1)

	bb2 := pool.Get()
	assert.Equal(t, 1024, bb2.Len())
	// Put/Get don't guarantee identity is reused under a single goroutine's
	// observation, but the pool must always reset length to defaultSize.
}

func TestByteBufferPool_Put_Nil(t *testing.T) {
	pool := NewByteBufferPool(1024)
	assert.NotPanics(t, func() { pool.Put(nil) })
}

func TestByteBufferPool_DiscardsOversizedBuffers(t *testing.T) {
	pool := NewByteBufferPool(1024)

	bb := pool.Get()
	bb.Grow(ChunkBufferMaxThreshold + 1)
	pool.Put(bb)

	bb2 := pool.Get()
	assert.LessOrEqual(t, cap(bb2.B), ChunkBufferMaxThreshold, "oversized buffer should not have been pooled")
}

func TestByteBufferPool_ConcurrentAccess(t *testing.T) {
	pool := NewByteBufferPool(256)

	const numGoroutines = 50
	const numIterations = 200

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < numIterations; j++ {
				bb := pool.Get()
				assert.Equal(t, 256, bb.Len())
				pool.Put(bb)
			}
		}()
	}

	wg.Wait()
}

func BenchmarkByteBufferPool_GetPut(b *testing.B) {
	pool := NewByteBufferPool(65536)

	b.ResetTimer()
	for b.Loop() {
		bb := pool.Get()
		pool.Put(bb)
	}
}
