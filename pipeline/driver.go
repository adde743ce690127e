// Package pipeline implements the pipelined, ordered, bounded-concurrency
// streaming engine: the Compress and Decompress drivers that partition a
// byte stream into chunks, dispatch each chunk to a worker pool, and write
// results back to the sink in the exact order their inputs were read.
package pipeline

import (
	"encoding/binary"
	"fmt"

	"github.com/colinmarc/pzip/codec"
	"github.com/colinmarc/pzip/internal/pool"
	"github.com/colinmarc/pzip/workerpool"
)

// ChunkSize is the fixed size of one uncompressed chunk. Compile-time
// fixed — the engine never adapts it to the input.
const ChunkSize = 65536

// WindowSize is the maximum number of jobs the driver keeps in flight at
// once. It sets the memory ceiling and the maximum parallelism exposed by
// one stream operation, regardless of worker-pool size.
const WindowSize = 16

var chunkBufPool = pool.NewByteBufferPool(ChunkSize)

// Compress drives the compression pipeline to completion, reading from src
// and writing a framed container to sink. On error, partial output may
// already be on sink; the engine never truncates or rolls it back.
func Compress(inst *codec.Instance, workers workerpool.Pool, src Source, sink Sink) error {
	return compressWindowed(inst, workers, src, sink, WindowSize)
}

// compressWindowed is Compress parameterized over the in-flight job window,
// so the driver's behavior at window sizes other than WindowSize is
// directly testable within this package.
func compressWindowed(inst *codec.Instance, workers workerpool.Pool, src Source, sink Sink, window int) error {
	h, err := inst.AcquireCompressor()
	if err != nil {
		return fmt.Errorf("%w: %v", codec.ErrCodecInit, err)
	}
	outBound := inst.Bound(ChunkSize)
	inst.ReleaseCompressor(h)

	boundBufPool := pool.NewByteBufferPool(outBound)
	level := inst.Level()

	q := newJobQueue(window)
	eof := false
	var firstErr error

	for q.Len() > 0 || !eof {
		for !q.Full() && !eof {
			inBuf := chunkBufPool.Get()
			n, rerr := src.ReadSome(inBuf.B)
			if rerr != nil {
				chunkBufPool.Put(inBuf)
				firstErr = rerr
				eof = true

				break
			}
			if n == 0 {
				chunkBufPool.Put(inBuf)
				eof = true

				break
			}
			inBuf.SetLength(n)

			outBuf := boundBufPool.Get()
			job := newJob(inBuf.Bytes(), outBuf.Bytes(),
				func() { chunkBufPool.Put(inBuf) },
				func() { boundBufPool.Put(outBuf) },
			)
			q.PushBack(job)

			if serr := workers.Submit(func() { runCompress(inst, level, job) }); serr != nil {
				job.err = fmt.Errorf("%w: %v", ErrOutOfMemory, serr)
				job.signalDone()
				firstErr = job.err
				eof = true

				break
			}
		}

		if q.Len() == 0 {
			continue
		}

		job := q.PopFront()
		job.Wait()

		if job.err != nil {
			if firstErr == nil {
				firstErr = job.err
			}
			job.Release()
			eof = true

			continue
		}

		if firstErr == nil {
			if werr := writeFrame(sink, job.out[:job.resultSize]); werr != nil {
				firstErr = werr
				eof = true
			}
		}

		job.Release()
	}

	return firstErr
}

func runCompress(inst *codec.Instance, level codec.Level, job *Job) {
	defer job.signalDone()

	h, err := inst.AcquireCompressor()
	if err != nil {
		job.err = fmt.Errorf("%w: %v", codec.ErrCodecInit, err)

		return
	}

	n, err := h.Compress(job.in, job.out, level)
	if err != nil {
		job.err = err
		inst.DiscardCompressor(h)

		return
	}

	job.resultSize = n
	inst.ReleaseCompressor(h)
}

func writeFrame(sink Sink, payload []byte) error {
	var lenPrefix [4]byte
	binary.LittleEndian.PutUint32(lenPrefix[:], uint32(len(payload)))

	if err := sink.Write(lenPrefix[:]); err != nil {
		return err
	}

	return sink.Write(payload)
}

// Decompress drives the decompression pipeline to completion, reading a
// framed container from src and writing the recovered bytes to sink.
func Decompress(inst *codec.Instance, workers workerpool.Pool, src Source, sink Sink) error {
	return decompressWindowed(inst, workers, src, sink, WindowSize)
}

// decompressWindowed is Decompress parameterized over the in-flight job
// window, so the driver's behavior at window sizes other than WindowSize
// is directly testable within this package.
func decompressWindowed(inst *codec.Instance, workers workerpool.Pool, src Source, sink Sink, window int) error {
	q := newJobQueue(window)
	eof := false
	var firstErr error

	for q.Len() > 0 || !eof {
		for !q.Full() && !eof {
			length, isEOF, lerr := readFrameLength(src)
			if lerr != nil {
				firstErr = lerr
				eof = true

				break
			}
			if isEOF {
				eof = true

				break
			}

			inBuf := make([]byte, length)
			if ferr := src.ReadFull(inBuf); ferr != nil {
				firstErr = ferr
				eof = true

				break
			}

			outBuf := chunkBufPool.Get()
			job := newJob(inBuf, outBuf.Bytes(), nil,
				func() { chunkBufPool.Put(outBuf) },
			)
			q.PushBack(job)

			if serr := workers.Submit(func() { runDecompress(inst, job) }); serr != nil {
				job.err = fmt.Errorf("%w: %v", ErrOutOfMemory, serr)
				job.signalDone()
				firstErr = job.err
				eof = true

				break
			}
		}

		if q.Len() == 0 {
			continue
		}

		job := q.PopFront()
		job.Wait()

		if job.err != nil {
			if firstErr == nil {
				firstErr = job.err
			}
			job.Release()
			eof = true

			continue
		}

		if firstErr == nil {
			if werr := sink.Write(job.out[:job.resultSize]); werr != nil {
				firstErr = werr
				eof = true
			}
		}

		job.Release()
	}

	return firstErr
}

func runDecompress(inst *codec.Instance, job *Job) {
	defer job.signalDone()

	h, err := inst.AcquireDecompressor()
	if err != nil {
		job.err = fmt.Errorf("%w: %v", codec.ErrCodecInit, err)

		return
	}

	n, err := h.Decompress(job.in, job.out)
	if err != nil {
		job.err = err
		inst.DiscardDecompressor(h)

		return
	}

	job.resultSize = n
	inst.ReleaseDecompressor(h)
}

// readFrameLength reads one frame's u32-LE length prefix. isEOF reports a
// clean end of stream (no bytes read at all, a valid place to stop); a
// partial read of the prefix is ErrTruncatedFrame, never isEOF.
func readFrameLength(src Source) (length uint32, isEOF bool, err error) {
	var buf [4]byte
	n := 0

	for n < len(buf) {
		m, rerr := src.ReadSome(buf[n:])
		if rerr != nil {
			return 0, false, rerr
		}
		if m == 0 {
			if n == 0 {
				return 0, true, nil
			}

			return 0, false, ErrTruncatedFrame
		}
		n += m
	}

	length = binary.LittleEndian.Uint32(buf[:])
	if length == 0 {
		return 0, false, fmt.Errorf("%w: zero-length frame", ErrTruncatedFrame)
	}

	return length, false, nil
}
