package codec

import "sync"

// contextPool is a mutex-guarded free list of compression and decompression
// contexts for one Instance. Contexts are created lazily on acquire and
// recycled on release; every pooled context is destroyed on teardown.
//
// A plain mutex around a slice-as-stack is adequate here: the critical
// section is a pointer pop or push, never a codec call, and acquisitions
// happen at most once per chunk.
type contextPool struct {
	mu sync.Mutex

	cap capability
	lvl Level

	compressors   []compressor
	decompressors []decompressor

	// acquired/released count every successful acquire and release, for
	// tests that verify the live context count stays bounded by the
	// driver's window size across repeated stream operations.
	acquired int64
	released int64
}

func newContextPool(cap capability, lvl Level) *contextPool {
	return &contextPool{cap: cap, lvl: lvl}
}

// acquireCompressor pops a free compressor if one exists, otherwise creates
// a new one at the pool's configured level.
func (p *contextPool) acquireCompressor() (compressor, error) {
	p.mu.Lock()
	n := len(p.compressors)
	if n > 0 {
		c := p.compressors[n-1]
		p.compressors = p.compressors[:n-1]
		p.acquired++
		p.mu.Unlock()

		return c, nil
	}
	p.mu.Unlock()

	c, err := p.cap.newCompressor(p.lvl)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.acquired++
	p.mu.Unlock()

	return c, nil
}

// releaseCompressor pushes c back onto the free list.
func (p *contextPool) releaseCompressor(c compressor) {
	p.mu.Lock()
	p.compressors = append(p.compressors, c)
	p.released++
	p.mu.Unlock()
}

// discardCompressor destroys c instead of recycling it — used when the
// context's state is possibly inconsistent after a failed call.
func (p *contextPool) discardCompressor(c compressor) {
	c.release()
	p.mu.Lock()
	p.released++
	p.mu.Unlock()
}

// acquireDecompressor pops a free decompressor if one exists, otherwise
// creates a new one.
func (p *contextPool) acquireDecompressor() (decompressor, error) {
	p.mu.Lock()
	n := len(p.decompressors)
	if n > 0 {
		d := p.decompressors[n-1]
		p.decompressors = p.decompressors[:n-1]
		p.acquired++
		p.mu.Unlock()

		return d, nil
	}
	p.mu.Unlock()

	d, err := p.cap.newDecompressor()
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.acquired++
	p.mu.Unlock()

	return d, nil
}

func (p *contextPool) releaseDecompressor(d decompressor) {
	p.mu.Lock()
	p.decompressors = append(p.decompressors, d)
	p.released++
	p.mu.Unlock()
}

func (p *contextPool) discardDecompressor(d decompressor) {
	d.release()
	p.mu.Lock()
	p.released++
	p.mu.Unlock()
}

// live returns the number of contexts currently outstanding (acquired but
// not yet released or discarded).
func (p *contextPool) live() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.acquired - p.released
}

// pooled returns the number of contexts currently sitting in the free list.
func (p *contextPool) pooled() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.compressors) + len(p.decompressors)
}

// destroy releases every pooled context. Must not be called while a stream
// operation is in flight.
func (p *contextPool) destroy() {
	p.mu.Lock()
	compressors := p.compressors
	decompressors := p.decompressors
	p.compressors = nil
	p.decompressors = nil
	p.mu.Unlock()

	for _, c := range compressors {
		c.release()
	}
	for _, d := range decompressors {
		d.release()
	}
}
