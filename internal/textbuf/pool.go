package textbuf

import "sync"

// Pool recycles rune slabs across pipeline evaluations. Lease and release
// are safe for concurrent use from many evaluation workers.
type Pool struct {
	slabs sync.Pool
}

func NewPool() *Pool {
	return &Pool{}
}

func (p *Pool) lease(capacity int) []rune {
	if v := p.slabs.Get(); v != nil {
		slab := v.([]rune)
		if cap(slab) >= capacity {
			return slab[:capacity]
		}
		// Too small for this lease; drop it and let the GC take it.
	}
	return make([]rune, capacity)
}

func (p *Pool) release(slab []rune) {
	if slab == nil {
		return
	}
	p.slabs.Put(slab[:cap(slab)])
}
