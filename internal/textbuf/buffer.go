package textbuf

// Buffer is a pair of same-capacity rune buffers used to run a chain of text
// transforms without per-step string allocation. A transform reads the valid
// prefix of the source buffer via ReadView, writes into the destination
// buffer via WriteView, and then calls Commit to swap the two roles. A
// transform whose worst-case output exceeds the current capacity must call
// EnsureCapacity before writing.
//
// Views returned by ReadView and WriteView are invalidated by Commit and
// EnsureCapacity; callers must re-acquire them after either call.
type Buffer struct {
	pool *Pool

	src []rune
	dst []rune

	length   int
	released bool
}

// New leases two buffers from the pool and copies text into the source
// buffer. capacityHint may be larger than len(text) when the caller expects
// the pipeline to grow the text.
func New(pool *Pool, text string, capacityHint int) *Buffer {
	runes := []rune(text)
	capacity := capacityHint
	if capacity < len(runes) {
		capacity = len(runes)
	}
	if capacity == 0 {
		capacity = 1
	}

	b := &Buffer{
		pool: pool,
		src:  pool.lease(capacity),
		dst:  pool.lease(capacity),
	}
	copy(b.src, runes)
	b.length = len(runes)
	return b
}

// Len reports the number of valid runes in the source buffer.
func (b *Buffer) Len() int {
	return b.length
}

// Cap reports the current capacity of each buffer.
func (b *Buffer) Cap() int {
	return len(b.src)
}

// ReadView returns the valid prefix of the source buffer. The view is
// read-only by contract and is invalidated by Commit and EnsureCapacity.
func (b *Buffer) ReadView() []rune {
	return b.src[:b.length]
}

// WriteView returns the full destination buffer for a transform to fill.
// Writing past its length is a bounds panic, never silent corruption.
func (b *Buffer) WriteView() []rune {
	return b.dst
}

// EnsureCapacity grows both buffers to at least required runes, preserving
// the valid prefix of the source buffer. Calling it with required at or
// below the current capacity changes nothing. required must be the
// transform's worst-case output length, not its expected one.
func (b *Buffer) EnsureCapacity(required int) {
	if required <= len(b.src) {
		return
	}
	capacity := len(b.src) * 2
	if capacity < required {
		capacity = required
	}

	src := b.pool.lease(capacity)
	dst := b.pool.lease(capacity)
	copy(src, b.src[:b.length])
	b.pool.release(b.src)
	b.pool.release(b.dst)
	b.src = src
	b.dst = dst
}

// Commit declares that the destination buffer holds newLength valid runes
// and swaps the source and destination roles. newLength beyond the current
// capacity is a programming defect in the calling transform.
func (b *Buffer) Commit(newLength int) {
	if newLength < 0 || newLength > len(b.dst) {
		panic("textbuf: commit length exceeds buffer capacity")
	}
	b.src, b.dst = b.dst, b.src
	b.length = newLength
}

// String materializes the current valid contents.
func (b *Buffer) String() string {
	return string(b.src[:b.length])
}

// Release returns both buffers to the pool. It must run on every exit path
// of a pipeline evaluation; callers defer it immediately after New. Further
// calls are no-ops so a defer stays safe next to an explicit release.
func (b *Buffer) Release() {
	if b.released {
		return
	}
	b.released = true
	b.pool.release(b.src)
	b.pool.release(b.dst)
	b.src = nil
	b.dst = nil
	b.length = 0
}
