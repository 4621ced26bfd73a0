package ui

import (
	"io"
	"sync"
)

// AudioRingBuffer is a thread-safe byte ring implementing io.Reader.
// The emulation goroutine produces via Write and oto's player consumes
// via Read. Read blocks while empty; Write never blocks and instead
// drops the oldest bytes on overflow so the producer cannot stall.
type AudioRingBuffer struct {
	buf      []byte
	readPos  int
	writePos int
	count    int
	capacity int
	mu       sync.Mutex
	cond     *sync.Cond
	closed   bool
}

// NewAudioRingBuffer creates a ring buffer with the given capacity in bytes.
func NewAudioRingBuffer(capacity int) *AudioRingBuffer {
	rb := &AudioRingBuffer{
		buf:      make([]byte, capacity),
		capacity: capacity,
	}
	rb.cond = sync.NewCond(&rb.mu)
	return rb
}

// Write adds data to the buffer, discarding the oldest bytes if there
// is not enough free space.
func (rb *AudioRingBuffer) Write(p []byte) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	if rb.closed || len(p) == 0 {
		return
	}

	// Anything beyond one full capacity would be overwritten anyway
	if len(p) > rb.capacity {
		p = p[len(p)-rb.capacity:]
	}

	// Evict oldest bytes to make room
	overflow := rb.count + len(p) - rb.capacity
	if overflow > 0 {
		rb.readPos = (rb.readPos + overflow) % rb.capacity
		rb.count -= overflow
	}

	rb.count += len(p)
	for len(p) > 0 {
		n := copy(rb.buf[rb.writePos:], p)
		rb.writePos = (rb.writePos + n) % rb.capacity
		p = p[n:]
	}

	rb.cond.Signal()
}

// Read implements io.Reader. Blocks until data is available or the
// buffer is closed. Returns io.EOF once closed and drained.
func (rb *AudioRingBuffer) Read(p []byte) (int, error) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	for rb.count == 0 {
		if rb.closed {
			return 0, io.EOF
		}
		rb.cond.Wait()
	}

	n := len(p)
	if n > rb.count {
		n = rb.count
	}

	// Copy out up to n bytes, wrapping at the end of the ring
	for read := 0; read < n; {
		end := rb.readPos + (n - read)
		if end > rb.capacity {
			end = rb.capacity
		}
		c := copy(p[read:], rb.buf[rb.readPos:end])
		rb.readPos = (rb.readPos + c) % rb.capacity
		read += c
	}
	rb.count -= n

	return n, nil
}

// Buffered returns the number of bytes currently in the buffer.
func (rb *AudioRingBuffer) Buffered() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.count
}

// Clear resets the buffer, discarding all data.
func (rb *AudioRingBuffer) Clear() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.readPos = 0
	rb.writePos = 0
	rb.count = 0
}

// Close signals shutdown and unblocks any goroutine waiting in Read.
func (rb *AudioRingBuffer) Close() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.closed = true
	rb.cond.Broadcast()
}
