// Package buffer implements a dynamically growing byte container with a
// hard maximum length, used to accumulate token keys and string data
// without letting a pathological input grow a buffer without bound.
package buffer

import (
	"fmt"
	"math"
)

// Buffer is a byte container that grows by doubling its capacity on
// demand, up to a caller-supplied maximum. Appending past the maximum is
// a reportable failure rather than a panic: callers use this to implement
// MAX_BLOCK-style bounds without aborting the process.
type Buffer struct {
	data    []byte
	maxCap  int
	sawZero bool
}

// ErrTooLong is returned by Append when appending a byte would take the
// buffer past its configured maximum capacity.
var ErrTooLong = fmt.Errorf("buffer: append would exceed maximum length")

// New creates a Buffer with the given initial capacity and hard maximum.
// maxCap must satisfy maxCap <= math.MaxInt/2 so that capacity doubling
// cannot overflow; New panics if that invariant is violated, since it is a
// programmer error in construction, not an input error.
func New(initialCap, maxCap int) *Buffer {
	if maxCap > math.MaxInt/2 || maxCap < 0 {
		panic("buffer: maxCap out of range")
	}
	if initialCap < 0 {
		panic("buffer: initialCap out of range")
	}
	if initialCap > maxCap {
		initialCap = maxCap
	}
	return &Buffer{
		data:   make([]byte, 0, initialCap),
		maxCap: maxCap,
	}
}

// Reset empties the buffer. When keepAllocation is true the underlying
// array is kept (only the length is reset), matching the common
// tight-loop tokenizer pattern of reusing one buffer across many tokens;
// when false the backing array is released for GC.
func (b *Buffer) Reset(keepAllocation bool) {
	if keepAllocation {
		b.data = b.data[:0]
	} else {
		b.data = nil
	}
	b.sawZero = false
}

// Append adds a single byte to the buffer. It fails without mutating the
// buffer if doing so would exceed the configured maximum capacity.
func (b *Buffer) Append(c byte) error {
	if len(b.data) >= b.maxCap {
		return ErrTooLong
	}
	if len(b.data) == cap(b.data) {
		newCap := cap(b.data) * 2
		if newCap == 0 {
			newCap = 16
		}
		if newCap > b.maxCap {
			newCap = b.maxCap
		}
		grown := make([]byte, len(b.data), newCap)
		copy(grown, b.data)
		b.data = grown
	}
	b.data = append(b.data, c)
	if c == 0 {
		b.sawZero = true
	}
	return nil
}

// Len returns the number of bytes currently held.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes returns the live view of the buffer's contents. The slice is
// invalidated by the next Append or Reset call; callers that need to
// retain the data must copy it.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// String is a convenience accessor equivalent to string(b.Bytes()).
func (b *Buffer) String() string {
	return string(b.data)
}

// Last returns the final byte and true, or 0 and false if the buffer is
// empty.
func (b *Buffer) Last() (byte, bool) {
	if len(b.data) == 0 {
		return 0, false
	}
	return b.data[len(b.data)-1], true
}

// DropLast removes the final byte, if any.
func (b *Buffer) DropLast() {
	if len(b.data) == 0 {
		return
	}
	if b.data[len(b.data)-1] == 0 {
		// Conservatively re-scan; zero bytes are rare in practice and
		// buffers are bounded by MAX_BLOCK.
		b.data = b.data[:len(b.data)-1]
		b.sawZero = false
		for _, c := range b.data {
			if c == 0 {
				b.sawZero = true
				break
			}
		}
		return
	}
	b.data = b.data[:len(b.data)-1]
}

// HadZero reports whether a zero byte has ever been appended to the
// buffer since the last Reset. Callers use this to know whether the
// buffer's contents are safely C-string-compatible.
func (b *Buffer) HadZero() bool {
	return b.sawZero
}
