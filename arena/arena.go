// Package arena provides the fixed-size scratch block the simulation step
// allocates transient data from (body pairs, contacts). The block is sized
// once, reused every step and must be fully drained again by step exit;
// nothing allocated here survives across steps. Running out of scratch
// space is a capacity fault, not a recoverable error.
package arena

import (
	"unsafe"

	"github.com/milk9111/rigid/diag"
)

// alignment covers every type the world allocates from scratch.
const alignment = 16

// Arena is a bump allocator over one fixed byte block. Not safe for
// concurrent use; a single in-flight step owns it exclusively.
type Arena struct {
	buf  []byte
	head int
	high int
}

// New allocates an arena with the given capacity in bytes.
func New(size int) *Arena {
	diag.Assertf(size > 0, "size > 0", "arena size %d", size)
	return &Arena{buf: make([]byte, size)}
}

// Alloc returns n zeroed bytes from the block. The returned slice is only
// valid until the next Rewind or Reset that covers it.
func (a *Arena) Alloc(n int) []byte {
	diag.Assertf(n >= 0, "n >= 0", "alloc size %d", n)
	head := (a.head + alignment - 1) &^ (alignment - 1)
	diag.Assertf(head+n <= len(a.buf), "used+n <= size",
		"scratch arena exhausted: need %d bytes, %d of %d in use", n, a.head, len(a.buf))
	b := a.buf[head : head+n : head+n]
	clear(b)
	a.head = head + n
	if a.head > a.high {
		a.high = a.head
	}
	return b
}

// Mark records the current allocation head so a later Rewind can release
// everything allocated after it.
func (a *Arena) Mark() int { return a.head }

// Rewind releases all allocations made since the given mark.
func (a *Arena) Rewind(mark int) {
	diag.Assertf(mark >= 0 && mark <= a.head, "0 <= mark <= used",
		"rewind to %d with %d in use", mark, a.head)
	a.head = mark
}

// Reset releases every allocation. Called at step entry.
func (a *Arena) Reset() { a.head = 0 }

// Used returns the number of bytes currently allocated.
func (a *Arena) Used() int { return a.head }

// HighWater returns the largest number of bytes ever in use at once, for
// sizing the block to the host's worst case.
func (a *Arena) HighWater() int { return a.high }

// Size returns the fixed capacity of the block.
func (a *Arena) Size() int { return len(a.buf) }

// AllocSlice carves a zeroed slice of n values of T out of the arena. T
// must not require alignment beyond 16 bytes.
func AllocSlice[T any](a *Arena, n int) []T {
	if n == 0 {
		return nil
	}
	var zero T
	b := a.Alloc(n * int(unsafe.Sizeof(zero)))
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n)
}
