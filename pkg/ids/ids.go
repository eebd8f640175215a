// Package ids allocates stable integer handles for planar graph entities.
//
// Every vertex, edge and face carries a [Handle] drawn from an [Allocator].
// Handles are strictly increasing for the lifetime of an allocator, so the
// creation order of entities can be read back from their identities.
//
// # Scoping
//
// Allocators are plain values that can be owned by a single graph container
// (the default in package planar) or shared between containers. Sharing gives
// globally unique handles across containers; calling [Allocator.Reset] on a
// shared allocator while other containers still hold its handles breaks that
// uniqueness.
//
// The counter is atomic, so a single allocator may be used from several
// goroutines without extra locking.
package ids

import (
	"strconv"
	"sync/atomic"
)

// Base is the value an allocator starts counting from. The first handle
// issued by a fresh or reset allocator is Base+1.
const Base Handle = 100

// Handle identifies an entity without holding a reference to it.
type Handle int64

// String returns the decimal form of the handle.
func (h Handle) String() string { return strconv.FormatInt(int64(h), 10) }

// Allocator issues ascending handles starting after its base value.
//
// The zero value is usable and counts from 0; use [New] to count from [Base].
type Allocator struct {
	base Handle
	last atomic.Int64
}

// New creates an allocator starting at [Base].
func New() *Allocator { return NewFrom(Base) }

// NewFrom creates an allocator whose first handle is base+1.
func NewFrom(base Handle) *Allocator {
	a := &Allocator{base: base}
	a.last.Store(int64(base))
	return a
}

// Next returns the next handle.
func (a *Allocator) Next() Handle {
	return Handle(a.last.Add(1))
}

// Last returns the most recently issued handle, or the base value if none
// has been issued since creation or the last reset.
func (a *Allocator) Last() Handle {
	return Handle(a.last.Load())
}

// Reset rewinds the allocator to its base value so that repeated runs
// produce identical handles. It must not be called while entities from a
// previous run that share this allocator are still in use.
func (a *Allocator) Reset() Handle {
	a.last.Store(int64(a.base))
	return a.base
}

var defaultAllocator = New()

// Default returns the process-wide allocator. Containers built with it share
// one numbering sequence.
func Default() *Allocator { return defaultAllocator }
