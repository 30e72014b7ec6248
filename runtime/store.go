package runtime

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// store is a monotonically keyed container mapping offsets to entries of one
// payload type. The fresh hook builds the payload placed at a new offset and
// the release hook runs exactly once on every entry that leaves the store,
// whether removed individually or swept out when the whole store closes.
// Parameterizing over the two hooks is what distinguishes the object, array,
// and monitor stores; there is no other specialization.
//
// A store does no locking of its own. The Heap guards each store with one
// mutex and the maintenance views in space.go reuse the same mutex for
// whole-store passes.
type store[T any] struct {
	data    map[Offset]T
	next    Offset
	fresh   func() T
	release func(T)
}

func newStore[T any](fresh func() T, release func(T)) *store[T] {
	return &store[T]{make(map[Offset]T), 0, fresh, release}
}

// place allocates the next offset, inserts a fresh payload there, and
// returns the offset. The counter never decreases, so an offset freed by
// remove is never handed out again for the life of the store; a stale
// offset held by a suspended thread can therefore never alias a newer,
// unrelated entry.
func (s *store[T]) place() Offset {
	s.next++
	s.data[s.next] = s.fresh()
	return s.next
}

// find returns the entry at offset. An absent offset is an invariant
// violation on the caller's side; callers are expected to have checked has
// first, so find fails loudly rather than returning a zero payload.
func (s *store[T]) find(offset Offset) T {
	entry, ok := s.data[offset]
	if !ok {
		panic("Heap offset is not present in the store.")
	}
	return entry
}

func (s *store[T]) has(offset Offset) bool {
	_, ok := s.data[offset]
	return ok
}

// set replaces the payload at an offset just placed. Only construction paths
// use it, before the entry holds anything the release hook would need to see.
func (s *store[T]) set(offset Offset, entry T) {
	if _, ok := s.data[offset]; !ok {
		panic("Heap offset is not present in the store.")
	}
	s.data[offset] = entry
}

// remove releases the entry at offset and deletes it. Removing an absent
// offset is a no-op, so the collector can sweep without re-checking liveness.
func (s *store[T]) remove(offset Offset) {
	entry, ok := s.data[offset]
	if !ok {
		return
	}
	s.release(entry)
	delete(s.data, offset)
}

// close releases every remaining entry in ascending offset order and empties
// the store. Process-lifetime cleanup only; the store is still usable after,
// though nothing should want it.
func (s *store[T]) close() {
	for _, offset := range s.offsets() {
		s.release(s.data[offset])
		delete(s.data, offset)
	}
}

// offsets lists every live offset in ascending order. Map iteration order is
// randomized, and both the collector and close depend on a deterministic
// walk.
func (s *store[T]) offsets() []Offset {
	keys := maps.Keys(s.data)
	slices.Sort(keys)
	return keys
}

func (s *store[T]) count() int {
	return len(s.data)
}

// arrayEntry pairs an array's length with its element slots. The elements
// slice always has at least length live slots.
type arrayEntry struct {
	length   int
	elements []Value
}

// newObjectStore maps offsets to field slot sequences. Construction sizes
// the slots to the instance's flattened field count via set; release drops
// every slot's value so nothing owned lingers past removal.
func newObjectStore() *store[[]Value] {
	return newStore(func() []Value { return nil }, releaseSlots)
}

// newArrayStore maps offsets to (length, elements) pairs.
func newArrayStore() *store[arrayEntry] {
	return newStore(func() arrayEntry { return arrayEntry{} }, func(e arrayEntry) {
		releaseSlots(e.elements)
	})
}

// newMonitorStore maps offsets to monitors. A monitor has no useful empty
// state, so the fresh hook eagerly builds a live monitor; every allocated
// slot is immediately valid for locking. Monitors hold nothing releasable.
func newMonitorStore() *store[*ObjectMonitor] {
	return newStore(NewObjectMonitor, func(*ObjectMonitor) {})
}

func releaseSlots(slots []Value) {
	for i := range slots {
		slots[i] = nil
	}
}
