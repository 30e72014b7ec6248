package runtime

import "sync"

// Heap holds the field storage of every object, the element storage of every
// array, and the monitors backing synchronized semantics. It is the only
// component the rest of the runtime touches for memory storage and access:
// the interpreter drives the per-offset operations here, the collector
// drives the whole-store views in space.go.
//
// Each store has its own mutex and every public operation takes exactly one
// of them for its duration. Operations on different stores interleave
// freely; an interpreter that needs ordering across stores must impose it
// itself, typically through a monitor. The mutexes are not re-entrant, so
// public operations never call other public operations while holding a
// lock; nested work goes through the unlocked unexported helpers.
type Heap struct {
	objects  *store[[]Value]
	arrays   *store[arrayEntry]
	monitors *store[*ObjectMonitor]

	objMu sync.Mutex
	arrMu sync.Mutex
	monMu sync.Mutex
}

func NewHeap() *Heap {
	h := new(Heap)
	h.objects = newObjectStore()
	h.arrays = newArrayStore()
	h.monitors = newMonitorStore()
	return h
}

// NewObject allocates field storage for one instance of class, every slot
// defaulted per its descriptor. Slots are laid out leaf first: the dynamic
// class's declared fields occupy the lowest indices, then each superclass's
// in order up the chain. Cached numeric field offsets depend on this order
// staying fixed.
func (h *Heap) NewObject(class *Class) *ObjectRef {
	h.objMu.Lock()
	defer h.objMu.Unlock()
	offset := h.objects.place()
	fields := make([]Value, 0, class.TotalFieldCount())
	for cls := class; cls != nil; cls = cls.Super {
		for _, f := range cls.Fields {
			fields = append(fields, DefaultFieldValue(f.Descriptor))
		}
	}
	h.objects.set(offset, fields)
	return &ObjectRef{offset, class}
}

// NewPrimitiveArray allocates an array of length elements of the given
// primitive kind, each defaulted to the kind's zero value.
func (h *Heap) NewPrimitiveArray(kind ArrayKind, length int) *ArrayRef {
	if kind < KindBoolean || kind > KindLong {
		panic("Unknown primitive array kind.")
	}
	h.arrMu.Lock()
	defer h.arrMu.Unlock()
	offset := h.arrays.place()
	elements := make([]Value, length)
	for i := range elements {
		elements[i] = ZeroValue(kind)
	}
	h.arrays.set(offset, arrayEntry{length, elements})
	return &ArrayRef{offset, kind, length, nil}
}

// NewObjectArray allocates an array of length null references whose element
// class is class.
func (h *Heap) NewObjectArray(class *Class, length int) *ArrayRef {
	h.arrMu.Lock()
	defer h.arrMu.Unlock()
	offset := h.arrays.place()
	h.arrays.set(offset, arrayEntry{length, make([]Value, length)})
	return &ArrayRef{offset, KindRef, length, class}
}

// NewCharArray allocates a char array of length elements, filling the low
// indices with text's decoded runes and leaving the rest at zero.
func (h *Heap) NewCharArray(text string, length int) *ArrayRef {
	h.arrMu.Lock()
	defer h.arrMu.Unlock()
	offset := h.arrays.place()
	elements := make([]Value, length)
	for i := range elements {
		elements[i] = Char(0)
	}
	for i, r := range []rune(text) {
		if i >= length {
			break
		}
		elements[i] = Char(r)
	}
	h.arrays.set(offset, arrayEntry{length, elements})
	return &ArrayRef{offset, KindChar, length, nil}
}

// FieldByName resolves name+descriptor against the object's dynamic class,
// walking the superclass chain with the most derived declaration winning,
// and returns the slot's value. A name absent from the whole chain is the
// only recoverable heap error; the interpreter maps it to its no-such-field
// failure.
func (h *Heap) FieldByName(object *ObjectRef, name, descriptor string) (Value, error) {
	slot, err := fieldSlot(object.Class, name, descriptor)
	if err != nil {
		return nil, err
	}
	h.objMu.Lock()
	defer h.objMu.Unlock()
	return h.objects.find(object.Offset)[slot], nil
}

// SetFieldByName writes a field through the same resolution walk as
// FieldByName.
func (h *Heap) SetFieldByName(object *ObjectRef, name, descriptor string, value Value) error {
	slot, err := fieldSlot(object.Class, name, descriptor)
	if err != nil {
		return err
	}
	h.objMu.Lock()
	defer h.objMu.Unlock()
	h.objects.find(object.Offset)[slot] = value
	return nil
}

// FieldAt reads the field slot at an already resolved numeric offset. No
// hierarchy walk; this is the path for cached field accessors.
func (h *Heap) FieldAt(object *ObjectRef, slot int) Value {
	h.objMu.Lock()
	defer h.objMu.Unlock()
	return h.objects.find(object.Offset)[slot]
}

// SetFieldAt writes the field slot at an already resolved numeric offset.
func (h *Heap) SetFieldAt(object *ObjectRef, slot int, value Value) {
	h.objMu.Lock()
	defer h.objMu.Unlock()
	h.objects.find(object.Offset)[slot] = value
}

// Fields returns the object's live field slot sequence, not a copy. The
// store lock is released when Fields returns, so any use of the slice after
// that races with concurrent mutation and with collector-driven removal of
// the same offset. Callers that need the reference to stay valid should use
// WithObjectSpace instead, which holds the lock for the whole pass.
func (h *Heap) Fields(object *ObjectRef) []Value {
	h.objMu.Lock()
	defer h.objMu.Unlock()
	return h.objects.find(object.Offset)
}

// Elements returns the array's length and live element slice, not a copy.
// The same hazard as Fields applies once the call returns.
func (h *Heap) Elements(array *ArrayRef) (int, []Value) {
	h.arrMu.Lock()
	defer h.arrMu.Unlock()
	entry := h.arrays.find(array.Offset)
	return entry.length, entry.elements
}

// Element reads one array element. Bounds are the interpreter's job: it
// checks the index against the stored length before calling, so no check
// happens here.
func (h *Heap) Element(array *ArrayRef, index int) Value {
	h.arrMu.Lock()
	defer h.arrMu.Unlock()
	return h.arrays.find(array.Offset).elements[index]
}

// SetElement writes one array element, with the same bounds contract as
// Element.
func (h *Heap) SetElement(array *ArrayRef, index int, value Value) {
	h.arrMu.Lock()
	defer h.arrMu.Unlock()
	h.arrays.find(array.Offset).elements[index] = value
}

// RemoveObject releases the object entry at offset once it is unreachable.
// Driven by the collector; absent offsets are ignored.
func (h *Heap) RemoveObject(offset Offset) {
	h.objMu.Lock()
	defer h.objMu.Unlock()
	h.objects.remove(offset)
}

// RemoveArray releases the array entry at offset once it is unreachable.
func (h *Heap) RemoveArray(offset Offset) {
	h.arrMu.Lock()
	defer h.arrMu.Unlock()
	h.arrays.remove(offset)
}

// HasObject reports whether an object offset is live.
func (h *Heap) HasObject(offset Offset) bool {
	h.objMu.Lock()
	defer h.objMu.Unlock()
	return h.objects.has(offset)
}

// HasArray reports whether an array offset is live.
func (h *Heap) HasArray(offset Offset) bool {
	h.arrMu.Lock()
	defer h.arrMu.Unlock()
	return h.arrays.has(offset)
}

// HasMonitor reports whether ref's object already has a monitor. The
// monitor key space is separate from the object store's; the interpreter
// maintains the association, conventionally by reusing the object's own
// offset as the monitor key, so monitors are created in object-creation
// order. A non-object ref fails the type check loudly.
func (h *Heap) HasMonitor(ref Value) bool {
	object := AsObjectRef(ref)
	h.monMu.Lock()
	defer h.monMu.Unlock()
	return h.monitors.has(object.Offset)
}

// NewMonitor allocates the next monitor slot with a live monitor already in
// it and returns its offset.
func (h *Heap) NewMonitor() Offset {
	h.monMu.Lock()
	defer h.monMu.Unlock()
	return h.monitors.place()
}

// Monitor returns the monitor keyed by ref's object offset. The same
// monitor comes back for the life of the entry, so locking identity is
// stable between creation and removal.
func (h *Heap) Monitor(ref Value) *ObjectMonitor {
	object := AsObjectRef(ref)
	h.monMu.Lock()
	defer h.monMu.Unlock()
	return h.monitors.find(object.Offset)
}

// ObjectCount is the number of live object entries.
func (h *Heap) ObjectCount() int {
	h.objMu.Lock()
	defer h.objMu.Unlock()
	return h.objects.count()
}

// ArrayCount is the number of live array entries.
func (h *Heap) ArrayCount() int {
	h.arrMu.Lock()
	defer h.arrMu.Unlock()
	return h.arrays.count()
}

// MonitorCount is the number of live monitor entries.
func (h *Heap) MonitorCount() int {
	h.monMu.Lock()
	defer h.monMu.Unlock()
	return h.monitors.count()
}

// Close releases every remaining entry in all three stores, each in
// ascending offset order. Process-lifetime cleanup only.
func (h *Heap) Close() {
	h.objMu.Lock()
	h.objects.close()
	h.objMu.Unlock()

	h.arrMu.Lock()
	h.arrays.close()
	h.arrMu.Unlock()

	h.monMu.Lock()
	h.monitors.close()
	h.monMu.Unlock()
}
