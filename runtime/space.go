package runtime

// The collector's tier of heap access. Per-offset operations on Heap are the
// interpreter's capability; a collector needs the more powerful one, a view
// of a whole store's key space at once, to mark reachable entries and sweep
// the rest. Each With*Space call holds that store's mutex for the entire
// callback, so no interpreter operation against the same store can
// interleave with a scan or sweep. That pause is the sole mechanism keeping
// removal from racing a concurrent field or element access.
//
// A view is only valid inside its callback. Retaining one past the callback
// return forfeits the exclusivity that makes it safe.

// ObjectSpace is the collector's view of the object store.
type ObjectSpace struct {
	objects *store[[]Value]
}

// WithObjectSpace runs scan with exclusive access to the object store.
func (h *Heap) WithObjectSpace(scan func(*ObjectSpace)) {
	h.objMu.Lock()
	defer h.objMu.Unlock()
	scan(&ObjectSpace{h.objects})
}

// Offsets lists every live object offset in ascending order.
func (s *ObjectSpace) Offsets() []Offset {
	return s.objects.offsets()
}

func (s *ObjectSpace) Has(offset Offset) bool {
	return s.objects.has(offset)
}

// Fields returns the live field slots at offset for marking or relocation.
func (s *ObjectSpace) Fields(offset Offset) []Value {
	return s.objects.find(offset)
}

// Remove sweeps one object entry, releasing its field slots.
func (s *ObjectSpace) Remove(offset Offset) {
	s.objects.remove(offset)
}

// ArraySpace is the collector's view of the array store.
type ArraySpace struct {
	arrays *store[arrayEntry]
}

// WithArraySpace runs scan with exclusive access to the array store.
func (h *Heap) WithArraySpace(scan func(*ArraySpace)) {
	h.arrMu.Lock()
	defer h.arrMu.Unlock()
	scan(&ArraySpace{h.arrays})
}

// Offsets lists every live array offset in ascending order.
func (s *ArraySpace) Offsets() []Offset {
	return s.arrays.offsets()
}

func (s *ArraySpace) Has(offset Offset) bool {
	return s.arrays.has(offset)
}

// Elements returns the length and live element slots at offset.
func (s *ArraySpace) Elements(offset Offset) (int, []Value) {
	entry := s.arrays.find(offset)
	return entry.length, entry.elements
}

// Remove sweeps one array entry, releasing its elements.
func (s *ArraySpace) Remove(offset Offset) {
	s.arrays.remove(offset)
}

// MonitorSpace is the collector's view of the monitor store. A monitor is
// swept when its owning object is, under the interpreter's convention that
// the object offset keys the monitor.
type MonitorSpace struct {
	monitors *store[*ObjectMonitor]
}

// WithMonitorSpace runs scan with exclusive access to the monitor store.
func (h *Heap) WithMonitorSpace(scan func(*MonitorSpace)) {
	h.monMu.Lock()
	defer h.monMu.Unlock()
	scan(&MonitorSpace{h.monitors})
}

// Offsets lists every live monitor offset in ascending order.
func (s *MonitorSpace) Offsets() []Offset {
	return s.monitors.offsets()
}

func (s *MonitorSpace) Has(offset Offset) bool {
	return s.monitors.has(offset)
}

func (s *MonitorSpace) Monitor(offset Offset) *ObjectMonitor {
	return s.monitors.find(offset)
}

// Remove sweeps one monitor entry.
func (s *MonitorSpace) Remove(offset Offset) {
	s.monitors.remove(offset)
}
