package runtime

import (
	"reflect"
	"sync"
	"testing"
)

func TestObjectSpaceSweep(t *testing.T) {
	_, point, _ := testHierarchy()
	h := NewHeap()
	for i := 0; i < 5; i++ {
		obj := h.NewObject(point)
		h.SetFieldAt(obj, 0, Int(int32(i)))
	}

	// sweep the even offsets the way a collector would after marking
	h.WithObjectSpace(func(s *ObjectSpace) {
		for _, off := range s.Offsets() {
			if off%2 == 0 {
				s.Remove(off)
			}
		}
	})

	h.WithObjectSpace(func(s *ObjectSpace) {
		if exp := []Offset{1, 3, 5}; !reflect.DeepEqual(s.Offsets(), exp) {
			t.Errorf("Expected survivors %v, got %v instead", exp, s.Offsets())
		}
		for _, off := range s.Offsets() {
			if got := s.Fields(off)[0]; got != Int(int32(off-1)) {
				t.Errorf("Expected surviving fields intact at %d, got %v", off, got)
			}
		}
	})
}

func TestArraySpaceScan(t *testing.T) {
	h := NewHeap()
	lengths := []int{2, 0, 5}
	for _, n := range lengths {
		h.NewPrimitiveArray(KindInt, n)
	}

	got := []int{}
	h.WithArraySpace(func(s *ArraySpace) {
		for _, off := range s.Offsets() {
			length, elements := s.Elements(off)
			if len(elements) < length {
				t.Errorf("Expected at least %d element slots at %d, got %d", length, off, len(elements))
			}
			got = append(got, length)
		}
	})
	if !reflect.DeepEqual(got, lengths) {
		t.Errorf("Expected lengths %v, got %v instead", lengths, got)
	}
}

func TestMonitorSpaceSweep(t *testing.T) {
	h := NewHeap()
	for i := 0; i < 3; i++ {
		h.NewMonitor()
	}
	h.WithMonitorSpace(func(s *MonitorSpace) {
		if !s.Has(2) || s.Monitor(2) == nil {
			t.Fatalf("Expected a live monitor at offset 2")
		}
		s.Remove(2)
		if s.Has(2) {
			t.Errorf("Expected offset 2 to be absent after sweep")
		}
	})
	if got := h.MonitorCount(); got != 2 {
		t.Errorf("Expected 2 live monitors, got %d instead", got)
	}
}

func TestSpaceExcludesMutators(t *testing.T) {
	_, point, _ := testHierarchy()
	h := NewHeap()
	h.NewObject(point)

	entered := make(chan struct{})
	created := make(chan struct{})
	var mu sync.Mutex
	var swept, raced bool

	go func() {
		<-entered
		// must block until the space callback finishes
		h.NewObject(point)
		mu.Lock()
		raced = !swept
		mu.Unlock()
		close(created)
	}()

	h.WithObjectSpace(func(s *ObjectSpace) {
		close(entered)
		for _, off := range s.Offsets() {
			s.Remove(off)
		}
		mu.Lock()
		swept = true
		mu.Unlock()
	})
	<-created
	if raced {
		t.Errorf("Expected object creation to block until the space pass finished")
	}

	if got := h.ObjectCount(); got != 1 {
		t.Errorf("Expected only the post-sweep object, got %d instead", got)
	}
}
