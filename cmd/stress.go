/*
Copyright © 2023 Glossopoeia
*/
package cmd

import (
	"fmt"
	"sync"

	"github.com/glossopoeia/chai/runtime"
	"github.com/spf13/cobra"
)

var (
	stressGoroutines int
	stressObjects    int
	stressArrayLen   int
)

// stressCmd plays the interpreter's role against one shared heap: many
// goroutines creating and mutating their own objects and arrays, a serial
// monitor phase, then a collector-style sweep over every space.
var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Exercise the heap from many concurrent goroutines",
	Long: `Stress runs concurrent mutators against one shared heap, verifying
that every field and element written reads back intact, then sweeps all
three spaces the way a collector would and reports the live-entry counts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStress()
	},
}

func init() {
	rootCmd.AddCommand(stressCmd)
	stressCmd.Flags().IntVar(&stressGoroutines, "goroutines", 8, "number of concurrent mutator goroutines")
	stressCmd.Flags().IntVar(&stressObjects, "objects", 1000, "objects created per goroutine")
	stressCmd.Flags().IntVar(&stressArrayLen, "array-len", 64, "length of each scratch array")
}

func runStress() error {
	point := runtime.NewClass("Point", nil,
		runtime.FieldDesc{Name: "x", Descriptor: "I"},
		runtime.FieldDesc{Name: "y", Descriptor: "I"})
	point3D := runtime.NewClass("Point3D", point,
		runtime.FieldDesc{Name: "z", Descriptor: "I"})

	heap := runtime.NewHeap()

	if err := lockStep(heap, point); err != nil {
		return err
	}

	var wg sync.WaitGroup
	errs := make(chan error, stressGoroutines)
	for g := 0; g < stressGoroutines; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			errs <- mutate(heap, point3D, id)
		}(g)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			return err
		}
	}

	fmt.Printf("after mutation:  %d objects, %d arrays, %d monitors\n",
		heap.ObjectCount(), heap.ArrayCount(), heap.MonitorCount())

	sweep(heap)
	fmt.Printf("after sweep:     %d objects, %d arrays, %d monitors\n",
		heap.ObjectCount(), heap.ArrayCount(), heap.MonitorCount())
	heap.Close()
	return nil
}

// mutate creates and re-reads this goroutine's own objects and arrays.
// Offsets are disjoint across goroutines, so every read must see exactly
// what this goroutine wrote.
func mutate(heap *runtime.Heap, class *runtime.Class, id int) error {
	for i := 0; i < stressObjects; i++ {
		obj := heap.NewObject(class)
		want := runtime.Int(int32(id*stressObjects + i))
		if err := heap.SetFieldByName(obj, "x", "I", want); err != nil {
			return err
		}
		if err := heap.SetFieldByName(obj, "z", "I", want+1); err != nil {
			return err
		}
		got, err := heap.FieldByName(obj, "x", "I")
		if err != nil {
			return err
		}
		if got != want {
			return fmt.Errorf("stress: object %d field x: got %v, want %v", obj.Offset, got, want)
		}

		arr := heap.NewPrimitiveArray(runtime.KindInt, stressArrayLen)
		for j := 0; j < arr.Length; j++ {
			heap.SetElement(arr, j, want)
		}
		if got := heap.Element(arr, arr.Length-1); got != want {
			return fmt.Errorf("stress: array %d element: got %v, want %v", arr.Offset, got, want)
		}
	}
	return nil
}

// lockStep runs first, on the empty heap: the first object's offset and the
// first monitor's offset coincide, which is the interpreter convention that
// ties an object to its monitor. The monitor is then hammered by every
// goroutine to check mutual exclusion.
func lockStep(heap *runtime.Heap, class *runtime.Class) error {
	obj := heap.NewObject(class)
	if mon := heap.NewMonitor(); mon != obj.Offset {
		return fmt.Errorf("stress: monitor offset %d does not match object offset %d", mon, obj.Offset)
	}
	if !heap.HasMonitor(obj) {
		return fmt.Errorf("stress: object %d has no monitor after creation", obj.Offset)
	}

	mon := heap.Monitor(obj)
	var wg sync.WaitGroup
	total := 0
	for g := 0; g < stressGoroutines; g++ {
		wg.Add(1)
		go func(owner runtime.Owner) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				mon.Enter(owner)
				total++
				mon.Exit(owner)
			}
		}(runtime.Owner(g + 1))
	}
	wg.Wait()
	if total != stressGoroutines*100 {
		return fmt.Errorf("stress: monitor-guarded counter: got %d, want %d", total, stressGoroutines*100)
	}
	return nil
}

// sweep removes every entry the way a collector with an empty root set
// would, one exclusive pass per space.
func sweep(heap *runtime.Heap) {
	heap.WithObjectSpace(func(s *runtime.ObjectSpace) {
		for _, off := range s.Offsets() {
			s.Remove(off)
		}
	})
	heap.WithArraySpace(func(s *runtime.ArraySpace) {
		for _, off := range s.Offsets() {
			s.Remove(off)
		}
	})
	heap.WithMonitorSpace(func(s *runtime.MonitorSpace) {
		for _, off := range s.Offsets() {
			s.Remove(off)
		}
	})
}
