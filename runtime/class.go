package runtime

import (
	"fmt"

	"github.com/rjNemo/underscore"
)

// FieldDesc names one declared field: its name and its type descriptor.
type FieldDesc struct {
	Name       string
	Descriptor string
}

// Class is the metadata the class provider supplies per loaded class: its
// name, superclass, and the fields it declares itself. The heap only reads
// this; it never mutates a Class.
type Class struct {
	Name   string
	Super  *Class
	Fields []FieldDesc
}

// NewClass builds class metadata, rejecting a class that declares the same
// name+descriptor pair twice. Redeclaring a superclass field is fine, that
// is ordinary shadowing.
func NewClass(name string, super *Class, fields ...FieldDesc) *Class {
	seen := []FieldDesc{}
	for _, f := range fields {
		if underscore.Contains(seen, f) {
			panic("Class declares the same field twice.")
		}
		seen = append(seen, f)
	}
	return &Class{name, super, fields}
}

// FieldCount is the number of fields this class declares itself.
func (c *Class) FieldCount() int {
	return len(c.Fields)
}

// TotalFieldCount is the flattened field count: this class's declared fields
// plus those of every superclass up the chain. An instance's field storage
// has exactly this many slots.
func (c *Class) TotalFieldCount() int {
	count := 0
	for cls := c; cls != nil; cls = cls.Super {
		count += len(cls.Fields)
	}
	return count
}

// DerivesFrom reports whether c is other or a subclass of other.
func (c *Class) DerivesFrom(other *Class) bool {
	for cls := c; cls != nil; cls = cls.Super {
		if cls == other {
			return true
		}
	}
	return false
}

// fieldIndex locates name+descriptor among this class's own declared fields.
func (c *Class) fieldIndex(name, descriptor string) (int, bool) {
	for i, f := range c.Fields {
		if f.Name == name && f.Descriptor == descriptor {
			return i, true
		}
	}
	return 0, false
}

// fieldSlot computes the flattened slot index of name+descriptor for an
// instance whose dynamic class is class. Slots are laid out leaf first, so
// the walk starts at the dynamic class and accumulates the field counts of
// the classes already passed; the first declaration found wins, which gives
// shadowing its most-derived-wins semantics. The exhausted chain is the one
// recoverable heap error.
func fieldSlot(class *Class, name, descriptor string) (int, error) {
	base := 0
	for cls := class; cls != nil; cls = cls.Super {
		if i, ok := cls.fieldIndex(name, descriptor); ok {
			return base + i, nil
		}
		base += len(cls.Fields)
	}
	return 0, fmt.Errorf("heap: field %s %s not found in %s or its superclasses", name, descriptor, class.Name)
}
