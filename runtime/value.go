package runtime

// Offset is the integer identity of a heap-resident entry within one store's
// key space. Offsets start at 1 and are never reused while the store lives;
// zero is never a valid offset.
type Offset = uint

// Value is any datum the runtime can store in a field slot or an array
// element: a primitive box, an object or array reference, or nil for the
// null reference.
type Value interface{}

type (
	Boolean bool
	Byte    int8
	Short   int16
	Char    rune
	Int     int32
	Long    int64
	Float   float32
	Double  float64
)

type ArrayKind = int

// Primitive array kinds reuse the class-file newarray type codes so cached
// allocation sites can pass the operand through unchanged. KindRef covers
// reference arrays, which the class file spells differently.
const (
	KindBoolean ArrayKind = 4
	KindChar    ArrayKind = 5
	KindFloat   ArrayKind = 6
	KindDouble  ArrayKind = 7
	KindByte    ArrayKind = 8
	KindShort   ArrayKind = 9
	KindInt     ArrayKind = 10
	KindLong    ArrayKind = 11
	KindRef     ArrayKind = 12
)

// ObjectRef is the handle an interpreter holds for one object instance. The
// offset keys the object store; the class is the instance's dynamic class.
type ObjectRef struct {
	Offset Offset
	Class  *Class
}

// ArrayRef is the handle for one array. The offset keys the array store.
// Class is the element class for KindRef arrays and nil otherwise.
type ArrayRef struct {
	Offset Offset
	Kind   ArrayKind
	Length int
	Class  *Class
}

// AsObjectRef narrows a value to an object reference. Handing anything else
// to a monitor operation is a caller bug, so the mismatch fails loudly
// instead of producing a wrong offset.
func AsObjectRef(v Value) *ObjectRef {
	ref, ok := v.(*ObjectRef)
	if !ok {
		panic("Reference is not an object reference.")
	}
	return ref
}

// AsArrayRef narrows a value to an array reference, failing loudly on any
// other kind of value.
func AsArrayRef(v Value) *ArrayRef {
	ref, ok := v.(*ArrayRef)
	if !ok {
		panic("Reference is not an array reference.")
	}
	return ref
}

// ZeroValue is the default element for a freshly allocated array of the
// given kind: false, zero, or the null reference.
func ZeroValue(kind ArrayKind) Value {
	switch kind {
	case KindBoolean:
		return Boolean(false)
	case KindChar:
		return Char(0)
	case KindFloat:
		return Float(0)
	case KindDouble:
		return Double(0)
	case KindByte:
		return Byte(0)
	case KindShort:
		return Short(0)
	case KindInt:
		return Int(0)
	case KindLong:
		return Long(0)
	case KindRef:
		return nil
	}
	panic("Unknown array kind.")
}

// DefaultFieldValue maps a field descriptor to the value a fresh instance
// holds in that slot before any write: primitive zero for primitive
// descriptors, the null reference for class and array descriptors.
func DefaultFieldValue(descriptor string) Value {
	if descriptor == "" {
		panic("Empty field descriptor.")
	}
	switch descriptor[0] {
	case 'Z':
		return Boolean(false)
	case 'B':
		return Byte(0)
	case 'S':
		return Short(0)
	case 'C':
		return Char(0)
	case 'I':
		return Int(0)
	case 'J':
		return Long(0)
	case 'F':
		return Float(0)
	case 'D':
		return Double(0)
	case 'L', '[':
		return nil
	}
	panic("Unknown field descriptor.")
}
