package runtime

import "testing"

func TestZeroValue(t *testing.T) {
	testCases := []struct {
		name string
		kind ArrayKind
		exp  Value
	}{
		{"Boolean", KindBoolean, Boolean(false)},
		{"Char", KindChar, Char(0)},
		{"Float", KindFloat, Float(0)},
		{"Double", KindDouble, Double(0)},
		{"Byte", KindByte, Byte(0)},
		{"Short", KindShort, Short(0)},
		{"Int", KindInt, Int(0)},
		{"Long", KindLong, Long(0)},
		{"Ref", KindRef, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ZeroValue(tc.kind); got != tc.exp {
				t.Errorf("Expected %v, got %v instead", tc.exp, got)
			}
		})
	}
}

func TestDefaultFieldValue(t *testing.T) {
	testCases := []struct {
		name string
		desc string
		exp  Value
	}{
		{"Int", "I", Int(0)},
		{"Long", "J", Long(0)},
		{"Boolean", "Z", Boolean(false)},
		{"Class", "Ljava/lang/Object;", nil},
		{"Array", "[I", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DefaultFieldValue(tc.desc); got != tc.exp {
				t.Errorf("Expected %v, got %v instead", tc.exp, got)
			}
		})
	}
}

func TestAsObjectRefChecksTag(t *testing.T) {
	obj := &ObjectRef{1, nil}
	if AsObjectRef(obj) != obj {
		t.Errorf("Expected the same reference back")
	}

	testCases := []struct {
		name string
		val  Value
	}{
		{"Null", nil},
		{"Array", &ArrayRef{1, KindInt, 0, nil}},
		{"Primitive", Int(3)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Expected a tag mismatch to panic")
				}
			}()
			AsObjectRef(tc.val)
		})
	}
}
