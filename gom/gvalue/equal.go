package gvalue

import (
	"bytes"
)

// Equal compares two values structurally. Values of different variants are
// never equal, even when their numbers match (Identifier(1) != EnumRef(1)).
func Equal(a FieldValue, b FieldValue) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.TypeCode() != b.TypeCode() {
		return false
	}

	switch a := a.(type) {
	case List:
		b, ok := b.(List)
		if !ok || a.elemType != b.elemType || len(a.values) != len(b.values) {
			return false
		}
		for i := range a.values {
			if !Equal(a.values[i], b.values[i]) {
				return false
			}
		}
		return true
	case LookupList:
		b, ok := b.(LookupList)
		if !ok ||
			a.keyType != b.keyType ||
			a.valueType != b.valueType ||
			len(a.pairs) != len(b.pairs) {
			return false
		}
		for i := range a.pairs {
			if !Equal(a.pairs[i].Key, b.pairs[i].Key) ||
				!Equal(a.pairs[i].Value, b.pairs[i].Value) {
				return false
			}
		}
		return true
	case Opaque:
		b, ok := b.(Opaque)
		return ok && bytes.Equal(a.raw, b.raw)
	}

	return a == b
}
