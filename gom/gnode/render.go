package gnode

import (
	"github.com/thanhnguyen2187/gom-savior/ds"
	"github.com/thanhnguyen2187/gom-savior/gom/gvalue"
)

type (
	// WireField is the debug form of a field, the same shape DecodeField
	// reads.
	WireField struct {
		Type  gvalue.TypeCode `json:"type"`
		Value any             `json:"value"`
	}
)

const (
	KeyRenderNode   = "node"
	KeyRenderFields = "fields"
)

// FieldsToLinkedHashMap keys the fields by id in their original order. A
// repeated id keeps the position of its first occurrence and the value of its
// last.
func FieldsToLinkedHashMap(fields []Field, debug bool) *ds.LinkedHashMap[string, any] {
	lhm := ds.NewLinkedHashMap[string, any]()
	for _, field := range fields {
		if debug {
			lhm.Put(field.ID, WireField{
				Type:  field.Value.TypeCode(),
				Value: gvalue.ToWire(field.Value),
			})
		} else {
			lhm.Put(field.ID, gvalue.Plain(field.Value))
		}
	}
	return lhm
}

func ToLinkedHashMap(pair NodeObjPair, debug bool) *ds.LinkedHashMap[string, any] {
	lhm := ds.NewLinkedHashMap[string, any]()
	lhm.Put(KeyRenderNode, pair.Node)
	lhm.Put(KeyRenderFields, FieldsToLinkedHashMap(pair.Fields, debug))
	return lhm
}
