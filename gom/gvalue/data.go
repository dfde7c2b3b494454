// Package gvalue is the typed value model of a GOM export field, together
// with the decoders that build it from raw JSON and a type code.
package gvalue

import (
	"encoding/json"
	"fmt"

	"github.com/thanhnguyen2187/gom-savior/ds"
)

type (
	TypeCode uint64

	// FieldValue is a closed set of variants; the unexported method keeps
	// other packages from adding to it.
	FieldValue interface {
		TypeCode() TypeCode
		fieldValue()
	}

	Identifier uint64
	Integer    int64
	Boolean    bool
	Float32    float32
	// EnumRef shares the wire format of Identifier. What the id names is left
	// to generated enum tables.
	EnumRef uint64
	Text    string

	List struct {
		elemType TypeCode
		values   []FieldValue
	}
	Pair struct {
		Key   FieldValue
		Value FieldValue
	}
	// LookupList is an association list: order is kept, duplicate keys are
	// kept, nothing is hashed.
	LookupList struct {
		keyType   TypeCode
		valueType TypeCode
		pairs     []Pair
	}
	// Opaque holds the raw JSON of a value whose type code has no decoder.
	Opaque struct {
		code TypeCode
		raw  json.RawMessage
	}
)

const (
	TypeCodeIdentifier TypeCode = 1
	TypeCodeInteger    TypeCode = 2
	TypeCodeBoolean    TypeCode = 3
	TypeCodeFloat32    TypeCode = 4
	TypeCodeEnumRef    TypeCode = 5
	TypeCodeText       TypeCode = 6
	TypeCodeList       TypeCode = 7
	TypeCodeLookupList TypeCode = 8

	// Known to the export but without a confirmed wire shape; these decode
	// to Opaque.
	TypeCodeClassView    TypeCode = 9
	TypeCodeScriptRef    TypeCode = 14
	TypeCodeNodeRef      TypeCode = 15
	TypeCodeVector3      TypeCode = 18
	TypeCodeTimeInterval TypeCode = 20
	TypeCodeDate         TypeCode = 21
)

var typeCodeNames = map[TypeCode]string{
	TypeCodeIdentifier:   "Identifier",
	TypeCodeInteger:      "Integer",
	TypeCodeBoolean:      "Boolean",
	TypeCodeFloat32:      "Float32",
	TypeCodeEnumRef:      "EnumRef",
	TypeCodeText:         "Text",
	TypeCodeList:         "List",
	TypeCodeLookupList:   "LookupList",
	TypeCodeClassView:    "ClassView",
	TypeCodeScriptRef:    "ScriptRef",
	TypeCodeNodeRef:      "NodeRef",
	TypeCodeVector3:      "Vector3",
	TypeCodeTimeInterval: "TimeInterval",
	TypeCodeDate:         "Date",
}

func (r TypeCode) String() string {
	name, ok := typeCodeNames[r]
	if !ok {
		return fmt.Sprintf("Unknown(%d)", uint64(r))
	}
	return name
}

// IsModelled reports whether values of this code get a typed variant rather
// than Opaque.
func (r TypeCode) IsModelled() bool {
	return TypeCodeIdentifier <= r && r <= TypeCodeLookupList
}

func (Identifier) TypeCode() TypeCode { return TypeCodeIdentifier }
func (Integer) TypeCode() TypeCode    { return TypeCodeInteger }
func (Boolean) TypeCode() TypeCode    { return TypeCodeBoolean }
func (Float32) TypeCode() TypeCode    { return TypeCodeFloat32 }
func (EnumRef) TypeCode() TypeCode    { return TypeCodeEnumRef }
func (Text) TypeCode() TypeCode       { return TypeCodeText }
func (List) TypeCode() TypeCode       { return TypeCodeList }
func (LookupList) TypeCode() TypeCode { return TypeCodeLookupList }
func (r Opaque) TypeCode() TypeCode   { return r.code }

func (Identifier) fieldValue() {}
func (Integer) fieldValue()    {}
func (Boolean) fieldValue()    {}
func (Float32) fieldValue()    {}
func (EnumRef) fieldValue()    {}
func (Text) fieldValue()       {}
func (List) fieldValue()       {}
func (LookupList) fieldValue() {}
func (Opaque) fieldValue()     {}

func NewList(elemType TypeCode, values ...FieldValue) List {
	return List{
		elemType: elemType,
		values:   ds.ShallowCopy(values),
	}
}

func (r List) ElemType() TypeCode { return r.elemType }
func (r List) Len() int           { return len(r.values) }
func (r List) At(i int) FieldValue {
	return r.values[i]
}

// Values returns a copy; the list itself never changes after decoding.
func (r List) Values() []FieldValue {
	return ds.ShallowCopy(r.values)
}

func NewLookupList(keyType TypeCode, valueType TypeCode, pairs ...Pair) LookupList {
	return LookupList{
		keyType:   keyType,
		valueType: valueType,
		pairs:     ds.ShallowCopy(pairs),
	}
}

func (r LookupList) KeyType() TypeCode   { return r.keyType }
func (r LookupList) ValueType() TypeCode { return r.valueType }
func (r LookupList) Len() int            { return len(r.pairs) }
func (r LookupList) At(i int) Pair {
	return r.pairs[i]
}

func (r LookupList) Pairs() []Pair {
	return ds.ShallowCopy(r.pairs)
}

// Lookup scans the pairs in order and returns the value of the first pair
// whose key equals key.
func (r LookupList) Lookup(key FieldValue) (FieldValue, bool) {
	for _, pair := range r.pairs {
		if Equal(pair.Key, key) {
			return pair.Value, true
		}
	}
	return nil, false
}

// LookupAll returns the values of every pair whose key equals key, in order.
func (r LookupList) LookupAll(key FieldValue) []FieldValue {
	values := make([]FieldValue, 0)
	for _, pair := range r.pairs {
		if Equal(pair.Key, key) {
			values = append(values, pair.Value)
		}
	}
	return values
}

func NewOpaque(code TypeCode, raw json.RawMessage) Opaque {
	return Opaque{
		code: code,
		raw:  ds.ShallowCopy(raw),
	}
}

func (r Opaque) Raw() json.RawMessage {
	return ds.ShallowCopy(r.raw)
}
