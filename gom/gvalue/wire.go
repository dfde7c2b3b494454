package gvalue

import (
	"encoding/json"
	"math"

	"github.com/thanhnguyen2187/gom-savior/ds"
	"github.com/thanhnguyen2187/gom-savior/gom/gbigint"
)

type (
	WireList struct {
		Type TypeCode `json:"type"`
		List []any    `json:"list"`
	}
	WirePair struct {
		Key any `json:"key"`
		Val any `json:"val"`
	}
	WireLookupList struct {
		IndexType TypeCode   `json:"indexType"`
		Type      TypeCode   `json:"type"`
		List      []WirePair `json:"list"`
	}
)

// maxPlainInteger is the largest magnitude the export writes as a plain JSON
// number; anything wider goes out as a BigInt object.
const maxPlainInteger = 1 << 53

// ToWire turns a value back into the shape Decode reads, so that
// Decode(json.Marshal(ToWire(v)), v.TypeCode()) gives v again.
func ToWire(value FieldValue) any {
	switch value := value.(type) {
	case Identifier:
		return wireUnsigned(uint64(value))
	case EnumRef:
		return wireUnsigned(uint64(value))
	case Integer:
		// A BigInt cannot carry the magnitude of math.MinInt64; the plain
		// literal decodes back to it.
		if (-maxPlainInteger < value && value < maxPlainInteger) || value == math.MinInt64 {
			return int64(value)
		}
		return gbigint.FromInt64(int64(value))
	case Boolean:
		return bool(value)
	case Float32:
		return float32(value)
	case Text:
		return string(value)
	case List:
		items := make([]any, 0, len(value.values))
		for _, item := range value.values {
			items = append(items, ToWire(item))
		}
		return WireList{
			Type: value.elemType,
			List: items,
		}
	case LookupList:
		pairs := make([]WirePair, 0, len(value.pairs))
		for _, pair := range value.pairs {
			pairs = append(pairs, WirePair{
				Key: ToWire(pair.Key),
				Val: ToWire(pair.Value),
			})
		}
		return WireLookupList{
			IndexType: value.keyType,
			Type:      value.valueType,
			List:      pairs,
		}
	case Opaque:
		return json.RawMessage(value.Raw())
	}
	panic(ds.ErrUnreachableCode{Caller: "gvalue.ToWire", Value: value})
}

func wireUnsigned(value uint64) any {
	if value < maxPlainInteger {
		return value
	}
	return gbigint.FromUint64(value)
}

// Plain drops the type tags: scalars become their Go values, lists become
// slices, lookup lists become slices of key/val pairs and opaque values stay
// as raw JSON.
func Plain(value FieldValue) any {
	switch value := value.(type) {
	case Identifier:
		return uint64(value)
	case EnumRef:
		return uint64(value)
	case Integer:
		return int64(value)
	case Boolean:
		return bool(value)
	case Float32:
		return float32(value)
	case Text:
		return string(value)
	case List:
		items := make([]any, 0, len(value.values))
		for _, item := range value.values {
			items = append(items, Plain(item))
		}
		return items
	case LookupList:
		pairs := make([]WirePair, 0, len(value.pairs))
		for _, pair := range value.pairs {
			pairs = append(pairs, WirePair{
				Key: Plain(pair.Key),
				Val: Plain(pair.Value),
			})
		}
		return pairs
	case Opaque:
		return json.RawMessage(value.Raw())
	}
	panic(ds.ErrUnreachableCode{Caller: "gvalue.Plain", Value: value})
}
