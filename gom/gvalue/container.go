package gvalue

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/thanhnguyen2187/gom-savior/gom/gjson"
)

const (
	KeyType      = "type"
	KeyIndexType = "indexType"
	KeyList      = "list"
	KeyPairKey   = "key"
	KeyPairValue = "val"
)

// DecodeList reads `{"type": <code>, "list": [...]}` and decodes every element
// with the one declared code. The first bad element fails the whole list.
func DecodeList(raw json.RawMessage) (List, error) {
	const caller = "gvalue.DecodeList"
	obj, err := gjson.ParseObject(raw, caller)
	if err != nil {
		return List{}, err
	}
	elemType, err := obj.KeyUint(KeyType, caller)
	if err != nil {
		return List{}, err
	}
	items, err := obj.KeyArray(KeyList, caller)
	if err != nil {
		return List{}, err
	}

	values := make([]FieldValue, 0, len(items))
	for i, item := range items {
		value, err := Decode(item, TypeCode(elemType))
		if err != nil {
			err := errors.Wrapf(err, "%s error: list[%d]", caller, i)
			return List{}, err
		}
		values = append(values, value)
	}

	return List{
		elemType: TypeCode(elemType),
		values:   values,
	}, nil
}

// DecodeLookupList reads `{"indexType": <code>, "type": <code>, "list":
// [{"key": ..., "val": ...}, ...]}` into pairs, in input order.
func DecodeLookupList(raw json.RawMessage) (LookupList, error) {
	const caller = "gvalue.DecodeLookupList"
	obj, err := gjson.ParseObject(raw, caller)
	if err != nil {
		return LookupList{}, err
	}
	keyType, err := obj.KeyUint(KeyIndexType, caller)
	if err != nil {
		return LookupList{}, err
	}
	valueType, err := obj.KeyUint(KeyType, caller)
	if err != nil {
		return LookupList{}, err
	}
	items, err := obj.KeyArray(KeyList, caller)
	if err != nil {
		return LookupList{}, err
	}

	pairs := make([]Pair, 0, len(items))
	for i, item := range items {
		pair, err := decodePair(item, TypeCode(keyType), TypeCode(valueType), i)
		if err != nil {
			err := errors.Wrapf(err, "%s error", caller)
			return LookupList{}, err
		}
		pairs = append(pairs, pair)
	}

	return LookupList{
		keyType:   TypeCode(keyType),
		valueType: TypeCode(valueType),
		pairs:     pairs,
	}, nil
}

func decodePair(raw json.RawMessage, keyType TypeCode, valueType TypeCode, index int) (Pair, error) {
	caller := fmt.Sprintf("list[%d]", index)
	obj, err := gjson.ParseObject(raw, caller)
	if err != nil {
		return Pair{}, err
	}

	keyRaw, err := obj.Key(KeyPairKey, caller)
	if err != nil {
		return Pair{}, err
	}
	key, err := Decode(keyRaw, keyType)
	if err != nil {
		return Pair{}, errors.Wrapf(err, "%s.%s", caller, KeyPairKey)
	}

	valueRaw, err := obj.Key(KeyPairValue, caller)
	if err != nil {
		return Pair{}, err
	}
	value, err := Decode(valueRaw, valueType)
	if err != nil {
		return Pair{}, errors.Wrapf(err, "%s.%s", caller, KeyPairValue)
	}

	return Pair{Key: key, Value: value}, nil
}
