package gnode

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/thanhnguyen2187/gom-savior/gom/gjson"
	"github.com/thanhnguyen2187/gom-savior/gom/gvalue"
)

// DecodeField reads `{"id": <string>, "type": <uint>, "value": <any>}`. All
// three keys are required; the value is decoded with the declared type.
func DecodeField(raw json.RawMessage) (Field, error) {
	const caller = "gnode.DecodeField"
	obj, err := gjson.ParseObject(raw, caller)
	if err != nil {
		return Field{}, err
	}

	id, err := obj.KeyString(KeyFieldID, caller)
	if err != nil {
		return Field{}, err
	}
	code, err := obj.KeyUint(KeyFieldType, caller)
	if err != nil {
		err := errors.Wrapf(err, "%s error: field %q", caller, id)
		return Field{}, err
	}
	valueRaw, err := obj.Key(KeyFieldValue, caller)
	if err != nil {
		err := errors.Wrapf(err, "%s error: field %q", caller, id)
		return Field{}, err
	}

	value, err := gvalue.Decode(valueRaw, gvalue.TypeCode(code))
	if err != nil {
		err := errors.Wrapf(err, "%s error: field %q", caller, id)
		return Field{}, err
	}

	return Field{
		ID:    id,
		Value: value,
	}, nil
}

func DecodeNode(raw json.RawMessage) (Node, error) {
	const caller = "gnode.DecodeNode"
	obj, err := gjson.ParseObject(raw, caller)
	if err != nil {
		return Node{}, err
	}

	node := Node{}
	targets := []struct {
		key    string
		target *string
	}{
		{KeyNodeID, &node.ID},
		{KeyNodeFQN, &node.FQN},
		{KeyNodePath, &node.Path},
		{KeyNodeFileName, &node.FileName},
	}
	for _, t := range targets {
		*t.target, err = obj.KeyString(t.key, caller)
		if err != nil {
			return Node{}, err
		}
	}

	return node, nil
}

// DecodeFields decodes an `obj` array in order. The first bad field fails the
// whole array.
func DecodeFields(raw json.RawMessage) ([]Field, error) {
	const caller = "gnode.DecodeFields"
	items, err := gjson.ParseArray(raw, caller)
	if err != nil {
		return nil, err
	}

	fields := make([]Field, 0, len(items))
	for i, item := range items {
		field, err := DecodeField(item)
		if err != nil {
			err := errors.Wrapf(err, "%s error: obj[%d]", caller, i)
			return nil, err
		}
		fields = append(fields, field)
	}
	return fields, nil
}

// DecodeNodeObjPair reads one export record `{"node": {...}, "obj": [...]}`.
func DecodeNodeObjPair(raw json.RawMessage) (NodeObjPair, error) {
	const caller = "gnode.DecodeNodeObjPair"
	obj, err := gjson.ParseObject(raw, caller)
	if err != nil {
		return NodeObjPair{}, err
	}

	nodeRaw, err := obj.Key(KeyNode, caller)
	if err != nil {
		return NodeObjPair{}, err
	}
	node, err := DecodeNode(nodeRaw)
	if err != nil {
		err := errors.Wrapf(err, "%s error", caller)
		return NodeObjPair{}, err
	}

	fieldsRaw, err := obj.Key(KeyObj, caller)
	if err != nil {
		err := errors.Wrapf(err, "%s error: node %s", caller, describeNode(node))
		return NodeObjPair{}, err
	}
	fields, err := DecodeFields(fieldsRaw)
	if err != nil {
		err := errors.Wrapf(err, "%s error: node %s", caller, describeNode(node))
		return NodeObjPair{}, err
	}

	return NodeObjPair{
		Node:   node,
		Fields: fields,
	}, nil
}

// RawObj returns the `obj` array of a record without decoding it.
func RawObj(raw json.RawMessage) (json.RawMessage, error) {
	const caller = "gnode.RawObj"
	obj, err := gjson.ParseObject(raw, caller)
	if err != nil {
		return nil, err
	}
	return obj.Key(KeyObj, caller)
}

func describeNode(node Node) string {
	if node.FQN == "" {
		return fmt.Sprintf("%q", node.ID)
	}
	return fmt.Sprintf("%q (%s)", node.ID, node.FQN)
}
