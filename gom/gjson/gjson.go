// Package gjson reads required keys and primitive shapes out of raw JSON.
//
// Every accessor reports failures as gerror kinds (MissingKey or
// ShapeMismatch), so decoders built on top never see encoding/json errors.
package gjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/thanhnguyen2187/gom-savior/gom/gerror"
)

type (
	Kind   string
	Object map[string]json.RawMessage
)

const (
	KindObject  = Kind("object")
	KindArray   = Kind("array")
	KindString  = Kind("string")
	KindNumber  = Kind("number")
	KindBool    = Kind("bool")
	KindNull    = Kind("null")
	KindInvalid = Kind("invalid")
)

const describeLimit = 48

func KindOf(raw json.RawMessage) Kind {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return KindInvalid
	}
	switch c := trimmed[0]; {
	case c == '{':
		return KindObject
	case c == '[':
		return KindArray
	case c == '"':
		return KindString
	case c == 't' || c == 'f':
		return KindBool
	case c == 'n':
		return KindNull
	case c == '-' || ('0' <= c && c <= '9'):
		return KindNumber
	}
	return KindInvalid
}

// Describe renders a raw value for error messages: its kind plus a shortened
// copy of the text.
func Describe(raw json.RawMessage) string {
	text := string(bytes.TrimSpace(raw))
	if len(text) > describeLimit {
		text = text[:describeLimit] + "..."
	}
	return fmt.Sprintf("%s %s", KindOf(raw), text)
}

func mismatch(caller string, expected string, raw json.RawMessage) error {
	return gerror.ShapeMismatch(caller, expected, Describe(raw))
}

func ParseObject(raw json.RawMessage, caller string) (Object, error) {
	if KindOf(raw) != KindObject {
		return nil, mismatch(caller, "object", raw)
	}
	obj := Object{}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, mismatch(caller, "object", raw)
	}
	return obj, nil
}

func ParseArray(raw json.RawMessage, caller string) ([]json.RawMessage, error) {
	if KindOf(raw) != KindArray {
		return nil, mismatch(caller, "array", raw)
	}
	items := make([]json.RawMessage, 0)
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, mismatch(caller, "array", raw)
	}
	return items, nil
}

func ParseString(raw json.RawMessage, caller string) (string, error) {
	if KindOf(raw) != KindString {
		return "", mismatch(caller, "string", raw)
	}
	s := ""
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", mismatch(caller, "string", raw)
	}
	return s, nil
}

func ParseBool(raw json.RawMessage, caller string) (bool, error) {
	if KindOf(raw) != KindBool {
		return false, mismatch(caller, "bool", raw)
	}
	b := false
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, mismatch(caller, "bool", raw)
	}
	return b, nil
}

// ParseNumber keeps the literal text of the number so that integers wider
// than a float64 mantissa survive.
func ParseNumber(raw json.RawMessage, caller string) (json.Number, error) {
	if KindOf(raw) != KindNumber {
		return "", mismatch(caller, "number", raw)
	}
	n := json.Number("")
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", mismatch(caller, "number", raw)
	}
	return n, nil
}

func ParseUint(raw json.RawMessage, caller string) (uint64, error) {
	n, err := ParseNumber(raw, caller)
	if err != nil {
		return 0, err
	}
	u, err := strconv.ParseUint(n.String(), 10, 64)
	if err != nil {
		return 0, mismatch(caller, "non-negative integer", raw)
	}
	return u, nil
}

func (r Object) Has(key string) bool {
	_, ok := r[key]
	return ok
}

func (r Object) Key(key string, caller string) (json.RawMessage, error) {
	value, ok := r[key]
	if !ok {
		return nil, gerror.MissingKey(caller, key)
	}
	return value, nil
}

func (r Object) KeyObject(key string, caller string) (Object, error) {
	value, err := r.Key(key, caller)
	if err != nil {
		return nil, err
	}
	return ParseObject(value, fmt.Sprintf("%s[%s]", caller, key))
}

func (r Object) KeyArray(key string, caller string) ([]json.RawMessage, error) {
	value, err := r.Key(key, caller)
	if err != nil {
		return nil, err
	}
	return ParseArray(value, fmt.Sprintf("%s[%s]", caller, key))
}

func (r Object) KeyString(key string, caller string) (string, error) {
	value, err := r.Key(key, caller)
	if err != nil {
		return "", err
	}
	return ParseString(value, fmt.Sprintf("%s[%s]", caller, key))
}

func (r Object) KeyNumber(key string, caller string) (json.Number, error) {
	value, err := r.Key(key, caller)
	if err != nil {
		return "", err
	}
	return ParseNumber(value, fmt.Sprintf("%s[%s]", caller, key))
}

func (r Object) KeyUint(key string, caller string) (uint64, error) {
	value, err := r.Key(key, caller)
	if err != nil {
		return 0, err
	}
	return ParseUint(value, fmt.Sprintf("%s[%s]", caller, key))
}
