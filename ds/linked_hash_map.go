package ds

import (
	"bytes"
	"encoding/json"
)

// LinkedHashMap is a map that remembers insertion order for Keys and JSON
// output. Putting an existing key replaces its value but keeps its position.
type LinkedHashMap[K comparable, V any] struct {
	values map[K]V
	keys   []K
}

func NewLinkedHashMap[K comparable, V any]() *LinkedHashMap[K, V] {
	return &LinkedHashMap[K, V]{
		values: map[K]V{},
		keys:   make([]K, 0),
	}
}

func (r *LinkedHashMap[K, V]) Len() int {
	return len(r.keys)
}

func (r *LinkedHashMap[K, V]) Keys() []K {
	return ShallowCopy(r.keys)
}

func (r *LinkedHashMap[K, V]) Put(key K, value V) {
	if _, existed := r.values[key]; !existed {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

func (r *LinkedHashMap[K, V]) Get(key K) (V, bool) {
	value, ok := r.values[key]
	return value, ok
}

func (r *LinkedHashMap[K, V]) MarshalJSON() ([]byte, error) {
	buf := bytes.Buffer{}

	buf.WriteRune('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteRune(',')
		}

		keyBs, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBs)

		buf.WriteRune(':')

		valueBs, err := json.Marshal(r.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(valueBs)
	}
	buf.WriteRune('}')

	return buf.Bytes(), nil
}
