package ds

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// LinkedHashMap is a map that remembers insertion order when listing keys and marshalling. Putting
// an existing key replaces the value and keeps the original position.
type LinkedHashMap[K comparable, V any] struct {
	hashMap map[K]V
	keys    []K
}

func NewLinkedHashMap[K comparable, V any]() *LinkedHashMap[K, V] {
	return &LinkedHashMap[K, V]{
		hashMap: map[K]V{},
		keys:    make([]K, 0),
	}
}

func (r *LinkedHashMap[K, V]) Keys() []K {
	keys := make([]K, len(r.keys))
	copy(keys, r.keys)
	return keys
}

func (r *LinkedHashMap[K, V]) Len() int {
	return len(r.keys)
}

func (r *LinkedHashMap[K, V]) Put(key K, value V) {
	if _, existed := r.hashMap[key]; !existed {
		r.keys = append(r.keys, key)
	}
	r.hashMap[key] = value
}

func (r *LinkedHashMap[K, V]) Get(key K) (V, bool) {
	value, ok := r.hashMap[key]
	return value, ok
}

func (r *LinkedHashMap[K, V]) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0))

	buf.WriteRune('{')
	for i, key := range r.keys {
		keyBs, err := json.Marshal(key)
		if err != nil {
			return nil, errors.Wrapf(err, "LinkedHashMap.MarshalJSON error marshalling key %v", key)
		}
		buf.Write(keyBs)

		buf.WriteRune(':')

		valueBs, err := json.Marshal(r.hashMap[key])
		if err != nil {
			return nil, errors.Wrapf(err, "LinkedHashMap.MarshalJSON error marshalling value of key %v", key)
		}
		buf.Write(valueBs)

		if i < len(r.keys)-1 {
			buf.WriteRune(',')
		}
	}
	buf.WriteRune('}')

	return buf.Bytes(), nil
}
