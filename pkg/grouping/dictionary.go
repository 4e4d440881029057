package grouping

import (
	"iter"

	"github.com/vnykmshr/seqflow/internal/hashindex"
	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/common/validation"
	"github.com/vnykmshr/seqflow/pkg/sequence"
)

// ToMap builds a map from the elements of source keyed by key. A nil key
// fails with errors.ErrNilKey and a repeated key with errors.ErrDuplicateKey,
// both wrapped in an *errors.KeyError.
func ToMap[T any, K comparable](source sequence.Sequence[T], key func(T) K) (map[K]T, error) {
	validation.NotNil("grouping.ToMap", "source", source, "key", key)
	return toMap(source, key, identity[T])
}

// ToMapSelect is ToMap over the projections elem of the elements.
func ToMapSelect[T any, K comparable, V any](source sequence.Sequence[T], key func(T) K, elem func(T) V) (map[K]V, error) {
	validation.NotNil("grouping.ToMapSelect", "source", source, "key", key, "elem", elem)
	return toMap(source, key, elem)
}

func toMap[T any, K comparable, V any](source sequence.Sequence[T], key func(T) K, elem func(T) V) (map[K]V, error) {
	hint := 0
	if sz, ok := source.(sequence.Sized); ok {
		hint = sz.Len()
	}
	m := make(map[K]V, hint)
	var failure error
	err := sequence.Walk(source, func(v T) bool {
		k := key(v)
		if failure = checkKey(k, func() bool { _, dup := m[k]; return dup }); failure != nil {
			return false
		}
		m[k] = elem(v)
		return true
	})
	if err == nil {
		err = failure
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func checkKey[K any](k K, exists func() bool) error {
	if validation.IsNil(any(k)) {
		return &sferrors.KeyError{Key: k, Err: sferrors.ErrNilKey}
	}
	if exists() {
		return &sferrors.KeyError{Key: k, Err: sferrors.ErrDuplicateKey}
	}
	return nil
}

// Dictionary maps unique keys to values and keeps insertion order. A built
// Dictionary is immutable and safe for concurrent reads.
type Dictionary[K, V any] struct {
	index  hashindex.Index[K, int]
	keys   []K
	values []V
}

// ToDictionary builds a Dictionary from the elements of source with keys
// matched by eq. Key errors are reported as by ToMap.
func ToDictionary[T, K, V any](source sequence.Sequence[T], key func(T) K, elem func(T) V, eq sequence.Equality[K]) (*Dictionary[K, V], error) {
	validation.NotNil("grouping.ToDictionary", "source", source, "key", key, "elem", elem, "eq", eq)
	d := &Dictionary[K, V]{index: hashindex.Custom[K, int](eq, 0)}
	var failure error
	err := sequence.Walk(source, func(v T) bool {
		k := key(v)
		if failure = checkKey(k, func() bool { return d.Contains(k) }); failure != nil {
			return false
		}
		d.index.Put(k, len(d.keys))
		d.keys = append(d.keys, k)
		d.values = append(d.values, elem(v))
		return true
	})
	if err == nil {
		err = failure
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Len returns the number of entries.
func (d *Dictionary[K, V]) Len() int { return len(d.keys) }

// Get returns the value stored for key.
func (d *Dictionary[K, V]) Get(key K) (V, bool) {
	if i, ok := d.index.Get(key); ok {
		return d.values[i], true
	}
	var zero V
	return zero, false
}

// Contains reports whether key is present.
func (d *Dictionary[K, V]) Contains(key K) bool {
	_, ok := d.index.Get(key)
	return ok
}

// Keys returns the keys in insertion order.
func (d *Dictionary[K, V]) Keys() []K {
	return append([]K(nil), d.keys...)
}

// All returns an iterator over the entries in insertion order.
func (d *Dictionary[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i, k := range d.keys {
			if !yield(k, d.values[i]) {
				return
			}
		}
	}
}
