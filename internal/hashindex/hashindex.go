// Package hashindex provides the key index shared by set operators, lookups
// and dictionaries. Keys are matched either by Go equality or by a supplied
// Equality.
package hashindex

import "reflect"

// Equality matches keys that Go's == cannot, or matches them differently.
// Equal keys must produce equal hashes.
type Equality[K any] interface {
	Equal(a, b K) bool
	Hash(k K) uint64
}

// Index maps keys to values.
type Index[K, V any] interface {
	Get(k K) (V, bool)
	Put(k K, v V)
	Delete(k K) bool
	Len() int
}

// Natural returns an Index using Go equality on K, except that all
// floating-point NaN keys match each other. NaN nested in a struct or array key
// still never matches. An interface key holding an unhashable value panics.
func Natural[K comparable, V any](hint int) Index[K, V] {
	return &naturalIndex[K, V]{m: make(map[K]V, hint)}
}

// Custom returns an Index matching keys with eq.
func Custom[K, V any](eq Equality[K], hint int) Index[K, V] {
	return &customIndex[K, V]{
		eq:      eq,
		buckets: make(map[uint64][]entry[K, V], hint),
	}
}

// Add inserts k into a set-shaped index and reports whether it was absent.
func Add[K any](set Index[K, struct{}], k K) bool {
	if _, ok := set.Get(k); ok {
		return false
	}
	set.Put(k, struct{}{})
	return true
}

type naturalIndex[K comparable, V any] struct {
	m      map[K]V
	nan    V
	hasNaN bool
}

// IsNaN reports whether k is a float NaN, directly or behind an interface.
func IsNaN[K comparable](k K) bool {
	if k == k {
		return false
	}
	switch reflect.ValueOf(k).Kind() {
	case reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func (n *naturalIndex[K, V]) Get(k K) (V, bool) {
	if IsNaN(k) {
		return n.nan, n.hasNaN
	}
	v, ok := n.m[k]
	return v, ok
}

func (n *naturalIndex[K, V]) Put(k K, v V) {
	if IsNaN(k) {
		n.nan, n.hasNaN = v, true
		return
	}
	n.m[k] = v
}

func (n *naturalIndex[K, V]) Delete(k K) bool {
	if IsNaN(k) {
		if !n.hasNaN {
			return false
		}
		var zero V
		n.nan, n.hasNaN = zero, false
		return true
	}
	if _, ok := n.m[k]; !ok {
		return false
	}
	delete(n.m, k)
	return true
}

func (n *naturalIndex[K, V]) Len() int {
	if n.hasNaN {
		return len(n.m) + 1
	}
	return len(n.m)
}

type entry[K, V any] struct {
	key   K
	value V
}

type customIndex[K, V any] struct {
	eq      Equality[K]
	buckets map[uint64][]entry[K, V]
	size    int
}

func (c *customIndex[K, V]) find(k K) (uint64, int) {
	h := c.eq.Hash(k)
	for i, e := range c.buckets[h] {
		if c.eq.Equal(e.key, k) {
			return h, i
		}
	}
	return h, -1
}

func (c *customIndex[K, V]) Get(k K) (V, bool) {
	h, i := c.find(k)
	if i < 0 {
		var zero V
		return zero, false
	}
	return c.buckets[h][i].value, true
}

func (c *customIndex[K, V]) Put(k K, v V) {
	h, i := c.find(k)
	if i >= 0 {
		c.buckets[h][i].value = v
		return
	}
	c.buckets[h] = append(c.buckets[h], entry[K, V]{key: k, value: v})
	c.size++
}

func (c *customIndex[K, V]) Delete(k K) bool {
	h, i := c.find(k)
	if i < 0 {
		return false
	}
	bucket := c.buckets[h]
	bucket = append(bucket[:i], bucket[i+1:]...)
	if len(bucket) == 0 {
		delete(c.buckets, h)
	} else {
		c.buckets[h] = bucket
	}
	c.size--
	return true
}

func (c *customIndex[K, V]) Len() int { return c.size }
