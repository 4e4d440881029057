package sequence

import (
	"cmp"
	"hash/maphash"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/vnykmshr/seqflow/internal/hashindex"
	"github.com/vnykmshr/seqflow/pkg/common/validation"
)

// Equality decides whether two values are equal and hashes them consistently:
// values that are Equal must have the same Hash.
type Equality[T any] interface {
	Equal(a, b T) bool
	Hash(v T) uint64
}

type comparableEquality[T comparable] struct {
	seed maphash.Seed
}

// Comparable returns the Equality given by Go's == operator, except that
// floating-point NaN equals NaN.
func Comparable[T comparable]() Equality[T] {
	return comparableEquality[T]{seed: maphash.MakeSeed()}
}

func (e comparableEquality[T]) Equal(a, b T) bool {
	return a == b || (hashindex.IsNaN(a) && hashindex.IsNaN(b))
}

func (e comparableEquality[T]) Hash(v T) uint64 {
	if hashindex.IsNaN(v) {
		return 0
	}
	return maphash.Comparable(e.seed, v)
}

type funcEquality[T any] struct {
	equal func(a, b T) bool
	hash  func(T) uint64
}

// EqualityFunc builds an Equality from an equality and a hash function.
func EqualityFunc[T any](equal func(a, b T) bool, hash func(T) uint64) Equality[T] {
	validation.NotNil("sequence.EqualityFunc", "equal", equal, "hash", hash)
	return funcEquality[T]{equal: equal, hash: hash}
}

func (e funcEquality[T]) Equal(a, b T) bool { return e.equal(a, b) }
func (e funcEquality[T]) Hash(v T) uint64   { return e.hash(v) }

// KeyEquality compares values by a comparable key extracted from them.
func KeyEquality[T any, K comparable](key func(T) K) Equality[T] {
	validation.NotNil("sequence.KeyEquality", "key", key)
	seed := maphash.MakeSeed()
	return funcEquality[T]{
		equal: func(a, b T) bool { return key(a) == key(b) },
		hash:  func(v T) uint64 { return maphash.Comparable(seed, key(v)) },
	}
}

type foldCase struct{}

// FoldCase compares strings case-insensitively.
var FoldCase Equality[string] = foldCase{}

func (foldCase) Equal(a, b string) bool { return strings.ToLower(a) == strings.ToLower(b) }
func (foldCase) Hash(v string) uint64   { return xxhash.Sum64String(strings.ToLower(v)) }

// CompareFoldCase orders strings case-insensitively.
func CompareFoldCase(a, b string) int {
	return cmp.Compare(strings.ToLower(a), strings.ToLower(b))
}
