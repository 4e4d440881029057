package grouping

import (
	"testing"

	"github.com/stretchr/testify/require"

	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/sequence"
)

func TestToMap(t *testing.T) {
	m, err := ToMap(sequence.FromSlice(people), name)
	require.NoError(t, err)
	require.Len(t, m, 5)
	require.Equal(t, 5, m["Scott"].age)

	ages, err := ToMapSelect(sequence.FromSlice(people), name, func(p person) int { return p.age })
	require.NoError(t, err)
	require.Equal(t, 3, ages["Rob"])
}

func TestToMapKeyErrors(t *testing.T) {
	_, err := ToMap(sequence.FromSlice(people), nameLen)
	require.ErrorIs(t, err, sferrors.ErrDuplicateKey)
	var keyErr *sferrors.KeyError
	require.ErrorAs(t, err, &keyErr)
	require.Equal(t, 4, keyErr.Key)

	var nilKey *string
	_, err = ToMap(sequence.Of(1), func(int) *string { return nilKey })
	require.ErrorIs(t, err, sferrors.ErrNilKey)
}

func TestToDictionary(t *testing.T) {
	d, err := ToDictionary(sequence.Of("b", "a", "c"), func(s string) string { return s },
		func(s string) int { return int(s[0]) }, sequence.FoldCase)
	require.NoError(t, err)
	require.Equal(t, 3, d.Len())
	require.Equal(t, []string{"b", "a", "c"}, d.Keys())

	v, ok := d.Get("A")
	require.True(t, ok)
	require.Equal(t, int('a'), v)
	require.False(t, d.Contains("z"))

	var keys []string
	for k := range d.All() {
		keys = append(keys, k)
	}
	require.Equal(t, []string{"b", "a", "c"}, keys)

	_, err = ToDictionary(sequence.Of("x", "X"), func(s string) string { return s },
		func(s string) string { return s }, sequence.FoldCase)
	require.ErrorIs(t, err, sferrors.ErrDuplicateKey)
}
