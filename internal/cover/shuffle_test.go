package cover

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/covset/internal/tuple"
)

func TestShuffle_PinnedOrder(t *testing.T) {
	// The shuffled order of ten elements under seed 52 is a contract;
	// a change here means a change in every filter's output.
	data := make([]tuple.Tuple, 10)
	for i := range data {
		data[i] = tuple.T(tuple.I(int64(i)))
	}
	shuffleTuples(data)

	want := []int64{2, 3, 6, 0, 8, 7, 9, 5, 4, 1}
	require.Len(t, data, len(want))
	for i, w := range want {
		assert.Equal(t, tuple.I(w), data[i][0], "position %d", i)
	}
}

func TestShuffle_Deterministic(t *testing.T) {
	build := func() []tuple.Tuple {
		data := make([]tuple.Tuple, 25)
		for i := range data {
			data[i] = tuple.T(tuple.I(int64(i)))
		}
		shuffleTuples(data)
		return data
	}
	a, b := build(), build()
	for i := range a {
		assert.True(t, a[i].Equal(b[i]))
	}
}

func TestShuffle_TrivialSizes(t *testing.T) {
	shuffleTuples(nil)

	one := []tuple.Tuple{tuple.T(tuple.S("x"))}
	shuffleTuples(one)
	assert.Equal(t, "[x]", one[0].String())
}

func TestLCG_IntnBounds(t *testing.T) {
	r := newLCG(shuffleSeed)
	for i := 0; i < 1000; i++ {
		n := 1 + i%17
		got := r.intn(n)
		require.GreaterOrEqual(t, got, 0)
		require.Less(t, got, n)
	}
}
