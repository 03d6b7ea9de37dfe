package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/covset/internal/tuple"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "plans.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_CreatesDatabase(t *testing.T) {
	s := openTestStore(t)
	require.NotNil(t, s)
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestSavePlan_Roundtrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	src := tuple.Fixed{
		tuple.T(tuple.S("a"), tuple.I(1), tuple.B(true)),
		tuple.T(tuple.S("b"), tuple.I(2), tuple.B(false)),
	}

	id, err := s.SavePlan(ctx, "browser-matrix", src)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	plan, err := s.LoadPlan(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, "browser-matrix", plan.Name)
	assert.Equal(t, 3, plan.Arity)
	assert.Equal(t, 2, plan.RowCount)
	require.Len(t, plan.Tuples, 2)
	assert.True(t, plan.Tuples[0].Equal(tuple.T(tuple.S("a"), tuple.I(1), tuple.B(true))))
	assert.True(t, plan.Tuples[1].Equal(tuple.T(tuple.S("b"), tuple.I(2), tuple.B(false))))
}

func TestSavePlan_KindsSurviveRoundtrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// "1" the string and 1 the int must come back as what they were.
	src := tuple.Fixed{tuple.T(tuple.S("1"), tuple.I(1))}
	id, err := s.SavePlan(ctx, "kinds", src)
	require.NoError(t, err)

	plan, err := s.LoadPlan(ctx, id)
	require.NoError(t, err)
	require.Len(t, plan.Tuples, 1)
	assert.Equal(t, tuple.S("1"), plan.Tuples[0][0])
	assert.Equal(t, tuple.I(1), plan.Tuples[0][1])
}

func TestSavePlan_EmptySource(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SavePlan(ctx, "empty", tuple.Fixed{})
	require.NoError(t, err)

	plan, err := s.LoadPlan(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, plan.Arity)
	assert.Equal(t, 0, plan.RowCount)
	assert.Empty(t, plan.Tuples)
}

func TestLoadPlan_NotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.LoadPlan(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestListPlans_NewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.SavePlan(ctx, "first", tuple.Fixed{tuple.T(tuple.I(1))})
	require.NoError(t, err)
	second, err := s.SavePlan(ctx, "second", tuple.Fixed{tuple.T(tuple.I(2))})
	require.NoError(t, err)

	plans, err := s.ListPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 2)

	ids := []string{plans[0].ID, plans[1].ID}
	assert.Contains(t, ids, first)
	assert.Contains(t, ids, second)
	assert.False(t, plans[0].CreatedAt.Before(plans[1].CreatedAt))
}

func TestPlan_SourceIsRestartable(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SavePlan(ctx, "replay", tuple.Fixed{
		tuple.T(tuple.S("x")),
		tuple.T(tuple.S("y")),
	})
	require.NoError(t, err)

	plan, err := s.LoadPlan(ctx, id)
	require.NoError(t, err)

	for pass := 0; pass < 2; pass++ {
		got, err := tuple.Collect(plan.Source())
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "[x]", got[0].String())
		assert.Equal(t, "[y]", got[1].String())
	}
}

func TestMarshalRow_Unknown(t *testing.T) {
	_, err := unmarshalRow([]byte(`[{}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kind tag")
}
