package space

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/covset/internal/tuple"
)

const simpleDoc = `
name: demo
factors:
  - mode: choose
    arity: 2
    pool: [a, b, c]
  - mode: permute
    arity: 2
    pool: [1, 2, 3]
`

func TestParse_Simple(t *testing.T) {
	def, err := Parse([]byte(simpleDoc))
	require.NoError(t, err)

	assert.Equal(t, "demo", def.Name)
	require.Len(t, def.Factors, 2)
	assert.Equal(t, "choose", def.Factors[0].Mode)
	assert.Equal(t, 2, def.Factors[0].Arity)
	require.Len(t, def.Factors[0].Pool, 3)
	assert.Nil(t, def.Relations)
}

func TestBuild_Simple_Enumerates(t *testing.T) {
	def, err := Parse([]byte(simpleDoc))
	require.NoError(t, err)

	comb, err := def.Build()
	require.NoError(t, err)

	got, err := tuple.Collect(comb)
	require.NoError(t, err)
	require.Len(t, got, 18)
	assert.Equal(t, "[a, b, 1, 2]", got[0].String())
}

func TestBuild_ScalarKinds(t *testing.T) {
	def, err := Parse([]byte(`
factors:
  - mode: choose
    arity: 1
    pool: [true, false]
  - mode: choose
    arity: 1
    pool: [7]
  - mode: choose
    arity: 1
    pool: [hello]
`))
	require.NoError(t, err)

	comb, err := def.Build()
	require.NoError(t, err)
	got, err := tuple.Collect(comb)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "[true, 7, hello]", got[0].String())
	assert.Equal(t, "[false, 7, hello]", got[1].String())
}

func TestBuild_BlockAndNestedPool(t *testing.T) {
	def, err := Parse([]byte(`
factors:
  - mode: permute
    arity: 3
    pool:
      - block: ["!", "*"]
      - factors:
          - mode: choose
            arity: 2
            pool: [x, y, z]
`))
	require.NoError(t, err)

	comb, err := def.Build()
	require.NoError(t, err)
	got, err := tuple.Collect(comb)
	require.NoError(t, err)

	// One block candidate plus three nested pairs: P(4,3) = 24.
	require.Len(t, got, 24)
	assert.Equal(t, "[!, *, x, y, x, z]", got[0].String())
}

func TestBuildSource_NoRelations_IsBareEngine(t *testing.T) {
	def, err := Parse([]byte(simpleDoc))
	require.NoError(t, err)

	src, err := def.BuildSource()
	require.NoError(t, err)
	got, err := tuple.Collect(src)
	require.NoError(t, err)
	assert.Len(t, got, 18)
}

func TestBuildSource_Pairs_Covers(t *testing.T) {
	def, err := Parse([]byte(`
factors:
  - mode: choose
    arity: 1
    pool: [true, false]
  - mode: choose
    arity: 1
    pool: [1, 2, 3]
  - mode: choose
    arity: 1
    pool: [a, b, c, d]
relations:
  pairs: true
`))
	require.NoError(t, err)

	src, err := def.BuildSource()
	require.NoError(t, err)
	got, err := tuple.Collect(src)
	require.NoError(t, err)

	// Covering subset of the 24-tuple space; the largest pair relation
	// admits 12 distinct projections, so at least 12 tuples survive.
	assert.GreaterOrEqual(t, len(got), 12)
	assert.Less(t, len(got), 24)
}

func TestBuildSource_ExplicitRelations(t *testing.T) {
	def, err := Parse([]byte(`
factors:
  - mode: choose
    arity: 1
    pool: [a, b]
  - mode: choose
    arity: 1
    pool: [1, 2]
relations:
  explicit:
    - [0]
`))
	require.NoError(t, err)

	src, err := def.BuildSource()
	require.NoError(t, err)
	got, err := tuple.Collect(src)
	require.NoError(t, err)

	// Two distinct projections at position 0, so exactly two tuples.
	assert.Len(t, got, 2)
}

// =============================================================================
// Validation
// =============================================================================

func TestParse_RejectsUnknownMode(t *testing.T) {
	_, err := Parse([]byte(`
factors:
  - mode: shuffle
    arity: 1
    pool: [a]
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mode")
}

func TestParse_RejectsZeroArity(t *testing.T) {
	_, err := Parse([]byte(`
factors:
  - mode: choose
    arity: 0
    pool: [a]
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arity")
}

func TestParse_RejectsEmptyPool(t *testing.T) {
	_, err := Parse([]byte(`
factors:
  - mode: choose
    arity: 1
    pool: []
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pool")
}

func TestParse_RejectsNoFactors(t *testing.T) {
	_, err := Parse([]byte(`name: empty`))
	require.Error(t, err)
}

func TestParse_RejectsAmbiguousPoolEntry(t *testing.T) {
	_, err := Parse([]byte(`
factors:
  - mode: choose
    arity: 1
    pool:
      - block: [a]
        factors:
          - mode: choose
            arity: 1
            pool: [b]
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one")
}

func TestParse_RejectsNegativeRelationPosition(t *testing.T) {
	_, err := Parse([]byte(`
factors:
  - mode: choose
    arity: 1
    pool: [a]
relations:
  explicit:
    - [-1]
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative")
}

func TestParse_ValidatesNestedFactors(t *testing.T) {
	_, err := Parse([]byte(`
factors:
  - mode: choose
    arity: 1
    pool:
      - factors:
          - mode: bogus
            arity: 1
            pool: [a]
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mode")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.yaml")
	require.Error(t, err)
}
