package engine

import (
	"iter"

	"github.com/roach88/covset/internal/tuple"
)

// Combinator generates combinations and permutations of input pools.
//
// Pools mix literal values, multi-value blocks (tuple.Tuple entries,
// flattened into the results whole), and nested sources wrapped with
// tuple.Nest - including other Combinators and filters.
//
// Builder chains do not create new Combinators: the base instance is
// mutated and returned. The factor list is append-only and must be
// fixed before generation starts; a Combinator is built by a single
// owner and is not safe for concurrent mutation.
//
// Example:
//
//	engine.New().
//		ChooseTwo(tuple.S("a"), tuple.S("b"), tuple.S("c")).
//		PermuteTwo(tuple.I(1), tuple.I(2), tuple.I(3))
//
// yields 18 tuples of arity 4, starting [a, b, 1, 2], [a, b, 1, 3],
// [a, b, 2, 1].
type Combinator struct {
	factors []factor
}

type factor struct {
	combine bool
	arity   int
	pool    []tuple.PoolEntry
}

// New creates an empty Combinator. With no factors added, generation
// yields a single empty tuple.
func New() *Combinator {
	return &Combinator{}
}

// ChooseOne appends a stage that picks one candidate from the pool.
// Multiplies the total result count by N, the flattened candidate
// count.
func (c *Combinator) ChooseOne(pool ...tuple.PoolEntry) *Combinator {
	return c.ChooseR(1, pool...)
}

// ChooseTwo appends a stage that picks two candidates from the pool.
// Result tuples that would repeat an earlier pick's candidate set in a
// different order are not produced.
func (c *Combinator) ChooseTwo(pool ...tuple.PoolEntry) *Combinator {
	return c.ChooseR(2, pool...)
}

// ChooseThree appends a stage that picks three candidates from the
// pool, one result per unordered set.
func (c *Combinator) ChooseThree(pool ...tuple.PoolEntry) *Combinator {
	return c.ChooseR(3, pool...)
}

// ChooseFour appends a stage that picks four candidates from the pool,
// one result per unordered set.
func (c *Combinator) ChooseFour(pool ...tuple.PoolEntry) *Combinator {
	return c.ChooseR(4, pool...)
}

// ChooseFive appends a stage that picks five candidates from the pool,
// one result per unordered set.
func (c *Combinator) ChooseFive(pool ...tuple.PoolEntry) *Combinator {
	return c.ChooseR(5, pool...)
}

// ChooseR appends a combination stage of arity r: one result per
// unordered r-subset of the flattened candidates, C(N, r) in total.
//
// No validation happens here. If r exceeds the flattened candidate
// count - which is only knowable at consumption time when the pool
// nests sources - the stage yields zero results and the overall
// sequence is empty. An r below one behaves the same way.
func (c *Combinator) ChooseR(r int, pool ...tuple.PoolEntry) *Combinator {
	c.factors = append(c.factors, factor{combine: true, arity: r, pool: pool})
	return c
}

// PermuteOne appends a stage that picks one candidate from the pool.
// Arity-1 draws are mode-independent: identical to ChooseOne.
func (c *Combinator) PermuteOne(pool ...tuple.PoolEntry) *Combinator {
	return c.ChooseOne(pool...)
}

// PermuteTwo appends a stage that picks an ordered pair of distinct
// candidates. Multiplies the total result count by N*(N-1).
func (c *Combinator) PermuteTwo(pool ...tuple.PoolEntry) *Combinator {
	return c.PermuteN(2, pool...)
}

// PermuteThree appends a stage that picks an ordered triple of
// distinct candidates.
func (c *Combinator) PermuteThree(pool ...tuple.PoolEntry) *Combinator {
	return c.PermuteN(3, pool...)
}

// PermuteFour appends a stage that picks an ordered quadruple of
// distinct candidates.
func (c *Combinator) PermuteFour(pool ...tuple.PoolEntry) *Combinator {
	return c.PermuteN(4, pool...)
}

// PermuteFive appends a stage that picks an ordered quintuple of
// distinct candidates.
func (c *Combinator) PermuteFive(pool ...tuple.PoolEntry) *Combinator {
	return c.PermuteN(5, pool...)
}

// PermuteN appends a permutation stage of arity r: one result per
// ordered selection of r distinct candidates, N!/(N-r)! in total.
// Over-arity and sub-one r yield zero results, as with ChooseR.
func (c *Combinator) PermuteN(r int, pool ...tuple.PoolEntry) *Combinator {
	c.factors = append(c.factors, factor{combine: false, arity: r, pool: pool})
	return c
}

// Tuples implements tuple.Source. Each call starts an independent
// enumeration; content and order are identical across calls as long as
// every nested source honors the same contract.
func (c *Combinator) Tuples() iter.Seq2[tuple.Tuple, error] {
	factors := c.factors
	return func(yield func(tuple.Tuple, error) bool) {
		_, err := emitFrom(factors, 0, tuple.Tuple{}, func(t tuple.Tuple) (bool, error) {
			return yield(t, nil), nil
		})
		if err != nil {
			yield(nil, err)
		}
	}
}
