package engine

import "github.com/roach88/covset/internal/tuple"

// sink receives one finished or partial tuple. It returns false to
// stop the enumeration, or a non-nil error if a nested source failed.
type sink func(tuple.Tuple) (bool, error)

// emitFrom expands factors[i:] against the accumulated prefix and
// feeds every completed tuple to out. Returns false once out stops the
// walk.
func emitFrom(factors []factor, i int, prefix tuple.Tuple, out sink) (bool, error) {
	if i == len(factors) {
		return out(prefix)
	}
	f := factors[i]
	if f.arity < 1 {
		return true, nil
	}
	next := func(t tuple.Tuple) (bool, error) {
		return emitFrom(factors, i+1, t, out)
	}
	if f.combine {
		return drawCombine(f.pool, prefix, 0, f.arity, next)
	}
	return drawPermute(f.pool, prefix, nil, f.arity, next)
}

// drawCombine enumerates unordered r-selections. skip is the count of
// flattened positions already consumed by shallower levels: picks at
// this level start there, which is what makes each unordered set come
// out exactly once, in strictly-increasing position order.
func drawCombine(pool []tuple.PoolEntry, prefix tuple.Tuple, skip, r int, out sink) (bool, error) {
	return eachCandidate(pool, skip, nil, func(pos int, cand tuple.Tuple) (bool, error) {
		picked := prefix.Concat(cand)
		if r == 1 {
			return out(picked)
		}
		return drawCombine(pool, picked, pos+1, r-1, out)
	})
}

// drawPermute enumerates ordered r-selections without repetition.
// taken holds the flattened positions consumed by shallower levels; it
// is extended copy-on-write per branch, so sibling branches never see
// each other's picks.
func drawPermute(pool []tuple.PoolEntry, prefix tuple.Tuple, taken posSet, r int, out sink) (bool, error) {
	return eachCandidate(pool, 0, taken, func(pos int, cand tuple.Tuple) (bool, error) {
		picked := prefix.Concat(cand)
		if r == 1 {
			return out(picked)
		}
		return drawPermute(pool, picked, taken.with(pos), r-1, out)
	})
}

// eachCandidate walks the pool's flattened candidates in declaration
// order, invoking fn with each candidate's flattened position. The
// first skip positions and any position in taken are passed over but
// still counted, so positions stay stable across recursion levels.
// Nested sources are re-invoked on every walk.
func eachCandidate(pool []tuple.PoolEntry, skip int, taken posSet, fn func(pos int, cand tuple.Tuple) (bool, error)) (bool, error) {
	pos := 0
	for _, entry := range pool {
		for cand, err := range entry.Candidates() {
			if err != nil {
				return false, err
			}
			p := pos
			pos++
			if p < skip || taken.has(p) {
				continue
			}
			cont, err := fn(p, cand)
			if !cont || err != nil {
				return cont, err
			}
		}
	}
	return true, nil
}

// posSet is an immutable set of flattened candidate positions. with
// copies; the receiver is never modified, so a posSet can be shared
// across recursion branches safely.
type posSet []int

func (s posSet) has(p int) bool {
	for _, q := range s {
		if q == p {
			return true
		}
	}
	return false
}

func (s posSet) with(p int) posSet {
	out := make(posSet, len(s), len(s)+1)
	copy(out, s)
	return append(out, p)
}
