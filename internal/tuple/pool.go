package tuple

import "iter"

// PoolEntry is one declared entry in a selection stage's pool. A pool
// of K entries flattens into N >= K candidates, each candidate being
// one tuple:
//
//   - a literal value (String, Int, Bool) contributes one singleton
//     candidate
//   - a Tuple contributes itself as one multi-element candidate (a
//     fixed block injected whole)
//   - a nested Source, wrapped via Nest, contributes one candidate per
//     tuple it produces, re-invoked fresh for every context that needs
//     the pool
//
// Candidates yields the entry's flattened candidates in order.
type PoolEntry interface {
	Candidates() iter.Seq2[Tuple, error]
}

func one(t Tuple) iter.Seq2[Tuple, error] {
	return func(yield func(Tuple, error) bool) {
		yield(t, nil)
	}
}

// Candidates yields the single candidate [v].
func (v String) Candidates() iter.Seq2[Tuple, error] { return one(Tuple{v}) }

// Candidates yields the single candidate [v].
func (v Int) Candidates() iter.Seq2[Tuple, error] { return one(Tuple{v}) }

// Candidates yields the single candidate [v].
func (v Bool) Candidates() iter.Seq2[Tuple, error] { return one(Tuple{v}) }

// Candidates yields the tuple itself as one candidate.
func (t Tuple) Candidates() iter.Seq2[Tuple, error] { return one(t) }

type nested struct {
	src Source
}

// Nest adapts a Source into a pool entry. Each of the source's tuples
// becomes one candidate carrying that tuple's full element content.
// The source is re-invoked on every pool walk, per the Source
// restartability contract.
func Nest(src Source) PoolEntry {
	return nested{src: src}
}

func (n nested) Candidates() iter.Seq2[Tuple, error] {
	return n.src.Tuples()
}
