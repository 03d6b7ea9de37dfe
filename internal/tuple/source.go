package tuple

import "iter"

// Source produces a lazy, finite sequence of tuples.
//
// The contract is restartability: every call to Tuples returns a fresh,
// independent stream with identical content in identical order. No
// consumer may assume a stream is cached; nested use re-invokes Tuples
// every time the sequence is needed. A Source that returns different
// content on repeated invocation violates the contract; the violation
// is not detected, and behavior downstream of it is undefined.
//
// Iteration is pull-based and single-threaded: elements are computed
// on demand by the consumer, and a consumer bounds work by stopping
// early. The error value is non-nil only for the terminal element of a
// failed stream; after yielding an error the stream ends.
type Source interface {
	Tuples() iter.Seq2[Tuple, error]
}

// Fixed is a Source over a fixed, in-memory list of tuples. It yields
// the tuples in slice order and never fails.
type Fixed []Tuple

// Tuples implements Source.
func (f Fixed) Tuples() iter.Seq2[Tuple, error] {
	return func(yield func(Tuple, error) bool) {
		for _, t := range f {
			if !yield(t, nil) {
				return
			}
		}
	}
}

// Collect drains a source into a slice. Returns the first stream error
// encountered, with any tuples collected before it discarded.
func Collect(s Source) ([]Tuple, error) {
	var out []Tuple
	for t, err := range s.Tuples() {
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Materialize realizes a source as a two-dimensional value slice, for
// collaborators that need an eager snapshot instead of the lazy
// interface.
func Materialize(s Source) ([][]Value, error) {
	tuples, err := Collect(s)
	if err != nil {
		return nil, err
	}
	out := make([][]Value, len(tuples))
	for i, t := range tuples {
		out[i] = []Value(t)
	}
	return out, nil
}
