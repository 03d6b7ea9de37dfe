package cover

import (
	"fmt"
	"iter"
	"math"

	"github.com/roach88/covset/internal/tuple"
)

// maxMaterialized caps how many tuples a filter will hold. Variable
// only so tests can lower it; the operational limit is the signed
// 32-bit range.
var maxMaterialized = math.MaxInt32

// Filter wraps a tuple source and a relation list and streams the
// covering subset. Construction eagerly drains and stores the entire
// source - the one blocking, memory-proportional operation in the
// system - and shuffles it once; streaming is lazy from then on.
//
// A Filter implements tuple.Source, so it can sit inside another
// engine's pool like any other producer.
type Filter struct {
	data      []tuple.Tuple
	relations []Relation
}

// New drains src into memory, applies the fixed-seed shuffle, and
// binds the flattened relation list. Fails with a capacity error if
// the source produces more tuples than the signed 32-bit range can
// count; any error the source itself streams is returned as-is.
//
// No relation optimization is performed: redundant relations (say,
// AllPairs alongside AllTriples) only cost time and witness-set
// memory.
func New(src tuple.Source, relations ...RelationArg) (*Filter, error) {
	var data []tuple.Tuple
	for t, err := range src.Tuples() {
		if err != nil {
			return nil, fmt.Errorf("cover: draining source: %w", err)
		}
		if len(data) >= maxMaterialized {
			return nil, newCapacityError(maxMaterialized)
		}
		data = append(data, t)
	}
	shuffleTuples(data)

	var rels []Relation
	for _, arg := range relations {
		rels = arg.appendRelations(rels)
	}
	return &Filter{data: data, relations: rels}, nil
}

// Tuples implements tuple.Source. Each call starts a fresh traversal
// with new, empty witness sets; earlier traversals leave no acceptance
// state behind.
//
// A tuple is retained when at least one of its relation projections
// had not been seen before. Every relation's witness set is updated
// for every examined tuple, retained or not, so each distinct
// projection value in the source is witnessed by exactly the first
// tuple (in shuffle order) exhibiting it - and that tuple is always
// retained. That is the covering guarantee.
//
// A relation position outside a tuple's arity ends the stream with a
// position error at the first offending projection.
func (f *Filter) Tuples() iter.Seq2[tuple.Tuple, error] {
	return func(yield func(tuple.Tuple, error) bool) {
		witness := make([]map[string]struct{}, len(f.relations))
		for i := range witness {
			witness[i] = make(map[string]struct{})
		}
		for _, t := range f.data {
			retained := false
			for i, rel := range f.relations {
				sub, err := rel.project(t)
				if err != nil {
					yield(nil, err)
					return
				}
				key := sub.Key()
				if _, seen := witness[i][key]; !seen {
					witness[i][key] = struct{}{}
					retained = true
				}
			}
			if retained && !yield(t, nil) {
				return
			}
		}
	}
}
