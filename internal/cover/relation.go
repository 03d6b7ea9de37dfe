package cover

import (
	"fmt"

	"github.com/roach88/covset/internal/engine"
	"github.com/roach88/covset/internal/tuple"
)

// Relation is an ordered list of positions into a generated tuple,
// defining the sub-tuple projection the filter accounts coverage for.
// Every position must be non-negative and below the arity of every
// tuple it is applied to.
type Relation []int

// RelationList is an ordered list of relations, as produced by the
// canonical helpers AllPairs through AllKSets.
type RelationList []Relation

// RelationArg is a sealed interface over the forms a filter
// constructor accepts: a single Relation, or a RelationList flattened
// in place. Only those two types implement it.
type RelationArg interface {
	appendRelations(rels []Relation) []Relation
}

func (r Relation) appendRelations(rels []Relation) []Relation {
	return append(rels, r)
}

func (l RelationList) appendRelations(rels []Relation) []Relation {
	return append(rels, l...)
}

// project extracts the sub-tuple at r's positions.
func (r Relation) project(t tuple.Tuple) (tuple.Tuple, error) {
	sub := make(tuple.Tuple, len(r))
	for i, pos := range r {
		if pos < 0 || pos >= len(t) {
			return nil, newPositionError(pos, len(t))
		}
		sub[i] = t[pos]
	}
	return sub, nil
}

// AllPairs lists every ascending index pair of {0..n-1}.
func AllPairs(n int) RelationList { return AllKSets(n, 2) }

// AllTriples lists every ascending index triple of {0..n-1}.
func AllTriples(n int) RelationList { return AllKSets(n, 3) }

// AllQuads lists every ascending index quadruple of {0..n-1}.
func AllQuads(n int) RelationList { return AllKSets(n, 4) }

// AllQuints lists every ascending index quintuple of {0..n-1}.
func AllQuints(n int) RelationList { return AllKSets(n, 5) }

// AllKSets lists every k-element ascending index subset of {0..n-1},
// one relation per subset. It drives the enumeration engine with a
// literal index pool rather than re-implementing subset enumeration;
// the engine's canonical combination order makes the list ascending
// both within and across relations.
func AllKSets(n, k int) RelationList {
	pool := make([]tuple.PoolEntry, n)
	for i := range pool {
		pool[i] = tuple.I(int64(i))
	}
	comb := engine.New().ChooseR(k, pool...)

	var rels RelationList
	for t, err := range comb.Tuples() {
		if err != nil {
			// Literal index pools have no failing path.
			panic(fmt.Sprintf("cover: index enumeration failed: %v", err))
		}
		rel := make(Relation, len(t))
		for i, v := range t {
			rel[i] = int(v.(tuple.Int))
		}
		rels = append(rels, rel)
	}
	return rels
}
