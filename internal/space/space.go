// Package space loads declarative space definitions.
//
// A space definition is a YAML document describing the factors of a
// combinatorial space and, optionally, the relations to cover:
//
//	name: browser-matrix
//	factors:
//	  - mode: choose
//	    arity: 1
//	    pool: [chrome, firefox, safari]
//	  - mode: permute
//	    arity: 2
//	    pool:
//	      - 1
//	      - 2
//	      - block: [fast, insecure]
//	      - factors:
//	          - mode: choose
//	            arity: 1
//	            pool: [x, y]
//	relations:
//	  pairs: true
//	  explicit:
//	    - [0, 2]
//
// Pool entries are scalars (string, integer, boolean), multi-value
// blocks injected as one candidate, or nested factor lists expanded
// into the candidate space. Relations combine the k-set switches
// (pairs/triples/quads/quints, sized to the space's tuple arity) with
// explicit position lists.
package space

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/covset/internal/cover"
	"github.com/roach88/covset/internal/engine"
	"github.com/roach88/covset/internal/tuple"
)

// Definition is a parsed space document.
type Definition struct {
	// Name identifies the space; used as the default plan name when
	// persisting output.
	Name string `yaml:"name"`

	// Factors lists the selection stages in declaration order.
	Factors []Factor `yaml:"factors"`

	// Relations selects the interactions to cover. Nil means no
	// covering step: the space enumerates in full.
	Relations *Relations `yaml:"relations,omitempty"`
}

// Factor describes one selection stage.
type Factor struct {
	// Mode is "choose" (unordered, no repeats of a set) or "permute"
	// (ordered, no repeated candidates).
	Mode string `yaml:"mode"`

	// Arity is the number of candidates drawn, at least 1.
	Arity int `yaml:"arity"`

	// Pool lists the stage's candidates.
	Pool []PoolItem `yaml:"pool"`
}

// Relations describes the covering relations for a space.
type Relations struct {
	Pairs   bool `yaml:"pairs"`
	Triples bool `yaml:"triples"`
	Quads   bool `yaml:"quads"`
	Quints  bool `yaml:"quints"`

	// Explicit lists relations as position vectors.
	Explicit [][]int `yaml:"explicit,omitempty"`
}

// PoolItem is one pool entry: a scalar, a block, or a nested factor
// list. Exactly one of the three forms is set.
type PoolItem struct {
	scalar  any
	block   []any
	factors []Factor
}

type poolItemMapping struct {
	Block   []any    `yaml:"block"`
	Factors []Factor `yaml:"factors"`
}

// UnmarshalYAML implements yaml.Unmarshaler. Scalar nodes become
// literal values; mappings carry either a block or a nested factors
// key.
func (p *PoolItem) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return err
		}
		p.scalar = v
		return nil
	case yaml.MappingNode:
		var m poolItemMapping
		if err := node.Decode(&m); err != nil {
			return err
		}
		if (m.Block == nil) == (m.Factors == nil) {
			return fmt.Errorf("line %d: pool entry must have exactly one of block or factors", node.Line)
		}
		p.block = m.Block
		p.factors = m.Factors
		return nil
	default:
		return fmt.Errorf("line %d: pool entry must be a scalar or a mapping", node.Line)
	}
}

// Load reads and parses a space definition file.
func Load(path string) (*Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("space: reading %s: %w", path, err)
	}
	def, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("space: %s: %w", path, err)
	}
	return def, nil
}

// Parse parses and validates a space document.
func Parse(raw []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("parsing definition: %w", err)
	}
	if err := def.validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

func (d *Definition) validate() error {
	if len(d.Factors) == 0 {
		return fmt.Errorf("definition has no factors")
	}
	if err := validateFactors(d.Factors); err != nil {
		return err
	}
	if d.Relations != nil {
		for i, rel := range d.Relations.Explicit {
			if len(rel) == 0 {
				return fmt.Errorf("relation %d is empty", i)
			}
			for _, pos := range rel {
				if pos < 0 {
					return fmt.Errorf("relation %d has negative position %d", i, pos)
				}
			}
		}
	}
	return nil
}

func validateFactors(factors []Factor) error {
	for i, f := range factors {
		if f.Mode != "choose" && f.Mode != "permute" {
			return fmt.Errorf("factor %d: mode %q must be choose or permute", i, f.Mode)
		}
		if f.Arity < 1 {
			return fmt.Errorf("factor %d: arity %d must be at least 1", i, f.Arity)
		}
		if len(f.Pool) == 0 {
			return fmt.Errorf("factor %d: pool is empty", i)
		}
		for j, item := range f.Pool {
			if item.factors != nil {
				if err := validateFactors(item.factors); err != nil {
					return fmt.Errorf("factor %d: pool entry %d: %w", i, j, err)
				}
			}
		}
	}
	return nil
}

// Build constructs the enumeration engine for the definition's
// factors, ignoring any relations.
func (d *Definition) Build() (*engine.Combinator, error) {
	return buildCombinator(d.Factors)
}

// BuildSource constructs the definition's output source: the bare
// engine when no relations are declared, otherwise the engine wrapped
// in a covering filter. K-set switches size themselves to the space's
// tuple arity, taken from the first generated tuple.
func (d *Definition) BuildSource() (tuple.Source, error) {
	comb, err := d.Build()
	if err != nil {
		return nil, err
	}
	if d.Relations == nil {
		return comb, nil
	}

	args, err := d.relationArgs(comb)
	if err != nil {
		return nil, err
	}
	f, err := cover.New(comb, args...)
	if err != nil {
		return nil, fmt.Errorf("space: building filter: %w", err)
	}
	return f, nil
}

func (d *Definition) relationArgs(comb *engine.Combinator) ([]cover.RelationArg, error) {
	var args []cover.RelationArg
	r := d.Relations

	if r.Pairs || r.Triples || r.Quads || r.Quints {
		n, err := spaceArity(comb)
		if err != nil {
			return nil, err
		}
		if r.Pairs {
			args = append(args, cover.AllPairs(n))
		}
		if r.Triples {
			args = append(args, cover.AllTriples(n))
		}
		if r.Quads {
			args = append(args, cover.AllQuads(n))
		}
		if r.Quints {
			args = append(args, cover.AllQuints(n))
		}
	}
	for _, rel := range r.Explicit {
		args = append(args, cover.Relation(rel))
	}
	return args, nil
}

// spaceArity returns the arity of the space's tuples, zero for an
// empty space.
func spaceArity(comb *engine.Combinator) (int, error) {
	for t, err := range comb.Tuples() {
		if err != nil {
			return 0, fmt.Errorf("space: probing arity: %w", err)
		}
		return len(t), nil
	}
	return 0, nil
}

func buildCombinator(factors []Factor) (*engine.Combinator, error) {
	comb := engine.New()
	for i, f := range factors {
		pool, err := buildPool(f.Pool)
		if err != nil {
			return nil, fmt.Errorf("space: factor %d: %w", i, err)
		}
		if f.Mode == "choose" {
			comb.ChooseR(f.Arity, pool...)
		} else {
			comb.PermuteN(f.Arity, pool...)
		}
	}
	return comb, nil
}

func buildPool(items []PoolItem) ([]tuple.PoolEntry, error) {
	pool := make([]tuple.PoolEntry, 0, len(items))
	for j, item := range items {
		switch {
		case item.block != nil:
			vals := make(tuple.Tuple, len(item.block))
			for k, raw := range item.block {
				v, err := tuple.FromNative(raw)
				if err != nil {
					return nil, fmt.Errorf("pool entry %d: block element %d: %w", j, k, err)
				}
				vals[k] = v
			}
			pool = append(pool, vals)
		case item.factors != nil:
			nestedComb, err := buildCombinator(item.factors)
			if err != nil {
				return nil, fmt.Errorf("pool entry %d: %w", j, err)
			}
			pool = append(pool, tuple.Nest(nestedComb))
		default:
			v, err := tuple.FromNative(item.scalar)
			if err != nil {
				return nil, fmt.Errorf("pool entry %d: %w", j, err)
			}
			pool = append(pool, v)
		}
	}
	return pool, nil
}
