package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/covset/internal/tuple"
)

// Row encoding: a JSON array of single-key objects, one per element,
// keyed by kind tag - [{"s":"a"},{"i":1},{"b":true}]. The tag keeps
// element kinds distinct across the round trip.

type rowElem struct {
	S *string `json:"s,omitempty"`
	I *int64  `json:"i,omitempty"`
	B *bool   `json:"b,omitempty"`
}

func marshalRow(t tuple.Tuple) ([]byte, error) {
	elems := make([]rowElem, len(t))
	for i, v := range t {
		switch v := v.(type) {
		case tuple.String:
			s := string(v)
			elems[i].S = &s
		case tuple.Int:
			n := int64(v)
			elems[i].I = &n
		case tuple.Bool:
			b := bool(v)
			elems[i].B = &b
		default:
			return nil, fmt.Errorf("marshal row: unknown element kind %T", v)
		}
	}
	return json.Marshal(elems)
}

func unmarshalRow(raw []byte) (tuple.Tuple, error) {
	var elems []rowElem
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("unmarshal row: %w", err)
	}
	t := make(tuple.Tuple, len(elems))
	for i, e := range elems {
		switch {
		case e.S != nil:
			t[i] = tuple.String(*e.S)
		case e.I != nil:
			t[i] = tuple.Int(*e.I)
		case e.B != nil:
			t[i] = tuple.Bool(*e.B)
		default:
			return nil, fmt.Errorf("unmarshal row: element %d has no kind tag", i)
		}
	}
	return t, nil
}
