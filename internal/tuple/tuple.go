package tuple

import (
	"encoding/binary"
	"strings"
)

// Tuple is an immutable ordered vector of heterogeneous values.
// Equality is element-wise and order-sensitive. A Tuple must not be
// mutated after construction; operations that extend a tuple return a
// fresh backing array.
type Tuple []Value

// T creates a Tuple from values.
func T(vals ...Value) Tuple {
	return Tuple(vals)
}

// Equal reports whether two tuples contain the same elements in the
// same order.
func (t Tuple) Equal(u Tuple) bool {
	if len(t) != len(u) {
		return false
	}
	for i := range t {
		if t[i] != u[i] {
			return false
		}
	}
	return true
}

// Key returns the tuple's canonical key encoding, usable as a map key.
// Two tuples have the same key exactly when Equal reports true: the
// element encodings are tagged and length-delimited, so no element
// boundary ambiguity can make distinct tuples collide.
func (t Tuple) Key() string {
	b := make([]byte, 0, 8*len(t))
	b = binary.AppendUvarint(b, uint64(len(t)))
	for _, v := range t {
		b = v.appendKey(b)
	}
	return string(b)
}

// Concat returns a new tuple holding t's elements followed by u's.
// Neither input is modified; the result has its own backing array.
func (t Tuple) Concat(u Tuple) Tuple {
	out := make(Tuple, 0, len(t)+len(u))
	out = append(out, t...)
	return append(out, u...)
}

// String renders the tuple as "[a, b, 1, 2]". Elements print via
// Value.Display, unquoted. This form is stable: golden files and the
// CLI text output depend on it.
func (t Tuple) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range t {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.Display())
	}
	sb.WriteByte(']')
	return sb.String()
}
