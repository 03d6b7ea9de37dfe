package tuple

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

// Value is a sealed interface representing a single tuple element.
// Only String, Int, and Bool implement it. There is no float kind:
// element-wise equality must be exact, and float comparison is not.
//
// Every element kind is directly usable in a stage pool, contributing
// itself as one singleton candidate.
type Value interface {
	PoolEntry

	value() // Sealed - only these types implement it

	// Display renders the element the way tuples print it, without
	// quoting. See Tuple.String.
	Display() string

	// appendKey appends the element's canonical key encoding. The
	// encoding is tagged and length-delimited so that distinct element
	// sequences never produce the same tuple key.
	appendKey(b []byte) []byte
}

// String represents a string element.
type String string

func (String) value() {}

// Int represents an integer element. Always int64.
type Int int64

func (Int) value() {}

// Bool represents a boolean element.
type Bool bool

func (Bool) value() {}

// S creates a String element.
func S(s string) String { return String(s) }

// I creates an Int element.
func I(n int64) Int { return Int(n) }

// B creates a Bool element.
func B(b bool) Bool { return Bool(b) }

func (v String) Display() string { return string(v) }

func (v Int) Display() string { return strconv.FormatInt(int64(v), 10) }

func (v Bool) Display() string { return strconv.FormatBool(bool(v)) }

func (v String) appendKey(b []byte) []byte {
	b = append(b, 's')
	b = binary.AppendUvarint(b, uint64(len(v)))
	return append(b, v...)
}

func (v Int) appendKey(b []byte) []byte {
	b = append(b, 'i')
	return binary.AppendVarint(b, int64(v))
}

func (v Bool) appendKey(b []byte) []byte {
	if v {
		return append(b, 'b', 1)
	}
	return append(b, 'b', 0)
}

// Native converts a Value to its plain Go representation, for JSON
// output and storage encoding.
func Native(v Value) any {
	switch v := v.(type) {
	case String:
		return string(v)
	case Int:
		return int64(v)
	case Bool:
		return bool(v)
	}
	// Unreachable: Value is sealed.
	panic(fmt.Sprintf("tuple: unknown value kind %T", v))
}

// FromNative converts a plain Go scalar to a Value. Accepts the types
// produced by yaml.v3 and encoding/json decoding into any.
func FromNative(x any) (Value, error) {
	switch x := x.(type) {
	case string:
		return String(x), nil
	case int:
		return Int(x), nil
	case int64:
		return Int(x), nil
	case bool:
		return Bool(x), nil
	case float64:
		// JSON numbers decode as float64; accept exact integers only.
		n := int64(x)
		if float64(n) == x {
			return Int(n), nil
		}
		return nil, fmt.Errorf("tuple: non-integer number %v not representable", x)
	default:
		return nil, fmt.Errorf("tuple: unsupported element type %T", x)
	}
}
