package cover

import (
	"errors"
	"fmt"
)

// Error represents a failure detected while constructing or streaming
// a Filter. It carries structured fields for diagnostics; which fields
// are set depends on the code.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Count and Limit are set for capacity errors.
	Count int
	Limit int

	// Position and Arity are set for projection errors.
	Position int
	Arity    int
}

// ErrorCode categorizes filter errors.
type ErrorCode string

const (
	// CodeCapacityExceeded indicates the materialized source grew past
	// the signed 32-bit tuple count limit.
	CodeCapacityExceeded ErrorCode = "CAPACITY_EXCEEDED"

	// CodePositionOutOfRange indicates a relation position at or past
	// the arity of a tuple it was applied to.
	CodePositionOutOfRange ErrorCode = "POSITION_OUT_OF_RANGE"
)

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Code {
	case CodeCapacityExceeded:
		return fmt.Sprintf("%s: %s (limit=%d)", e.Code, e.Message, e.Limit)
	case CodePositionOutOfRange:
		return fmt.Sprintf("%s: %s (position=%d, arity=%d)", e.Code, e.Message, e.Position, e.Arity)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsCapacityError returns true if the error is a capacity overflow.
// Uses errors.As to handle wrapped errors.
func IsCapacityError(err error) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code == CodeCapacityExceeded
	}
	return false
}

// IsPositionError returns true if the error is an out-of-range
// relation position. Uses errors.As to handle wrapped errors.
func IsPositionError(err error) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code == CodePositionOutOfRange
	}
	return false
}

func newCapacityError(limit int) *Error {
	return &Error{
		Code:    CodeCapacityExceeded,
		Message: "materialized source exceeds tuple count limit",
		Limit:   limit,
	}
}

func newPositionError(pos, arity int) *Error {
	return &Error{
		Code:     CodePositionOutOfRange,
		Message:  "relation position outside tuple",
		Position: pos,
		Arity:    arity,
	}
}
