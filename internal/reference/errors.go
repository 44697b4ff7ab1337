package reference

import (
	"fmt"
	"strings"
)

// UnknownReferenceError is returned when an alignment names a reference
// that is not in the sizes table.
type UnknownReferenceError struct {
	ID string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("unknown reference %q (not in sizes table)", e.ID)
}

// MissingSizesFileError is returned when no sizes table exists for a
// reference prefix.
type MissingSizesFileError struct {
	Prefix string
	Tried  []string
}

func (e *MissingSizesFileError) Error() string {
	return fmt.Sprintf("no sizes file for reference %s (tried %s)", e.Prefix, strings.Join(e.Tried, ", "))
}

// CoordinateError is returned when an aligned span falls outside the
// declared size of its reference.
type CoordinateError struct {
	ID    string
	Start int
	Span  int
	Size  int
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("reference %s: aligned span [%d, %d) outside [0, %d)", e.ID, e.Start, e.Start+e.Span, e.Size)
}
