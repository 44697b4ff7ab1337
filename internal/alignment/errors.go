package alignment

import "fmt"

// ErrorClass identifies the kind of an alignment error event.
type ErrorClass int

const (
	// Insertion is a run of read bases aligned to reference gaps.
	Insertion ErrorClass = iota
	// Deletion is a run of reference bases aligned to read gaps.
	Deletion
	// Substitution is a single column with two different bases.
	Substitution
)

// ErrorClasses returns every error class in reporting order.
func ErrorClasses() []ErrorClass {
	return []ErrorClass{Insertion, Deletion, Substitution}
}

func (c ErrorClass) String() string {
	switch c {
	case Insertion:
		return "insertion"
	case Deletion:
		return "deletion"
	case Substitution:
		return "substitution"
	default:
		return fmt.Sprintf("ErrorClass(%d)", int(c))
	}
}

// ErrorEvent is one classified alignment error.
//
// Context holds the exact-match run that preceded the event, as read bases.
// It is empty when the event directly follows another mismatch.
type ErrorEvent struct {
	Class    ErrorClass
	Size     int
	Context  string
	RefBase  byte // substitutions only
	ReadBase byte // substitutions only
}
