package maf

import "fmt"

// MalformedRecordError is returned when an alignment block cannot be
// interpreted. Downstream field positions would be misattributed, so callers
// treat it as fatal for the file.
type MalformedRecordError struct {
	File   string
	Line   int
	Fields int
	Reason string
}

func (e *MalformedRecordError) Error() string {
	msg := e.Reason
	if e.Fields > 0 && e.Fields != lineFields {
		msg = fmt.Sprintf("%s (got %d fields, want %d)", e.Reason, e.Fields, lineFields)
	}
	switch {
	case e.File != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: malformed alignment record: %s", e.File, e.Line, msg)
	case e.Line > 0:
		return fmt.Sprintf("line %d: malformed alignment record: %s", e.Line, msg)
	default:
		return "malformed alignment record: " + msg
	}
}
