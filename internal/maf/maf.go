// Package maf reads pairwise alignments in the multiple alignment format
// written by the LAST aligner.
//
// Each record is an "a" header line followed by a reference-side and a
// query-side "s" line:
//
//	a score=<int>
//	s <refName>   <start> <alignedSpan> <+|-> <totalLength> <alignedSeq>
//	s <queryName> <start> <alignedSpan> <+|-> <totalLength> <alignedSeq>
//
// Lines outside records (comments, blank lines, "q" and "p" annotation lines)
// are skipped.
package maf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	// HeaderPrefix starts every alignment record.
	HeaderPrefix = "a score="

	// MaxLineLength bounds a single line of input. Aligned sequences of
	// long reads can run to megabases.
	MaxLineLength = 64 << 20

	lineFields = 7
)

// Line is one side of a pairwise alignment.
type Line struct {
	Name        string
	Start       int
	AlignedSpan int
	Strand      string
	TotalLength int
	Sequence    string
}

// Pair is a reference-side and a query-side line from a single record. The
// aligned sequences are in column form and are equal in length for
// well-formed input.
type Pair struct {
	Ref   Line
	Query Line
}

// ParseLine parses an "s" line. The line must split on white space into
// exactly seven fields.
func ParseLine(s string) (Line, error) {
	fields := strings.Fields(s)
	if len(fields) != lineFields {
		return Line{}, &MalformedRecordError{Fields: len(fields), Reason: "unexpected field count"}
	}

	ints := make([]int, 3)
	for i, idx := range []int{2, 3, 5} {
		v, err := strconv.Atoi(fields[idx])
		if err != nil {
			return Line{}, &MalformedRecordError{Reason: fmt.Sprintf("field %d: %q is not an integer", idx+1, fields[idx])}
		}
		ints[i] = v
	}

	return Line{
		Name:        fields[1],
		Start:       ints[0],
		AlignedSpan: ints[1],
		Strand:      fields[4],
		TotalLength: ints[2],
		Sequence:    fields[6],
	}, nil
}

// Reader reads alignment records from an input stream.
type Reader struct {
	sc   *bufio.Scanner
	name string
	line int
	pair Pair
	err  error
}

// NewReader returns a Reader reading from r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), MaxLineLength)
	return &Reader{sc: sc}
}

// Next advances to the next record. It returns false at the end of input or
// on error; Err distinguishes the two.
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}

	for r.sc.Scan() {
		r.line++
		if !strings.HasPrefix(r.sc.Text(), HeaderPrefix) {
			continue
		}

		ref, err := r.alignmentLine()
		if err != nil {
			r.err = err
			return false
		}
		query, err := r.alignmentLine()
		if err != nil {
			r.err = err
			return false
		}

		r.pair = Pair{Ref: ref, Query: query}
		return true
	}

	if err := r.sc.Err(); err != nil {
		r.err = fmt.Errorf("reading alignments: %w", err)
	}
	return false
}

func (r *Reader) alignmentLine() (Line, error) {
	for r.sc.Scan() {
		r.line++
		text := r.sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		l, err := ParseLine(text)
		if err != nil {
			var malformed *MalformedRecordError
			if errors.As(err, &malformed) {
				malformed.File = r.name
				malformed.Line = r.line
			}
			return Line{}, err
		}
		return l, nil
	}

	if err := r.sc.Err(); err != nil {
		return Line{}, fmt.Errorf("reading alignments: %w", err)
	}
	return Line{}, &MalformedRecordError{File: r.name, Line: r.line, Reason: "unexpected end of input inside alignment block"}
}

// Pair returns the record read by the last successful call to Next.
func (r *Reader) Pair() Pair {
	return r.pair
}

// Err returns the first error encountered, if any.
func (r *Reader) Err() error {
	return r.err
}

// ReadAll reads every record from rd.
func ReadAll(rd io.Reader) ([]Pair, error) {
	r := NewReader(rd)
	var pairs []Pair
	for r.Next() {
		pairs = append(pairs, r.Pair())
	}
	return pairs, r.Err()
}
