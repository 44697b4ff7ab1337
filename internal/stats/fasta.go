package stats

import (
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// GatherFasta reads every sequence of a FASTA stream and calls fn with its
// id and length. It stops at the first error returned by fn.
func GatherFasta(r io.Reader, fn func(id string, length int) error) error {
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA)))
	for sc.Next() {
		s := sc.Seq()
		if err := fn(s.Name(), s.Len()); err != nil {
			return err
		}
	}
	if err := sc.Error(); err != nil {
		return fmt.Errorf("reading fasta: %w", err)
	}
	return nil
}

// AddFasta adds the length of every sequence in r to s and returns the
// number of sequences read.
func (s *LengthStats) AddFasta(r io.Reader) (int, error) {
	n := 0
	err := GatherFasta(r, func(id string, length int) error {
		if err := s.AddLength(length); err != nil {
			return fmt.Errorf("read %s: %w", id, err)
		}
		n++
		return nil
	})
	return n, err
}
