// Package stats provides read length summaries for a read category.
//
// Lengths are held in a bounded histogram indexed by length, so memory use
// depends on the longest read and not on the number of reads. N50 and N90
// are derived by sweeping the histogram from the longest read down.
package stats

import (
	"errors"
	"fmt"

	"github.com/aria-lang/nanook-go/internal/histogram"
)

// MaxReadLength bounds the read lengths a LengthStats accepts.
const MaxReadLength = 1_000_000

// ErrFinalized is returned by Finalize when it has already been called.
var ErrFinalized = errors.New("length statistics already finalized")

// LengthStats summarises the lengths of the reads of one category.
//
// Derived values are valid only after Finalize.
type LengthStats struct {
	lengths   *histogram.Histogram
	finalized bool

	reads      int
	totalBases int
	longest    int
	shortest   int

	meanLength float64
	n50        int
	n50Count   int
	n90        int
	n90Count   int
}

// NewLengthStats returns an empty LengthStats.
func NewLengthStats() *LengthStats {
	return &LengthStats{
		lengths: histogram.New("read length", MaxReadLength),
	}
}

// AddLength records one read of length l.
func (s *LengthStats) AddLength(l int) error {
	if s.finalized {
		return ErrFinalized
	}
	if err := s.lengths.Add(l); err != nil {
		return err
	}
	if s.reads == 0 || l < s.shortest {
		s.shortest = l
	}
	if l > s.longest {
		s.longest = l
	}
	s.reads++
	s.totalBases += l
	return nil
}

// Finalize computes the mean, N50 and N90. It may be called once.
//
// Reads are visited from the longest down, one at a time. The first read at
// which the running total of bases reaches half (nine tenths) of all bases
// fixes N50 (N90) as its length and N50Count (N90Count) as the number of
// reads visited so far. Reads of equal length are counted one at a time, so
// N50Count can be smaller than the number of reads at least N50 long: four
// reads of length 10 give N50 10 with N50Count 2.
func (s *LengthStats) Finalize() error {
	if s.finalized {
		return ErrFinalized
	}
	s.finalized = true

	if s.reads == 0 {
		return nil
	}
	s.meanLength = float64(s.totalBases) / float64(s.reads)

	half := float64(s.totalBases) * 0.5
	ninety := float64(s.totalBases) * 0.9

	total, count := 0, 0
	for l := s.longest; l > 0; l-- {
		for j := 0; j < s.lengths.Count(l); j++ {
			total += l
			count++
			if s.n50 == 0 && float64(total) >= half {
				s.n50 = l
				s.n50Count = count
			}
			if s.n90 == 0 && float64(total) >= ninety {
				s.n90 = l
				s.n90Count = count
			}
		}
		if s.n90 != 0 {
			break
		}
	}
	return nil
}

// Finalized reports whether Finalize has been called.
func (s *LengthStats) Finalized() bool { return s.finalized }

// Reads returns the number of reads recorded.
func (s *LengthStats) Reads() int { return s.reads }

// TotalBases returns the summed length of all reads.
func (s *LengthStats) TotalBases() int { return s.totalBases }

// Longest returns the longest read length.
func (s *LengthStats) Longest() int { return s.longest }

// Shortest returns the shortest read length, or 0 when there are no reads.
func (s *LengthStats) Shortest() int { return s.shortest }

// MeanLength returns the mean read length, or 0 when there are no reads.
func (s *LengthStats) MeanLength() float64 { return s.meanLength }

// N50 returns the N50 read length.
func (s *LengthStats) N50() int { return s.n50 }

// N50Count returns the number of reads visited when N50 was fixed, which
// is not necessarily the number of reads at least N50 long.
func (s *LengthStats) N50Count() int { return s.n50Count }

// N90 returns the N90 read length.
func (s *LengthStats) N90() int { return s.n90 }

// N90Count returns the number of reads visited when N90 was fixed.
func (s *LengthStats) N90Count() int { return s.n90Count }

// Histogram returns the read count at every length up to the longest read.
func (s *LengthStats) Histogram() []int {
	return s.lengths.Counts()
}

func (s *LengthStats) String() string {
	return fmt.Sprintf(`LengthStats {
  reads: %d
  total_bases: %d
  length range: %d - %d
  mean length: %.2f
  N50: %d (%d reads)
  N90: %d (%d reads)
}`, s.reads, s.totalBases, s.shortest, s.longest,
		s.meanLength, s.n50, s.n50Count, s.n90, s.n90Count)
}
