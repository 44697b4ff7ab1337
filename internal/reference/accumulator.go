// Package reference accumulates alignment statistics per reference sequence.
//
// A Registry, loaded from a sizes table, owns one Accumulator per reference.
// Accumulators collect coverage depth, perfect k-mer histograms and error
// counts for a single read category and are reset between categories.
package reference

import (
	"fmt"

	"github.com/aria-lang/nanook-go/internal/alignment"
	"github.com/aria-lang/nanook-go/internal/histogram"
)

// Capacity bounds for per-reference histograms.
const (
	// MaxKmer bounds perfect k-mer (exact-match run) lengths.
	MaxKmer = 1000
	// MaxIndel bounds insertion and deletion sizes.
	MaxIndel = 100
)

// Accumulator collects statistics for one reference sequence.
type Accumulator struct {
	ID   string
	Name string
	Size int

	coverage []uint32

	perfectKmers        *histogram.Histogram
	bestKmers           *histogram.Histogram
	cumulativeBestKmers *histogram.Histogram
	insertionSizes      *histogram.Histogram
	deletionSizes       *histogram.Histogram

	longestRun         int
	readsWithAlignment int

	totalReadBases    int
	totalAlignedBases int
	totalIdentical    int

	insertionErrors    int
	deletionErrors     int
	substitutionErrors int
	insertedBases      int
	deletedBases       int
}

// NewAccumulator returns an empty accumulator for a reference of the given
// size.
func NewAccumulator(id string, size int, name string) *Accumulator {
	return &Accumulator{
		ID:                  id,
		Name:                name,
		Size:                size,
		coverage:            make([]uint32, size),
		perfectKmers:        histogram.New("perfect k-mer length", MaxKmer),
		bestKmers:           histogram.New("best perfect k-mer length", MaxKmer),
		cumulativeBestKmers: histogram.New("best perfect k-mer length", MaxKmer),
		insertionSizes:      histogram.New("insertion size", MaxIndel),
		deletionSizes:       histogram.New("deletion size", MaxIndel),
	}
}

// Reset clears all statistics. ID, Name and Size are kept.
func (a *Accumulator) Reset() {
	for i := range a.coverage {
		a.coverage[i] = 0
	}
	a.perfectKmers.Reset()
	a.bestKmers.Reset()
	a.cumulativeBestKmers.Reset()
	a.insertionSizes.Reset()
	a.deletionSizes.Reset()

	*a = Accumulator{
		ID:                  a.ID,
		Name:                a.Name,
		Size:                a.Size,
		coverage:            a.coverage,
		perfectKmers:        a.perfectKmers,
		bestKmers:           a.bestKmers,
		cumulativeBestKmers: a.cumulativeBestKmers,
		insertionSizes:      a.insertionSizes,
		deletionSizes:       a.deletionSizes,
	}
}

// AddCoverage increments the depth of positions [start, start+span).
func (a *Accumulator) AddCoverage(start, span int) error {
	if start < 0 || span < 0 || start+span > a.Size {
		return &CoordinateError{ID: a.ID, Start: start, Span: span, Size: a.Size}
	}
	for i := start; i < start+span; i++ {
		a.coverage[i]++
	}
	return nil
}

// Coverage returns the depth at position pos.
func (a *Accumulator) Coverage(pos int) int {
	if pos < 0 || pos >= len(a.coverage) {
		return 0
	}
	return int(a.coverage[pos])
}

// AddPerfectKmerRun counts one exact-match run of the given length.
func (a *Accumulator) AddPerfectKmerRun(length int) error {
	if err := a.perfectKmers.Add(length); err != nil {
		return fmt.Errorf("reference %s: %w", a.ID, err)
	}
	if length > a.longestRun {
		a.longestRun = length
	}
	return nil
}

// AddReadBestKmer counts a read whose longest exact-match run, over all of
// its alignments, was best and was found on this reference. The cumulative
// histogram counts reads whose best run was at least each length.
func (a *Accumulator) AddReadBestKmer(best int) error {
	if err := a.bestKmers.Add(best); err != nil {
		return fmt.Errorf("reference %s: %w", a.ID, err)
	}
	if err := a.cumulativeBestKmers.AddUpTo(best); err != nil {
		return fmt.Errorf("reference %s: %w", a.ID, err)
	}
	a.readsWithAlignment++
	return nil
}

// AddAlignment adds the size totals of one alignment to this reference.
func (a *Accumulator) AddAlignment(querySize, alignedSize, identical int) {
	a.totalReadBases += querySize
	a.totalAlignedBases += alignedSize
	a.totalIdentical += identical
}

// AddError counts one classified alignment error.
func (a *Accumulator) AddError(e alignment.ErrorEvent) error {
	switch e.Class {
	case alignment.Insertion:
		if err := a.insertionSizes.Add(e.Size); err != nil {
			return fmt.Errorf("reference %s: %w", a.ID, err)
		}
		a.insertionErrors++
		a.insertedBases += e.Size
	case alignment.Deletion:
		if err := a.deletionSizes.Add(e.Size); err != nil {
			return fmt.Errorf("reference %s: %w", a.ID, err)
		}
		a.deletionErrors++
		a.deletedBases += e.Size
	case alignment.Substitution:
		a.substitutionErrors++
	default:
		return fmt.Errorf("reference %s: unknown error class %v", a.ID, e.Class)
	}
	return nil
}

// LongestRun returns the longest exact-match run seen on this reference.
func (a *Accumulator) LongestRun() int {
	return a.longestRun
}

// ReadsWithAlignment returns the number of reads whose best alignment was to
// this reference.
func (a *Accumulator) ReadsWithAlignment() int {
	return a.readsWithAlignment
}

// InsertionErrors returns the number of insertion events.
func (a *Accumulator) InsertionErrors() int { return a.insertionErrors }

// DeletionErrors returns the number of deletion events.
func (a *Accumulator) DeletionErrors() int { return a.deletionErrors }

// SubstitutionErrors returns the number of substituted bases.
func (a *Accumulator) SubstitutionErrors() int { return a.substitutionErrors }

func pct(n, d int) float64 {
	if n == 0 || d == 0 {
		return 0
	}
	return 100.0 * float64(n) / float64(d)
}

// AlignedPercentIdentical returns identical bases as a percentage of all
// aligned columns.
func (a *Accumulator) AlignedPercentIdentical() float64 {
	return pct(a.totalIdentical, a.totalAlignedBases)
}

// ReadPercentIdentical returns identical bases as a percentage of the total
// length of the aligned reads.
func (a *Accumulator) ReadPercentIdentical() float64 {
	return pct(a.totalIdentical, a.totalReadBases)
}

// PercentInsertionErrors returns inserted bases per 100 aligned columns.
func (a *Accumulator) PercentInsertionErrors() float64 {
	return pct(a.insertedBases, a.totalAlignedBases)
}

// PercentDeletionErrors returns deleted bases per 100 aligned columns.
func (a *Accumulator) PercentDeletionErrors() float64 {
	return pct(a.deletedBases, a.totalAlignedBases)
}

// PercentSubstitutionErrors returns substitutions per 100 aligned columns.
func (a *Accumulator) PercentSubstitutionErrors() float64 {
	return pct(a.substitutionErrors, a.totalAlignedBases)
}

// CoverageBin is the mean depth of a window starting at Position.
type CoverageBin struct {
	Position int     `json:"position"`
	Mean     float64 `json:"mean"`
}

// CoverageProfile returns the mean depth of each complete, non-overlapping
// window of binSize positions. A trailing partial window is omitted.
func (a *Accumulator) CoverageProfile(binSize int) ([]CoverageBin, error) {
	if binSize <= 0 {
		return nil, fmt.Errorf("coverage bin size must be positive, got %d", binSize)
	}

	bins := make([]CoverageBin, 0, a.Size/binSize)
	for i := 0; i+binSize <= a.Size; i += binSize {
		sum := 0
		for _, d := range a.coverage[i : i+binSize] {
			sum += int(d)
		}
		bins = append(bins, CoverageBin{Position: i, Mean: float64(sum) / float64(binSize)})
	}
	return bins, nil
}

// KmerRow is one row of a k-mer histogram. Percent is relative to the reads
// aligned to the reference and is zero for the perfect k-mer histogram.
type KmerRow struct {
	Length  int     `json:"length"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent,omitempty"`
}

// KmerHistograms holds the per-reference k-mer histograms, from length 1 up
// to the longest run seen.
type KmerHistograms struct {
	Perfect    []KmerRow `json:"perfect"`
	Best       []KmerRow `json:"best"`
	Cumulative []KmerRow `json:"cumulative"`
}

// KmerHistograms returns the perfect, best and cumulative best k-mer
// histograms.
func (a *Accumulator) KmerHistograms() KmerHistograms {
	var h KmerHistograms
	for i := 1; i <= a.longestRun; i++ {
		h.Perfect = append(h.Perfect, KmerRow{Length: i, Count: a.perfectKmers.Count(i)})

		best := a.bestKmers.Count(i)
		h.Best = append(h.Best, KmerRow{Length: i, Count: best, Percent: pct(best, a.readsWithAlignment)})

		cumulative := a.cumulativeBestKmers.Count(i)
		h.Cumulative = append(h.Cumulative, KmerRow{Length: i, Count: cumulative, Percent: pct(cumulative, a.readsWithAlignment)})
	}
	return h
}

// SizeRow is one row of an indel size distribution.
type SizeRow struct {
	Size    int     `json:"size"`
	Percent float64 `json:"percent"`
}

func sizeRows(h *histogram.Histogram, events int) []SizeRow {
	var rows []SizeRow
	for i := 1; i <= h.Max(); i++ {
		rows = append(rows, SizeRow{Size: i, Percent: pct(h.Count(i), events)})
	}
	return rows
}

// InsertionSizes returns, for each size up to the largest insertion seen, the
// percentage of insertion events of that size.
func (a *Accumulator) InsertionSizes() []SizeRow {
	return sizeRows(a.insertionSizes, a.insertionErrors)
}

// DeletionSizes is InsertionSizes for deletions.
func (a *Accumulator) DeletionSizes() []SizeRow {
	return sizeRows(a.deletionSizes, a.deletionErrors)
}
