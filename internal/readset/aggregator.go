package readset

import (
	"fmt"

	"github.com/aria-lang/nanook-go/internal/alignment"
	"github.com/aria-lang/nanook-go/internal/histogram"
	"github.com/aria-lang/nanook-go/internal/motif"
	"github.com/aria-lang/nanook-go/internal/reference"
	"github.com/aria-lang/nanook-go/internal/sequence"
)

// SubstitutionMatrix counts substitutions by reference base (row) and read
// base (column), both in sequence.Bases order.
type SubstitutionMatrix [sequence.NumBases][sequence.NumBases]int

// Aggregator accumulates statistics over every read of one category.
type Aggregator struct {
	Category Category

	readsWithAlignment    int
	readsWithoutAlignment int

	bestKmers           *histogram.Histogram
	cumulativeBestKmers *histogram.Histogram

	insertions    int
	deletions     int
	substitutions int
	matrix        SubstitutionMatrix
	matrixTotal   int

	motifs *motif.Table
}

// NewAggregator returns an empty aggregator for category c.
func NewAggregator(c Category) *Aggregator {
	return &Aggregator{
		Category:            c,
		bestKmers:           histogram.New("best perfect k-mer length", reference.MaxKmer),
		cumulativeBestKmers: histogram.New("best perfect k-mer length", reference.MaxKmer),
		motifs:              motif.NewTable(),
	}
}

// Reset clears all statistics.
func (a *Aggregator) Reset() {
	a.bestKmers.Reset()
	a.cumulativeBestKmers.Reset()
	*a = Aggregator{
		Category:            a.Category,
		bestKmers:           a.bestKmers,
		cumulativeBestKmers: a.cumulativeBestKmers,
		motifs:              motif.NewTable(),
	}
}

// RecordAlignedRead counts a read with at least one alignment whose longest
// exact-match run was best.
func (a *Aggregator) RecordAlignedRead(best int) error {
	if err := a.bestKmers.Add(best); err != nil {
		return fmt.Errorf("%s: %w", a.Category, err)
	}
	if err := a.cumulativeBestKmers.AddUpTo(best); err != nil {
		return fmt.Errorf("%s: %w", a.Category, err)
	}
	a.readsWithAlignment++
	return nil
}

// RecordUnalignedRead counts a read with no alignments.
func (a *Aggregator) RecordUnalignedRead() {
	a.readsWithoutAlignment++
}

// RecordError counts a classified alignment error and the motif preceding
// it. Substitutions between two of A, C, G and T also enter the
// substitution matrix.
func (a *Aggregator) RecordError(e alignment.ErrorEvent) {
	a.motifs.Record(e.Class, e.Context)

	switch e.Class {
	case alignment.Insertion:
		a.insertions++
	case alignment.Deletion:
		a.deletions++
	case alignment.Substitution:
		a.substitutions++
		r, rok := sequence.BaseIndex(e.RefBase)
		q, qok := sequence.BaseIndex(e.ReadBase)
		if rok && qok {
			a.matrix[r][q]++
			a.matrixTotal++
		}
	}
}

// TotalReads returns the number of reads seen, aligned or not.
func (a *Aggregator) TotalReads() int {
	return a.readsWithAlignment + a.readsWithoutAlignment
}

// ReadsWithAlignment returns the number of reads with an alignment.
func (a *Aggregator) ReadsWithAlignment() int { return a.readsWithAlignment }

// ReadsWithoutAlignment returns the number of reads without one.
func (a *Aggregator) ReadsWithoutAlignment() int { return a.readsWithoutAlignment }

// PercentWithAlignment returns the share of reads with an alignment, or 0
// when no reads were seen.
func (a *Aggregator) PercentWithAlignment() float64 {
	if a.TotalReads() == 0 {
		return 0
	}
	return 100.0 * float64(a.readsWithAlignment) / float64(a.TotalReads())
}

// PercentWithoutAlignment is PercentWithAlignment for unaligned reads.
func (a *Aggregator) PercentWithoutAlignment() float64 {
	if a.TotalReads() == 0 {
		return 0
	}
	return 100.0 * float64(a.readsWithoutAlignment) / float64(a.TotalReads())
}

// ErrorCount returns the number of events of class c.
func (a *Aggregator) ErrorCount(c alignment.ErrorClass) int {
	switch c {
	case alignment.Insertion:
		return a.insertions
	case alignment.Deletion:
		return a.deletions
	case alignment.Substitution:
		return a.substitutions
	}
	return 0
}

// Substitutions returns the substitution matrix.
func (a *Aggregator) Substitutions() SubstitutionMatrix {
	return a.matrix
}

// SubstitutionPercentages returns each matrix cell as a share of all
// substitutions in the matrix.
func (a *Aggregator) SubstitutionPercentages() [sequence.NumBases][sequence.NumBases]float64 {
	var pc [sequence.NumBases][sequence.NumBases]float64
	if a.matrixTotal == 0 {
		return pc
	}
	for r := range a.matrix {
		for q, n := range a.matrix[r] {
			pc[r][q] = 100.0 * float64(n) / float64(a.matrixTotal)
		}
	}
	return pc
}

// BestKmer returns the number of reads whose best run had length l.
func (a *Aggregator) BestKmer(l int) int {
	return a.bestKmers.Count(l)
}

// CumulativeBestKmer returns the number of reads whose best run was at
// least l.
func (a *Aggregator) CumulativeBestKmer(l int) int {
	return a.cumulativeBestKmers.Count(l)
}

// LongestBestKmer returns the longest best run of any read, or 0.
func (a *Aggregator) LongestBestKmer() int {
	if m := a.bestKmers.Max(); m > 0 {
		return m
	}
	return 0
}

// Motifs returns the error motif table of this category.
func (a *Aggregator) Motifs() *motif.Table {
	return a.motifs
}
