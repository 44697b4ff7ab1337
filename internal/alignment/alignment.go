// Package alignment measures the accuracy of a single pairwise alignment.
//
// Analyze walks the reference and query columns of a maf.Pair in lock-step,
// counting identical bases and the lengths of exact-match runs ("perfect
// k-mers"), and classifies every mismatching column as part of an insertion,
// deletion or substitution event.
package alignment

import (
	"fmt"

	"github.com/aria-lang/nanook-go/internal/maf"
	"github.com/aria-lang/nanook-go/internal/sequence"
)

// Metrics summarises one alignment. All fields are derived from a single
// maf.Pair; Analyze is a pure function, so the same pair always yields the
// same Metrics.
type Metrics struct {
	IdenticalBases int
	LongestRun     int
	TotalRunBases  int
	RunCount       int
	Runs           []int

	// AlignedSize is the number of columns scored: the shorter of the two
	// aligned sequences.
	AlignedSize int

	QueryIdentityPct     float64
	AlignmentIdentityPct float64
	PercentQueryAligned  float64

	Errors []ErrorEvent
}

// MeanRunLength returns the mean exact-match run length, or 0 when the
// alignment has no runs.
func (m *Metrics) MeanRunLength() float64 {
	if m.RunCount == 0 {
		return 0
	}
	return float64(m.TotalRunBases) / float64(m.RunCount)
}

// Mismatches returns the number of scored columns that were not identical.
func (m *Metrics) Mismatches() int {
	return m.AlignedSize - m.IdenticalBases
}

func (m *Metrics) String() string {
	return fmt.Sprintf("Metrics { aligned: %d, identical: %d (%.2f%%), longest run: %d, runs: %d }",
		m.AlignedSize, m.IdenticalBases, m.AlignmentIdentityPct, m.LongestRun, m.RunCount)
}

func percent(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return 100.0 * float64(n) / float64(d)
}

// Analyze computes the Metrics of p.
//
// Only the first min(len(ref), len(query)) columns are scored; the two aligned
// sequences are expected to be of equal length. A run still open at the last
// column is closed there.
func Analyze(p maf.Pair) *Metrics {
	ref := p.Ref.Sequence
	query := p.Query.Sequence

	n := len(ref)
	if len(query) < n {
		n = len(query)
	}

	w := walker{m: &Metrics{AlignedSize: n}}
	for i := 0; i < n; i++ {
		w.column(ref[i], query[i], query[i-w.run:i], i == n-1)
	}

	m := w.m
	m.RunCount = len(m.Runs)
	m.QueryIdentityPct = percent(m.IdenticalBases, p.Query.TotalLength)
	m.AlignmentIdentityPct = percent(m.IdenticalBases, m.AlignedSize)
	m.PercentQueryAligned = percent(m.AlignedSize, p.Query.TotalLength)
	return m
}

// walker holds the left-to-right scan state of Analyze.
type walker struct {
	m *Metrics

	run       int
	insertion int
	deletion  int

	// context is the match run that opened the pending event.
	context string
}

func (w *walker) column(r, q byte, preceding string, last bool) {
	if r == q {
		w.flushIndel()
		w.context = ""
		w.m.IdenticalBases++
		w.run++
		if last {
			w.closeRun()
		}
		return
	}

	switch {
	case sequence.IsGap(r):
		if w.deletion > 0 {
			w.flushIndel()
			w.context = ""
		}
		w.insertion++
		if w.insertion == 1 && preceding != "" {
			w.context = preceding
		}
	case sequence.IsGap(q):
		if w.insertion > 0 {
			w.flushIndel()
			w.context = ""
		}
		w.deletion++
		if w.deletion == 1 && preceding != "" {
			w.context = preceding
		}
	default:
		w.flushIndel()
		w.context = preceding
		w.m.Errors = append(w.m.Errors, ErrorEvent{
			Class:    Substitution,
			Size:     1,
			Context:  w.context,
			RefBase:  r,
			ReadBase: q,
		})
	}
	w.closeRun()
}

func (w *walker) closeRun() {
	if w.run == 0 {
		return
	}
	w.m.Runs = append(w.m.Runs, w.run)
	w.m.TotalRunBases += w.run
	if w.run > w.m.LongestRun {
		w.m.LongestRun = w.run
	}
	w.run = 0
}

// flushIndel emits a pending insertion or deletion.
func (w *walker) flushIndel() {
	if w.deletion > 0 {
		w.m.Errors = append(w.m.Errors, ErrorEvent{Class: Deletion, Size: w.deletion, Context: w.context})
		w.deletion = 0
	}
	if w.insertion > 0 {
		w.m.Errors = append(w.m.Errors, ErrorEvent{Class: Insertion, Size: w.insertion, Context: w.context})
		w.insertion = 0
	}
}
