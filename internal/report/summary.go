package report

import (
	"io"

	"github.com/aria-lang/nanook-go/internal/readset"
	"github.com/aria-lang/nanook-go/internal/stats"
)

// LengthSummary is one row of the length summary.
type LengthSummary struct {
	Category   readset.Category `json:"category"`
	Reads      int              `json:"reads"`
	TotalBases int              `json:"total_bases"`
	Mean       float64          `json:"mean"`
	Longest    int              `json:"longest"`
	Shortest   int              `json:"shortest"`
	N50        int              `json:"n50"`
	N50Count   int              `json:"n50_count"`
	N90        int              `json:"n90"`
	N90Count   int              `json:"n90_count"`
}

// NewLengthSummary summarises finalized length statistics.
func NewLengthSummary(c readset.Category, s *stats.LengthStats) LengthSummary {
	return LengthSummary{
		Category:   c,
		Reads:      s.Reads(),
		TotalBases: s.TotalBases(),
		Mean:       s.MeanLength(),
		Longest:    s.Longest(),
		Shortest:   s.Shortest(),
		N50:        s.N50(),
		N50Count:   s.N50Count(),
		N90:        s.N90(),
		N90Count:   s.N90Count(),
	}
}

// WriteLengthSummary writes the fixed-width length summary of a sample.
func WriteLengthSummary(w io.Writer, sample string, rows []LengthSummary) error {
	t := newTSV(w)
	t.printf("nanook report - %s\n\n", sample)
	t.printf("Length summary\n\n")
	t.printf("%-10s %-8s %-10s %-10s %-8s %-8s %-8s %-8s %-8s %-8s\n",
		"Type", "NumReads", "TotalBases", "Mean", "Long", "Short", "N50", "N50Count", "N90", "N90Count")
	for _, r := range rows {
		t.printf("%-10s %-8d %-10d %-10.2f %-8d %-8d %-8d %-8d %-8d %-8d\n",
			r.Category, r.Reads, r.TotalBases, r.Mean, r.Longest, r.Shortest,
			r.N50, r.N50Count, r.N90, r.N90Count)
	}
	return t.close()
}

// WriteAlignmentSummary writes the fixed-width alignment summary: read
// counts for each category followed by a table of references.
func WriteAlignmentSummary(w io.Writer, categories []CategoryReport) error {
	t := newTSV(w)
	for _, c := range categories {
		t.printf("%s alignments\n\n", c.Category)
		t.printf("Num reads: %d\n", c.Reads)
		t.printf("Num reads with alignments: %d\n", c.ReadsWithAlignment)
		t.printf("Num reads without alignments: %d\n", c.ReadsWithoutAlignment)
		if len(c.SkippedFiles) > 0 {
			t.printf("Skipped files: %d\n", len(c.SkippedFiles))
		}
		t.printf("\n")

		width := len("Id")
		for _, r := range c.References {
			if len(r.Name) > width {
				width = len(r.Name)
			}
		}
		t.printf("%-*s %-12s %-10s %-10s\n", width, "Id", "Size", "ReadsAlign", "LongPerfKm")
		for _, r := range c.References {
			t.printf("%-*s %-12d %-10d %-10d\n", width, r.Name, r.Size, r.ReadsWithAlignment, r.LongestPerfectKmer)
		}
		t.printf("\n")
	}
	return t.close()
}
