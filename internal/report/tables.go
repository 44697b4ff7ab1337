// Package report writes the results of an analysis run: tab-separated
// tables for plotting and report assembly, fixed-width summaries for people,
// and a single JSON document holding everything.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/aria-lang/nanook-go/internal/alignment"
	"github.com/aria-lang/nanook-go/internal/maf"
	"github.com/aria-lang/nanook-go/internal/motif"
	"github.com/aria-lang/nanook-go/internal/reference"
	"github.com/aria-lang/nanook-go/internal/sequence"
)

// NoAlignments marks an alignment file without records in the alignment
// table.
const NoAlignments = "NO ALIGNMENTS"

// AlignmentColumns is the header of the per-category alignment table.
var AlignmentColumns = []string{
	"Filename",
	"QueryName",
	"QueryStart",
	"QueryBasesCovered",
	"QueryStrand",
	"QueryLength",
	"HitName",
	"HitStart",
	"HitBasesCovered",
	"HitStrand",
	"HitLength",
	"AlignmentSize",
	"IdenticalBases",
	"AlignmentPercentIdentity",
	"QueryPercentIdentity",
	"LongestPerfectKmer",
	"MeanPerfectKmer",
	"PercentQueryAligned",
}

// AlignmentTable writes one row per alignment record.
type AlignmentTable struct {
	w *bufio.Writer
}

// NewAlignmentTable writes the header to w and returns the table.
func NewAlignmentTable(w io.Writer) (*AlignmentTable, error) {
	t := &AlignmentTable{w: bufio.NewWriter(w)}
	if _, err := fmt.Fprintln(t.w, strings.Join(AlignmentColumns, "\t")); err != nil {
		return nil, err
	}
	return t, nil
}

// Add writes the row of one record of file.
func (t *AlignmentTable) Add(file string, p maf.Pair, m *alignment.Metrics) error {
	q, h := p.Query, p.Ref
	_, err := fmt.Fprintf(t.w, "%s\t%s\t%d\t%d\t%s\t%d\t%s\t%d\t%d\t%s\t%d\t%d\t%d\t%.2f\t%.2f\t%d\t%.2f\t%.2f\n",
		file,
		q.Name, q.Start, q.AlignedSpan, q.Strand, q.TotalLength,
		h.Name, h.Start, h.AlignedSpan, h.Strand, h.TotalLength,
		m.AlignedSize, m.IdenticalBases,
		m.AlignmentIdentityPct, m.QueryIdentityPct,
		m.LongestRun, m.MeanRunLength(), m.PercentQueryAligned)
	return err
}

// AddEmpty writes the row of a file without records.
func (t *AlignmentTable) AddEmpty(file string) error {
	_, err := fmt.Fprintf(t.w, "%s\t%s\n", file, NoAlignments)
	return err
}

// Flush writes any buffered rows.
func (t *AlignmentTable) Flush() error {
	return t.w.Flush()
}

// tsv buffers a table and remembers the first write error.
type tsv struct {
	w   *bufio.Writer
	err error
}

func newTSV(w io.Writer) *tsv {
	return &tsv{w: bufio.NewWriter(w)}
}

func (t *tsv) printf(format string, args ...interface{}) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *tsv) close() error {
	if t.err != nil {
		return t.err
	}
	return t.w.Flush()
}

// WriteCoverage writes a coverage profile as position and mean depth.
func WriteCoverage(w io.Writer, bins []reference.CoverageBin) error {
	t := newTSV(w)
	for _, b := range bins {
		t.printf("%d\t%.2f\n", b.Position, b.Mean)
	}
	return t.close()
}

// WritePerfectKmers writes a perfect k-mer histogram as length and count.
func WritePerfectKmers(w io.Writer, rows []reference.KmerRow) error {
	t := newTSV(w)
	for _, r := range rows {
		t.printf("%d\t%d\n", r.Length, r.Count)
	}
	return t.close()
}

// WriteBestKmers writes a best (or cumulative best) k-mer histogram as
// length, count and percentage of aligned reads.
func WriteBestKmers(w io.Writer, rows []reference.KmerRow) error {
	t := newTSV(w)
	for _, r := range rows {
		t.printf("%d\t%d\t%.2f\n", r.Length, r.Count, r.Percent)
	}
	return t.close()
}

// WriteIndelSizes writes an insertion or deletion size distribution.
func WriteIndelSizes(w io.Writer, rows []reference.SizeRow) error {
	t := newTSV(w)
	for _, r := range rows {
		t.printf("%d\t%.4f\n", r.Size, r.Percent)
	}
	return t.close()
}

// WriteSubstitutions writes the substitution percentage matrix, reference
// bases as rows and read bases as columns.
func WriteSubstitutions(w io.Writer, pc [sequence.NumBases][sequence.NumBases]float64) error {
	t := newTSV(w)
	for _, b := range sequence.Bases {
		t.printf("\tSub%c", b)
	}
	t.printf("\n")
	for r, row := range pc {
		t.printf("Ref%c", sequence.Bases[r])
		for _, v := range row {
			t.printf("\t%.2f", v)
		}
		t.printf("\n")
	}
	return t.close()
}

// WriteMotifs writes ranked motif percentages.
func WriteMotifs(w io.Writer, motifs []motif.Percentage) error {
	t := newTSV(w)
	t.printf("Kmer\tPercentage\n")
	for _, m := range motifs {
		t.printf("%s\t%.4f\n", m.Motif, m.Percent)
	}
	return t.close()
}

// LengthsWriter writes the id and length of each read of a category.
type LengthsWriter struct {
	t *tsv
}

// NewLengthsWriter returns a LengthsWriter writing to w.
func NewLengthsWriter(w io.Writer) *LengthsWriter {
	return &LengthsWriter{t: newTSV(w)}
}

// Add writes one read.
func (lw *LengthsWriter) Add(id string, length int) error {
	lw.t.printf("%s\t%d\n", id, length)
	return lw.t.err
}

// Flush writes any buffered rows.
func (lw *LengthsWriter) Flush() error {
	return lw.t.close()
}
