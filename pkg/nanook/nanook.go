// Package nanook provides a high-level API for long-read alignment quality
// analysis.
//
// It exposes the parser, per-alignment analyzer and accumulators for callers
// that want to drive an analysis themselves, and Analyse for a complete run
// over a sample directory.
//
// Example usage:
//
//	pairs, err := nanook.ParseAlignments(f)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, p := range pairs {
//	    m := nanook.Analyze(p)
//	    fmt.Printf("%s: %.2f%% identity, longest run %d\n",
//	        p.Query.Name, m.AlignmentIdentityPct, m.LongestRun)
//	}
package nanook

import (
	"context"
	"fmt"
	"io"

	"github.com/aria-lang/nanook-go/internal/alignment"
	"github.com/aria-lang/nanook-go/internal/analysis"
	"github.com/aria-lang/nanook-go/internal/maf"
	"github.com/aria-lang/nanook-go/internal/motif"
	"github.com/aria-lang/nanook-go/internal/options"
	"github.com/aria-lang/nanook-go/internal/readset"
	"github.com/aria-lang/nanook-go/internal/reference"
	"github.com/aria-lang/nanook-go/internal/report"
	"github.com/aria-lang/nanook-go/internal/stats"
)

// Re-export types for convenience
type (
	AlignedPair    = maf.Pair
	AlignmentLine  = maf.Line
	Metrics        = alignment.Metrics
	ErrorEvent     = alignment.ErrorEvent
	ErrorClass     = alignment.ErrorClass
	Accumulator    = reference.Accumulator
	Registry       = reference.Registry
	Aggregator     = readset.Aggregator
	Category       = readset.Category
	LengthStats    = stats.LengthStats
	MotifTable     = motif.Table
	Options        = options.Options
	Report         = report.Report
	CategoryReport = report.CategoryReport
	LengthSummary  = report.LengthSummary
)

// Errors
type (
	MalformedRecordError  = maf.MalformedRecordError
	UnknownReferenceError = reference.UnknownReferenceError
	MissingSizesFileError = reference.MissingSizesFileError
	CoordinateError       = reference.CoordinateError
)

// Read categories
const (
	Template   = readset.Template
	Complement = readset.Complement
	TwoD       = readset.TwoD
)

// Capacity bounds
const (
	MaxKmer       = reference.MaxKmer
	MaxIndel      = reference.MaxIndel
	MaxReadLength = stats.MaxReadLength
)

// DefaultOptions returns the default run configuration.
func DefaultOptions() Options {
	return options.Default()
}

// ParseAlignments reads every alignment record from r.
func ParseAlignments(r io.Reader) ([]AlignedPair, error) {
	return maf.ReadAll(r)
}

// ReadAlignments reads every alignment record of the file at path, which may
// be gzip compressed.
func ReadAlignments(path string) ([]AlignedPair, error) {
	f, err := maf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var pairs []AlignedPair
	for f.Next() {
		pairs = append(pairs, f.Pair())
	}
	return pairs, f.Err()
}

// Analyze computes the identity and exact-match run metrics of one
// alignment.
func Analyze(p AlignedPair) *Metrics {
	return alignment.Analyze(p)
}

// LoadSizes reads a reference sizes table.
func LoadSizes(r io.Reader) (*Registry, error) {
	return reference.LoadSizes(r)
}

// NewAggregator returns an empty aggregator for category c.
func NewAggregator(c Category) *Aggregator {
	return readset.NewAggregator(c)
}

// ReadLengths returns the finalized length statistics of a FASTA stream.
func ReadLengths(r io.Reader) (*LengthStats, error) {
	s := stats.NewLengthStats()
	if _, err := s.AddFasta(r); err != nil {
		return nil, err
	}
	if err := s.Finalize(); err != nil {
		return nil, err
	}
	return s, nil
}

// Analyse runs a complete analysis of the sample described by opts and
// writes all outputs to its analysis directory.
func Analyse(ctx context.Context, opts Options) (*Report, error) {
	if err := opts.Validate(true); err != nil {
		return nil, err
	}
	refs, err := analysis.LoadReferences(opts)
	if err != nil {
		return nil, err
	}
	return analysis.New(opts, refs).Run(ctx)
}

// Lengths summarises the read lengths of the sample described by opts.
func Lengths(ctx context.Context, opts Options) ([]LengthSummary, error) {
	if err := opts.Validate(false); err != nil {
		return nil, err
	}
	return analysis.RunLengths(ctx, opts)
}

// LoadReport reads the JSON report of a finished run.
func LoadReport(path string) (*Report, error) {
	return report.Load(path)
}

// WriteReport writes r as JSON to w.
func WriteReport(w io.Writer, r *Report) error {
	return report.WriteJSON(w, r)
}

// Version returns the nanook version.
func Version() string {
	return "1.0.0"
}

// Info returns information about nanook.
func Info() string {
	return fmt.Sprintf(`nanook v%s - long-read alignment quality analysis

Features:
  - MAF alignment parsing (plain or gzip compressed)
  - Identity and perfect k-mer (exact-match run) analysis
  - Per-reference coverage, k-mer and indel statistics
  - Insertion, deletion and substitution error motifs
  - Read length summaries with N50 and N90
  - Tab-separated tables and a JSON report
`, Version())
}

// ReportPath returns the path of the JSON report of the sample described by
// opts.
func ReportPath(opts Options) string {
	return opts.ReportPath()
}
