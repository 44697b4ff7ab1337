// Package options holds the configuration of an analysis run and the
// directory layout derived from it.
//
// A sample directory looks like:
//
//	<base>/<sample>/last/<Category>/*.maf[.gz]   alignments, one file per read
//	<base>/<sample>/fasta/<Category>/*.fasta     reads, for length statistics
//	<base>/<sample>/analysis/                    output tables and report.json
package options

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/aria-lang/nanook-go/internal/readset"
)

// DefaultCoverageBinSize is the default window size of coverage profiles.
const DefaultCoverageBinSize = 100

// ReportFile is the name of the JSON report within the analysis directory.
const ReportFile = "report.json"

// Options configures an analysis run.
type Options struct {
	// Input
	BaseDir   string
	Sample    string
	Reference string // sizes table, or the reference FASTA/prefix it was derived from

	// Analysis
	CoverageBinSize int
	SkipMalformed   bool

	// Output
	Progress bool
}

// Default returns Options with defaults filled in.
func Default() Options {
	return Options{
		BaseDir:         ".",
		CoverageBinSize: DefaultCoverageBinSize,
	}
}

// Register wires the run flags onto fs.
func Register(fs *pflag.FlagSet, o *Options) {
	fs.StringVarP(&o.BaseDir, "base-dir", "b", o.BaseDir, "base directory holding sample directories")
	fs.StringVarP(&o.Sample, "sample", "s", o.Sample, "sample name (directory under the base directory)")
	fs.StringVarP(&o.Reference, "reference", "r", o.Reference, "reference prefix or FASTA; a .sizes table is looked up next to it")
	fs.IntVar(&o.CoverageBinSize, "coverage-bin", o.CoverageBinSize, "coverage profile window size")
	fs.BoolVar(&o.SkipMalformed, "skip-malformed", o.SkipMalformed, "skip alignment files that fail to parse instead of aborting")
	fs.BoolVar(&o.Progress, "progress", o.Progress, "show a progress bar while parsing alignments")
}

// Validate reports the first problem with o. needReference is false for
// runs that only gather read lengths.
func (o Options) Validate(needReference bool) error {
	if o.BaseDir == "" {
		return errors.New("a base directory is required (--base-dir)")
	}
	if o.Sample == "" {
		return errors.New("a sample name is required (--sample)")
	}
	if needReference && o.Reference == "" {
		return errors.New("a reference is required (--reference)")
	}
	if o.CoverageBinSize <= 0 {
		return fmt.Errorf("coverage bin size must be positive, got %d", o.CoverageBinSize)
	}
	if fi, err := os.Stat(o.SampleDir()); err != nil {
		return fmt.Errorf("sample directory: %w", err)
	} else if !fi.IsDir() {
		return fmt.Errorf("sample directory %s is not a directory", o.SampleDir())
	}
	return nil
}

// SampleDir returns <base>/<sample>.
func (o Options) SampleDir() string {
	return filepath.Join(o.BaseDir, o.Sample)
}

// AlignmentDir returns the directory of alignment files for category c.
func (o Options) AlignmentDir(c readset.Category) string {
	return filepath.Join(o.SampleDir(), "last", c.String())
}

// FastaDir returns the directory of read FASTA files for category c.
func (o Options) FastaDir(c readset.Category) string {
	return filepath.Join(o.SampleDir(), "fasta", c.String())
}

// AnalysisDir returns the output directory.
func (o Options) AnalysisDir() string {
	return filepath.Join(o.SampleDir(), "analysis")
}

// AnalysisFile returns name within the output directory.
func (o Options) AnalysisFile(name string) string {
	return filepath.Join(o.AnalysisDir(), name)
}

// ReportPath returns the path of the JSON report.
func (o Options) ReportPath() string {
	return o.AnalysisFile(ReportFile)
}

// EnsureAnalysisDir creates the output directory if needed.
func (o Options) EnsureAnalysisDir() error {
	return os.MkdirAll(o.AnalysisDir(), 0o755)
}
