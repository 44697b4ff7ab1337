package analysis

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/log"

	"github.com/aria-lang/nanook-go/internal/options"
	"github.com/aria-lang/nanook-go/internal/readset"
	"github.com/aria-lang/nanook-go/internal/reference"
	"github.com/aria-lang/nanook-go/internal/report"
	"github.com/aria-lang/nanook-go/internal/stats"
)

// GatherLengths summarises the read lengths of every category and writes
// the per-category lengths tables and the length summary.
func (d *Driver) GatherLengths(ctx context.Context) ([]report.LengthSummary, error) {
	if err := d.opts.EnsureAnalysisDir(); err != nil {
		return nil, err
	}

	var rows []report.LengthSummary
	for _, c := range readset.Categories() {
		s, err := d.categoryLengths(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("%s lengths: %w", c, err)
		}
		rows = append(rows, report.NewLengthSummary(c, s))
	}

	err := writeFile(d.opts.AnalysisFile(report.LengthSummaryFile), func(w io.Writer) error {
		return report.WriteLengthSummary(w, d.opts.Sample, rows)
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (d *Driver) categoryLengths(ctx context.Context, c readset.Category) (*stats.LengthStats, error) {
	dir := d.opts.FastaDir(c)
	files, err := listFiles(dir, fastaSuffixes)
	if err != nil {
		return nil, err
	}

	s := stats.NewLengthStats()
	err = writeFile(d.opts.AnalysisFile(report.LengthsFile(c)), func(w io.Writer) error {
		lw := report.NewLengthsWriter(w)
		for _, name := range files {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := readFasta(filepath.Join(dir, name), func(id string, length int) error {
				if err := s.AddLength(length); err != nil {
					return fmt.Errorf("%s: read %s: %w", name, id, err)
				}
				return lw.Add(id, length)
			})
			if err != nil {
				return err
			}
		}
		return lw.Flush()
	})
	if err != nil {
		return nil, err
	}

	if err := s.Finalize(); err != nil {
		return nil, err
	}
	log.Printf("%s: %d reads, %d bases, N50 %d", c, s.Reads(), s.TotalBases(), s.N50())
	return s, nil
}

func readFasta(path string, fn func(id string, length int) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		defer gz.Close()
		r = gz
	}
	return stats.GatherFasta(r, fn)
}

// RunLengths gathers read lengths only, without a reference.
func RunLengths(ctx context.Context, opts options.Options) ([]report.LengthSummary, error) {
	return New(opts, reference.NewRegistry()).GatherLengths(ctx)
}
