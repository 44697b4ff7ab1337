// Package analysis runs a complete analysis of one sample: every read
// category's alignment files are parsed, analysed and accumulated per
// reference and per category, read lengths are summarised, and all tables
// and the JSON report are written to the analysis directory.
package analysis

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cheggaaa/pb/v3"
	"github.com/grailbio/base/log"

	"github.com/aria-lang/nanook-go/internal/alignment"
	"github.com/aria-lang/nanook-go/internal/maf"
	"github.com/aria-lang/nanook-go/internal/motif"
	"github.com/aria-lang/nanook-go/internal/options"
	"github.com/aria-lang/nanook-go/internal/readset"
	"github.com/aria-lang/nanook-go/internal/reference"
	"github.com/aria-lang/nanook-go/internal/report"
)

// Driver owns the accumulators of a run and feeds them one file at a time.
// It is not safe for concurrent use.
type Driver struct {
	opts options.Options
	refs *reference.Registry
}

// New returns a Driver for opts accumulating into refs.
func New(opts options.Options, refs *reference.Registry) *Driver {
	return &Driver{opts: opts, refs: refs}
}

// LoadReferences finds and loads the sizes table of the configured
// reference. When no sizes table exists but the reference itself is a FASTA
// file, a sizes table is generated next to it first.
func LoadReferences(opts options.Options) (*reference.Registry, error) {
	path, err := reference.FindSizesFile(opts.Reference)
	if err != nil {
		fi, statErr := os.Stat(opts.Reference)
		if statErr != nil || fi.IsDir() {
			return nil, err
		}
		log.Printf("generating sizes table for %s; display names can be edited in it", opts.Reference)
		if path, err = reference.IndexFasta(opts.Reference); err != nil {
			return nil, err
		}
	}

	refs, err := reference.LoadSizesFile(path)
	if err != nil {
		return nil, err
	}
	log.Printf("loaded %d reference sequences from %s", refs.Len(), path)
	return refs, nil
}

// Run analyses every read category, gathers read lengths and writes all
// outputs. It returns the report written to report.json.
func (d *Driver) Run(ctx context.Context) (*report.Report, error) {
	if err := d.opts.EnsureAnalysisDir(); err != nil {
		return nil, err
	}

	r := &report.Report{
		Sample:          d.opts.Sample,
		Reference:       d.opts.Reference,
		CoverageBinSize: d.opts.CoverageBinSize,
	}
	for _, c := range readset.Categories() {
		cr, err := d.AnalyseCategory(ctx, c)
		if err != nil {
			return nil, err
		}
		r.Categories = append(r.Categories, cr)
	}

	err := writeFile(d.opts.AnalysisFile(report.AlignmentSummaryFile), func(w io.Writer) error {
		return report.WriteAlignmentSummary(w, r.Categories)
	})
	if err != nil {
		return nil, err
	}

	if r.Lengths, err = d.GatherLengths(ctx); err != nil {
		return nil, err
	}

	if err := report.Save(d.opts.ReportPath(), r); err != nil {
		return nil, err
	}
	log.Printf("wrote %s", d.opts.ReportPath())
	return r, nil
}

// parsed holds the records of one alignment file and their metrics.
type parsed struct {
	pairs   []maf.Pair
	metrics []*alignment.Metrics
}

// parseFile reads and analyses every record of the alignment file at path.
func parseFile(path string) (parsed, error) {
	f, err := maf.Open(path)
	if err != nil {
		return parsed{}, err
	}
	defer f.Close()

	var p parsed
	for f.Next() {
		pair := f.Pair()
		p.pairs = append(p.pairs, pair)
		p.metrics = append(p.metrics, alignment.Analyze(pair))
	}
	if err := f.Err(); err != nil {
		return parsed{}, err
	}
	return p, nil
}

// AnalyseCategory runs one category pass: references and aggregator start
// empty, every alignment file of the category is committed in name order,
// and the category's tables are written.
func (d *Driver) AnalyseCategory(ctx context.Context, c readset.Category) (report.CategoryReport, error) {
	d.refs.ResetAll()
	agg := readset.NewAggregator(c)

	dir := d.opts.AlignmentDir(c)
	files, err := listFiles(dir, alignmentSuffixes)
	if err != nil {
		return report.CategoryReport{}, err
	}
	log.Printf("parsing %s alignments (%d files)", c, len(files))

	var skipped []string
	err = writeFile(d.opts.AnalysisFile(report.AlignmentTableFile(c)), func(w io.Writer) error {
		table, err := report.NewAlignmentTable(w)
		if err != nil {
			return err
		}

		var bar *pb.ProgressBar
		if d.opts.Progress && len(files) > 0 {
			bar = pb.Full.Start(len(files))
			defer bar.Finish()
		}

		for _, name := range files {
			if err := ctx.Err(); err != nil {
				return err
			}

			p, err := parseFile(filepath.Join(dir, name))
			if err != nil {
				if !d.opts.SkipMalformed {
					return err
				}
				log.Error.Printf("skipping %s: %v", name, err)
				skipped = append(skipped, name)
			} else if err := d.commit(name, p, agg, table); err != nil {
				return err
			}

			log.Debug.Printf("%s: %d alignments", name, len(p.pairs))
			if bar != nil {
				bar.Increment()
			}
		}
		return table.Flush()
	})
	if err != nil {
		return report.CategoryReport{}, fmt.Errorf("%s: %w", c, err)
	}

	log.Printf("%s reads: %d (%d with alignments, %d without)",
		c, agg.TotalReads(), agg.ReadsWithAlignment(), agg.ReadsWithoutAlignment())

	if err := d.writeCategoryTables(agg); err != nil {
		return report.CategoryReport{}, fmt.Errorf("%s: %w", c, err)
	}

	cr, err := report.NewCategoryReport(agg, d.refs, d.opts.CoverageBinSize)
	if err != nil {
		return report.CategoryReport{}, fmt.Errorf("%s: %w", c, err)
	}
	cr.Files = len(files) - len(skipped)
	cr.SkippedFiles = skipped
	return cr, nil
}

// commit adds the records of one alignment file, which holds the
// alignments of a single read, to the accumulators. A file without records
// is an unaligned read. Every record's reference is resolved before anything
// is added.
func (d *Driver) commit(name string, p parsed, agg *readset.Aggregator, table *report.AlignmentTable) error {
	if len(p.pairs) == 0 {
		agg.RecordUnalignedRead()
		return table.AddEmpty(name)
	}

	refs := make([]*reference.Accumulator, len(p.pairs))
	for i, pair := range p.pairs {
		ref, err := d.refs.Get(pair.Ref.Name)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		refs[i] = ref
	}

	var best *reference.Accumulator
	bestRun := 0
	for i, pair := range p.pairs {
		ref, m := refs[i], p.metrics[i]

		ref.AddAlignment(pair.Query.TotalLength, m.AlignedSize, m.IdenticalBases)
		for _, run := range m.Runs {
			if err := ref.AddPerfectKmerRun(run); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
		for _, ev := range m.Errors {
			if err := ref.AddError(ev); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			agg.RecordError(ev)
		}
		if err := ref.AddCoverage(pair.Ref.Start, pair.Ref.AlignedSpan); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := table.Add(name, pair, m); err != nil {
			return err
		}

		if best == nil || m.LongestRun > bestRun {
			best, bestRun = ref, m.LongestRun
		}
	}

	if err := best.AddReadBestKmer(bestRun); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := agg.RecordAlignedRead(bestRun); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// writeCategoryTables writes the per-reference and per-category tables of
// the current pass.
func (d *Driver) writeCategoryTables(agg *readset.Aggregator) error {
	c := agg.Category
	stems := report.ReferenceStems(d.refs.Names())
	err := d.refs.Each(func(a *reference.Accumulator) error {
		file := func(kind string) string {
			return d.opts.AnalysisFile(report.ReferenceFile(stems[a.ID], c, kind))
		}

		bins, err := a.CoverageProfile(d.opts.CoverageBinSize)
		if err != nil {
			return err
		}
		h := a.KmerHistograms()

		tables := []struct {
			kind  string
			write func(io.Writer) error
		}{
			{report.Coverage, func(w io.Writer) error { return report.WriteCoverage(w, bins) }},
			{report.AllPerfectKmers, func(w io.Writer) error { return report.WritePerfectKmers(w, h.Perfect) }},
			{report.BestPerfectKmers, func(w io.Writer) error { return report.WriteBestKmers(w, h.Best) }},
			{report.CumulativePerfectKmers, func(w io.Writer) error { return report.WriteBestKmers(w, h.Cumulative) }},
			{report.InsertionSizeTable, func(w io.Writer) error { return report.WriteIndelSizes(w, a.InsertionSizes()) }},
			{report.DeletionSizeTable, func(w io.Writer) error { return report.WriteIndelSizes(w, a.DeletionSizes()) }},
		}
		for _, t := range tables {
			if err := writeFile(file(t.kind), t.write); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	best, cumulative := report.BestKmerRows(agg)
	for kind, rows := range map[string][]reference.KmerRow{
		report.BestPerfectKmers:       best,
		report.CumulativePerfectKmers: cumulative,
	} {
		rows := rows
		err := writeFile(d.opts.AnalysisFile(report.CategoryKmersFile(c, kind)), func(w io.Writer) error {
			return report.WriteBestKmers(w, rows)
		})
		if err != nil {
			return err
		}
	}

	err = writeFile(d.opts.AnalysisFile(report.SubstitutionsFile(c)), func(w io.Writer) error {
		return report.WriteSubstitutions(w, agg.SubstitutionPercentages())
	})
	if err != nil {
		return err
	}

	for _, class := range alignment.ErrorClasses() {
		for _, k := range motif.Lengths() {
			motifs, err := agg.Motifs().Percentages(class, k)
			if err != nil {
				return err
			}
			err = writeFile(d.opts.AnalysisFile(report.MotifsFile(c, class, k)), func(w io.Writer) error {
				return report.WriteMotifs(w, motifs)
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}
