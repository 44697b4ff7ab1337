package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aria-lang/nanook-go/internal/alignment"
	"github.com/aria-lang/nanook-go/internal/motif"
	"github.com/aria-lang/nanook-go/internal/readset"
	"github.com/aria-lang/nanook-go/internal/reference"
	"github.com/aria-lang/nanook-go/internal/sequence"
)

// LogoMotifs is the number of top and bottom ranked motifs whose base
// composition is reported for sequence logos.
const LogoMotifs = 10

// Report is the complete result of an analysis run.
type Report struct {
	Sample          string           `json:"sample"`
	Reference       string           `json:"reference"`
	CoverageBinSize int              `json:"coverage_bin_size"`
	Categories      []CategoryReport `json:"categories"`
	Lengths         []LengthSummary  `json:"lengths,omitempty"`
}

// CategoryReport holds the alignment results of one read category.
type CategoryReport struct {
	Category              readset.Category `json:"category"`
	Files                 int              `json:"files"`
	SkippedFiles          []string         `json:"skipped_files,omitempty"`
	Reads                 int              `json:"reads"`
	ReadsWithAlignment    int              `json:"reads_with_alignment"`
	ReadsWithoutAlignment int              `json:"reads_without_alignment"`
	PercentWithAlignment  float64          `json:"percent_with_alignment"`

	Insertions    int `json:"insertions"`
	Deletions     int `json:"deletions"`
	Substitutions int `json:"substitutions"`

	// SubstitutionPercentages is indexed [reference base][read base] in
	// A, C, G, T order.
	SubstitutionPercentages [sequence.NumBases][sequence.NumBases]float64 `json:"substitution_percentages"`

	// BestKmers and CumulativeBestKmers cover every read of the category
	// with an alignment, from length 1 to the longest best run.
	BestKmers           []reference.KmerRow `json:"best_kmers"`
	CumulativeBestKmers []reference.KmerRow `json:"cumulative_best_kmers"`

	Motifs     []MotifReport     `json:"motifs"`
	References []ReferenceReport `json:"references"`
}

// BestKmerRows returns the distribution of the best perfect run of each
// aligned read of agg, and its cumulative form, as percentages of the
// reads with an alignment.
func BestKmerRows(agg *readset.Aggregator) (best, cumulative []reference.KmerRow) {
	reads := agg.ReadsWithAlignment()
	percent := func(n int) float64 {
		if reads == 0 {
			return 0
		}
		return 100.0 * float64(n) / float64(reads)
	}
	for l := 1; l <= agg.LongestBestKmer(); l++ {
		n, c := agg.BestKmer(l), agg.CumulativeBestKmer(l)
		best = append(best, reference.KmerRow{Length: l, Count: n, Percent: percent(n)})
		cumulative = append(cumulative, reference.KmerRow{Length: l, Count: c, Percent: percent(c)})
	}
	return best, cumulative
}

// MotifReport holds the ranked motifs of one error class and length.
type MotifReport struct {
	Class             string                `json:"class"`
	K                 int                   `json:"k"`
	Total             int                   `json:"total"`
	Motifs            []motif.Percentage    `json:"motifs"`
	TopComposition    []sequence.BaseCounts `json:"top_composition"`
	BottomComposition []sequence.BaseCounts `json:"bottom_composition"`
}

// ReferenceReport holds the results of one reference for one category.
type ReferenceReport struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Size               int    `json:"size"`
	ReadsWithAlignment int    `json:"reads_with_alignment"`
	LongestPerfectKmer int    `json:"longest_perfect_kmer"`

	AlignedPercentIdentical   float64 `json:"aligned_percent_identical"`
	ReadPercentIdentical      float64 `json:"read_percent_identical"`
	PercentInsertionErrors    float64 `json:"percent_insertion_errors"`
	PercentDeletionErrors     float64 `json:"percent_deletion_errors"`
	PercentSubstitutionErrors float64 `json:"percent_substitution_errors"`

	Coverage       []reference.CoverageBin  `json:"coverage"`
	Kmers          reference.KmerHistograms `json:"kmers"`
	InsertionSizes []reference.SizeRow      `json:"insertion_sizes"`
	DeletionSizes  []reference.SizeRow      `json:"deletion_sizes"`
}

// NewReferenceReport captures the current state of a.
func NewReferenceReport(a *reference.Accumulator, binSize int) (ReferenceReport, error) {
	coverage, err := a.CoverageProfile(binSize)
	if err != nil {
		return ReferenceReport{}, fmt.Errorf("reference %s: %w", a.ID, err)
	}
	return ReferenceReport{
		ID:                        a.ID,
		Name:                      a.Name,
		Size:                      a.Size,
		ReadsWithAlignment:        a.ReadsWithAlignment(),
		LongestPerfectKmer:        a.LongestRun(),
		AlignedPercentIdentical:   a.AlignedPercentIdentical(),
		ReadPercentIdentical:      a.ReadPercentIdentical(),
		PercentInsertionErrors:    a.PercentInsertionErrors(),
		PercentDeletionErrors:     a.PercentDeletionErrors(),
		PercentSubstitutionErrors: a.PercentSubstitutionErrors(),
		Coverage:                  coverage,
		Kmers:                     a.KmerHistograms(),
		InsertionSizes:            a.InsertionSizes(),
		DeletionSizes:             a.DeletionSizes(),
	}, nil
}

// NewCategoryReport captures the current state of a category pass: the
// aggregator and every reference of the registry.
func NewCategoryReport(agg *readset.Aggregator, refs *reference.Registry, binSize int) (CategoryReport, error) {
	c := CategoryReport{
		Category:                agg.Category,
		Reads:                   agg.TotalReads(),
		ReadsWithAlignment:      agg.ReadsWithAlignment(),
		ReadsWithoutAlignment:   agg.ReadsWithoutAlignment(),
		PercentWithAlignment:    agg.PercentWithAlignment(),
		Insertions:              agg.ErrorCount(alignment.Insertion),
		Deletions:               agg.ErrorCount(alignment.Deletion),
		Substitutions:           agg.ErrorCount(alignment.Substitution),
		SubstitutionPercentages: agg.SubstitutionPercentages(),
	}
	c.BestKmers, c.CumulativeBestKmers = BestKmerRows(agg)

	table := agg.Motifs()
	for _, class := range alignment.ErrorClasses() {
		for _, k := range motif.Lengths() {
			counter, err := table.Counter(class, k)
			if err != nil {
				return CategoryReport{}, err
			}
			c.Motifs = append(c.Motifs, MotifReport{
				Class:             class.String(),
				K:                 k,
				Total:             counter.Total(),
				Motifs:            counter.Percentages(),
				TopComposition:    counter.TopComposition(LogoMotifs),
				BottomComposition: counter.BottomComposition(LogoMotifs),
			})
		}
	}

	err := refs.Each(func(a *reference.Accumulator) error {
		r, err := NewReferenceReport(a, binSize)
		if err != nil {
			return err
		}
		c.References = append(c.References, r)
		return nil
	})
	if err != nil {
		return CategoryReport{}, err
	}
	return c, nil
}

// Category returns the report of category c.
func (r *Report) Category(c readset.Category) (*CategoryReport, bool) {
	for i := range r.Categories {
		if r.Categories[i].Category == c {
			return &r.Categories[i], true
		}
	}
	return nil, false
}

// Reference returns the report of reference id.
func (c *CategoryReport) Reference(id string) (*ReferenceReport, bool) {
	for i := range c.References {
		if c.References[i].ID == id {
			return &c.References[i], true
		}
	}
	return nil, false
}

// Motif returns the motif report of class and k.
func (c *CategoryReport) Motif(class string, k int) (*MotifReport, bool) {
	for i := range c.Motifs {
		if c.Motifs[i].Class == class && c.Motifs[i].K == k {
			return &c.Motifs[i], true
		}
	}
	return nil, false
}

// WriteJSON writes r as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// ReadJSON decodes a report.
func ReadJSON(rd io.Reader) (*Report, error) {
	var r Report
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}
	return &r, nil
}

// Save writes r to path.
func Save(path string, r *Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteJSON(f, r); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// Load reads the report at path.
func Load(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}
