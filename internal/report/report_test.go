package report

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-lang/nanook-go/internal/alignment"
	"github.com/aria-lang/nanook-go/internal/maf"
	"github.com/aria-lang/nanook-go/internal/motif"
	"github.com/aria-lang/nanook-go/internal/readset"
	"github.com/aria-lang/nanook-go/internal/reference"
	"github.com/aria-lang/nanook-go/internal/stats"
)

func testPair() maf.Pair {
	return maf.Pair{
		Ref:   maf.Line{Name: "chr1", Start: 10, AlignedSpan: 8, Strand: "+", TotalLength: 100, Sequence: "ACGTACGT"},
		Query: maf.Line{Name: "read1", Start: 0, AlignedSpan: 8, Strand: "-", TotalLength: 10, Sequence: "ACGTTCGT"},
	}
}

func TestAlignmentTable(t *testing.T) {
	var buf bytes.Buffer
	table, err := NewAlignmentTable(&buf)
	require.NoError(t, err)

	p := testPair()
	require.NoError(t, table.Add("read1.maf", p, alignment.Analyze(p)))
	require.NoError(t, table.AddEmpty("read2.maf"))
	require.NoError(t, table.Flush())

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	header := strings.Split(lines[0], "\t")
	assert.Len(t, header, 18)
	assert.Equal(t, "Filename", header[0])
	assert.Equal(t, "PercentQueryAligned", header[17])

	row := strings.Split(lines[1], "\t")
	require.Len(t, row, 18)
	assert.Equal(t, []string{"read1.maf", "read1", "0", "8", "-", "10", "chr1", "10", "8", "+", "100"}, row[:11])
	assert.Equal(t, "8", row[11])
	assert.Equal(t, "7", row[12])
	assert.Equal(t, "87.50", row[13])
	assert.Equal(t, "70.00", row[14])
	assert.Equal(t, "4", row[15])
	assert.Equal(t, "3.50", row[16])
	assert.Equal(t, "80.00", row[17])

	assert.Equal(t, "read2.maf\tNO ALIGNMENTS", lines[2])
}

func TestReferenceTables(t *testing.T) {
	a := reference.NewAccumulator("chr1", 4, "chr1")
	require.NoError(t, a.AddCoverage(0, 3))
	require.NoError(t, a.AddPerfectKmerRun(2))
	require.NoError(t, a.AddReadBestKmer(2))
	require.NoError(t, a.AddError(alignment.ErrorEvent{Class: alignment.Insertion, Size: 1}))

	bins, err := a.CoverageProfile(2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCoverage(&buf, bins))
	assert.Equal(t, "0\t1.00\n2\t0.50\n", buf.String())

	h := a.KmerHistograms()
	buf.Reset()
	require.NoError(t, WritePerfectKmers(&buf, h.Perfect))
	assert.Equal(t, "1\t0\n2\t1\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteBestKmers(&buf, h.Cumulative))
	assert.Equal(t, "1\t1\t100.00\n2\t1\t100.00\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteIndelSizes(&buf, a.InsertionSizes()))
	assert.Equal(t, "1\t100.0000\n", buf.String())
}

func TestWriteSubstitutions(t *testing.T) {
	agg := readset.NewAggregator(readset.Template)
	agg.RecordError(alignment.ErrorEvent{Class: alignment.Substitution, RefBase: 'A', ReadBase: 'G'})
	agg.RecordError(alignment.ErrorEvent{Class: alignment.Substitution, RefBase: 'T', ReadBase: 'C'})

	var buf bytes.Buffer
	require.NoError(t, WriteSubstitutions(&buf, agg.SubstitutionPercentages()))
	assert.Equal(t, strings.Join([]string{
		"\tSubA\tSubC\tSubG\tSubT",
		"RefA\t0.00\t0.00\t50.00\t0.00",
		"RefC\t0.00\t0.00\t0.00\t0.00",
		"RefG\t0.00\t0.00\t0.00\t0.00",
		"RefT\t0.00\t50.00\t0.00\t0.00",
		"",
	}, "\n"), buf.String())
}

func TestWriteMotifs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMotifs(&buf, []motif.Percentage{{Motif: "ACG", Percent: 75}, {Motif: "TTT", Percent: 25}}))
	assert.Equal(t, "Kmer\tPercentage\nACG\t75.0000\nTTT\t25.0000\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteMotifs(&buf, nil))
	assert.Equal(t, "Kmer\tPercentage\n", buf.String())
}

func TestLengthsWriter(t *testing.T) {
	var buf bytes.Buffer
	lw := NewLengthsWriter(&buf)
	require.NoError(t, lw.Add("r1", 100))
	require.NoError(t, lw.Add("r2", 7))
	require.NoError(t, lw.Flush())
	assert.Equal(t, "r1\t100\nr2\t7\n", buf.String())
}

func TestWriteLengthSummary(t *testing.T) {
	s := stats.NewLengthStats()
	for _, l := range []int{10, 10, 20, 60} {
		require.NoError(t, s.AddLength(l))
	}
	require.NoError(t, s.Finalize())
	row := NewLengthSummary(readset.TwoD, s)
	assert.Equal(t, 60, row.N50)
	assert.Equal(t, 3, row.N90Count)

	var buf bytes.Buffer
	require.NoError(t, WriteLengthSummary(&buf, "run1", []LengthSummary{row}))

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "nanook report - run1", lines[0])
	assert.Equal(t, []string{"Type", "NumReads", "TotalBases", "Mean", "Long", "Short", "N50", "N50Count", "N90", "N90Count"}, strings.Fields(lines[4]))
	assert.Equal(t, []string{"2D", "4", "100", "25.00", "60", "10", "60", "1", "10", "3"}, strings.Fields(lines[5]))
}

func newRun(t *testing.T) (*readset.Aggregator, *reference.Registry) {
	t.Helper()
	refs, err := reference.LoadSizes(strings.NewReader("chr1\t8\tChromosome_1\nplasmid\t4\tpUC\n"))
	require.NoError(t, err)

	agg := readset.NewAggregator(readset.Template)
	a, err := refs.Get("chr1")
	require.NoError(t, err)

	require.NoError(t, a.AddCoverage(0, 8))
	require.NoError(t, a.AddPerfectKmerRun(5))
	require.NoError(t, a.AddReadBestKmer(5))
	a.AddAlignment(10, 8, 7)

	ev := alignment.ErrorEvent{Class: alignment.Substitution, Size: 1, Context: "ACGTA", RefBase: 'A', ReadBase: 'C'}
	require.NoError(t, a.AddError(ev))
	agg.RecordError(ev)
	require.NoError(t, agg.RecordAlignedRead(5))
	agg.RecordUnalignedRead()
	return agg, refs
}

func TestCategoryReport(t *testing.T) {
	agg, refs := newRun(t)

	c, err := NewCategoryReport(agg, refs, 4)
	require.NoError(t, err)

	assert.Equal(t, readset.Template, c.Category)
	assert.Equal(t, 2, c.Reads)
	assert.Equal(t, 1, c.ReadsWithAlignment)
	assert.InDelta(t, 50.0, c.PercentWithAlignment, 1e-9)
	assert.Equal(t, 1, c.Substitutions)
	assert.InDelta(t, 100.0, c.SubstitutionPercentages[0][1], 1e-9)
	assert.Len(t, c.Motifs, 9)

	m, ok := c.Motif("substitution", 4)
	require.True(t, ok)
	assert.Equal(t, 1, m.Total)
	assert.Equal(t, []motif.Percentage{{Motif: "CGTA", Percent: 100}}, m.Motifs)
	require.Len(t, m.TopComposition, 4)
	assert.Equal(t, 1, m.TopComposition[0].C)

	require.Len(t, c.References, 2)
	r, ok := c.Reference("chr1")
	require.True(t, ok)
	assert.Equal(t, "Chromosome_1", r.Name)
	assert.Equal(t, 1, r.ReadsWithAlignment)
	assert.Equal(t, 5, r.LongestPerfectKmer)
	assert.InDelta(t, 87.5, r.AlignedPercentIdentical, 1e-9)
	assert.Len(t, r.Coverage, 2)
	assert.Len(t, r.Kmers.Best, 5)

	require.Len(t, c.BestKmers, 5)
	assert.Equal(t, reference.KmerRow{Length: 5, Count: 1, Percent: 100}, c.BestKmers[4])
	assert.Zero(t, c.BestKmers[0].Count)
	require.Len(t, c.CumulativeBestKmers, 5)
	assert.Equal(t, reference.KmerRow{Length: 1, Count: 1, Percent: 100}, c.CumulativeBestKmers[0])

	_, ok = c.Reference("chrX")
	assert.False(t, ok)

	var buf bytes.Buffer
	require.NoError(t, WriteAlignmentSummary(&buf, []CategoryReport{c}))
	out := buf.String()
	assert.Contains(t, out, "Template alignments\n")
	assert.Contains(t, out, "Num reads: 2\n")
	assert.Contains(t, out, "Num reads without alignments: 1\n")
	assert.Equal(t, []string{"Chromosome_1", "8", "1", "5"}, fieldsOfLineWithPrefix(out, "Chromosome_1"))
	assert.Equal(t, []string{"pUC", "4", "0", "0"}, fieldsOfLineWithPrefix(out, "pUC"))
}

func fieldsOfLineWithPrefix(s, prefix string) []string {
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(line, prefix) {
			return strings.Fields(line)
		}
	}
	return nil
}

func TestJSONRoundTrip(t *testing.T) {
	agg, refs := newRun(t)
	c, err := NewCategoryReport(agg, refs, 4)
	require.NoError(t, err)

	r := &Report{Sample: "run1", Reference: "ref", CoverageBinSize: 4, Categories: []CategoryReport{c}}
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, Save(path, r))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "run1", loaded.Sample)

	lc, ok := loaded.Category(readset.Template)
	require.True(t, ok)
	assert.Equal(t, c.Reads, lc.Reads)
	assert.Equal(t, c.SubstitutionPercentages, lc.SubstitutionPercentages)

	lr, ok := lc.Reference("chr1")
	require.True(t, ok)
	assert.Equal(t, c.References[0].Coverage, lr.Coverage)

	_, ok = loaded.Category(readset.TwoD)
	assert.False(t, ok)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, r))
	assert.Contains(t, buf.String(), `"category": "Template"`)
}

func TestReadJSONInvalid(t *testing.T) {
	_, err := ReadJSON(strings.NewReader("{"))
	assert.Error(t, err)

	_, err = ReadJSON(strings.NewReader(`{"categories":[{"category":"Unknown"}]}`))
	assert.Error(t, err)
}

func TestFileNames(t *testing.T) {
	assert.Equal(t, "2D_alignment_summary.txt", AlignmentTableFile(readset.TwoD))
	assert.Equal(t, "lambda_Template_coverage.txt", ReferenceFile("lambda", readset.Template, Coverage))
	assert.Equal(t, "all_Complement_lengths.txt", LengthsFile(readset.Complement))
	assert.Equal(t, "all_2D_substitutions_percent.txt", SubstitutionsFile(readset.TwoD))
	assert.Equal(t, "all_Template_insertion_3mer_motifs.txt", MotifsFile(readset.Template, alignment.Insertion, 3))
	assert.Equal(t, "all_2D_best_perfect_kmers.txt", CategoryKmersFile(readset.TwoD, BestPerfectKmers))
}

func TestBestKmerRowsEmpty(t *testing.T) {
	best, cumulative := BestKmerRows(readset.NewAggregator(readset.TwoD))
	assert.Empty(t, best)
	assert.Empty(t, cumulative)
}

func TestReferenceStems(t *testing.T) {
	assert.Equal(t, "E_coli_K-12", FileStem("E coli/K-12"))

	tests := []struct {
		name  string
		names map[string]string
		want  map[string]string
	}{
		{
			name:  "unique display names",
			names: map[string]string{"chr1": "Chromosome 1", "plasmid": "pUC19"},
			want:  map[string]string{"chr1": "Chromosome_1", "plasmid": "pUC19"},
		},
		{
			name:  "shared display name",
			names: map[string]string{"a": "contig", "b": "contig", "c": "other"},
			want:  map[string]string{"a": "a", "b": "b", "c": "other"},
		},
		{
			name:  "display name equal to another id",
			names: map[string]string{"x": "y", "y": "z"},
			want:  map[string]string{"x": "x", "y": "z"},
		},
		{
			name:  "display name equal to own id",
			names: map[string]string{"lambda": "lambda"},
			want:  map[string]string{"lambda": "lambda"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReferenceStems(tt.names))
		})
	}
}
