package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-lang/nanook-go/internal/readset"
)

func newFS() *pflag.FlagSet { return pflag.NewFlagSet("test", pflag.ContinueOnError) }

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	o := Default()
	fs := newFS()
	Register(fs, &o)
	require.NoError(t, fs.Parse(args))
	return o
}

func TestDefaults(t *testing.T) {
	o := mustParse(t)
	assert.Equal(t, ".", o.BaseDir)
	assert.Equal(t, DefaultCoverageBinSize, o.CoverageBinSize)
	assert.False(t, o.SkipMalformed)
	assert.False(t, o.Progress)
}

func TestFlags(t *testing.T) {
	o := mustParse(t,
		"-b", "/data", "--sample", "run1", "-r", "ref/lambda",
		"--coverage-bin", "50", "--skip-malformed", "--progress",
	)
	assert.Equal(t, "/data", o.BaseDir)
	assert.Equal(t, "run1", o.Sample)
	assert.Equal(t, "ref/lambda", o.Reference)
	assert.Equal(t, 50, o.CoverageBinSize)
	assert.True(t, o.SkipMalformed)
	assert.True(t, o.Progress)
}

func TestLayout(t *testing.T) {
	o := Options{BaseDir: "/data", Sample: "run1"}
	assert.Equal(t, filepath.Join("/data", "run1", "last", "2D"), o.AlignmentDir(readset.TwoD))
	assert.Equal(t, filepath.Join("/data", "run1", "fasta", "Template"), o.FastaDir(readset.Template))
	assert.Equal(t, filepath.Join("/data", "run1", "analysis", "length_summary.txt"), o.AnalysisFile("length_summary.txt"))
	assert.Equal(t, filepath.Join("/data", "run1", "analysis", ReportFile), o.ReportPath())
}

func TestValidate(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "run1"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "file"), nil, 0o644))

	valid := Default()
	valid.BaseDir = base
	valid.Sample = "run1"
	valid.Reference = "ref"

	tests := []struct {
		name          string
		mutate        func(*Options)
		needReference bool
		wantErr       bool
	}{
		{"valid", func(*Options) {}, true, false},
		{"no base dir", func(o *Options) { o.BaseDir = "" }, true, true},
		{"no sample", func(o *Options) { o.Sample = "" }, true, true},
		{"no reference", func(o *Options) { o.Reference = "" }, true, true},
		{"no reference for lengths", func(o *Options) { o.Reference = "" }, false, false},
		{"zero bin", func(o *Options) { o.CoverageBinSize = 0 }, true, true},
		{"missing sample dir", func(o *Options) { o.Sample = "run2" }, true, true},
		{"sample is a file", func(o *Options) { o.Sample = "file" }, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := valid
			tt.mutate(&o)
			err := o.Validate(tt.needReference)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnsureAnalysisDir(t *testing.T) {
	o := Options{BaseDir: t.TempDir(), Sample: "s"}
	require.NoError(t, o.EnsureAnalysisDir())
	fi, err := os.Stat(o.AnalysisDir())
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}
