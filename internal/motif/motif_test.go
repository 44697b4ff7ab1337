package motif

import (
	"testing"

	"github.com/aria-lang/nanook-go/internal/alignment"
	"github.com/aria-lang/nanook-go/internal/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCounter(t *testing.T) {
	tests := []struct {
		name    string
		k       int
		wantErr bool
	}{
		{"valid k=3", 3, false},
		{"valid k=5", 5, false},
		{"invalid k=0", 0, true},
		{"invalid k=-1", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter, err := NewCounter(tt.k)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.k, counter.K)
			}
		})
	}
}

func TestCounterAdd(t *testing.T) {
	c, err := NewCounter(3)
	require.NoError(t, err)

	require.NoError(t, c.Add("ACG"))
	require.NoError(t, c.Add("ACG"))
	require.NoError(t, c.Add("TTT"))
	require.Error(t, c.Add("ACGT"))

	assert.Equal(t, 2, c.Get("ACG"))
	assert.Equal(t, 1, c.Get("TTT"))
	assert.Equal(t, 0, c.Get("GGG"))
	assert.Equal(t, 3, c.Total())
	assert.Equal(t, 2, c.UniqueCount())
}

func TestRankedStableTies(t *testing.T) {
	c, _ := NewCounter(3)
	for _, m := range []string{"CCC", "AAA", "GGG", "AAA", "TTT", "GGG"} {
		require.NoError(t, c.Add(m))
	}

	assert.Equal(t, []Count{
		{"AAA", 2},
		{"GGG", 2},
		{"CCC", 1},
		{"TTT", 1},
	}, c.Ranked())

	assert.Equal(t, []Count{{"AAA", 2}}, c.Top(1))
	assert.Equal(t, []Count{{"TTT", 1}, {"CCC", 1}}, c.Bottom(2))
	assert.Len(t, c.Top(10), 4)
	assert.Len(t, c.Bottom(10), 4)
}

func TestPercentagesCache(t *testing.T) {
	c, _ := NewCounter(3)
	require.NoError(t, c.Add("ACG"))
	require.NoError(t, c.Add("ACG"))
	require.NoError(t, c.Add("ACG"))
	require.NoError(t, c.Add("TTT"))

	pc := c.Percentages()
	require.Len(t, pc, 2)
	assert.Equal(t, "ACG", pc[0].Motif)
	assert.InDelta(t, 75.0, pc[0].Percent, 1e-9)
	assert.InDelta(t, 25.0, pc[1].Percent, 1e-9)

	// Cached until the next Add.
	assert.Equal(t, pc, c.Percentages())

	require.NoError(t, c.Add("TTT"))
	pc = c.Percentages()
	assert.InDelta(t, 60.0, pc[0].Percent, 1e-9)
	assert.InDelta(t, 40.0, pc[1].Percent, 1e-9)
}

func TestComposition(t *testing.T) {
	c, _ := NewCounter(3)
	for _, m := range []string{"ACG", "ACG", "ANT", "TTT"} {
		require.NoError(t, c.Add(m))
	}

	top := c.TopComposition(2)
	require.Len(t, top, 3)
	assert.Equal(t, sequence.BaseCounts{A: 3}, top[0])
	assert.Equal(t, sequence.BaseCounts{C: 2}, top[1]) // N ignored
	assert.Equal(t, sequence.BaseCounts{G: 2, T: 1}, top[2])

	bottom := c.BottomComposition(1)
	assert.Equal(t, []sequence.BaseCounts{{T: 1}, {T: 1}, {T: 1}}, bottom)
}

func TestTableRecord(t *testing.T) {
	table := NewTable()

	table.Record(alignment.Insertion, "AC")     // too short
	table.Record(alignment.Insertion, "ACG")    // no k with len > k
	table.Record(alignment.Insertion, "TACGT")  // k=3, k=4
	table.Record(alignment.Insertion, "GTACGT") // k=3, k=4, k=5

	total3, err := table.Total(alignment.Insertion, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, total3)

	total4, _ := table.Total(alignment.Insertion, 4)
	assert.Equal(t, 2, total4)

	total5, _ := table.Total(alignment.Insertion, 5)
	assert.Equal(t, 1, total5)

	ranked, err := table.Ranked(alignment.Insertion, 3)
	require.NoError(t, err)
	assert.Equal(t, []Count{{"CGT", 2}}, ranked)

	ranked, _ = table.Ranked(alignment.Insertion, 5)
	assert.Equal(t, []Count{{"TACGT", 1}}, ranked)

	// Other classes are untouched.
	total3, _ = table.Total(alignment.Deletion, 3)
	assert.Equal(t, 0, total3)
}

func TestTableClassesIndependent(t *testing.T) {
	table := NewTable()
	table.Record(alignment.Substitution, "AAAAAA")
	table.Record(alignment.Deletion, "CCCCCC")

	pc, err := table.Percentages(alignment.Substitution, 4)
	require.NoError(t, err)
	assert.Equal(t, []Percentage{{"AAAA", 100}}, pc)

	comp, err := table.TopComposition(alignment.Deletion, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, []sequence.BaseCounts{{C: 1}, {C: 1}, {C: 1}}, comp)

	comp, err = table.BottomComposition(alignment.Deletion, 3, 10)
	require.NoError(t, err)
	assert.Len(t, comp, 3)
}

func TestTableBadArguments(t *testing.T) {
	table := NewTable()

	_, err := table.Counter(alignment.Insertion, 2)
	require.Error(t, err)
	_, err = table.Counter(alignment.Insertion, 6)
	require.Error(t, err)
	_, err = table.Counter(alignment.ErrorClass(9), 3)
	require.Error(t, err)

	// Unknown classes are ignored when recording.
	table.Record(alignment.ErrorClass(9), "ACGTACGT")
}

func TestLengths(t *testing.T) {
	assert.Equal(t, []int{3, 4, 5}, Lengths())
}
