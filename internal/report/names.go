package report

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/aria-lang/nanook-go/internal/alignment"
	"github.com/aria-lang/nanook-go/internal/readset"
)

// Output file names within the analysis directory.
const (
	LengthSummaryFile    = "length_summary.txt"
	AlignmentSummaryFile = "alignment_summary.txt"
)

// Kinds of per-reference table.
const (
	Coverage               = "coverage"
	AllPerfectKmers        = "all_perfect_kmers"
	BestPerfectKmers       = "best_perfect_kmers"
	CumulativePerfectKmers = "cumulative_perfect_kmers"
	InsertionSizeTable     = "insertions"
	DeletionSizeTable      = "deletions"
)

// AlignmentTableFile returns the name of the alignment table of c.
func AlignmentTableFile(c readset.Category) string {
	return fmt.Sprintf("%s_alignment_summary.txt", c)
}

// ReferenceFile returns the name of a per-reference table. stem is the
// reference's entry in ReferenceStems.
func ReferenceFile(name string, c readset.Category, kind string) string {
	return fmt.Sprintf("%s_%s_%s.txt", name, c, kind)
}

// FileStem turns a reference name into a file name component: path
// separators and whitespace become underscores.
func FileStem(name string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, name)
}

// ReferenceStems returns the file name stem of each reference, keyed by id.
// names maps ids to display names. A display name is used when no other
// reference shares its stem, by name or by id; otherwise the reference falls
// back to its id.
func ReferenceStems(names map[string]string) map[string]string {
	byName := make(map[string]int, len(names))
	byID := make(map[string]string, len(names))
	for id, name := range names {
		byName[FileStem(name)]++
		byID[FileStem(id)] = id
	}
	stems := make(map[string]string, len(names))
	for id, name := range names {
		stem := FileStem(name)
		if other, ok := byID[stem]; byName[stem] == 1 && (!ok || other == id) {
			stems[id] = stem
		} else {
			stems[id] = FileStem(id)
		}
	}
	return stems
}

// CategoryKmersFile returns the name of a per-category k-mer table of c;
// kind is BestPerfectKmers or CumulativePerfectKmers.
func CategoryKmersFile(c readset.Category, kind string) string {
	return fmt.Sprintf("all_%s_%s.txt", c, kind)
}

// LengthsFile returns the name of the read lengths table of c.
func LengthsFile(c readset.Category) string {
	return fmt.Sprintf("all_%s_lengths.txt", c)
}

// SubstitutionsFile returns the name of the substitution matrix of c.
func SubstitutionsFile(c readset.Category) string {
	return fmt.Sprintf("all_%s_substitutions_percent.txt", c)
}

// MotifsFile returns the name of the motif table of c for class and k.
func MotifsFile(c readset.Category, class alignment.ErrorClass, k int) string {
	return fmt.Sprintf("all_%s_%s_%dmer_motifs.txt", c, class, k)
}
