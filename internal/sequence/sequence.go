// Package sequence provides the nucleotide alphabet shared by the alignment,
// motif and read-set packages.
//
// Aligned MAF sequences are compared byte for byte: soft-masked (lower case)
// bases are distinct from their upper case form, and only the four upper case
// bases A, C, G and T are counted by the helpers in this package.
package sequence

// Gap is the column symbol used in aligned sequences for an absent base.
const Gap = '-'

// Bases lists the unambiguous DNA bases in index order.
const Bases = "ACGT"

// NumBases is the number of unambiguous DNA bases.
const NumBases = len(Bases)

// BaseIndex returns the index of b in Bases, or false if b is not one of
// A, C, G or T.
func BaseIndex(b byte) (int, bool) {
	switch b {
	case 'A':
		return 0, true
	case 'C':
		return 1, true
	case 'G':
		return 2, true
	case 'T':
		return 3, true
	default:
		return -1, false
	}
}

// IsGap reports whether b is the gap symbol.
func IsGap(b byte) bool {
	return b == Gap
}

// BaseCounts holds a count for each unambiguous base.
type BaseCounts struct {
	A int `json:"A"`
	C int `json:"C"`
	G int `json:"G"`
	T int `json:"T"`
}

// Add adds n to the count for base b. It reports whether b was counted;
// characters other than A, C, G and T are ignored.
func (bc *BaseCounts) Add(b byte, n int) bool {
	switch b {
	case 'A':
		bc.A += n
	case 'C':
		bc.C += n
	case 'G':
		bc.G += n
	case 'T':
		bc.T += n
	default:
		return false
	}
	return true
}

// Get returns the count for base b, or 0 for any other character.
func (bc BaseCounts) Get(b byte) int {
	switch b {
	case 'A':
		return bc.A
	case 'C':
		return bc.C
	case 'G':
		return bc.G
	case 'T':
		return bc.T
	}
	return 0
}

// Total returns the total count of all bases.
func (bc BaseCounts) Total() int {
	return bc.A + bc.C + bc.G + bc.T
}

// Count returns the base counts of s.
func Count(s string) BaseCounts {
	var bc BaseCounts
	for i := 0; i < len(s); i++ {
		bc.Add(s[i], 1)
	}
	return bc
}
