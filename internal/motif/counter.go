// Package motif counts the sequence contexts that precede alignment errors.
//
// A Counter holds the motifs of a single length k. A Table holds one Counter
// per error class and per k in [MinK, MaxK], and is fed with the exact-match
// context of each classified error event.
package motif

import (
	"fmt"
	"sort"

	"github.com/aria-lang/nanook-go/internal/sequence"
)

// Count is a motif and the number of times it was seen.
type Count struct {
	Motif string `json:"motif"`
	Count int    `json:"count"`
}

// Percentage is a motif and its share of all motifs in a Counter.
type Percentage struct {
	Motif   string  `json:"motif"`
	Percent float64 `json:"percent"`
}

// Counter counts motifs of length K. It remembers the order in which motifs
// were first seen so that rankings are stable.
type Counter struct {
	K int

	counts map[string]int
	order  []string
	total  int

	percentages []Percentage
}

// NewCounter creates an empty counter for motifs of length k.
func NewCounter(k int) (*Counter, error) {
	if k <= 0 {
		return nil, fmt.Errorf("motif length must be positive, got %d", k)
	}
	return &Counter{K: k, counts: make(map[string]int)}, nil
}

// Add counts one occurrence of motif, which must have length K.
func (c *Counter) Add(motif string) error {
	if len(motif) != c.K {
		return fmt.Errorf("motif %q has length %d, want %d", motif, len(motif), c.K)
	}
	if _, ok := c.counts[motif]; !ok {
		c.order = append(c.order, motif)
	}
	c.counts[motif]++
	c.total++
	c.percentages = nil
	return nil
}

// Get returns the count for motif.
func (c *Counter) Get(motif string) int {
	return c.counts[motif]
}

// Total returns the number of motifs counted.
func (c *Counter) Total() int {
	return c.total
}

// UniqueCount returns the number of distinct motifs.
func (c *Counter) UniqueCount() int {
	return len(c.order)
}

// Ranked returns all motifs by descending count. Motifs with equal counts
// keep the order in which they were first seen.
func (c *Counter) Ranked() []Count {
	ranked := make([]Count, len(c.order))
	for i, m := range c.order {
		ranked[i] = Count{Motif: m, Count: c.counts[m]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}

// Top returns the n highest ranked motifs.
func (c *Counter) Top(n int) []Count {
	ranked := c.Ranked()
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// Bottom returns the n lowest ranked motifs, lowest first.
func (c *Counter) Bottom(n int) []Count {
	ranked := c.Ranked()
	if n > len(ranked) {
		n = len(ranked)
	}
	bottom := make([]Count, 0, n)
	for i := len(ranked) - 1; i >= len(ranked)-n; i-- {
		bottom = append(bottom, ranked[i])
	}
	return bottom
}

// Percentages returns each motif's share of the total count, in ranked
// order. The result is cached until the next call to Add.
func (c *Counter) Percentages() []Percentage {
	if c.percentages != nil {
		return c.percentages
	}

	ranked := c.Ranked()
	c.percentages = make([]Percentage, len(ranked))
	for i, mc := range ranked {
		c.percentages[i] = Percentage{
			Motif:   mc.Motif,
			Percent: 100.0 * float64(mc.Count) / float64(c.total),
		}
	}
	return c.percentages
}

// TopComposition returns per-position base counts over the n highest ranked
// motifs, each motif weighted by its count.
func (c *Counter) TopComposition(n int) []sequence.BaseCounts {
	return c.composition(c.Top(n))
}

// BottomComposition is TopComposition over the n lowest ranked motifs.
func (c *Counter) BottomComposition(n int) []sequence.BaseCounts {
	return c.composition(c.Bottom(n))
}

func (c *Counter) composition(motifs []Count) []sequence.BaseCounts {
	positions := make([]sequence.BaseCounts, c.K)
	for _, mc := range motifs {
		for i := 0; i < len(mc.Motif); i++ {
			positions[i].Add(mc.Motif[i], mc.Count)
		}
	}
	return positions
}

func (c *Counter) String() string {
	return fmt.Sprintf("MotifCounter { k: %d, unique: %d, total: %d }", c.K, c.UniqueCount(), c.total)
}
