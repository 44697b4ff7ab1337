package motif

import (
	"fmt"

	"github.com/aria-lang/nanook-go/internal/alignment"
	"github.com/aria-lang/nanook-go/internal/sequence"
)

// Motif lengths tracked by a Table.
const (
	MinK = 3
	MaxK = 5
)

// Lengths returns the motif lengths tracked by a Table.
func Lengths() []int {
	ks := make([]int, 0, MaxK-MinK+1)
	for k := MinK; k <= MaxK; k++ {
		ks = append(ks, k)
	}
	return ks
}

// Table holds a Counter for every error class and motif length.
type Table struct {
	counters map[alignment.ErrorClass][]*Counter
}

// NewTable returns an empty table.
func NewTable() *Table {
	t := &Table{counters: make(map[alignment.ErrorClass][]*Counter)}
	for _, class := range alignment.ErrorClasses() {
		for _, k := range Lengths() {
			c, _ := NewCounter(k)
			t.counters[class] = append(t.counters[class], c)
		}
	}
	return t
}

// Record counts the motifs of an error context. For each tracked k for which
// the context is longer than k, the k bases immediately preceding the error
// are counted. Contexts shorter than MinK are ignored.
func (t *Table) Record(class alignment.ErrorClass, context string) {
	if len(context) < MinK {
		return
	}
	counters, ok := t.counters[class]
	if !ok {
		return
	}
	for _, c := range counters {
		if len(context) > c.K {
			c.Add(context[len(context)-c.K:])
		}
	}
}

// Counter returns the counter for class and k.
func (t *Table) Counter(class alignment.ErrorClass, k int) (*Counter, error) {
	counters, ok := t.counters[class]
	if !ok {
		return nil, fmt.Errorf("unknown error class %v", class)
	}
	if k < MinK || k > MaxK {
		return nil, fmt.Errorf("motif length %d outside [%d, %d]", k, MinK, MaxK)
	}
	return counters[k-MinK], nil
}

// Ranked returns the motifs for class and k by descending count.
func (t *Table) Ranked(class alignment.ErrorClass, k int) ([]Count, error) {
	c, err := t.Counter(class, k)
	if err != nil {
		return nil, err
	}
	return c.Ranked(), nil
}

// Percentages returns each motif's share of the total for class and k.
func (t *Table) Percentages(class alignment.ErrorClass, k int) ([]Percentage, error) {
	c, err := t.Counter(class, k)
	if err != nil {
		return nil, err
	}
	return c.Percentages(), nil
}

// Total returns the number of motifs counted for class and k.
func (t *Table) Total(class alignment.ErrorClass, k int) (int, error) {
	c, err := t.Counter(class, k)
	if err != nil {
		return 0, err
	}
	return c.Total(), nil
}

// TopComposition returns the per-position base composition of the n most
// frequent motifs for class and k.
func (t *Table) TopComposition(class alignment.ErrorClass, k, n int) ([]sequence.BaseCounts, error) {
	c, err := t.Counter(class, k)
	if err != nil {
		return nil, err
	}
	return c.TopComposition(n), nil
}

// BottomComposition returns the per-position base composition of the n least
// frequent motifs for class and k.
func (t *Table) BottomComposition(class alignment.ErrorClass, k, n int) ([]sequence.BaseCounts, error) {
	c, err := t.Counter(class, k)
	if err != nil {
		return nil, err
	}
	return c.BottomComposition(n), nil
}
