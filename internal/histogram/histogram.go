// Package histogram provides bounded integer histograms.
//
// A Histogram counts occurrences of small non-negative integers such as run
// lengths, indel sizes and read lengths. Storage grows with the largest value
// seen, but every histogram has a fixed limit: values at or above it are
// rejected with a *CapacityExceededError instead of being counted.
package histogram

import "fmt"

// CapacityExceededError is returned when a value falls outside the range
// a histogram accepts.
type CapacityExceededError struct {
	Name  string
	Value int
	Limit int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s %d outside supported range [0, %d)", e.Name, e.Value, e.Limit)
}

// Histogram counts values in [0, Limit).
type Histogram struct {
	name   string
	limit  int
	counts []int
}

// New returns an empty histogram accepting values in [0, limit). The name
// identifies the histogram in errors.
func New(name string, limit int) *Histogram {
	return &Histogram{name: name, limit: limit}
}

// Name returns the name given to New.
func (h *Histogram) Name() string {
	return h.name
}

// Limit returns the exclusive upper bound on accepted values.
func (h *Histogram) Limit() int {
	return h.limit
}

func (h *Histogram) check(v int) error {
	if v < 0 || v >= h.limit {
		return &CapacityExceededError{Name: h.name, Value: v, Limit: h.limit}
	}
	return nil
}

func (h *Histogram) grow(v int) {
	if v < len(h.counts) {
		return
	}
	n := 2 * len(h.counts)
	if n <= v {
		n = v + 1
	}
	if n > h.limit {
		n = h.limit
	}
	counts := make([]int, n)
	copy(counts, h.counts)
	h.counts = counts
}

// Add counts one occurrence of v.
func (h *Histogram) Add(v int) error {
	return h.AddN(v, 1)
}

// AddN counts n occurrences of v.
func (h *Histogram) AddN(v, n int) error {
	if err := h.check(v); err != nil {
		return err
	}
	h.grow(v)
	h.counts[v] += n
	return nil
}

// AddUpTo counts one occurrence of every value in [0, v]. Used to build
// "at least v" cumulative histograms during ingestion.
func (h *Histogram) AddUpTo(v int) error {
	if err := h.check(v); err != nil {
		return err
	}
	h.grow(v)
	for i := 0; i <= v; i++ {
		h.counts[i]++
	}
	return nil
}

// Count returns the number of occurrences of v.
func (h *Histogram) Count(v int) int {
	if v < 0 || v >= len(h.counts) {
		return 0
	}
	return h.counts[v]
}

// Max returns the largest value with a non-zero count, or -1 if the
// histogram is empty.
func (h *Histogram) Max() int {
	for i := len(h.counts) - 1; i >= 0; i-- {
		if h.counts[i] > 0 {
			return i
		}
	}
	return -1
}

// Total returns the sum of all counts.
func (h *Histogram) Total() int {
	total := 0
	for _, c := range h.counts {
		total += c
	}
	return total
}

// Counts returns a copy of the counts indexed by value, up to the largest
// value seen.
func (h *Histogram) Counts() []int {
	out := make([]int, h.Max()+1)
	copy(out, h.counts)
	return out
}

// Reset clears all counts.
func (h *Histogram) Reset() {
	h.counts = h.counts[:0]
}
