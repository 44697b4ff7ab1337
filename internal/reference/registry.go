package reference

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Registry maps reference ids to their accumulators. It is loaded once from
// a sizes table and shared by every read-category pass.
type Registry struct {
	refs      map[string]*Accumulator
	longestID int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{refs: make(map[string]*Accumulator)}
}

// Add registers a reference. Registering the same id twice is an error.
func (r *Registry) Add(id string, size int, name string) (*Accumulator, error) {
	if id == "" {
		return nil, fmt.Errorf("empty reference id")
	}
	if size < 0 {
		return nil, fmt.Errorf("reference %s: negative size %d", id, size)
	}
	if _, ok := r.refs[id]; ok {
		return nil, fmt.Errorf("duplicate reference id %q", id)
	}
	a := NewAccumulator(id, size, name)
	r.refs[id] = a
	if len(id) > r.longestID {
		r.longestID = len(id)
	}
	return a, nil
}

// Get returns the accumulator for id.
func (r *Registry) Get(id string) (*Accumulator, error) {
	a, ok := r.refs[id]
	if !ok {
		return nil, &UnknownReferenceError{ID: id}
	}
	return a, nil
}

// Len returns the number of references.
func (r *Registry) Len() int {
	return len(r.refs)
}

// LongestID returns the length of the longest reference id.
func (r *Registry) LongestID() int {
	return r.longestID
}

// IDs returns the reference ids in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.refs))
	for id := range r.refs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Each calls fn for every reference in id order, stopping at the first error.
func (r *Registry) Each(fn func(*Accumulator) error) error {
	for _, id := range r.IDs() {
		if err := fn(r.refs[id]); err != nil {
			return err
		}
	}
	return nil
}

// Names returns the display name of every reference, keyed by id.
func (r *Registry) Names() map[string]string {
	names := make(map[string]string, len(r.refs))
	for id, a := range r.refs {
		names[id] = a.Name
	}
	return names
}

// ResetAll resets every accumulator.
func (r *Registry) ResetAll() {
	for _, a := range r.refs {
		a.Reset()
	}
}

// LoadSizes reads a sizes table: one reference per line, tab-separated id,
// size and display name. The name defaults to the id. Blank lines and lines
// starting with '#' are skipped.
func LoadSizes(rd io.Reader) (*Registry, error) {
	r := NewRegistry()
	sc := bufio.NewScanner(rd)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("sizes line %d: want id, size and name, got %d fields", lineNum, len(fields))
		}
		id := strings.TrimSpace(fields[0])
		size, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, fmt.Errorf("sizes line %d: bad size %q: %w", lineNum, fields[1], err)
		}
		name := id
		if len(fields) > 2 && strings.TrimSpace(fields[2]) != "" {
			name = strings.TrimSpace(fields[2])
		}

		if _, err := r.Add(id, size, name); err != nil {
			return nil, fmt.Errorf("sizes line %d: %w", lineNum, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading sizes: %w", err)
	}
	return r, nil
}

// LoadSizesFile opens path and loads it with LoadSizes.
func LoadSizesFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := LoadSizes(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// SizesCandidates returns the sizes file names tried for a reference prefix,
// in order.
func SizesCandidates(prefix string) []string {
	return []string{
		prefix + ".sizes",
		prefix + ".fasta.sizes",
		prefix + ".fa.sizes",
	}
}

// FindSizesFile returns the first existing sizes file for prefix.
func FindSizesFile(prefix string) (string, error) {
	tried := SizesCandidates(prefix)
	for _, path := range tried {
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			return path, nil
		}
	}
	return "", &MissingSizesFileError{Prefix: prefix, Tried: tried}
}
