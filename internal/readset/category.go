// Package readset aggregates alignment statistics over all reads of one
// read category.
package readset

import "fmt"

// Category is the kind of basecalled read an alignment file holds.
type Category int

const (
	Template Category = iota
	Complement
	TwoD
)

var categoryNames = [...]string{
	Template:   "Template",
	Complement: "Complement",
	TwoD:       "2D",
}

// Categories returns every read category in processing order.
func Categories() []Category {
	return []Category{Template, Complement, TwoD}
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory returns the category named s.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown read category %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= len(categoryNames) {
		return nil, fmt.Errorf("unknown read category %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
