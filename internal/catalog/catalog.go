package catalog

import (
	"fmt"
	"slices"
)

// Implementor describes one concrete type implementing the documented trait.
type Implementor struct {
	// Text is the rendered impl signature, including generic parameters and
	// where-clauses. It is opaque formatted text as far as traitdex is
	// concerned.
	Text string `json:"text"`

	// Synthetic marks compiler-synthesized impls (auto-traits) as opposed to
	// impls written out in source.
	Synthetic bool `json:"synthetic"`

	// TypePath is the fully-qualified path of the implementing type, used by
	// the viewer for cross-referencing. It is never empty.
	TypePath []string `json:"types"`
}

// Clone returns a deep copy of the implementor.
func (im Implementor) Clone() Implementor {
	im.TypePath = slices.Clone(im.TypePath)
	return im
}

// Equal reports whether two implementors are field-for-field identical.
func (im Implementor) Equal(other Implementor) bool {
	return im.Text == other.Text &&
		im.Synthetic == other.Synthetic &&
		slices.Equal(im.TypePath, other.TypePath)
}

// Catalog is an insertion-ordered mapping from crate name to implementors.
// Setting an existing key overwrites its entries wholesale (last writer
// wins) without changing the key's position; the payload is regenerated per
// build, so there is never anything to merge.
//
// The zero value is not usable; construct catalogs with New.
type Catalog struct {
	keys    []string
	entries map[string][]Implementor
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{entries: make(map[string][]Implementor)}
}

// Set stores the implementors for a crate, replacing any previous entry.
// A new crate is appended after all existing keys.
func (c *Catalog) Set(crate string, impls []Implementor) {
	if _, exists := c.entries[crate]; !exists {
		c.keys = append(c.keys, crate)
	}
	c.entries[crate] = impls
}

// Get returns the implementors registered under a crate name.
func (c *Catalog) Get(crate string) ([]Implementor, bool) {
	impls, ok := c.entries[crate]
	return impls, ok
}

// Keys returns the crate names in insertion order.
func (c *Catalog) Keys() []string {
	return slices.Clone(c.keys)
}

// Len returns the number of crates in the catalog.
func (c *Catalog) Len() int {
	return len(c.keys)
}

// Validate checks the catalog invariants: every implementor must carry a
// non-empty type path, and crate names must be non-empty.
func (c *Catalog) Validate() error {
	for _, crate := range c.keys {
		if crate == "" {
			return fmt.Errorf("catalog contains an empty crate name")
		}
		for i, im := range c.entries[crate] {
			if len(im.TypePath) == 0 {
				return fmt.Errorf("crate %q: implementor %d (%q) has an empty type path", crate, i, im.Text)
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the catalog.
func (c *Catalog) Clone() *Catalog {
	out := New()
	for _, crate := range c.keys {
		impls := make([]Implementor, 0, len(c.entries[crate]))
		for _, im := range c.entries[crate] {
			impls = append(impls, im.Clone())
		}
		out.Set(crate, impls)
	}
	return out
}

// Equal reports whether two catalogs hold the same crates, in the same
// order, with identical implementor lists.
func (c *Catalog) Equal(other *Catalog) bool {
	if other == nil || !slices.Equal(c.keys, other.keys) {
		return false
	}
	for _, crate := range c.keys {
		if !slices.EqualFunc(c.entries[crate], other.entries[crate], Implementor.Equal) {
			return false
		}
	}
	return true
}
