// Package corelib is the compiled-in producer for the core library facade.
// It is the hand-written twin of the generated per-crate catalog code: the
// catalog is a fixed literal, construction is pure, and registration is a
// single Register call at startup.
package corelib

import (
	"context"

	"github.com/vk/traitdexgo/internal/catalog"
	"github.com/vk/traitdexgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register hands the core library catalog across the bridge.
func (m *Module) Register(ctx context.Context, b *registry.Bridge) error {
	return b.Register(ctx, buildCatalog())
}

// buildCatalog constructs the embedded catalog. No I/O, no failure modes;
// the literal is well-formed by construction.
func buildCatalog() *catalog.Catalog {
	cat := catalog.New()
	cat.Set("corelib", []catalog.Implementor{
		{
			Text:     "impl<T> Iterator for Range<T>",
			TypePath: []string{"corelib", "iter", "Range"},
		},
		{
			Text:     "impl<'a, T> Iterator for SliceIter<'a, T>",
			TypePath: []string{"corelib", "slice", "SliceIter"},
		},
		{
			Text:      "impl<I> Iterator for Fuse<I> where I: Iterator",
			Synthetic: true,
			TypePath:  []string{"corelib", "iter", "adapters", "Fuse"},
		},
	})
	return cat
}
