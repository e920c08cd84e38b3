package viewer

import (
	"context"
	"slices"
	"sync"

	"github.com/vk/traitdexgo/internal/catalog"
	"github.com/vk/traitdexgo/internal/ctxlog"
)

// Index is the viewer's merged implementor store. It implements
// registry.Consumer: each delivered catalog is applied key by key, and a
// re-delivered crate replaces its previous entry wholesale while keeping
// its position, mirroring the catalog's own last-writer-wins rule. It is
// safe for concurrent use.
type Index struct {
	mu     sync.RWMutex
	keys   []string
	crates map[string][]catalog.Implementor
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{crates: make(map[string][]catalog.Implementor)}
}

// RegisterImplementors merges one delivered catalog into the index. The
// index keeps its own copy; the producer's catalog is never retained.
func (ix *Index) RegisterImplementors(ctx context.Context, cat *catalog.Catalog) error {
	ix.mu.Lock()
	for _, crate := range cat.Keys() {
		impls, _ := cat.Get(crate)
		copied := make([]catalog.Implementor, 0, len(impls))
		for _, im := range impls {
			copied = append(copied, im.Clone())
		}
		if _, exists := ix.crates[crate]; !exists {
			ix.keys = append(ix.keys, crate)
		}
		ix.crates[crate] = copied
	}
	ix.mu.Unlock()

	ctxlog.FromContext(ctx).Debug("Index updated.", "crates", cat.Len())
	return nil
}

// Crate returns the implementors stored for one crate.
func (ix *Index) Crate(name string) ([]catalog.Implementor, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	impls, ok := ix.crates[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(impls), true
}

// Crates returns the crate names in registration order.
func (ix *Index) Crates() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return slices.Clone(ix.keys)
}

// Snapshot returns the whole index as a catalog copy.
func (ix *Index) Snapshot() *catalog.Catalog {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	cat := catalog.New()
	for _, crate := range ix.keys {
		impls := make([]catalog.Implementor, 0, len(ix.crates[crate]))
		for _, im := range ix.crates[crate] {
			impls = append(impls, im.Clone())
		}
		cat.Set(crate, impls)
	}
	return cat
}
