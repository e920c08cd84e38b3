package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/vk/traitdexgo/internal/catalog"
	"github.com/vk/traitdexgo/internal/ctxlog"
)

// Consumer receives delivered catalogs, one call per registration.
// Implementations must not call back into the Bridge from
// RegisterImplementors; delivery holds the bridge lock so that each
// registration is handed over atomically.
type Consumer interface {
	RegisterImplementors(ctx context.Context, cat *catalog.Catalog) error
}

// Module is the interface compiled-in producer modules implement to be
// registered at startup. Generated catalog code satisfies this by building
// its catalog literal and calling Bridge.Register once.
type Module interface {
	Register(ctx context.Context, b *Bridge) error
}

// Bridge is the load-order-independent handoff between catalog producers
// and the viewer. It has two states: unbound (registrations are buffered
// in the pending slot, last writer wins) and bound (registrations are
// delivered synchronously, exactly once each).
type Bridge struct {
	mu       sync.Mutex
	consumer Consumer
	pending  *catalog.Catalog
}

// NewBridge creates an unbound bridge with an empty pending slot.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Bound reports whether a consumer is currently bound.
func (b *Bridge) Bound() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.consumer != nil
}

// Pending returns the catalog currently parked in the pending slot, or nil
// when the slot is empty or has been drained.
func (b *Bridge) Pending() *catalog.Catalog {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending
}

// Bind attaches the consumer and drains the pending slot into it. Only the
// most recent unbound registration is delivered; earlier ones were already
// overwritten. A delivery error is returned to the caller, but the bridge
// stays bound and the slot stays drained: the handoff is at-most-once.
func (b *Bridge) Bind(ctx context.Context, c Consumer) error {
	if c == nil {
		return fmt.Errorf("registry: cannot bind a nil consumer")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.consumer = c
	if b.pending == nil {
		ctxlog.FromContext(ctx).Debug("Consumer bound, pending slot empty.")
		return nil
	}

	parked := b.pending
	b.pending = nil
	ctxlog.FromContext(ctx).Debug("Consumer bound, draining pending slot.", "crates", parked.Len())
	return b.deliver(ctx, parked)
}

// Register hands one catalog across the bridge. With a consumer bound the
// catalog is delivered synchronously and exactly once; without one it is
// stored in the pending slot, overwriting whatever was there. Each call is
// independent: the bridge never merges catalogs from separate calls.
func (b *Bridge) Register(ctx context.Context, cat *catalog.Catalog) error {
	if cat == nil {
		return fmt.Errorf("registry: cannot register a nil catalog")
	}
	if err := cat.Validate(); err != nil {
		return fmt.Errorf("registry: refusing malformed catalog: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.consumer == nil {
		b.pending = cat
		ctxlog.FromContext(ctx).Debug("No consumer bound, catalog parked in pending slot.", "crates", cat.Len())
		return nil
	}
	return b.deliver(ctx, cat)
}

// deliver pushes a catalog into the bound consumer. Callers must hold b.mu.
func (b *Bridge) deliver(ctx context.Context, cat *catalog.Catalog) error {
	if err := b.consumer.RegisterImplementors(ctx, cat); err != nil {
		return fmt.Errorf("failed to deliver catalog: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Catalog delivered.", "crates", cat.Len())
	return nil
}

// Fanout returns a consumer that delivers each registration to every given
// consumer in order, stopping at the first error.
func Fanout(consumers ...Consumer) Consumer {
	return fanout(consumers)
}

type fanout []Consumer

func (f fanout) RegisterImplementors(ctx context.Context, cat *catalog.Catalog) error {
	for _, c := range f {
		if err := c.RegisterImplementors(ctx, cat); err != nil {
			return err
		}
	}
	return nil
}
