package publish

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/traitdexgo/internal/catalog"
	"github.com/vk/traitdexgo/internal/ctxlog"
)

// Options configure the hub connection.
type Options struct {
	// URL of the hub, e.g. "http://localhost:4500/socket.io". The path part
	// is passed through to the socket.io client.
	URL string

	// Namespace to join; defaults to "/".
	Namespace string

	// ConnectTimeout bounds the initial connection; defaults to 10s.
	ConnectTimeout time.Duration

	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool
}

// Publisher emits one "implementors" event per delivered crate. It
// implements registry.Consumer.
type Publisher struct {
	io        *socket.Socket
	connected atomic.Bool
}

// event is the wire shape of one registration.
type event struct {
	Crate        string                `json:"crate"`
	Implementors []catalog.Implementor `json:"implementors"`
}

// Connect dials the hub and waits for the connection to be established.
func Connect(ctx context.Context, opts Options) (*Publisher, error) {
	logger := ctxlog.FromContext(ctx).With("hub", opts.URL)
	logger.Debug("Connecting to preview hub")

	parsedURL, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse hub URL: %w", err)
	}

	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	namespace := opts.Namespace
	if namespace == "" {
		namespace = "/"
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	sockOpts := socket.DefaultOptions()
	sockOpts.SetPath(parsedURL.Path)
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		sockOpts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sockOpts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, sockOpts)
	io := manager.Socket(namespace, sockOpts)

	p := &Publisher{io: io}
	connCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	io.On(types.EventName("connect"), func(...any) {
		p.connected.Store(true)
		logger.Info("Connected to preview hub", "namespace", namespace, "sid", io.Id())
		done <- nil
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				done <- e
				return
			}
		}
		done <- fmt.Errorf("connection to hub refused")
	})

	io.Connect()

	select {
	case <-connCtx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("timed out while connecting to preview hub %s", opts.URL)
	case err := <-done:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("failed to connect to preview hub: %w", err)
		}
		return p, nil
	}
}

// RegisterImplementors emits one "implementors" event per crate in the
// delivered catalog, in catalog order. Emit failures are logged, never
// returned: a flaky preview hub must not fail a documentation build.
func (p *Publisher) RegisterImplementors(ctx context.Context, cat *catalog.Catalog) error {
	logger := ctxlog.FromContext(ctx)
	if !p.connected.Load() {
		logger.Warn("Preview hub not connected, skipping emit", "crates", cat.Len())
		return nil
	}
	for _, crate := range cat.Keys() {
		impls, _ := cat.Get(crate)
		if err := p.io.Emit("implementors", event{Crate: crate, Implementors: impls}); err != nil {
			logger.Warn("Failed to emit implementors to preview hub", "crate", crate, "error", err)
		}
	}
	return nil
}

// Close disconnects from the hub.
func (p *Publisher) Close(ctx context.Context) {
	ctxlog.FromContext(ctx).Debug("Disconnecting from preview hub")
	p.connected.Store(false)
	p.io.Disconnect()
}
