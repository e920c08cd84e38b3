package viewer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vk/traitdexgo/internal/ctxlog"
)

// Handler returns the viewer's HTTP surface over the given index.
func Handler(ix *Index) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /implementors", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, ix.Snapshot())
	})

	mux.HandleFunc("GET /implementors/{crate}", func(w http.ResponseWriter, r *http.Request) {
		crate := r.PathValue("crate")
		impls, ok := ix.Crate(crate)
		if !ok {
			http.Error(w, fmt.Sprintf("unknown crate %q", crate), http.StatusNotFound)
			return
		}
		writeJSON(w, impls)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Write(data)
}

// Server serves the viewer endpoint on a fixed port.
type Server struct {
	httpServer *http.Server
}

// NewServer creates a viewer server for the index on the given port.
func NewServer(ix *Index, port int) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: Handler(ix),
		},
	}
}

// Start runs the server in a goroutine so it doesn't block.
func (s *Server) Start(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	go func() {
		logger.Info("Viewer endpoint starting", "address", fmt.Sprintf("http://localhost%s/implementors", s.httpServer.Addr))
		// ListenAndServe returns ErrServerClosed on graceful shutdown; only
		// anything else is a real failure.
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Viewer endpoint failed unexpectedly", "error", err)
		}
	}()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	logger.Info("Shutting down viewer endpoint...")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Viewer endpoint shutdown failed", "error", err)
		return err
	}
	return nil
}
