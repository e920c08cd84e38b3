package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vk/traitdexgo/internal/ctxlog"
)

// healthcheckServer is the minimal liveness endpoint.
type healthcheckServer struct {
	httpServer *http.Server
}

func newHealthcheckServer(port int) *healthcheckServer {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "OK")
	})

	return &healthcheckServer{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		},
	}
}

// Start runs the server in a goroutine so it doesn't block.
func (s *healthcheckServer) Start(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	go func() {
		logger.Info("Health check server starting", "address", fmt.Sprintf("http://localhost%s/health", s.httpServer.Addr))
		// ListenAndServe returns an error on graceful shutdown; check for it
		// to avoid logging a false positive.
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Health check server failed unexpectedly", "error", err)
		}
	}()
}

// Shutdown stops the server gracefully.
func (s *healthcheckServer) Shutdown(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	logger.Info("Shutting down health check server...")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Health check server shutdown failed", "error", err)
		return err
	}
	return nil
}
