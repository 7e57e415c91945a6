package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Server is the keep-alive HTTP endpoint for hosting platforms that
// expect a bound port. It also exposes health and metrics.
type Server struct {
	srv *http.Server
}

// New builds the server on addr. metricsHandler may be nil.
func New(addr string, metricsHandler http.Handler) *Server {
	return &Server{srv: &http.Server{
		Addr:              addr,
		Handler:           NewMux(metricsHandler),
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

// NewMux returns the routes served by Server.
func NewMux(metricsHandler http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, "PipSignal bot is running")
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":"ok"}`)
	})
	if metricsHandler != nil {
		mux.Handle("/metrics", metricsHandler)
	}
	return mux
}

// Start serves in the background until Shutdown is called.
func (s *Server) Start() {
	go func() {
		zap.L().Info("http server listening", zap.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Error("http server failed", zap.Error(err))
		}
	}()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
