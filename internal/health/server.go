// Package health implements both sides of the container liveness check:
// the HTTP endpoint the bot process serves and the probe the HEALTHCHECK
// command runs against it.
package health

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// shutdownTimeout bounds how long an exiting process waits for in-flight
// probe requests.
const shutdownTimeout = 5 * time.Second

// Server serves GET /healthz on the configured port. It answers 200 only
// after SetReady(true), which the bot flips once the gateway session is
// up; before that (and after a disconnect) the endpoint answers 503 so
// the orchestrator sees a hung process as unhealthy.
type Server struct {
	port  int
	log   *zap.Logger
	ready atomic.Bool
}

// NewServer builds a health server for the given port.
func NewServer(port int, log *zap.Logger) *Server {
	return &Server{port: port, log: log}
}

// SetReady flips the health state reported by /healthz.
func (s *Server) SetReady(ready bool) {
	s.ready.Store(ready)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("ヘルスチェックサーバを開始しました", zap.Int("port", s.port))
		errc <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errc:
		return err
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !s.ready.Load() {
		http.Error(w, "starting", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}
