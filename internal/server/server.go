// Package server exposes gofunc tools over HTTP for agent frameworks.
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
// Metrics endpoint:   GET  /metrics
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	gofunc "github.com/njchilds90/gofunc"
)

// Server serves tool calls against one factory.
type Server struct {
	cfg     Config
	factory *gofunc.Factory
	metrics *Metrics
	handler http.Handler
}

// New builds a Server whose collectors are registered with reg and served
// from gatherer.
func New(cfg Config, factory *gofunc.Factory, reg prometheus.Registerer, gatherer prometheus.Gatherer) *Server {
	s := &Server{cfg: cfg, factory: factory, metrics: NewMetrics(reg)}

	mux := http.NewServeMux()
	mux.HandleFunc("/tool", s.handleTool)
	mux.HandleFunc("/schema", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, gofunc.ToolSpec())
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	s.handler = mux
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler { return s.handler }

// handleTool decodes one ToolRequest and runs it.
func (s *Server) handleTool(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Errorf("panic in /tool: %v\n%s", rec, string(debug.Stack()))
			s.metrics.reject("panic")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}()

	if r.Method != http.MethodPost {
		s.metrics.reject("method")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req gofunc.ToolRequest
	if err := dec.Decode(&req); err != nil {
		s.metrics.reject("decode")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	// Ensure there's no trailing junk.
	if dec.More() {
		s.metrics.reject("trailing")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: trailing data"})
		return
	}

	start := time.Now()
	resp := s.factory.HandleToolCall(req)
	elapsed := time.Since(start)
	s.metrics.observe(req.Tool, elapsed.Seconds(), resp.Error != "")

	entry := log.WithFields(log.Fields{"tool": req.Tool, "elapsed": elapsed})
	if resp.Error != "" {
		entry.WithField("error", resp.Error).Info("tool call failed")
	} else {
		entry.Debug("tool call")
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("encoding response: %v", err)
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	log.Infof("funcd listening on %s", srv.Addr)
	log.Infof("  POST /tool     execute a tool call")
	log.Infof("  GET  /schema   tool schema for agent registration")
	log.Infof("  GET  /health   health check")
	log.Infof("  GET  /metrics  Prometheus metrics")

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
