// Package api exposes the verification service over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/LegendarySumit/TruthShield/internal/service"
)

const shutdownTimeout = 10 * time.Second

// Options tunes the HTTP surface. Zero values disable rate limiting.
type Options struct {
	// RateLimit is sustained requests per second; RateBurst the burst
	// allowance above it.
	RateLimit float64
	RateBurst int
}

// Server routes verification requests to the service layer.
type Server struct {
	svc     *service.Service
	router  *mux.Router
	limiter *rate.Limiter
}

// NewServer builds the router with all middleware attached.
func NewServer(svc *service.Service, opts Options) *Server {
	s := &Server{svc: svc}
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	r := mux.NewRouter()
	r.Use(requestIDMiddleware, loggingMiddleware, corsMiddleware, s.rateLimitMiddleware)

	r.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/verify", s.handleVerify).Methods(http.MethodPost, http.MethodOptions)

	s.router = r
	return s
}

// Handler returns the root handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[INFO] api: listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Printf("[INFO] api: shutting down")
	return srv.Shutdown(shutdownCtx)
}

type verifyRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "API is running"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":             "ok",
		"ai_configured":      s.svc.RemoteConfigured(),
		"local_model_loaded": s.svc.LocalLoaded(),
		"normalizer_version": s.svc.NormalizerVersion(),
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "request body must be JSON with a text field")
		return
	}

	verdict, err := s.svc.Verify(r.Context(), req.Text)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, verdict)
	case errors.Is(err, service.ErrEmptyText):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnavailable):
		respondError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// Client went away; status is best-effort.
		respondError(w, http.StatusRequestTimeout, "request cancelled")
	default:
		log.Printf("[ERROR] api: verify failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[ERROR] api: encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}
