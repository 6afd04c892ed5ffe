package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"motiond/pkg/types"
)

// Service defines the methods the HTTP layer needs from the runtime.
type Service interface {
	Generate(ctx context.Context, req types.MotionRequest) (*types.MotionResponse, error)
	Status() types.StatusResponse
}

// NewMux assembles the router: middleware stack, API routes, Prometheus
// metrics and the optional swagger mount.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	r.Use(MetricsMiddleware)

	h := &handlers{svc: svc}
	r.Get("/health", h.health)
	r.Get("/status", h.status)
	r.Post("/v1/motion", h.generate)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	MountSwagger(r)
	return r
}

type handlers struct {
	svc Service
}

// health godoc
// @Summary Liveness probe
// @Description Always answers ok while the process is alive.
// @Tags health
// @Produce json
// @Success 200 {object} types.HealthResponse
// @Router /health [get]
func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.HealthResponse{Status: "ok"})
}

// status godoc
// @Summary Runtime status
// @Description Reports serving state, component residency and scheduler counters.
// @Tags status
// @Produce json
// @Success 200 {object} types.StatusResponse
// @Router /status [get]
func (h *handlers) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Status())
}

// generate godoc
// @Summary Generate motion from text
// @Description Runs the text-to-motion pipeline and returns the motion tracks together with the effective request parameters.
// @Tags motion
// @Accept json
// @Produce json
// @Param request body types.MotionRequest true "generation request"
// @Success 200 {object} types.MotionResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 415 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Failure 503 {object} types.ErrorResponse
// @Failure 504 {object} types.ErrorResponse
// @Router /v1/motion [post]
func (h *handlers) generate(w http.ResponseWriter, r *http.Request) {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}
	// Limit body size (configurable, default 1MiB)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req types.MotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Oversized bodies surface here too; 400 either way.
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	start := time.Now()
	// Join the server base context so shutdown cancels in-flight work too.
	ctx, cancel := joinContexts(serverBaseCtx, r.Context())
	defer cancel()

	resp, err := h.svc.Generate(ctx, req)
	if err != nil {
		if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
			// Client went away or the server is shutting down.
			return
		}
		status, msg := statusForError(err)
		if status == http.StatusServiceUnavailable {
			IncrementBackpressure(backpressureReason(err))
		}
		writeJSONError(w, status, msg)
		logRequest(r, status, time.Since(start), err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
	logRequest(r, http.StatusOK, time.Since(start), nil)
}

// writeJSON writes v as a JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
