package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/JackpotEngine_Go/internal/handler"
	"github.com/osse101/JackpotEngine_Go/internal/identity"
	"github.com/osse101/JackpotEngine_Go/internal/logger"
	"github.com/osse101/JackpotEngine_Go/internal/metrics"
	"github.com/osse101/JackpotEngine_Go/internal/round"
	"github.com/osse101/JackpotEngine_Go/internal/sse"
)

// Options carries the HTTP surface settings
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	MaxBodyBytes   int64
	// RateLimit is requests per client per RateLimitWindow; negative disables limiting
	RateLimit int
}

type Server struct {
	httpServer *http.Server
	service    round.Service
}

// NewServer creates a new Server instance
func NewServer(opts Options, service round.Service, resolver identity.Resolver, hub *sse.Hub, checks map[string]handler.HealthChecker) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, service, resolver, hub, checks),
			ReadHeaderTimeout: 5 * time.Second,
		},
		service: service,
	}
}

// NewRouter builds the route tree. Only admin routes require the API key; players
// authenticate per request with their bearer credential.
func NewRouter(opts Options, service round.Service, resolver identity.Resolver, hub *sse.Hub, checks map[string]handler.HealthChecker) http.Handler {
	r := chi.NewRouter()

	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	proxies := ParseProxies(opts.TrustedProxies)
	limit := opts.RateLimit
	if limit == 0 {
		limit = RateLimitMaxRequests
	}
	guard := NewGuard(limit, RateLimitWindow)

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(SecurityHeadersMiddleware())
	r.Use(RateLimitMiddleware(proxies, guard))
	r.Use(RequestSizeLimitMiddleware(maxBody))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(service, checks))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	jackpotHandler := handler.NewJackpotHandler(service, resolver)
	adminHandler := handler.NewAdminHandler(service)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/jackpot", func(r chi.Router) {
			r.Get("/status", jackpotHandler.HandleStatus)
			r.Post("/join", jackpotHandler.HandleJoin)
			r.Get("/history", jackpotHandler.HandleHistory)
			r.Get("/history/{roundHash}", jackpotHandler.HandleHistoryEntry)
			r.Get("/history/{roundHash}/verify", jackpotHandler.HandleVerifyRound)
			r.Post("/verify", jackpotHandler.HandleVerify)
			r.Get("/events", sse.Handler(hub, service))
		})

		// Admin routes
		r.Route("/admin/jackpot", func(r chi.Router) {
			r.Use(AuthMiddleware(opts.APIKey, proxies, guard))
			r.Post("/lock", adminHandler.HandleForceLock)
			r.Post("/resume", adminHandler.HandleResume)
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush forwards to the wrapped writer so the event stream is not buffered
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func isQuietPath(path string) bool {
	for _, prefix := range QuietPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func isSecretHeader(name string) bool {
	return strings.EqualFold(name, HeaderAPIKey) ||
		strings.EqualFold(name, HeaderAuthorization) ||
		strings.EqualFold(name, HeaderCookie)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if isSecretHeader(k) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
