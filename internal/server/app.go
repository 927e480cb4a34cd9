package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielledeleo/createpage/internal/metrics"
	"github.com/danielledeleo/createpage/special"
	"github.com/danielledeleo/createpage/templater"
	"github.com/danielledeleo/createpage/wiki"
	"github.com/danielledeleo/createpage/wiki/service"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// RequestIDHeader carries the request id between proxies and the service.
const RequestIDHeader = "X-Request-Id"

// App holds all application dependencies and services.
type App struct {
	*templater.Templater
	Pages         service.PageService
	Creation      service.PageCreationRouter
	Editor        service.EditorMode
	SpecialPages  *special.Registry
	Namespaces    *wiki.NamespaceRegistry
	URLs          *wiki.URLBuilder
	Config        *wiki.Config
	RuntimeConfig *wiki.RuntimeConfig
	DB            *sqlx.DB
	Metrics       *metrics.Metrics
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

// SlogLoggingMiddleware logs HTTP requests using slog. Requests without an
// X-Request-Id get a fresh one, echoed in the response.
func SlogLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		slog.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"size", wrapped.size,
			"duration", time.Since(start),
			"remote", r.RemoteAddr,
			"request_id", requestID,
		)
	})
}

// RecoveryLogger adapts slog for gorilla/handlers.RecoveryHandler.
type RecoveryLogger struct{}

// Println implements handlers.RecoveryHandlerLogger.
func (RecoveryLogger) Println(v ...interface{}) {
	slog.Error("panic while serving request", "panic", v)
}
