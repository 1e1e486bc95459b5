package middlewares

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/sport-together/internal/logger"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLen bounds a caller supplied request id.
const maxRequestIDLen = 64

type requestIDKey struct{}

// RequestIDFromContext returns the id LoggingMiddleware assigned to the request.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// LoggingMiddleware tags every request with an id, reusing a caller supplied
// X-Request-ID when present, and stores a logger carrying it in the request
// context for handlers and services. One entry is written per request, at
// warn level for 4xx and error level for 5xx responses. Query strings are
// not logged.
func LoggingMiddleware(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(RequestIDHeader)
			if reqID == "" || len(reqID) > maxRequestIDLen {
				reqID = uuid.New().String()
			}

			start := time.Now()
			rw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			reqLog := log.With("request_id", reqID)
			ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
			ctx = logger.WithContext(ctx, reqLog)
			w.Header().Set(RequestIDHeader, reqID)

			next.ServeHTTP(rw, r.WithContext(ctx))

			fields := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.statusCode,
				"bytes", rw.size,
				"duration", time.Since(start),
			}
			switch {
			case rw.statusCode >= http.StatusInternalServerError:
				reqLog.Errorw("request", fields...)
			case rw.statusCode >= http.StatusBadRequest:
				reqLog.Warnw("request", fields...)
			default:
				reqLog.Infow("request", fields...)
			}
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}
