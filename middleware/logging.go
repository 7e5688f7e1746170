package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ctxKeyLog struct{}

type responseRecorder struct {
	b      int
	status int
	w      http.ResponseWriter
}

func (r *responseRecorder) Header() http.Header { return r.w.Header() }

func (r *responseRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.w.Write(p)
	r.b += n
	return n, err
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.status = statusCode
	r.w.WriteHeader(statusCode)
}

// LoggingMiddleware пишет access log и кладёт логгер запроса в контекст.
func LoggingMiddleware(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.NewString()
			start := time.Now()
			rr := &responseRecorder{w: w}

			entry := log.WithFields(logrus.Fields{
				"http.req.path":   r.URL.Path,
				"http.req.method": r.Method,
				"http.req.id":     requestID,
				"http.req.remote": r.RemoteAddr,
			})
			defer func() {
				entry.WithFields(logrus.Fields{
					"http.resp.took_ms": int64(time.Since(start) / time.Millisecond),
					"http.resp.status":  rr.status,
					"http.resp.bytes":   rr.b,
				}).Info("request complete")
			}()

			w.Header().Set("X-Request-ID", requestID)
			ctx := context.WithValue(r.Context(), ctxKeyLog{}, entry)
			next.ServeHTTP(rr, r.WithContext(ctx))
		})
	}
}

// LoggerFrom возвращает логгер запроса или стандартный logrus.
func LoggerFrom(ctx context.Context) logrus.FieldLogger {
	if entry, ok := ctx.Value(ctxKeyLog{}).(logrus.FieldLogger); ok {
		return entry
	}
	return logrus.StandardLogger()
}
