package providers

import (
	"net/http"
	"time"
)

// recordingWriter remembers the status code a handler sent so the
// middleware can label the request counter. Handlers that never call
// WriteHeader implicitly answer 200.
type recordingWriter struct {
	http.ResponseWriter
	status int
}

func (w *recordingWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *recordingWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// MetricsMiddleware counts every request and observes its duration,
// labelled by endpoint path and response status.
func MetricsMiddleware(metrics MetricsProviderInterface, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &recordingWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		metrics.IncRequestsTotal(r.URL.Path, rw.status)
		metrics.ObserveRequestDuration(r.URL.Path, time.Since(start))
	})
}
