package middleware

import (
	"net/http"
	"time"

	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/metrics"
)

// Metrics observes request counts and latencies per method/status.
func Metrics(httpMetrics *metrics.HTTP) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if httpMetrics == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(rec, r)

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			httpMetrics.Observe(r.Method, status, time.Since(start))
		})
	}
}
