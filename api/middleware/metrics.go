package middleware

import (
	"net/http"
	"time"
)

type httpObserver interface {
	Observe(route, method string, status int, duration time.Duration)
}

// Metrics records one observation per request keyed by the chi route
// pattern, so path parameters do not explode label cardinality.
func Metrics(obs httpObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if obs == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()
			next.ServeHTTP(rec, r)

			route := routePattern(r)
			if route == "" {
				route = "unmatched"
			}
			obs.Observe(route, r.Method, rec.Status(), time.Since(start))
		})
	}
}
