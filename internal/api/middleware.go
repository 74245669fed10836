package api

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"fembalance/pkg/logger"
)

// rateLimit applies a global token-bucket limit across all prediction
// endpoints. Inference is CPU-bound; the bucket protects latency, not
// fairness between clients
func rateLimit(limiter *rate.Limiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			respondError(w, http.StatusTooManyRequests, "Rate limit exceeded", "too many requests, slow down", nil)
			return
		}
		next(w, r)
	}
}

// requireMethod rejects requests with the wrong HTTP method
func requireMethod(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed", method+" required", nil)
			return
		}
		next(w, r)
	}
}

// logRequests logs each request with its duration
func logRequests(log *logger.Logger, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		log.Debugw("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	}
}
