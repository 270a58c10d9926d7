package middleware

import (
	"net/http"
	"time"
)

// AccessLog пишет строку в лог на каждый запрос
func AccessLog(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := wrap(w)

			next.ServeHTTP(sw, r)

			logger.Info("%s %s - status=%d, bytes=%d, duration=%s, request_id=%s",
				r.Method, r.URL.Path, sw.statusCode(), sw.bytes, time.Since(start), RequestIDFromContext(r.Context()))
		})
	}
}
