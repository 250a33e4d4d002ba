package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// requestLogger tags each request with an ID and logs its outcome.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		start := time.Now()

		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(ww, r)

		log.Debug("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.status,
			"duration", time.Since(start),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// requireAPIKey rejects requests whose X-API-Key header does not match the
// configured server key. An empty configured key disables the check.
func (h *Handler) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.cfg.ServerKey != "" && r.Header.Get("X-API-Key") != h.cfg.ServerKey {
			writeError(w, http.StatusUnauthorized, errInvalidAPIKey)
			return
		}
		next.ServeHTTP(w, r)
	})
}
