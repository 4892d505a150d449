package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-microblog/internal/logger"
	"github.com/go-chi/chi/v5/middleware"
)

// withLogging writes one access log entry per request. Request bodies are
// never logged since they carry passwords and tokens.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		uri := r.URL.Path
		method := r.Method

		lw := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(lw, r)

		status := lw.Status()
		if status == 0 {
			status = http.StatusOK
		}

		log := logger.FromRequest(r)
		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		}

		event.
			Str("uri", uri).
			Str("method", method).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Int("size", lw.BytesWritten()).
			Send()
	})
}
