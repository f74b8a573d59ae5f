package middleware

import (
	"net/http"
	"time"

	"deploytrack/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// AccessLogOptions tunes AccessLogZerolog
type AccessLogOptions struct {
	// Slow logs requests at or above this duration as warnings; 0 never does
	Slow time.Duration
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	n, err := s.ResponseWriter.Write(b)
	s.size += n
	return n, err
}

// AccessLogZerolog writes one line per request, tagged with the matched route pattern
func AccessLogZerolog(o AccessLogOptions) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			began := time.Now()
			next.ServeHTTP(rec, r)
			took := time.Since(began)

			log := logger.C(r.Context())
			ev := log.Info()
			if o.Slow > 0 && took >= o.Slow {
				ev = log.Warn().Bool("slow", true)
			}
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				ev = ev.Str("route", rc.RoutePattern())
			}
			ev.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.status).
				Int("bytes", rec.size).
				Dur("elapsed", took).
				Msg("request")
		})
	}
}
