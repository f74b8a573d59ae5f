package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"deploytrack/internal/platform/config"
	phttp "deploytrack/internal/platform/net/http"
	"deploytrack/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	CORSOrigins []string
	Timeout     time.Duration
	SlowRequest time.Duration
}

// StackFromConfig reads CORS_ORIGINS, TIMEOUT and SLOW_MS from a prefixed view (CORE_API_)
func StackFromConfig(cfg config.Conf) StackOptions {
	return StackOptions{
		CORSOrigins: cfg.MayCSV("CORS_ORIGINS", []string{"*"}),
		Timeout:     cfg.MayDuration("TIMEOUT", 90*time.Second),
		SlowRequest: time.Duration(cfg.MayInt("SLOW_MS", 1500)) * time.Millisecond,
	}
}

// CommonStack returns the baseline middleware for the versioned API.
// Timeout is longer than the outbound client timeouts so proxied calls can finish
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 90 * time.Second
	}
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// observability wraps recovery so panics still get an access line
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowRequest}),
		middleware.RecoverJSON,

		middleware.NoCache(),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
}

// Auth wires the auth middleware to the platform JSON writer
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}
