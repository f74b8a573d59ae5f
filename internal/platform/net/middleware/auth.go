package middleware

import (
	"net/http"

	pnet "deploytrack/internal/platform/net"
)

// AuthPort resolves who is calling
type AuthPort interface {
	Parse(r *http.Request) (actor string, err error)
}

// Auth rejects requests p cannot resolve, writing the mapped error with write.
// Accepted requests carry the actor on their context. A nil port lets everything through
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) Middleware {
	return func(next http.Handler) http.Handler {
		if p == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithActor(r.Context(), actor)))
		})
	}
}
