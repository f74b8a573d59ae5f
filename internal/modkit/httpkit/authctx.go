package httpkit

import (
	"net/http"

	perrs "deploytrack/internal/platform/errors"
	pnet "deploytrack/internal/platform/net"
)

// anonymous is reported as the actor when the API runs without a token
const anonymous = "anonymous"

// Actor returns who made the request. Routes outside Protected, or a server
// started without CORE_API_TOKEN, act as "anonymous"
func Actor(r *http.Request) string {
	if a := pnet.Actor(r.Context()); a != "" {
		return a
	}
	return anonymous
}

// RequireActor fails with unauthorized when the auth middleware set no actor
func RequireActor(r *http.Request) (string, error) {
	if a := pnet.Actor(r.Context()); a != "" {
		return a, nil
	}
	return "", perrs.Unauthorizedf("missing bearer token")
}
