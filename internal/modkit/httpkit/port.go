package httpkit

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perrs "deploytrack/internal/platform/errors"
)

// Bearer returns the raw token from an Authorization: Bearer header
func Bearer(r *http.Request) (string, error) {
	s := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "bearer "
	if len(s) <= len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	raw := strings.TrimSpace(s[len(prefix):])
	if raw == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return raw, nil
}

// TokenPort implements middleware.AuthPort against one shared API token
type TokenPort struct {
	token []byte
	actor string
}

// NewTokenPort returns nil when token is blank so callers can pass the result
// straight to Protected and get an open API
func NewTokenPort(token, actor string) *TokenPort {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	if actor == "" {
		actor = "api-token"
	}
	return &TokenPort{token: []byte(token), actor: actor}
}

// Parse checks the bearer token and names the caller
func (p *TokenPort) Parse(r *http.Request) (string, error) {
	raw, err := Bearer(r)
	if err != nil {
		return "", err
	}
	if subtle.ConstantTimeCompare([]byte(raw), p.token) != 1 {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	return p.actor, nil
}
