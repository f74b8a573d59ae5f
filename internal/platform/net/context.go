// Package net carries per request values (request id, authenticated actor)
// through contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type actorKey struct{}

// WithRequest stores reqID where chi's RequestID middleware keeps it, so
// RequestID reads both the same way
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// RequestID is the request id on ctx, or ""
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// WithActor stores the authenticated caller
func WithActor(ctx context.Context, actor string) context.Context {
	if actor == "" {
		return ctx
	}
	return context.WithValue(ctx, actorKey{}, actor)
}

// Actor is the authenticated caller on ctx, or ""
func Actor(ctx context.Context) string {
	s, _ := ctx.Value(actorKey{}).(string)
	return s
}
