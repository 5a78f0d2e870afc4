package middleware

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/greysolve/outreach-console/services"
)

// Context key type to avoid collisions
type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"

	// ClaimsKey is the context key for validated token claims
	ClaimsKey contextKey = "claims"

	// ActorKey is the context key for the operator a request runs as
	ActorKey contextKey = "actor"
)

// GetRequestIDFromContext retrieves the request ID from context, falling back
// to the ID assigned by chi's RequestID middleware
func GetRequestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		return requestID
	}
	return chimw.GetReqID(ctx)
}

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetClaimsFromContext retrieves token claims from context
func GetClaimsFromContext(ctx context.Context) *Claims {
	if claims, ok := ctx.Value(ClaimsKey).(*Claims); ok {
		return claims
	}
	return nil
}

// WithClaims adds token claims to the context
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

// GetActorFromContext returns the operator stored by the auth middleware.
// The zero Actor is returned when none was stored.
func GetActorFromContext(ctx context.Context) services.Actor {
	if actor, ok := ctx.Value(ActorKey).(services.Actor); ok {
		return actor
	}
	return services.Actor{RequestID: GetRequestIDFromContext(ctx)}
}

// WithActor adds the operator to the context
func WithActor(ctx context.Context, actor services.Actor) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}
