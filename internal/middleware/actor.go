// Package middleware provides HTTP middleware for the Wayfarer API server.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/mheller/wayfarer/internal/domain"
)

// Authentication happens upstream (API gateway); by the time a request
// reaches this service the caller's identity and admin role are resolved
// and forwarded as headers. The engine itself never consults session state.
const (
	ActorIDHeader    = "X-Actor-Id"
	ActorAdminHeader = "X-Actor-Admin"
)

type actorKeyType struct{}

var actorKey actorKeyType

// RequireActor extracts the acting user from the forwarded identity headers
// and stores it in the request context. Requests without a valid actor ID
// are rejected with 401 before reaching any handler.
func RequireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.Header.Get(ActorIDHeader))
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"code": "unauthorized", "message": "missing or invalid actor identity"},
			})
			return
		}

		actor := domain.Actor{
			ID:      id,
			IsAdmin: r.Header.Get(ActorAdminHeader) == "true",
		}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// WithActor returns a context carrying the given actor.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFrom returns the actor stored by RequireActor, if any.
func ActorFrom(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}
