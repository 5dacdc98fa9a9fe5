package middleware

import (
	"context"
	"net/http"

	"voltslot/pkg/errors"
	apphttp "voltslot/pkg/http"
	"voltslot/pkg/model"
)

const (
	ActorIDHeader   = "X-Actor-ID"
	ActorRoleHeader = "X-Actor-Role"

	ActorKey contextKey = "actor"
)

// Identity resolves the calling actor from request headers and stores it
// in the request context. Handlers downstream decide what the actor may
// do; this layer only establishes who they are.
func Identity(optionalPaths ...string) func(http.Handler) http.Handler {
	optional := make(map[string]struct{}, len(optionalPaths))
	for _, p := range optionalPaths {
		optional[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(ActorIDHeader)
			roleRaw := r.Header.Get(ActorRoleHeader)

			if id == "" || roleRaw == "" {
				if _, ok := optional[r.URL.Path]; ok {
					next.ServeHTTP(w, r)
					return
				}
				_ = apphttp.WriteError(w, errors.Unauthorized("missing actor identity headers"))
				return
			}

			role, ok := model.ParseRole(roleRaw)
			if !ok {
				_ = apphttp.WriteError(w, errors.Unauthorized("unknown actor role"))
				return
			}

			actor := model.Actor{ID: id, Role: role}
			ctx := context.WithValue(r.Context(), ActorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorFromContext returns the actor placed by Identity. The boolean is
// false on paths where identity was optional and no headers were sent.
func ActorFromContext(ctx context.Context) (model.Actor, bool) {
	actor, ok := ctx.Value(ActorKey).(model.Actor)
	return actor, ok
}
