package middleware

import (
	"context"
	"net/http"

	"github.com/escuela-horarios/attendance-backend/internal/domain/auth"
	"github.com/escuela-horarios/attendance-backend/internal/domain/user"
	"github.com/escuela-horarios/attendance-backend/internal/handler/http/response"
	"github.com/escuela-horarios/attendance-backend/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type actorKey struct{}

// AuthRequired rejects requests without a valid access token and stores the
// caller as a user.Actor for the handlers.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		if token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		actor, err := jwt.ActorFromClaims(claims)
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey{}, actor)))
	}
	return http.HandlerFunc(hfn)
}

// ActorFromContext returns the caller stored by AuthRequired.
func ActorFromContext(ctx context.Context) (user.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(user.Actor)
	return actor, ok
}
