package http

import (
	"net/http"
	"strconv"

	"github.com/escuela-horarios/attendance-backend/internal/domain/auth"
	"github.com/escuela-horarios/attendance-backend/internal/domain/user"
	"github.com/escuela-horarios/attendance-backend/internal/handler/http/middleware"
	"github.com/escuela-horarios/attendance-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// urlID parses a positive integer path parameter. It writes a 400 and returns
// false when the parameter is malformed.
func urlID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "invalid "+name+" parameter", nil)
		return 0, false
	}
	return id, true
}

// queryID parses an optional integer query parameter.
func queryID(w http.ResponseWriter, r *http.Request, name string) (*int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid "+name+" parameter", nil)
		return nil, false
	}
	return &id, true
}

func requestActor(w http.ResponseWriter, r *http.Request) (user.Actor, bool) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
	}
	return actor, ok
}
