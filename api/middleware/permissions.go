package middleware

import (
	"net/http"

	"github.com/Ivnfdzz/PickNPlay-sub000/api/responses"
	"github.com/Ivnfdzz/PickNPlay-sub000/internal/rbac"
	pkgerrors "github.com/Ivnfdzz/PickNPlay-sub000/pkg/errors"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/enums"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/logger"
)

// RequirePermission gates a route on the role matrix. The decision is
// computed from the authenticated role in the request context; a denial
// carries the matrix's stable reason string.
func RequirePermission(entity enums.EntityKind, op enums.Operation, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := rbac.Check(RoleFromContext(r.Context()), entity, op)
			if !decision.Allowed {
				err := pkgerrors.New(pkgerrors.CodeForbidden, decision.Reason)
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
