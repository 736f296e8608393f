package controllers

import (
	"net/http"

	"github.com/Ivnfdzz/PickNPlay-sub000/api/middleware"
	"github.com/Ivnfdzz/PickNPlay-sub000/api/responses"
	"github.com/Ivnfdzz/PickNPlay-sub000/api/validators"
	authsvc "github.com/Ivnfdzz/PickNPlay-sub000/internal/auth"
	pkgerrors "github.com/Ivnfdzz/PickNPlay-sub000/pkg/errors"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/logger"
)

// Login authenticates a staff member and returns a bearer token.
func Login(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload authsvc.LoginInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"token": result.Token,
			"user":  sanitizeUser(*result.User),
		})
	}
}

// Logout revokes the caller's server-side session.
func Logout(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		accessID := middleware.AccessIDFromContext(r.Context())
		if err := svc.Logout(r.Context(), accessID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}
