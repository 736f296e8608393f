package controllers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/Ivnfdzz/PickNPlay-sub000/api/responses"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/config"
	pkgerrors "github.com/Ivnfdzz/PickNPlay-sub000/pkg/errors"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/logger"
)

// Pinger matches the health check surface of the datastore clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PickNPlay-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every datastore and aggregates the failures.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		var errs error
		checks := map[string]string{}
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				checks[name] = "down"
				errs = multierr.Append(errs, err)
				continue
			}
			checks[name] = "up"
		}

		w.Header().Set("X-PickNPlay-Env", cfg.App.Env)
		if errs != nil {
			err := pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "readiness check failed").
				WithDetails(checks)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
