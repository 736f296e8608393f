package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Ivnfdzz/PickNPlay-sub000/api/responses"
	auditsvc "github.com/Ivnfdzz/PickNPlay-sub000/internal/audit"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/enums"
	pkgerrors "github.com/Ivnfdzz/PickNPlay-sub000/pkg/errors"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/logger"
)

// QueryAuditLog lists audit entries newest-first with optional filters
// taken from the query string.
func QueryAuditLog(svc auditsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "audit service unavailable"))
			return
		}

		filters, err := auditFiltersFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, err := svc.Query(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}

// SummarizeAuditLog serves the aggregated activity report.
func SummarizeAuditLog(svc auditsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "audit service unavailable"))
			return
		}

		summary, err := svc.Summarize(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

func auditFiltersFromQuery(r *http.Request) (auditsvc.QueryFilters, error) {
	query := r.URL.Query()
	filters := auditsvc.QueryFilters{Limit: queryLimit(r)}

	if raw := query.Get("actor_id"); raw != "" {
		actorID, err := uuid.Parse(raw)
		if err != nil {
			return auditsvc.QueryFilters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid actor id")
		}
		filters.ActorID = &actorID
	}
	if raw := query.Get("action"); raw != "" {
		action, err := enums.ParseAuditAction(raw)
		if err != nil {
			return auditsvc.QueryFilters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid action")
		}
		filters.Action = &action
	}
	if raw := query.Get("target_kind"); raw != "" {
		kind, err := enums.ParseEntityKind(raw)
		if err != nil {
			return auditsvc.QueryFilters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target kind")
		}
		filters.TargetKind = &kind
	}
	if raw := query.Get("target_id"); raw != "" {
		targetID, err := uuid.Parse(raw)
		if err != nil {
			return auditsvc.QueryFilters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target id")
		}
		filters.TargetID = &targetID
	}
	if raw := query.Get("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return auditsvc.QueryFilters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid since timestamp")
		}
		filters.Since = &since
	}
	return filters, nil
}
