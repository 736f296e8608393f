package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Ivnfdzz/PickNPlay-sub000/internal/audit"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/enums"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/logger"
)

// AuditTrail records create/update actions on the wrapped routes after
// the response has been written. The recording is fire-and-forget: it
// runs on a detached context and can never block or fail the primary
// request. DELETEs, failed requests, anonymous requests, and requests
// whose target id cannot be resolved are skipped.
func AuditTrail(recorder audit.Service, kind enums.EntityKind, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			action, ok := actionForMethod(r.Method)
			if !ok || recorder == nil {
				next.ServeHTTP(w, r)
				return
			}

			rec := &responseCapture{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			if status < 200 || status > 299 {
				return
			}

			actorID, err := uuid.Parse(UserIDFromContext(r.Context()))
			if err != nil {
				return
			}

			targetID := resolveTargetID(r, rec.body.Bytes(), action)
			if targetID == nil {
				return
			}

			// Detach from the request lifecycle: the response has gone
			// out, and cancellation must not lose the entry.
			ctx := context.WithoutCancel(r.Context())
			go func() {
				defer func() {
					if p := recover(); p != nil && logg != nil {
						logg.Warn(ctx, "audit.record.panic")
					}
				}()
				if _, err := recorder.Record(ctx, audit.RecordInput{
					ActorID:    actorID,
					Action:     action,
					TargetKind: kind,
					TargetID:   targetID,
				}); err != nil && logg != nil {
					logg.Error(ctx, "audit.record.failed", err)
				}
			}()
		})
	}
}

func actionForMethod(method string) (enums.AuditAction, bool) {
	switch method {
	case http.MethodPost:
		return enums.AuditActionCreate, true
	case http.MethodPut, http.MethodPatch:
		return enums.AuditActionUpdate, true
	}
	return "", false
}

// resolveTargetID prefers the response envelope for creates (the {id}
// route parameter, when present, names the parent resource) and the
// route's {id} parameter for updates.
func resolveTargetID(r *http.Request, body []byte, action enums.AuditAction) *uuid.UUID {
	if action == enums.AuditActionCreate {
		if id, ok := idFromEnvelope(body); ok {
			return &id
		}
	}
	if raw := chi.URLParam(r, "id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			return &id
		}
	}
	if id, ok := idFromEnvelope(body); ok {
		return &id
	}
	return nil
}

func idFromEnvelope(body []byte) (uuid.UUID, bool) {
	var envelope struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(envelope.Data.ID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

type responseCapture struct {
	http.ResponseWriter
	body   bytes.Buffer
	status int
}

func (r *responseCapture) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseCapture) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
