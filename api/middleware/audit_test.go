package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ivnfdzz/PickNPlay-sub000/api/responses"
	"github.com/Ivnfdzz/PickNPlay-sub000/internal/audit"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/db/models"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/enums"
)

type recordingAudit struct {
	records chan audit.RecordInput
}

func newRecordingAudit() *recordingAudit {
	return &recordingAudit{records: make(chan audit.RecordInput, 8)}
}

func (f *recordingAudit) Record(_ context.Context, input audit.RecordInput) (*models.AuditLogEntry, error) {
	f.records <- input
	return &models.AuditLogEntry{ID: uuid.New()}, nil
}

func (f *recordingAudit) Query(context.Context, audit.QueryFilters) ([]audit.EntryView, error) {
	return nil, nil
}

func (f *recordingAudit) Summarize(context.Context) (*audit.Summary, error) {
	return nil, nil
}

func (f *recordingAudit) waitForRecord(t *testing.T) audit.RecordInput {
	t.Helper()
	select {
	case input := <-f.records:
		return input
	case <-time.After(2 * time.Second):
		t.Fatal("no audit record observed")
		return audit.RecordInput{}
	}
}

func (f *recordingAudit) assertNoRecord(t *testing.T) {
	t.Helper()
	select {
	case input := <-f.records:
		t.Fatalf("unexpected audit record: %+v", input)
	case <-time.After(100 * time.Millisecond):
	}
}

func auditTestRouter(recorder audit.Service, actorID string) http.Handler {
	router := chi.NewRouter()
	if actorID != "" {
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), actorID)))
			})
		})
	}
	router.With(AuditTrail(recorder, enums.EntityProduct, nil)).Route("/products", func(r chi.Router) {
		r.Post("/", func(w http.ResponseWriter, _ *http.Request) {
			responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"id": "7cbf9f36-5a10-4347-9d3a-1f3df1d5c4a9"})
		})
		r.Put("/{id}", func(w http.ResponseWriter, _ *http.Request) {
			responses.WriteSuccess(w, map[string]any{"ok": true})
		})
		r.Delete("/{id}", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		r.Post("/failing", func(w http.ResponseWriter, r *http.Request) {
			responses.WriteError(r.Context(), nil, w, assert.AnError)
		})
		r.Post("/opaque", func(w http.ResponseWriter, _ *http.Request) {
			responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"ok": true})
		})
	})
	return router
}

func TestAuditTrail_recordsCreateFromResponseEnvelope(t *testing.T) {
	recorder := newRecordingAudit()
	actor := uuid.New()
	router := auditTestRouter(recorder, actor.String())

	req := httptest.NewRequest(http.MethodPost, "/products", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	input := recorder.waitForRecord(t)
	assert.Equal(t, actor, input.ActorID)
	assert.Equal(t, enums.AuditActionCreate, input.Action)
	assert.Equal(t, enums.EntityProduct, input.TargetKind)
	require.NotNil(t, input.TargetID)
	assert.Equal(t, "7cbf9f36-5a10-4347-9d3a-1f3df1d5c4a9", input.TargetID.String())
}

func TestAuditTrail_recordsUpdateFromRouteParam(t *testing.T) {
	recorder := newRecordingAudit()
	actor := uuid.New()
	router := auditTestRouter(recorder, actor.String())

	target := uuid.New()
	req := httptest.NewRequest(http.MethodPut, "/products/"+target.String(), nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	input := recorder.waitForRecord(t)
	assert.Equal(t, enums.AuditActionUpdate, input.Action)
	require.NotNil(t, input.TargetID)
	assert.Equal(t, target, *input.TargetID)
}

func TestAuditTrail_skipsDeletes(t *testing.T) {
	recorder := newRecordingAudit()
	router := auditTestRouter(recorder, uuid.NewString())

	req := httptest.NewRequest(http.MethodDelete, "/products/"+uuid.NewString(), nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNoContent, rr.Code)

	recorder.assertNoRecord(t)
}

func TestAuditTrail_skipsFailedRequests(t *testing.T) {
	recorder := newRecordingAudit()
	router := auditTestRouter(recorder, uuid.NewString())

	req := httptest.NewRequest(http.MethodPost, "/products/failing", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.NotEqual(t, http.StatusOK, rr.Code)

	recorder.assertNoRecord(t)
}

func TestAuditTrail_skipsAnonymousRequests(t *testing.T) {
	recorder := newRecordingAudit()
	router := auditTestRouter(recorder, "")

	req := httptest.NewRequest(http.MethodPost, "/products", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	recorder.assertNoRecord(t)
}

func TestAuditTrail_skipsWhenTargetUnresolvable(t *testing.T) {
	recorder := newRecordingAudit()
	router := auditTestRouter(recorder, uuid.NewString())

	req := httptest.NewRequest(http.MethodPost, "/products/opaque", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	recorder.assertNoRecord(t)
}

func TestAuditTrail_responseUnaffectedByRecorderPanic(t *testing.T) {
	recorder := &panickingAudit{}
	router := auditTestRouter(recorder, uuid.NewString())

	req := httptest.NewRequest(http.MethodPost, "/products", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), "7cbf9f36")
}

type panickingAudit struct{}

func (p *panickingAudit) Record(context.Context, audit.RecordInput) (*models.AuditLogEntry, error) {
	panic("recorder down")
}

func (p *panickingAudit) Query(context.Context, audit.QueryFilters) ([]audit.EntryView, error) {
	return nil, nil
}

func (p *panickingAudit) Summarize(context.Context) (*audit.Summary, error) {
	return nil, nil
}
