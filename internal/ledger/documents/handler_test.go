package documents

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (chi.Router, *Service) {
	t.Helper()
	service, _ := newTestService(t)
	handler := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), service)
	r := chi.NewRouter()
	handler.MountRoutes(r)
	return r, service
}

func TestCreateDocumentEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{
		"client_id": 1,
		"type": "invoice",
		"issue_date": "2025-06-01T00:00:00Z",
		"items": [
			{"description": "Design", "quantity": 2, "unit_price": 50.00},
			{"description": "Hosting", "quantity": 1, "unit_price": 100.00}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/documents", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var doc Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Equal(t, "INV-0001", doc.Number)
	require.Equal(t, StatusDraft, doc.Status)
	require.JSONEq(t, `230.00`, jsonField(t, rec.Body.Bytes(), "grand_total"))
}

func TestCreateDocumentRejectsUnknownType(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{"client_id": 1, "type": "receipt", "issue_date": "2025-06-01T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/documents", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Validation Failed")
}

func TestShowDocumentNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/documents/99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Not Found")
}

func TestUpdateDocumentFinancialEditConflict(t *testing.T) {
	router, service := newTestRouter(t)
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()

	doc, err := service.Create(ctx, createRequest(standardItems()))
	require.NoError(t, err)
	sent := StatusSent
	_, err = service.Update(ctx, doc.ID, UpdateDocumentRequest{Status: &sent})
	require.NoError(t, err)

	body := `{"financial": {"tax_rate": 10}}`
	req := httptest.NewRequest(http.MethodPatch, "/documents/1", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "Document Finalized")
}

func TestUpdateDocumentClearsDueDateWithNull(t *testing.T) {
	router, service := newTestRouter(t)
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()

	create := createRequest(nil)
	due := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	create.DueDate = &due
	doc, err := service.Create(ctx, create)
	require.NoError(t, err)
	require.NotNil(t, doc.DueDate)

	body := `{"metadata": {"due_date": null}}`
	req := httptest.NewRequest(http.MethodPatch, "/documents/1", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var updated Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Nil(t, updated.DueDate)
}

func TestAddPaymentEndpoint(t *testing.T) {
	router, service := newTestRouter(t)
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()

	doc, err := service.Create(ctx, createRequest(standardItems()))
	require.NoError(t, err)
	sent := StatusSent
	_, err = service.Update(ctx, doc.ID, UpdateDocumentRequest{Status: &sent})
	require.NoError(t, err)

	body := `{"amount": 230.00, "date": "2025-06-10T00:00:00Z", "method": "eft"}`
	req := httptest.NewRequest(http.MethodPost, "/documents/1/payments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var updated Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Equal(t, StatusPaid, updated.Status)
	require.True(t, updated.BalanceDue.IsZero())
}

func TestAddPaymentRejectsZeroAmount(t *testing.T) {
	router, service := newTestRouter(t)
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()

	doc, err := service.Create(ctx, createRequest(standardItems()))
	require.NoError(t, err)
	sent := StatusSent
	_, err = service.Update(ctx, doc.ID, UpdateDocumentRequest{Status: &sent})
	require.NoError(t, err)

	body := `{"amount": 0, "date": "2025-06-10T00:00:00Z", "method": "eft"}`
	req := httptest.NewRequest(http.MethodPost, "/documents/1/payments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid Payment")
}

func TestDeleteDocumentEndpoint(t *testing.T) {
	router, service := newTestRouter(t)
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()

	_, err := service.Create(ctx, createRequest(nil))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/documents/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/documents/1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func jsonField(t *testing.T, payload []byte, field string) string {
	t.Helper()
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &raw))
	value, ok := raw[field]
	require.True(t, ok, "missing field %q", field)
	return string(bytes.TrimSpace(value))
}
