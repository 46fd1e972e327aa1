package vitals

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sehat-health/sehat/internal/platform/auth"
)

func newTestHandler() (*Handler, *echo.Echo) {
	svc, _ := newTestService()
	h := NewHandler(svc)
	e := echo.New()
	return h, e
}

func withUser(req *http.Request, userID uuid.UUID) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), auth.UserIDKey, userID))
}

func TestHandler_CreateEntry(t *testing.T) {
	h, e := newTestHandler()
	body := `{"blood_pressure":{"systolic":150,"diastolic":95},"recorded_at":"2024-01-05T09:00:00Z"}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), uuid.New())
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.CreateEntry(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	var out Record
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if !hasAlert(out.Alerts, AlertHighBP) {
		t.Errorf("expected server-derived High BP alert, got %v", out.Alerts)
	}
}

func TestHandler_CreateEntry_Empty(t *testing.T) {
	h, e := newTestHandler()
	req := withUser(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`)), uuid.New())
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.CreateEntry(c); err == nil {
		t.Error("expected error for entry without measurements")
	}
}

func TestHandler_ListEntries(t *testing.T) {
	h, e := newTestHandler()
	userID := uuid.New()
	r := &Record{UserID: userID, HeartRate: &Measurement{Value: 72}}
	if err := h.svc.CreateEntry(context.Background(), r); err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	req := withUser(httptest.NewRequest(http.MethodGet, "/?period=30", nil), userID)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.ListEntries(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_GetEntry_NotFound(t *testing.T) {
	h, e := newTestHandler()
	req := withUser(httptest.NewRequest(http.MethodGet, "/", nil), uuid.New())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())
	if err := h.GetEntry(c); err == nil {
		t.Error("expected error")
	}
}

func TestHandler_DeleteEntry(t *testing.T) {
	h, e := newTestHandler()
	userID := uuid.New()
	r := &Record{UserID: userID, HeartRate: &Measurement{Value: 72}}
	if err := h.svc.CreateEntry(context.Background(), r); err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	req := withUser(httptest.NewRequest(http.MethodDelete, "/", nil), userID)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(r.ID.String())
	if err := h.DeleteEntry(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}
