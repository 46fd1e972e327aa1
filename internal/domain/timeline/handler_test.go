package timeline

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sehat-health/sehat/internal/domain/report"
	"github.com/sehat-health/sehat/internal/domain/vitals"
	"github.com/sehat-health/sehat/internal/platform/auth"
)

func newTestHandler(reports []*report.Record, vits []*vitals.Record) (*Handler, *echo.Echo) {
	svc := NewService(&stubReportSource{records: reports}, &stubVitalsSource{records: vits})
	return NewHandler(svc), echo.New()
}

func timelineRequest(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return req.WithContext(context.WithValue(req.Context(), auth.UserIDKey, uuid.New()))
}

type timelineResponse struct {
	Order   Order   `json:"order"`
	Groups  []Group `json:"groups"`
	Summary Summary `json:"summary"`
}

func TestHandler_GetTimeline(t *testing.T) {
	h, e := newTestHandler(
		[]*report.Record{testReport(day(2024, 1, 5))},
		[]*vitals.Record{testVitals(day(2024, 1, 5))},
	)

	rec := httptest.NewRecorder()
	c := e.NewContext(timelineRequest("/?order=newest"), rec)
	if err := h.GetTimeline(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var out timelineResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(out.Groups) != 1 || len(out.Groups[0].Items) != 2 {
		t.Errorf("expected one bucket with both items, got %+v", out.Groups)
	}
	if out.Summary.Total != 2 {
		t.Errorf("expected summary total 2, got %d", out.Summary.Total)
	}
}

func TestHandler_GetTimeline_TypeFilter(t *testing.T) {
	h, e := newTestHandler(
		[]*report.Record{testReport(day(2024, 1, 5))},
		[]*vitals.Record{testVitals(day(2024, 1, 6))},
	)

	rec := httptest.NewRecorder()
	c := e.NewContext(timelineRequest("/?type=vitals"), rec)
	if err := h.GetTimeline(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out timelineResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if out.Summary.Total != 1 || out.Summary.TotalVitals != 1 {
		t.Errorf("expected only the vitals item, got %+v", out.Summary)
	}
}

func TestHandler_GetTimeline_InvalidDays(t *testing.T) {
	h, e := newTestHandler(nil, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(timelineRequest("/?days=soon"), rec)
	if err := h.GetTimeline(c); err == nil {
		t.Error("expected error for non-numeric days")
	}
}

func TestHandler_GetTimeline_AllDaysSentinel(t *testing.T) {
	h, e := newTestHandler([]*report.Record{testReport(day(2020, 1, 1))}, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(timelineRequest("/?days=all"), rec)
	if err := h.GetTimeline(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out timelineResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if out.Summary.Total != 1 {
		t.Errorf("'all' must disable the window, got %+v", out.Summary)
	}
}
