package report

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sehat-health/sehat/internal/platform/auth"
	"github.com/sehat-health/sehat/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/reports", h.CreateReport)
	api.GET("/reports", h.ListReports)
	api.GET("/reports/:id", h.GetReport)
	api.DELETE("/reports/:id", h.DeleteReport)
	api.PUT("/reports/:id/insight", h.AttachInsight)
	api.GET("/insights", h.ListInsights)
}

type createReportRequest struct {
	OriginalName string     `json:"original_name"`
	ReportType   ReportType `json:"report_type"`
	TestDate     time.Time  `json:"test_date"`
	LabName      *string    `json:"lab_name,omitempty"`
	DoctorName   *string    `json:"doctor_name,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

func (h *Handler) CreateReport(c echo.Context) error {
	var req createReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	r := &Record{
		UserID:       auth.UserIDFromContext(c.Request().Context()),
		OriginalName: req.OriginalName,
		ReportType:   req.ReportType,
		TestDate:     req.TestDate,
		LabName:      req.LabName,
		DoctorName:   req.DoctorName,
		Notes:        req.Notes,
	}
	if err := h.svc.CreateReport(c.Request().Context(), r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *Handler) ListReports(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	pg := pagination.FromContext(c)
	f := Filter{
		Category: ReportType(c.QueryParam("category")),
		Search:   c.QueryParam("search"),
	}
	records, total, err := h.svc.ListReports(c.Request().Context(), userID, f, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(records, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetReport(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	userID := auth.UserIDFromContext(c.Request().Context())
	r, err := h.svc.GetReport(c.Request().Context(), userID, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "report not found")
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) DeleteReport(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	userID := auth.UserIDFromContext(c.Request().Context())
	if err := h.svc.DeleteReport(c.Request().Context(), userID, id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) AttachInsight(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var insight Insight
	if err := c.Bind(&insight); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	userID := auth.UserIDFromContext(c.Request().Context())
	r, err := h.svc.AttachInsight(c.Request().Context(), userID, id, &insight)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, r)
}

// insightView is the language-resolved projection of a processed report.
type insightView struct {
	ReportID         uuid.UUID    `json:"report_id"`
	OriginalName     string       `json:"original_name"`
	ReportType       ReportType   `json:"report_type"`
	TypeLabel        string       `json:"type_label"`
	TestDate         time.Time    `json:"test_date"`
	Summary          string       `json:"summary"`
	Recommendations  []string     `json:"recommendations"`
	DoctorQuestions  []string     `json:"doctor_questions"`
	KeyFindings      []KeyFinding `json:"key_findings"`
	Confidence       int          `json:"confidence"`
	FollowUpRequired bool         `json:"follow_up_required"`
	NeedsAttention   bool         `json:"needs_attention"`
}

type insightStats struct {
	Total          int `json:"total"`
	AttentionCount int `json:"attention_count"`
	FollowUpCount  int `json:"follow_up_count"`
}

func (h *Handler) ListInsights(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	pg := pagination.FromContext(c)
	lang := ParseLanguage(c.QueryParam("lang"))
	category := ReportType(c.QueryParam("category"))

	records, total, err := h.svc.ListInsights(c.Request().Context(), userID, category, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	views := make([]insightView, 0, len(records))
	stats := insightStats{Total: total}
	for _, r := range records {
		if r.Insight == nil {
			continue
		}
		// Stored confidence keeps the raw value; clamp it for display only.
		confidence, _ := r.Insight.ClampConfidence()
		v := insightView{
			ReportID:         r.ID,
			OriginalName:     r.OriginalName,
			ReportType:       r.ReportType,
			TypeLabel:        r.ReportType.Label(),
			TestDate:         r.TestDate,
			Summary:          r.Insight.SummaryText(lang),
			Recommendations:  r.Insight.Recommendations.Resolve(lang),
			DoctorQuestions:  r.Insight.DoctorQuestions.Resolve(lang),
			KeyFindings:      r.Insight.KeyFindings,
			Confidence:       confidence,
			FollowUpRequired: r.Insight.FollowUpRequired,
			NeedsAttention:   r.Insight.NeedsAttention(),
		}
		if v.NeedsAttention {
			stats.AttentionCount++
		}
		if v.FollowUpRequired {
			stats.FollowUpCount++
		}
		views = append(views, v)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":   views,
		"stats":  stats,
		"total":  total,
		"limit":  pg.Limit,
		"offset": pg.Offset,
	})
}
