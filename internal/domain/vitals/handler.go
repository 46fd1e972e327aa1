package vitals

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
	api.POST("/vitals", h.CreateEntry)
	api.GET("/vitals", h.ListEntries)
	api.GET("/vitals/:id", h.GetEntry)
	api.PUT("/vitals/:id", h.UpdateEntry)
	api.DELETE("/vitals/:id", h.DeleteEntry)
}

type entryRequest struct {
	BloodPressure    *BloodPressure `json:"blood_pressure,omitempty"`
	HeartRate        *Measurement   `json:"heart_rate,omitempty"`
	BloodSugar       *BloodSugar    `json:"blood_sugar,omitempty"`
	Weight           *Measurement   `json:"weight,omitempty"`
	Height           *Measurement   `json:"height,omitempty"`
	Temperature      *Measurement   `json:"temperature,omitempty"`
	OxygenSaturation *Measurement   `json:"oxygen_saturation,omitempty"`
	Notes            *string        `json:"notes,omitempty"`
	BMI              *float64       `json:"bmi,omitempty"`
	RecordedAt       time.Time      `json:"recorded_at"`
}

func (req *entryRequest) toRecord(userID uuid.UUID) *Record {
	return &Record{
		UserID:           userID,
		BloodPressure:    req.BloodPressure,
		HeartRate:        req.HeartRate,
		BloodSugar:       req.BloodSugar,
		Weight:           req.Weight,
		Height:           req.Height,
		Temperature:      req.Temperature,
		OxygenSaturation: req.OxygenSaturation,
		Notes:            req.Notes,
		BMI:              req.BMI,
		RecordedAt:       req.RecordedAt,
	}
}

func (h *Handler) CreateEntry(c echo.Context) error {
	var req entryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	r := req.toRecord(auth.UserIDFromContext(c.Request().Context()))
	if err := h.svc.CreateEntry(c.Request().Context(), r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *Handler) ListEntries(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	pg := pagination.FromContext(c)
	records, total, err := h.svc.ListEntries(c.Request().Context(), userID, c.QueryParam("period"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(records, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetEntry(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	userID := auth.UserIDFromContext(c.Request().Context())
	r, err := h.svc.GetEntry(c.Request().Context(), userID, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "vitals entry not found")
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) UpdateEntry(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req entryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	r := req.toRecord(auth.UserIDFromContext(c.Request().Context()))
	r.ID = id
	updated, err := h.svc.UpdateEntry(c.Request().Context(), r)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteEntry(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	userID := auth.UserIDFromContext(c.Request().Context())
	if err := h.svc.DeleteEntry(c.Request().Context(), userID, id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
