package dashboard

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sehat-health/sehat/internal/domain/report"
	"github.com/sehat-health/sehat/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/dashboard", h.GetDashboard)
}

func (h *Handler) GetDashboard(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	lang := report.ParseLanguage(c.QueryParam("lang"))
	return c.JSON(http.StatusOK, h.svc.BuildView(c.Request().Context(), userID, lang))
}
