package timeline

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sehat-health/sehat/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/timeline", h.GetTimeline)
}

// GetTimeline builds the merged timeline for the authenticated user.
// Query params: order=newest|oldest, type=report|vitals|all,
// category=<report type>|vitals|all, days=<N> (0 or absent = all time).
func (h *Handler) GetTimeline(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	order := ParseOrder(c.QueryParam("order"))

	days := 0
	if raw := c.QueryParam("days"); raw != "" && raw != FilterAll {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid days")
		}
		days = n
	}

	t := h.svc.BuildForUser(c.Request().Context(), userID, order)

	items := FilterByKind(t.Items, c.QueryParam("type"))
	items = FilterByCategory(items, c.QueryParam("category"))
	items = FilterByWindow(items, days, time.Now())

	return c.JSON(http.StatusOK, map[string]interface{}{
		"order":       t.Order,
		"groups":      GroupByDay(items),
		"summary":     Summarize(items),
		"diagnostics": t.Diagnostics,
	})
}
