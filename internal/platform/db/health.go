package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

const pingTimeout = 5 * time.Second

// Health is the database portion of a health-check response.
type Health struct {
	Status        string `json:"status"`
	TotalConns    int32  `json:"total_conns"`
	IdleConns     int32  `json:"idle_conns"`
	AcquiredConns int32  `json:"acquired_conns"`
	MaxConns      int32  `json:"max_conns"`
	Error         string `json:"error,omitempty"`
}

// CheckHealth pings the database and snapshots pool statistics.
func CheckHealth(ctx context.Context, pool *pgxpool.Pool) Health {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	stat := pool.Stat()
	h := Health{
		Status:        "healthy",
		TotalConns:    stat.TotalConns(),
		IdleConns:     stat.IdleConns(),
		AcquiredConns: stat.AcquiredConns(),
		MaxConns:      stat.MaxConns(),
	}
	if err := pool.Ping(ctx); err != nil {
		h.Status = "unhealthy"
		h.Error = err.Error()
	}
	return h
}

// HealthHandler serves the database health check endpoint.
func HealthHandler(pool *pgxpool.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := CheckHealth(c.Request().Context(), pool)
		code := http.StatusOK
		if h.Status != "healthy" {
			code = http.StatusServiceUnavailable
		}
		return c.JSON(code, h)
	}
}
