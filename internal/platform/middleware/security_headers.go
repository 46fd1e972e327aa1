package middleware

import (
	"github.com/labstack/echo/v4"
)

// SecurityHeaders returns middleware that sets security response headers on
// every request. The API serves personal health data, so responses must never
// be cached or embedded.
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()

			// Prevent MIME type sniffing
			h.Set("X-Content-Type-Options", "nosniff")

			// Prevent clickjacking
			h.Set("X-Frame-Options", "DENY")

			// Strict CSP for a JSON API: deny all resource loading and
			// frame embedding.
			h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

			// HTTP Strict Transport Security — 1 year including subdomains.
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")

			// Do not send Referer header to downstream services.
			h.Set("Referrer-Policy", "no-referrer")

			// Prevent caching of responses carrying health records.
			h.Set("Cache-Control", "no-store")

			return next(c)
		}
	}
}
