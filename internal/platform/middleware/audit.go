package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/carewell/hms/internal/platform/auth"
)

// Audit emits one log line per API request with the acting identity
// attached. Authorization rejections log at warn level so denied access is
// visible without raising the global log level.
func Audit(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			if !strings.HasPrefix(c.Request().URL.Path, "/api/v1") {
				return err
			}

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}

			evt := logger.Info()
			if status == http.StatusUnauthorized || status == http.StatusForbidden {
				evt = logger.Warn()
			}

			if ident, ok := auth.IdentityFromContext(c.Request().Context()); ok {
				evt = evt.
					Str("subject_id", ident.SubjectID).
					Str("role", string(ident.Role))
			}

			evt.
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Int("status", status).
				Msg("audit")

			return err
		}
	}
}
