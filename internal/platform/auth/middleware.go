package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type contextKey struct{ name string }

var identityKey = &contextKey{"identity"}

// RequireAuth extracts a Bearer credential from the Authorization header,
// verifies it, and stores the resulting Identity on the request context.
// Paths accepted by skipper bypass authentication entirely.
func RequireAuth(codec *TokenCodec, logger zerolog.Logger, skipper func(echo.Context) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper != nil && skipper(c) {
				return next(c)
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, no token")
			}

			ident, err := codec.Verify(parts[1])
			if err != nil {
				logger.Warn().
					Err(err).
					Str("path", c.Request().URL.Path).
					Str("remote_ip", c.RealIP()).
					Msg("token verification failed")
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, token failed")
			}

			ctx := context.WithValue(c.Request().Context(), identityKey, ident)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// IdentityFromContext returns the identity stored by RequireAuth.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	ident, ok := ctx.Value(identityKey).(*Identity)
	return ident, ok
}

// WithIdentity returns a context carrying the identity. Used by tests and
// internal callers that run outside the HTTP middleware chain.
func WithIdentity(ctx context.Context, ident *Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}
