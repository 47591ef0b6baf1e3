package auth

import "github.com/labstack/echo/v4"

// publicPaths are reachable without a credential.
var publicPaths = map[string]struct{}{
	"/health":               {},
	"/health/db":            {},
	"/api/v1/auth/login":    {},
	"/api/v1/auth/register": {},
}

// Skipper reports whether the request path is public.
func Skipper(c echo.Context) bool {
	return IsPublicPath(c.Request().URL.Path)
}

func IsPublicPath(path string) bool {
	_, ok := publicPaths[path]
	return ok
}
