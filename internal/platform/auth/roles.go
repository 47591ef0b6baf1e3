package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Role is the closed set of portal roles. Comparison is always
// case-insensitive: tokens minted by older deployments carry mixed-case
// role strings.
type Role string

const (
	RolePatient    Role = "patient"
	RoleDoctor     Role = "doctor"
	RoleAdmin      Role = "admin"
	RoleStaff      Role = "staff"
	RoleLab        Role = "lab"
	RolePharmacist Role = "pharmacist"
)

var knownRoles = map[Role]bool{
	RolePatient:    true,
	RoleDoctor:     true,
	RoleAdmin:      true,
	RoleStaff:      true,
	RoleLab:        true,
	RolePharmacist: true,
}

// ParseRole normalizes s to a canonical Role. ok is false for strings
// outside the closed set.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, knownRoles[r]
}

// Equals reports whether two roles match, ignoring case.
func (r Role) Equals(other Role) bool {
	return strings.EqualFold(string(r), string(other))
}

// Display returns the role name as shown in user-facing messages.
func (r Role) Display() string {
	s := string(r)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// RequireRole restricts a route group to the listed roles. There is no
// implicit admin override: handlers name RoleAdmin explicitly where admins
// are admitted.
func RequireRole(roles ...Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := IdentityFromContext(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, no token")
			}
			for _, required := range roles {
				if ident.Role.Equals(required) {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, deniedMessage(roles))
		}
	}
}

// deniedMessage renders e.g. "Access denied: Must be an Admin or a Doctor".
func deniedMessage(roles []Role) string {
	labels := make([]string, len(roles))
	for i, r := range roles {
		labels[i] = withArticle(r.Display())
	}
	return fmt.Sprintf("Access denied: Must be %s", strings.Join(labels, " or "))
}

func withArticle(label string) string {
	if label == "" {
		return label
	}
	switch label[0] {
	case 'A', 'E', 'I', 'O', 'U':
		return "an " + label
	default:
		return "a " + label
	}
}
