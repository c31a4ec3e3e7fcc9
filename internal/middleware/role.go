package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole returns a middleware that enforces that the authenticated
// user has one of the specified roles.  The roles correspond to the values
// stored in the JWT's "role" claim.  If the user's role is not in the
// allowed set, the request is aborted with 401: a non-coach calling
// coach-only operations is treated as an authorization failure, not a
// forbidden resource.  It assumes JWTAuth already extracted the role into
// the context under the key "role".
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "insufficient role"})
			}
			return next(c)
		}
	}
}
