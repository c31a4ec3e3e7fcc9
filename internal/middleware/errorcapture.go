package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// CaptureErrors reports server-side failures to the given capture func
// (sentry in production).  Handler errors are forwarded as-is; handlers
// that swallow the cause and answer 5xx themselves are reported with a
// synthesized error carrying method, route and status.
func CaptureErrors(capture func(error)) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := next(c); err != nil {
				capture(err)
				return err
			}
			if status := c.Response().Status; status >= http.StatusInternalServerError {
				capture(fmt.Errorf("%s %s responded %d", c.Request().Method, c.Path(), status))
			}
			return nil
		}
	}
}
