// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/coachup/coaching-api/internal/handler"
	"github.com/coachup/coaching-api/internal/metrics"
	"github.com/coachup/coaching-api/internal/middleware"
)

// RegisterRoutes registers the unauthenticated service endpoints: the
// health check used by load balancers and the Prometheus scrape target.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthcheck", handler.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
}

// RegisterUsers registers the /api/users surface.  Signup and login are
// public; everything else requires a valid access token.
func RegisterUsers(e *echo.Echo, a *handler.AuthHandler, u *handler.UserHandler, jwtSecret string) {
	g := e.Group("/api/users")
	g.POST("/signup", a.Signup)
	g.POST("/login", a.Login)

	auth := e.Group("/api/users", middleware.JWTAuth(jwtSecret))
	auth.GET("/profile", u.GetProfile)
	auth.PUT("/profile", u.UpdateProfile)
	auth.PUT("/password", u.UpdatePassword)
	auth.GET("/credit-package", u.GetCreditPurchases)
	auth.GET("/courses", u.GetBookedCourses)
}
