package router

import (
	"github.com/labstack/echo/v4"

	"github.com/coachup/coaching-api/internal/handler"
	"github.com/coachup/coaching-api/internal/middleware"
)

// RegisterPublic registers the unauthenticated browse endpoints: the
// coach directory, the skill list, the credit-package catalogue and the
// course catalogue.  The optional cache middleware is applied to these
// GET routes; pass nil to register them uncached.
func RegisterPublic(e *echo.Echo, co *handler.CoachHandler, sk *handler.SkillHandler, cp *handler.CreditPackageHandler, cs *handler.CourseHandler, cache echo.MiddlewareFunc) {
	var mw []echo.MiddlewareFunc
	if cache != nil {
		mw = append(mw, cache)
	}

	e.GET("/api/coaches", co.List, mw...)
	e.GET("/api/coaches/skill", sk.List, mw...)
	e.GET("/api/coaches/:coachId", co.Get, mw...)
	e.GET("/api/coaches/:coachId/courses", co.ListCourses, mw...)
	e.GET("/api/credit-package", cp.List, mw...)
	e.GET("/api/courses", cs.List, mw...)
}

// RegisterBooking registers the authenticated participant operations:
// purchasing a credit package, booking a course and cancelling a booking.
func RegisterBooking(e *echo.Echo, cp *handler.CreditPackageHandler, cs *handler.CourseHandler, jwtSecret string) {
	g := e.Group("/api", middleware.JWTAuth(jwtSecret))
	g.POST("/credit-package/:creditPackageId", cp.Purchase)
	g.POST("/courses/:courseId", cs.Book)
	g.DELETE("/courses/:courseId", cs.Cancel)
}
