package router

import (
	"github.com/labstack/echo/v4"

	"github.com/coachup/coaching-api/internal/handler"
	"github.com/coachup/coaching-api/internal/middleware"
)

// RegisterAdmin registers the coach-scoped management endpoints under
// /api/admin.  All routes require a valid JWT and the COACH role, except
// the promotion endpoint which only requires authentication since its
// caller is still a plain USER being upgraded by the operator flow.
func RegisterAdmin(e *echo.Echo, ad *handler.AdminHandler, sk *handler.SkillHandler, cp *handler.CreditPackageHandler, jwtSecret string) {
	g := e.Group(
		"/api/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("COACH"),
	)

	// ---- Courses ----
	g.GET("/courses", ad.ListCourses)
	g.POST("/courses", ad.CreateCourse)
	g.GET("/courses/:courseId", ad.GetCourse)
	g.PUT("/courses/:courseId", ad.UpdateCourse)

	// ---- Revenue ----
	g.GET("/revenue", ad.MonthlyRevenue)

	// ---- Coach profile ----
	g.GET("/coaches/profile", ad.GetProfile)
	g.PUT("/coaches/profile", ad.UpdateProfile)

	// ---- Catalogue management ----
	g.POST("/coaches/skill", sk.Create)
	g.DELETE("/coaches/skill/:skillId", sk.Delete)
	g.POST("/credit-package", cp.Create)
	g.DELETE("/credit-package/:creditPackageId", cp.Delete)

	// Promotion: authenticated but not role-gated.
	p := e.Group("/api/admin", middleware.JWTAuth(jwtSecret))
	p.POST("/coaches/:userId", ad.Promote)
}
