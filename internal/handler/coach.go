package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/coachup/coaching-api/internal/repository"
)

// CoachHandler serves the public coach directory.
type CoachHandler struct {
	Coaches *repository.CoachRepo
	Courses *repository.CourseRepo
}

func NewCoachHandler(co *repository.CoachRepo, cr *repository.CourseRepo) *CoachHandler {
	return &CoachHandler{Coaches: co, Courses: cr}
}

const (
	defaultPer  = 10
	maxPer      = 50
	defaultPage = 1
)

// List returns one page of coaches. ?per and ?page select the page; a page
// past the last one is a 400 so clients notice they ran off the end.
func (h *CoachHandler) List(c echo.Context) error {
	per, err := strconv.Atoi(c.QueryParam("per"))
	if err != nil || per <= 0 {
		per = defaultPer
	}
	if per > maxPer {
		per = maxPer
	}
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page <= 0 {
		page = defaultPage
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	coaches, total, err := h.Coaches.List(ctx, page, per)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	totalPages := int((total + uint64(per) - 1) / uint64(per))
	if totalPages == 0 {
		totalPages = 1
	}
	if page > totalPages {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "page out of range"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"coaches":     coaches,
		"page":        page,
		"per":         per,
		"total":       total,
		"total_pages": totalPages,
	})
}

// Get returns one coach with user name and linked skills.
func (h *CoachHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "coachId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid coach id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	coach, skills, err := h.Coaches.GetDetail(ctx, id)
	if err != nil {
		if err == repository.ErrCoachNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "coach not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"coach": coach, "skills": skills})
}

// ListCourses returns the courses a coach offers.
func (h *CoachHandler) ListCourses(c echo.Context) error {
	id, ok := pathID(c, "coachId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid coach id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	coach, err := h.Coaches.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrCoachNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "coach not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	courses, err := h.Courses.ListByOwner(ctx, coach.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"courses": courses})
}
