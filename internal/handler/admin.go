package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/coachup/coaching-api/internal/model"
	"github.com/coachup/coaching-api/internal/repository"
)

// AdminHandler serves the coach-side management surface: own courses,
// monthly revenue, the coach profile and the user→coach promotion.
type AdminHandler struct {
	Users   *repository.UserRepo
	Coaches *repository.CoachRepo
	Courses *repository.CourseRepo
	Revenue *repository.RevenueRepo
}

func NewAdminHandler(u *repository.UserRepo, co *repository.CoachRepo, cr *repository.CourseRepo, rv *repository.RevenueRepo) *AdminHandler {
	return &AdminHandler{Users: u, Coaches: co, Courses: cr, Revenue: rv}
}

// ListCourses returns the caller's own courses with active participant counts.
func (h *AdminHandler) ListCourses(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	courses, err := h.Courses.ListForCoach(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"courses": courses})
}

// GetCourse returns one of the caller's courses including the meeting URL.
func (h *AdminHandler) GetCourse(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	courseID, ok := pathID(c, "courseId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid course id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	detail, err := h.Courses.GetDetailForCoach(ctx, courseID, uid)
	if err != nil {
		if err == repository.ErrCourseNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "course not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, detail)
}

type courseReq struct {
	SkillID         uint64 `json:"skill_id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	StartAt         string `json:"start_at"`
	EndAt           string `json:"end_at"`
	MaxParticipants uint32 `json:"max_participants"`
	MeetingURL      string `json:"meeting_url"`
}

// parseCourseReq validates the request body shared by create and update.
func parseCourseReq(c echo.Context, uid uint64) (*model.Course, string) {
	var req courseReq
	if err := c.Bind(&req); err != nil {
		return nil, "invalid body"
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.SkillID == 0 || req.Name == "" || req.MaxParticipants == 0 {
		return nil, "skill_id/name/max_participants required"
	}
	if !strings.HasPrefix(req.MeetingURL, "https://") {
		return nil, "meeting_url must be an https url"
	}
	start, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		return nil, "start_at must be RFC3339"
	}
	end, err := time.Parse(time.RFC3339, req.EndAt)
	if err != nil {
		return nil, "end_at must be RFC3339"
	}
	if !end.After(start) {
		return nil, "end_at must be after start_at"
	}
	return &model.Course{
		UserID:          uid,
		SkillID:         req.SkillID,
		Name:            req.Name,
		Description:     req.Description,
		StartAt:         start.UTC(),
		EndAt:           end.UTC(),
		MaxParticipants: req.MaxParticipants,
		MeetingURL:      req.MeetingURL,
	}, ""
}

// CreateCourse adds a course owned by the caller.
func (h *AdminHandler) CreateCourse(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	course, msg := parseCourseReq(c, uid)
	if course == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Courses.Create(ctx, course); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, course)
}

// UpdateCourse replaces the mutable fields of one of the caller's courses.
func (h *AdminHandler) UpdateCourse(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	courseID, ok := pathID(c, "courseId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid course id"})
	}
	course, msg := parseCourseReq(c, uid)
	if course == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	course.ID = courseID

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Courses.Update(ctx, course); err != nil {
		switch err {
		case repository.ErrCourseNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "course not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your course"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, course)
}

// MonthlyRevenue reports the caller's revenue for the named month of the
// current year. Figures are derived on every call, never stored.
func (h *AdminHandler) MonthlyRevenue(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	month := strings.TrimSpace(c.QueryParam("month"))
	if month == "" {
		month = strings.TrimSpace(c.Param("month"))
	}
	if month == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "month required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	stats, err := h.Revenue.MonthlyStats(ctx, uid, month)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidMonth) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown month"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, stats)
}

// GetProfile returns the caller's coach profile and linked skills.
func (h *AdminHandler) GetProfile(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	coach, err := h.Coaches.GetByUserID(ctx, uid)
	if err != nil {
		if err == repository.ErrCoachNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "coach profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	skillIDs, err := h.Coaches.SkillIDs(ctx, coach.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"coach": coach, "skill_ids": skillIDs})
}

type updateProfileCoachReq struct {
	ExperienceYears uint32   `json:"experience_years"`
	Description     string   `json:"description"`
	ProfileImageURL string   `json:"profile_image_url"`
	SkillIDs        []uint64 `json:"skill_ids"`
}

// UpdateProfile replaces the caller's coach profile; the skill links are
// swapped atomically with the field update.
func (h *AdminHandler) UpdateProfile(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateProfileCoachReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ProfileImageURL != "" && !strings.HasPrefix(req.ProfileImageURL, "https://") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "profile_image_url must be an https url"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	coach, skillIDs, err := h.Coaches.UpdateProfile(ctx, uid, req.ExperienceYears, req.Description, req.ProfileImageURL, req.SkillIDs)
	if err != nil {
		if err == repository.ErrCoachNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "coach profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"coach": coach, "skill_ids": skillIDs})
}

type promoteReq struct {
	ExperienceYears uint32 `json:"experience_years"`
	Description     string `json:"description"`
	ProfileImageURL string `json:"profile_image_url"`
}

// Promote upgrades a USER to COACH. The role flip and the profile insert
// commit together or not at all.
func (h *AdminHandler) Promote(c echo.Context) error {
	userID, ok := pathID(c, "userId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req promoteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	var img *string
	if s := strings.TrimSpace(req.ProfileImageURL); s != "" {
		if !strings.HasPrefix(s, "https://") {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "profile_image_url must be an https url"})
		}
		img = &s
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, coach, err := h.Coaches.Promote(ctx, userID, req.ExperienceYears, req.Description, img)
	if err != nil {
		switch err {
		case repository.ErrUserNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		case repository.ErrAlreadyCoach:
			return c.JSON(http.StatusConflict, echo.Map{"error": "user is already a coach"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "promotion failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"user":  userPart{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role},
		"coach": coach,
	})
}
