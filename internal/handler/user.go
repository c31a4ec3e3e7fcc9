package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/coachup/coaching-api/internal/config"
	"github.com/coachup/coaching-api/internal/repository"
	"github.com/coachup/coaching-api/internal/utils"
)

// UserHandler serves the authenticated user's own profile, password,
// purchase history and booked courses.
type UserHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Credits  *repository.CreditRepo
	Bookings *repository.BookingRepo
}

func NewUserHandler(cfg config.Config, u *repository.UserRepo, cr *repository.CreditRepo, b *repository.BookingRepo) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: u, Credits: cr, Bookings: b}
}

// GetProfile returns the caller's own profile.
func (h *UserHandler) GetProfile(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, userPart{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role})
}

type updateProfileReq struct {
	Name string `json:"name"`
}

// UpdateProfile renames the caller. Submitting the current name again is
// rejected so clients notice the no-op.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if u.Name == req.Name {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is unchanged"})
	}
	if err := h.Users.UpdateName(ctx, uid, req.Name); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, userPart{ID: u.ID, Name: req.Name, Email: u.Email, Role: u.Role})
}

type updatePasswordReq struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// UpdatePassword verifies the old password before accepting the new one.
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updatePasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "old_password/new_password required"})
	}
	if req.NewPassword != req.ConfirmPassword {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password confirmation does not match"})
	}
	if req.NewPassword == req.OldPassword {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "new password must differ from the old one"})
	}
	if !utils.ValidPassword(req.NewPassword) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be 8-16 chars with upper, lower and digit"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.OldPassword) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "old password is incorrect"})
	}
	if err := h.Users.UpdatePassword(ctx, uid, req.NewPassword, h.Cfg.BcryptCost); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password updated"})
}

// GetCreditPurchases lists the caller's purchase history, newest first.
func (h *UserHandler) GetCreditPurchases(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	purchases, err := h.Credits.ListPurchasesByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"purchases": purchases})
}

// GetBookedCourses lists the caller's active bookings together with the
// derived credit summary. credit_remain is always recomputed from the
// ledger, never read from a stored balance.
func (h *UserHandler) GetBookedCourses(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	courses, err := h.Bookings.ListForUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	total, used, err := h.Credits.RemainingCredits(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"courses":       courses,
		"credit_usage":  used,
		"credit_remain": total - used,
	})
}
