package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/coachup/coaching-api/internal/repository"
)

// SkillHandler manages the skill tag catalogue.
type SkillHandler struct {
	Skills *repository.SkillRepo
}

func NewSkillHandler(s *repository.SkillRepo) *SkillHandler {
	return &SkillHandler{Skills: s}
}

// List returns every skill.
func (h *SkillHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	skills, err := h.Skills.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"skills": skills})
}

type createSkillReq struct {
	Name string `json:"name"`
}

// Create adds a skill with a unique name.
func (h *SkillHandler) Create(c echo.Context) error {
	var req createSkillReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	skill, err := h.Skills.Create(ctx, req.Name)
	if err != nil {
		if err == repository.ErrNameExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "skill already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, skill)
}

// Delete removes a skill by id.
func (h *SkillHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "skillId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid skill id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Skills.Delete(ctx, id); err != nil {
		if err == repository.ErrUpdateFailed {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "skill not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "skill deleted"})
}
