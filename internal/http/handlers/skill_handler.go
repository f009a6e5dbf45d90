package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skillswap-backend/internal/dto"
	"github.com/ignatzorin/skillswap-backend/internal/http/handlers/common"
	"github.com/ignatzorin/skillswap-backend/internal/repository"
	"github.com/ignatzorin/skillswap-backend/internal/service"
	"github.com/ignatzorin/skillswap-backend/internal/watch"
)

// SkillHandler предоставляет HTTP слой для объявлений о навыках.
type SkillHandler struct {
	skills    *service.SkillService
	snapshots *service.SnapshotService
}

// NewSkillHandler создаёт хэндлер.
func NewSkillHandler(skills *service.SkillService, snapshots *service.SnapshotService) *SkillHandler {
	return &SkillHandler{skills: skills, snapshots: snapshots}
}

// Create обрабатывает POST /skills.
func (h *SkillHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.CreateSkillRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	skill, err := h.skills.CreateSkill(c.Request.Context(), service.CreateSkillInput{
		OwnerID:     userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Level:       req.Level,
		Direction:   req.Direction,
		Tags:        req.Tags,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.snapshots.RefreshAsync(watch.CollectionSkills)
	c.JSON(http.StatusCreated, skill)
}

// Get обрабатывает GET /skills/:id.
func (h *SkillHandler) Get(c *gin.Context) {
	skillID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	skill, err := h.skills.GetSkill(c.Request.Context(), skillID)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			common.RespondNotFound(c, "навык не найден")
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, skill)
}

// ListMine обрабатывает GET /skills — объявления текущего пользователя.
func (h *SkillHandler) ListMine(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	skills, err := h.skills.ListUserSkills(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, skills)
}

// ListByUser обрабатывает GET /users/:id/skills.
func (h *SkillHandler) ListByUser(c *gin.Context) {
	targetID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	skills, err := h.skills.ListUserSkills(c.Request.Context(), targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, skills)
}

// Update обрабатывает PUT /skills/:id.
func (h *SkillHandler) Update(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	skillID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.UpdateSkillRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	skill, err := h.skills.UpdateSkill(c.Request.Context(), skillID, userID, service.UpdateSkillInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Level:       req.Level,
		Tags:        req.Tags,
		IsActive:    req.IsActive,
	})
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			common.RespondNotFound(c, "навык не найден")
			return
		}
		respondError(c, err)
		return
	}

	h.snapshots.RefreshAsync(watch.CollectionSkills)
	c.JSON(http.StatusOK, skill)
}

// Delete обрабатывает DELETE /skills/:id.
func (h *SkillHandler) Delete(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	skillID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.skills.DeleteSkill(c.Request.Context(), skillID, userID); err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			common.RespondNotFound(c, "навык не найден")
			return
		}
		respondError(c, err)
		return
	}

	h.snapshots.RefreshAsync(watch.CollectionSkills)
	c.Status(http.StatusNoContent)
}
