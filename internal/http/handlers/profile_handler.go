package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skillswap-backend/internal/dto"
	"github.com/ignatzorin/skillswap-backend/internal/http/handlers/common"
	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/repository"
	"github.com/ignatzorin/skillswap-backend/internal/service"
	"github.com/ignatzorin/skillswap-backend/internal/validation"
	"github.com/ignatzorin/skillswap-backend/internal/watch"
)

// ProfileHandler отвечает за работу с профилем.
type ProfileHandler struct {
	users     *repository.UserRepository
	snapshots *service.SnapshotService
}

// NewProfileHandler создаёт экземпляр.
func NewProfileHandler(users *repository.UserRepository, snapshots *service.SnapshotService) *ProfileHandler {
	return &ProfileHandler{users: users, snapshots: snapshots}
}

// GetMe возвращает профиль текущего пользователя.
func (h *ProfileHandler) GetMe(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			common.RespondNotFound(c, "профиль не найден")
			return
		}
		common.RespondInternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateMe обновляет профиль текущего пользователя.
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.UpdateProfileRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	// Валидация отображаемого имени
	if req.DisplayName != nil {
		if err := validation.ValidateDisplayName(*req.DisplayName); err != nil {
			common.RespondBadRequest(c, err.Error())
			return
		}
	}

	// Валидация местоположения
	if err := validation.ValidateLocation(req.Location); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	// Валидация окон доступности
	for _, slot := range req.Availability {
		if _, ok := models.ValidAvailability[slot]; !ok {
			common.RespondBadRequest(c, fmt.Sprintf("недопустимое окно доступности: %s", slot))
			return
		}
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			common.RespondNotFound(c, "профиль не найден")
			return
		}
		common.RespondInternalError(c, "")
		return
	}

	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.Location != nil {
		user.Location = req.Location
	}
	if req.IsPublic != nil {
		user.IsPublic = *req.IsPublic
	}
	if req.Availability != nil {
		user.Availability = req.Availability
	}

	if err := h.users.UpdateProfile(c.Request.Context(), user); err != nil {
		common.RespondInternalError(c, "не удалось обновить профиль")
		return
	}

	h.snapshots.RefreshAsync(watch.CollectionUsers)
	c.JSON(http.StatusOK, user)
}

// GetUser возвращает публичный профиль по идентификатору.
func (h *ProfileHandler) GetUser(c *gin.Context) {
	viewerID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	targetID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), targetID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			common.RespondNotFound(c, "пользователь не найден")
			return
		}
		common.RespondInternalError(c, "")
		return
	}

	if targetID == viewerID {
		c.JSON(http.StatusOK, user)
		return
	}

	// Скрытые профили не видны другим участникам
	if !user.IsPublic {
		common.RespondNotFound(c, "пользователь не найден")
		return
	}

	c.JSON(http.StatusOK, dto.NewPublicProfileResponse(user))
}
