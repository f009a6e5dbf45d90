package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skillswap-backend/internal/dto"
	"github.com/ignatzorin/skillswap-backend/internal/http/handlers/common"
	"github.com/ignatzorin/skillswap-backend/internal/service"
)

// BrowseHandler предоставляет поиск навыков и просмотр участников.
type BrowseHandler struct {
	search *service.SearchService
}

// NewBrowseHandler создаёт хэндлер.
func NewBrowseHandler(search *service.SearchService) *BrowseHandler {
	return &BrowseHandler{search: search}
}

// SearchSkills обрабатывает GET /browse/skills.
// Фильтры: q (подстрока в названии, описании и тегах), category, level,
// location, direction. Пустые фильтры пропускают всё, условия складываются по И.
func (h *BrowseHandler) SearchSkills(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	results, err := h.search.SearchSkills(c.Request.Context(), service.SearchSkillsInput{
		ViewerID:  userID,
		Query:     c.Query("q"),
		Category:  c.Query("category"),
		Level:     c.Query("level"),
		Location:  c.Query("location"),
		Direction: c.Query("direction"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// BrowseUsers обрабатывает GET /browse/users.
func (h *BrowseHandler) BrowseUsers(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	users, err := h.search.BrowseUsers(c.Request.Context(), userID, c.Query("q"), c.Query("location"))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]*dto.PublicProfileResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewPublicProfileResponse(&users[i]))
	}

	c.JSON(http.StatusOK, out)
}
