package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skillswap-backend/internal/http/handlers/common"
	"github.com/ignatzorin/skillswap-backend/internal/service"
	"github.com/ignatzorin/skillswap-backend/internal/watch"
)

// SeedHandler обрабатывает запросы на генерацию демонстрационных данных.
// Доступен только в development окружении.
type SeedHandler struct {
	seedService *service.SeedService
	snapshots   *service.SnapshotService
}

// NewSeedHandler создаёт новый seed handler.
func NewSeedHandler(seedService *service.SeedService, snapshots *service.SnapshotService) *SeedHandler {
	return &SeedHandler{seedService: seedService, snapshots: snapshots}
}

// SeedRequest представляет запрос на генерацию данных.
type SeedRequest struct {
	ExtraUsers int `json:"extra_users" form:"extra_users"`
}

// Seed генерирует демо-профили и навыки.
// POST /api/seed
func (h *SeedHandler) Seed(c *gin.Context) {
	var req SeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.ExtraUsers = common.ParseIntQuery(c, "extra_users", 0)
	}

	if req.ExtraUsers < 0 {
		req.ExtraUsers = 0
	}
	if req.ExtraUsers > 500 {
		req.ExtraUsers = 500
	}

	if err := h.seedService.SeedData(c.Request.Context(), req.ExtraUsers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "не удалось сгенерировать данные",
			"details": err.Error(),
		})
		return
	}

	h.snapshots.RefreshAsync(watch.CollectionUsers, watch.CollectionSkills, watch.CollectionSwaps)
	c.JSON(http.StatusOK, gin.H{
		"message":     "демо-данные успешно созданы",
		"extra_users": req.ExtraUsers,
	})
}
