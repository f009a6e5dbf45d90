package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skillswap-backend/internal/service"
)

// StatsHandler отдаёт административную статистику.
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler создаёт хэндлер.
func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// GetAdminStats обрабатывает GET /admin/stats.
// Маршрут защищён AdminOnly middleware.
func (h *StatsHandler) GetAdminStats(c *gin.Context) {
	stats, err := h.stats.GetAdminStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
