package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ignatzorin/skillswap-backend/internal/goroutine"
	"github.com/ignatzorin/skillswap-backend/internal/logger"
	"github.com/ignatzorin/skillswap-backend/internal/service"
	"github.com/ignatzorin/skillswap-backend/internal/watch"
)

// WatchHandler стримит снимки коллекций по WebSocket.
type WatchHandler struct {
	broker       *watch.Broker
	snapshots    *service.SnapshotService
	tokenManager *service.TokenManager
	upgrader     websocket.Upgrader
}

// NewWatchHandler создаёт хэндлер подписок на снимки.
func NewWatchHandler(broker *watch.Broker, snapshots *service.SnapshotService, tokens *service.TokenManager) *WatchHandler {
	return &WatchHandler{
		broker:       broker,
		snapshots:    snapshots,
		tokenManager: tokens,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handle обслуживает GET /api/watch/:collection?token=...
// Сразу после подписки клиенту отправляется актуальный снимок,
// дальше приходят снимки после каждой успешной мутации.
func (h *WatchHandler) Handle(c *gin.Context) {
	collection := c.Param("collection")
	switch collection {
	case watch.CollectionUsers, watch.CollectionSkills, watch.CollectionSwaps:
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "неизвестная коллекция: " + collection})
		return
	}

	rawToken := c.Query("token")
	if rawToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access токен обязателен"})
		return
	}

	userID, _, err := h.tokenManager.ParseAccess(rawToken)
	if err != nil || userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "невалидный access токен"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sub := h.broker.Subscribe(collection)

	// Первый снимок публикуется сразу, чтобы клиенту не ждать мутации.
	h.snapshots.RefreshAsync(collection)

	// Читаем входящие сообщения только ради детекта закрытия соединения.
	goroutine.SafeGo(func() {
		defer sub.Cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	for snap := range sub.C() {
		if err := conn.WriteJSON(snap); err != nil {
			logger.Log.WithError(err).Debug("watch: соединение закрыто при отправке снимка")
			break
		}
	}

	sub.Cancel()
	if err := conn.Close(); err != nil {
		logger.Log.WithError(err).Debug("watch: ошибка закрытия соединения")
	}
}
