package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

// respondError переводит доменную ошибку в HTTP ответ.
// Внутренние ошибки маскируются общим сообщением.
func respondError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		message := appErr.Message
		if appErr.Code == apperror.ErrCodeInternal || appErr.Code == apperror.ErrCodeDatabaseError {
			message = "внутренняя ошибка сервера"
		}
		c.JSON(appErr.HTTPStatus, gin.H{"error": message, "code": appErr.Code})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка сервера"})
}
