package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/models"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	FindBySwapAndRater(ctx context.Context, swapID, raterID uuid.UUID) (*models.Feedback, error)
	ListByRatee(ctx context.Context, rateeID uuid.UUID) ([]models.Feedback, error)
	// AverageScore возвращает средний балл и количество оценок пользователя.
	AverageScore(ctx context.Context, rateeID uuid.UUID) (float64, int, error)
}

// RatingUpdater обновляет денормализованный рейтинг пользователя.
type RatingUpdater interface {
	UpdateRating(ctx context.Context, userID uuid.UUID, rating float64, count int) error
	IncrementTotalSwaps(ctx context.Context, userID uuid.UUID) error
}
