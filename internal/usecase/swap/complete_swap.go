package swap

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/goroutine"
	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

type CompleteSwapInput struct {
	SwapID  uuid.UUID
	ActorID uuid.UUID
	Score   int
	Comment *string
}

type CompleteSwapUseCase struct {
	swapRepo     repository.SwapRepository
	feedbackRepo repository.FeedbackRepository
	users        repository.RatingUpdater
	notifier     Notifier
}

func NewCompleteSwapUseCase(swapRepo repository.SwapRepository, feedbackRepo repository.FeedbackRepository, users repository.RatingUpdater, notifier Notifier) *CompleteSwapUseCase {
	return &CompleteSwapUseCase{
		swapRepo:     swapRepo,
		feedbackRepo: feedbackRepo,
		users:        users,
		notifier:     notifier,
	}
}

// Execute завершает принятый обмен: записывает оценку контрагента,
// переводит запрос в completed и пересчитывает рейтинг оцениваемого
// как среднее всех его оценок.
func (uc *CompleteSwapUseCase) Execute(ctx context.Context, input CompleteSwapInput) (*entity.SwapRequest, error) {
	if input.Score < 1 || input.Score > 5 {
		return nil, apperror.New(apperror.ErrCodeValidation, "оценка должна быть от 1 до 5")
	}

	swap, err := uc.swapRepo.FindByID(ctx, input.SwapID)
	if err != nil {
		return nil, err
	}
	if swap == nil {
		return nil, apperror.ErrSwapNotFound
	}

	rateeID, err := swap.Counterpart(input.ActorID)
	if err != nil {
		return nil, err
	}

	existing, err := uc.feedbackRepo.FindBySwapAndRater(ctx, swap.ID, input.ActorID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.New(apperror.ErrCodeConflict, "вы уже оценили этот обмен")
	}

	// Статус проверяется до записи отзыва, чтобы не оставить частичное состояние.
	if err := swap.Complete(input.ActorID); err != nil {
		return nil, err
	}

	feedback := &models.Feedback{
		SwapID:  swap.ID,
		RaterID: input.ActorID,
		RateeID: rateeID,
		Score:   input.Score,
		Comment: input.Comment,
	}

	if err := uc.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить оценку")
	}

	if err := uc.swapRepo.Update(ctx, swap); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить запрос на обмен")
	}

	if err := uc.recalculateRating(ctx, rateeID); err != nil {
		return nil, err
	}

	for _, participant := range []uuid.UUID{swap.RequesterID, swap.RecipientID} {
		if err := uc.users.IncrementTotalSwaps(ctx, participant); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить счётчик обменов")
		}
	}

	if uc.notifier != nil {
		id := swap.ID
		goroutine.SafeGo(func() {
			uc.notifier.Notify(rateeID, EventSwapCompleted, map[string]any{"swap_id": id})
		})
	}

	return swap, nil
}

func (uc *CompleteSwapUseCase) recalculateRating(ctx context.Context, rateeID uuid.UUID) error {
	avg, count, err := uc.feedbackRepo.AverageScore(ctx, rateeID)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось пересчитать рейтинг")
	}
	if err := uc.users.UpdateRating(ctx, rateeID, avg, count); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить рейтинг")
	}
	return nil
}
