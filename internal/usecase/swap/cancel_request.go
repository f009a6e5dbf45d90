package swap

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/goroutine"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

type CancelRequestUseCase struct {
	swapRepo repository.SwapRepository
	notifier Notifier
}

func NewCancelRequestUseCase(swapRepo repository.SwapRepository, notifier Notifier) *CancelRequestUseCase {
	return &CancelRequestUseCase{swapRepo: swapRepo, notifier: notifier}
}

// Execute отменяет ожидающий запрос. Разрешено только инициатору.
func (uc *CancelRequestUseCase) Execute(ctx context.Context, swapID, actorID uuid.UUID) (*entity.SwapRequest, error) {
	swap, err := uc.swapRepo.FindByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if swap == nil {
		return nil, apperror.ErrSwapNotFound
	}

	if err := swap.Cancel(actorID); err != nil {
		return nil, err
	}

	if err := uc.swapRepo.Update(ctx, swap); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить запрос на обмен")
	}

	if uc.notifier != nil {
		recipientID := swap.RecipientID
		id := swap.ID
		goroutine.SafeGo(func() {
			uc.notifier.Notify(recipientID, EventSwapCancelled, map[string]any{"swap_id": id})
		})
	}

	return swap, nil
}
