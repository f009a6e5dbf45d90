package swap

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/goroutine"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

// Decision решение получателя по запросу.
type Decision string

const (
	DecisionAccept  Decision = "accept"
	DecisionDecline Decision = "decline"
)

type RespondUseCase struct {
	swapRepo repository.SwapRepository
	notifier Notifier
}

func NewRespondUseCase(swapRepo repository.SwapRepository, notifier Notifier) *RespondUseCase {
	return &RespondUseCase{swapRepo: swapRepo, notifier: notifier}
}

// Execute применяет решение accept/decline. Разрешено только получателю запроса.
func (uc *RespondUseCase) Execute(ctx context.Context, swapID, actorID uuid.UUID, decision Decision) (*entity.SwapRequest, error) {
	swap, err := uc.swapRepo.FindByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if swap == nil {
		return nil, apperror.ErrSwapNotFound
	}

	var event string
	switch decision {
	case DecisionAccept:
		if err := swap.Accept(actorID); err != nil {
			return nil, err
		}
		event = EventSwapAccepted
	case DecisionDecline:
		if err := swap.Decline(actorID); err != nil {
			return nil, err
		}
		event = EventSwapDeclined
	default:
		return nil, apperror.New(apperror.ErrCodeValidation, "решение должно быть accept или decline")
	}

	if err := uc.swapRepo.Update(ctx, swap); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить запрос на обмен")
	}

	uc.notify(swap.RequesterID, event, swap.ID)

	return swap, nil
}

func (uc *RespondUseCase) notify(userID uuid.UUID, event string, swapID uuid.UUID) {
	if uc.notifier == nil {
		return
	}
	goroutine.SafeGo(func() {
		uc.notifier.Notify(userID, event, map[string]any{"swap_id": swapID})
	})
}
