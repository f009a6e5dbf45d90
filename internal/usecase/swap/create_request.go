package swap

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/goroutine"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

// Notifier отправляет уведомление получателю. Доставка fire-and-forget:
// сбой уведомления не должен приводить к ошибке основной операции.
type Notifier interface {
	Notify(userID uuid.UUID, event string, data any)
}

// События жизненного цикла обмена.
const (
	EventSwapRequested = "swap.requested"
	EventSwapAccepted  = "swap.accepted"
	EventSwapDeclined  = "swap.declined"
	EventSwapCancelled = "swap.cancelled"
	EventSwapCompleted = "swap.completed"
)

type CreateRequestInput struct {
	RequesterID      uuid.UUID
	RecipientID      uuid.UUID
	OfferedSkillID   uuid.UUID
	RequestedSkillID uuid.UUID
	Message          *string
}

type CreateRequestUseCase struct {
	swapRepo  repository.SwapRepository
	skillRepo repository.SkillRepository
	notifier  Notifier
}

func NewCreateRequestUseCase(swapRepo repository.SwapRepository, skillRepo repository.SkillRepository, notifier Notifier) *CreateRequestUseCase {
	return &CreateRequestUseCase{
		swapRepo:  swapRepo,
		skillRepo: skillRepo,
		notifier:  notifier,
	}
}

func (uc *CreateRequestUseCase) Execute(ctx context.Context, input CreateRequestInput) (*entity.SwapRequest, error) {
	if input.RequesterID == input.RecipientID {
		return nil, apperror.ErrSelfSwap
	}

	offered, err := uc.skillRepo.FindByID(ctx, input.OfferedSkillID)
	if err != nil {
		return nil, err
	}
	if offered == nil || !offered.IsOwnedBy(input.RequesterID) {
		return nil, apperror.ErrInvalidSkillOwnership
	}

	requested, err := uc.skillRepo.FindByID(ctx, input.RequestedSkillID)
	if err != nil {
		return nil, err
	}
	if requested == nil || !requested.IsOwnedBy(input.RecipientID) {
		return nil, apperror.ErrInvalidSkillOwnership
	}

	activeOffered, err := uc.skillRepo.CountActiveOffered(ctx, input.RequesterID)
	if err != nil {
		return nil, err
	}
	if activeOffered == 0 {
		return nil, apperror.ErrNoOfferedSkills
	}

	swap, err := entity.NewSwapRequest(
		input.RequesterID,
		input.RecipientID,
		input.OfferedSkillID,
		input.RequestedSkillID,
		input.Message,
	)
	if err != nil {
		return nil, err
	}

	if err := uc.swapRepo.Create(ctx, swap); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать запрос на обмен")
	}

	if uc.notifier != nil {
		recipientID := swap.RecipientID
		swapID := swap.ID
		goroutine.SafeGo(func() {
			uc.notifier.Notify(recipientID, EventSwapRequested, map[string]any{
				"swap_id":      swapID,
				"requester_id": input.RequesterID,
			})
		})
	}

	return swap, nil
}
