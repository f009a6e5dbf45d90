package swap

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

type ListRequestsUseCase struct {
	swapRepo repository.SwapRepository
}

func NewListRequestsUseCase(swapRepo repository.SwapRepository) *ListRequestsUseCase {
	return &ListRequestsUseCase{swapRepo: swapRepo}
}

// Execute возвращает запросы пользователя: отправленные, полученные или все,
// от новых к старым.
func (uc *ListRequestsUseCase) Execute(ctx context.Context, userID uuid.UUID, role repository.SwapRole) ([]*entity.SwapRequest, error) {
	switch role {
	case repository.SwapRoleSent, repository.SwapRoleReceived, repository.SwapRoleAll:
	default:
		return nil, apperror.New(apperror.ErrCodeValidation, "роль должна быть sent, received или all")
	}

	return uc.swapRepo.ListForUser(ctx, userID, role)
}
