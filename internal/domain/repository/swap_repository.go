package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
)

// SwapRole определяет роль пользователя при выборке запросов.
type SwapRole string

const (
	SwapRoleSent     SwapRole = "sent"
	SwapRoleReceived SwapRole = "received"
	SwapRoleAll      SwapRole = "all"
)

type SwapRepository interface {
	Create(ctx context.Context, swap *entity.SwapRequest) error
	Update(ctx context.Context, swap *entity.SwapRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SwapRequest, error)
	// ListForUser возвращает запросы пользователя в указанной роли,
	// упорядоченные по created_at по убыванию (при равенстве — порядок вставки).
	ListForUser(ctx context.Context, userID uuid.UUID, role SwapRole) ([]*entity.SwapRequest, error)
}
