package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
)

type SkillRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Skill, error)
	// CountActiveOffered возвращает количество активных предлагаемых навыков пользователя.
	CountActiveOffered(ctx context.Context, ownerID uuid.UUID) (int, error)
}
