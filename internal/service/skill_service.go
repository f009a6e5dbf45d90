package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswap-backend/internal/validation"
)

// SkillRepo описывает взаимодействие сервиса с каталогом навыков.
type SkillRepo interface {
	Create(ctx context.Context, skill *models.Skill) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Skill, error)
	Update(ctx context.Context, skill *models.Skill) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Skill, error)
}

// SkillService содержит бизнес-логику каталога навыков.
type SkillService struct {
	repo SkillRepo
}

// NewSkillService создаёт сервис каталога.
func NewSkillService(repo SkillRepo) *SkillService {
	return &SkillService{repo: repo}
}

// CreateSkillInput данные нового объявления.
type CreateSkillInput struct {
	OwnerID     uuid.UUID
	Title       string
	Description string
	Category    string
	Level       string
	Direction   string
	Tags        []string
}

// CreateSkill создаёт объявление о навыке.
func (s *SkillService) CreateSkill(ctx context.Context, in CreateSkillInput) (*models.Skill, error) {
	if err := validation.ValidateLength("название навыка", in.Title, validation.MinSkillTitleLength, validation.MaxSkillTitleLength); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateLength("описание", in.Description, 0, validation.MaxSkillDescriptionLength); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if _, ok := models.ValidSkillLevels[in.Level]; !ok {
		return nil, apperror.New(apperror.ErrCodeValidation, "некорректный уровень навыка")
	}
	if _, ok := models.ValidSkillDirections[in.Direction]; !ok {
		return nil, apperror.New(apperror.ErrCodeValidation, "направление навыка должно быть offered или wanted")
	}
	if len(in.Tags) > validation.MaxTagsCount {
		return nil, apperror.New(apperror.ErrCodeValidation, "слишком много тегов")
	}

	skill := &models.Skill{
		OwnerID:     in.OwnerID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Level:       in.Level,
		Direction:   in.Direction,
		Tags:        in.Tags,
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, skill); err != nil {
		return nil, err
	}

	return skill, nil
}

// GetSkill возвращает навык по ID.
func (s *SkillService) GetSkill(ctx context.Context, id uuid.UUID) (*models.Skill, error) {
	return s.repo.GetByID(ctx, id)
}

// ListUserSkills возвращает навыки пользователя.
func (s *SkillService) ListUserSkills(ctx context.Context, ownerID uuid.UUID) ([]models.Skill, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// UpdateSkillInput редактируемые поля объявления.
type UpdateSkillInput struct {
	Title       *string
	Description *string
	Category    *string
	Level       *string
	Tags        []string
	IsActive    *bool
}

// UpdateSkill обновляет объявление. Разрешено только владельцу.
func (s *SkillService) UpdateSkill(ctx context.Context, skillID, actorID uuid.UUID, in UpdateSkillInput) (*models.Skill, error) {
	skill, err := s.repo.GetByID(ctx, skillID)
	if err != nil {
		return nil, err
	}

	if skill.OwnerID != actorID {
		return nil, apperror.ErrForbidden
	}

	if in.Title != nil {
		if err := validation.ValidateLength("название навыка", *in.Title, validation.MinSkillTitleLength, validation.MaxSkillTitleLength); err != nil {
			return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
		}
		skill.Title = *in.Title
	}
	if in.Description != nil {
		skill.Description = *in.Description
	}
	if in.Category != nil {
		skill.Category = *in.Category
	}
	if in.Level != nil {
		if _, ok := models.ValidSkillLevels[*in.Level]; !ok {
			return nil, apperror.New(apperror.ErrCodeValidation, "некорректный уровень навыка")
		}
		skill.Level = *in.Level
	}
	if in.Tags != nil {
		skill.Tags = in.Tags
	}
	if in.IsActive != nil {
		skill.IsActive = *in.IsActive
	}

	if err := s.repo.Update(ctx, skill); err != nil {
		return nil, err
	}

	return skill, nil
}

// DeleteSkill удаляет объявление. Разрешено только владельцу.
func (s *SkillService) DeleteSkill(ctx context.Context, skillID, actorID uuid.UUID) error {
	skill, err := s.repo.GetByID(ctx, skillID)
	if err != nil {
		return err
	}

	if skill.OwnerID != actorID {
		return apperror.ErrForbidden
	}

	return s.repo.Delete(ctx, skillID)
}
