package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

type Skill struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description string
	Category    string
	Level       valueobject.SkillLevel
	Direction   valueobject.SkillDirection
	Tags        []string
	IsActive    bool
	CreatedAt   time.Time
}

func NewSkill(ownerID uuid.UUID, title, description, category string, level valueobject.SkillLevel, direction valueobject.SkillDirection, tags []string) (*Skill, error) {
	if title == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "название навыка обязательно")
	}
	if !level.IsValid() {
		return nil, apperror.New(apperror.ErrCodeValidation, "некорректный уровень навыка")
	}
	if !direction.IsValid() {
		return nil, apperror.New(apperror.ErrCodeValidation, "направление навыка должно быть offered или wanted")
	}

	if tags == nil {
		tags = []string{}
	}

	return &Skill{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Category:    category,
		Level:       level,
		Direction:   direction,
		Tags:        tags,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}, nil
}

func (s *Skill) IsOwnedBy(userID uuid.UUID) bool {
	return s.OwnerID == userID
}

func (s *Skill) IsOffered() bool {
	return s.Direction == valueobject.SkillDirectionOffered
}
