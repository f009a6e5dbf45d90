package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

type mockSkillRepo struct {
	mock.Mock
}

func (m *mockSkillRepo) Create(ctx context.Context, skill *models.Skill) error {
	args := m.Called(ctx, skill)
	return args.Error(0)
}

func (m *mockSkillRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Skill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Skill), args.Error(1)
}

func (m *mockSkillRepo) Update(ctx context.Context, skill *models.Skill) error {
	args := m.Called(ctx, skill)
	return args.Error(0)
}

func (m *mockSkillRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockSkillRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Skill, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Skill), args.Error(1)
}

func TestSkillService_CreateSkill(t *testing.T) {
	repo := new(mockSkillRepo)
	svc := NewSkillService(repo)
	ctx := context.Background()

	ownerID := uuid.New()
	repo.On("Create", ctx, mock.MatchedBy(func(s *models.Skill) bool {
		return s.OwnerID == ownerID && s.Title == "Guitar Playing" && s.IsActive
	})).Return(nil)

	skill, err := svc.CreateSkill(ctx, CreateSkillInput{
		OwnerID:   ownerID,
		Title:     "Guitar Playing",
		Category:  "Music",
		Level:     models.SkillLevelAdvanced,
		Direction: models.SkillDirectionOffered,
		Tags:      []string{"acoustic"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "Guitar Playing", skill.Title)
	assert.True(t, skill.IsActive)
	repo.AssertExpectations(t)
}

func TestSkillService_CreateSkill_InvalidLevel(t *testing.T) {
	repo := new(mockSkillRepo)
	svc := NewSkillService(repo)

	_, err := svc.CreateSkill(context.Background(), CreateSkillInput{
		OwnerID:   uuid.New(),
		Title:     "Guitar Playing",
		Category:  "Music",
		Level:     "Guru",
		Direction: models.SkillDirectionOffered,
	})

	assert.True(t, apperror.IsValidation(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSkillService_CreateSkill_InvalidDirection(t *testing.T) {
	repo := new(mockSkillRepo)
	svc := NewSkillService(repo)

	_, err := svc.CreateSkill(context.Background(), CreateSkillInput{
		OwnerID:   uuid.New(),
		Title:     "Guitar Playing",
		Category:  "Music",
		Level:     models.SkillLevelAdvanced,
		Direction: "both",
	})

	assert.True(t, apperror.IsValidation(err))
}

func TestSkillService_UpdateSkill_OnlyOwner(t *testing.T) {
	repo := new(mockSkillRepo)
	svc := NewSkillService(repo)
	ctx := context.Background()

	skillID := uuid.New()
	ownerID := uuid.New()
	stranger := uuid.New()
	repo.On("GetByID", ctx, skillID).Return(&models.Skill{ID: skillID, OwnerID: ownerID, Title: "Yoga Instruction"}, nil)

	_, err := svc.UpdateSkill(ctx, skillID, stranger, UpdateSkillInput{})

	assert.True(t, apperror.IsForbidden(err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSkillService_UpdateSkill_PartialFields(t *testing.T) {
	repo := new(mockSkillRepo)
	svc := NewSkillService(repo)
	ctx := context.Background()

	skillID := uuid.New()
	ownerID := uuid.New()
	repo.On("GetByID", ctx, skillID).Return(&models.Skill{
		ID:        skillID,
		OwnerID:   ownerID,
		Title:     "Yoga Instruction",
		Category:  "Fitness",
		Level:     models.SkillLevelIntermediate,
		Direction: models.SkillDirectionOffered,
		IsActive:  true,
	}, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	newLevel := models.SkillLevelAdvanced
	inactive := false
	skill, err := svc.UpdateSkill(ctx, skillID, ownerID, UpdateSkillInput{
		Level:    &newLevel,
		IsActive: &inactive,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.SkillLevelAdvanced, skill.Level)
	assert.False(t, skill.IsActive)
	// Нетронутые поля сохраняются
	assert.Equal(t, "Yoga Instruction", skill.Title)
	repo.AssertExpectations(t)
}

func TestSkillService_DeleteSkill_OnlyOwner(t *testing.T) {
	repo := new(mockSkillRepo)
	svc := NewSkillService(repo)
	ctx := context.Background()

	skillID := uuid.New()
	ownerID := uuid.New()
	repo.On("GetByID", ctx, skillID).Return(&models.Skill{ID: skillID, OwnerID: ownerID}, nil)
	repo.On("Delete", ctx, skillID).Return(nil)

	assert.True(t, apperror.IsForbidden(svc.DeleteSkill(ctx, skillID, uuid.New())))
	assert.NoError(t, svc.DeleteSkill(ctx, skillID, ownerID))
}
