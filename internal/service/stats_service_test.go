package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/skillswap-backend/internal/models"
)

type mockUserStats struct {
	mock.Mock
}

func (m *mockUserStats) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockUserStats) AverageOfRatings(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

type mockSwapStats struct {
	mock.Mock
}

func (m *mockSwapStats) CountByStatus(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

type mockSkillStats struct {
	mock.Mock
}

func (m *mockSkillStats) TopOfferedTitles(ctx context.Context, limit int) ([]models.SkillCount, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SkillCount), args.Error(1)
}

func TestStatsService_GetAdminStats_Aggregates(t *testing.T) {
	users := new(mockUserStats)
	swaps := new(mockSwapStats)
	skills := new(mockSkillStats)
	svc := NewStatsService(users, swaps, skills, NewCacheService())
	ctx := context.Background()

	users.On("Count", ctx).Return(42, nil)
	users.On("AverageOfRatings", ctx).Return(4.25, nil)
	swaps.On("CountByStatus", ctx).Return(map[string]int{
		models.SwapStatusPending:   3,
		models.SwapStatusAccepted:  2,
		models.SwapStatusCompleted: 5,
	}, nil)
	skills.On("TopOfferedTitles", ctx, topSkillsLimit).Return([]models.SkillCount{
		{Skill: "Guitar Playing", Count: 7},
		{Skill: "React Development", Count: 4},
	}, nil)

	stats, err := svc.GetAdminStats(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 42, stats.TotalUsers)
	assert.Equal(t, 10, stats.TotalSwaps)
	assert.Equal(t, 4.25, stats.AverageRating)
	assert.Equal(t, 3, stats.SwapsByStatus[models.SwapStatusPending])
	assert.Len(t, stats.TopSkills, 2)
	assert.Equal(t, "Guitar Playing", stats.TopSkills[0].Skill)
}

func TestStatsService_GetAdminStats_UsesCache(t *testing.T) {
	users := new(mockUserStats)
	swaps := new(mockSwapStats)
	skills := new(mockSkillStats)
	svc := NewStatsService(users, swaps, skills, NewCacheService())
	ctx := context.Background()

	users.On("Count", ctx).Return(1, nil).Once()
	users.On("AverageOfRatings", ctx).Return(0.0, nil).Once()
	swaps.On("CountByStatus", ctx).Return(map[string]int{}, nil).Once()
	skills.On("TopOfferedTitles", ctx, topSkillsLimit).Return([]models.SkillCount{}, nil).Once()

	first, err := svc.GetAdminStats(ctx)
	assert.NoError(t, err)

	// Повторный вызов в пределах TTL отдаёт кэш, репозитории не трогаются
	second, err := svc.GetAdminStats(ctx)
	assert.NoError(t, err)
	assert.Same(t, first, second)

	users.AssertExpectations(t)
	swaps.AssertExpectations(t)
	skills.AssertExpectations(t)
}

func TestStatsService_GetAdminStats_EmptyStore(t *testing.T) {
	users := new(mockUserStats)
	swaps := new(mockSwapStats)
	skills := new(mockSkillStats)
	svc := NewStatsService(users, swaps, skills, NewCacheService())
	ctx := context.Background()

	users.On("Count", ctx).Return(0, nil)
	users.On("AverageOfRatings", ctx).Return(0.0, nil)
	swaps.On("CountByStatus", ctx).Return(map[string]int{}, nil)
	skills.On("TopOfferedTitles", ctx, topSkillsLimit).Return([]models.SkillCount{}, nil)

	stats, err := svc.GetAdminStats(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 0, stats.TotalUsers)
	assert.Equal(t, 0, stats.TotalSwaps)
	assert.Equal(t, 0.0, stats.AverageRating)
	assert.Empty(t, stats.TopSkills)
}

func TestStatsService_GetAdminStats_RepoError(t *testing.T) {
	users := new(mockUserStats)
	swaps := new(mockSwapStats)
	skills := new(mockSkillStats)
	svc := NewStatsService(users, swaps, skills, NewCacheService())
	ctx := context.Background()

	users.On("Count", ctx).Return(0, errors.New("connection refused"))

	_, err := svc.GetAdminStats(ctx)

	assert.Error(t, err)
	swaps.AssertNotCalled(t, "CountByStatus")
}
