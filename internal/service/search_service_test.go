package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswap-backend/internal/repository"
)

type mockSkillSearcher struct {
	mock.Mock
}

func (m *mockSkillSearcher) Search(ctx context.Context, filter repository.SkillFilter) ([]models.SkillSearchResult, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SkillSearchResult), args.Error(1)
}

type mockUserBrowser struct {
	mock.Mock
}

func (m *mockUserBrowser) ListPublic(ctx context.Context, viewerID uuid.UUID, search, location string) ([]models.User, error) {
	args := m.Called(ctx, viewerID, search, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func TestSearchService_SearchSkills_PassesFilters(t *testing.T) {
	skills := new(mockSkillSearcher)
	users := new(mockUserBrowser)
	svc := NewSearchService(skills, users)
	ctx := context.Background()

	viewerID := uuid.New()
	expectedFilter := repository.SkillFilter{
		Query:          "guitar",
		Category:       "Music",
		Level:          models.SkillLevelAdvanced,
		Location:       "Portland",
		ExcludeOwnerID: viewerID,
	}
	expected := []models.SkillSearchResult{
		{Skill: models.Skill{ID: uuid.New(), Title: "Guitar Playing"}, OwnerName: "Sarah Chen"},
	}
	skills.On("Search", ctx, expectedFilter).Return(expected, nil)

	results, err := svc.SearchSkills(ctx, SearchSkillsInput{
		ViewerID: viewerID,
		Query:    "  guitar  ",
		Category: "Music",
		Level:    models.SkillLevelAdvanced,
		Location: " Portland ",
	})

	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "Guitar Playing", results[0].Title)
	skills.AssertExpectations(t)
}

func TestSearchService_SearchSkills_EmptyFiltersMatchAll(t *testing.T) {
	skills := new(mockSkillSearcher)
	users := new(mockUserBrowser)
	svc := NewSearchService(skills, users)
	ctx := context.Background()

	viewerID := uuid.New()
	skills.On("Search", ctx, repository.SkillFilter{ExcludeOwnerID: viewerID}).
		Return([]models.SkillSearchResult{}, nil)

	results, err := svc.SearchSkills(ctx, SearchSkillsInput{ViewerID: viewerID})

	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchService_SearchSkills_InvalidLevel(t *testing.T) {
	skills := new(mockSkillSearcher)
	users := new(mockUserBrowser)
	svc := NewSearchService(skills, users)
	ctx := context.Background()

	_, err := svc.SearchSkills(ctx, SearchSkillsInput{
		ViewerID: uuid.New(),
		Level:    "Guru",
	})

	assert.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	skills.AssertNotCalled(t, "Search")
}

func TestSearchService_SearchSkills_InvalidDirection(t *testing.T) {
	skills := new(mockSkillSearcher)
	users := new(mockUserBrowser)
	svc := NewSearchService(skills, users)
	ctx := context.Background()

	_, err := svc.SearchSkills(ctx, SearchSkillsInput{
		ViewerID:  uuid.New(),
		Direction: "both",
	})

	assert.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestSearchService_BrowseUsers_TrimsQuery(t *testing.T) {
	skills := new(mockSkillSearcher)
	users := new(mockUserBrowser)
	svc := NewSearchService(skills, users)
	ctx := context.Background()

	viewerID := uuid.New()
	expected := []models.User{{ID: uuid.New(), DisplayName: "Alex Rodriguez"}}
	users.On("ListPublic", ctx, viewerID, "alex", "Austin").Return(expected, nil)

	result, err := svc.BrowseUsers(ctx, viewerID, " alex ", " Austin ")

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, "Alex Rodriguez", result[0].DisplayName)
	users.AssertExpectations(t)
}
