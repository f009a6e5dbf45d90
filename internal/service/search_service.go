package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswap-backend/internal/repository"
)

// SkillSearcher выполняет поиск по каталогу навыков.
type SkillSearcher interface {
	Search(ctx context.Context, filter repository.SkillFilter) ([]models.SkillSearchResult, error)
}

// UserBrowser возвращает публичные профили для просмотра.
type UserBrowser interface {
	ListPublic(ctx context.Context, viewerID uuid.UUID, search, location string) ([]models.User, error)
}

// SearchService объединяет поиск навыков и просмотр пользователей.
// Записи самого запрашивающего всегда исключаются из выдачи.
type SearchService struct {
	skills SkillSearcher
	users  UserBrowser
}

// NewSearchService создаёт сервис поиска.
func NewSearchService(skills SkillSearcher, users UserBrowser) *SearchService {
	return &SearchService{skills: skills, users: users}
}

// SearchSkillsInput параметры поиска по каталогу.
type SearchSkillsInput struct {
	// ViewerID — пользователь, выполняющий поиск; его записи исключаются.
	ViewerID uuid.UUID
	// Query — свободный текст; пустой запрос пропускает все записи.
	Query     string
	Category  string
	Level     string
	Location  string
	Direction string
}

// SearchSkills возвращает активные навыки, подходящие под фильтры.
// Порядок — по убыванию created_at, дополнительного ранжирования нет.
func (s *SearchService) SearchSkills(ctx context.Context, in SearchSkillsInput) ([]models.SkillSearchResult, error) {
	if in.Level != "" {
		if _, ok := models.ValidSkillLevels[in.Level]; !ok {
			return nil, apperror.New(apperror.ErrCodeValidation, "некорректный уровень навыка")
		}
	}
	if in.Direction != "" {
		if _, ok := models.ValidSkillDirections[in.Direction]; !ok {
			return nil, apperror.New(apperror.ErrCodeValidation, "направление навыка должно быть offered или wanted")
		}
	}

	filter := repository.SkillFilter{
		Query:          strings.TrimSpace(in.Query),
		Category:       in.Category,
		Level:          in.Level,
		Location:       strings.TrimSpace(in.Location),
		Direction:      in.Direction,
		ExcludeOwnerID: in.ViewerID,
	}

	results, err := s.skills.Search(ctx, filter)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось выполнить поиск")
	}
	return results, nil
}

// BrowseUsers возвращает публичные профили, кроме профиля самого viewer.
func (s *SearchService) BrowseUsers(ctx context.Context, viewerID uuid.UUID, query, location string) ([]models.User, error) {
	users, err := s.users.ListPublic(ctx, viewerID, strings.TrimSpace(query), strings.TrimSpace(location))
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить пользователей")
	}
	return users, nil
}
