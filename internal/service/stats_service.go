package service

import (
	"context"
	"time"

	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

const (
	statsCacheTTL = 30 * time.Second
	topSkillsLimit = 5
)

// UserStatsSource отдаёт агрегаты по пользователям.
type UserStatsSource interface {
	Count(ctx context.Context) (int, error)
	AverageOfRatings(ctx context.Context) (float64, error)
}

// SwapStatsSource отдаёт агрегаты по запросам на обмен.
type SwapStatsSource interface {
	CountByStatus(ctx context.Context) (map[string]int, error)
}

// SkillStatsSource отдаёт агрегаты по каталогу навыков.
type SkillStatsSource interface {
	TopOfferedTitles(ctx context.Context, limit int) ([]models.SkillCount, error)
}

// StatsService считает сводную статистику для администраторов.
// Агрегаты вычисляются по текущему состоянию хранилища на момент запроса;
// короткий TTL кэша только сглаживает повторные обращения.
type StatsService struct {
	users  UserStatsSource
	swaps  SwapStatsSource
	skills SkillStatsSource
	cache  *CacheService
}

// NewStatsService создаёт сервис статистики.
func NewStatsService(users UserStatsSource, swaps SwapStatsSource, skills SkillStatsSource, cache *CacheService) *StatsService {
	return &StatsService{
		users:  users,
		swaps:  swaps,
		skills: skills,
		cache:  cache,
	}
}

// GetAdminStats возвращает сводку: количество пользователей, обменов по
// статусам, средний рейтинг и самые популярные предлагаемые навыки.
func (s *StatsService) GetAdminStats(ctx context.Context) (*models.AdminStats, error) {
	value, err := s.cache.GetOrSet(ctx, AdminStatsCacheKey(), statsCacheTTL, func() (interface{}, error) {
		return s.computeStats(ctx)
	})
	if err != nil {
		return nil, err
	}

	stats, ok := value.(*models.AdminStats)
	if !ok {
		return nil, apperror.New(apperror.ErrCodeInternal, "некорректное значение в кэше статистики")
	}
	return stats, nil
}

func (s *StatsService) computeStats(ctx context.Context) (*models.AdminStats, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать пользователей")
	}

	byStatus, err := s.swaps.CountByStatus(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать обмены")
	}

	totalSwaps := 0
	for _, count := range byStatus {
		totalSwaps += count
	}

	avgRating, err := s.users.AverageOfRatings(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать средний рейтинг")
	}

	topSkills, err := s.skills.TopOfferedTitles(ctx, topSkillsLimit)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить популярные навыки")
	}

	return &models.AdminStats{
		TotalUsers:    totalUsers,
		TotalSwaps:    totalSwaps,
		SwapsByStatus: byStatus,
		AverageRating: avgRating,
		TopSkills:     topSkills,
	}, nil
}
