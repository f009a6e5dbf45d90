package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/dto"
	"github.com/ignatzorin/skillswap-backend/internal/goroutine"
	"github.com/ignatzorin/skillswap-backend/internal/logger"
	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswap-backend/internal/watch"
)

const snapshotRefreshTimeout = 5 * time.Second

// SnapshotUserSource отдаёт публичные профили для снимка коллекции users.
type SnapshotUserSource interface {
	ListPublic(ctx context.Context, viewerID uuid.UUID, search, location string) ([]models.User, error)
}

// SnapshotSkillSource отдаёт активные объявления для снимка коллекции skills.
type SnapshotSkillSource interface {
	ListActive(ctx context.Context) ([]models.Skill, error)
}

// SnapshotSwapSource отдаёт все запросы на обмен для снимка коллекции swaps.
type SnapshotSwapSource interface {
	ListAll(ctx context.Context) ([]models.SwapRequest, error)
}

// SnapshotService публикует полные снимки коллекций в брокер после мутаций.
// Если загрузка из хранилища не удалась, публикации нет и у подписчиков
// остаётся последний доставленный снимок.
type SnapshotService struct {
	users  SnapshotUserSource
	skills SnapshotSkillSource
	swaps  SnapshotSwapSource
	broker *watch.Broker
}

// NewSnapshotService создаёт сервис снимков.
func NewSnapshotService(users SnapshotUserSource, skills SnapshotSkillSource, swaps SnapshotSwapSource, broker *watch.Broker) *SnapshotService {
	return &SnapshotService{
		users:  users,
		skills: skills,
		swaps:  swaps,
		broker: broker,
	}
}

// Refresh перечитывает коллекцию целиком и публикует её снимок.
func (s *SnapshotService) Refresh(ctx context.Context, collection string) error {
	switch collection {
	case watch.CollectionUsers:
		users, err := s.users.ListPublic(ctx, uuid.Nil, "", "")
		if err != nil {
			return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось собрать снимок пользователей")
		}
		profiles := make([]*dto.PublicProfileResponse, len(users))
		for i := range users {
			profiles[i] = dto.NewPublicProfileResponse(&users[i])
		}
		s.broker.Publish(collection, profiles)
	case watch.CollectionSkills:
		skills, err := s.skills.ListActive(ctx)
		if err != nil {
			return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось собрать снимок навыков")
		}
		s.broker.Publish(collection, skills)
	case watch.CollectionSwaps:
		swaps, err := s.swaps.ListAll(ctx)
		if err != nil {
			return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось собрать снимок обменов")
		}
		s.broker.Publish(collection, swaps)
	default:
		return apperror.New(apperror.ErrCodeValidation, "неизвестная коллекция: "+collection)
	}
	return nil
}

// RefreshAsync публикует снимок в фоне, не блокируя обработку запроса.
func (s *SnapshotService) RefreshAsync(collections ...string) {
	if s == nil {
		return
	}
	goroutine.SafeGo(func() {
		ctx, cancel := context.WithTimeout(context.Background(), snapshotRefreshTimeout)
		defer cancel()
		for _, collection := range collections {
			if err := s.Refresh(ctx, collection); err != nil {
				logger.Log.WithError(err).Warnf("snapshot: не удалось обновить коллекцию %s", collection)
			}
		}
	})
}
