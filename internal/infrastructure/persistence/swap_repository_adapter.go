package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

type SwapRepositoryAdapter struct {
	db *sqlx.DB
}

func NewSwapRepositoryAdapter(db *sqlx.DB) *SwapRepositoryAdapter {
	return &SwapRepositoryAdapter{db: db}
}

type swapRow struct {
	ID               uuid.UUID `db:"id"`
	RequesterID      uuid.UUID `db:"requester_id"`
	RecipientID      uuid.UUID `db:"recipient_id"`
	OfferedSkillID   uuid.UUID `db:"offered_skill_id"`
	RequestedSkillID uuid.UUID `db:"requested_skill_id"`
	Message          *string   `db:"message"`
	Status           string    `db:"status"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

func (r swapRow) toEntity() *entity.SwapRequest {
	return &entity.SwapRequest{
		ID:               r.ID,
		RequesterID:      r.RequesterID,
		RecipientID:      r.RecipientID,
		OfferedSkillID:   r.OfferedSkillID,
		RequestedSkillID: r.RequestedSkillID,
		Message:          r.Message,
		Status:           valueobject.SwapStatus(r.Status),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func toSwapEntities(rows []swapRow) []*entity.SwapRequest {
	result := make([]*entity.SwapRequest, len(rows))
	for i, row := range rows {
		result[i] = row.toEntity()
	}
	return result
}

func (r *SwapRepositoryAdapter) Create(ctx context.Context, swap *entity.SwapRequest) error {
	query := `
		INSERT INTO swaps (id, requester_id, recipient_id, offered_skill_id, requested_skill_id, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		swap.ID, swap.RequesterID, swap.RecipientID, swap.OfferedSkillID,
		swap.RequestedSkillID, swap.Message, string(swap.Status),
		swap.CreatedAt, swap.UpdatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать запрос на обмен")
	}
	return nil
}

func (r *SwapRepositoryAdapter) Update(ctx context.Context, swap *entity.SwapRequest) error {
	// Запись заменяется целиком: последняя запись побеждает,
	// токена оптимистичной блокировки в этой схеме нет.
	query := `
		UPDATE swaps SET message = $2, status = $3, updated_at = $4
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		swap.ID, swap.Message, string(swap.Status), swap.UpdatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить запрос на обмен")
	}
	return nil
}

func (r *SwapRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.SwapRequest, error) {
	var row swapRow
	query := `
		SELECT id, requester_id, recipient_id, offered_skill_id, requested_skill_id, message, status, created_at, updated_at
		FROM swaps WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.ErrSwapNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить запрос на обмен")
	}
	return row.toEntity(), nil
}

func (r *SwapRepositoryAdapter) ListForUser(ctx context.Context, userID uuid.UUID, role repository.SwapRole) ([]*entity.SwapRequest, error) {
	var condition string
	switch role {
	case repository.SwapRoleSent:
		condition = "requester_id = $1"
	case repository.SwapRoleReceived:
		condition = "recipient_id = $1"
	default:
		condition = "(requester_id = $1 OR recipient_id = $1)"
	}

	var rows []swapRow
	// Вторичная сортировка по порядку вставки держит результат стабильным
	// при одинаковых created_at.
	query := `
		SELECT id, requester_id, recipient_id, offered_skill_id, requested_skill_id, message, status, created_at, updated_at
		FROM swaps WHERE ` + condition + ` ORDER BY created_at DESC, seq ASC
	`
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить запросы на обмен")
	}
	return toSwapEntities(rows), nil
}

// ListAll возвращает все запросы на обмен в сериализуемом виде для снимка коллекции.
func (r *SwapRepositoryAdapter) ListAll(ctx context.Context) ([]models.SwapRequest, error) {
	var rows []swapRow
	query := `
		SELECT id, requester_id, recipient_id, offered_skill_id, requested_skill_id, message, status, created_at, updated_at
		FROM swaps ORDER BY created_at DESC, seq ASC
	`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить список обменов")
	}

	result := make([]models.SwapRequest, len(rows))
	for i, row := range rows {
		result[i] = models.SwapRequest{
			ID:               row.ID,
			RequesterID:      row.RequesterID,
			RecipientID:      row.RecipientID,
			OfferedSkillID:   row.OfferedSkillID,
			RequestedSkillID: row.RequestedSkillID,
			Message:          row.Message,
			Status:           row.Status,
			CreatedAt:        row.CreatedAt,
			UpdatedAt:        row.UpdatedAt,
		}
	}
	return result, nil
}

// CountByStatus возвращает распределение запросов по статусам (для статистики).
func (r *SwapRepositoryAdapter) CountByStatus(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	query := `SELECT status, COUNT(*) AS count FROM swaps GROUP BY status`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить статистику обменов")
	}

	result := make(map[string]int, len(rows))
	for _, row := range rows {
		result[row.Status] = row.Count
	}
	return result, nil
}
