package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

type SkillRepositoryAdapter struct {
	db *sqlx.DB
}

func NewSkillRepositoryAdapter(db *sqlx.DB) *SkillRepositoryAdapter {
	return &SkillRepositoryAdapter{db: db}
}

type skillRow struct {
	ID          uuid.UUID      `db:"id"`
	OwnerID     uuid.UUID      `db:"owner_id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Category    string         `db:"category"`
	Level       string         `db:"level"`
	Direction   string         `db:"direction"`
	Tags        pq.StringArray `db:"tags"`
	IsActive    bool           `db:"is_active"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (r skillRow) toEntity() *entity.Skill {
	return &entity.Skill{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Level:       valueobject.SkillLevel(r.Level),
		Direction:   valueobject.SkillDirection(r.Direction),
		Tags:        []string(r.Tags),
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
	}
}

func (r *SkillRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Skill, error) {
	var row skillRow
	query := `
		SELECT id, owner_id, title, description, category, level, direction, tags, is_active, created_at
		FROM skills WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.ErrSkillNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить навык")
	}
	return row.toEntity(), nil
}

func (r *SkillRepositoryAdapter) CountActiveOffered(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM skills
		WHERE owner_id = $1 AND direction = 'offered' AND is_active = TRUE
	`
	if err := r.db.GetContext(ctx, &count, query, ownerID); err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать навыки")
	}
	return count, nil
}
