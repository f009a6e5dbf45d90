package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/repository/common"
)

// ErrSkillNotFound возвращается, когда навык не найден.
var ErrSkillNotFound = errors.New("skill not found")

// SkillFilter описывает параметры поиска по каталогу навыков.
// Все активные фильтры объединяются через AND.
type SkillFilter struct {
	// Query — регистронезависимая подстрока по названию, описанию и тегам.
	Query string
	// Category и Level — точное совпадение, если заданы.
	Category string
	Level    string
	// Location — регистронезависимая подстрока по локации владельца.
	Location string
	// Direction — offered или wanted, если задано.
	Direction string
	// ExcludeOwnerID исключает записи этого владельца (self-exclusion).
	ExcludeOwnerID uuid.UUID
}

// SkillRepository отвечает за работу с таблицей skills.
type SkillRepository struct {
	db *sqlx.DB
}

// NewSkillRepository создаёт экземпляр репозитория.
func NewSkillRepository(db *sqlx.DB) *SkillRepository {
	return &SkillRepository{db: db}
}

type skillRow struct {
	models.Skill
	Tags pq.StringArray `db:"tags"`
}

func (r skillRow) toModel() models.Skill {
	skill := r.Skill
	skill.Tags = []string(r.Tags)
	return skill
}

// Create сохраняет новое объявление о навыке.
func (r *SkillRepository) Create(ctx context.Context, skill *models.Skill) error {
	query := `
		INSERT INTO skills (owner_id, title, description, category, level, direction, tags, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	if skill.Tags == nil {
		skill.Tags = []string{}
	}

	if err := r.db.QueryRowxContext(
		ctx, query,
		skill.OwnerID, skill.Title, skill.Description, skill.Category,
		skill.Level, skill.Direction, pq.Array(skill.Tags), skill.IsActive,
	).Scan(&skill.ID, &skill.CreatedAt); err != nil {
		return fmt.Errorf("skill repository: create %w", err)
	}

	return nil
}

// GetByID возвращает навык по идентификатору.
func (r *SkillRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Skill, error) {
	row, err := common.GetByID[skillRow](ctx, r.db, "skills", id, ErrSkillNotFound)
	if err != nil {
		return nil, err
	}

	skill := row.toModel()
	return &skill, nil
}

// Update обновляет объявление о навыке.
func (r *SkillRepository) Update(ctx context.Context, skill *models.Skill) error {
	query := `
		UPDATE skills
		SET title = $2, description = $3, category = $4, level = $5, direction = $6, tags = $7, is_active = $8
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(
		ctx, query,
		skill.ID, skill.Title, skill.Description, skill.Category,
		skill.Level, skill.Direction, pq.Array(skill.Tags), skill.IsActive,
	); err != nil {
		return fmt.Errorf("skill repository: update %w", err)
	}
	return nil
}

// Delete удаляет объявление о навыке.
func (r *SkillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM skills WHERE id = $1`, id); err != nil {
		return fmt.Errorf("skill repository: delete %w", err)
	}
	return nil
}

// ListByOwner возвращает навыки пользователя от новых к старым.
func (r *SkillRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Skill, error) {
	var rows []skillRow
	query := `SELECT * FROM skills WHERE owner_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &rows, query, ownerID); err != nil {
		return nil, fmt.Errorf("skill repository: list by owner %w", err)
	}

	return toSkillModels(rows), nil
}

// Search выполняет поиск активных навыков по фильтру.
// Результаты упорядочены по created_at по убыванию, без ранжирования релевантности.
func (r *SkillRepository) Search(ctx context.Context, filter SkillFilter) ([]models.SkillSearchResult, error) {
	query := `
		SELECT s.id, s.owner_id, s.title, s.description, s.category, s.level, s.direction, s.tags, s.is_active, s.created_at,
			u.display_name AS owner_name, u.location AS owner_location, u.rating AS owner_rating
		FROM skills s
		JOIN users u ON u.id = s.owner_id
		WHERE s.is_active = TRUE
	`
	args := []interface{}{}
	argIndex := 1

	if filter.ExcludeOwnerID != uuid.Nil {
		query += fmt.Sprintf(" AND s.owner_id != $%d", argIndex)
		args = append(args, filter.ExcludeOwnerID)
		argIndex++
	}

	if filter.Query != "" {
		// Подстрока без учёта регистра по названию, описанию и каждому тегу.
		query += fmt.Sprintf(` AND (s.title ILIKE $%d OR s.description ILIKE $%d
			OR EXISTS (SELECT 1 FROM unnest(s.tags) AS tag WHERE tag ILIKE $%d))`, argIndex, argIndex, argIndex)
		args = append(args, "%"+filter.Query+"%")
		argIndex++
	}

	if filter.Category != "" {
		query += fmt.Sprintf(" AND s.category = $%d", argIndex)
		args = append(args, filter.Category)
		argIndex++
	}

	if filter.Level != "" {
		query += fmt.Sprintf(" AND s.level = $%d", argIndex)
		args = append(args, filter.Level)
		argIndex++
	}

	if filter.Direction != "" {
		query += fmt.Sprintf(" AND s.direction = $%d", argIndex)
		args = append(args, filter.Direction)
		argIndex++
	}

	if filter.Location != "" {
		query += fmt.Sprintf(" AND u.location ILIKE $%d", argIndex)
		args = append(args, "%"+filter.Location+"%")
		argIndex++
	}

	query += " ORDER BY s.created_at DESC"

	var rows []struct {
		skillRow
		OwnerName     string  `db:"owner_name"`
		OwnerLocation *string `db:"owner_location"`
		OwnerRating   float64 `db:"owner_rating"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("skill repository: search %w", err)
	}

	results := make([]models.SkillSearchResult, len(rows))
	for i, row := range rows {
		results[i] = models.SkillSearchResult{
			Skill:         row.toModel(),
			OwnerName:     row.OwnerName,
			OwnerLocation: row.OwnerLocation,
			OwnerRating:   row.OwnerRating,
		}
	}
	return results, nil
}

// TopOfferedTitles возвращает top-N названий предлагаемых навыков по частоте.
// При равенстве частот сохраняется порядок первого появления.
func (r *SkillRepository) TopOfferedTitles(ctx context.Context, limit int) ([]models.SkillCount, error) {
	var rows []struct {
		Title string `db:"title"`
		Count int    `db:"count"`
	}
	query := `
		SELECT title, COUNT(*) AS count
		FROM skills
		WHERE direction = 'offered'
		GROUP BY title
		ORDER BY count DESC, MIN(created_at) ASC
		LIMIT $1
	`
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("skill repository: top offered %w", err)
	}

	result := make([]models.SkillCount, len(rows))
	for i, row := range rows {
		result[i] = models.SkillCount{Skill: row.Title, Count: row.Count}
	}
	return result, nil
}

// ListActive возвращает все активные объявления для снимка коллекции.
func (r *SkillRepository) ListActive(ctx context.Context) ([]models.Skill, error) {
	var rows []skillRow
	query := `SELECT * FROM skills WHERE is_active = TRUE ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("skill repository: list active %w", err)
	}
	return toSkillModels(rows), nil
}

// Count возвращает общее количество объявлений.
func (r *SkillRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM skills`); err != nil {
		return 0, fmt.Errorf("skill repository: count %w", err)
	}
	return count, nil
}

func toSkillModels(rows []skillRow) []models.Skill {
	skills := make([]models.Skill, len(rows))
	for i, row := range rows {
		skills[i] = row.toModel()
	}
	return skills
}
