package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/skillswap-backend/internal/models"
)

// FeedbackRepository отвечает за работу с таблицей feedback.
type FeedbackRepository struct {
	db *sqlx.DB
}

// NewFeedbackRepository создаёт экземпляр репозитория.
func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create сохраняет оценку. Уникальность пары (swap_id, rater_id)
// дополнительно защищена ограничением в схеме.
func (r *FeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	query := `
		INSERT INTO feedback (swap_id, rater_id, ratee_id, score, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		feedback.SwapID, feedback.RaterID, feedback.RateeID, feedback.Score, feedback.Comment,
	).Scan(&feedback.ID, &feedback.CreatedAt); err != nil {
		return fmt.Errorf("feedback repository: create %w", err)
	}

	return nil
}

// FindBySwapAndRater возвращает оценку по обмену и автору, nil если её нет.
func (r *FeedbackRepository) FindBySwapAndRater(ctx context.Context, swapID, raterID uuid.UUID) (*models.Feedback, error) {
	var feedback models.Feedback
	query := `SELECT * FROM feedback WHERE swap_id = $1 AND rater_id = $2`
	if err := r.db.GetContext(ctx, &feedback, query, swapID, raterID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("feedback repository: find by swap and rater %w", err)
	}
	return &feedback, nil
}

// ListByRatee возвращает оценки пользователя от новых к старым.
func (r *FeedbackRepository) ListByRatee(ctx context.Context, rateeID uuid.UUID) ([]models.Feedback, error) {
	var feedback []models.Feedback
	query := `SELECT * FROM feedback WHERE ratee_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &feedback, query, rateeID); err != nil {
		return nil, fmt.Errorf("feedback repository: list by ratee %w", err)
	}
	return feedback, nil
}

// AverageScore возвращает средний балл и количество оценок пользователя.
// (0, 0) до первой оценки.
func (r *FeedbackRepository) AverageScore(ctx context.Context, rateeID uuid.UUID) (float64, int, error) {
	var result struct {
		Average float64 `db:"average"`
		Count   int     `db:"count"`
	}
	query := `
		SELECT COALESCE(AVG(score), 0) AS average, COUNT(*) AS count
		FROM feedback WHERE ratee_id = $1
	`
	if err := r.db.GetContext(ctx, &result, query, rateeID); err != nil {
		return 0, 0, fmt.Errorf("feedback repository: average score %w", err)
	}
	return result.Average, result.Count, nil
}
