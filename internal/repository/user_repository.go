package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/repository/common"
)

// ErrUserNotFound возвращается, когда запись пользователя не найдена.
var ErrUserNotFound = errors.New("user not found")

// UserRepository отвечает за работу с таблицами users и user_sessions.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository создаёт экземпляр репозитория.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userRow struct {
	models.User
	Availability pq.StringArray `db:"availability"`
}

func (r userRow) toModel() *models.User {
	user := r.User
	user.Availability = []string(r.Availability)
	return &user
}

const userColumns = `id, email, display_name, password_hash, location, avatar_path, is_public, is_admin, availability, rating, ratings_count, total_swaps, last_login_at, created_at, updated_at`

// Create создаёт нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, display_name, password_hash, location, is_public, is_admin, availability)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, rating, ratings_count, total_swaps, created_at, updated_at
	`

	if user.Availability == nil {
		user.Availability = []string{}
	}

	if err := r.db.QueryRowxContext(
		ctx, query,
		user.Email, user.DisplayName, user.PasswordHash, user.Location,
		user.IsPublic, user.IsAdmin, pq.Array(user.Availability),
	).Scan(&user.ID, &user.Rating, &user.RatingsCount, &user.TotalSwaps, &user.CreatedAt, &user.UpdatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("user repository: create %w", err)
	}

	return nil
}

// GetByEmail возвращает пользователя по email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row, err := common.GetByField[userRow](ctx, r.db, "users", "email", email, ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

// GetByID возвращает пользователя по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var row userRow
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository: get by id %w", err)
	}

	return row.toModel(), nil
}

// UpdateProfile обновляет редактируемые поля профиля.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET display_name = $2, location = $3, is_public = $4, availability = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		user.ID, user.DisplayName, user.Location, user.IsPublic, pq.Array(user.Availability),
	).Scan(&user.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("user repository: update profile %w", err)
	}

	return nil
}

// SetAvatar сохраняет путь к загруженному аватару.
func (r *UserRepository) SetAvatar(ctx context.Context, userID uuid.UUID, avatarPath string) error {
	query := `UPDATE users SET avatar_path = $2, updated_at = NOW() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID, avatarPath); err != nil {
		return fmt.Errorf("user repository: set avatar %w", err)
	}
	return nil
}

// UpdateRating сохраняет денормализованный рейтинг пользователя.
func (r *UserRepository) UpdateRating(ctx context.Context, userID uuid.UUID, rating float64, count int) error {
	query := `UPDATE users SET rating = $2, ratings_count = $3, updated_at = NOW() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID, rating, count); err != nil {
		return fmt.Errorf("user repository: update rating %w", err)
	}
	return nil
}

// IncrementTotalSwaps увеличивает счётчик завершённых обменов.
func (r *UserRepository) IncrementTotalSwaps(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE users SET total_swaps = total_swaps + 1, updated_at = NOW() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("user repository: increment total swaps %w", err)
	}
	return nil
}

// UpdateLastLoginAt фиксирует время последнего входа.
func (r *UserRepository) UpdateLastLoginAt(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE users SET last_login_at = NOW() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("user repository: update last login %w", err)
	}
	return nil
}

// Delete удаляет пользователя. Навыки и запросы удаляются каскадно.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("user repository: delete %w", err)
	}
	return nil
}

// ListPublic возвращает публичные профили, исключая самого запрашивающего.
// query фильтрует по имени (подстрока, без учёта регистра), location — по локации.
func (r *UserRepository) ListPublic(ctx context.Context, viewerID uuid.UUID, search, location string) ([]models.User, error) {
	sqlQuery := `SELECT ` + userColumns + ` FROM users WHERE is_public = TRUE AND id != $1`
	args := []interface{}{viewerID}
	argIndex := 2

	if search != "" {
		// Совпадение по имени либо по названию любого навыка пользователя.
		sqlQuery += fmt.Sprintf(` AND (display_name ILIKE $%d
			OR EXISTS (SELECT 1 FROM skills s WHERE s.owner_id = users.id AND s.title ILIKE $%d))`, argIndex, argIndex)
		args = append(args, "%"+search+"%")
		argIndex++
	}
	if location != "" {
		sqlQuery += fmt.Sprintf(" AND location ILIKE $%d", argIndex)
		args = append(args, "%"+location+"%")
		argIndex++
	}

	sqlQuery += " ORDER BY created_at DESC"

	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, sqlQuery, args...); err != nil {
		return nil, fmt.Errorf("user repository: list public %w", err)
	}

	users := make([]models.User, len(rows))
	for i, row := range rows {
		users[i] = *row.toModel()
	}
	return users, nil
}

// Count возвращает общее количество пользователей.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("user repository: count %w", err)
	}
	return count, nil
}

// AverageOfRatings возвращает среднее значение averageRating по всем пользователям.
// 0, если пользователей нет.
func (r *UserRepository) AverageOfRatings(ctx context.Context) (float64, error) {
	var avg float64
	query := `SELECT COALESCE(AVG(rating), 0) FROM users`
	if err := r.db.GetContext(ctx, &avg, query); err != nil {
		return 0, fmt.Errorf("user repository: average of ratings %w", err)
	}
	return avg, nil
}

// CreateSession сохраняет refresh-сессию пользователя.
func (r *UserRepository) CreateSession(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO user_sessions (user_id, refresh_token, user_agent, ip_address, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		session.UserID, session.RefreshToken, session.UserAgent, session.IPAddress, session.ExpiresAt,
	).Scan(&session.ID, &session.CreatedAt); err != nil {
		return fmt.Errorf("user repository: create session %w", err)
	}

	return nil
}

// GetSessionByToken возвращает сессию по refresh токену.
func (r *UserRepository) GetSessionByToken(ctx context.Context, refreshToken string) (*models.Session, error) {
	var session models.Session
	query := `SELECT * FROM user_sessions WHERE refresh_token = $1`
	if err := r.db.GetContext(ctx, &session, query, refreshToken); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository: get session %w", err)
	}
	return &session, nil
}

// DeleteSession удаляет сессию по refresh токену.
func (r *UserRepository) DeleteSession(ctx context.Context, refreshToken string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_sessions WHERE refresh_token = $1`, refreshToken); err != nil {
		return fmt.Errorf("user repository: delete session %w", err)
	}
	return nil
}
