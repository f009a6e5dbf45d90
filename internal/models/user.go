package models

import (
	"time"

	"github.com/google/uuid"
)

// User описывает участника платформы обмена навыками.
type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	DisplayName  string     `db:"display_name" json:"display_name"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Location     *string    `db:"location" json:"location,omitempty"`
	AvatarPath   *string    `db:"avatar_path" json:"avatar_path,omitempty"`
	IsPublic     bool       `db:"is_public" json:"is_public"`
	IsAdmin      bool       `db:"is_admin" json:"is_admin"`
	Availability []string   `db:"availability" json:"availability"`
	Rating       float64    `db:"rating" json:"rating"`
	RatingsCount int        `db:"ratings_count" json:"ratings_count"`
	TotalSwaps   int        `db:"total_swaps" json:"total_swaps"`
	LastLoginAt  *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Session представляет сохранённую сессию пользователя.
type Session struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	RefreshToken string    `db:"refresh_token" json:"refresh_token"`
	UserAgent    *string   `db:"user_agent" json:"user_agent,omitempty"`
	IPAddress    *string   `db:"ip_address" json:"ip_address,omitempty"`
	ExpiresAt    time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Feedback описывает оценку контрагента после завершения обмена.
// На пару (swap_id, rater_id) допускается только одна запись.
type Feedback struct {
	ID        uuid.UUID `db:"id" json:"id"`
	SwapID    uuid.UUID `db:"swap_id" json:"swap_id"`
	RaterID   uuid.UUID `db:"rater_id" json:"rater_id"`
	RateeID   uuid.UUID `db:"ratee_id" json:"ratee_id"`
	Score     int       `db:"score" json:"score"`
	Comment   *string   `db:"comment" json:"comment,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
