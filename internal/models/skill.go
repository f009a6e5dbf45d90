package models

import (
	"time"

	"github.com/google/uuid"
)

// Skill описывает объявление о навыке: предлагаемом или желаемом.
// Один навык принадлежит ровно одному пользователю.
type Skill struct {
	ID          uuid.UUID `db:"id" json:"id"`
	OwnerID     uuid.UUID `db:"owner_id" json:"owner_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Category    string    `db:"category" json:"category"`
	Level       string    `db:"level" json:"level"`
	Direction   string    `db:"direction" json:"direction"`
	Tags        []string  `db:"tags" json:"tags"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// SkillSearchResult результат поиска навыка вместе с данными владельца.
type SkillSearchResult struct {
	Skill
	OwnerName     string  `db:"owner_name" json:"owner_name"`
	OwnerLocation *string `db:"owner_location" json:"owner_location,omitempty"`
	OwnerRating   float64 `db:"owner_rating" json:"owner_rating"`
}
