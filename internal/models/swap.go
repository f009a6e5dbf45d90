package models

import (
	"time"

	"github.com/google/uuid"
)

// SwapRequest описывает предложение обменять один навык на другой.
type SwapRequest struct {
	ID               uuid.UUID `db:"id" json:"id"`
	RequesterID      uuid.UUID `db:"requester_id" json:"requester_id"`
	RecipientID      uuid.UUID `db:"recipient_id" json:"recipient_id"`
	OfferedSkillID   uuid.UUID `db:"offered_skill_id" json:"offered_skill_id"`
	RequestedSkillID uuid.UUID `db:"requested_skill_id" json:"requested_skill_id"`
	Message          *string   `db:"message" json:"message,omitempty"`
	Status           string    `db:"status" json:"status"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// AdminStats содержит агрегированную статистику платформы.
// Вычисляется на каждый запрос, не хранится (см. stats service).
type AdminStats struct {
	TotalUsers    int            `json:"total_users"`
	TotalSwaps    int            `json:"total_swaps"`
	SwapsByStatus map[string]int `json:"swaps_by_status"`
	AverageRating float64        `json:"average_rating"`
	TopSkills     []SkillCount   `json:"top_skills"`
}

// SkillCount частота навыка среди предлагаемых объявлений.
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}
