package dto

import (
	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/models"
)

// SwapResponse represents a swap request enriched with skill titles
type SwapResponse struct {
	*models.SwapRequest
	OfferedSkill   *SkillShortInfo `json:"offered_skill,omitempty"`
	RequestedSkill *SkillShortInfo `json:"requested_skill,omitempty"`
}

// SkillShortInfo represents basic skill information
type SkillShortInfo struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Category string    `json:"category"`
	Level    string    `json:"level"`
}

// NewSkillShortInfo creates a SkillShortInfo from a skill model
func NewSkillShortInfo(skill *models.Skill) *SkillShortInfo {
	if skill == nil {
		return nil
	}
	return &SkillShortInfo{
		ID:       skill.ID,
		Title:    skill.Title,
		Category: skill.Category,
		Level:    skill.Level,
	}
}

// PublicProfileResponse represents a user profile visible to other members
type PublicProfileResponse struct {
	ID           uuid.UUID `json:"id"`
	DisplayName  string    `json:"display_name"`
	Location     *string   `json:"location,omitempty"`
	Availability []string  `json:"availability"`
	Rating       float64   `json:"rating"`
	RatingsCount int       `json:"ratings_count"`
	TotalSwaps   int       `json:"total_swaps"`
}

// NewPublicProfileResponse strips private fields from a user model
func NewPublicProfileResponse(user *models.User) *PublicProfileResponse {
	return &PublicProfileResponse{
		ID:           user.ID,
		DisplayName:  user.DisplayName,
		Location:     user.Location,
		Availability: user.Availability,
		Rating:       user.Rating,
		RatingsCount: user.RatingsCount,
		TotalSwaps:   user.TotalSwaps,
	}
}

// AuthResponse represents a successful register/login/refresh result
type AuthResponse struct {
	User   *models.User `json:"user"`
	Tokens interface{}  `json:"tokens"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
