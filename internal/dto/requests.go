package dto

// RegisterRequest represents the request to register a new account
type RegisterRequest struct {
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required"`
	DisplayName string  `json:"display_name"`
	Location    *string `json:"location"`
	IsPublic    *bool   `json:"is_public"`
}

// LoginRequest represents the request to log in
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents the request to refresh a token pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest represents the request to update own profile
type UpdateProfileRequest struct {
	DisplayName  *string  `json:"display_name"`
	Location     *string  `json:"location"`
	IsPublic     *bool    `json:"is_public"`
	Availability []string `json:"availability"`
}

// CreateSkillRequest represents the request to publish a skill listing
type CreateSkillRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category" binding:"required"`
	Level       string   `json:"level" binding:"required"`
	Direction   string   `json:"direction" binding:"required"`
	Tags        []string `json:"tags"`
}

// UpdateSkillRequest represents the request to update a skill listing
type UpdateSkillRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Level       *string  `json:"level"`
	Tags        []string `json:"tags"`
	IsActive    *bool    `json:"is_active"`
}

// CreateSwapRequest represents the request to start a swap
type CreateSwapRequest struct {
	RecipientID      string  `json:"recipient_id" binding:"required"`
	OfferedSkillID   string  `json:"offered_skill_id" binding:"required"`
	RequestedSkillID string  `json:"requested_skill_id" binding:"required"`
	Message          *string `json:"message"`
}

// RespondSwapRequest represents the recipient's accept/decline decision
type RespondSwapRequest struct {
	Decision string `json:"decision" binding:"required"`
}

// CompleteSwapRequest represents completion with mandatory feedback
type CompleteSwapRequest struct {
	Score   int    `json:"score" binding:"required"`
	Comment string `json:"comment"`
}
