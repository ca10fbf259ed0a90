package models

// GenerateMarketingRequest represents the request for a marketing description
type GenerateMarketingRequest struct {
	Title       string `json:"title" binding:"required" example:"Morning Momentum"`
	Description string `json:"description,omitempty"`
	Audience    string `json:"audience,omitempty" example:"busy parents"`
	Level       string `json:"level,omitempty" example:"beginner"`
	Category    string `json:"category,omitempty" example:"Personal Development"`
	Outcome     string `json:"outcome,omitempty"`
	LessonCount int    `json:"lesson_count,omitempty" example:"8"`
}

// GenerateMarketingResponse represents the marketing copy response
type GenerateMarketingResponse struct {
	Success     bool   `json:"success" example:"true"`
	Description string `json:"description"`
}
