package models

import (
	"time"
)

// CreatorProfile holds the public-facing profile of a course creator.
type CreatorProfile struct {
	ID     string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID string `json:"user_id" gorm:"not null;uniqueIndex;type:uuid"`

	DisplayName string `json:"display_name" gorm:"type:varchar(255);not null"`
	Headline    string `json:"headline" gorm:"type:varchar(255)"`
	Bio         string `json:"bio" gorm:"type:text"`
	BrandColor  string `json:"brand_color" gorm:"type:varchar(7)" example:"#6366F1"`
	AvatarURL   string `json:"avatar_url" gorm:"type:varchar(500)"`
	WebsiteURL  string `json:"website_url" gorm:"type:varchar(500)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the CreatorProfile model
func (CreatorProfile) TableName() string {
	return "creator_profiles"
}

// UpsertCreatorProfileRequest represents the request to create or update a profile
type UpsertCreatorProfileRequest struct {
	DisplayName string `json:"display_name" binding:"required,max=255" example:"Dana Rivers"`
	Headline    string `json:"headline,omitempty" example:"Helping parents reclaim their mornings"`
	Bio         string `json:"bio,omitempty"`
	BrandColor  string `json:"brand_color,omitempty" example:"#6366F1"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	WebsiteURL  string `json:"website_url,omitempty"`
}

// CreatorProfileResponse represents the response for profile operations
type CreatorProfileResponse struct {
	ID          string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	UserID      string `json:"user_id" example:"550e8400-e29b-41d4-a716-446655440001"`
	DisplayName string `json:"display_name" example:"Dana Rivers"`
	Headline    string `json:"headline" example:"Helping parents reclaim their mornings"`
	Bio         string `json:"bio"`
	BrandColor  string `json:"brand_color" example:"#6366F1"`
	AvatarURL   string `json:"avatar_url"`
	WebsiteURL  string `json:"website_url"`
	CreatedAt   string `json:"created_at" example:"2026-01-21T10:00:00Z"`
	UpdatedAt   string `json:"updated_at" example:"2026-01-21T10:00:00Z"`
}
