package models

import (
	"time"
)

// Media asset kinds used in storage paths.
const (
	MediaKindLogo      = "logo"
	MediaKindBanner    = "banner"
	MediaKindVideo     = "video"
	MediaKindRecording = "recording"
)

// MediaAsset represents an uploaded media object (screen/camera recording,
// logo, banner) stored in object storage.
type MediaAsset struct {
	ID string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`

	UserID   string `json:"user_id" gorm:"not null;index;type:uuid"`
	CourseID string `json:"course_id,omitempty" gorm:"type:uuid;index"`

	Kind         string `json:"kind" gorm:"type:varchar(20);not null;index" example:"recording"`
	OriginalName string `json:"original_name" gorm:"type:varchar(255);not null"`
	MimeType     string `json:"mime_type" gorm:"type:varchar(100)"`
	SizeBytes    int64  `json:"size_bytes" gorm:"type:bigint"`
	StoragePath  string `json:"storage_path" gorm:"type:varchar(500);not null"`
	PublicURL    string `json:"public_url" gorm:"type:varchar(500)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the MediaAsset model
func (MediaAsset) TableName() string {
	return "media_assets"
}

// MediaAssetResponse represents the response for media operations
type MediaAssetResponse struct {
	ID           string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	UserID       string `json:"user_id" example:"550e8400-e29b-41d4-a716-446655440001"`
	CourseID     string `json:"course_id,omitempty"`
	Kind         string `json:"kind" example:"recording"`
	OriginalName string `json:"original_name" example:"lesson-1-take-2.webm"`
	MimeType     string `json:"mime_type" example:"video/webm"`
	SizeBytes    int64  `json:"size_bytes" example:"1048576"`
	PublicURL    string `json:"public_url" example:"https://storage.example.com/u1/recording/1737451800.webm"`
	CreatedAt    string `json:"created_at" example:"2026-01-21T10:00:00Z"`
}
