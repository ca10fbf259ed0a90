package models

import (
	"time"
)

// Generation job statuses
const (
	JobStatusPending   = "pending"
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

// GenerationJob tracks one generation run (course, slides or branding) so the
// frontend can show progress while a worker is busy.
type GenerationJob struct {
	ID       string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID   string `json:"user_id" gorm:"type:uuid;not null;index"`
	CourseID string `json:"course_id,omitempty" gorm:"type:uuid;index"`

	// Job details
	JobType  string `json:"job_type" gorm:"type:varchar(50);not null;index" example:"course"` // "course", "slides", "branding"
	Status   string `json:"status" gorm:"type:varchar(20);not null;index;default:'pending'" example:"running"`
	Progress int    `json:"progress" gorm:"default:0" example:"40"` // 0-100
	Message  string `json:"message" gorm:"type:text" example:"Generating lesson scripts"`
	Error    string `json:"error,omitempty" gorm:"type:text"`

	// Additional metadata from workers (provenance, counts, timings)
	Metadata JSON `json:"metadata,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the GenerationJob model
func (GenerationJob) TableName() string {
	return "generation_jobs"
}

// JobProgressEvent represents a progress event published by a worker
// (over RabbitMQ or the authenticated callback endpoint).
type JobProgressEvent struct {
	JobID    string                 `json:"job_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	UserID   string                 `json:"user_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440001"`
	Status   string                 `json:"status,omitempty" example:"running"`
	Progress int                    `json:"progress" example:"40"`
	Message  string                 `json:"message,omitempty" example:"Generating lesson scripts"`
	Error    string                 `json:"error,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// GenerationJobResponse represents the response for job operations
type GenerationJobResponse struct {
	ID        string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	UserID    string `json:"user_id" example:"550e8400-e29b-41d4-a716-446655440001"`
	CourseID  string `json:"course_id,omitempty"`
	JobType   string `json:"job_type" example:"course"`
	Status    string `json:"status" example:"running"`
	Progress  int    `json:"progress" example:"40"`
	Message   string `json:"message" example:"Generating lesson scripts"`
	Error     string `json:"error,omitempty"`
	Metadata  JSON   `json:"metadata,omitempty"`
	CreatedAt string `json:"created_at" example:"2026-01-21T10:30:00Z"`
	UpdatedAt string `json:"updated_at" example:"2026-01-21T10:31:00Z"`
}
