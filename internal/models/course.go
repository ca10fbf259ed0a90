package models

import (
	"time"
)

// InlineDataMarker is assigned to a quiz/workbook file-reference field when the
// data was supplied inline and no real file reference exists. Consumers that
// branch on reference presence can detect "data exists, render inline" without
// inspecting the payload.
const InlineDataMarker = "__inline__"

// DefaultCourseTitle is used when no title can be resolved from any source.
const DefaultCourseTitle = "Untitled Course"

// Course is the canonical course shape consumed by the rendering layer.
// All producer shapes (AI generation, deterministic fallback, legacy backend)
// are mapped onto this one schema by the normalizer.
type Course struct {
	CourseTitle   string   `json:"course_title" example:"Launch Your First Online Course"`
	Description   string   `json:"description,omitempty"`
	Category      string   `json:"category,omitempty" example:"Personal Development"`
	MarketingHook string   `json:"marketing_hook,omitempty"`
	LogoURL       string   `json:"logo_url,omitempty"`
	BannerURL     string   `json:"banner_url,omitempty"`
	PackageURL    string   `json:"package_url,omitempty"`
	Lessons       []Lesson `json:"lessons"`
}

// Lesson is a canonical lesson.
type Lesson struct {
	LessonTitle  string    `json:"lesson_title" example:"Lesson 1"`
	Description  string    `json:"description,omitempty"`
	Videos       []Video   `json:"videos"`
	QuizFile     string    `json:"quiz_file,omitempty"`
	QuizData     *Quiz     `json:"quiz_data,omitempty"`
	WorkbookFile string    `json:"workbook_file,omitempty"`
	WorkbookData *Workbook `json:"workbook_data,omitempty"`
	Script       string    `json:"script,omitempty"`
}

// HasInlineQuiz reports whether the lesson carries inline quiz data.
func (l *Lesson) HasInlineQuiz() bool {
	return l.QuizData != nil && len(l.QuizData.Questions) > 0
}

// HasInlineWorkbook reports whether the lesson carries inline workbook data.
func (l *Lesson) HasInlineWorkbook() bool {
	return l.WorkbookData != nil && len(l.WorkbookData.Prompts) > 0
}

// Video is a canonical lesson video.
type Video struct {
	Title         string `json:"title" example:"Video 1"`
	ScriptFile    string `json:"script_file,omitempty"`
	ScriptContent string `json:"script_content,omitempty"`
}

// Quiz is an ordered list of multiple-choice questions.
type Quiz struct {
	Questions []QuizQuestion `json:"questions"`
}

// QuizQuestion has one correct option, identified by zero-based index.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

// Workbook is an ordered list of reflection prompts.
type Workbook struct {
	Prompts []string `json:"prompts"`
}

// CourseRecord is a persisted course owned by a user. The normalized course
// body is stored as jsonb; the columns exist for listing and filtering.
type CourseRecord struct {
	ID          string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID      string `json:"user_id" gorm:"not null;index;type:uuid"`
	Title       string `json:"title" gorm:"type:varchar(255);not null"`
	Category    string `json:"category" gorm:"type:varchar(100);index"`
	Source      string `json:"source" gorm:"type:varchar(20);index;default:'ai'"` // "ai", "fallback"
	LessonCount int    `json:"lesson_count" gorm:"default:0"`
	Data        JSON   `json:"data" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the CourseRecord model
func (CourseRecord) TableName() string {
	return "courses"
}

// GenerateCourseRequest represents the request to generate a course
type GenerateCourseRequest struct {
	Outcome  string `json:"outcome" binding:"required" example:"Help busy parents build a morning routine"`
	Audience string `json:"audience,omitempty" example:"busy parents"`
	Level    string `json:"level,omitempty" example:"beginner"`
	Size     string `json:"size,omitempty" example:"standard"` // "micro", "standard", "masterclass"
}

// GenerateCourseResponse represents the response for course generation
type GenerateCourseResponse struct {
	Success    bool    `json:"success" example:"true"`
	Provenance string  `json:"provenance" example:"ai"` // "ai", "fallback"
	Course     *Course `json:"course"`
	CourseID   string  `json:"course_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	JobID      string  `json:"job_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440001"`
}

// CourseListItem represents one course in a paginated listing
type CourseListItem struct {
	ID          string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Title       string `json:"title" example:"Launch Your First Online Course"`
	Category    string `json:"category" example:"Personal Development"`
	Source      string `json:"source" example:"ai"`
	LessonCount int    `json:"lesson_count" example:"8"`
	CreatedAt   string `json:"created_at" example:"2026-01-21T10:00:00Z"`
	UpdatedAt   string `json:"updated_at" example:"2026-01-21T10:00:00Z"`
}
