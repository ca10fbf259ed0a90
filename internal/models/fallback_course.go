package models

// FallbackCourse is the deterministic generator's output, pre-normalization.
// Field names deliberately match the raw shapes the normalizer reconciles so a
// fallback course flows through the same boundary as AI output.
type FallbackCourse struct {
	CourseTitle string           `json:"course_title"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Lessons     []FallbackLesson `json:"lessons"`
}

// FallbackLesson is a fully populated lesson synthesized without any remote call.
type FallbackLesson struct {
	LessonTitle string    `json:"lesson_title"`
	Description string    `json:"description"`
	VideoTitles []string  `json:"video_titles"`
	Script      string    `json:"script"`
	Quiz        *Quiz     `json:"quiz"`
	Workbook    *Workbook `json:"workbook"`
}
