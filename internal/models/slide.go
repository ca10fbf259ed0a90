package models

// Slide is one slide of a generated lesson deck. Produced either by parsing
// model output or by deterministic paragraph segmentation; both producers
// yield this shape.
type Slide struct {
	SlideTitle      string   `json:"SlideTitle" example:"Why Routines Matter"`
	KeyPoints       []string `json:"KeyPoints"`
	IconDescription string   `json:"IconDescription" example:"sunrise over a calendar"`
	ColorAccent     string   `json:"ColorAccent" example:"#6366F1"`
}

// SlideDeck wraps the slides array as returned by the remote model.
type SlideDeck struct {
	Slides []Slide `json:"slides"`
}

// GenerateSlidesRequest represents the request to generate slides for a lesson script
type GenerateSlidesRequest struct {
	LessonID string `json:"lesson_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Script   string `json:"script" binding:"required"`
	Title    string `json:"title,omitempty" example:"Morning Momentum"`
	Style    string `json:"style,omitempty" example:"minimal"`
}

// GenerateSlidesResponse represents the response for slide generation.
// The envelope is a uniform success whether the AI or the fallback produced
// the deck; provenance records which path it was.
type GenerateSlidesResponse struct {
	Success    bool    `json:"success" example:"true"`
	Provenance string  `json:"provenance" example:"ai"` // "ai", "fallback"
	Slides     []Slide `json:"slides"`
}
