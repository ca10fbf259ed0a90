package models

// Provenance values reported by the generation orchestrators. Every terminal
// path reports exactly one of these.
const (
	ProvenanceAI       = "ai"
	ProvenanceFallback = "fallback"
	ProvenanceError    = "error"
)

// GenerateBrandingRequest represents the request to generate course branding
type GenerateBrandingRequest struct {
	CourseID    string `json:"course_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Title       string `json:"title" binding:"required" example:"Morning Momentum"`
	Category    string `json:"category,omitempty" example:"Personal Development"`
	Description string `json:"description,omitempty"`
}

// BrandingResult is the terminal result of the branding orchestrator.
// LogoURL/BannerURL are durable references when upload succeeded, or data
// URIs when the embedded representation had to be kept.
type BrandingResult struct {
	Provenance string `json:"provenance" example:"ai"` // "ai", "fallback", "error"
	LogoURL    string `json:"logo_url,omitempty"`
	BannerURL  string `json:"banner_url,omitempty"`
	Error      string `json:"error,omitempty"`
}

// BrandingAIResponse mirrors the remote branding endpoint's payload.
type BrandingAIResponse struct {
	Error  string `json:"error,omitempty"`
	Logo   string `json:"logo,omitempty"`   // URL or data URI
	Banner string `json:"banner,omitempty"` // URL or data URI
}
