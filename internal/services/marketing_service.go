package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/models"
)

// MarketingService asks the model for a sales-page description. Unlike slides
// and branding there is no deterministic fallback here: marketing copy that
// reads like a template is worse than an error the caller can retry.
type MarketingService struct {
	ai aiGenerator
}

func NewMarketingService(ai aiGenerator) *MarketingService {
	return &MarketingService{ai: ai}
}

func (s *MarketingService) GenerateDescription(ctx context.Context, req *models.GenerateMarketingRequest) (string, error) {
	payload := map[string]interface{}{
		"prompt": buildMarketingPrompt(req),
	}

	body, err := s.ai.Generate(ctx, "/v1/generate/marketing", payload)
	if err != nil {
		return "", fmt.Errorf("marketing generation failed: %w", err)
	}

	description := strings.TrimSpace(stripMarkdownFences(body))
	if description == "" {
		return "", fmt.Errorf("marketing generation returned an empty description")
	}

	return description, nil
}

func buildMarketingPrompt(req *models.GenerateMarketingRequest) string {
	var b strings.Builder
	b.WriteString("Write a compelling marketing description for an online course. ")
	b.WriteString("2-3 paragraphs, benefit-led, no headings, no bullet lists. Return plain text only.\n\n")
	b.WriteString(fmt.Sprintf("Course title: %s\n", req.Title))
	if req.Outcome != "" {
		b.WriteString(fmt.Sprintf("Learner outcome: %s\n", req.Outcome))
	}
	if req.Audience != "" {
		b.WriteString(fmt.Sprintf("Target audience: %s\n", req.Audience))
	}
	if req.Level != "" {
		b.WriteString(fmt.Sprintf("Level: %s\n", req.Level))
	}
	if req.Category != "" {
		b.WriteString(fmt.Sprintf("Category: %s\n", req.Category))
	}
	if req.LessonCount > 0 {
		b.WriteString(fmt.Sprintf("Lesson count: %d\n", req.LessonCount))
	}
	if req.Description != "" {
		b.WriteString(fmt.Sprintf("Existing description to improve on:\n%s\n", req.Description))
	}
	return b.String()
}
