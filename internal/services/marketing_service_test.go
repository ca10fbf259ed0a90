package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMarketingDescription(t *testing.T) {
	svc := NewMarketingService(&stubAI{body: "An inspiring course that changes mornings forever."})

	description, err := svc.GenerateDescription(context.Background(), &models.GenerateMarketingRequest{Title: "Morning Momentum"})

	require.NoError(t, err)
	assert.Equal(t, "An inspiring course that changes mornings forever.", description)
}

func TestGenerateMarketingStripsFences(t *testing.T) {
	svc := NewMarketingService(&stubAI{body: "```\nCopy inside a fence.\n```"})

	description, err := svc.GenerateDescription(context.Background(), &models.GenerateMarketingRequest{Title: "T"})

	require.NoError(t, err)
	assert.Equal(t, "Copy inside a fence.", description)
}

// Marketing has no fallback: a backend failure is the caller's problem.
func TestGenerateMarketingBackendErrorFails(t *testing.T) {
	svc := NewMarketingService(&stubAI{err: fmt.Errorf("backend down")})

	_, err := svc.GenerateDescription(context.Background(), &models.GenerateMarketingRequest{Title: "T"})

	assert.Error(t, err)
}

func TestGenerateMarketingEmptyResponseFails(t *testing.T) {
	svc := NewMarketingService(&stubAI{body: "   \n  "})

	_, err := svc.GenerateDescription(context.Background(), &models.GenerateMarketingRequest{Title: "T"})

	assert.Error(t, err)
}

func TestBuildMarketingPromptIncludesContext(t *testing.T) {
	prompt := buildMarketingPrompt(&models.GenerateMarketingRequest{
		Title:       "Morning Momentum",
		Audience:    "busy parents",
		Level:       "beginner",
		LessonCount: 8,
	})

	assert.Contains(t, prompt, "Morning Momentum")
	assert.Contains(t, prompt, "busy parents")
	assert.Contains(t, prompt, "beginner")
	assert.Contains(t, prompt, "Lesson count: 8")
}
