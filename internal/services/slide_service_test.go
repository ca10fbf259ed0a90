package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAI struct {
	body string
	err  error
}

func (s *stubAI) Generate(ctx context.Context, path string, payload map[string]interface{}) (string, error) {
	return s.body, s.err
}

const validSlidesJSON = `{"slides": [
	{"SlideTitle": "One", "KeyPoints": ["a point"], "IconDescription": "icon", "ColorAccent": "#6366F1"},
	{"SlideTitle": "Two", "KeyPoints": ["another point"], "IconDescription": "icon", "ColorAccent": "#10B981"}
]}`

func TestGenerateSlidesDirectJSON(t *testing.T) {
	svc := NewSlideService(&stubAI{body: validSlidesJSON})

	slides, provenance := svc.GenerateSlides(context.Background(), &models.GenerateSlidesRequest{Script: "some script"})

	assert.Equal(t, models.ProvenanceAI, provenance)
	require.Len(t, slides, 2)
	assert.Equal(t, "One", slides[0].SlideTitle)
}

func TestGenerateSlidesMarkdownFenced(t *testing.T) {
	svc := NewSlideService(&stubAI{body: "```json\n" + validSlidesJSON + "\n```"})

	slides, provenance := svc.GenerateSlides(context.Background(), &models.GenerateSlidesRequest{Script: "some script"})

	assert.Equal(t, models.ProvenanceAI, provenance)
	assert.Len(t, slides, 2)
}

func TestGenerateSlidesEmbeddedInProse(t *testing.T) {
	body := "Sure! Here is your deck:\n\n" + validSlidesJSON + "\n\nLet me know if you need changes."
	svc := NewSlideService(&stubAI{body: body})

	slides, provenance := svc.GenerateSlides(context.Background(), &models.GenerateSlidesRequest{Script: "some script"})

	assert.Equal(t, models.ProvenanceAI, provenance)
	assert.Len(t, slides, 2)
}

func TestGenerateSlidesBackendErrorFallsBack(t *testing.T) {
	svc := NewSlideService(&stubAI{err: fmt.Errorf("backend down")})

	script := "This is the first paragraph of the lesson script with enough length.\n\nAnd a second paragraph that also carries some meaningful content."
	slides, provenance := svc.GenerateSlides(context.Background(), &models.GenerateSlidesRequest{Script: script, Title: "My Lesson"})

	assert.Equal(t, models.ProvenanceFallback, provenance)
	require.NotEmpty(t, slides)
	assert.Equal(t, "My Lesson", slides[0].SlideTitle)
	assert.Equal(t, "Key Takeaways", slides[len(slides)-1].SlideTitle)
}

func TestGenerateSlidesGarbageResponseFallsBack(t *testing.T) {
	svc := NewSlideService(&stubAI{body: "I cannot help with that."})

	slides, provenance := svc.GenerateSlides(context.Background(), &models.GenerateSlidesRequest{Script: "A paragraph long enough to become a content slide here."})

	assert.Equal(t, models.ProvenanceFallback, provenance)
	assert.NotEmpty(t, slides)
}

func TestGenerateSlidesEmptySlidesArrayFallsBack(t *testing.T) {
	svc := NewSlideService(&stubAI{body: `{"slides": []}`})

	slides, provenance := svc.GenerateSlides(context.Background(), &models.GenerateSlidesRequest{Script: "A paragraph long enough to become a content slide here."})

	assert.Equal(t, models.ProvenanceFallback, provenance)
	assert.NotEmpty(t, slides)
}

func TestFallbackSlidesEmptyScript(t *testing.T) {
	svc := NewSlideService(&stubAI{})

	slides := svc.FallbackSlides("", "")

	// No paragraphs still yields the intro and summary slides.
	require.Len(t, slides, 2)
	assert.Equal(t, "Lesson Overview", slides[0].SlideTitle)
	assert.Equal(t, "Key Takeaways", slides[1].SlideTitle)
}

func TestFallbackSlidesDiscardsShortParagraphs(t *testing.T) {
	svc := NewSlideService(&stubAI{})

	script := "tiny\n\nThis paragraph is comfortably longer than the twenty character minimum."
	slides := svc.FallbackSlides(script, "T")

	// intro + 1 content + summary
	assert.Len(t, slides, 3)
}

func TestFallbackSlidesCapsContentSlides(t *testing.T) {
	svc := NewSlideService(&stubAI{})

	var paragraphs []string
	for i := 0; i < 10; i++ {
		paragraphs = append(paragraphs, fmt.Sprintf("Paragraph number %d with plenty of text to clear the length bar.", i))
	}
	slides := svc.FallbackSlides(strings.Join(paragraphs, "\n\n"), "T")

	// intro + at most 6 content + summary
	assert.Len(t, slides, 8)
}

func TestFallbackSlidesPaletteCycles(t *testing.T) {
	svc := NewSlideService(&stubAI{})

	var paragraphs []string
	for i := 0; i < 6; i++ {
		paragraphs = append(paragraphs, fmt.Sprintf("Paragraph number %d with plenty of text to clear the length bar.", i))
	}
	slides := svc.FallbackSlides(strings.Join(paragraphs, "\n\n"), "T")

	require.Len(t, slides, 8)
	content := slides[1:7]
	for i, slide := range content {
		assert.Equal(t, slidePalette[i%len(slidePalette)], slide.ColorAccent)
	}
	// Sixth content slide wraps back to the first color.
	assert.Equal(t, content[0].ColorAccent, content[5].ColorAccent)
}

func TestFallbackSlidesKeyPointConstraints(t *testing.T) {
	svc := NewSlideService(&stubAI{})

	script := "First sentence of meaningful length here. Second sentence also long enough. Third one with content. Fourth sentence right here. Fifth sentence should not appear as its own bullet."
	slides := svc.FallbackSlides(script, "T")

	require.Len(t, slides, 3)
	points := slides[1].KeyPoints
	assert.LessOrEqual(t, len(points), 4)
	for _, p := range points {
		assert.LessOrEqual(t, len(p), 60)
		assert.Greater(t, len(p), 10)
	}
}

func TestFallbackSlidesKeyPointsMultiByteSafe(t *testing.T) {
	svc := NewSlideService(&stubAI{})

	script := "a" + strings.Repeat("é", 40) + "."
	slides := svc.FallbackSlides(script, "T")

	require.Len(t, slides, 3)
	points := slides[1].KeyPoints
	require.NotEmpty(t, points)
	assert.Equal(t, "a"+strings.Repeat("é", 40), points[0])
	for _, p := range points {
		assert.True(t, utf8.ValidString(p))
	}
}

func TestFallbackSlidesKeyPointTruncatesOnRuneBoundary(t *testing.T) {
	svc := NewSlideService(&stubAI{})

	script := strings.Repeat("é", 70) + "."
	slides := svc.FallbackSlides(script, "T")

	require.Len(t, slides, 3)
	points := slides[1].KeyPoints
	require.NotEmpty(t, points)
	assert.True(t, utf8.ValidString(points[0]))
	assert.Equal(t, 60, utf8.RuneCountInString(points[0]))
}

func TestBuildSlidePromptCapsScript(t *testing.T) {
	long := strings.Repeat("x", slideScriptBudget+500)
	prompt := buildSlidePrompt(long, "Title", "")

	assert.NotContains(t, prompt, strings.Repeat("x", slideScriptBudget+1))
	assert.Contains(t, prompt, strings.Repeat("x", slideScriptBudget))
}

func TestBuildSlidePromptCapsMultiByteScriptCleanly(t *testing.T) {
	long := strings.Repeat("é", slideScriptBudget+100)
	prompt := buildSlidePrompt(long, "", "")

	assert.True(t, utf8.ValidString(prompt))
	assert.Contains(t, prompt, strings.Repeat("é", slideScriptBudget))
	assert.NotContains(t, prompt, strings.Repeat("é", slideScriptBudget+1))
}

func TestStripMarkdownFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripMarkdownFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripMarkdownFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripMarkdownFences(`{"a":1}`))
}
