package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/models"
	"github.com/sirupsen/logrus"
)

// slideScriptBudget caps the script excerpt sent to the model to bound
// request size.
const slideScriptBudget = 8000

// slidePalette is the fixed accent palette the fallback synthesizer cycles
// through by content-slide index.
var slidePalette = [5]string{"#6366F1", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6"}

var paragraphSplitRe = regexp.MustCompile(`\n\s*\n`)

// aiGenerator is the slice of AIClient the generation services need.
type aiGenerator interface {
	Generate(ctx context.Context, path string, payload map[string]interface{}) (string, error)
}

// SlideService turns a lesson script into a slide deck. It asks the remote
// model for structured slide JSON, repairs what it can, and falls back to a
// deterministic paragraph-splitting synthesizer when the model output is
// absent, malformed or empty. The result is never empty for a non-empty
// script.
type SlideService struct {
	ai aiGenerator
}

func NewSlideService(ai aiGenerator) *SlideService {
	return &SlideService{ai: ai}
}

// GenerateSlides produces the deck plus its provenance ("ai" or "fallback").
func (s *SlideService) GenerateSlides(ctx context.Context, req *models.GenerateSlidesRequest) ([]models.Slide, string) {
	payload := map[string]interface{}{
		"lesson_id": req.LessonID,
		"prompt":    buildSlidePrompt(req.Script, req.Title, req.Style),
	}

	body, err := s.ai.Generate(ctx, "/v1/generate/slides", payload)
	if err != nil {
		logrus.Warnf("Slide generation call failed for lesson %s, using fallback: %v", req.LessonID, err)
		return s.FallbackSlides(req.Script, req.Title), models.ProvenanceFallback
	}

	slides, err := parseSlideResponse(body)
	if err != nil || len(slides) == 0 {
		logrus.Warnf("Slide response unusable for lesson %s, using fallback: %v", req.LessonID, err)
		return s.FallbackSlides(req.Script, req.Title), models.ProvenanceFallback
	}

	return slides, models.ProvenanceAI
}

func buildSlidePrompt(script, title, style string) string {
	excerpt := truncateRunes(script, slideScriptBudget)

	var b strings.Builder
	b.WriteString("Create a slide deck for the following lesson script. ")
	b.WriteString("Return ONLY a JSON object of the form {\"slides\": [{\"SlideTitle\": string, \"KeyPoints\": [string], \"IconDescription\": string, \"ColorAccent\": string}]}. ")
	b.WriteString("Produce 5-10 slides. Each SlideTitle is at most 6 words. Each slide has 3-6 KeyPoints of at most 10 words. ColorAccent is a hex color.")
	if style != "" {
		b.WriteString(fmt.Sprintf(" Visual style preference: %s.", style))
	}
	if title != "" {
		b.WriteString(fmt.Sprintf("\n\nLesson title: %s", title))
	}
	b.WriteString("\n\nScript:\n")
	b.WriteString(excerpt)
	return b.String()
}

// parseSlideResponse interprets the model's free-form response. Attempts, in
// order: the whole body as JSON (markdown fences stripped), then the first
// substring that looks like a JSON object containing a "slides" key.
func parseSlideResponse(body string) ([]models.Slide, error) {
	cleaned := stripMarkdownFences(body)

	var deck models.SlideDeck
	if err := json.Unmarshal([]byte(cleaned), &deck); err == nil && len(deck.Slides) > 0 {
		return deck.Slides, nil
	}

	if candidate, ok := extractSlidesObject(cleaned); ok {
		if err := json.Unmarshal([]byte(candidate), &deck); err == nil && len(deck.Slides) > 0 {
			return deck.Slides, nil
		}
	}

	return nil, fmt.Errorf("no parseable slides object in response")
}

// stripMarkdownFences removes ```json ... ``` wrappers models like to add.
func stripMarkdownFences(response string) string {
	cleaned := strings.TrimSpace(response)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}
	return cleaned
}

// extractSlidesObject scans for the outermost {...} span that mentions a
// "slides" key, for responses that wrap the JSON in prose.
func extractSlidesObject(body string) (string, bool) {
	start := strings.Index(body, "{")
	end := strings.LastIndex(body, "}")
	if start < 0 || end <= start {
		return "", false
	}
	candidate := body[start : end+1]
	if !strings.Contains(candidate, `"slides"`) {
		return "", false
	}
	return candidate, true
}

// FallbackSlides deterministically segments the script into a deck: one fixed
// intro slide, up to 6 content slides from paragraphs, one fixed summary
// slide. Always at least 2 slides.
func (s *SlideService) FallbackSlides(script, title string) []models.Slide {
	deckTitle := title
	if deckTitle == "" {
		deckTitle = "Lesson Overview"
	}

	slides := []models.Slide{
		{
			SlideTitle:      deckTitle,
			KeyPoints:       []string{"What this lesson covers", "Why it matters", "How to get the most out of it"},
			IconDescription: "an open book with a lightbulb",
			ColorAccent:     slidePalette[0],
		},
	}

	paragraphs := splitParagraphs(script)
	for i, p := range paragraphs {
		if i >= 6 {
			break
		}
		slides = append(slides, models.Slide{
			SlideTitle:      contentSlideTitle(p, i+1),
			KeyPoints:       keyPointsFromParagraph(p),
			IconDescription: "a numbered step marker",
			ColorAccent:     slidePalette[i%len(slidePalette)],
		})
	}

	slides = append(slides, models.Slide{
		SlideTitle:      "Key Takeaways",
		KeyPoints:       []string{"Review the main points", "Complete the workbook prompts", "Take the quiz to check understanding"},
		IconDescription: "a checklist with a checkmark",
		ColorAccent:     slidePalette[len(paragraphs)%len(slidePalette)],
	})

	return slides
}

// splitParagraphs splits on blank-line boundaries and discards fragments too
// short to carry a point.
func splitParagraphs(script string) []string {
	var out []string
	for _, p := range paragraphSplitRe.Split(script, -1) {
		p = strings.TrimSpace(p)
		if len(p) > 20 {
			out = append(out, p)
		}
	}
	return out
}

// contentSlideTitle uses the paragraph's first few words, or a numbered
// default when the paragraph starts oddly.
func contentSlideTitle(paragraph string, number int) string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return fmt.Sprintf("Step %d", number)
	}
	if len(words) > 5 {
		words = words[:5]
	}
	title := strings.Join(words, " ")
	title = strings.TrimRight(title, ".,;:!?")
	if title == "" {
		return fmt.Sprintf("Step %d", number)
	}
	return title
}

// keyPointsFromParagraph splits on terminal punctuation, trims, caps each
// sentence at 60 characters, keeps only fragments over 10 characters, and
// returns at most 4 bullets.
func keyPointsFromParagraph(paragraph string) []string {
	sentences := strings.FieldsFunc(paragraph, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	var points []string
	for _, sentence := range sentences {
		sentence = truncateRunes(strings.TrimSpace(sentence), 60)
		if len(sentence) > 10 {
			points = append(points, sentence)
		}
		if len(points) == 4 {
			break
		}
	}

	if len(points) == 0 {
		points = append(points, truncateRunes(paragraph, 60))
	}
	return points
}

// truncateRunes caps s at n runes so a multi-byte character is never split.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
