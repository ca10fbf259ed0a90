package services

import (
	"fmt"
	"strings"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/models"
	"github.com/sirupsen/logrus"
)

// FallbackCategory is the fixed classification of generated fallback courses.
const FallbackCategory = "Personal Development"

// fallbackModuleCatalog is the ordered catalog of thematic module names.
// Lesson titles cycle through it by index mod 13, so courses longer than 13
// lessons repeat names. Accepted limitation, the catalog is a stand-in.
var fallbackModuleCatalog = [13]string{
	"Getting Started with Confidence",
	"Understanding the Fundamentals",
	"Setting Clear Goals",
	"Building Your Foundation",
	"Developing Core Skills",
	"Overcoming Common Obstacles",
	"Creating Daily Habits",
	"Measuring Your Progress",
	"Advanced Strategies",
	"Staying Motivated Long-Term",
	"Putting It All Together",
	"Real-World Application",
	"Your Path Forward",
}

var fallbackWorkbookPrompts = []string{
	"What is the most important insight you took from this lesson, and why does it matter to you?",
	"Describe one concrete action you will take this week to apply what you learned.",
	"What obstacle is most likely to get in your way, and how will you respond when it appears?",
}

// FallbackCourseService deterministically synthesizes a complete course when
// the AI generation path fails. It performs no I/O and never fails.
type FallbackCourseService struct{}

func NewFallbackCourseService() *FallbackCourseService {
	return &FallbackCourseService{}
}

// Generate builds a fully populated course from the desired outcome, audience,
// level and size tier. The result is self-consistent and immediately
// renderable; correctness here means "never empty", not "novel content".
func (s *FallbackCourseService) Generate(outcome, audience, level, size string) *models.FallbackCourse {
	lessonCount := lessonCountForSize(size)
	logrus.Infof("Generating fallback course: size=%q lessons=%d outcome length=%d", size, lessonCount, len(outcome))

	course := &models.FallbackCourse{
		CourseTitle: courseTitleFromOutcome(outcome),
		Description: courseDescription(outcome, audience, level),
		Category:    FallbackCategory,
		Lessons:     make([]models.FallbackLesson, 0, lessonCount),
	}

	for i := 0; i < lessonCount; i++ {
		moduleName := fallbackModuleCatalog[i%len(fallbackModuleCatalog)]
		course.Lessons = append(course.Lessons, s.buildLesson(i+1, moduleName, outcome))
	}

	return course
}

func (s *FallbackCourseService) buildLesson(number int, moduleName, outcome string) models.FallbackLesson {
	return models.FallbackLesson{
		LessonTitle: moduleName,
		Description: fmt.Sprintf("In this lesson we focus on %s as part of your journey to %s.", strings.ToLower(moduleName), outcome),
		VideoTitles: []string{
			fmt.Sprintf("%s - Part 1", moduleName),
			fmt.Sprintf("%s - Part 2", moduleName),
		},
		Script:   lessonScript(moduleName, outcome),
		Quiz:     lessonQuiz(moduleName),
		Workbook: lessonWorkbook(),
	}
}

// lessonCountForSize maps the size tier to a lesson count. Unknown or absent
// tiers get the standard size.
func lessonCountForSize(size string) int {
	switch size {
	case "micro":
		return 4
	case "masterclass":
		return 13
	default:
		return 8
	}
}

// courseTitleFromOutcome uses the outcome verbatim when it fits, otherwise
// truncates to 57 characters and appends an ellipsis so the displayed title
// never exceeds 60.
func courseTitleFromOutcome(outcome string) string {
	runes := []rune(outcome)
	if len(runes) <= 60 {
		return outcome
	}
	return string(runes[:57]) + "..."
}

func courseDescription(outcome, audience, level string) string {
	who := audience
	if who == "" {
		who = "learners"
	}
	desc := fmt.Sprintf("A practical, step-by-step course designed for %s who want to %s.", who, outcome)
	if level != "" {
		desc += fmt.Sprintf(" Built for a %s level, with no prior experience assumed beyond that.", level)
	}
	return desc
}

// lessonScript fills a fixed multi-paragraph template: intro, body,
// encouragement, closing. Not AI-personalized, but structurally complete.
func lessonScript(moduleName, outcome string) string {
	paragraphs := []string{
		fmt.Sprintf("Welcome to %s. In this lesson we are going to take a focused look at one of the building blocks on your path to %s. By the end, you will have a clear picture of what this step involves and why it matters.", moduleName, outcome),
		fmt.Sprintf("Let's start with the core idea. %s is not about doing everything at once. It is about identifying the one or two moves that create momentum, practicing them deliberately, and noticing what changes. As you work through the examples in this lesson, keep your own situation in mind and ask yourself where each idea fits.", moduleName),
		fmt.Sprintf("Here is the encouraging part: everyone who has achieved %s started exactly where you are now. The difference is not talent, it is consistent, honest practice. If something in this lesson feels difficult, that is a signal you are working on the right thing, not a signal to stop.", outcome),
		fmt.Sprintf("To wrap up: review the key points once more, complete the workbook prompts for %s, and take the short quiz to check your understanding. Then move on to the next lesson whenever you are ready. See you there.", moduleName),
	}
	return strings.Join(paragraphs, "\n\n")
}

// lessonQuiz returns the fixed two-question check. Identical across lessons by
// design, a stand-in rather than pedagogically tailored content.
func lessonQuiz(moduleName string) *models.Quiz {
	return &models.Quiz{
		Questions: []models.QuizQuestion{
			{
				Question: fmt.Sprintf("What is the most effective way to make progress with %s?", moduleName),
				Options: []string{
					"Wait until you feel fully ready before starting",
					"Try to do everything at once",
					"Practice one or two key moves consistently",
					"Skip ahead to the advanced material",
				},
				CorrectAnswer: 2,
			},
			{
				Question: "When a concept in this lesson feels difficult, what does that usually mean?",
				Options: []string{
					"You should stop and pick an easier course",
					"You are working on the right thing",
					"The lesson was written incorrectly",
					"You need more talent to continue",
				},
				CorrectAnswer: 1,
			},
		},
	}
}

func lessonWorkbook() *models.Workbook {
	prompts := make([]string, len(fallbackWorkbookPrompts))
	copy(prompts, fallbackWorkbookPrompts)
	return &models.Workbook{Prompts: prompts}
}
