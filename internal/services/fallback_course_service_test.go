package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackCourseLessonCounts(t *testing.T) {
	svc := NewFallbackCourseService()

	tests := []struct {
		size string
		want int
	}{
		{"micro", 4},
		{"masterclass", 13},
		{"standard", 8},
		{"", 8},
		{"huge", 8},
	}

	for _, tt := range tests {
		course := svc.Generate("learn to cook", "beginners", "beginner", tt.size)
		assert.Len(t, course.Lessons, tt.want, "size %q", tt.size)
	}
}

func TestFallbackCourseLessonCountIgnoresOtherInputs(t *testing.T) {
	svc := NewFallbackCourseService()

	a := svc.Generate("outcome one", "parents", "advanced", "micro")
	b := svc.Generate("a completely different outcome", "", "", "micro")
	assert.Equal(t, len(a.Lessons), len(b.Lessons))
}

func TestFallbackCourseTitleFromOutcome(t *testing.T) {
	svc := NewFallbackCourseService()

	short := "Build a morning routine"
	course := svc.Generate(short, "", "", "")
	assert.Equal(t, short, course.CourseTitle)

	long := strings.Repeat("a", 80)
	course = svc.Generate(long, "", "", "")
	assert.Equal(t, strings.Repeat("a", 57)+"...", course.CourseTitle)
	assert.Len(t, []rune(course.CourseTitle), 60)

	exactly60 := strings.Repeat("b", 60)
	course = svc.Generate(exactly60, "", "", "")
	assert.Equal(t, exactly60, course.CourseTitle)
}

func TestFallbackCourseTitleCountsRunes(t *testing.T) {
	svc := NewFallbackCourseService()

	// 60 multi-byte runes must survive untruncated.
	outcome := strings.Repeat("é", 60)
	course := svc.Generate(outcome, "", "", "")
	assert.Equal(t, outcome, course.CourseTitle)
}

func TestFallbackCourseCategory(t *testing.T) {
	svc := NewFallbackCourseService()
	course := svc.Generate("anything", "", "", "")
	assert.Equal(t, "Personal Development", course.Category)
}

func TestFallbackLessonContent(t *testing.T) {
	svc := NewFallbackCourseService()
	course := svc.Generate("run a marathon", "runners", "beginner", "micro")

	for _, lesson := range course.Lessons {
		assert.NotEmpty(t, lesson.LessonTitle)
		assert.Len(t, lesson.VideoTitles, 2)
		assert.Contains(t, lesson.VideoTitles[0], lesson.LessonTitle)

		// Script is four blank-line separated paragraphs.
		paragraphs := strings.Split(lesson.Script, "\n\n")
		assert.Len(t, paragraphs, 4)
		assert.Contains(t, lesson.Script, "run a marathon")

		require.NotNil(t, lesson.Quiz)
		require.Len(t, lesson.Quiz.Questions, 2)
		for _, q := range lesson.Quiz.Questions {
			assert.Len(t, q.Options, 4)
			assert.GreaterOrEqual(t, q.CorrectAnswer, 0)
			assert.Less(t, q.CorrectAnswer, len(q.Options))
		}
		assert.Equal(t, 2, lesson.Quiz.Questions[0].CorrectAnswer)
		assert.Equal(t, 1, lesson.Quiz.Questions[1].CorrectAnswer)

		require.NotNil(t, lesson.Workbook)
		assert.Len(t, lesson.Workbook.Prompts, 3)
	}
}

func TestFallbackModuleCatalogCycles(t *testing.T) {
	svc := NewFallbackCourseService()
	course := svc.Generate("anything", "", "", "masterclass")

	require.Len(t, course.Lessons, 13)
	titles := make(map[string]bool)
	for _, lesson := range course.Lessons {
		titles[lesson.LessonTitle] = true
	}
	// 13 lessons exhaust the catalog without repeats.
	assert.Len(t, titles, 13)
}

func TestFallbackCourseDescriptionDefaults(t *testing.T) {
	svc := NewFallbackCourseService()

	course := svc.Generate("sleep better", "", "", "")
	assert.Contains(t, course.Description, "learners")

	course = svc.Generate("sleep better", "new parents", "beginner", "")
	assert.Contains(t, course.Description, "new parents")
	assert.Contains(t, course.Description, "beginner")
}
