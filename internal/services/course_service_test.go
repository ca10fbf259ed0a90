package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCourseResponseDirect(t *testing.T) {
	raw, err := parseCourseResponse(`{"course_title": "C", "lessons": []}`)
	require.NoError(t, err)

	course := NormalizeCourse(raw)
	assert.Equal(t, "C", course.CourseTitle)
}

func TestParseCourseResponseFenced(t *testing.T) {
	raw, err := parseCourseResponse("```json\n{\"title\": \"Fenced\", \"lessons\": []}\n```")
	require.NoError(t, err)

	course := NormalizeCourse(raw)
	assert.Equal(t, "Fenced", course.CourseTitle)
}

func TestParseCourseResponseEmbedded(t *testing.T) {
	body := `Here you go: {"course_title": "Embedded", "lessons": []} enjoy!`
	raw, err := parseCourseResponse(body)
	require.NoError(t, err)

	course := NormalizeCourse(raw)
	assert.Equal(t, "Embedded", course.CourseTitle)
}

func TestParseCourseResponseGarbage(t *testing.T) {
	_, err := parseCourseResponse("I refuse to answer.")
	assert.Error(t, err)
}

func TestCourseJSONRoundTrip(t *testing.T) {
	original := NormalizeCourse(NewFallbackCourseService().Generate("paint watercolors", "", "", "micro"))

	data, err := courseToJSON(original)
	require.NoError(t, err)

	decoded, err := courseFromJSON(data)
	require.NoError(t, err)

	assert.Equal(t, original.CourseTitle, decoded.CourseTitle)
	require.Len(t, decoded.Lessons, len(original.Lessons))
	for i := range original.Lessons {
		assert.Equal(t, original.Lessons[i].LessonTitle, decoded.Lessons[i].LessonTitle)
		assert.Equal(t, original.Lessons[i].QuizFile, decoded.Lessons[i].QuizFile)
		if original.Lessons[i].HasInlineQuiz() {
			require.True(t, decoded.Lessons[i].HasInlineQuiz())
			assert.Equal(t, original.Lessons[i].QuizData.Questions, decoded.Lessons[i].QuizData.Questions)
		}
	}
}
