package excel

import (
	"bytes"
	"testing"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleCourse() *models.Course {
	return &models.Course{
		CourseTitle: "Sample Course",
		Lessons: []models.Lesson{
			{
				LessonTitle: "First Lesson",
				Description: "About the first thing",
				Videos:      []models.Video{{Title: "V1"}, {Title: "V2"}},
				QuizFile:    models.InlineDataMarker,
				QuizData: &models.Quiz{Questions: []models.QuizQuestion{
					{Question: "Q1?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 2},
				}},
				WorkbookFile: models.InlineDataMarker,
				WorkbookData: &models.Workbook{Prompts: []string{"Reflect."}},
			},
			{
				LessonTitle: "Second Lesson",
				Videos:      []models.Video{},
			},
		},
	}
}

func TestExportCourseSheets(t *testing.T) {
	svc := NewExcelService()

	data, err := svc.ExportCourse(sampleCourse())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Outline")
	assert.Contains(t, sheets, "Quizzes")
	assert.Contains(t, sheets, "Workbooks")
	assert.NotContains(t, sheets, "Sheet1")
}

func TestExportCourseOutlineRows(t *testing.T) {
	svc := NewExcelService()

	data, err := svc.ExportCourse(sampleCourse())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Outline", "B2")
	require.NoError(t, err)
	assert.Equal(t, "First Lesson", title)

	videos, err := f.GetCellValue("Outline", "D2")
	require.NoError(t, err)
	assert.Equal(t, "2", videos)

	hasQuiz, err := f.GetCellValue("Outline", "E2")
	require.NoError(t, err)
	assert.Equal(t, "Yes", hasQuiz)

	hasQuiz2, err := f.GetCellValue("Outline", "E3")
	require.NoError(t, err)
	assert.Equal(t, "No", hasQuiz2)
}

func TestExportCourseQuizRows(t *testing.T) {
	svc := NewExcelService()

	data, err := svc.ExportCourse(sampleCourse())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	question, err := f.GetCellValue("Quizzes", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Q1?", question)

	correct, err := f.GetCellValue("Quizzes", "G2")
	require.NoError(t, err)
	assert.Equal(t, "C", correct)
}

func TestExportCourseQuizCorrectAnswerBeyondWrittenColumns(t *testing.T) {
	svc := NewExcelService()

	course := &models.Course{
		CourseTitle: "Overflow",
		Lessons: []models.Lesson{
			{
				LessonTitle: "Lesson",
				QuizFile:    models.InlineDataMarker,
				QuizData: &models.Quiz{Questions: []models.QuizQuestion{
					{Question: "Q1?", Options: []string{"a", "b", "c", "d", "e"}, CorrectAnswer: 4},
					{Question: "Q2?", Options: []string{"a", "b", "c", "d", "e"}, CorrectAnswer: 3},
				}},
			},
		},
	}

	data, err := svc.ExportCourse(course)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	// The fifth option never gets a column, so no letter is written for it.
	correct, err := f.GetCellValue("Quizzes", "G2")
	require.NoError(t, err)
	assert.Equal(t, "", correct)

	correct2, err := f.GetCellValue("Quizzes", "G3")
	require.NoError(t, err)
	assert.Equal(t, "D", correct2)
}

func TestColumnToLetter(t *testing.T) {
	assert.Equal(t, "A", columnToLetter(1))
	assert.Equal(t, "G", columnToLetter(7))
	assert.Equal(t, "Z", columnToLetter(26))
	assert.Equal(t, "AA", columnToLetter(27))
}
