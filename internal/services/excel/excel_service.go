package excel

import (
	"bytes"
	"fmt"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// ExcelService exports a normalized course to a workbook with one sheet for
// the outline, one for quizzes and one for workbook prompts.
type ExcelService struct{}

func NewExcelService() *ExcelService {
	return &ExcelService{}
}

// ExportCourse renders the course into xlsx bytes ready to stream to the
// client.
func (s *ExcelService) ExportCourse(course *models.Course) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logrus.Errorf("Failed to close excel file: %v", err)
		}
	}()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4F46E5"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := s.writeOutlineSheet(f, course, headerStyle); err != nil {
		return nil, err
	}
	if err := s.writeQuizSheet(f, course, headerStyle); err != nil {
		return nil, err
	}
	if err := s.writeWorkbookSheet(f, course, headerStyle); err != nil {
		return nil, err
	}

	// The default sheet is replaced by Outline.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		logrus.Warnf("Could not remove default sheet: %v", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *ExcelService) writeOutlineSheet(f *excelize.File, course *models.Course, headerStyle int) error {
	sheet := "Outline"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	headers := []string{"#", "Lesson", "Description", "Videos", "Has Quiz", "Has Workbook"}
	for i, h := range headers {
		cell := fmt.Sprintf("%s1", columnToLetter(i+1))
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	f.SetColWidth(sheet, "B", "B", 40)
	f.SetColWidth(sheet, "C", "C", 60)
	f.SetColWidth(sheet, "D", "D", 12)

	for i, lesson := range course.Lessons {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), lesson.LessonTitle)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), lesson.Description)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), len(lesson.Videos))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), yesNo(lesson.HasInlineQuiz() || lesson.QuizFile != ""))
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), yesNo(lesson.HasInlineWorkbook() || lesson.WorkbookFile != ""))
	}
	return nil
}

func (s *ExcelService) writeQuizSheet(f *excelize.File, course *models.Course, headerStyle int) error {
	sheet := "Quizzes"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	headers := []string{"Lesson", "Question", "Option A", "Option B", "Option C", "Option D", "Correct"}
	for i, h := range headers {
		cell := fmt.Sprintf("%s1", columnToLetter(i+1))
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	f.SetColWidth(sheet, "A", "A", 40)
	f.SetColWidth(sheet, "B", "B", 60)
	f.SetColWidth(sheet, "C", "F", 30)

	row := 2
	for _, lesson := range course.Lessons {
		if !lesson.HasInlineQuiz() {
			continue
		}
		for _, q := range lesson.QuizData.Questions {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), lesson.LessonTitle)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), q.Question)
			written := len(q.Options)
			if written > 4 {
				written = 4
			}
			for i := 0; i < written; i++ {
				f.SetCellValue(sheet, fmt.Sprintf("%s%d", columnToLetter(i+3), row), q.Options[i])
			}
			// The letter only makes sense for an option column that was
			// actually written.
			if q.CorrectAnswer >= 0 && q.CorrectAnswer < written {
				f.SetCellValue(sheet, fmt.Sprintf("G%d", row), string(rune('A'+q.CorrectAnswer)))
			}
			row++
		}
	}
	return nil
}

func (s *ExcelService) writeWorkbookSheet(f *excelize.File, course *models.Course, headerStyle int) error {
	sheet := "Workbooks"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	headers := []string{"Lesson", "Prompt"}
	for i, h := range headers {
		cell := fmt.Sprintf("%s1", columnToLetter(i+1))
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	f.SetColWidth(sheet, "A", "A", 40)
	f.SetColWidth(sheet, "B", "B", 80)

	row := 2
	for _, lesson := range course.Lessons {
		if !lesson.HasInlineWorkbook() {
			continue
		}
		for _, prompt := range lesson.WorkbookData.Prompts {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), lesson.LessonTitle)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), prompt)
			row++
		}
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// columnToLetter converts a one-based column number to its letter form.
func columnToLetter(col int) string {
	letter := ""
	for col > 0 {
		col--
		letter = string(rune('A'+col%26)) + letter
		col /= 26
	}
	return letter
}
