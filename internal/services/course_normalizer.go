package services

import (
	"encoding/json"
	"fmt"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/models"
)

// NormalizeCourse maps a raw course object of unknown shape onto the canonical
// Course schema. Three producers feed this boundary (the AI generation path,
// the deterministic fallback, and the legacy backend) and they disagree on
// field names for videos, quizzes, workbooks and titles; all of the "which
// field did this producer use" knowledge lives here.
//
// Total function: accepts anything, including nil, and never fails. Missing
// fields get best-effort defaults rather than errors.
func NormalizeCourse(raw interface{}) *models.Course {
	m := toMap(raw)
	if m == nil {
		return &models.Course{CourseTitle: models.DefaultCourseTitle, Lessons: []models.Lesson{}}
	}

	course := &models.Course{
		CourseTitle:   firstString(m, "course_title", "title"),
		Description:   stringField(m, "description"),
		Category:      stringField(m, "category"),
		MarketingHook: firstString(m, "marketing_hook", "hook"),
		LogoURL:       stringField(m, "logo_url"),
		BannerURL:     stringField(m, "banner_url"),
		PackageURL:    stringField(m, "package_url"),
		Lessons:       []models.Lesson{},
	}
	if course.CourseTitle == "" {
		course.CourseTitle = models.DefaultCourseTitle
	}

	rawLessons, _ := m["lessons"].([]interface{})
	for i, rl := range rawLessons {
		lm, _ := rl.(map[string]interface{})
		course.Lessons = append(course.Lessons, normalizeLesson(lm, i+1))
	}

	return course
}

func normalizeLesson(lm map[string]interface{}, number int) models.Lesson {
	lesson := models.Lesson{Videos: []models.Video{}}
	if lm == nil {
		lesson.LessonTitle = fmt.Sprintf("Lesson %d", number)
		return lesson
	}

	lesson.LessonTitle = firstString(lm, "lesson_title", "title")
	if lesson.LessonTitle == "" {
		lesson.LessonTitle = fmt.Sprintf("Lesson %d", number)
	}
	lesson.Description = stringField(lm, "description")

	// Displayable script text lives under either of two names; first match wins.
	lesson.Script = stringField(lm, "script")
	if lesson.Script == "" {
		lesson.Script = stringField(lm, "script_content")
	}

	lesson.Videos = normalizeVideos(lm)

	// Quiz: inline data wins when a non-empty questions list is present. When
	// the producer supplied no real file reference alongside it, the sentinel
	// marks "quiz exists, render inline".
	lesson.QuizFile = stringField(lm, "quiz_file")
	if quiz := extractQuiz(lm["quiz"]); quiz != nil {
		lesson.QuizData = quiz
		if lesson.QuizFile == "" {
			lesson.QuizFile = models.InlineDataMarker
		}
	}

	// Workbook resolution is symmetric, keyed on a non-empty prompts list.
	lesson.WorkbookFile = stringField(lm, "workbook_file")
	if wb := extractWorkbook(lm["workbook"]); wb != nil {
		lesson.WorkbookData = wb
		if lesson.WorkbookFile == "" {
			lesson.WorkbookFile = models.InlineDataMarker
		}
	}

	return lesson
}

// normalizeVideos resolves the lesson's video list with strict precedence:
// a non-empty "videos" array wins; otherwise "video_titles" synthesizes one
// video per title; otherwise the lesson has no videos.
func normalizeVideos(lm map[string]interface{}) []models.Video {
	videos := []models.Video{}

	if rawVideos, ok := lm["videos"].([]interface{}); ok && len(rawVideos) > 0 {
		for i, rv := range rawVideos {
			videos = append(videos, normalizeVideo(rv, i+1))
		}
		return videos
	}

	if rawTitles, ok := lm["video_titles"].([]interface{}); ok {
		for i, rt := range rawTitles {
			title, _ := rt.(string)
			if title == "" {
				title = fmt.Sprintf("Video %d", i+1)
			}
			videos = append(videos, models.Video{Title: title})
		}
	}

	return videos
}

// normalizeVideo handles both encodings of a source video entry: a bare string
// is a script-file reference with an auto-numbered title; an object carries
// explicit fields, each defaulted independently.
func normalizeVideo(rv interface{}, number int) models.Video {
	switch v := rv.(type) {
	case string:
		return models.Video{
			Title:      fmt.Sprintf("Video %d", number),
			ScriptFile: v,
		}
	case map[string]interface{}:
		video := models.Video{
			Title:         stringField(v, "title"),
			ScriptFile:    stringField(v, "script_file"),
			ScriptContent: stringField(v, "script_content"),
		}
		if video.Title == "" {
			video.Title = fmt.Sprintf("Video %d", number)
		}
		return video
	default:
		return models.Video{Title: fmt.Sprintf("Video %d", number)}
	}
}

// extractQuiz returns the inline quiz when the raw value is an object with a
// non-empty questions list, nil otherwise.
func extractQuiz(raw interface{}) *models.Quiz {
	qm, ok := raw.(map[string]interface{})
	if !ok {
		return nil
	}
	questions, ok := qm["questions"].([]interface{})
	if !ok || len(questions) == 0 {
		return nil
	}

	var quiz models.Quiz
	if err := remarshal(qm, &quiz); err != nil || len(quiz.Questions) == 0 {
		return nil
	}
	return &quiz
}

func extractWorkbook(raw interface{}) *models.Workbook {
	wm, ok := raw.(map[string]interface{})
	if !ok {
		return nil
	}
	prompts, ok := wm["prompts"].([]interface{})
	if !ok || len(prompts) == 0 {
		return nil
	}

	var wb models.Workbook
	if err := remarshal(wm, &wb); err != nil || len(wb.Prompts) == 0 {
		return nil
	}
	return &wb
}

// toMap reduces any object-shaped input to a generic map through a JSON
// round trip. Non-object inputs (and nil) yield nil.
func toMap(raw interface{}) map[string]interface{} {
	if raw == nil {
		return nil
	}
	if m, ok := raw.(map[string]interface{}); ok {
		return m
	}

	var m map[string]interface{}
	if err := remarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

func remarshal(src, dst interface{}) error {
	b, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func firstString(m map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s := stringField(m, key); s != "" {
			return s
		}
	}
	return ""
}
