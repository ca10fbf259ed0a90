package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/database/repository"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/models"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/utils"
	"github.com/sirupsen/logrus"
)

// CourseService orchestrates course generation: ask the model, fall back to
// the deterministic generator when it fails, normalize whichever shape came
// back, and persist the result. Generation never fails outright; the worst
// case is a fallback course with "fallback" provenance.
type CourseService struct {
	ai         aiGenerator
	fallback   *FallbackCourseService
	courseRepo *repository.CourseRepository
	jobs       *GenerationJobService
}

func NewCourseService(ai aiGenerator, fallback *FallbackCourseService, courseRepo *repository.CourseRepository, jobs *GenerationJobService) *CourseService {
	return &CourseService{
		ai:         ai,
		fallback:   fallback,
		courseRepo: courseRepo,
		jobs:       jobs,
	}
}

// GenerateCourse runs the full pipeline synchronously and records a job so
// SSE subscribers can follow along.
func (s *CourseService) GenerateCourse(ctx context.Context, userID string, req *models.GenerateCourseRequest) (*models.GenerateCourseResponse, error) {
	job, err := s.jobs.CreateJob(userID, "", "course")
	if err != nil {
		logrus.Warnf("Could not create generation job for user %s: %v", userID, err)
	}
	jobID := ""
	if job != nil {
		jobID = job.ID
		s.jobs.Advance(jobID, models.JobStatusRunning, 10, "Requesting course outline from the model")
	}

	raw, provenance := s.produceRawCourse(ctx, req)
	if jobID != "" {
		s.jobs.Advance(jobID, models.JobStatusRunning, 70, "Normalizing course structure")
	}

	course := NormalizeCourse(raw)

	record := &models.CourseRecord{
		UserID:      userID,
		Title:       course.CourseTitle,
		Category:    course.Category,
		Source:      provenance,
		LessonCount: len(course.Lessons),
	}
	if data, err := courseToJSON(course); err == nil {
		record.Data = data
	} else {
		logrus.Errorf("Failed to encode course body for user %s: %v", userID, err)
	}

	if err := s.courseRepo.Create(record); err != nil {
		if jobID != "" {
			s.jobs.Fail(jobID, "failed to save course")
		}
		return nil, fmt.Errorf("failed to save course: %w", err)
	}

	if jobID != "" {
		s.jobs.Complete(jobID, map[string]interface{}{
			"provenance":   provenance,
			"course_id":    record.ID,
			"lesson_count": record.LessonCount,
		})
	}

	return &models.GenerateCourseResponse{
		Success:    true,
		Provenance: provenance,
		Course:     course,
		CourseID:   record.ID,
		JobID:      jobID,
	}, nil
}

// produceRawCourse returns the raw course value to normalize plus its
// provenance. Any model failure, including unparseable output, lands on the
// deterministic generator.
func (s *CourseService) produceRawCourse(ctx context.Context, req *models.GenerateCourseRequest) (interface{}, string) {
	payload := map[string]interface{}{
		"outcome":  req.Outcome,
		"audience": req.Audience,
		"level":    req.Level,
		"size":     req.Size,
	}

	body, err := s.ai.Generate(ctx, "/v1/generate/course", payload)
	if err != nil {
		logrus.Warnf("Course generation call failed, using fallback: %v", err)
		return s.fallback.Generate(req.Outcome, req.Audience, req.Level, req.Size), models.ProvenanceFallback
	}

	raw, err := parseCourseResponse(body)
	if err != nil {
		logrus.Warnf("Course response unusable, using fallback: %v", err)
		return s.fallback.Generate(req.Outcome, req.Audience, req.Level, req.Size), models.ProvenanceFallback
	}

	return raw, models.ProvenanceAI
}

// parseCourseResponse accepts the whole body as JSON or the outermost {...}
// span when the model wraps it in prose.
func parseCourseResponse(body string) (interface{}, error) {
	cleaned := stripMarkdownFences(body)

	var raw interface{}
	if err := json.Unmarshal([]byte(cleaned), &raw); err == nil {
		return raw, nil
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(cleaned[start:end+1]), &raw); err == nil {
			return raw, nil
		}
	}

	return nil, fmt.Errorf("no parseable course object in response")
}

// GetCourse loads a stored course and decodes its normalized body.
func (s *CourseService) GetCourse(id, userID string) (*models.CourseRecord, *models.Course, error) {
	record, err := s.courseRepo.GetByID(id, userID)
	if err != nil {
		return nil, nil, err
	}

	course, err := courseFromJSON(record.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode course body: %w", err)
	}
	return record, course, nil
}

func (s *CourseService) ListCourses(userID string, pagination *utils.Pagination) ([]models.CourseListItem, error) {
	records, err := s.courseRepo.GetByUserID(userID, pagination)
	if err != nil {
		return nil, err
	}

	items := make([]models.CourseListItem, 0, len(records))
	for _, r := range records {
		items = append(items, models.CourseListItem{
			ID:          r.ID,
			Title:       r.Title,
			Category:    r.Category,
			Source:      r.Source,
			LessonCount: r.LessonCount,
			CreatedAt:   r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
			UpdatedAt:   r.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	return items, nil
}

func (s *CourseService) DeleteCourse(id, userID string) error {
	return s.courseRepo.Delete(id, userID)
}

// SaveBranding writes the uploaded artwork URLs into the stored course body.
func (s *CourseService) SaveBranding(courseID, userID string, result *models.BrandingResult) error {
	record, course, err := s.GetCourse(courseID, userID)
	if err != nil {
		return err
	}

	if result.LogoURL != "" {
		course.LogoURL = result.LogoURL
	}
	if result.BannerURL != "" {
		course.BannerURL = result.BannerURL
	}

	data, err := courseToJSON(course)
	if err != nil {
		return fmt.Errorf("failed to encode course body: %w", err)
	}
	record.Data = data
	return s.courseRepo.Update(record)
}

// SaveMarketing writes the generated sales copy into the stored course body.
func (s *CourseService) SaveMarketing(courseID, userID, description string) error {
	record, course, err := s.GetCourse(courseID, userID)
	if err != nil {
		return err
	}

	course.MarketingHook = description
	data, err := courseToJSON(course)
	if err != nil {
		return fmt.Errorf("failed to encode course body: %w", err)
	}
	record.Data = data
	return s.courseRepo.Update(record)
}

func courseToJSON(course *models.Course) (models.JSON, error) {
	raw, err := json.Marshal(course)
	if err != nil {
		return nil, err
	}
	var data models.JSON
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func courseFromJSON(data models.JSON) (*models.Course, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var course models.Course
	if err := json.Unmarshal(raw, &course); err != nil {
		return nil, err
	}
	return &course, nil
}
