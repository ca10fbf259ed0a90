package services

import (
	"encoding/json"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/database/repository"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/models"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/utils"
	"github.com/sirupsen/logrus"
)

// GenerationJobService tracks long-running generation work. Progress events
// arrive from RabbitMQ (workers) or the authenticated callback endpoint; each
// event updates the job row and is fanned out over SSE.
type GenerationJobService struct {
	jobRepo *repository.GenerationJobRepository
	hub     *SSEHub
	rabbit  *RabbitMQService // nil when the broker is not configured
}

func NewGenerationJobService(jobRepo *repository.GenerationJobRepository, hub *SSEHub, rabbit *RabbitMQService) *GenerationJobService {
	return &GenerationJobService{jobRepo: jobRepo, hub: hub, rabbit: rabbit}
}

// CreateJob opens a new pending job for the user.
func (s *GenerationJobService) CreateJob(userID, courseID, jobType string) (*models.GenerationJob, error) {
	job := &models.GenerationJob{
		UserID:   userID,
		CourseID: courseID,
		JobType:  jobType,
		Status:   models.JobStatusPending,
		Progress: 0,
	}
	if err := s.jobRepo.Create(job); err != nil {
		return nil, err
	}
	return job, nil
}

// ErrNotJobOwner is returned when a worker event targets a job owned by a
// different user than the one the presented API key belongs to.
var ErrNotJobOwner = errors.New("job belongs to another user")

// ApplyWorkerEvent applies an event arriving through the callback endpoint.
// The event is only accepted when the target job is owned by the same user
// the worker's API key was issued for.
func (s *GenerationJobService) ApplyWorkerEvent(event *models.JobProgressEvent, workerUserID string) error {
	job, err := s.jobRepo.GetByID(event.JobID)
	if err != nil {
		return err
	}
	if job.UserID != workerUserID {
		return ErrNotJobOwner
	}
	return s.ApplyEvent(event)
}

// ApplyEvent merges a progress event into its job and broadcasts the result.
func (s *GenerationJobService) ApplyEvent(event *models.JobProgressEvent) error {
	job, err := s.jobRepo.GetByID(event.JobID)
	if err != nil {
		return err
	}

	if event.Status != "" {
		job.Status = event.Status
	}
	if event.Progress > job.Progress {
		job.Progress = event.Progress
	}
	if event.Message != "" {
		job.Message = event.Message
	}
	if event.Error != "" {
		job.Error = event.Error
		job.Status = models.JobStatusFailed
	}
	if len(event.Metadata) > 0 {
		if job.Metadata == nil {
			job.Metadata = models.JSON{}
		}
		for k, v := range event.Metadata {
			job.Metadata[k] = v
		}
	}

	if err := s.jobRepo.Update(job); err != nil {
		return err
	}

	// Fill the owner in before broadcasting so user-level subscribers see it.
	event.UserID = job.UserID
	s.hub.BroadcastProgress(event)
	return nil
}

// Advance publishes a progress update originating inside this process. It
// goes through the broker when one is configured so multiple instances stay
// consistent, otherwise it is applied directly.
func (s *GenerationJobService) Advance(jobID, status string, progress int, message string) {
	event := &models.JobProgressEvent{
		JobID:    jobID,
		Status:   status,
		Progress: progress,
		Message:  message,
	}
	s.dispatch(event)
}

// Fail marks the job failed with the given reason.
func (s *GenerationJobService) Fail(jobID, reason string) {
	event := &models.JobProgressEvent{
		JobID:  jobID,
		Status: models.JobStatusFailed,
		Error:  reason,
	}
	s.dispatch(event)
}

// Complete marks the job done, attaching result metadata.
func (s *GenerationJobService) Complete(jobID string, metadata map[string]interface{}) {
	event := &models.JobProgressEvent{
		JobID:    jobID,
		Status:   models.JobStatusCompleted,
		Progress: 100,
		Metadata: metadata,
	}
	s.dispatch(event)
}

func (s *GenerationJobService) dispatch(event *models.JobProgressEvent) {
	if s.rabbit != nil {
		if err := s.rabbit.PublishJobEvent(event); err == nil {
			return
		}
		logrus.Warnf("Failed to publish job event for %s, applying locally", event.JobID)
	}
	if err := s.ApplyEvent(event); err != nil {
		logrus.Errorf("Failed to apply job event for %s: %v", event.JobID, err)
	}
}

func (s *GenerationJobService) GetJob(jobID, userID string) (*models.GenerationJob, error) {
	return s.jobRepo.GetByIDForUser(jobID, userID)
}

func (s *GenerationJobService) ListJobs(userID string, pagination *utils.Pagination) ([]models.GenerationJob, error) {
	return s.jobRepo.GetByUserID(userID, pagination)
}

// StartConsumer drains progress events from RabbitMQ until stopChan closes.
func (s *GenerationJobService) StartConsumer(stopChan chan struct{}) {
	if s.rabbit == nil {
		logrus.Info("RabbitMQ not configured, job progress consumer disabled")
		return
	}

	deliveries, err := s.rabbit.Consume()
	if err != nil {
		logrus.Errorf("Failed to start job progress consumer: %v", err)
		return
	}

	go func() {
		logrus.Info("Job progress consumer started")
		for {
			select {
			case <-stopChan:
				logrus.Info("Job progress consumer stopping")
				return
			case delivery, ok := <-deliveries:
				if !ok {
					logrus.Warn("Job progress delivery channel closed")
					return
				}
				var event models.JobProgressEvent
				if err := json.Unmarshal(delivery.Body, &event); err != nil {
					logrus.Errorf("Discarding malformed job event: %v", err)
					delivery.Nack(false, false)
					continue
				}
				if err := s.ApplyEvent(&event); err != nil {
					logrus.Errorf("Failed to apply job event for %s: %v", event.JobID, err)
					delivery.Nack(false, false)
					continue
				}
				delivery.Ack(false)
			}
		}
	}()
}

// StartRetentionCleanup prunes finished jobs past JOB_RETENTION_DAYS
// (default 30) once a day.
func (s *GenerationJobService) StartRetentionCleanup(stopChan chan struct{}) {
	retentionDays := 30
	if v := os.Getenv("JOB_RETENTION_DAYS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			retentionDays = parsed
		}
	}

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-stopChan:
				return
			case <-ticker.C:
				cutoff := time.Now().AddDate(0, 0, -retentionDays)
				removed, err := s.jobRepo.DeleteOlderThan(cutoff)
				if err != nil {
					logrus.Errorf("Job retention cleanup failed: %v", err)
					continue
				}
				if removed > 0 {
					logrus.Infof("Job retention cleanup removed %d jobs", removed)
				}
			}
		}
	}()
}
