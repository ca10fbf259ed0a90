package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/middleware"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/models"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/services"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// jobTracker is the slice of GenerationJobService the handler needs.
type jobTracker interface {
	GetJob(jobID, userID string) (*models.GenerationJob, error)
	ListJobs(userID string, pagination *utils.Pagination) ([]models.GenerationJob, error)
	ApplyWorkerEvent(event *models.JobProgressEvent, workerUserID string) error
}

type JobHandler struct {
	jobService jobTracker
	hub        *services.SSEHub
}

func NewJobHandler(jobService jobTracker, hub *services.SSEHub) *JobHandler {
	return &JobHandler{jobService: jobService, hub: hub}
}

// GetJob godoc
// @Summary Get one generation job
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} models.GenerationJob
// @Failure 404 {object} map[string]string
// @Router /jobs/{id} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobService.GetJob(c.Param("id"), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	c.JSON(http.StatusOK, job)
}

// ListJobs godoc
// @Summary List the user's generation jobs
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} map[string]interface{}
// @Router /jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	pagination := utils.NewPaginationFromQuery(c)

	jobs, err := h.jobService.ListJobs(middleware.UserID(c), pagination)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list jobs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs":       jobs,
		"pagination": pagination,
	})
}

// StreamJobs godoc
// @Summary Stream generation progress over SSE
// @Description Subscribes to all of the user's jobs, or a single job when job_id is given. EventSource clients pass the access token as a query parameter.
// @Tags jobs
// @Produce text/event-stream
// @Security BearerAuth
// @Param job_id query string false "Restrict the stream to one job"
// @Success 200 {string} string "event stream"
// @Router /jobs/stream [get]
func (h *JobHandler) StreamJobs(c *gin.Context) {
	userID := middleware.UserID(c)

	key := services.UserSubscriptionKey(userID)
	if jobID := c.Query("job_id"); jobID != "" {
		if _, err := h.jobService.GetJob(jobID, userID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		key = services.JobSubscriptionKey(jobID)
	}

	clientID := uuid.NewString()
	client := h.hub.RegisterClient(key, clientID)
	defer h.hub.UnregisterClient(key, clientID)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case message, ok := <-client.Channel:
			if !ok {
				return false
			}
			w.Write([]byte(message))
			return true
		case <-heartbeat.C:
			w.Write([]byte("event: heartbeat\ndata: {}\n\n"))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// WorkerCallback godoc
// @Summary Receive a progress event from a generation worker
// @Description Workers authenticate with an API key and post progress updates that fan out to SSE subscribers.
// @Tags jobs
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.JobProgressEvent true "Progress event"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /jobs/callback [post]
func (h *JobHandler) WorkerCallback(c *gin.Context) {
	var event models.JobProgressEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.jobService.ApplyWorkerEvent(&event, c.GetString("api_key_user_id")); err != nil {
		if errors.Is(err, services.ErrNotJobOwner) {
			c.JSON(http.StatusForbidden, gin.H{"error": "job belongs to another user"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event applied"})
}
