package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/models"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/services"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubJobTracker maps job IDs to their owners and records accepted events.
type stubJobTracker struct {
	owners  map[string]string
	applied []*models.JobProgressEvent
}

func (s *stubJobTracker) GetJob(jobID, userID string) (*models.GenerationJob, error) {
	if owner, ok := s.owners[jobID]; ok && owner == userID {
		return &models.GenerationJob{ID: jobID, UserID: owner}, nil
	}
	return nil, fmt.Errorf("job not found")
}

func (s *stubJobTracker) ListJobs(userID string, pagination *utils.Pagination) ([]models.GenerationJob, error) {
	return nil, nil
}

func (s *stubJobTracker) ApplyWorkerEvent(event *models.JobProgressEvent, workerUserID string) error {
	owner, ok := s.owners[event.JobID]
	if !ok {
		return fmt.Errorf("job not found")
	}
	if owner != workerUserID {
		return services.ErrNotJobOwner
	}
	s.applied = append(s.applied, event)
	return nil
}

func callbackRouter(tracker *stubJobTracker, workerUserID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewJobHandler(tracker, services.NewSSEHub())
	router.POST("/jobs/callback", func(c *gin.Context) {
		c.Set("api_key_user_id", workerUserID)
	}, handler.WorkerCallback)
	return router
}

func postCallback(router *gin.Engine, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/jobs/callback", strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestWorkerCallbackAppliesOwnJob(t *testing.T) {
	tracker := &stubJobTracker{owners: map[string]string{"job-1": "user-1"}}
	router := callbackRouter(tracker, "user-1")

	recorder := postCallback(router, `{"job_id": "job-1", "status": "running", "progress": 40}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.Len(t, tracker.applied, 1)
	assert.Equal(t, "job-1", tracker.applied[0].JobID)
	assert.Equal(t, 40, tracker.applied[0].Progress)
}

func TestWorkerCallbackRejectsForeignJob(t *testing.T) {
	tracker := &stubJobTracker{owners: map[string]string{"job-1": "user-1"}}
	router := callbackRouter(tracker, "user-2")

	recorder := postCallback(router, `{"job_id": "job-1", "status": "failed", "error": "boom"}`)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Empty(t, tracker.applied)
}

func TestWorkerCallbackUnknownJob(t *testing.T) {
	tracker := &stubJobTracker{owners: map[string]string{}}
	router := callbackRouter(tracker, "user-1")

	recorder := postCallback(router, `{"job_id": "job-404", "status": "running"}`)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestWorkerCallbackRejectsMissingJobID(t *testing.T) {
	tracker := &stubJobTracker{owners: map[string]string{}}
	router := callbackRouter(tracker, "user-1")

	recorder := postCallback(router, `{"status": "running"}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
