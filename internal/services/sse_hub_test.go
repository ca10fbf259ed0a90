package services

import (
	"testing"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSEHubBroadcastToJobSubscriber(t *testing.T) {
	hub := NewSSEHub()
	client := hub.RegisterClient(JobSubscriptionKey("job-1"), "c1")
	defer hub.UnregisterClient(JobSubscriptionKey("job-1"), "c1")

	hub.BroadcastProgress(&models.JobProgressEvent{
		JobID:    "job-1",
		Status:   models.JobStatusRunning,
		Progress: 40,
	})

	select {
	case message := <-client.Channel:
		assert.Contains(t, message, "event: progress")
		assert.Contains(t, message, `"job_id":"job-1"`)
		assert.Contains(t, message, `"progress":40`)
	default:
		t.Fatal("expected a buffered event")
	}
}

func TestSSEHubBroadcastToUserSubscriber(t *testing.T) {
	hub := NewSSEHub()
	client := hub.RegisterClient(UserSubscriptionKey("user-1"), "c1")
	defer hub.UnregisterClient(UserSubscriptionKey("user-1"), "c1")

	hub.BroadcastProgress(&models.JobProgressEvent{JobID: "job-9", UserID: "user-1"})

	select {
	case message := <-client.Channel:
		assert.Contains(t, message, `"job_id":"job-9"`)
	default:
		t.Fatal("expected a buffered event")
	}
}

func TestSSEHubIgnoresOtherJobs(t *testing.T) {
	hub := NewSSEHub()
	client := hub.RegisterClient(JobSubscriptionKey("job-1"), "c1")
	defer hub.UnregisterClient(JobSubscriptionKey("job-1"), "c1")

	hub.BroadcastProgress(&models.JobProgressEvent{JobID: "job-2"})

	select {
	case <-client.Channel:
		t.Fatal("should not receive events for other jobs")
	default:
	}
}

func TestSSEHubSlowClientDoesNotBlock(t *testing.T) {
	hub := NewSSEHub()
	client := hub.RegisterClient(JobSubscriptionKey("job-1"), "slow")

	// Fill the buffer past capacity; the broadcast must not block.
	for i := 0; i < 32; i++ {
		hub.BroadcastProgress(&models.JobProgressEvent{JobID: "job-1", Progress: i})
	}

	assert.Len(t, client.Channel, 16)
	hub.UnregisterClient(JobSubscriptionKey("job-1"), "slow")
}

func TestSSEHubUnregisterClosesChannel(t *testing.T) {
	hub := NewSSEHub()
	client := hub.RegisterClient(JobSubscriptionKey("job-1"), "c1")

	require.Equal(t, 1, hub.ClientCount())
	hub.UnregisterClient(JobSubscriptionKey("job-1"), "c1")
	assert.Equal(t, 0, hub.ClientCount())

	_, open := <-client.Channel
	assert.False(t, open)
}

func TestSSEHubMultipleClientsSameKey(t *testing.T) {
	hub := NewSSEHub()
	a := hub.RegisterClient(UserSubscriptionKey("user-1"), "a")
	b := hub.RegisterClient(UserSubscriptionKey("user-1"), "b")
	defer hub.UnregisterClient(UserSubscriptionKey("user-1"), "a")
	defer hub.UnregisterClient(UserSubscriptionKey("user-1"), "b")

	hub.BroadcastProgress(&models.JobProgressEvent{JobID: "job-1", UserID: "user-1"})

	assert.Len(t, a.Channel, 1)
	assert.Len(t, b.Channel, 1)
}
