package services

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/models"
	"github.com/sirupsen/logrus"
)

// SSEClient represents one connected event-stream consumer.
type SSEClient struct {
	ID      string
	Channel chan string
}

// SSEHub fans generation progress events out to connected clients. Clients
// subscribe either to a single job ("job:{jobID}") or to everything owned by
// a user ("user:{userID}").
type SSEHub struct {
	mu      sync.RWMutex
	clients map[string]map[string]*SSEClient // subscription key -> client ID -> client
}

func NewSSEHub() *SSEHub {
	return &SSEHub{
		clients: make(map[string]map[string]*SSEClient),
	}
}

func JobSubscriptionKey(jobID string) string {
	return fmt.Sprintf("job:%s", jobID)
}

func UserSubscriptionKey(userID string) string {
	return fmt.Sprintf("user:%s", userID)
}

// RegisterClient subscribes a client under the given key and returns it.
func (h *SSEHub) RegisterClient(key, clientID string) *SSEClient {
	h.mu.Lock()
	defer h.mu.Unlock()

	client := &SSEClient{
		ID:      clientID,
		Channel: make(chan string, 16),
	}

	if h.clients[key] == nil {
		h.clients[key] = make(map[string]*SSEClient)
	}
	h.clients[key][clientID] = client

	logrus.Debugf("SSE client %s registered for %s", clientID, key)
	return client
}

// UnregisterClient removes a client and closes its channel.
func (h *SSEHub) UnregisterClient(key, clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[key]; ok {
		if client, ok := clients[clientID]; ok {
			close(client.Channel)
			delete(clients, clientID)
		}
		if len(clients) == 0 {
			delete(h.clients, key)
		}
	}

	logrus.Debugf("SSE client %s unregistered from %s", clientID, key)
}

// BroadcastProgress delivers a progress event to the job's subscribers and
// the owning user's subscribers. Slow clients are skipped, not blocked on.
func (h *SSEHub) BroadcastProgress(event *models.JobProgressEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		logrus.Errorf("Failed to marshal progress event for job %s: %v", event.JobID, err)
		return
	}
	message := fmt.Sprintf("event: progress\ndata: %s\n\n", data)

	h.mu.RLock()
	defer h.mu.RUnlock()

	keys := []string{JobSubscriptionKey(event.JobID)}
	if event.UserID != "" {
		keys = append(keys, UserSubscriptionKey(event.UserID))
	}

	for _, key := range keys {
		for _, client := range h.clients[key] {
			select {
			case client.Channel <- message:
			default:
				logrus.Warnf("SSE client %s is slow, dropping event", client.ID)
			}
		}
	}
}

// SendHeartbeat keeps idle connections from being reaped by proxies.
func (h *SSEHub) SendHeartbeat() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	message := "event: heartbeat\ndata: {}\n\n"
	for _, clients := range h.clients {
		for _, client := range clients {
			select {
			case client.Channel <- message:
			default:
			}
		}
	}
}

// ClientCount reports the number of connected clients, for the health check.
func (h *SSEHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, clients := range h.clients {
		count += len(clients)
	}
	return count
}
