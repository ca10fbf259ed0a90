package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// AIClient talks to the remote model-inference backend. Responses are
// free-form text; callers own all defensive parsing.
type AIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewAIClient() *AIClient {
	baseURL := os.Getenv("AI_BACKEND_URL")
	if baseURL == "" {
		baseURL = "http://localhost:9090"
	}

	return &AIClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  os.Getenv("AI_BACKEND_API_KEY"),
		httpClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

// Generate posts the payload to the given generation path and returns the raw
// response body. Non-2xx responses are errors; an error message is pulled out
// of the body when the backend sent one.
func (c *AIClient) Generate(ctx context.Context, path string, payload map[string]interface{}) (string, error) {
	apiURL := fmt.Sprintf("%s%s", c.baseURL, path)

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		logrus.Errorf("Failed to marshal request body for %s: %v", path, err)
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", "Coursia-Backend/1.0")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logrus.Errorf("HTTP request failed to AI backend %s: %v", apiURL, err)
		return "", fmt.Errorf("failed to call AI backend: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		logrus.Errorf("Failed to read AI response body: %v", err)
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logrus.Errorf("AI backend returned error status %d for %s: %s", resp.StatusCode, path, string(bodyBytes))
		var errorResp map[string]interface{}
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil {
			if errorMsg, ok := errorResp["error"].(string); ok {
				return "", fmt.Errorf("AI backend error: %s", errorMsg)
			}
			if errorMsg, ok := errorResp["message"].(string); ok {
				return "", fmt.Errorf("AI backend error: %s", errorMsg)
			}
		}
		return "", fmt.Errorf("AI backend returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	return string(bodyBytes), nil
}
