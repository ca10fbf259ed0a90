package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAIClient(baseURL string) *AIClient {
	return &AIClient{
		baseURL:    baseURL,
		apiKey:     "secret",
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestAIClientGenerate(t *testing.T) {
	var gotPath, gotAuth string
	var gotPayload map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotPayload)
		w.Write([]byte("model output"))
	}))
	defer server.Close()

	client := testAIClient(server.URL)
	body, err := client.Generate(context.Background(), "/v1/generate/course", map[string]interface{}{"outcome": "x"})

	require.NoError(t, err)
	assert.Equal(t, "model output", body)
	assert.Equal(t, "/v1/generate/course", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "x", gotPayload["outcome"])
}

func TestAIClientGenerateErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error": "model overloaded"}`))
	}))
	defer server.Close()

	client := testAIClient(server.URL)
	_, err := client.Generate(context.Background(), "/v1/generate/course", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestAIClientGenerateConnectionError(t *testing.T) {
	client := testAIClient("http://127.0.0.1:1")
	_, err := client.Generate(context.Background(), "/v1/generate/course", nil)
	assert.Error(t, err)
}
