package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStorageService(baseURL string) *StorageService {
	return &StorageService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		publicURL:  strings.TrimRight(baseURL, "/"),
		apiKey:     "test-key",
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestStorageUpload(t *testing.T) {
	var gotPath, gotAuth, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	svc := testStorageService(server.URL)
	url, err := svc.Upload(context.Background(), "user-1", "logo", "image/png", []byte{1, 2, 3})

	require.NoError(t, err)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "image/png", gotContentType)
	assert.True(t, strings.HasPrefix(gotPath, "/objects/user-1/logo/"))
	assert.True(t, strings.HasSuffix(gotPath, ".png"))
	assert.Contains(t, url, "/objects/user-1/logo/")
}

func TestStorageUploadErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer server.Close()

	svc := testStorageService(server.URL)
	_, err := svc.Upload(context.Background(), "user-1", "logo", "image/png", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestStorageUploadDataURI(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := testStorageService(server.URL)
	// "hello" base64 encoded
	url, err := svc.UploadDataURI(context.Background(), "user-1", "banner", "data:image/svg+xml;base64,aGVsbG8=")

	require.NoError(t, err)
	assert.Equal(t, "hello", gotBody)
	assert.Contains(t, url, "/objects/user-1/banner/")
	assert.True(t, strings.HasSuffix(url, ".svg"))
}

func TestStorageDelete(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	svc := testStorageService(server.URL)
	err := svc.Delete(context.Background(), server.URL+"/objects/user-1/logo/123.png")

	require.NoError(t, err)
	assert.Equal(t, "DELETE", gotMethod)
	assert.Equal(t, "/objects/user-1/logo/123.png", gotPath)
}

func TestStorageDeleteForeignURLIsNoop(t *testing.T) {
	svc := testStorageService("http://localhost:1")
	// URLs outside our public prefix are ignored rather than guessed at.
	assert.NoError(t, svc.Delete(context.Background(), "https://elsewhere.example.com/thing.png"))
}

func TestDecodeDataURI(t *testing.T) {
	mimeType, data, err := decodeDataURI("data:image/svg+xml;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", mimeType)
	assert.Equal(t, []byte("hello"), data)

	mimeType, data, err = decodeDataURI("data:text/plain,raw payload")
	require.NoError(t, err)
	assert.Equal(t, "text/plain", mimeType)
	assert.Equal(t, []byte("raw payload"), data)

	_, _, err = decodeDataURI("not a data uri")
	assert.Error(t, err)

	_, _, err = decodeDataURI("data:image/png;base64,!!!")
	assert.Error(t, err)
}

func TestExtensionForMime(t *testing.T) {
	assert.Equal(t, ".svg", extensionForMime("image/svg+xml"))
	assert.Equal(t, ".png", extensionForMime("image/png"))
	assert.Equal(t, ".mp4", extensionForMime("video/mp4"))
	assert.Equal(t, "", extensionForMime("application/x-nonexistent"))
}
