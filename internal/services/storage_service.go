package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// StorageService pushes binary assets to the object storage API and hands
// back their public URLs. Objects are keyed {userID}/{kind}/{timestamp}{ext}
// so per-user listings and kind filtering stay cheap on the storage side.
type StorageService struct {
	baseURL    string
	publicURL  string
	apiKey     string
	httpClient *http.Client
}

func NewStorageService() *StorageService {
	baseURL := os.Getenv("STORAGE_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:9000"
	}
	publicURL := os.Getenv("STORAGE_PUBLIC_URL")
	if publicURL == "" {
		publicURL = baseURL
	}

	return &StorageService{
		baseURL:   strings.TrimRight(baseURL, "/"),
		publicURL: strings.TrimRight(publicURL, "/"),
		apiKey:    os.Getenv("STORAGE_API_KEY"),
		httpClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

// Upload stores raw bytes and returns the asset's public URL.
func (s *StorageService) Upload(ctx context.Context, userID, kind, mimeType string, data []byte) (string, error) {
	objectKey := s.objectKey(userID, kind, mimeType)

	url := fmt.Sprintf("%s/objects/%s", s.baseURL, objectKey)
	req, err := http.NewRequestWithContext(ctx, "PUT", url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create storage request: %w", err)
	}
	req.Header.Set("Content-Type", mimeType)
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		logrus.Errorf("Storage API returned status %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("storage API returned status %d", resp.StatusCode)
	}

	return fmt.Sprintf("%s/objects/%s", s.publicURL, objectKey), nil
}

// UploadDataURI decodes a data: URI and stores its payload.
func (s *StorageService) UploadDataURI(ctx context.Context, userID, kind, dataURI string) (string, error) {
	mimeType, data, err := decodeDataURI(dataURI)
	if err != nil {
		return "", err
	}
	return s.Upload(ctx, userID, kind, mimeType, data)
}

// UploadStream stores a reader without buffering it in memory, for large
// video uploads.
func (s *StorageService) UploadStream(ctx context.Context, userID, kind, mimeType string, size int64, r io.Reader) (string, error) {
	objectKey := s.objectKey(userID, kind, mimeType)

	url := fmt.Sprintf("%s/objects/%s", s.baseURL, objectKey)
	req, err := http.NewRequestWithContext(ctx, "PUT", url, r)
	if err != nil {
		return "", fmt.Errorf("failed to create storage request: %w", err)
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", mimeType)
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		logrus.Errorf("Storage API returned status %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("storage API returned status %d", resp.StatusCode)
	}

	return fmt.Sprintf("%s/objects/%s", s.publicURL, objectKey), nil
}

// Delete removes an object by its public URL. Unknown URLs are ignored so
// cleanup stays idempotent.
func (s *StorageService) Delete(ctx context.Context, publicURL string) error {
	objectKey := strings.TrimPrefix(publicURL, s.publicURL+"/objects/")
	if objectKey == publicURL {
		return nil
	}

	url := fmt.Sprintf("%s/objects/%s", s.baseURL, objectKey)
	req, err := http.NewRequestWithContext(ctx, "DELETE", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create storage request: %w", err)
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("storage API returned status %d", resp.StatusCode)
	}
	return nil
}

func (s *StorageService) objectKey(userID, kind, mimeType string) string {
	ext := extensionForMime(mimeType)
	return fmt.Sprintf("%s/%s/%d%s", userID, kind, time.Now().UnixNano(), ext)
}

func extensionForMime(mimeType string) string {
	switch mimeType {
	case "image/svg+xml":
		return ".svg"
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "video/mp4":
		return ".mp4"
	}
	exts, err := mime.ExtensionsByType(mimeType)
	if err != nil || len(exts) == 0 {
		return ""
	}
	return exts[0]
}

// decodeDataURI splits "data:<mime>;base64,<payload>" into its parts.
func decodeDataURI(uri string) (string, []byte, error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", nil, fmt.Errorf("not a data URI")
	}
	rest := strings.TrimPrefix(uri, "data:")
	sep := strings.Index(rest, ",")
	if sep < 0 {
		return "", nil, fmt.Errorf("malformed data URI")
	}

	meta, payload := rest[:sep], rest[sep+1:]
	mimeType := meta
	base64Encoded := false
	if strings.HasSuffix(meta, ";base64") {
		mimeType = strings.TrimSuffix(meta, ";base64")
		base64Encoded = true
	}
	if mimeType == "" {
		mimeType = "text/plain"
	}

	if base64Encoded {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", nil, fmt.Errorf("failed to decode data URI payload: %w", err)
		}
		return mimeType, data, nil
	}
	return mimeType, []byte(payload), nil
}
