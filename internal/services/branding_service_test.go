package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUploader struct {
	url  string
	err  error
	seen []string
}

func (s *stubUploader) UploadDataURI(ctx context.Context, userID, kind, dataURI string) (string, error) {
	s.seen = append(s.seen, kind)
	if s.err != nil {
		return "", s.err
	}
	return s.url + "/" + kind, nil
}

func brandingReq() *models.GenerateBrandingRequest {
	return &models.GenerateBrandingRequest{
		CourseID: "course-1",
		Title:    "Morning Momentum",
		Category: "Personal Development",
	}
}

func TestBrandingAIPath(t *testing.T) {
	ai := &stubAI{body: `{"logo": "data:image/svg+xml;base64,bG9nbw==", "banner": "data:image/svg+xml;base64,YmFubmVy"}`}
	uploader := &stubUploader{url: "https://cdn.example.com/u1"}
	svc := NewBrandingService(ai, uploader)

	result := svc.GenerateBranding(context.Background(), "u1", brandingReq())

	assert.Equal(t, models.ProvenanceAI, result.Provenance)
	assert.Equal(t, "https://cdn.example.com/u1/logo", result.LogoURL)
	assert.Equal(t, "https://cdn.example.com/u1/banner", result.BannerURL)
	assert.ElementsMatch(t, []string{"logo", "banner"}, uploader.seen)
	assert.Empty(t, result.Error)
}

func TestBrandingBackendErrorFallsBack(t *testing.T) {
	ai := &stubAI{err: fmt.Errorf("backend down")}
	uploader := &stubUploader{url: "https://cdn.example.com/u1"}
	svc := NewBrandingService(ai, uploader)

	result := svc.GenerateBranding(context.Background(), "u1", brandingReq())

	assert.Equal(t, models.ProvenanceFallback, result.Provenance)
	assert.NotEmpty(t, result.LogoURL)
	assert.NotEmpty(t, result.BannerURL)
}

func TestBrandingAIErrorFieldFallsBack(t *testing.T) {
	ai := &stubAI{body: `{"error": "content policy"}`}
	svc := NewBrandingService(ai, &stubUploader{url: "https://cdn.example.com/u1"})

	result := svc.GenerateBranding(context.Background(), "u1", brandingReq())

	assert.Equal(t, models.ProvenanceFallback, result.Provenance)
}

func TestBrandingUploadFailureKeepsDataURI(t *testing.T) {
	ai := &stubAI{err: fmt.Errorf("backend down")}
	uploader := &stubUploader{err: fmt.Errorf("storage down")}
	svc := NewBrandingService(ai, uploader)

	result := svc.GenerateBranding(context.Background(), "u1", brandingReq())

	// Upload failures degrade to the inline image, never to an error.
	assert.Equal(t, models.ProvenanceFallback, result.Provenance)
	assert.True(t, strings.HasPrefix(result.LogoURL, "data:image/svg+xml;base64,"))
	assert.True(t, strings.HasPrefix(result.BannerURL, "data:image/svg+xml;base64,"))
}

func TestBrandingPartialAIResponseKeepsAIProvenance(t *testing.T) {
	ai := &stubAI{body: `{"logo": "data:image/svg+xml;base64,bG9nbw=="}`}
	uploader := &stubUploader{url: "https://cdn.example.com/u1"}
	svc := NewBrandingService(ai, uploader)

	result := svc.GenerateBranding(context.Background(), "u1", brandingReq())

	assert.Equal(t, models.ProvenanceAI, result.Provenance)
	assert.NotEmpty(t, result.LogoURL)
	assert.NotEmpty(t, result.BannerURL)
}

func TestFallbackArtworkDeterministic(t *testing.T) {
	svc := NewBrandingService(&stubAI{}, &stubUploader{})

	logo1, banner1 := svc.fallbackArtwork("Morning Momentum")
	logo2, banner2 := svc.fallbackArtwork("Morning Momentum")
	assert.Equal(t, logo1, logo2)
	assert.Equal(t, banner1, banner2)

	// Decodable SVG with the title's initials in the logo.
	payload := strings.TrimPrefix(logo1, "data:image/svg+xml;base64,")
	svg, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "MM")
	assert.Contains(t, string(svg), "<svg")
}

func TestFallbackArtworkEscapesTitle(t *testing.T) {
	svc := NewBrandingService(&stubAI{}, &stubUploader{})

	_, banner := svc.fallbackArtwork(`Cats & "Dogs" <3`)
	payload := strings.TrimPrefix(banner, "data:image/svg+xml;base64,")
	svg, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "Cats &amp; &quot;Dogs&quot; &lt;3")
}

func TestTitleInitials(t *testing.T) {
	assert.Equal(t, "MM", titleInitials("Morning Momentum"))
	assert.Equal(t, "S", titleInitials("solo"))
	assert.Equal(t, "C", titleInitials(""))
	assert.Equal(t, "AB", titleInitials("alpha beta gamma"))
}
