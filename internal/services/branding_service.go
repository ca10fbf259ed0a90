package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/models"
	"github.com/sirupsen/logrus"
)

// brandingPalette pairs gradient stops for the generated fallback artwork.
var brandingPalette = [5][2]string{
	{"#6366F1", "#8B5CF6"},
	{"#10B981", "#059669"},
	{"#F59E0B", "#D97706"},
	{"#EF4444", "#DC2626"},
	{"#3B82F6", "#1D4ED8"},
}

// assetUploader is the slice of StorageService branding needs.
type assetUploader interface {
	UploadDataURI(ctx context.Context, userID, kind, dataURI string) (string, error)
}

// BrandingService produces logo and banner artwork for a course. The model is
// asked first; if it declines or fails, deterministic SVG artwork is
// generated from the course title. Either way both images are uploaded
// concurrently, and upload failures degrade that image to its data URI rather
// than failing the request. Provenance is "ai", "fallback", or "error" (error
// only when even local generation produced nothing usable).
type BrandingService struct {
	ai      aiGenerator
	storage assetUploader
}

func NewBrandingService(ai aiGenerator, storage assetUploader) *BrandingService {
	return &BrandingService{ai: ai, storage: storage}
}

func (s *BrandingService) GenerateBranding(ctx context.Context, userID string, req *models.GenerateBrandingRequest) *models.BrandingResult {
	logo, banner, provenance := s.obtainArtwork(ctx, req)

	if logo == "" && banner == "" {
		return &models.BrandingResult{
			Provenance: models.ProvenanceError,
			Error:      "no branding artwork could be produced",
		}
	}

	result := &models.BrandingResult{Provenance: provenance}

	var wg sync.WaitGroup
	upload := func(kind, dataURI string, dest *string) {
		defer wg.Done()
		if dataURI == "" {
			return
		}
		url, err := s.storage.UploadDataURI(ctx, userID, kind, dataURI)
		if err != nil {
			logrus.Warnf("Branding %s upload failed for course %s, keeping inline image: %v", kind, req.CourseID, err)
			*dest = dataURI
			return
		}
		*dest = url
	}

	wg.Add(2)
	go upload(models.MediaKindLogo, logo, &result.LogoURL)
	go upload(models.MediaKindBanner, banner, &result.BannerURL)
	wg.Wait()

	return result
}

// obtainArtwork tries the model, then the deterministic generator. Returns
// data URIs for logo and banner plus the provenance of whichever source
// produced them.
func (s *BrandingService) obtainArtwork(ctx context.Context, req *models.GenerateBrandingRequest) (string, string, string) {
	payload := map[string]interface{}{
		"title":       req.Title,
		"category":    req.Category,
		"description": req.Description,
	}

	body, err := s.ai.Generate(ctx, "/v1/generate/branding", payload)
	if err != nil {
		logrus.Warnf("Branding generation call failed for course %s, using generated artwork: %v", req.CourseID, err)
		logo, banner := s.fallbackArtwork(req.Title)
		return logo, banner, models.ProvenanceFallback
	}

	var aiResp models.BrandingAIResponse
	if err := json.Unmarshal([]byte(stripMarkdownFences(body)), &aiResp); err != nil || aiResp.Error != "" || (aiResp.Logo == "" && aiResp.Banner == "") {
		logrus.Warnf("Branding response unusable for course %s, using generated artwork", req.CourseID)
		logo, banner := s.fallbackArtwork(req.Title)
		return logo, banner, models.ProvenanceFallback
	}

	logo, banner := aiResp.Logo, aiResp.Banner
	// The model may return only one image; fill the gap locally but keep
	// AI provenance for the overall result.
	if logo == "" || banner == "" {
		fLogo, fBanner := s.fallbackArtwork(req.Title)
		if logo == "" {
			logo = fLogo
		}
		if banner == "" {
			banner = fBanner
		}
	}
	return logo, banner, models.ProvenanceAI
}

// fallbackArtwork builds SVG gradient artwork seeded by the title so the same
// course always gets the same look.
func (s *BrandingService) fallbackArtwork(title string) (string, string) {
	colors := brandingPalette[titleHash(title)%uint32(len(brandingPalette))]
	initials := titleInitials(title)

	logo := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="256" height="256"><defs><linearGradient id="g" x1="0" y1="0" x2="1" y2="1"><stop offset="0%%" stop-color="%s"/><stop offset="100%%" stop-color="%s"/></linearGradient></defs><rect width="256" height="256" rx="32" fill="url(#g)"/><text x="128" y="150" font-family="Arial, sans-serif" font-size="96" font-weight="bold" fill="#FFFFFF" text-anchor="middle">%s</text></svg>`,
		colors[0], colors[1], initials)

	banner := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="1200" height="400"><defs><linearGradient id="g" x1="0" y1="0" x2="1" y2="0"><stop offset="0%%" stop-color="%s"/><stop offset="100%%" stop-color="%s"/></linearGradient></defs><rect width="1200" height="400" fill="url(#g)"/><text x="60" y="230" font-family="Arial, sans-serif" font-size="56" font-weight="bold" fill="#FFFFFF">%s</text></svg>`,
		colors[0], colors[1], svgEscape(title))

	return svgDataURI(logo), svgDataURI(banner)
}

func svgDataURI(svg string) string {
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

func svgEscape(s string) string {
	replacer := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return replacer.Replace(s)
}

func titleHash(title string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(title))
	return h.Sum32()
}

// titleInitials takes up to two word initials, defaulting to "C" for empty
// titles.
func titleInitials(title string) string {
	words := strings.Fields(title)
	var b strings.Builder
	for _, w := range words {
		for _, r := range w {
			b.WriteRune(r)
			break
		}
		if b.Len() >= 2 {
			break
		}
	}
	if b.Len() == 0 {
		return "C"
	}
	return strings.ToUpper(b.String())
}
