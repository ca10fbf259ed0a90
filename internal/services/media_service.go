package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/database/repository"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/models"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/utils"
	"github.com/sirupsen/logrus"
)

// maxUploadBytes caps a single media upload at 500 MB, enough for a long
// screen recording.
const maxUploadBytes = 500 << 20

// MediaService stores uploaded recordings and artwork in object storage and
// keeps a queryable record of each asset.
type MediaService struct {
	storage   *StorageService
	mediaRepo *repository.MediaAssetRepository
}

func NewMediaService(storage *StorageService, mediaRepo *repository.MediaAssetRepository) *MediaService {
	return &MediaService{storage: storage, mediaRepo: mediaRepo}
}

// Upload streams the file to storage and records the asset.
func (s *MediaService) Upload(ctx context.Context, userID, courseID, kind, originalName, mimeType string, size int64, r io.Reader) (*models.MediaAsset, error) {
	if !validMediaKind(kind) {
		return nil, fmt.Errorf("unknown media kind %q", kind)
	}
	if size > maxUploadBytes {
		return nil, fmt.Errorf("upload exceeds the %d byte limit", maxUploadBytes)
	}

	publicURL, err := s.storage.UploadStream(ctx, userID, kind, mimeType, size, io.LimitReader(r, maxUploadBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to store media: %w", err)
	}

	asset := &models.MediaAsset{
		UserID:       userID,
		CourseID:     courseID,
		Kind:         kind,
		OriginalName: originalName,
		MimeType:     mimeType,
		SizeBytes:    size,
		StoragePath:  storagePathFromURL(publicURL),
		PublicURL:    publicURL,
	}
	if err := s.mediaRepo.Create(asset); err != nil {
		return nil, fmt.Errorf("failed to record media asset: %w", err)
	}
	return asset, nil
}

func (s *MediaService) List(userID, kind string, pagination *utils.Pagination) ([]models.MediaAsset, error) {
	return s.mediaRepo.GetByUserID(userID, kind, pagination)
}

func (s *MediaService) Get(id, userID string) (*models.MediaAsset, error) {
	return s.mediaRepo.GetByID(id, userID)
}

// Delete removes the record and the stored object. A storage miss is logged
// but does not fail the delete.
func (s *MediaService) Delete(ctx context.Context, id, userID string) error {
	asset, err := s.mediaRepo.GetByID(id, userID)
	if err != nil {
		return err
	}

	if err := s.mediaRepo.Delete(id, userID); err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, asset.PublicURL); err != nil {
		logrus.Warnf("Could not delete stored object for asset %s: %v", id, err)
	}
	return nil
}

func validMediaKind(kind string) bool {
	switch kind {
	case models.MediaKindLogo, models.MediaKindBanner, models.MediaKindVideo, models.MediaKindRecording:
		return true
	}
	return false
}

// storagePathFromURL extracts the object key portion of a public URL.
func storagePathFromURL(publicURL string) string {
	if idx := strings.Index(publicURL, "/objects/"); idx >= 0 {
		return publicURL[idx+len("/objects/"):]
	}
	return publicURL
}
