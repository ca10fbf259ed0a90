package services

import (
	"fmt"
	"regexp"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/database/repository"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/models"
)

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// CreatorProfileService manages the public profile shown on course landing
// pages.
type CreatorProfileService struct {
	profileRepo *repository.CreatorProfileRepository
}

func NewCreatorProfileService(profileRepo *repository.CreatorProfileRepository) *CreatorProfileService {
	return &CreatorProfileService{profileRepo: profileRepo}
}

func (s *CreatorProfileService) Get(userID string) (*models.CreatorProfile, error) {
	return s.profileRepo.GetByUserID(userID)
}

// Upsert creates or replaces the user's profile.
func (s *CreatorProfileService) Upsert(userID string, req *models.UpsertCreatorProfileRequest) (*models.CreatorProfile, error) {
	if req.BrandColor != "" && !hexColorRe.MatchString(req.BrandColor) {
		return nil, fmt.Errorf("brand_color must be a hex color like #6366F1")
	}

	profile := &models.CreatorProfile{
		UserID:      userID,
		DisplayName: req.DisplayName,
		Headline:    req.Headline,
		Bio:         req.Bio,
		BrandColor:  req.BrandColor,
		AvatarURL:   req.AvatarURL,
		WebsiteURL:  req.WebsiteURL,
	}
	if err := s.profileRepo.Upsert(profile); err != nil {
		return nil, err
	}
	return profile, nil
}
