package repository

import (
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/database"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/models"
)

type CreatorProfileRepository struct{}

func NewCreatorProfileRepository() *CreatorProfileRepository {
	return &CreatorProfileRepository{}
}

func (r *CreatorProfileRepository) GetByUserID(userID string) (*models.CreatorProfile, error) {
	var profile models.CreatorProfile
	if err := database.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *CreatorProfileRepository) Upsert(profile *models.CreatorProfile) error {
	var existing models.CreatorProfile
	err := database.DB.Where("user_id = ?", profile.UserID).First(&existing).Error
	if err != nil {
		return database.DB.Create(profile).Error
	}

	profile.ID = existing.ID
	profile.CreatedAt = existing.CreatedAt
	return database.DB.Save(profile).Error
}
