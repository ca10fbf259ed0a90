package repository

import (
	"time"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/database"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/models"
)

type APIKeyRepository struct{}

func NewAPIKeyRepository() *APIKeyRepository {
	return &APIKeyRepository{}
}

func (r *APIKeyRepository) Create(key *models.APIKey) error {
	return database.DB.Create(key).Error
}

func (r *APIKeyRepository) GetByKey(key string) (*models.APIKey, error) {
	var apiKey models.APIKey
	if err := database.DB.Where("key = ? AND is_active = true", key).First(&apiKey).Error; err != nil {
		return nil, err
	}
	return &apiKey, nil
}

func (r *APIKeyRepository) GetByUserID(userID string) ([]models.APIKey, error) {
	var keys []models.APIKey
	if err := database.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *APIKeyRepository) TouchLastUsed(id uint) error {
	return database.DB.Model(&models.APIKey{}).
		Where("id = ?", id).
		Update("last_used_at", time.Now()).Error
}

func (r *APIKeyRepository) Deactivate(id uint, userID string) error {
	return database.DB.Model(&models.APIKey{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_active", false).Error
}
