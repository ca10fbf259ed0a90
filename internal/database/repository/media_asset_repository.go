package repository

import (
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/database"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/models"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/utils"
)

type MediaAssetRepository struct{}

func NewMediaAssetRepository() *MediaAssetRepository {
	return &MediaAssetRepository{}
}

func (r *MediaAssetRepository) Create(asset *models.MediaAsset) error {
	return database.DB.Create(asset).Error
}

func (r *MediaAssetRepository) GetByID(id, userID string) (*models.MediaAsset, error) {
	var asset models.MediaAsset
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *MediaAssetRepository) GetByUserID(userID, kind string, pagination *utils.Pagination) ([]models.MediaAsset, error) {
	query := database.DB.Model(&models.MediaAsset{}).Where("user_id = ?", userID)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}
	pagination.SetTotal(total)

	var assets []models.MediaAsset
	if err := query.
		Order("created_at DESC").
		Scopes(utils.Paginate(pagination)).
		Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *MediaAssetRepository) Delete(id, userID string) error {
	return database.DB.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.MediaAsset{}).Error
}
