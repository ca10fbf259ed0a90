package repository

import (
	"time"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/database"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/models"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/utils"
)

type GenerationJobRepository struct{}

func NewGenerationJobRepository() *GenerationJobRepository {
	return &GenerationJobRepository{}
}

func (r *GenerationJobRepository) Create(job *models.GenerationJob) error {
	return database.DB.Create(job).Error
}

func (r *GenerationJobRepository) GetByID(id string) (*models.GenerationJob, error) {
	var job models.GenerationJob
	if err := database.DB.Where("id = ?", id).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *GenerationJobRepository) GetByIDForUser(id, userID string) (*models.GenerationJob, error) {
	var job models.GenerationJob
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *GenerationJobRepository) GetByUserID(userID string, pagination *utils.Pagination) ([]models.GenerationJob, error) {
	var total int64
	if err := database.DB.Model(&models.GenerationJob{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, err
	}
	pagination.SetTotal(total)

	var jobs []models.GenerationJob
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scopes(utils.Paginate(pagination)).
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *GenerationJobRepository) Update(job *models.GenerationJob) error {
	return database.DB.Save(job).Error
}

// DeleteOlderThan prunes finished jobs past the retention window.
func (r *GenerationJobRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := database.DB.
		Where("updated_at < ? AND status IN ?", cutoff, []string{models.JobStatusCompleted, models.JobStatusFailed}).
		Delete(&models.GenerationJob{})
	return result.RowsAffected, result.Error
}
