package repository

import (
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/database"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/models"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/utils"
)

type CourseRepository struct{}

func NewCourseRepository() *CourseRepository {
	return &CourseRepository{}
}

func (r *CourseRepository) Create(course *models.CourseRecord) error {
	return database.DB.Create(course).Error
}

func (r *CourseRepository) GetByID(id, userID string) (*models.CourseRecord, error) {
	var course models.CourseRecord
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) GetByUserID(userID string, pagination *utils.Pagination) ([]models.CourseRecord, error) {
	var total int64
	if err := database.DB.Model(&models.CourseRecord{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, err
	}
	pagination.SetTotal(total)

	var courses []models.CourseRecord
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scopes(utils.Paginate(pagination)).
		Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *CourseRepository) Update(course *models.CourseRecord) error {
	return database.DB.Save(course).Error
}

func (r *CourseRepository) Delete(id, userID string) error {
	return database.DB.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.CourseRecord{}).Error
}
