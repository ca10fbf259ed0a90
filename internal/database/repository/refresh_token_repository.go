package repository

import (
	"time"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/database"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/models"
)

type RefreshTokenRepository struct{}

func NewRefreshTokenRepository() *RefreshTokenRepository {
	return &RefreshTokenRepository{}
}

func (r *RefreshTokenRepository) Create(token *models.RefreshToken) error {
	return database.DB.Create(token).Error
}

func (r *RefreshTokenRepository) GetByToken(token string) (*models.RefreshToken, error) {
	var refreshToken models.RefreshToken
	if err := database.DB.Where("token = ?", token).First(&refreshToken).Error; err != nil {
		return nil, err
	}
	return &refreshToken, nil
}

func (r *RefreshTokenRepository) Revoke(token string) error {
	return database.DB.Model(&models.RefreshToken{}).
		Where("token = ?", token).
		Update("is_revoked", true).Error
}

func (r *RefreshTokenRepository) RevokeAllForUser(userID string) error {
	return database.DB.Model(&models.RefreshToken{}).
		Where("user_id = ? AND is_revoked = false", userID).
		Update("is_revoked", true).Error
}

// DeleteExpired removes tokens past their expiry plus anything revoked, in
// one sweep. Returns the number of rows removed.
func (r *RefreshTokenRepository) DeleteExpired() (int64, error) {
	result := database.DB.
		Where("expires_at < ? OR is_revoked = true", time.Now()).
		Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}
