package api_key

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/database/repository"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/models"
	"github.com/sirupsen/logrus"
)

// APIKeyService issues and validates the opaque keys generation workers use
// to call the progress callback endpoint.
type APIKeyService struct {
	apiKeyRepo *repository.APIKeyRepository
}

func NewAPIKeyService(apiKeyRepo *repository.APIKeyRepository) *APIKeyService {
	return &APIKeyService{apiKeyRepo: apiKeyRepo}
}

// CreateKey mints a new key for the user. The plaintext key is only returned
// here.
func (s *APIKeyService) CreateKey(userID string) (*models.APIKey, error) {
	key, err := generateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate API key: %w", err)
	}

	apiKey := &models.APIKey{
		Key:      key,
		UserID:   userID,
		IsActive: true,
	}
	if err := s.apiKeyRepo.Create(apiKey); err != nil {
		return nil, fmt.Errorf("failed to store API key: %w", err)
	}
	return apiKey, nil
}

// ValidateKey looks up an active key and records its use.
func (s *APIKeyService) ValidateKey(key string) (*models.APIKey, error) {
	apiKey, err := s.apiKeyRepo.GetByKey(key)
	if err != nil {
		return nil, fmt.Errorf("invalid API key")
	}

	if err := s.apiKeyRepo.TouchLastUsed(apiKey.ID); err != nil {
		logrus.Warnf("Could not update last_used_at for API key %d: %v", apiKey.ID, err)
	}
	return apiKey, nil
}

func (s *APIKeyService) ListKeys(userID string) ([]models.APIKey, error) {
	return s.apiKeyRepo.GetByUserID(userID)
}

func (s *APIKeyService) RevokeKey(id uint, userID string) error {
	return s.apiKeyRepo.Deactivate(id, userID)
}

func generateKey() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "ck_" + hex.EncodeToString(b), nil
}
