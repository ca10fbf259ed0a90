package auth

import (
	"time"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/database/repository"
	"github.com/sirupsen/logrus"
)

// TokenCleanupService periodically removes expired and revoked refresh
// tokens.
type TokenCleanupService struct {
	refreshTokenRepo *repository.RefreshTokenRepository
	interval         time.Duration
}

func NewTokenCleanupService(refreshTokenRepo *repository.RefreshTokenRepository) *TokenCleanupService {
	return &TokenCleanupService{
		refreshTokenRepo: refreshTokenRepo,
		interval:         time.Hour,
	}
}

// Start runs the cleanup loop until stopChan closes.
func (s *TokenCleanupService) Start(stopChan chan struct{}) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.cleanup()
		for {
			select {
			case <-stopChan:
				return
			case <-ticker.C:
				s.cleanup()
			}
		}
	}()
}

func (s *TokenCleanupService) cleanup() {
	removed, err := s.refreshTokenRepo.DeleteExpired()
	if err != nil {
		logrus.Errorf("Refresh token cleanup failed: %v", err)
		return
	}
	if removed > 0 {
		logrus.Infof("Refresh token cleanup removed %d tokens", removed)
	}
}
