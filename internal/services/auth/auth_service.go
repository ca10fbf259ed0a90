package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/database/repository"
	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and the token lifecycle. Access
// tokens are short-lived JWTs; refresh tokens are opaque, stored server-side
// and rotated on every use.
type AuthService struct {
	userRepo         *repository.UserRepository
	refreshTokenRepo *repository.RefreshTokenRepository
	jwtSecret        []byte
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
}

func NewAuthService(userRepo *repository.UserRepository, refreshTokenRepo *repository.RefreshTokenRepository) *AuthService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "insecure-dev-secret-change-me"
		logrus.Warn("JWT_SECRET not set, using insecure development secret")
	}

	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		jwtSecret:        []byte(secret),
		accessTokenTTL:   time.Duration(getEnvAsInt("ACCESS_TOKEN_TTL_MINUTES", 15)) * time.Minute,
		refreshTokenTTL:  time.Duration(getEnvAsInt("REFRESH_TOKEN_TTL_DAYS", 30)) * 24 * time.Hour,
	}
}

// Register creates a new user account.
func (s *AuthService) Register(req *models.RegisterRequest) (*models.User, error) {
	if _, err := s.userRepo.GetByUsername(req.Username); err == nil {
		return nil, fmt.Errorf("username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logrus.Infof("User %s registered", user.Username)
	return user, nil
}

// Login verifies credentials and issues a token pair.
func (s *AuthService) Login(req *models.LoginRequest, userAgent, ipAddress string) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if !user.IsActive {
		return nil, fmt.Errorf("account is disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		logrus.Warnf("Failed to record last login for %s: %v", user.Username, err)
	}

	return s.issueTokenPair(user, userAgent, ipAddress)
}

// RefreshToken rotates a refresh token: the presented token is revoked and a
// fresh pair is issued. A revoked or expired token is rejected.
func (s *AuthService) RefreshToken(req *models.RefreshTokenRequest, userAgent, ipAddress string) (*models.AuthResponse, error) {
	stored, err := s.refreshTokenRepo.GetByToken(req.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token")
	}
	if stored.IsRevoked {
		// Reuse of a revoked token indicates theft; drop every session.
		logrus.Warnf("Revoked refresh token presented for user %s, revoking all sessions", stored.UserID)
		if err := s.refreshTokenRepo.RevokeAllForUser(stored.UserID); err != nil {
			logrus.Errorf("Failed to revoke sessions for user %s: %v", stored.UserID, err)
		}
		return nil, fmt.Errorf("invalid refresh token")
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, fmt.Errorf("refresh token expired")
	}

	user, err := s.userRepo.GetByID(stored.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token")
	}
	if !user.IsActive {
		return nil, fmt.Errorf("account is disabled")
	}

	if err := s.refreshTokenRepo.Revoke(stored.Token); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return s.issueTokenPair(user, userAgent, ipAddress)
}

// Logout revokes the presented refresh token. Missing tokens are a no-op so
// logout stays idempotent.
func (s *AuthService) Logout(req *models.LogoutRequest) error {
	if req.RefreshToken == "" {
		return nil
	}
	if err := s.refreshTokenRepo.Revoke(req.RefreshToken); err != nil {
		logrus.Warnf("Logout could not revoke token: %v", err)
	}
	return nil
}

// ValidateToken parses and checks an access token, including the user's
// token version so password changes invalidate outstanding tokens.
func (s *AuthService) ValidateToken(tokenString string) (*models.TokenInfo, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}
	if !user.IsActive {
		return nil, fmt.Errorf("account is disabled")
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, fmt.Errorf("token has been invalidated")
	}

	return &models.TokenInfo{
		UserID:       claims.UserID,
		Username:     claims.Username,
		TokenVersion: claims.TokenVersion,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}

// ChangePassword verifies the current password, sets the new one and bumps
// the token version so every outstanding access token dies.
func (s *AuthService) ChangePassword(userID string, req *models.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("user not found")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	user.TokenVersion++
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.refreshTokenRepo.RevokeAllForUser(userID); err != nil {
		logrus.Warnf("Failed to revoke sessions after password change for %s: %v", userID, err)
	}
	return nil
}

// CreateAdminUser bootstraps the admin account from ADMIN_USERNAME and
// ADMIN_PASSWORD when no such user exists yet.
func (s *AuthService) CreateAdminUser() error {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		logrus.Info("ADMIN_USERNAME/ADMIN_PASSWORD not set, skipping admin bootstrap")
		return nil
	}

	if _, err := s.userRepo.GetByUsername(username); err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		IsActive:     true,
		IsAdmin:      true,
	}
	if err := s.userRepo.Create(admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logrus.Infof("Admin user %s created", username)
	return nil
}

func (s *AuthService) issueTokenPair(user *models.User, userAgent, ipAddress string) (*models.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	stored := &models.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.refreshTokenTTL),
		UserAgent: userAgent,
		IPAddress: ipAddress,
	}
	if err := s.refreshTokenRepo.Create(stored); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &models.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTokenTTL.Seconds()),
		User:         *user,
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &models.JWTClaims{
		UserID:       user.ID,
		Username:     user.Username,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func generateRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func getEnvAsInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}
