package auth

import (
	"github.com/campuskit/portal-api/utils/auth"
	"github.com/campuskit/portal-api/utils/middleware"
	"github.com/campuskit/portal-api/utils/validation"
	"gorm.io/gorm"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	db               *gorm.DB
	jwtManager       *auth.JWTManager
	blacklistService *auth.BlacklistService
	validator        *validation.Validator
	bruteForce       *middleware.BruteForceProtection
}

// NewAuthHandler creates a new auth handler. bruteForce may be nil when no
// Redis is configured; login then runs without lockouts.
func NewAuthHandler(db *gorm.DB, jwtManager *auth.JWTManager, bruteForce *middleware.BruteForceProtection) *AuthHandler {
	return &AuthHandler{
		db:               db,
		jwtManager:       jwtManager,
		blacklistService: auth.NewBlacklistService(db),
		validator:        validation.NewValidator(),
		bruteForce:       bruteForce,
	}
}
