package middleware

import (
	"strings"

	"github.com/campuskit/portal-api/model"
	"github.com/campuskit/portal-api/utils/auth"
	"github.com/campuskit/portal-api/utils/response"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthMiddleware handles JWT authentication
type AuthMiddleware struct {
	jwtManager       *auth.JWTManager
	blacklistService *auth.BlacklistService
	db               *gorm.DB
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *auth.JWTManager, db *gorm.DB) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:       jwtManager,
		blacklistService: auth.NewBlacklistService(db),
		db:               db,
	}
}

// authenticate validates the bearer token and loads the account. A nil
// claims return means a response has already been written and the caller
// must return the accompanying error without calling c.Next().
func (m *AuthMiddleware) authenticate(c *fiber.Ctx) (*auth.Claims, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, response.Unauthorized(c, "Missing authorization token")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, response.Unauthorized(c, "Invalid authorization format")
	}

	claims, err := m.jwtManager.ValidateToken(parts[1])
	if err != nil {
		if err == auth.ErrExpiredToken {
			return nil, response.Unauthorized(c, "Token has expired")
		}
		return nil, response.Unauthorized(c, "Invalid token")
	}

	if claims.TokenType != "access" {
		return nil, response.Unauthorized(c, "Invalid token type")
	}

	// Revoked tokens are rejected even before their natural expiry
	revoked, err := m.blacklistService.IsTokenRevoked(c.Context(), claims.ID)
	if err == nil && revoked {
		return nil, response.Unauthorized(c, "Token has been revoked")
	}

	var user model.User
	if err := m.db.First(&user, claims.UserID).Error; err != nil {
		return nil, response.Unauthorized(c, "User no longer exists")
	}
	if !user.IsActive {
		return nil, response.Forbidden(c, "Account is deactivated")
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, response.Unauthorized(c, "Token has been invalidated")
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("user_email", claims.Email)
	c.Locals("user_role", claims.Role)
	c.Locals("claims", claims)
	c.Locals("user", &user)
	c.Locals("token_jti", claims.ID)

	return claims, nil
}

// Required is middleware that requires a valid JWT token
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := m.authenticate(c)
		if claims == nil {
			return err
		}
		return c.Next()
	}
}

// RequireRole requires a valid token carrying one of the given roles.
func (m *AuthMiddleware) RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := m.authenticate(c)
		if claims == nil {
			return err
		}
		for _, role := range roles {
			if claims.Role == role {
				return c.Next()
			}
		}
		return response.Forbidden(c, "Insufficient role")
	}
}

// RequireAdmin requires an admin account.
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return m.RequireRole(model.RoleAdmin)
}

// RequireFaculty requires a faculty account.
func (m *AuthMiddleware) RequireFaculty() fiber.Handler {
	return m.RequireRole(model.RoleFaculty)
}

// RequireStudent requires a student account.
func (m *AuthMiddleware) RequireStudent() fiber.Handler {
	return m.RequireRole(model.RoleStudent)
}

// GetUserID extracts user ID from context
func GetUserID(c *fiber.Ctx) (uint, bool) {
	userID := c.Locals("user_id")
	if userID == nil {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// GetUserRole extracts user role from context
func GetUserRole(c *fiber.Ctx) (string, bool) {
	role := c.Locals("user_role")
	if role == nil {
		return "", false
	}
	r, ok := role.(string)
	return r, ok
}

// GetUser extracts full user object from context
func GetUser(c *fiber.Ctx) (*model.User, bool) {
	user := c.Locals("user")
	if user == nil {
		return nil, false
	}
	u, ok := user.(*model.User)
	return u, ok
}

// GetClaims extracts full claims from context
func GetClaims(c *fiber.Ctx) (*auth.Claims, bool) {
	claims := c.Locals("claims")
	if claims == nil {
		return nil, false
	}
	claimsData, ok := claims.(*auth.Claims)
	return claimsData, ok
}

// GetTokenJTI extracts the token JTI from context
func GetTokenJTI(c *fiber.Ctx) (string, bool) {
	jti := c.Locals("token_jti")
	if jti == nil {
		return "", false
	}
	j, ok := jti.(string)
	return j, ok
}
