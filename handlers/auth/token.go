package auth

import (
	"github.com/campuskit/portal-api/model"
	"github.com/campuskit/portal-api/utils/auth"
	"github.com/campuskit/portal-api/utils/middleware"
	"github.com/campuskit/portal-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// RefreshRequest carries a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse returns a fresh token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// Refresh exchanges a valid refresh token for a new token pair. The used
// refresh token is revoked so it cannot be replayed.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	claims, err := h.jwtManager.ValidateToken(req.RefreshToken)
	if err != nil {
		if err == auth.ErrExpiredToken {
			return response.Unauthorized(c, "Refresh token has expired")
		}
		return response.Unauthorized(c, "Invalid refresh token")
	}
	if claims.TokenType != "refresh" {
		return response.Unauthorized(c, "Invalid token type")
	}

	revoked, err := h.blacklistService.IsTokenRevoked(c.Context(), claims.ID)
	if err == nil && revoked {
		return response.Unauthorized(c, "Refresh token has been revoked")
	}

	var user model.User
	if err := h.db.First(&user, claims.UserID).Error; err != nil {
		return response.Unauthorized(c, "User no longer exists")
	}
	if !user.IsActive {
		return response.Forbidden(c, "Account is deactivated")
	}
	if user.TokenVersion != claims.TokenVersion {
		return response.Unauthorized(c, "Token has been invalidated")
	}

	accessToken, _, err := h.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role, user.TokenVersion)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate access token")
	}
	refreshToken, _, err := h.jwtManager.GenerateRefreshToken(user.ID, user.Email, user.Role, user.TokenVersion)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate refresh token")
	}

	// One-time use: the old refresh token dies with this exchange.
	if claims.ExpiresAt != nil {
		_ = h.blacklistService.RevokeToken(c.Context(), claims.ID, user.ID, claims.ExpiresAt.Time, "rotated")
	}

	return response.Success(c, RefreshResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(h.jwtManager.AccessExpiry().Seconds()),
	})
}

// Logout revokes the presented access token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	if claims.ExpiresAt != nil {
		if err := h.blacklistService.RevokeToken(c.Context(), claims.ID, claims.UserID, claims.ExpiresAt.Time, "logout"); err != nil {
			return response.InternalServerError(c, "Failed to revoke token")
		}
	}

	return response.SuccessWithMessage(c, "Logged out successfully", nil)
}

// LogoutAll bumps the account's token version, killing every outstanding
// token on every device.
func (h *AuthHandler) LogoutAll(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	if err := h.blacklistService.RevokeAllUserTokens(c.Context(), userID); err != nil {
		return response.InternalServerError(c, "Failed to revoke tokens")
	}

	return response.SuccessWithMessage(c, "All sessions revoked", nil)
}
