package auth

import (
	"github.com/campuskit/portal-api/utils/auth"
	"github.com/campuskit/portal-api/utils/middleware"
	"github.com/campuskit/portal-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// Me returns the authenticated account.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	return response.Success(c, UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	})
}

// ChangePasswordRequest carries a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// ChangePassword updates the account password and invalidates every
// outstanding token.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if err := auth.VerifyPassword(user.PasswordHash, req.CurrentPassword); err != nil {
		return response.Unauthorized(c, "Current password is incorrect")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.db.Model(user).Update("password_hash", hash).Error; err != nil {
		return response.InternalServerError(c, "Failed to update password")
	}
	if err := h.blacklistService.RevokeAllUserTokens(c.Context(), user.ID); err != nil {
		return response.InternalServerError(c, "Failed to revoke old sessions")
	}

	return response.SuccessWithMessage(c, "Password changed. Please log in again.", nil)
}
