package notice

import (
	"strconv"

	"github.com/campuskit/portal-api/model"
	"github.com/campuskit/portal-api/services"
	"github.com/campuskit/portal-api/utils/middleware"
	"github.com/campuskit/portal-api/utils/response"
	"github.com/campuskit/portal-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// NoticeHandler handles the notice board.
type NoticeHandler struct {
	validator *validation.Validator
	notices   *services.NoticeService
}

// NewNoticeHandler creates a new notice handler.
func NewNoticeHandler(db *gorm.DB) *NoticeHandler {
	return &NoticeHandler{
		validator: validation.NewValidator(),
		notices:   services.NewNoticeService(db),
	}
}

// PostNoticeRequest publishes an announcement.
type PostNoticeRequest struct {
	Title      string           `json:"title" validate:"required"`
	Content    string           `json:"content" validate:"required"`
	TargetRole model.TargetRole `json:"targetRole" validate:"required"`
}

// Post publishes a notice. Admin only.
func (h *NoticeHandler) Post(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req PostNoticeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	notice, err := h.notices.Post(userID, req.Title, req.Content, req.TargetRole)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	return response.Created(c, notice)
}

// List returns the notices visible to the caller's role, newest first.
func (h *NoticeHandler) List(c *fiber.Ctx) error {
	role, ok := middleware.GetUserRole(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	notices, err := h.notices.ListFor(role)
	if err != nil {
		return response.InternalServerError(c, "Failed to list notices")
	}
	return response.Success(c, notices)
}

// Delete removes a notice. Admin only.
func (h *NoticeHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid notice ID")
	}

	switch err := h.notices.Delete(uint(id)); err {
	case nil:
		return response.SuccessWithMessage(c, "Notice deleted", nil)
	case services.ErrNoticeNotFound:
		return response.NotFound(c, "Notice not found")
	default:
		return response.InternalServerError(c, "Failed to delete notice")
	}
}
