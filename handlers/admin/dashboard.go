package admin

import (
	"github.com/campuskit/portal-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// Dashboard returns the headline counts for the admin landing page.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	if h.rawStore == nil {
		return response.InternalServerError(c, "Dashboard store unavailable")
	}

	counts, err := h.rawStore.CountDashboard()
	if err != nil {
		return response.InternalServerError(c, "Failed to compute dashboard counts")
	}
	return response.Success(c, counts)
}
