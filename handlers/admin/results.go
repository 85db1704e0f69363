package admin

import (
	"io"

	"github.com/campuskit/portal-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// maxLedgerSize caps uploaded ledger PDFs at 20 MB.
const maxLedgerSize = 20 << 20

// ImportResultLedger accepts a multipart PDF upload of a university result
// ledger and imports its rows as exam results.
func (h *AdminHandler) ImportResultLedger(c *fiber.Ctx) error {
	examSession := c.FormValue("examSession")
	if examSession == "" {
		return response.BadRequest(c, "examSession is required")
	}

	fileHeader, err := c.FormFile("ledger")
	if err != nil {
		return response.BadRequest(c, "ledger file is required")
	}
	if fileHeader.Size > maxLedgerSize {
		return response.BadRequest(c, "Ledger file too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to read uploaded file")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return response.InternalServerError(c, "Failed to read uploaded file")
	}

	summary, err := h.ledger.ImportPDF(examSession, content)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	return response.SuccessWithMessage(c, "Ledger imported", summary)
}
