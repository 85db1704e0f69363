package admin

import (
	"strconv"

	"github.com/campuskit/portal-api/services"
	"github.com/campuskit/portal-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// PaymentRequest records a fee payment for a student.
type PaymentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// RecordPayment adds a payment to a student's fee ledger.
func (h *AdminHandler) RecordPayment(c *fiber.Ctx) error {
	studentID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	var req PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	fee, err := h.fees.RecordPayment(uint(studentID), req.Amount)
	switch err {
	case nil:
		return response.Success(c, fee)
	case services.ErrFeeNotFound:
		return response.NotFound(c, "Fee record not found")
	default:
		return response.BadRequest(c, err.Error())
	}
}

// TotalFeeRequest adjusts a student's total liability.
type TotalFeeRequest struct {
	TotalFee float64 `json:"totalFee" validate:"gte=0"`
}

// SetTotalFee updates a student's total fee liability.
func (h *AdminHandler) SetTotalFee(c *fiber.Ctx) error {
	studentID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	var req TotalFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	fee, err := h.fees.SetTotalFee(uint(studentID), req.TotalFee)
	switch err {
	case nil:
		return response.Success(c, fee)
	case services.ErrFeeNotFound:
		return response.NotFound(c, "Fee record not found")
	default:
		return response.BadRequest(c, err.Error())
	}
}

// FeeStatus returns one student's fee position.
func (h *AdminHandler) FeeStatus(c *fiber.Ctx) error {
	studentID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	status, err := h.fees.Status(uint(studentID))
	switch err {
	case nil:
		return response.Success(c, status)
	case services.ErrFeeNotFound:
		return response.NotFound(c, "Fee record not found")
	default:
		return response.InternalServerError(c, "Failed to fetch fee status")
	}
}

// PendingFees lists every student with an outstanding balance.
func (h *AdminHandler) PendingFees(c *fiber.Ctx) error {
	pending, err := h.fees.ListPending()
	if err != nil {
		return response.InternalServerError(c, "Failed to list pending fees")
	}
	return response.Success(c, pending)
}
