package faculty

import (
	"strconv"
	"time"

	"github.com/campuskit/portal-api/model"
	"github.com/campuskit/portal-api/services"
	"github.com/campuskit/portal-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// CreateAssessmentRequest opens a graded activity under an allocation.
type CreateAssessmentRequest struct {
	Title    string         `json:"title" validate:"required"`
	Type     model.ExamType `json:"type" validate:"required"`
	MaxMarks int            `json:"maxMarks" validate:"required,gt=0"`
	Date     string         `json:"date" validate:"required"` // "2006-01-02"
}

// CreateAssessment creates a graded activity for an owned allocation.
func (h *FacultyHandler) CreateAssessment(c *fiber.Ctx) error {
	allocationID, ok, err := h.ownedAllocation(c)
	if !ok {
		return err
	}

	var req CreateAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
	}

	assessment, err := h.faculty.CreateAssessment(allocationID, req.Title, req.Type, req.MaxMarks, date)
	switch err {
	case nil:
		return response.Created(c, assessment)
	case services.ErrAllocationNotFound:
		return response.NotFound(c, "Allocation not found")
	default:
		return response.BadRequest(c, err.Error())
	}
}

// ListAssessments returns the assessments of an owned allocation.
func (h *FacultyHandler) ListAssessments(c *fiber.Ctx) error {
	allocationID, ok, err := h.ownedAllocation(c)
	if !ok {
		return err
	}

	assessments, err := h.faculty.AssessmentsForAllocation(allocationID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list assessments")
	}
	return response.Success(c, assessments)
}

// RecordMarksRequest is the mark sheet of one assessment.
type RecordMarksRequest struct {
	Entries []services.AssessmentMarkEntry `json:"entries" validate:"required,min=1,dive"`
}

// RecordMarks stores the mark sheet of one assessment.
func (h *FacultyHandler) RecordMarks(c *fiber.Ctx) error {
	allocationID, ok, err := h.ownedAllocation(c)
	if !ok {
		return err
	}

	assessmentID, err := strconv.ParseUint(c.Params("assessmentId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid assessment ID")
	}

	// The assessment must live under the allocation in the path.
	var assessment model.Assessment
	if err := h.db.First(&assessment, uint(assessmentID)).Error; err != nil {
		return response.NotFound(c, "Assessment not found")
	}
	if assessment.AllocationID != allocationID {
		return response.Forbidden(c, "Assessment does not belong to this allocation")
	}

	var req RecordMarksRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	switch err := h.faculty.RecordAssessmentMarks(uint(assessmentID), req.Entries); err {
	case nil:
		return response.SuccessWithMessage(c, "Marks recorded", fiber.Map{"entries": len(req.Entries)})
	case services.ErrEmptyBatch:
		return response.BadRequest(c, "No mark entries provided")
	default:
		return response.InternalServerError(c, "Failed to record marks")
	}
}

// SubmitMarksRequest is a direct component-mark batch, bypassing an
// assessment. Used for importing external or legacy marks.
type SubmitMarksRequest struct {
	Entries []services.MarkEntry `json:"entries" validate:"required,min=1,dive"`
}

// SubmitMarks stores raw component marks for the grading engine.
func (h *FacultyHandler) SubmitMarks(c *fiber.Ctx) error {
	var req SubmitMarksRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	switch err := h.grading.SaveBatchMarks(req.Entries); err {
	case nil:
		return response.SuccessWithMessage(c, "Marks saved", fiber.Map{"entries": len(req.Entries)})
	case services.ErrEmptyBatch:
		return response.BadRequest(c, "No mark entries provided")
	default:
		return response.BadRequest(c, err.Error())
	}
}
