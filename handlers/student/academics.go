package student

import (
	"github.com/campuskit/portal-api/services"
	"github.com/campuskit/portal-api/utils/middleware"
	"github.com/campuskit/portal-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// callerID resolves the authenticated student. When ok is false a response
// has already been written and the handler must return the error as-is.
func (h *StudentHandler) callerID(c *fiber.Ctx) (uint, bool, error) {
	studentID, ok := middleware.GetUserID(c)
	if !ok {
		return 0, false, response.Unauthorized(c, "Not authenticated")
	}
	return studentID, true, nil
}

// MyAttendance returns the caller's full attendance rollup: one row per
// subject code, cohort subjects included even with zero sessions.
func (h *StudentHandler) MyAttendance(c *fiber.Ctx) error {
	studentID, ok, err := h.callerID(c)
	if !ok {
		return err
	}

	overview, err := h.attendance.StudentOverview(studentID)
	switch err {
	case nil:
		return response.Success(c, overview)
	case services.ErrStudentNotFound:
		return response.NotFound(c, "Student profile not found")
	default:
		return response.InternalServerError(c, "Failed to compute attendance")
	}
}

// ReportCard returns the caller's composed per-subject scores.
func (h *StudentHandler) ReportCard(c *fiber.Ctx) error {
	studentID, ok, err := h.callerID(c)
	if !ok {
		return err
	}

	card, err := h.grading.ReportCard(studentID)
	switch err {
	case nil:
		return response.Success(c, card)
	case services.ErrStudentNotFound:
		return response.NotFound(c, "Student profile not found")
	default:
		return response.InternalServerError(c, "Failed to compose report card")
	}
}

// MyResults returns the caller's term results, oldest first.
func (h *StudentHandler) MyResults(c *fiber.Ctx) error {
	studentID, ok, err := h.callerID(c)
	if !ok {
		return err
	}

	results, err := h.grading.Results(studentID)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch results")
	}
	return response.Success(c, results)
}

// MyAssessments lists the assessments in scope for the caller with their
// own marks attached where graded.
func (h *StudentHandler) MyAssessments(c *fiber.Ctx) error {
	studentID, ok, err := h.callerID(c)
	if !ok {
		return err
	}

	assessments, err := h.faculty.AssessmentsForStudent(studentID)
	switch err {
	case nil:
		return response.Success(c, assessments)
	case services.ErrStudentNotFound:
		return response.NotFound(c, "Student profile not found")
	default:
		return response.InternalServerError(c, "Failed to list assessments")
	}
}

// Profile returns the caller's composite profile with overall attendance
// and CGPA.
func (h *StudentHandler) Profile(c *fiber.Ctx) error {
	studentID, ok, err := h.callerID(c)
	if !ok {
		return err
	}

	profile, err := h.students.Profile(studentID)
	switch err {
	case nil:
		return response.Success(c, profile)
	case services.ErrStudentNotFound:
		return response.NotFound(c, "Student profile not found")
	default:
		return response.InternalServerError(c, "Failed to build profile")
	}
}

// MyFees returns the caller's fee position.
func (h *StudentHandler) MyFees(c *fiber.Ctx) error {
	studentID, ok, err := h.callerID(c)
	if !ok {
		return err
	}

	status, err := h.fees.Status(studentID)
	switch err {
	case nil:
		return response.Success(c, status)
	case services.ErrFeeNotFound:
		return response.NotFound(c, "Fee record not found")
	default:
		return response.InternalServerError(c, "Failed to fetch fee status")
	}
}
