package admin

import (
	"strconv"

	"github.com/campuskit/portal-api/model"
	"github.com/campuskit/portal-api/services"
	"github.com/campuskit/portal-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// EnrollStudent creates a student account, profile, and fee record.
func (h *AdminHandler) EnrollStudent(c *fiber.Ctx) error {
	var input services.EnrollStudentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(input); err != nil {
		return response.ValidationError(c, err)
	}

	student, err := h.admin.EnrollStudent(input)
	switch err {
	case nil:
		return response.Created(c, student)
	case services.ErrDuplicateEmail:
		return response.Conflict(c, "Email already registered")
	case services.ErrDuplicatePRN:
		return response.Conflict(c, "PRN already registered")
	default:
		return response.InternalServerError(c, "Failed to enroll student")
	}
}

// EnrollFaculty creates a faculty account and profile.
func (h *AdminHandler) EnrollFaculty(c *fiber.Ctx) error {
	var input services.EnrollFacultyInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(input); err != nil {
		return response.ValidationError(c, err)
	}

	faculty, err := h.admin.EnrollFaculty(input)
	switch err {
	case nil:
		return response.Created(c, faculty)
	case services.ErrDuplicateEmail:
		return response.Conflict(c, "Email already registered")
	default:
		return response.InternalServerError(c, "Failed to enroll faculty")
	}
}

// ListStudents pages through students with an optional cohort filter.
func (h *AdminHandler) ListStudents(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	year := model.AcademicYear(c.Query("year"))

	students, total, err := h.admin.ListStudents(year, page, limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list students")
	}

	return response.Paginated(c, students, response.CalculatePagination(page, limit, total))
}

// ListFaculty returns every faculty profile.
func (h *AdminHandler) ListFaculty(c *fiber.Ctx) error {
	faculty, err := h.admin.ListFaculty()
	if err != nil {
		return response.InternalServerError(c, "Failed to list faculty")
	}
	return response.Success(c, faculty)
}

// UpdateStudent applies partial updates to a student profile.
func (h *AdminHandler) UpdateStudent(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	var updates map[string]interface{}
	if err := c.BodyParser(&updates); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	// Only profile fields are writable through this endpoint.
	allowed := map[string]bool{
		"first_name": true, "middle_name": true, "last_name": true,
		"phone_number": true, "address": true, "department": true,
		"academic_year": true,
	}
	for key := range updates {
		if !allowed[key] {
			delete(updates, key)
		}
	}
	if len(updates) == 0 {
		return response.BadRequest(c, "No updatable fields provided")
	}

	student, err := h.admin.UpdateStudent(uint(id), updates)
	switch err {
	case nil:
		return response.Success(c, student)
	case services.ErrStudentNotFound:
		return response.NotFound(c, "Student not found")
	default:
		return response.InternalServerError(c, "Failed to update student")
	}
}

// DeactivateUser disables a login account.
func (h *AdminHandler) DeactivateUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	switch err := h.admin.DeactivateUser(uint(id)); err {
	case nil:
		return response.SuccessWithMessage(c, "Account deactivated", nil)
	case services.ErrUserNotFound:
		return response.NotFound(c, "User not found")
	default:
		return response.InternalServerError(c, "Failed to deactivate account")
	}
}
