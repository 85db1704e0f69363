package admin

import (
	"strconv"

	"github.com/campuskit/portal-api/model"
	"github.com/campuskit/portal-api/services"
	"github.com/campuskit/portal-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// CreateSubjectRequest carries a new catalog entry.
type CreateSubjectRequest struct {
	Name         string             `json:"name" validate:"required"`
	Code         string             `json:"code" validate:"required"`
	Department   string             `json:"department"`
	AcademicYear model.AcademicYear `json:"academicYear" validate:"required"`
	Semester     int                `json:"semester"`
}

// CreateSubject adds a subject to the catalog.
func (h *AdminHandler) CreateSubject(c *fiber.Ctx) error {
	var req CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	subject := model.Subject{
		Name:         req.Name,
		Code:         req.Code,
		Department:   req.Department,
		AcademicYear: req.AcademicYear,
		Semester:     req.Semester,
	}
	if err := h.admin.CreateSubject(&subject); err != nil {
		return response.Conflict(c, "Subject code already exists")
	}
	return response.Created(c, subject)
}

// ListSubjects returns the catalog with an optional cohort filter.
func (h *AdminHandler) ListSubjects(c *fiber.Ctx) error {
	subjects, err := h.admin.ListSubjects(model.AcademicYear(c.Query("year")))
	if err != nil {
		return response.InternalServerError(c, "Failed to list subjects")
	}
	return response.Success(c, subjects)
}

// UpdateSubject applies partial updates to a catalog entry.
func (h *AdminHandler) UpdateSubject(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid subject ID")
	}

	var updates map[string]interface{}
	if err := c.BodyParser(&updates); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	allowed := map[string]bool{
		"name": true, "code": true, "department": true,
		"academic_year": true, "semester": true,
	}
	for key := range updates {
		if !allowed[key] {
			delete(updates, key)
		}
	}
	if len(updates) == 0 {
		return response.BadRequest(c, "No updatable fields provided")
	}

	subject, err := h.admin.UpdateSubject(uint(id), updates)
	switch err {
	case nil:
		return response.Success(c, subject)
	case services.ErrSubjectNotFound:
		return response.NotFound(c, "Subject not found")
	default:
		return response.InternalServerError(c, "Failed to update subject")
	}
}

// DeleteSubject removes a subject from the catalog.
func (h *AdminHandler) DeleteSubject(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid subject ID")
	}

	switch err := h.admin.DeleteSubject(uint(id)); err {
	case nil:
		return response.SuccessWithMessage(c, "Subject deleted", nil)
	case services.ErrSubjectNotFound:
		return response.NotFound(c, "Subject not found")
	default:
		return response.InternalServerError(c, "Failed to delete subject")
	}
}

// AllocateSubjectRequest binds a subject to a faculty member.
type AllocateSubjectRequest struct {
	FacultyID uint `json:"facultyId" validate:"required"`
	SubjectID uint `json:"subjectId" validate:"required"`
}

// AllocateSubject assigns a subject to a faculty member.
func (h *AdminHandler) AllocateSubject(c *fiber.Ctx) error {
	var req AllocateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	allocation, err := h.admin.AllocateSubject(req.FacultyID, req.SubjectID)
	switch err {
	case nil:
		return response.Created(c, allocation)
	case services.ErrFacultyNotFound:
		return response.NotFound(c, "Faculty not found")
	case services.ErrSubjectNotFound:
		return response.NotFound(c, "Subject not found")
	case services.ErrDuplicateAllocation:
		return response.Conflict(c, "Subject already assigned to this faculty")
	default:
		return response.InternalServerError(c, "Failed to allocate subject")
	}
}

// ListAllocations returns every allocation.
func (h *AdminHandler) ListAllocations(c *fiber.Ctx) error {
	allocations, err := h.admin.ListAllocations()
	if err != nil {
		return response.InternalServerError(c, "Failed to list allocations")
	}
	return response.Success(c, allocations)
}

// DeleteAllocation removes an allocation.
func (h *AdminHandler) DeleteAllocation(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid allocation ID")
	}

	switch err := h.admin.DeleteAllocation(uint(id)); err {
	case nil:
		return response.SuccessWithMessage(c, "Allocation removed", nil)
	case services.ErrAllocationNotFound:
		return response.NotFound(c, "Allocation not found")
	default:
		return response.InternalServerError(c, "Failed to remove allocation")
	}
}

// ExtraCourseRequest registers a student for an out-of-cohort allocation.
type ExtraCourseRequest struct {
	StudentID    uint `json:"studentId" validate:"required"`
	AllocationID uint `json:"allocationId" validate:"required"`
}

// AddExtraCourse registers a student for an allocation outside their cohort.
func (h *AdminHandler) AddExtraCourse(c *fiber.Ctx) error {
	var req ExtraCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	switch err := h.admin.AddExtraCourse(req.StudentID, req.AllocationID); err {
	case nil:
		return response.SuccessWithMessage(c, "Extra course added", nil)
	case services.ErrStudentNotFound:
		return response.NotFound(c, "Student not found")
	case services.ErrAllocationNotFound:
		return response.NotFound(c, "Allocation not found")
	default:
		return response.InternalServerError(c, "Failed to add extra course")
	}
}

// RemoveExtraCourse drops a student's extra-course registration.
func (h *AdminHandler) RemoveExtraCourse(c *fiber.Ctx) error {
	var req ExtraCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	switch err := h.admin.RemoveExtraCourse(req.StudentID, req.AllocationID); err {
	case nil:
		return response.SuccessWithMessage(c, "Extra course removed", nil)
	case services.ErrStudentNotFound:
		return response.NotFound(c, "Student not found")
	default:
		return response.InternalServerError(c, "Failed to remove extra course")
	}
}

// CreateTimetableSlotRequest adds a weekly slot to an allocation.
type CreateTimetableSlotRequest struct {
	AllocationID uint   `json:"allocationId" validate:"required"`
	DayOfWeek    string `json:"dayOfWeek" validate:"required,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	StartTime    string `json:"startTime" validate:"required"`
	EndTime      string `json:"endTime" validate:"required"`
	RoomNumber   string `json:"roomNumber"`
}

// CreateTimetableSlot adds a recurring weekly slot to an allocation.
func (h *AdminHandler) CreateTimetableSlot(c *fiber.Ctx) error {
	var req CreateTimetableSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	slot := model.TimetableSlot{
		AllocationID: req.AllocationID,
		DayOfWeek:    req.DayOfWeek,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		RoomNumber:   req.RoomNumber,
	}
	switch err := h.admin.CreateTimetableSlot(&slot); err {
	case nil:
		return response.Created(c, slot)
	case services.ErrAllocationNotFound:
		return response.NotFound(c, "Allocation not found")
	default:
		return response.InternalServerError(c, "Failed to create timetable slot")
	}
}

// DeleteTimetableSlot removes a slot from the timetable.
func (h *AdminHandler) DeleteTimetableSlot(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid slot ID")
	}

	switch err := h.admin.DeleteTimetableSlot(uint(id)); err {
	case nil:
		return response.SuccessWithMessage(c, "Timetable slot removed", nil)
	case services.ErrSlotNotFound:
		return response.NotFound(c, "Timetable slot not found")
	default:
		return response.InternalServerError(c, "Failed to remove timetable slot")
	}
}
