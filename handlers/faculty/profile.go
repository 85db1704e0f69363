package faculty

import (
	"strconv"

	"github.com/campuskit/portal-api/services"
	"github.com/campuskit/portal-api/utils/middleware"
	"github.com/campuskit/portal-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// MySubjects lists the caller's allocations with their subjects.
func (h *FacultyHandler) MySubjects(c *fiber.Ctx) error {
	facultyID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	allocations, err := h.faculty.MyAllocations(facultyID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list allocations")
	}
	return response.Success(c, allocations)
}

// MyProfile returns the caller's faculty profile.
func (h *FacultyHandler) MyProfile(c *fiber.Ctx) error {
	facultyID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	profile, err := h.faculty.Profile(facultyID)
	switch err {
	case nil:
		return response.Success(c, profile)
	case services.ErrFacultyNotFound:
		return response.NotFound(c, "Faculty profile not found")
	default:
		return response.InternalServerError(c, "Failed to fetch profile")
	}
}

// MyTimetable returns the weekly slots across the caller's allocations.
func (h *FacultyHandler) MyTimetable(c *fiber.Ctx) error {
	facultyID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	allocations, err := h.faculty.MyAllocations(facultyID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list allocations")
	}
	ids := make([]uint, 0, len(allocations))
	for _, a := range allocations {
		ids = append(ids, a.ID)
	}

	slots, err := h.faculty.TimetableForAllocations(ids)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch timetable")
	}
	return response.Success(c, slots)
}

// StudentProfile returns the composite profile of a student the caller
// teaches: the student must appear on the roster of one of the caller's
// allocations.
func (h *FacultyHandler) StudentProfile(c *fiber.Ctx) error {
	facultyID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	studentID, err := strconv.ParseUint(c.Params("studentId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	allocations, err := h.faculty.MyAllocations(facultyID)
	if err != nil {
		return response.InternalServerError(c, "Failed to verify access")
	}

	teaches := false
	for _, alloc := range allocations {
		roster, err := h.attendance.Roster(alloc.ID)
		if err != nil {
			continue
		}
		for _, st := range roster {
			if st.ID == uint(studentID) {
				teaches = true
				break
			}
		}
		if teaches {
			break
		}
	}
	if !teaches {
		return response.Forbidden(c, "Student is not in any of your classes")
	}

	profile, err := h.students.Profile(uint(studentID))
	switch err {
	case nil:
		return response.Success(c, profile)
	case services.ErrStudentNotFound:
		return response.NotFound(c, "Student not found")
	default:
		return response.InternalServerError(c, "Failed to fetch profile")
	}
}
