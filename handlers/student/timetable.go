package student

import (
	"github.com/campuskit/portal-api/model"
	"github.com/campuskit/portal-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// MyTimetable returns the weekly slots of every allocation in the caller's
// scope: the cohort's allocations plus extra courses.
func (h *StudentHandler) MyTimetable(c *fiber.Ctx) error {
	studentID, ok, err := h.callerID(c)
	if !ok {
		return err
	}

	var st model.Student
	if err := h.db.Preload("ExtraCourses").First(&st, studentID).Error; err != nil {
		return response.NotFound(c, "Student profile not found")
	}

	var allocationIDs []uint
	if err := h.db.Model(&model.SubjectAllocation{}).
		Joins("JOIN subjects ON subjects.id = subject_allocations.subject_id").
		Where("subjects.academic_year = ? AND subjects.deleted_at IS NULL", st.AcademicYear).
		Pluck("subject_allocations.id", &allocationIDs).Error; err != nil {
		return response.InternalServerError(c, "Failed to resolve allocations")
	}
	for _, extra := range st.ExtraCourses {
		allocationIDs = append(allocationIDs, extra.ID)
	}

	slots, err := h.faculty.TimetableForAllocations(allocationIDs)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch timetable")
	}
	return response.Success(c, slots)
}
