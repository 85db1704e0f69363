package faculty

import (
	"github.com/campuskit/portal-api/services"
	"github.com/campuskit/portal-api/utils/validation"
	"gorm.io/gorm"
)

// FacultyHandler handles faculty-facing endpoints: attendance, reports,
// assessments, and marks.
type FacultyHandler struct {
	db         *gorm.DB
	validator  *validation.Validator
	faculty    *services.FacultyService
	attendance *services.AttendanceService
	grading    *services.GradingService
	students   *services.StudentService
}

// NewFacultyHandler creates a new faculty handler.
func NewFacultyHandler(db *gorm.DB) *FacultyHandler {
	return &FacultyHandler{
		db:         db,
		validator:  validation.NewValidator(),
		faculty:    services.NewFacultyService(db),
		attendance: services.NewAttendanceService(db),
		grading:    services.NewGradingService(db),
		students:   services.NewStudentService(db),
	}
}
