package student

import (
	"github.com/campuskit/portal-api/services"
	"gorm.io/gorm"
)

// StudentHandler handles student-facing endpoints: attendance, report card,
// results, assessments, fees, and the composite profile.
type StudentHandler struct {
	db         *gorm.DB
	attendance *services.AttendanceService
	grading    *services.GradingService
	students   *services.StudentService
	faculty    *services.FacultyService
	fees       *services.FeeService
}

// NewStudentHandler creates a new student handler.
func NewStudentHandler(db *gorm.DB) *StudentHandler {
	return &StudentHandler{
		db:         db,
		attendance: services.NewAttendanceService(db),
		grading:    services.NewGradingService(db),
		students:   services.NewStudentService(db),
		faculty:    services.NewFacultyService(db),
		fees:       services.NewFeeService(db),
	}
}
