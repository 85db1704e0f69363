package services

import (
	"fmt"

	"github.com/campuskit/portal-api/model"
	"gorm.io/gorm"
)

// StudentProfile is the composite profile view: identity fields joined with
// the two headline aggregates.
type StudentProfile struct {
	FirstName         string  `json:"firstName"`
	LastName          string  `json:"lastName"`
	Email             string  `json:"email"`
	PRN               string  `json:"prn"`
	Department        string  `json:"department"`
	CurrentYear       string  `json:"currentYear"`
	PhoneNumber       string  `json:"phoneNumber"`
	Address           string  `json:"address"`
	DOB               string  `json:"dob"`
	OverallAttendance float64 `json:"overallAttendance"`
	CGPA              float64 `json:"cgpa"`
}

// StudentService assembles the composite profile from the rollup and grading
// engines.
type StudentService struct {
	db         *gorm.DB
	attendance *AttendanceService
	grading    *GradingService
}

// NewStudentService creates a new student service.
func NewStudentService(db *gorm.DB) *StudentService {
	return &StudentService{
		db:         db,
		attendance: NewAttendanceService(db),
		grading:    NewGradingService(db),
	}
}

// Profile builds the composite profile for one student. Overall attendance
// is the mean of the per-subject percentages from the full rollup, so a
// subject with two held sessions weighs the same as one with forty.
func (s *StudentService) Profile(studentID uint) (*StudentProfile, error) {
	var student model.Student
	if err := s.db.Preload("User").First(&student, studentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to fetch student: %w", err)
	}

	overview, err := s.attendance.StudentOverview(studentID)
	if err != nil {
		return nil, err
	}

	cgpa, err := s.grading.CGPA(studentID)
	if err != nil {
		return nil, err
	}

	dob := ""
	if student.DOB != nil {
		dob = student.DOB.Format("2006-01-02")
	}

	return &StudentProfile{
		FirstName:         student.FirstName,
		LastName:          student.LastName,
		Email:             student.User.Email,
		PRN:               student.PRN,
		Department:        student.Department,
		CurrentYear:       string(student.AcademicYear),
		PhoneNumber:       student.PhoneNumber,
		Address:           student.Address,
		DOB:               dob,
		OverallAttendance: overallAttendance(overview),
		CGPA:              round2(cgpa),
	}, nil
}

// overallAttendance is the unweighted mean of the per-subject percentages,
// rounded to one decimal. No subjects means zero.
func overallAttendance(subjects []SubjectAttendance) float64 {
	if len(subjects) == 0 {
		return 0
	}
	var sum float64
	for _, s := range subjects {
		sum += s.Percentage
	}
	return round1(sum / float64(len(subjects)))
}

// FindByPRN looks a student up by their registration number.
func (s *StudentService) FindByPRN(prn string) (*model.Student, error) {
	var student model.Student
	if err := s.db.Preload("User").Where("prn = ?", prn).First(&student).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to fetch student by PRN: %w", err)
	}
	return &student, nil
}
