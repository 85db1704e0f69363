package services

import (
	"fmt"
	"time"

	"github.com/campuskit/portal-api/model"
	"gorm.io/gorm"
)

// AssessmentMarkEntry is one student's score in an assessment mark sheet.
type AssessmentMarkEntry struct {
	StudentID uint    `json:"studentId" validate:"required"`
	Marks     float64 `json:"marks" validate:"gte=0"`
}

// FacultyService covers the faculty-facing operations: owned allocations,
// assessments, and mark sheets.
type FacultyService struct {
	db *gorm.DB
}

// NewFacultyService creates a new faculty service.
func NewFacultyService(db *gorm.DB) *FacultyService {
	return &FacultyService{db: db}
}

// MyAllocations lists the allocations a faculty member teaches.
func (s *FacultyService) MyAllocations(facultyID uint) ([]model.SubjectAllocation, error) {
	var allocations []model.SubjectAllocation
	if err := s.db.
		Preload("Subject").
		Where("faculty_id = ?", facultyID).
		Find(&allocations).Error; err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	return allocations, nil
}

// OwnsAllocation reports whether the allocation belongs to the faculty
// member. Handlers gate attendance and assessment writes on this.
func (s *FacultyService) OwnsAllocation(facultyID, allocationID uint) (bool, error) {
	var count int64
	if err := s.db.Model(&model.SubjectAllocation{}).
		Where("id = ? AND faculty_id = ?", allocationID, facultyID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check allocation ownership: %w", err)
	}
	return count > 0, nil
}

// Profile loads a faculty member's profile with login details.
func (s *FacultyService) Profile(facultyID uint) (*model.Faculty, error) {
	var faculty model.Faculty
	if err := s.db.Preload("User").First(&faculty, facultyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrFacultyNotFound
		}
		return nil, fmt.Errorf("failed to fetch faculty: %w", err)
	}
	return &faculty, nil
}

// CreateAssessment opens a new graded activity under an allocation.
func (s *FacultyService) CreateAssessment(allocationID uint, title string, examType model.ExamType, maxMarks int, date time.Time) (*model.Assessment, error) {
	if !examType.Valid() {
		return nil, fmt.Errorf("unknown exam type %q", examType)
	}

	var allocation model.SubjectAllocation
	if err := s.db.First(&allocation, allocationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAllocationNotFound
		}
		return nil, fmt.Errorf("failed to fetch allocation: %w", err)
	}

	assessment := model.Assessment{
		AllocationID: allocation.ID,
		Title:        title,
		Type:         examType,
		MaxMarks:     maxMarks,
		Date:         date,
	}
	if err := s.db.Create(&assessment).Error; err != nil {
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}
	return &assessment, nil
}

// RecordAssessmentMarks stores the mark sheet of one assessment in a single
// transaction and mirrors each score into the grading engine's inputs, so
// report cards pick it up without a second submission step.
func (s *FacultyService) RecordAssessmentMarks(assessmentID uint, entries []AssessmentMarkEntry) error {
	if len(entries) == 0 {
		return ErrEmptyBatch
	}

	var assessment model.Assessment
	if err := s.db.Preload("Allocation").First(&assessment, assessmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("assessment %d not found", assessmentID)
		}
		return fmt.Errorf("failed to fetch assessment: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		studentMarks := make([]model.StudentMark, 0, len(entries))
		academicMarks := make([]model.AcademicMark, 0, len(entries))
		for _, e := range entries {
			studentMarks = append(studentMarks, model.StudentMark{
				AssessmentID: assessment.ID,
				StudentID:    e.StudentID,
				Marks:        e.Marks,
			})
			academicMarks = append(academicMarks, model.AcademicMark{
				StudentID: e.StudentID,
				SubjectID: assessment.Allocation.SubjectID,
				ExamType:  assessment.Type,
				Marks:     e.Marks,
				MaxMarks:  float64(assessment.MaxMarks),
			})
		}
		if err := tx.Create(&studentMarks).Error; err != nil {
			return fmt.Errorf("failed to save assessment marks: %w", err)
		}
		if err := tx.Create(&academicMarks).Error; err != nil {
			return fmt.Errorf("failed to mirror marks: %w", err)
		}
		return nil
	})
}

// AssessmentsForAllocation lists an allocation's assessments, newest first.
func (s *FacultyService) AssessmentsForAllocation(allocationID uint) ([]model.Assessment, error) {
	var assessments []model.Assessment
	if err := s.db.
		Where("allocation_id = ?", allocationID).
		Order("date DESC").
		Find(&assessments).Error; err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	return assessments, nil
}

// AssessmentsForStudent lists the assessments of every allocation in scope
// for a student, with the student's own marks preloaded where present.
func (s *FacultyService) AssessmentsForStudent(studentID uint) ([]model.Assessment, error) {
	var student model.Student
	if err := s.db.Preload("ExtraCourses").First(&student, studentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to fetch student: %w", err)
	}

	allocationIDs := make([]uint, 0, 8)
	var cohortAllocIDs []uint
	if err := s.db.Model(&model.SubjectAllocation{}).
		Joins("JOIN subjects ON subjects.id = subject_allocations.subject_id").
		Where("subjects.academic_year = ? AND subjects.deleted_at IS NULL", student.AcademicYear).
		Pluck("subject_allocations.id", &cohortAllocIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cohort allocations: %w", err)
	}
	allocationIDs = append(allocationIDs, cohortAllocIDs...)
	for _, extra := range student.ExtraCourses {
		allocationIDs = append(allocationIDs, extra.ID)
	}
	if len(allocationIDs) == 0 {
		return []model.Assessment{}, nil
	}

	var assessments []model.Assessment
	if err := s.db.
		Preload("Allocation.Subject").
		Preload("Marks", "student_id = ?", studentID).
		Where("allocation_id IN ?", allocationIDs).
		Order("date DESC").
		Find(&assessments).Error; err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	return assessments, nil
}

// TimetableForAllocations returns the weekly slots of the given allocations.
func (s *FacultyService) TimetableForAllocations(allocationIDs []uint) ([]model.TimetableSlot, error) {
	if len(allocationIDs) == 0 {
		return []model.TimetableSlot{}, nil
	}
	var slots []model.TimetableSlot
	if err := s.db.
		Preload("Allocation.Subject").
		Where("allocation_id IN ?", allocationIDs).
		Order("day_of_week ASC, start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch timetable: %w", err)
	}
	return slots, nil
}
