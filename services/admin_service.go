package services

import (
	"fmt"
	"time"

	"github.com/campuskit/portal-api/model"
	"github.com/campuskit/portal-api/utils/auth"
	"gorm.io/gorm"
)

// DefaultTotalFee is the fee liability opened for every newly enrolled
// student.
const DefaultTotalFee = 150000

// EnrollStudentInput carries everything needed to open a student account.
type EnrollStudentInput struct {
	Email        string             `json:"email" validate:"required,email"`
	Password     string             `json:"password" validate:"required,min=8"`
	PRN          string             `json:"prn" validate:"required"`
	FirstName    string             `json:"firstName" validate:"required"`
	MiddleName   string             `json:"middleName"`
	LastName     string             `json:"lastName" validate:"required"`
	DOB          *time.Time         `json:"dob"`
	PhoneNumber  string             `json:"phoneNumber"`
	Address      string             `json:"address"`
	Department   string             `json:"department"`
	AcademicYear model.AcademicYear `json:"academicYear" validate:"required"`
}

// EnrollFacultyInput carries everything needed to open a faculty account.
type EnrollFacultyInput struct {
	Email         string     `json:"email" validate:"required,email"`
	Password      string     `json:"password" validate:"required,min=8"`
	FirstName     string     `json:"firstName" validate:"required"`
	LastName      string     `json:"lastName" validate:"required"`
	Designation   string     `json:"designation"`
	Department    string     `json:"department"`
	Qualification string     `json:"qualification"`
	PhoneNumber   string     `json:"phoneNumber"`
	JoiningDate   *time.Time `json:"joiningDate"`
}

// AdminService handles enrollment, the subject catalog, and allocations.
type AdminService struct {
	db *gorm.DB
}

// NewAdminService creates a new admin service.
func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// EnrollStudent opens a student account in one transaction: login user,
// student profile, and an initial fee liability. A failure at any step
// leaves nothing behind.
func (s *AdminService) EnrollStudent(input EnrollStudentInput) (*model.Student, error) {
	if err := s.checkEmailFree(input.Email); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&model.Student{}).Where("prn = ?", input.PRN).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check PRN: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicatePRN
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	var student model.Student
	err = s.db.Transaction(func(tx *gorm.DB) error {
		user := model.User{
			Email:        input.Email,
			PasswordHash: hash,
			Role:         model.RoleStudent,
			IsActive:     true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		student = model.Student{
			ID:           user.ID,
			PRN:          input.PRN,
			FirstName:    input.FirstName,
			MiddleName:   input.MiddleName,
			LastName:     input.LastName,
			DOB:          input.DOB,
			PhoneNumber:  input.PhoneNumber,
			Address:      input.Address,
			Department:   input.Department,
			AcademicYear: input.AcademicYear,
		}
		if err := tx.Create(&student).Error; err != nil {
			return fmt.Errorf("failed to create student profile: %w", err)
		}

		fee := model.FeeRecord{
			StudentID: student.ID,
			TotalFee:  DefaultTotalFee,
		}
		if err := tx.Create(&fee).Error; err != nil {
			return fmt.Errorf("failed to open fee record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// EnrollFaculty opens a faculty account: login user plus faculty profile, in
// one transaction.
func (s *AdminService) EnrollFaculty(input EnrollFacultyInput) (*model.Faculty, error) {
	if err := s.checkEmailFree(input.Email); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	var faculty model.Faculty
	err = s.db.Transaction(func(tx *gorm.DB) error {
		user := model.User{
			Email:        input.Email,
			PasswordHash: hash,
			Role:         model.RoleFaculty,
			IsActive:     true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		faculty = model.Faculty{
			ID:            user.ID,
			FirstName:     input.FirstName,
			LastName:      input.LastName,
			Designation:   input.Designation,
			Department:    input.Department,
			Qualification: input.Qualification,
			PhoneNumber:   input.PhoneNumber,
			JoiningDate:   input.JoiningDate,
		}
		if err := tx.Create(&faculty).Error; err != nil {
			return fmt.Errorf("failed to create faculty profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &faculty, nil
}

func (s *AdminService) checkEmailFree(email string) error {
	var count int64
	if err := s.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return ErrDuplicateEmail
	}
	return nil
}

// ListStudents pages through students, optionally filtered by cohort.
func (s *AdminService) ListStudents(year model.AcademicYear, page, limit int) ([]model.Student, int64, error) {
	query := s.db.Model(&model.Student{})
	if year != "" {
		query = query.Where("academic_year = ?", year)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count students: %w", err)
	}

	var students []model.Student
	if err := query.
		Preload("User").
		Order("prn ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&students).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list students: %w", err)
	}
	return students, total, nil
}

// ListFaculty returns all faculty profiles.
func (s *AdminService) ListFaculty() ([]model.Faculty, error) {
	var faculty []model.Faculty
	if err := s.db.Preload("User").Order("last_name ASC").Find(&faculty).Error; err != nil {
		return nil, fmt.Errorf("failed to list faculty: %w", err)
	}
	return faculty, nil
}

// CreateSubject adds a subject to the catalog.
func (s *AdminService) CreateSubject(subject *model.Subject) error {
	if err := s.db.Create(subject).Error; err != nil {
		return fmt.Errorf("failed to create subject: %w", err)
	}
	return nil
}

// ListSubjects returns the catalog, optionally filtered by cohort.
func (s *AdminService) ListSubjects(year model.AcademicYear) ([]model.Subject, error) {
	query := s.db.Order("code ASC")
	if year != "" {
		query = query.Where("academic_year = ?", year)
	}
	var subjects []model.Subject
	if err := query.Find(&subjects).Error; err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return subjects, nil
}

// UpdateSubject applies the given fields to an existing subject.
func (s *AdminService) UpdateSubject(id uint, updates map[string]interface{}) (*model.Subject, error) {
	var subject model.Subject
	if err := s.db.First(&subject, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrSubjectNotFound
		}
		return nil, fmt.Errorf("failed to fetch subject: %w", err)
	}
	if err := s.db.Model(&subject).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update subject: %w", err)
	}
	return &subject, nil
}

// DeleteSubject soft-deletes a subject from the catalog.
func (s *AdminService) DeleteSubject(id uint) error {
	result := s.db.Delete(&model.Subject{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete subject: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSubjectNotFound
	}
	return nil
}

// AllocateSubject assigns a subject to a faculty member. The same pair can
// only be allocated once.
func (s *AdminService) AllocateSubject(facultyID, subjectID uint) (*model.SubjectAllocation, error) {
	var faculty model.Faculty
	if err := s.db.First(&faculty, facultyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrFacultyNotFound
		}
		return nil, fmt.Errorf("failed to fetch faculty: %w", err)
	}

	var subject model.Subject
	if err := s.db.First(&subject, subjectID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrSubjectNotFound
		}
		return nil, fmt.Errorf("failed to fetch subject: %w", err)
	}

	var count int64
	if err := s.db.Model(&model.SubjectAllocation{}).
		Where("faculty_id = ? AND subject_id = ?", facultyID, subjectID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check allocation: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateAllocation
	}

	allocation := model.SubjectAllocation{FacultyID: facultyID, SubjectID: subjectID}
	if err := s.db.Create(&allocation).Error; err != nil {
		return nil, fmt.Errorf("failed to create allocation: %w", err)
	}
	allocation.Faculty = faculty
	allocation.Subject = subject
	return &allocation, nil
}

// ListAllocations returns every allocation with its subject and faculty.
func (s *AdminService) ListAllocations() ([]model.SubjectAllocation, error) {
	var allocations []model.SubjectAllocation
	if err := s.db.Preload("Subject").Preload("Faculty").Find(&allocations).Error; err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	return allocations, nil
}

// DeleteAllocation removes an allocation.
func (s *AdminService) DeleteAllocation(id uint) error {
	result := s.db.Delete(&model.SubjectAllocation{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete allocation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAllocationNotFound
	}
	return nil
}

// CreateTimetableSlot adds a recurring weekly slot to an allocation's
// timetable.
func (s *AdminService) CreateTimetableSlot(slot *model.TimetableSlot) error {
	var allocation model.SubjectAllocation
	if err := s.db.First(&allocation, slot.AllocationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrAllocationNotFound
		}
		return fmt.Errorf("failed to fetch allocation: %w", err)
	}

	if err := s.db.Create(slot).Error; err != nil {
		return fmt.Errorf("failed to create timetable slot: %w", err)
	}
	return nil
}

// DeleteTimetableSlot removes a slot from the timetable.
func (s *AdminService) DeleteTimetableSlot(id uint) error {
	result := s.db.Delete(&model.TimetableSlot{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete timetable slot: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSlotNotFound
	}
	return nil
}

// AddExtraCourse registers a student for an allocation outside their cohort.
// Adding the same allocation twice is a no-op.
func (s *AdminService) AddExtraCourse(studentID, allocationID uint) error {
	var student model.Student
	if err := s.db.First(&student, studentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrStudentNotFound
		}
		return fmt.Errorf("failed to fetch student: %w", err)
	}

	var allocation model.SubjectAllocation
	if err := s.db.First(&allocation, allocationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrAllocationNotFound
		}
		return fmt.Errorf("failed to fetch allocation: %w", err)
	}

	if err := s.db.Model(&student).Association("ExtraCourses").Append(&allocation); err != nil {
		return fmt.Errorf("failed to add extra course: %w", err)
	}
	return nil
}

// RemoveExtraCourse drops a student's extra-course registration.
func (s *AdminService) RemoveExtraCourse(studentID, allocationID uint) error {
	var student model.Student
	if err := s.db.First(&student, studentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrStudentNotFound
		}
		return fmt.Errorf("failed to fetch student: %w", err)
	}

	allocation := model.SubjectAllocation{ID: allocationID}
	if err := s.db.Model(&student).Association("ExtraCourses").Delete(&allocation); err != nil {
		return fmt.Errorf("failed to remove extra course: %w", err)
	}
	return nil
}

// UpdateStudent applies profile updates to a student.
func (s *AdminService) UpdateStudent(id uint, updates map[string]interface{}) (*model.Student, error) {
	var student model.Student
	if err := s.db.First(&student, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to fetch student: %w", err)
	}
	if err := s.db.Model(&student).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update student: %w", err)
	}
	return &student, nil
}

// DeactivateUser disables a login account and bumps its token version so
// every outstanding token dies immediately.
func (s *AdminService) DeactivateUser(userID uint) error {
	result := s.db.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"is_active":     false,
			"token_version": gorm.Expr("token_version + 1"),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
