package model

import (
	"time"

	"gorm.io/gorm"
)

// AcademicYear is the cohort a student belongs to. Sessions and assessments
// attach to cohorts through subject allocations.
type AcademicYear string

const (
	FirstYear  AcademicYear = "FIRST_YEAR"
	SecondYear AcademicYear = "SECOND_YEAR"
	ThirdYear  AcademicYear = "THIRD_YEAR"
	FourthYear AcademicYear = "FOURTH_YEAR"
	FifthYear  AcademicYear = "FIFTH_YEAR"
)

// AcademicYears lists all cohorts in order.
var AcademicYears = []AcademicYear{FirstYear, SecondYear, ThirdYear, FourthYear, FifthYear}

// Student is the profile attached to a student user. ID equals the owning
// user's ID. A student belongs to exactly one cohort at a time; extra-course
// allocations are additive on top of cohort membership.
type Student struct {
	ID           uint           `gorm:"primaryKey" json:"id"` // same as user ID
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	PRN          string         `gorm:"uniqueIndex;not null;type:varchar(30)" json:"prn"`
	FirstName    string         `gorm:"not null" json:"first_name"`
	MiddleName   string         `json:"middle_name"`
	LastName     string         `gorm:"not null" json:"last_name"`
	DOB          *time.Time     `json:"dob"`
	PhoneNumber  string         `gorm:"type:varchar(20)" json:"phone_number"`
	Address      string         `gorm:"type:text" json:"address"`
	Department   string         `gorm:"type:varchar(100)" json:"department"`
	AcademicYear AcademicYear   `gorm:"type:varchar(20);not null;index" json:"academic_year"`

	// Relationships
	User         User                `gorm:"foreignKey:ID;constraint:OnDelete:CASCADE" json:"-"`
	ExtraCourses []SubjectAllocation `gorm:"many2many:student_extra_courses;" json:"extra_courses,omitempty"`
}

// FullName joins first and last name the way reports display it.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
