package model

import (
	"time"

	"gorm.io/gorm"
)

// Subject is an individual academic subject tied to one cohort.
type Subject struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Code         string         `gorm:"uniqueIndex;not null;type:varchar(30)" json:"code"` // e.g., "ARC-101"
	Department   string         `gorm:"type:varchar(100)" json:"department"`
	AcademicYear AcademicYear   `gorm:"type:varchar(20);not null;index" json:"academic_year"`
	Semester     int            `gorm:"default:1" json:"semester"`
}

// SubjectAllocation binds a subject to the faculty teaching it. It is the
// unit against which attendance sessions and assessments are recorded.
// The (faculty, subject) pair is unique: allocating the same subject to the
// same faculty twice is rejected at the database level.
type SubjectAllocation struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	FacultyID uint           `gorm:"not null;index;uniqueIndex:idx_faculty_subject" json:"faculty_id"`
	SubjectID uint           `gorm:"not null;index;uniqueIndex:idx_faculty_subject" json:"subject_id"`

	// Relationships
	Faculty Faculty `gorm:"foreignKey:FacultyID;constraint:OnDelete:CASCADE" json:"faculty,omitempty"`
	Subject Subject `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"subject,omitempty"`
}
