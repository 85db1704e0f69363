package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// ExamType classifies a graded component. Unit tests carry an ordinal so the
// grading formula can pick the best two.
type ExamType string

const (
	ExamUnitTest1 ExamType = "UNIT_TEST_1"
	ExamUnitTest2 ExamType = "UNIT_TEST_2"
	ExamUnitTest3 ExamType = "UNIT_TEST_3"
	ExamAssign    ExamType = "ASSIGNMENT"
	ExamTheoryESE ExamType = "THEORY_ESE"
)

// IsUnitTest reports whether t is one of the unit-test ordinals.
func (t ExamType) IsUnitTest() bool {
	return strings.HasPrefix(string(t), "UNIT_TEST")
}

// Valid reports whether t is a known exam type.
func (t ExamType) Valid() bool {
	switch t {
	case ExamUnitTest1, ExamUnitTest2, ExamUnitTest3, ExamAssign, ExamTheoryESE:
		return true
	}
	return false
}

// Assessment is a graded activity a faculty member runs for an allocation,
// e.g. "Unit Test 1". Marks for individual students hang off it as
// StudentMark rows.
type Assessment struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	AllocationID uint           `gorm:"not null;index" json:"allocation_id"`
	Title        string         `gorm:"not null" json:"title"`
	Type         ExamType       `gorm:"type:varchar(20);not null" json:"type"`
	MaxMarks     int            `gorm:"not null" json:"max_marks"`
	Date         time.Time      `gorm:"type:date" json:"date"`

	// Relationships
	Allocation SubjectAllocation `gorm:"foreignKey:AllocationID;constraint:OnDelete:CASCADE" json:"allocation,omitempty"`
	Marks      []StudentMark     `gorm:"foreignKey:AssessmentID;constraint:OnDelete:CASCADE" json:"marks,omitempty"`
}

// StudentMark is one student's score on one assessment.
type StudentMark struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	AssessmentID uint           `gorm:"not null;index" json:"assessment_id"`
	StudentID    uint           `gorm:"not null;index" json:"student_id"`
	Marks        float64        `gorm:"not null" json:"marks_obtained"`

	// Relationships
	Assessment Assessment `gorm:"foreignKey:AssessmentID;constraint:OnDelete:CASCADE" json:"assessment,omitempty"`
	Student    Student    `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
}

// AcademicMark is the grading engine's input: one graded component for one
// student in one subject. Marks obtained exceeding max marks is a caller
// mistake, not enforced here.
type AcademicMark struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	StudentID uint           `gorm:"not null;index:idx_mark_student_subject" json:"student_id"`
	SubjectID uint           `gorm:"not null;index:idx_mark_student_subject" json:"subject_id"`
	ExamType  ExamType       `gorm:"type:varchar(20);not null" json:"exam_type"`
	Marks     float64        `gorm:"not null" json:"marks_obtained"`
	MaxMarks  float64        `gorm:"not null" json:"max_marks"`

	// Relationships
	Student Student `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	Subject Subject `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"subject,omitempty"`
}
