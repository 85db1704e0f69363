package model

import (
	"time"

	"gorm.io/gorm"
)

// AcademicResource is a document (typically a PDF) a faculty member shares
// with the cohort of one allocation. The file itself lives in object storage
// under ObjectKey; only metadata is kept here.
type AcademicResource struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	AllocationID uint           `gorm:"not null;index" json:"allocation_id"`
	Title        string         `gorm:"not null" json:"title"`
	FileName     string         `gorm:"not null" json:"file_name"`
	ObjectKey    string         `gorm:"not null;type:varchar(255)" json:"-"`
	ContentType  string         `gorm:"type:varchar(100)" json:"content_type"`
	UploadDate   time.Time      `gorm:"not null" json:"upload_date"`

	// Relationships
	Allocation SubjectAllocation `gorm:"foreignKey:AllocationID;constraint:OnDelete:CASCADE" json:"-"`
}

// ExamSchedule stores the uploaded exam timetable file for one cohort.
// At most one active schedule per cohort; re-uploading replaces it.
type ExamSchedule struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	AcademicYear AcademicYear   `gorm:"type:varchar(20);uniqueIndex;not null" json:"academic_year"`
	FileName     string         `gorm:"not null" json:"file_name"`
	ObjectKey    string         `gorm:"not null;type:varchar(255)" json:"-"`
	ContentType  string         `gorm:"type:varchar(100)" json:"content_type"`
	UploadDate   time.Time      `gorm:"not null" json:"upload_date"`
}
