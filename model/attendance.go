package model

import (
	"time"

	"gorm.io/gorm"
)

// AttendanceStatus is the per-student status recorded for one session.
// Only PRESENT counts toward attendance percentages; LATE and EXCUSED are
// retained for record keeping but treated as non-present by the rollups.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "PRESENT"
	StatusAbsent  AttendanceStatus = "ABSENT"
	StatusLate    AttendanceStatus = "LATE"
	StatusExcused AttendanceStatus = "EXCUSED"
)

// Valid reports whether s is one of the known statuses.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusExcused:
		return true
	}
	return false
}

// AttendanceSession records that a class was held for an allocation on a
// date. Sessions are created once and never edited.
type AttendanceSession struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	AllocationID uint           `gorm:"not null;index:idx_session_alloc_date" json:"allocation_id"`
	Date         time.Time      `gorm:"not null;index:idx_session_alloc_date;type:date" json:"date"`

	// Relationships
	Allocation SubjectAllocation `gorm:"foreignKey:AllocationID;constraint:OnDelete:CASCADE" json:"allocation,omitempty"`
}

// AttendanceRecord is one (session, student) status pair. At most one record
// exists per pair; a missing record counts as non-present in rollups.
type AttendanceRecord struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`
	SessionID uint             `gorm:"not null;index;uniqueIndex:idx_session_student" json:"session_id"`
	StudentID uint             `gorm:"not null;index;uniqueIndex:idx_session_student" json:"student_id"`
	Status    AttendanceStatus `gorm:"type:varchar(10);not null" json:"status"`

	// Relationships
	Session AttendanceSession `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"-"`
	Student Student           `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
}
