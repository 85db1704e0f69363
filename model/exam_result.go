package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ExamResult is an externally computed term result for a student. SGPA is
// supplied by the university ledger and only averaged here; the portal never
// recomputes it from internal marks.
type ExamResult struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	StudentID   uint           `gorm:"not null;index" json:"student_id"`
	SGPA        float64        `gorm:"not null" json:"sgpa"`
	Status      string         `gorm:"type:varchar(20)" json:"status"` // PASS, FAIL
	ResultDate  *time.Time     `gorm:"type:date" json:"result_date"`
	ExamSession string         `gorm:"type:varchar(50)" json:"exam_session"` // e.g. "WINTER-2025"
	SourceRow   datatypes.JSON `json:"source_row,omitempty"`                 // raw ledger row this result was parsed from

	// Relationships
	Student Student `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
}
