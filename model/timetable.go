package model

import (
	"time"

	"gorm.io/gorm"
)

// TimetableSlot is one recurring weekly class slot for an allocation.
type TimetableSlot struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	AllocationID uint           `gorm:"not null;index" json:"allocation_id"`
	DayOfWeek    string         `gorm:"type:varchar(10);not null" json:"day_of_week"` // MONDAY, TUESDAY, ...
	StartTime    string         `gorm:"type:varchar(5);not null" json:"start_time"`   // "09:00"
	EndTime      string         `gorm:"type:varchar(5);not null" json:"end_time"`     // "10:00"
	RoomNumber   string         `gorm:"type:varchar(20)" json:"room_number"`

	// Relationships
	Allocation SubjectAllocation `gorm:"foreignKey:AllocationID;constraint:OnDelete:CASCADE" json:"allocation,omitempty"`
}
