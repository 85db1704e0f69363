package model

import (
	"time"

	"gorm.io/gorm"
)

// Faculty is the profile attached to a faculty user. ID equals the owning
// user's ID.
type Faculty struct {
	ID            uint           `gorm:"primaryKey" json:"id"` // same as user ID
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	FirstName     string         `gorm:"not null" json:"first_name"`
	LastName      string         `gorm:"not null" json:"last_name"`
	Designation   string         `gorm:"type:varchar(100)" json:"designation"`
	Department    string         `gorm:"type:varchar(100)" json:"department"`
	Qualification string         `gorm:"type:varchar(100)" json:"qualification"`
	PhoneNumber   string         `gorm:"type:varchar(20)" json:"phone_number"`
	JoiningDate   *time.Time     `json:"joining_date"`

	// Relationships
	User        User                `gorm:"foreignKey:ID;constraint:OnDelete:CASCADE" json:"-"`
	Allocations []SubjectAllocation `gorm:"foreignKey:FacultyID;constraint:OnDelete:CASCADE" json:"-"`
}

// FullName joins first and last name for listings.
func (f *Faculty) FullName() string {
	return f.FirstName + " " + f.LastName
}
