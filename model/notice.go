package model

import (
	"time"

	"gorm.io/gorm"
)

// TargetRole scopes who sees a notice.
type TargetRole string

const (
	TargetAll      TargetRole = "ALL"
	TargetStudents TargetRole = "STUDENTS"
	TargetFaculty  TargetRole = "FACULTY"
)

// Valid reports whether t is a known target role.
func (t TargetRole) Valid() bool {
	switch t {
	case TargetAll, TargetStudents, TargetFaculty:
		return true
	}
	return false
}

// Notice is a board announcement targeted at a role group. Content is
// sanitized to plain text before storage.
type Notice struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	Title      string         `gorm:"not null" json:"title"`
	Content    string         `gorm:"type:text" json:"content"`
	TargetRole TargetRole     `gorm:"type:varchar(20);not null;index" json:"target_role"`
	PostedByID uint           `gorm:"index" json:"posted_by_id"`
	PostedAt   time.Time      `gorm:"not null;index" json:"posted_at"`

	// Relationships
	PostedBy User `gorm:"foreignKey:PostedByID" json:"-"`
}
