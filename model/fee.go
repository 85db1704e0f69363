package model

import (
	"time"

	"gorm.io/gorm"
)

// Fee status values derived from paid vs total.
const (
	FeePaid    = "PAID"
	FeePending = "PENDING"
)

// FeeRecord is the running fee ledger for one student.
type FeeRecord struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	StudentID       uint           `gorm:"uniqueIndex;not null" json:"student_id"`
	TotalFee        float64        `gorm:"not null" json:"total_fee"`
	PaidAmount      float64        `gorm:"not null;default:0" json:"paid_amount"`
	LastPaymentDate *time.Time     `json:"last_payment_date"`

	// Relationships
	Student Student `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
}

// Balance is the outstanding amount.
func (f *FeeRecord) Balance() float64 {
	return f.TotalFee - f.PaidAmount
}

// StatusLabel derives the fee status from amounts; it is never stored.
func (f *FeeRecord) StatusLabel() string {
	if f.PaidAmount >= f.TotalFee {
		return FeePaid
	}
	return FeePending
}
