package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/campuskit/portal-api/model"
	"gorm.io/gorm"
)

// FeeStatus is a fee record projected with its derived fields.
type FeeStatus struct {
	StudentID       uint       `json:"studentId"`
	StudentName     string     `json:"studentName"`
	PRN             string     `json:"prn"`
	TotalFee        float64    `json:"totalFee"`
	PaidAmount      float64    `json:"paidAmount"`
	Balance         float64    `json:"balance"`
	Status          string     `json:"status"`
	LastPaymentDate *time.Time `json:"lastPaymentDate"`
}

// FeeService maintains the per-student fee ledger.
type FeeService struct {
	db *gorm.DB
}

// NewFeeService creates a new fee service.
func NewFeeService(db *gorm.DB) *FeeService {
	return &FeeService{db: db}
}

// RecordPayment adds a payment to a student's ledger and stamps the payment
// date. Overpayment is allowed; the status simply reads PAID.
func (s *FeeService) RecordPayment(studentID uint, amount float64) (*model.FeeRecord, error) {
	if amount <= 0 {
		return nil, errors.New("payment amount must be positive")
	}

	var fee model.FeeRecord
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", studentID).First(&fee).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrFeeNotFound
			}
			return fmt.Errorf("failed to fetch fee record: %w", err)
		}

		now := time.Now()
		fee.PaidAmount += amount
		fee.LastPaymentDate = &now
		if err := tx.Save(&fee).Error; err != nil {
			return fmt.Errorf("failed to record payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &fee, nil
}

// SetTotalFee adjusts a student's total liability.
func (s *FeeService) SetTotalFee(studentID uint, total float64) (*model.FeeRecord, error) {
	if total < 0 {
		return nil, errors.New("total fee cannot be negative")
	}

	var fee model.FeeRecord
	if err := s.db.Where("student_id = ?", studentID).First(&fee).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrFeeNotFound
		}
		return nil, fmt.Errorf("failed to fetch fee record: %w", err)
	}

	fee.TotalFee = total
	if err := s.db.Save(&fee).Error; err != nil {
		return nil, fmt.Errorf("failed to update total fee: %w", err)
	}
	return &fee, nil
}

// Status returns one student's fee position.
func (s *FeeService) Status(studentID uint) (*FeeStatus, error) {
	var fee model.FeeRecord
	if err := s.db.Preload("Student").Where("student_id = ?", studentID).First(&fee).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrFeeNotFound
		}
		return nil, fmt.Errorf("failed to fetch fee record: %w", err)
	}
	status := projectFeeStatus(&fee)
	return &status, nil
}

// ListPending returns every student whose ledger still has a balance.
func (s *FeeService) ListPending() ([]FeeStatus, error) {
	var fees []model.FeeRecord
	if err := s.db.
		Preload("Student").
		Where("paid_amount < total_fee").
		Order("student_id ASC").
		Find(&fees).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending fees: %w", err)
	}

	out := make([]FeeStatus, 0, len(fees))
	for i := range fees {
		out = append(out, projectFeeStatus(&fees[i]))
	}
	return out, nil
}

func projectFeeStatus(fee *model.FeeRecord) FeeStatus {
	return FeeStatus{
		StudentID:       fee.StudentID,
		StudentName:     fee.Student.FullName(),
		PRN:             fee.Student.PRN,
		TotalFee:        fee.TotalFee,
		PaidAmount:      fee.PaidAmount,
		Balance:         fee.Balance(),
		Status:          fee.StatusLabel(),
		LastPaymentDate: fee.LastPaymentDate,
	}
}
