package services

import "errors"

// Sentinel errors surfaced by the service layer. Handlers map these to HTTP
// status codes; anything else is an internal failure and is never echoed to
// the client.
var (
	ErrStudentNotFound    = errors.New("student not found")
	ErrFacultyNotFound    = errors.New("faculty not found")
	ErrAllocationNotFound = errors.New("allocation not found")
	ErrSubjectNotFound    = errors.New("subject not found")
	ErrFeeNotFound        = errors.New("fee record not initialized for student")
	ErrResourceNotFound   = errors.New("resource not found")
	ErrScheduleNotFound   = errors.New("exam schedule not found")
	ErrSlotNotFound       = errors.New("timetable slot not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrNoticeNotFound     = errors.New("notice not found")

	ErrDuplicateAllocation = errors.New("subject already assigned to this faculty")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrDuplicatePRN        = errors.New("PRN already registered")

	ErrInvalidWindow = errors.New("end date is before start date")
	ErrEmptyBatch    = errors.New("batch contains no entries")
)
