package services

import "testing"

// Handlers map these sentinels to HTTP statuses with equality switches, so
// every sentinel must stay a distinct value.
func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := map[string]error{
		"student":              ErrStudentNotFound,
		"faculty":              ErrFacultyNotFound,
		"allocation":           ErrAllocationNotFound,
		"subject":              ErrSubjectNotFound,
		"fee":                  ErrFeeNotFound,
		"resource":             ErrResourceNotFound,
		"schedule":             ErrScheduleNotFound,
		"slot":                 ErrSlotNotFound,
		"user":                 ErrUserNotFound,
		"notice":               ErrNoticeNotFound,
		"duplicate allocation": ErrDuplicateAllocation,
		"duplicate email":      ErrDuplicateEmail,
		"duplicate PRN":        ErrDuplicatePRN,
		"invalid window":       ErrInvalidWindow,
		"empty batch":          ErrEmptyBatch,
	}

	seen := make(map[error]string, len(sentinels))
	for name, err := range sentinels {
		if err == nil {
			t.Fatalf("%s sentinel is nil", name)
		}
		if prev, dup := seen[err]; dup {
			t.Errorf("%s and %s share the same error value", name, prev)
		}
		seen[err] = name
	}
}
