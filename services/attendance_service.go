package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/campuskit/portal-api/model"
	"gorm.io/gorm"
)

// DateWindow is an inclusive [Start, End] date range. The zero value means
// "overall": no filtering.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// NewDateWindow builds a window and rejects ranges that end before they
// start. Both bounds must be set; a half-open range is a caller bug.
func NewDateWindow(start, end time.Time) (*DateWindow, error) {
	if end.Before(start) {
		return nil, ErrInvalidWindow
	}
	return &DateWindow{Start: start, End: end}, nil
}

// Contains reports whether d falls inside the window, bounds included.
func (w *DateWindow) Contains(d time.Time) bool {
	if w == nil {
		return true
	}
	return !d.Before(w.Start) && !d.After(w.End)
}

// Label renders the window the way reports display it.
func (w *DateWindow) Label() string {
	if w == nil {
		return "Overall"
	}
	return w.Start.Format("2006-01-02") + " to " + w.End.Format("2006-01-02")
}

// SubjectAttendance is one row of the full-profile rollup: a student's
// accumulated sessions for one subject code, across every allocation that
// carries the code.
type SubjectAttendance struct {
	SubjectName      string  `json:"subjectName"`
	SubjectCode      string  `json:"subjectCode"`
	TotalSessions    int     `json:"totalSessions"`
	AttendedSessions int     `json:"attendedSessions"`
	Percentage       float64 `json:"percentage"`
}

// SessionEntry is one student's status in an attendance submission.
type SessionEntry struct {
	StudentID uint                   `json:"studentId" validate:"required"`
	Status    model.AttendanceStatus `json:"status" validate:"required"`
}

// AttendanceService is the attendance rollup engine. Every computation is a
// read-then-compute pass over point-in-time rows; the only writes are
// session submissions, which are transactional.
type AttendanceService struct {
	db *gorm.DB
}

// NewAttendanceService creates a new attendance service.
func NewAttendanceService(db *gorm.DB) *AttendanceService {
	return &AttendanceService{db: db}
}

// SubmitSession records one held class and all its per-student statuses in a
// single transaction: a session is never visible without its records.
func (s *AttendanceService) SubmitSession(allocationID uint, date time.Time, entries []SessionEntry) error {
	if len(entries) == 0 {
		return ErrEmptyBatch
	}

	var allocation model.SubjectAllocation
	if err := s.db.First(&allocation, allocationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrAllocationNotFound
		}
		return fmt.Errorf("failed to fetch allocation: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		session := model.AttendanceSession{
			AllocationID: allocation.ID,
			Date:         date,
		}
		if err := tx.Create(&session).Error; err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}

		records := make([]model.AttendanceRecord, 0, len(entries))
		for _, e := range entries {
			records = append(records, model.AttendanceRecord{
				SessionID: session.ID,
				StudentID: e.StudentID,
				Status:    e.Status,
			})
		}
		if err := tx.Create(&records).Error; err != nil {
			return fmt.Errorf("failed to create attendance records: %w", err)
		}
		return nil
	})
}

// Roster resolves the students in scope for an allocation: everyone in the
// subject's cohort plus anyone holding the allocation as an extra course.
// Ordered by PRN so reports are stable.
func (s *AttendanceService) Roster(allocationID uint) ([]model.Student, error) {
	var allocation model.SubjectAllocation
	if err := s.db.Preload("Subject").First(&allocation, allocationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAllocationNotFound
		}
		return nil, fmt.Errorf("failed to fetch allocation: %w", err)
	}

	var cohort []model.Student
	if err := s.db.
		Where("academic_year = ?", allocation.Subject.AcademicYear).
		Order("prn ASC").
		Find(&cohort).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cohort: %w", err)
	}

	var extras []model.Student
	if err := s.db.
		Joins("JOIN student_extra_courses sec ON sec.student_id = students.id").
		Where("sec.subject_allocation_id = ?", allocation.ID).
		Order("prn ASC").
		Find(&extras).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch extra-course students: %w", err)
	}

	return mergeRoster(cohort, extras), nil
}

// mergeRoster unions the two lists, deduplicating by student ID and keeping
// a stable PRN order.
func mergeRoster(cohort, extras []model.Student) []model.Student {
	seen := make(map[uint]bool, len(cohort))
	roster := make([]model.Student, 0, len(cohort)+len(extras))
	for _, st := range cohort {
		if !seen[st.ID] {
			seen[st.ID] = true
			roster = append(roster, st)
		}
	}
	for _, st := range extras {
		if !seen[st.ID] {
			seen[st.ID] = true
			roster = append(roster, st)
		}
	}
	sort.SliceStable(roster, func(i, j int) bool { return roster[i].PRN < roster[j].PRN })
	return roster
}

// AllocationReport computes the single-subject rollup: total sessions in the
// window and one stat line per roster student.
func (s *AttendanceService) AllocationReport(allocationID uint, window *DateWindow) (*AttendanceReport, error) {
	var allocation model.SubjectAllocation
	if err := s.db.Preload("Subject").First(&allocation, allocationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAllocationNotFound
		}
		return nil, fmt.Errorf("failed to fetch allocation: %w", err)
	}

	sessions, err := s.sessionsInWindow(allocation.ID, window)
	if err != nil {
		return nil, err
	}

	roster, err := s.Roster(allocationID)
	if err != nil {
		return nil, err
	}

	presence, err := s.presentSets(sessions)
	if err != nil {
		return nil, err
	}

	return buildAllocationReport(
		allocation.Subject.Name,
		string(allocation.Subject.AcademicYear),
		window.Label(),
		sessions,
		roster,
		presence,
	), nil
}

// StudentOverview computes the full-profile rollup for one student: every
// subject of their cohort (zero-filled even when no sessions were held) plus
// their extra courses, merged by subject code with counts summed.
func (s *AttendanceService) StudentOverview(studentID uint) ([]SubjectAttendance, error) {
	var student model.Student
	if err := s.db.Preload("ExtraCourses.Subject").First(&student, studentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to fetch student: %w", err)
	}

	var cohortSubjects []model.Subject
	if err := s.db.Where("academic_year = ?", student.AcademicYear).Find(&cohortSubjects).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cohort subjects: %w", err)
	}

	var cohortAllocations []model.SubjectAllocation
	if err := s.db.
		Joins("JOIN subjects ON subjects.id = subject_allocations.subject_id").
		Where("subjects.academic_year = ? AND subjects.deleted_at IS NULL", student.AcademicYear).
		Preload("Subject").
		Find(&cohortAllocations).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cohort allocations: %w", err)
	}

	allocations := unionAllocations(cohortAllocations, student.ExtraCourses)

	tallies := make([]allocationTally, 0, len(allocations))
	for _, alloc := range allocations {
		total, attended, err := s.allocationCounts(alloc.ID, student.ID)
		if err != nil {
			return nil, err
		}
		tallies = append(tallies, allocationTally{
			SubjectName: alloc.Subject.Name,
			SubjectCode: alloc.Subject.Code,
			Total:       total,
			Attended:    attended,
		})
	}

	return mergeAllocationTallies(cohortSubjects, tallies), nil
}

// allocationCounts returns (sessions held, sessions this student attended)
// for one allocation, using indexed lookups.
func (s *AttendanceService) allocationCounts(allocationID, studentID uint) (int, int, error) {
	var total int64
	if err := s.db.Model(&model.AttendanceSession{}).
		Where("allocation_id = ?", allocationID).
		Count(&total).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	var attended int64
	if err := s.db.Model(&model.AttendanceRecord{}).
		Joins("JOIN attendance_sessions ON attendance_sessions.id = attendance_records.session_id").
		Where("attendance_sessions.allocation_id = ? AND attendance_sessions.deleted_at IS NULL", allocationID).
		Where("attendance_records.student_id = ? AND attendance_records.status = ?", studentID, model.StatusPresent).
		Count(&attended).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count attended sessions: %w", err)
	}

	return int(total), int(attended), nil
}

func (s *AttendanceService) sessionsInWindow(allocationID uint, window *DateWindow) ([]model.AttendanceSession, error) {
	query := s.db.Where("allocation_id = ?", allocationID)
	if window != nil {
		query = query.Where("date BETWEEN ? AND ?", window.Start, window.End)
	}

	var sessions []model.AttendanceSession
	if err := query.Order("date ASC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch sessions: %w", err)
	}
	return sessions, nil
}

// presentSets loads the PRESENT records of the given sessions as a
// sessionID -> set-of-studentIDs lookup.
func (s *AttendanceService) presentSets(sessions []model.AttendanceSession) (map[uint]map[uint]bool, error) {
	presence := make(map[uint]map[uint]bool, len(sessions))
	if len(sessions) == 0 {
		return presence, nil
	}

	sessionIDs := make([]uint, 0, len(sessions))
	for _, sess := range sessions {
		sessionIDs = append(sessionIDs, sess.ID)
	}

	var records []model.AttendanceRecord
	if err := s.db.
		Where("session_id IN ? AND status = ?", sessionIDs, model.StatusPresent).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch attendance records: %w", err)
	}

	for _, r := range records {
		set, ok := presence[r.SessionID]
		if !ok {
			set = make(map[uint]bool)
			presence[r.SessionID] = set
		}
		set[r.StudentID] = true
	}
	return presence, nil
}

// allocationTally is the per-allocation count pair before merging by subject
// code.
type allocationTally struct {
	SubjectName string
	SubjectCode string
	Total       int
	Attended    int
}

// unionAllocations merges cohort allocations with extra courses,
// deduplicating by allocation ID. Two distinct allocations sharing a subject
// code both survive; their counts are summed later.
func unionAllocations(cohort, extras []model.SubjectAllocation) []model.SubjectAllocation {
	seen := make(map[uint]bool, len(cohort))
	out := make([]model.SubjectAllocation, 0, len(cohort)+len(extras))
	for _, a := range cohort {
		if !seen[a.ID] {
			seen[a.ID] = true
			out = append(out, a)
		}
	}
	for _, a := range extras {
		if !seen[a.ID] {
			seen[a.ID] = true
			out = append(out, a)
		}
	}
	return out
}

// mergeAllocationTallies produces the full-profile rollup. Cohort subjects
// pre-fill the result with zero rows so a subject with no sessions still
// appears; tallies then accumulate into their subject code's row. The
// grouping key is the subject CODE, not the allocation: a student holding
// two allocations of the same code accumulates sessions from both. Output is
// sorted by code.
func mergeAllocationTallies(cohortSubjects []model.Subject, tallies []allocationTally) []SubjectAttendance {
	byCode := make(map[string]*SubjectAttendance, len(cohortSubjects))
	order := make([]string, 0, len(cohortSubjects))

	for _, subj := range cohortSubjects {
		if _, ok := byCode[subj.Code]; ok {
			continue
		}
		byCode[subj.Code] = &SubjectAttendance{
			SubjectName: subj.Name,
			SubjectCode: subj.Code,
		}
		order = append(order, subj.Code)
	}

	for _, t := range tallies {
		row, ok := byCode[t.SubjectCode]
		if !ok {
			row = &SubjectAttendance{
				SubjectName: t.SubjectName,
				SubjectCode: t.SubjectCode,
			}
			byCode[t.SubjectCode] = row
			order = append(order, t.SubjectCode)
		}
		row.TotalSessions += t.Total
		row.AttendedSessions += t.Attended
	}

	sort.Strings(order)
	out := make([]SubjectAttendance, 0, len(order))
	for _, code := range order {
		row := byCode[code]
		row.Percentage = percentage(row.AttendedSessions, row.TotalSessions)
		out = append(out, *row)
	}
	return out
}

// percentage computes attended/total as a percent rounded to one decimal.
// Zero sessions is a valid state and yields zero percent.
func percentage(attended, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(attended) / float64(total) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
