package services

import (
	"testing"
	"time"

	"github.com/campuskit/portal-api/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewDateWindowRejectsInvertedRange(t *testing.T) {
	_, err := NewDateWindow(date(2026, 3, 10), date(2026, 3, 1))
	if err != ErrInvalidWindow {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}
}

func TestDateWindowContainsIsInclusive(t *testing.T) {
	w, err := NewDateWindow(date(2026, 3, 1), date(2026, 3, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		day  time.Time
		want bool
	}{
		{date(2026, 2, 28), false},
		{date(2026, 3, 1), true},
		{date(2026, 3, 5), true},
		{date(2026, 3, 10), true},
		{date(2026, 3, 11), false},
	}
	for _, c := range cases {
		if got := w.Contains(c.day); got != c.want {
			t.Errorf("Contains(%s) = %v, want %v", c.day.Format("2006-01-02"), got, c.want)
		}
	}

	var nilWindow *DateWindow
	if !nilWindow.Contains(date(2026, 1, 1)) {
		t.Error("nil window should contain every date")
	}
}

func TestDateWindowLabel(t *testing.T) {
	w, _ := NewDateWindow(date(2026, 3, 1), date(2026, 3, 10))
	if got := w.Label(); got != "2026-03-01 to 2026-03-10" {
		t.Errorf("Label() = %q", got)
	}

	var nilWindow *DateWindow
	if got := nilWindow.Label(); got != "Overall" {
		t.Errorf("nil Label() = %q, want Overall", got)
	}
}

func TestPercentage(t *testing.T) {
	cases := []struct {
		attended, total int
		want            float64
	}{
		{0, 0, 0},       // no sessions held is a valid state, not an error
		{0, 10, 0},
		{7, 10, 70},
		{1, 3, 33.3},    // rounds to one decimal
		{2, 3, 66.7},
		{10, 10, 100},
	}
	for _, c := range cases {
		if got := percentage(c.attended, c.total); got != c.want {
			t.Errorf("percentage(%d, %d) = %v, want %v", c.attended, c.total, got, c.want)
		}
	}
}

func TestRoundHelpers(t *testing.T) {
	if got := round1(66.66666); got != 66.7 {
		t.Errorf("round1 = %v", got)
	}
	if got := round2(8.666666); got != 8.67 {
		t.Errorf("round2 = %v", got)
	}
}

func TestMergeRosterDeduplicatesAndOrdersByPRN(t *testing.T) {
	cohort := []model.Student{
		{ID: 2, PRN: "ARC2024002"},
		{ID: 1, PRN: "ARC2024001"},
	}
	extras := []model.Student{
		{ID: 2, PRN: "ARC2024002"}, // already in cohort
		{ID: 9, PRN: "ARC2023009"}, // senior taking this as an extra course
	}

	roster := mergeRoster(cohort, extras)
	if len(roster) != 3 {
		t.Fatalf("expected 3 students, got %d", len(roster))
	}
	want := []string{"ARC2023009", "ARC2024001", "ARC2024002"}
	for i, prn := range want {
		if roster[i].PRN != prn {
			t.Errorf("roster[%d].PRN = %s, want %s", i, roster[i].PRN, prn)
		}
	}
}

func TestUnionAllocationsKeepsDistinctAllocationsSharingACode(t *testing.T) {
	subj := model.Subject{ID: 1, Code: "ARC-101"}
	cohort := []model.SubjectAllocation{
		{ID: 10, SubjectID: 1, Subject: subj},
	}
	extras := []model.SubjectAllocation{
		{ID: 10, SubjectID: 1, Subject: subj}, // duplicate allocation
		{ID: 11, SubjectID: 1, Subject: subj}, // same subject, different faculty
	}

	got := unionAllocations(cohort, extras)
	if len(got) != 2 {
		t.Fatalf("expected 2 allocations, got %d", len(got))
	}
	if got[0].ID != 10 || got[1].ID != 11 {
		t.Errorf("unexpected allocation order: %d, %d", got[0].ID, got[1].ID)
	}
}

func TestMergeAllocationTalliesSumsByCode(t *testing.T) {
	cohortSubjects := []model.Subject{
		{Name: "History of Architecture", Code: "ARC-101"},
		{Name: "Design Basics", Code: "ARC-102"},
	}
	// Two allocations carry ARC-101 (cohort class plus an extra course under
	// another faculty): the student accumulates both.
	tallies := []allocationTally{
		{SubjectName: "History of Architecture", SubjectCode: "ARC-101", Total: 5, Attended: 4},
		{SubjectName: "History of Architecture", SubjectCode: "ARC-101", Total: 3, Attended: 1},
		{SubjectName: "Urban Planning", SubjectCode: "ARC-301", Total: 6, Attended: 6}, // extra course
	}

	got := mergeAllocationTallies(cohortSubjects, tallies)
	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}

	// Sorted by code.
	if got[0].SubjectCode != "ARC-101" || got[1].SubjectCode != "ARC-102" || got[2].SubjectCode != "ARC-301" {
		t.Fatalf("unexpected order: %s, %s, %s", got[0].SubjectCode, got[1].SubjectCode, got[2].SubjectCode)
	}

	if got[0].TotalSessions != 8 || got[0].AttendedSessions != 5 {
		t.Errorf("ARC-101 counts = %d/%d, want 5/8", got[0].AttendedSessions, got[0].TotalSessions)
	}
	if got[0].Percentage != 62.5 {
		t.Errorf("ARC-101 percentage = %v, want 62.5", got[0].Percentage)
	}

	// Cohort subject with no sessions still appears, zero-filled.
	if got[1].TotalSessions != 0 || got[1].AttendedSessions != 0 || got[1].Percentage != 0 {
		t.Errorf("ARC-102 should be zero-filled, got %+v", got[1])
	}

	if got[2].TotalSessions != 6 || got[2].Percentage != 100 {
		t.Errorf("ARC-301 = %+v", got[2])
	}
}

func TestMergeAllocationTalliesEmptyInputs(t *testing.T) {
	if got := mergeAllocationTallies(nil, nil); len(got) != 0 {
		t.Errorf("expected empty rollup, got %d rows", len(got))
	}
}
