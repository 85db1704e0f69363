package services

import (
	"strings"
	"testing"

	"github.com/campuskit/portal-api/model"
)

func sampleReport() *AttendanceReport {
	sessions := []model.AttendanceSession{
		{ID: 1}, {ID: 2}, {ID: 3},
	}
	roster := []model.Student{
		{ID: 11, PRN: "ARC2024001", FirstName: "Rohan", LastName: "Deshmukh"},
		{ID: 12, PRN: "ARC2024002", FirstName: "Sneha", LastName: "Patil"},
		{ID: 13, PRN: "ARC2024003", FirstName: "Amit", LastName: "Kale"},
	}
	presence := map[uint]map[uint]bool{
		1: {11: true, 12: true},
		2: {11: true},
		3: {11: true, 12: true},
	}
	return buildAllocationReport("History of Architecture", "FIRST_YEAR", "Overall", sessions, roster, presence)
}

func TestBuildAllocationReport(t *testing.T) {
	report := sampleReport()

	if report.TotalSessionsHeld != 3 {
		t.Fatalf("TotalSessionsHeld = %d, want 3", report.TotalSessionsHeld)
	}
	if len(report.StudentStats) != 3 {
		t.Fatalf("expected 3 stat rows, got %d", len(report.StudentStats))
	}

	cases := []struct {
		prn      string
		attended int
		pct      float64
	}{
		{"ARC2024001", 3, 100},
		{"ARC2024002", 2, 66.7},
		{"ARC2024003", 0, 0}, // zero attendance still gets a row
	}
	for i, c := range cases {
		got := report.StudentStats[i]
		if got.PRN != c.prn || got.SessionsAttended != c.attended || got.Percentage != c.pct {
			t.Errorf("row %d = %+v, want %+v", i, got, c)
		}
	}
}

func TestBuildAllocationReportNoSessions(t *testing.T) {
	roster := []model.Student{{ID: 11, PRN: "ARC2024001", FirstName: "Rohan", LastName: "Deshmukh"}}
	report := buildAllocationReport("Design Basics", "FIRST_YEAR", "Overall", nil, roster, nil)

	if report.TotalSessionsHeld != 0 {
		t.Fatalf("TotalSessionsHeld = %d, want 0", report.TotalSessionsHeld)
	}
	if report.StudentStats[0].Percentage != 0 {
		t.Errorf("percentage with zero sessions = %v, want 0", report.StudentStats[0].Percentage)
	}
}

func TestWriteCSVLayout(t *testing.T) {
	report := sampleReport()

	var b strings.Builder
	if err := report.WriteCSV(&b); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	want := strings.Join([]string{
		"Subject,History of Architecture",
		"Class,FIRST_YEAR",
		"Range,Overall",
		"Total Sessions,3",
		"",
		"PRN,Student Name,Attended,Total,Percentage",
		"ARC2024001,Rohan Deshmukh,3,3,100.0%",
		"ARC2024002,Sneha Patil,2,3,66.7%",
		"ARC2024003,Amit Kale,0,3,0.0%",
		"",
	}, "\n")

	if got := b.String(); got != want {
		t.Errorf("CSV mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteCSVStudentRowFormat(t *testing.T) {
	report := &AttendanceReport{
		SubjectName:       "History of Architecture",
		ClassName:         "FIRST_YEAR",
		Range:             "Overall",
		TotalSessionsHeld: 10,
		StudentStats: []StudentStat{
			{StudentName: "Jane Doe", PRN: "ARC2024007", SessionsAttended: 7, Percentage: 70},
		},
	}

	var b strings.Builder
	if err := report.WriteCSV(&b); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if !strings.Contains(b.String(), "ARC2024007,Jane Doe,7,10,70.0%\n") {
		t.Errorf("student row not rendered as expected:\n%s", b.String())
	}
}

func TestCSVFileName(t *testing.T) {
	if got := CSVFileName(42); got != "Attendance_Report_42.csv" {
		t.Errorf("CSVFileName(42) = %q", got)
	}
}
