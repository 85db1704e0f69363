package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/campuskit/portal-api/model"
)

// StudentStat is one student's line in a single-subject report.
type StudentStat struct {
	StudentName      string  `json:"studentName"`
	PRN              string  `json:"prn"`
	SessionsAttended int     `json:"sessionsAttended"`
	Percentage       float64 `json:"percentage"`
}

// AttendanceReport is the single-subject rollup for one allocation over a
// date window (or overall).
type AttendanceReport struct {
	SubjectName       string        `json:"subjectName"`
	ClassName         string        `json:"className"`
	TotalSessionsHeld int           `json:"totalSessionsHeld"`
	Range             string        `json:"range"`
	StudentStats      []StudentStat `json:"studentStats"`
}

// buildAllocationReport assembles a report from already-loaded rows. Every
// roster student gets a line, including students with zero attendance;
// presence maps each session to the set of student IDs marked PRESENT in it.
func buildAllocationReport(subjectName, className, rangeLabel string, sessions []model.AttendanceSession, roster []model.Student, presence map[uint]map[uint]bool) *AttendanceReport {
	stats := make([]StudentStat, 0, len(roster))
	for _, st := range roster {
		attended := 0
		for _, sess := range sessions {
			if presence[sess.ID][st.ID] {
				attended++
			}
		}
		stats = append(stats, StudentStat{
			StudentName:      st.FullName(),
			PRN:              st.PRN,
			SessionsAttended: attended,
			Percentage:       percentage(attended, len(sessions)),
		})
	}

	return &AttendanceReport{
		SubjectName:       subjectName,
		ClassName:         className,
		TotalSessionsHeld: len(sessions),
		Range:             rangeLabel,
		StudentStats:      stats,
	}
}

// WriteCSV renders the report in its downloadable form: a small header block
// followed by one line per student, percentage formatted to one decimal with
// a trailing percent sign.
func (r *AttendanceReport) WriteCSV(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Subject,%s\n", r.SubjectName)
	fmt.Fprintf(&b, "Class,%s\n", r.ClassName)
	fmt.Fprintf(&b, "Range,%s\n", r.Range)
	fmt.Fprintf(&b, "Total Sessions,%d\n", r.TotalSessionsHeld)
	b.WriteString("\n")
	b.WriteString("PRN,Student Name,Attended,Total,Percentage\n")
	for _, st := range r.StudentStats {
		fmt.Fprintf(&b, "%s,%s,%d,%d,%.1f%%\n", st.PRN, st.StudentName, st.SessionsAttended, r.TotalSessionsHeld, st.Percentage)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// CSVFileName is the attachment name for a report download.
func CSVFileName(allocationID uint) string {
	return fmt.Sprintf("Attendance_Report_%d.csv", allocationID)
}
