package cron

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/campuskit/portal-api/model"
	"github.com/campuskit/portal-api/services"
)

// attendanceThreshold is the overall-attendance percentage below which a
// student shows up in the defaulter digest.
const attendanceThreshold = 75.0

// CleanupOldData purges expired blacklist entries and stale job logs.
// Runs daily at 2 AM.
func (m *CronManager) CleanupOldData() {
	jobName := "cleanup_old_data"

	totalCleaned := 0

	// Blacklist rows are only needed until the token would have expired
	// anyway; keep a 30-day tail for audits.
	cutoffTokens := time.Now().Add(-30 * 24 * time.Hour)
	result := m.db.Where("expires_at < ?", cutoffTokens).Delete(&model.JWTTokenBlacklist{})
	if result.Error != nil {
		log.Printf("[CRON] Failed to clean token blacklist: %v", result.Error)
	} else {
		log.Printf("[CRON] Cleaned %d expired tokens", result.RowsAffected)
		totalCleaned += int(result.RowsAffected)
	}

	// Keep 90 days of job history.
	cutoffLogs := time.Now().Add(-90 * 24 * time.Hour)
	result = m.db.Where("created_at < ?", cutoffLogs).Delete(&model.CronJobLog{})
	if result.Error != nil {
		log.Printf("[CRON] Failed to clean cron logs: %v", result.Error)
	} else {
		log.Printf("[CRON] Cleaned %d old cron logs", result.RowsAffected)
		totalCleaned += int(result.RowsAffected)
	}

	m.logJobComplete(jobName, fmt.Sprintf("Cleaned up %d total records", totalCleaned))
}

// AttendanceDefaulterDigest recomputes every student's overall attendance
// and posts a faculty-facing notice naming those under the threshold.
// Runs daily at 7 AM.
func (m *CronManager) AttendanceDefaulterDigest() {
	jobName := "attendance_defaulter_digest"

	var students []model.Student
	if err := m.db.Find(&students).Error; err != nil {
		m.logJobError(jobName, fmt.Errorf("failed to list students: %w", err))
		return
	}
	if len(students) == 0 {
		m.logJobComplete(jobName, "No students enrolled")
		return
	}

	attendance := services.NewAttendanceService(m.db)

	var defaulters []string
	checked := 0
	for _, st := range students {
		overview, err := attendance.StudentOverview(st.ID)
		if err != nil {
			log.Printf("[CRON] Failed to compute attendance for student %d: %v", st.ID, err)
			continue
		}
		checked++

		overall, held := heldAttendance(overview)
		if !held {
			continue
		}
		if overall < attendanceThreshold {
			defaulters = append(defaulters, fmt.Sprintf("%s (%s): %.1f%%", st.FullName(), st.PRN, overall))
		}
	}

	if len(defaulters) > 0 {
		m.postDigestNotice(
			"Attendance Defaulter Digest",
			fmt.Sprintf("Students below %.0f%% overall attendance:\n%s", attendanceThreshold, strings.Join(defaulters, "\n")),
			model.TargetFaculty,
		)
	}

	m.logJobComplete(jobName, fmt.Sprintf("Checked %d students, %d below threshold", checked, len(defaulters)))
}

// heldAttendance averages the per-subject percentages over subjects with at
// least one held session. Unlike the profile's overall figure, zero-session
// subjects are left out: counting them would put whole cohorts under the
// threshold before their classes have met. held is false when nothing has
// been held yet, and such students are skipped rather than flagged.
func heldAttendance(overview []services.SubjectAttendance) (overall float64, held bool) {
	tracked := 0
	var sum float64
	for _, subj := range overview {
		if subj.TotalSessions == 0 {
			continue
		}
		tracked++
		sum += subj.Percentage
	}
	if tracked == 0 {
		return 0, false
	}
	return sum / float64(tracked), true
}

// FeeReminderDigest posts a student-facing reminder when outstanding fee
// balances exist. Runs Monday mornings.
func (m *CronManager) FeeReminderDigest() {
	jobName := "fee_reminder_digest"

	var pending int64
	if err := m.db.Model(&model.FeeRecord{}).
		Where("paid_amount < total_fee").
		Count(&pending).Error; err != nil {
		m.logJobError(jobName, fmt.Errorf("failed to count pending fees: %w", err))
		return
	}

	if pending > 0 {
		m.postDigestNotice(
			"Fee Payment Reminder",
			"Fee payments are pending for some accounts. Please check your fee status and clear any outstanding balance at the accounts office.",
			model.TargetStudents,
		)
	}

	m.logJobComplete(jobName, fmt.Sprintf("%d accounts with pending fees", pending))
}

// postDigestNotice publishes a system notice attributed to the first admin
// account. No admin means no notice; the digest still logs.
func (m *CronManager) postDigestNotice(title, content string, target model.TargetRole) {
	var admin model.User
	if err := m.db.Where("role = ?", model.RoleAdmin).Order("id ASC").First(&admin).Error; err != nil {
		log.Printf("[CRON] No admin account to attribute digest notice: %v", err)
		return
	}

	notice := model.Notice{
		Title:      title,
		Content:    content,
		TargetRole: target,
		PostedByID: admin.ID,
		PostedAt:   time.Now(),
	}
	if err := m.db.Create(&notice).Error; err != nil {
		log.Printf("[CRON] Failed to post digest notice: %v", err)
	}
}
