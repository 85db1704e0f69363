package services

import (
	"fmt"
	"sort"

	"github.com/campuskit/portal-api/model"
	"gorm.io/gorm"
)

// SubjectScore is one report-card row: the composed internal and external
// marks for one subject.
type SubjectScore struct {
	SubjectName   string  `json:"subjectName"`
	SubjectCode   string  `json:"subjectCode"`
	InternalMarks float64 `json:"internalMarks"`
	ExternalMarks float64 `json:"externalMarks"`
	Total         float64 `json:"total"`
}

// MarkEntry is one component score in a batch import.
type MarkEntry struct {
	StudentID uint           `json:"studentId" validate:"required"`
	SubjectID uint           `json:"subjectId" validate:"required"`
	ExamType  model.ExamType `json:"examType" validate:"required"`
	Marks     float64        `json:"marks" validate:"gte=0"`
	MaxMarks  float64        `json:"maxMarks" validate:"gt=0"`
}

// GradingService composes report cards from raw component marks and averages
// externally supplied term results into a CGPA.
type GradingService struct {
	db *gorm.DB
}

// NewGradingService creates a new grading service.
func NewGradingService(db *gorm.DB) *GradingService {
	return &GradingService{db: db}
}

// ReportCard composes one score row per subject the student holds marks in.
// Rows come back ordered by subject code.
func (s *GradingService) ReportCard(studentID uint) ([]SubjectScore, error) {
	var student model.Student
	if err := s.db.First(&student, studentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to fetch student: %w", err)
	}

	var marks []model.AcademicMark
	if err := s.db.
		Preload("Subject").
		Where("student_id = ?", studentID).
		Order("id ASC").
		Find(&marks).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch marks: %w", err)
	}

	return composeReportCard(marks), nil
}

// composeReportCard groups marks by subject and folds each group into a
// SubjectScore. Input order is preserved within a group so the first-entered
// end-semester mark wins.
func composeReportCard(marks []model.AcademicMark) []SubjectScore {
	groups := make(map[uint][]model.AcademicMark)
	subjects := make(map[uint]model.Subject)
	order := make([]uint, 0)

	for _, m := range marks {
		if _, ok := groups[m.SubjectID]; !ok {
			order = append(order, m.SubjectID)
			subjects[m.SubjectID] = m.Subject
		}
		groups[m.SubjectID] = append(groups[m.SubjectID], m)
	}

	scores := make([]SubjectScore, 0, len(order))
	for _, subjectID := range order {
		subj := subjects[subjectID]
		scores = append(scores, composeSubjectScore(subj.Name, subj.Code, groups[subjectID]))
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].SubjectCode < scores[j].SubjectCode })
	return scores
}

// composeSubjectScore folds one subject's component marks into a score row:
//   - unit tests contribute the average of the best two attempts (a single
//     attempt counts as-is, none counts as zero)
//   - assignments contribute their sum
//   - the external mark is the first end-semester entry; later duplicates
//     are ignored
func composeSubjectScore(subjectName, subjectCode string, marks []model.AcademicMark) SubjectScore {
	var unitTests []float64
	var assignmentTotal float64
	var external float64
	haveExternal := false

	for _, m := range marks {
		switch {
		case m.ExamType.IsUnitTest():
			unitTests = append(unitTests, m.Marks)
		case m.ExamType == model.ExamAssign:
			assignmentTotal += m.Marks
		case m.ExamType == model.ExamTheoryESE:
			if !haveExternal {
				external = m.Marks
				haveExternal = true
			}
		}
	}

	internal := bestTwoAverage(unitTests) + assignmentTotal
	return SubjectScore{
		SubjectName:   subjectName,
		SubjectCode:   subjectCode,
		InternalMarks: internal,
		ExternalMarks: external,
		Total:         internal + external,
	}
}

// bestTwoAverage averages the two highest values. One value passes through
// unchanged; an empty slice is zero.
func bestTwoAverage(values []float64) float64 {
	switch len(values) {
	case 0:
		return 0
	case 1:
		return values[0]
	}
	sorted := append([]float64(nil), values...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	return (sorted[0] + sorted[1]) / 2
}

// CGPA is the arithmetic mean of the student's term SGPA values. A student
// with no results has a CGPA of zero, not an error.
func (s *GradingService) CGPA(studentID uint) (float64, error) {
	var results []model.ExamResult
	if err := s.db.
		Where("student_id = ?", studentID).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return 0, fmt.Errorf("failed to fetch exam results: %w", err)
	}
	return meanSGPA(results), nil
}

func meanSGPA(results []model.ExamResult) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		sum += r.SGPA
	}
	return sum / float64(len(results))
}

// Results returns the student's term results, oldest first.
func (s *GradingService) Results(studentID uint) ([]model.ExamResult, error) {
	var results []model.ExamResult
	if err := s.db.
		Where("student_id = ?", studentID).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch exam results: %w", err)
	}
	return results, nil
}

// SaveBatchMarks stores a batch of component marks in one transaction.
// Either every entry lands or none does.
func (s *GradingService) SaveBatchMarks(entries []MarkEntry) error {
	if len(entries) == 0 {
		return ErrEmptyBatch
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		rows := make([]model.AcademicMark, 0, len(entries))
		for _, e := range entries {
			if !e.ExamType.Valid() {
				return fmt.Errorf("unknown exam type %q", e.ExamType)
			}
			rows = append(rows, model.AcademicMark{
				StudentID: e.StudentID,
				SubjectID: e.SubjectID,
				ExamType:  e.ExamType,
				Marks:     e.Marks,
				MaxMarks:  e.MaxMarks,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to save marks: %w", err)
		}
		return nil
	})
}
