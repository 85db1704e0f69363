package services

import (
	"testing"

	"github.com/campuskit/portal-api/model"
)

func mark(id uint, subjectID uint, examType model.ExamType, marks float64) model.AcademicMark {
	return model.AcademicMark{
		ID:        id,
		SubjectID: subjectID,
		ExamType:  examType,
		Marks:     marks,
		MaxMarks:  100,
		Subject:   model.Subject{ID: subjectID, Name: "History of Architecture", Code: "ARC-101"},
	}
}

func TestBestTwoAverage(t *testing.T) {
	cases := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"no attempts", nil, 0},
		{"single attempt counts as-is", []float64{18}, 18},
		{"two attempts", []float64{12, 18}, 15},
		{"best two of three", []float64{78, 65, 90}, 84},
		{"order independent", []float64{90, 78, 65}, 84},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := bestTwoAverage(c.values); got != c.want {
				t.Errorf("bestTwoAverage(%v) = %v, want %v", c.values, got, c.want)
			}
		})
	}
}

func TestComposeSubjectScore(t *testing.T) {
	marks := []model.AcademicMark{
		mark(1, 1, model.ExamUnitTest1, 78),
		mark(2, 1, model.ExamUnitTest2, 65),
		mark(3, 1, model.ExamUnitTest3, 90),
		mark(4, 1, model.ExamAssign, 8),
		mark(5, 1, model.ExamAssign, 7),
		mark(6, 1, model.ExamTheoryESE, 55),
	}

	score := composeSubjectScore("History of Architecture", "ARC-101", marks)

	// Best two unit tests (90, 78) average 84; assignments sum to 15.
	if score.InternalMarks != 99 {
		t.Errorf("InternalMarks = %v, want 99", score.InternalMarks)
	}
	if score.ExternalMarks != 55 {
		t.Errorf("ExternalMarks = %v, want 55", score.ExternalMarks)
	}
	if score.Total != 154 {
		t.Errorf("Total = %v, want 154", score.Total)
	}
}

func TestComposeSubjectScoreFirstEndSemesterWins(t *testing.T) {
	marks := []model.AcademicMark{
		mark(1, 1, model.ExamTheoryESE, 55),
		mark(2, 1, model.ExamTheoryESE, 70), // later duplicate, ignored
	}

	score := composeSubjectScore("History of Architecture", "ARC-101", marks)
	if score.ExternalMarks != 55 {
		t.Errorf("ExternalMarks = %v, want first entry 55", score.ExternalMarks)
	}
}

func TestComposeSubjectScoreMissingComponents(t *testing.T) {
	// Only one unit test, nothing else.
	score := composeSubjectScore("History of Architecture", "ARC-101", []model.AcademicMark{
		mark(1, 1, model.ExamUnitTest1, 42),
	})
	if score.InternalMarks != 42 || score.ExternalMarks != 0 || score.Total != 42 {
		t.Errorf("score = %+v", score)
	}

	// No marks at all.
	empty := composeSubjectScore("History of Architecture", "ARC-101", nil)
	if empty.InternalMarks != 0 || empty.ExternalMarks != 0 || empty.Total != 0 {
		t.Errorf("empty score = %+v", empty)
	}
}

func TestComposeReportCardGroupsBySubjectAndSortsByCode(t *testing.T) {
	arc102 := model.Subject{ID: 2, Name: "Design Basics", Code: "ARC-102"}
	marks := []model.AcademicMark{
		{ID: 1, SubjectID: 2, ExamType: model.ExamUnitTest1, Marks: 10, Subject: arc102},
		mark(2, 1, model.ExamUnitTest1, 12),
		{ID: 3, SubjectID: 2, ExamType: model.ExamTheoryESE, Marks: 60, Subject: arc102},
		mark(4, 1, model.ExamAssign, 8),
	}

	card := composeReportCard(marks)
	if len(card) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(card))
	}
	if card[0].SubjectCode != "ARC-101" || card[1].SubjectCode != "ARC-102" {
		t.Fatalf("unexpected order: %s, %s", card[0].SubjectCode, card[1].SubjectCode)
	}
	if card[0].InternalMarks != 20 || card[0].Total != 20 {
		t.Errorf("ARC-101 = %+v", card[0])
	}
	if card[1].InternalMarks != 10 || card[1].ExternalMarks != 60 || card[1].Total != 70 {
		t.Errorf("ARC-102 = %+v", card[1])
	}
}

func TestMeanSGPA(t *testing.T) {
	cases := []struct {
		name    string
		results []model.ExamResult
		want    float64
	}{
		{"no results is zero", nil, 0},
		{"single term", []model.ExamResult{{SGPA: 8.4}}, 8.4},
		{"mean of terms", []model.ExamResult{{SGPA: 8.0}, {SGPA: 9.0}}, 8.5},
		{"three terms", []model.ExamResult{{SGPA: 7.8}, {SGPA: 8.1}, {SGPA: 7.5}}, 7.8},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			// Profiles display CGPA at two decimals, so compare through
			// the same rounding.
			if got := round2(meanSGPA(c.results)); got != c.want {
				t.Errorf("meanSGPA = %v, want %v", got, c.want)
			}
		})
	}
}
