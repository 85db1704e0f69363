package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestExamTypeValid(t *testing.T) {
	for _, valid := range []ExamType{ExamUnitTest1, ExamUnitTest2, ExamUnitTest3, ExamAssign, ExamTheoryESE} {
		if !valid.Valid() {
			t.Errorf("%s should be valid", valid)
		}
	}
	if ExamType("MIDTERM").Valid() {
		t.Error("unknown exam type should be invalid")
	}
	if !ExamUnitTest2.IsUnitTest() || ExamAssign.IsUnitTest() {
		t.Error("IsUnitTest misclassifies")
	}
}

func TestAssessmentJSONCarriesPreloadedMarks(t *testing.T) {
	a := Assessment{
		ID:       3,
		Title:    "Unit Test 1",
		Type:     ExamUnitTest1,
		MaxMarks: 20,
		Marks:    []StudentMark{{AssessmentID: 3, StudentID: 9, Marks: 17}},
	}

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded struct {
		Marks []struct {
			StudentID uint    `json:"student_id"`
			Marks     float64 `json:"marks_obtained"`
		} `json:"marks"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded.Marks) != 1 {
		t.Fatalf("expected 1 mark in payload, got %d:\n%s", len(decoded.Marks), data)
	}
	if decoded.Marks[0].StudentID != 9 || decoded.Marks[0].Marks != 17 {
		t.Errorf("mark payload = %+v", decoded.Marks[0])
	}
}

func TestAssessmentJSONOmitsMarksWhenUnloaded(t *testing.T) {
	data, err := json.Marshal(Assessment{ID: 4, Title: "Unit Test 2", Type: ExamUnitTest2})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), `"marks":`) {
		t.Errorf("marks field should be omitted when not preloaded:\n%s", data)
	}
}
