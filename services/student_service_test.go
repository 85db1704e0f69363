package services

import "testing"

func TestOverallAttendance(t *testing.T) {
	cases := []struct {
		name     string
		subjects []SubjectAttendance
		want     float64
	}{
		{"no subjects", nil, 0},
		{
			"single subject",
			[]SubjectAttendance{{Percentage: 80}},
			80,
		},
		{
			// Unweighted mean: a 2-session subject counts the same as a
			// 40-session subject.
			"unweighted mean",
			[]SubjectAttendance{{Percentage: 100}, {Percentage: 50}},
			75,
		},
		{
			"rounds to one decimal",
			[]SubjectAttendance{{Percentage: 66.7}, {Percentage: 66.6}, {Percentage: 66.6}},
			66.6,
		},
		{
			"zero-session subjects drag the mean down",
			[]SubjectAttendance{{Percentage: 90}, {Percentage: 0, TotalSessions: 0}},
			45,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := overallAttendance(c.subjects); got != c.want {
				t.Errorf("overallAttendance = %v, want %v", got, c.want)
			}
		})
	}
}
