package cron

import (
	"testing"

	"github.com/campuskit/portal-api/services"
)

func TestHeldAttendance(t *testing.T) {
	cases := []struct {
		name     string
		overview []services.SubjectAttendance
		want     float64
		wantHeld bool
	}{
		{"no subjects", nil, 0, false},
		{
			"no sessions held anywhere",
			[]services.SubjectAttendance{
				{SubjectCode: "ARC-101", TotalSessions: 0, Percentage: 0},
				{SubjectCode: "ARC-102", TotalSessions: 0, Percentage: 0},
			},
			0, false,
		},
		{
			"zero-session subjects do not dilute the average",
			[]services.SubjectAttendance{
				{SubjectCode: "ARC-101", TotalSessions: 10, Percentage: 70},
				{SubjectCode: "ARC-102", TotalSessions: 0, Percentage: 0},
				{SubjectCode: "ARC-103", TotalSessions: 5, Percentage: 80},
			},
			75, true,
		},
		{
			"single tracked subject",
			[]services.SubjectAttendance{
				{SubjectCode: "ARC-101", TotalSessions: 8, Percentage: 62.5},
			},
			62.5, true,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, held := heldAttendance(c.overview)
			if held != c.wantHeld {
				t.Fatalf("held = %v, want %v", held, c.wantHeld)
			}
			if got != c.want {
				t.Errorf("overall = %v, want %v", got, c.want)
			}
		})
	}
}
