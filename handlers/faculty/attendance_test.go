package faculty

import (
	"testing"
)

func TestWindowFromParams(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
		wantLabel  string // empty means nil window expected
		wantErr    bool
	}{
		{"absent params mean no filtering", "", "", "", false},
		{"valid pair", "2026-03-01", "2026-03-10", "2026-03-01 to 2026-03-10", false},
		{"startDate alone rejected", "2026-03-01", "", "", true},
		{"endDate alone rejected", "", "2026-03-10", "", true},
		{"malformed startDate", "01-03-2026", "2026-03-10", "", true},
		{"malformed endDate", "2026-03-01", "next week", "", true},
		{"inverted range", "2026-03-10", "2026-03-01", "", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			window, err := windowFromParams(c.start, c.end)
			if c.wantErr {
				if err == nil {
					t.Fatalf("windowFromParams(%q, %q) expected error, got window %v", c.start, c.end, window)
				}
				return
			}
			if err != nil {
				t.Fatalf("windowFromParams(%q, %q): %v", c.start, c.end, err)
			}
			if c.wantLabel == "" {
				if window != nil {
					t.Fatalf("expected nil window, got %v", window)
				}
				return
			}
			if window == nil || window.Label() != c.wantLabel {
				t.Errorf("window label = %v, want %q", window, c.wantLabel)
			}
		})
	}
}
