package sanitize

import "testing"

func TestStripTags(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "Exam starts Monday", "Exam starts Monday"},
		{"trims whitespace", "  hello  ", "hello"},
		{"strips markup", "<p>Holiday on <b>Friday</b></p>", "Holiday on Friday"},
		{"drops script contents", `<script>alert("x")</script>Notice text`, "Notice text"},
		{"drops style contents", "<style>body{color:red}</style>Fee reminder", "Fee reminder"},
		{"collapses whitespace", "<div>a</div>\n<div>b</div>", "a b"},
		{"nested tags", "<div><span>deep</span> text</div>", "deep text"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := StripTags(c.input); got != c.want {
				t.Errorf("StripTags(%q) = %q, want %q", c.input, got, c.want)
			}
		})
	}
}
