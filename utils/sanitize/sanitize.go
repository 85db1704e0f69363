package sanitize

import (
	"strings"

	"golang.org/x/net/html"
)

// StripTags reduces user-submitted HTML to its text content. Notice bodies
// are stored as plain text; anything that parses as markup is flattened and
// script/style contents are dropped entirely.
func StripTags(input string) string {
	if !strings.ContainsAny(input, "<>") {
		return strings.TrimSpace(input)
	}

	tokenizer := html.NewTokenizer(strings.NewReader(input))
	var b strings.Builder
	skipDepth := 0

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return collapseWhitespace(b.String())
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if isSkipped(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if isSkipped(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(tokenizer.Text())
				b.WriteByte(' ')
			}
		}
	}
}

func isSkipped(tag string) bool {
	return tag == "script" || tag == "style"
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
