package assistant

import (
	"regexp"
	"strings"
)

type rewrite struct {
	re   *regexp.Regexp
	repl string
}

// Applied in order: bold before italic so "**x**" is not read as two
// italic markers.
var markdownRewrites = []rewrite{
	{regexp.MustCompile(`\*\*(.*?)\*\*`), "$1"},
	{regexp.MustCompile(`__(.*?)__`), "$1"},
	{regexp.MustCompile(`\*(.*?)\*`), "$1"},
	{regexp.MustCompile(`_(.*?)_`), "$1"},
	{regexp.MustCompile(`(?m)^\* `), "- "},
	{regexp.MustCompile(`(?m)^  \* `), "  - "},
	{regexp.MustCompile(`(?m)^#{1,6}\s+`), ""},
	{regexp.MustCompile(`\n{3,}`), "\n\n"},
}

// cleanMarkdown strips emphasis and heading markers and normalizes bullets
// so model output renders as plain text.
func cleanMarkdown(text string) string {
	for _, rw := range markdownRewrites {
		text = rw.re.ReplaceAllString(text, rw.repl)
	}
	return strings.TrimSpace(text)
}
