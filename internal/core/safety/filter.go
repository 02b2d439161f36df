// Package safety classifies inbound queries and outbound model answers.
//
// The filter is a pure function of its input apart from diagnostic logging:
// it holds no state between calls and is safe for concurrent use.
package safety

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// Verdict is the result of classifying one piece of text.
type Verdict struct {
	Safe     bool
	Category Category
	// Pattern is the matched token, or a short description for the
	// length and encoding checks.
	Pattern string
}

var safe = Verdict{Safe: true}

func unsafe(c Category, pattern string) Verdict {
	return Verdict{Category: c, Pattern: pattern}
}

// Filter runs the curated pattern lists against text.
type Filter struct {
	log zerolog.Logger
}

func NewFilter(log zerolog.Logger) *Filter {
	return &Filter{log: log}
}

// CheckInput classifies a user query. Any one trigger is sufficient.
func (f *Filter) CheckInput(text string) Verdict {
	v := classifyInput(text)
	if !v.Safe {
		f.log.Warn().
			Str("category", string(v.Category)).
			Str("pattern", v.Pattern).
			Msg("query rejected by safety filter")
	}
	return v
}

// CheckOutput classifies generated text before it is shown to a user.
func (f *Filter) CheckOutput(text string) Verdict {
	v := classifyOutput(text)
	if !v.Safe {
		f.log.Warn().
			Str("category", string(v.Category)).
			Str("pattern", v.Pattern).
			Msg("model answer rejected by safety filter")
	}
	return v
}

func classifyInput(text string) Verdict {
	lower := strings.ToLower(text)
	for _, set := range inputRules {
		if p, ok := firstMatch(lower, set.patterns); ok {
			return unsafe(set.category, p)
		}
	}

	if utf8.RuneCountInString(text) > MaxQueryLength {
		return unsafe(CategoryLength, "length > 500")
	}

	for _, r := range text {
		if (r < 0x20 || r > 0x7E) && !unicode.IsSpace(r) {
			return unsafe(CategoryEncoding, "non-ascii character")
		}
	}
	return safe
}

func classifyOutput(text string) Verdict {
	lower := strings.ToLower(text)
	if p, ok := firstMatch(lower, leakPatterns); ok {
		return unsafe(CategoryLeak, p)
	}
	// Leaked query text heuristic. It also flags prose such as "selected from
	// 5 industries"; that false positive is accepted.
	if strings.Contains(lower, "select") && strings.Contains(lower, "from") {
		return unsafe(CategoryQueryText, "select+from")
	}
	return safe
}

func firstMatch(lower string, patterns []string) (string, bool) {
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return p, true
		}
	}
	return "", false
}
