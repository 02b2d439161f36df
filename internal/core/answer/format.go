package answer

import (
	"regexp"
	"strings"
	"time"

	"github.com/clientlens/clientlens-api/internal/core/domain"
)

const notAvailable = "N/A"

// money renders an optional value as en-US grouped dollars, or N/A.
func (r *request) money(v *int64) string {
	if v == nil {
		return notAvailable
	}
	return r.amount(*v)
}

func (r *request) amount(v int64) string {
	return r.p.Sprintf("$%d", v)
}

func (r *request) clientLines(clients []domain.Client) string {
	lines := make([]string, len(clients))
	for i, c := range clients {
		lines[i] = c.Name + " - " + c.Company + " (" + c.Industry + ", " + r.money(c.Value) + ")"
	}
	return strings.Join(lines, "\n")
}

func shortDate(t time.Time) string {
	return t.UTC().Format("1/2/2006")
}

func names(scope []domain.Client) []string {
	out := make([]string, len(scope))
	for i, c := range scope {
		out[i] = c.Name
	}
	return out
}

func companies(scope []domain.Client) []string {
	out := make([]string, len(scope))
	for i, c := range scope {
		out[i] = c.Company
	}
	return out
}

func countActive(scope []domain.Client) int {
	n := 0
	for _, c := range scope {
		if c.IsActive() {
			n++
		}
	}
	return n
}

func findCompany(scope []domain.Client, num string) (domain.Client, bool) {
	want := "Company " + num
	for _, c := range scope {
		if c.Company == want {
			return c, true
		}
	}
	return domain.Client{}, false
}

func findClient(scope []domain.Client, num string) (domain.Client, bool) {
	want := "Client " + num
	for _, c := range scope {
		if c.Name == want {
			return c, true
		}
	}
	return domain.Client{}, false
}

func firstRef(re *regexp.Regexp, s string) (string, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// allRefs returns every referenced number once, in order of first mention.
func allRefs(re *regexp.Regexp, s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range re.FindAllStringSubmatch(s, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	return out
}
