package answer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/clientlens/clientlens-api/internal/core/domain"
	"github.com/clientlens/clientlens-api/internal/core/privacy"
)

// Numbered references only resolve against the "Company N" / "Client N"
// naming used by the seed data.
var (
	companyRef = regexp.MustCompile(`(?i)company\s*(\d+)`)
	clientRef  = regexp.MustCompile(`(?i)client\s*(\d+)`)
)

const contactPreviewSize = 5

type rule struct {
	intent Intent
	match  func(r *request) bool
	answer func(r *request) string
}

func (e *Engine) ruleTable() []rule {
	return []rule{
		{IntentRejected, e.rejects, func(*request) string { return domain.InvalidAnswer }},
		{IntentAssistant, keywords("what are you", "who are you", "are you ai", "chatbot"), answerAssistant},
		{IntentUser, keywords("which user", "who am i", "current user", "my user"), answerUser},
		{IntentContact, keywords("contact", "phone", "email", "call", "reach"), answerContact},
		{IntentIndustry, keywords("sector", "industry"), answerIndustry},
		{IntentValue, keywords("value", "worth", "money"), answerValue},
		{IntentCount, keywords("how many", "count"), answerCount},
		{IntentRecency, keywords("recent", "latest", "newest"), answerRecency},
		{IntentList, keywords("all", "list"), answerList},
		{IntentStatus, keywords("active", "inactive"), answerStatus},
		{IntentReferences, hasReferences, answerReferences},
		{IntentSearch, func(*request) bool { return true }, answerSearch},
	}
}

func (e *Engine) rejects(r *request) bool {
	return !e.filter.CheckInput(r.raw).Safe
}

func keywords(words ...string) func(*request) bool {
	return func(r *request) bool { return r.has(words...) }
}

func hasReferences(r *request) bool {
	return companyRef.MatchString(r.raw) || clientRef.MatchString(r.raw)
}

func answerAssistant(r *request) string {
	return fmt.Sprintf("I'm an AI assistant designed to help you analyze your client database. "+
		"I can answer questions about your %d accessible clients, their industries, values, and contact information. "+
		"What would you like to know about your clients?", len(r.scope))
}

func answerUser(r *request) string {
	role := r.user.Role
	if role == "" {
		role = "standard"
	}
	return fmt.Sprintf("You are currently logged in as %s (%s). You have access to %d clients with %s access level.",
		r.user.Name, r.user.Email, len(r.scope), role)
}

func answerContact(r *request) string {
	if num, ok := firstRef(companyRef, r.raw); ok {
		c, found := findCompany(r.scope, num)
		if !found {
			return fmt.Sprintf("Company %s is not in your accessible clients list.", num)
		}
		m := privacy.Redact(c)
		return fmt.Sprintf("Contact info for Company %s (%s):\nPhone: %s\nEmail: %s\n\n%s",
			num, c.Name, m.Phone, m.Email, maskedNotice)
	}

	if num, ok := firstRef(clientRef, r.raw); ok {
		c, found := findClient(r.scope, num)
		if !found {
			return fmt.Sprintf("Client %s is not in your accessible clients list.", num)
		}
		m := privacy.Redact(c)
		return fmt.Sprintf("Contact info for %s at %s:\nPhone: %s\nEmail: %s\n\n%s",
			c.Name, c.Company, m.Phone, m.Email, maskedNotice)
	}

	preview := r.scope
	if len(preview) > contactPreviewSize {
		preview = preview[:contactPreviewSize]
	}
	lines := make([]string, 0, len(preview))
	for _, c := range privacy.RedactAll(preview) {
		lines = append(lines, fmt.Sprintf("%s (%s): Phone: %s, Email: %s", c.Name, c.Company, c.Phone, c.Email))
	}
	return fmt.Sprintf("Contact information for your clients (first %d shown):\n%s\n\n%s Total clients: %d",
		contactPreviewSize, strings.Join(lines, "\n"), maskedNotice, len(r.scope))
}

const maskedNotice = "*Contact details are masked for privacy protection."

func answerIndustry(r *request) string {
	if num, ok := firstRef(companyRef, r.raw); ok {
		c, found := findCompany(r.scope, num)
		if !found {
			return fmt.Sprintf("Company %s is not in your accessible clients list. You have access to: %s.",
				num, strings.Join(companies(r.scope), ", "))
		}
		return fmt.Sprintf("Company %s (%s) operates in the %s sector with a client value of %s.",
			num, c.Name, c.Industry, r.money(c.Value))
	}

	if num, ok := firstRef(clientRef, r.raw); ok {
		c, found := findClient(r.scope, num)
		if !found {
			return fmt.Sprintf("Client %s is not in your accessible clients list.", num)
		}
		return fmt.Sprintf("Client %s works at %s in the %s industry (Status: %s, Value: %s).",
			num, c.Company, c.Industry, c.Status, r.money(c.Value))
	}

	return industryBreakdown(r.scope)
}

// industryBreakdown lists industries in order of first appearance in scope.
func industryBreakdown(scope []domain.Client) string {
	var order []string
	counts := make(map[string]int)
	for _, c := range scope {
		if _, seen := counts[c.Industry]; !seen {
			order = append(order, c.Industry)
		}
		counts[c.Industry]++
	}
	parts := make([]string, len(order))
	for i, ind := range order {
		parts[i] = fmt.Sprintf("%s (%d)", ind, counts[ind])
	}
	return fmt.Sprintf("Your %d clients span %d industries: %s.", len(scope), len(order), strings.Join(parts, ", "))
}

func answerValue(r *request) string {
	top, ok := highestValue(r.scope)
	if !ok {
		return "You have no accessible clients, so there is no portfolio value to report."
	}
	if r.has("highest", "most", "biggest") {
		return fmt.Sprintf("Your highest value client is %s (%s) worth %s.",
			top.Name, top.Company, r.amount(top.ValueOrZero()))
	}
	var total int64
	for _, c := range r.scope {
		total += c.ValueOrZero()
	}
	return fmt.Sprintf("Your total portfolio value is %s across %d clients. Highest value: %s (%s).",
		r.amount(total), len(r.scope), top.Name, r.amount(top.ValueOrZero()))
}

// highestValue returns the first client holding the maximum value in scope.
func highestValue(scope []domain.Client) (domain.Client, bool) {
	if len(scope) == 0 {
		return domain.Client{}, false
	}
	top := scope[0]
	for _, c := range scope[1:] {
		if c.ValueOrZero() > top.ValueOrZero() {
			top = c
		}
	}
	return top, true
}

func answerCount(r *request) string {
	if r.has("active") {
		return fmt.Sprintf("You have %d active clients out of %d total clients.", countActive(r.scope), len(r.scope))
	}
	return fmt.Sprintf("You have access to %d clients: %s.", len(r.scope), strings.Join(names(r.scope), ", "))
}

func answerRecency(r *request) string {
	if len(r.scope) == 0 {
		return "No clients found."
	}
	newest := r.scope[0]
	for _, c := range r.scope[1:] {
		if c.CreatedAt.After(newest.CreatedAt) {
			newest = c
		}
	}
	return fmt.Sprintf("Your most recent client is %s from %s (%s), added on %s.",
		newest.Name, newest.Company, newest.Industry, shortDate(newest.CreatedAt))
}

func answerList(r *request) string {
	return fmt.Sprintf("Your %d accessible clients:\n%s", len(r.scope), r.clientLines(r.scope))
}

func answerStatus(r *request) string {
	active := countActive(r.scope)
	inactive := 0
	for _, c := range r.scope {
		if c.Status == domain.StatusInactive {
			inactive++
		}
	}
	return fmt.Sprintf("You have %d active clients and %d inactive clients.", active, inactive)
}

func answerReferences(r *request) string {
	var b strings.Builder

	if nums := allRefs(companyRef, r.raw); len(nums) > 0 {
		lines := make([]string, len(nums))
		for i, num := range nums {
			c, found := findCompany(r.scope, num)
			if !found {
				lines[i] = fmt.Sprintf("Company %s: Not accessible to you", num)
				continue
			}
			lines[i] = fmt.Sprintf("Company %s: %s operates in %s sector with %s value (Status: %s)",
				num, c.Name, c.Industry, r.money(c.Value), c.Status)
		}
		b.WriteString("Here's information about the requested companies:\n")
		b.WriteString(strings.Join(lines, "\n"))
	}

	if nums := allRefs(clientRef, r.raw); len(nums) > 0 {
		lines := make([]string, len(nums))
		for i, num := range nums {
			c, found := findClient(r.scope, num)
			if !found {
				lines[i] = fmt.Sprintf("Client %s: Not accessible to you", num)
				continue
			}
			lines[i] = fmt.Sprintf("Client %s: Works at %s in %s industry (Value: %s, Status: %s)",
				num, c.Company, c.Industry, r.money(c.Value), c.Status)
		}
		if b.Len() > 0 {
			b.WriteString("\n\nClient details:\n")
		} else {
			b.WriteString("Here's information about the requested clients:\n")
		}
		b.WriteString(strings.Join(lines, "\n"))
	}

	return b.String()
}

func answerSearch(r *request) string {
	var terms []string
	for _, w := range strings.Fields(r.lower) {
		if len(w) > 2 {
			terms = append(terms, w)
		}
	}

	var matches []domain.Client
	for _, c := range r.scope {
		if matchesAny(c, terms) {
			matches = append(matches, c)
		}
	}
	if len(matches) == 0 {
		return helpMessage(r)
	}
	return fmt.Sprintf("Found %d matching client(s):\n%s", len(matches), r.clientLines(matches))
}

func matchesAny(c domain.Client, terms []string) bool {
	name := strings.ToLower(c.Name)
	company := strings.ToLower(c.Company)
	industry := strings.ToLower(c.Industry)
	for _, t := range terms {
		if strings.Contains(name, t) || strings.Contains(company, t) || strings.Contains(industry, t) {
			return true
		}
	}
	return false
}

func helpMessage(r *request) string {
	return fmt.Sprintf(`I found %d clients in your access list. You can ask about:
• Industries/sectors: "what industry is company 10?"
• Client values: "who is my highest value client?"
• Client counts: "how many active clients do I have?"
• Recent clients: "who is my newest client?"
• Specific searches: "show me technology clients"

Your clients: %s.`, len(r.scope), strings.Join(names(r.scope), ", "))
}
