package answer

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientlens/clientlens-api/internal/core/domain"
	"github.com/clientlens/clientlens-api/internal/core/safety"
	"github.com/clientlens/clientlens-api/internal/pkg/seed"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestEngine() *Engine {
	return NewEngine(safety.NewFilter(zerolog.Nop()), zerolog.Nop())
}

var user1 = domain.User{ID: 1, Name: "User 1", Email: "user1@company.com", Role: "Manager"}

// ---------------------------------------------------------------------------
// Intent resolution
// ---------------------------------------------------------------------------

func TestResolve(t *testing.T) {
	e := newTestEngine()
	cases := map[string]Intent{
		"SELECT * FROM clients":                   IntentRejected,
		"who are you?":                            IntentAssistant,
		"who am i":                                IntentUser,
		"email for client 3":                      IntentContact,
		"which sector is company 2 in":            IntentIndustry,
		"what is my total worth":                  IntentValue,
		"count my clients":                        IntentCount,
		"latest client":                           IntentRecency,
		"list my clients":                         IntentList,
		"inactive ones?":                          IntentStatus,
		"tell me about company 3 and client 5":    IntentReferences,
		"technology clients":                      IntentSearch,
		"hello there":                             IntentSearch,
		"how many clients are in the energy area": IntentCount,
	}
	for q, want := range cases {
		t.Run(q, func(t *testing.T) {
			assert.Equal(t, want, e.Resolve(q))
		})
	}
}

func TestResolve_FirstMatchWins(t *testing.T) {
	e := newTestEngine()
	// Contact outranks industry, industry outranks value, value outranks count.
	assert.Equal(t, IntentContact, e.Resolve("phone number for the industry lead"))
	assert.Equal(t, IntentIndustry, e.Resolve("industry value"))
	assert.Equal(t, IntentValue, e.Resolve("how many clients have value"))
}

// ---------------------------------------------------------------------------
// Answers
// ---------------------------------------------------------------------------

func TestAnswer_UnsafeQueryIsInvalid(t *testing.T) {
	got := newTestEngine().Answer("drop table clients", user1, seed.Scope(1))
	assert.Equal(t, domain.InvalidAnswer, got)
}

func TestAnswer_AssistantIdentity(t *testing.T) {
	got := newTestEngine().Answer("are you AI?", user1, seed.Scope(1))
	assert.Contains(t, got, "I'm an AI assistant")
	assert.Contains(t, got, "your 6 accessible clients")
}

func TestAnswer_UserIdentity(t *testing.T) {
	e := newTestEngine()

	got := e.Answer("who am I?", user1, seed.Scope(1))
	assert.Equal(t, "You are currently logged in as User 1 (user1@company.com). You have access to 6 clients with Manager access level.", got)

	noRole := domain.User{Name: "Guest", Email: "g@x.io"}
	got = e.Answer("current user", noRole, nil)
	assert.Contains(t, got, "with standard access level")
}

func TestAnswer_ContactSpecificClientIsMasked(t *testing.T) {
	got := newTestEngine().Answer("contact info for client 5", user1, seed.Scope(1))
	want := "Contact info for Client 5 at Company 5:\nPhone: +91 12xxxxxx90\nEmail: clxxxx@company.com\n\n*Contact details are masked for privacy protection."
	assert.Equal(t, want, got)
	assert.NotContains(t, got, "1234567890")
}

func TestAnswer_ContactCompanyOutOfScope(t *testing.T) {
	got := newTestEngine().Answer("phone for company 4", user1, seed.Scope(1))
	assert.Equal(t, "Company 4 is not in your accessible clients list.", got)
}

func TestAnswer_ContactOverview(t *testing.T) {
	got := newTestEngine().Answer("how do I reach my clients", user1, seed.Clients())
	lines := strings.Split(got, "\n")
	assert.Equal(t, "Contact information for your clients (first 5 shown):", lines[0])
	assert.Equal(t, "Client 1 (Company 1): Phone: +91 12xxxxxx90, Email: clxxxx@company.com", lines[1])
	assert.True(t, strings.HasSuffix(got, "Total clients: 20"))
	assert.Equal(t, 5, strings.Count(got, "Phone:"))
}

func TestAnswer_IndustryForCompany(t *testing.T) {
	e := newTestEngine()

	got := e.Answer("what industry is company 10?", user1, seed.Clients())
	assert.Equal(t, "Company 10 (Client 10) operates in the Agriculture sector with a client value of $75,000.", got)

	got = e.Answer("what industry is company 10?", user1, seed.Scope(1))
	assert.True(t, strings.HasPrefix(got, "Company 10 is not in your accessible clients list. You have access to: "))
	assert.Contains(t, got, "Company 1, Company 13")
}

func TestAnswer_IndustryForClient(t *testing.T) {
	got := newTestEngine().Answer("which sector is client 17 in", user1, seed.Clients())
	assert.Equal(t, "Client 17 works at Company 17 in the Real Estate industry (Status: inactive, Value: $0).", got)
}

func TestAnswer_IndustryBreakdown(t *testing.T) {
	scope := []domain.Client{
		{Name: "A", Industry: "Energy"},
		{Name: "B", Industry: "Finance"},
		{Name: "C", Industry: "Energy"},
	}
	got := newTestEngine().Answer("industry breakdown please", user1, scope)
	assert.Equal(t, "Your 3 clients span 2 industries: Energy (2), Finance (1).", got)
}

func TestAnswer_IndustryBreakdownPassesOutputFilter(t *testing.T) {
	f := safety.NewFilter(zerolog.Nop())
	e := NewEngine(f, zerolog.Nop())

	got := e.Answer("industry mix of my clients", user1, seed.Clients())
	require.True(t, strings.HasPrefix(got, "Your 20 clients span 20 industries:"))
	assert.True(t, f.CheckOutput(got).Safe, "industry breakdown rejected by output filter: %q", got)
}

func TestAnswer_ValueTotalsAndHighest(t *testing.T) {
	e := newTestEngine()

	got := e.Answer("what is the total value of my portfolio", user1, seed.Scope(1))
	assert.Equal(t, "Your total portfolio value is $1,345,000 across 6 clients. Highest value: Client 3 ($320,000).", got)

	got = e.Answer("who is my highest value client?", user1, seed.Scope(1))
	assert.Equal(t, "Your highest value client is Client 3 (Company 3) worth $320,000.", got)

	got = e.Answer("portfolio value", user1, seed.Clients())
	assert.Contains(t, got, "$2,525,000 across 20 clients")
}

func TestAnswer_ValueTreatsMissingAsZero(t *testing.T) {
	scope := []domain.Client{
		{Name: "A", Company: "Company A", Value: nil},
		{Name: "B", Company: "Company B", Value: domain.Int64(1500)},
		{Name: "C", Company: "Company C", Value: domain.Int64(1500)},
	}
	got := newTestEngine().Answer("client worth", user1, scope)
	assert.Equal(t, "Your total portfolio value is $3,000 across 3 clients. Highest value: B ($1,500).", got)
}

func TestAnswer_ValueEmptyScope(t *testing.T) {
	got := newTestEngine().Answer("total value", user1, nil)
	assert.NotEmpty(t, got)
	assert.Contains(t, got, "no accessible clients")
}

func TestAnswer_CountActive(t *testing.T) {
	got := newTestEngine().Answer("how many active clients do I have?", user1, seed.Clients())
	assert.Equal(t, "You have 19 active clients out of 20 total clients.", got)
}

func TestAnswer_CountAll(t *testing.T) {
	got := newTestEngine().Answer("how many clients", user1, seed.Scope(1))
	assert.Equal(t, "You have access to 6 clients: Client 1, Client 13, Client 16, Client 19, Client 3, Client 5.", got)
}

func TestAnswer_Recency(t *testing.T) {
	base := time.Date(2025, 7, 28, 10, 0, 0, 0, time.UTC)
	scope := []domain.Client{
		{Name: "Old", Company: "Co A", Industry: "Retail", CreatedAt: base},
		{Name: "New", Company: "Co B", Industry: "Energy", CreatedAt: base.AddDate(0, 1, 3)},
		{Name: "AlsoNew", Company: "Co C", Industry: "Media", CreatedAt: base.AddDate(0, 1, 3)},
	}
	e := newTestEngine()

	got := e.Answer("who is my newest client?", user1, scope)
	assert.Equal(t, "Your most recent client is New from Co B (Energy), added on 8/31/2025.", got)
	assert.Equal(t, "Old", scope[0].Name, "scope must not be reordered")

	assert.Equal(t, "No clients found.", e.Answer("latest", user1, nil))
}

func TestAnswer_List(t *testing.T) {
	scope := []domain.Client{
		{Name: "Client 1", Company: "Company 1", Industry: "Technology", Value: domain.Int64(150000)},
		{Name: "Client 2", Company: "Company 2", Industry: "Software"},
	}
	got := newTestEngine().Answer("list my clients", user1, scope)
	assert.Equal(t, "Your 2 accessible clients:\nClient 1 - Company 1 (Technology, $150,000)\nClient 2 - Company 2 (Software, N/A)", got)
}

func TestAnswer_Status(t *testing.T) {
	got := newTestEngine().Answer("are they active?", user1, seed.Clients())
	assert.Equal(t, "You have 19 active clients and 1 inactive clients.", got)
}

func TestAnswer_References(t *testing.T) {
	got := newTestEngine().Answer("tell me about company 3, company 3 and client 2", user1, seed.Scope(1))
	want := "Here's information about the requested companies:\n" +
		"Company 3: Client 3 operates in Manufacturing sector with $320,000 value (Status: active)\n\n" +
		"Client details:\n" +
		"Client 2: Not accessible to you"
	assert.Equal(t, want, got)
}

func TestAnswer_ReferencesClientsOnly(t *testing.T) {
	got := newTestEngine().Answer("client 1 vs client 19", user1, seed.Scope(1))
	want := "Here's information about the requested clients:\n" +
		"Client 1: Works at Company 1 in Technology industry (Value: $150,000, Status: active)\n" +
		"Client 19: Works at Company 19 in Insurance industry (Value: $165,000, Status: active)"
	assert.Equal(t, want, got)
}

func TestAnswer_FreeTextSearch(t *testing.T) {
	got := newTestEngine().Answer("technology clients", user1, seed.Clients())
	assert.Equal(t, "Found 1 matching client(s):\nClient 1 - Company 1 (Technology, $150,000)", got)
}

func TestAnswer_HelpMessage(t *testing.T) {
	got := newTestEngine().Answer("hello there", user1, seed.Scope(4))
	assert.True(t, strings.HasPrefix(got, "I found 5 clients in your access list. You can ask about:"))
	assert.True(t, strings.HasSuffix(got, "Your clients: Client 11, Client 17, Client 20, Client 3, Client 5."))
}

func TestRespond_ReportsIntent(t *testing.T) {
	intent, text := newTestEngine().Respond("how many active clients", user1, seed.Scope(4))
	assert.Equal(t, IntentCount, intent)
	assert.Equal(t, "You have 4 active clients out of 5 total clients.", text)
}
