// Package answer is the deterministic answer engine used when no generative
// model is configured or the model could not answer in time.
//
// Intents are resolved by an ordered rule table: the first rule whose
// predicate matches the query produces the answer. The last rule always
// matches, so every query gets a non-empty reply.
package answer

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/clientlens/clientlens-api/internal/core/domain"
	"github.com/clientlens/clientlens-api/internal/core/safety"
)

// Intent is a query category the engine recognizes.
type Intent string

const (
	IntentRejected   Intent = "rejected"
	IntentAssistant  Intent = "assistant_identity"
	IntentUser       Intent = "user_identity"
	IntentContact    Intent = "contact"
	IntentIndustry   Intent = "industry"
	IntentValue      Intent = "value"
	IntentCount      Intent = "count"
	IntentRecency    Intent = "recency"
	IntentList       Intent = "list"
	IntentStatus     Intent = "status"
	IntentReferences Intent = "references"
	IntentSearch     Intent = "search"
)

// InputChecker is the subset of the safety filter the engine depends on.
type InputChecker interface {
	CheckInput(text string) safety.Verdict
}

// Engine answers queries from the scoped client records alone.
type Engine struct {
	filter InputChecker
	rules  []rule
	log    zerolog.Logger
}

func NewEngine(filter InputChecker, log zerolog.Logger) *Engine {
	e := &Engine{filter: filter, log: log}
	e.rules = e.ruleTable()
	return e
}

// request is the per-query view shared by every rule.
type request struct {
	raw   string
	lower string
	user  domain.User
	scope []domain.Client
	p     *message.Printer
}

func (r *request) has(words ...string) bool {
	for _, w := range words {
		if strings.Contains(r.lower, w) {
			return true
		}
	}
	return false
}

// Answer returns the reply text for query. It never returns an empty string.
func (e *Engine) Answer(query string, user domain.User, scope []domain.Client) string {
	_, text := e.Respond(query, user, scope)
	return text
}

// Respond is Answer plus the intent that produced the reply.
func (e *Engine) Respond(query string, user domain.User, scope []domain.Client) (intent Intent, text string) {
	req := &request{
		raw:   query,
		lower: strings.ToLower(query),
		user:  user,
		scope: scope,
		p:     message.NewPrinter(language.English),
	}

	defer func() {
		if rec := recover(); rec != nil {
			e.log.Error().
				Str("intent", string(intent)).
				Str("panic", fmt.Sprint(rec)).
				Msg("answer rule failed, falling back to help message")
			intent, text = IntentSearch, helpMessage(req)
		}
	}()

	r := e.match(req)
	intent = r.intent
	text = r.answer(req)
	if text == "" {
		text = helpMessage(req)
	}

	e.log.Debug().
		Str("intent", string(intent)).
		Int("scope", len(scope)).
		Msg("heuristic answer")

	return intent, text
}

// Resolve reports which intent query maps to, without building an answer.
func (e *Engine) Resolve(query string) Intent {
	return e.match(&request{raw: query, lower: strings.ToLower(query)}).intent
}

func (e *Engine) match(req *request) rule {
	for _, r := range e.rules {
		if r.match(req) {
			return r
		}
	}
	// Unreachable: the search rule matches everything.
	return e.rules[len(e.rules)-1]
}
