package assistant

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/clientlens/clientlens-api/internal/core/domain"
	"github.com/clientlens/clientlens-api/internal/core/safety"
	"github.com/clientlens/clientlens-api/internal/pkg/metrics"
)

// Checker is the safety filter as seen by the orchestrator.
type Checker interface {
	CheckInput(text string) safety.Verdict
	CheckOutput(text string) safety.Verdict
}

// Responder produces the heuristic answer used for the free tier and as the
// model fallback.
type Responder interface {
	Answer(query string, user domain.User, scope []domain.Client) string
}

// Orchestrator composes the safety filter, the model adapter, and the
// heuristic engine into one answer pipeline.
type Orchestrator struct {
	filter Checker
	engine Responder
	model  *Adapter
	log    zerolog.Logger
}

// NewOrchestrator wires the pipeline. model may be nil or disabled, which
// puts every query on the free tier path.
func NewOrchestrator(filter Checker, engine Responder, model *Adapter, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{filter: filter, engine: engine, model: model, log: log}
}

// ModelEnabled reports whether queries are routed to the model.
func (o *Orchestrator) ModelEnabled() bool { return o.model.Enabled() }

// Answer runs query through the pipeline for user over scope. It never fails:
// unsafe input or output yields domain.InvalidAnswer, and a failed model call
// yields the heuristic answer with Error set.
func (o *Orchestrator) Answer(ctx context.Context, query string, user domain.User, scope []domain.Client) *domain.QueryResult {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "assistant.Answer",
		trace.WithAttributes(
			attribute.Int64("user.id", user.ID),
			attribute.Int("scope.size", len(scope)),
		))
	defer span.End()

	start := time.Now()
	res := &domain.QueryResult{
		Query:       query,
		User:        user.Name,
		ClientCount: len(scope),
	}
	o.run(ctx, res, user, scope)

	span.SetAttributes(
		attribute.String("answer.path", string(res.Path)),
		attribute.Bool("answer.model_used", res.ModelUsed),
	)
	metrics.QueriesTotal.WithLabelValues(string(res.Path)).Inc()
	metrics.QueryDuration.WithLabelValues(string(res.Path)).Observe(time.Since(start).Seconds())

	o.log.Info().
		Int64("user_id", user.ID).
		Int("clients", len(scope)).
		Str("path", string(res.Path)).
		Bool("model_used", res.ModelUsed).
		Dur("elapsed", time.Since(start)).
		Msg("query answered")

	return res
}

func (o *Orchestrator) run(ctx context.Context, res *domain.QueryResult, user domain.User, scope []domain.Client) {
	if v := o.filter.CheckInput(res.Query); !v.Safe {
		metrics.SafetyRejectionsTotal.WithLabelValues("input", string(v.Category)).Inc()
		res.Answer, res.Path = domain.InvalidAnswer, domain.PathFiltered
		return
	}

	if !o.model.Enabled() {
		res.Answer, res.Path = o.engine.Answer(res.Query, user, scope), domain.PathFreeTier
		return
	}

	text, err := o.model.Invoke(ctx, res.Query, user, scope)
	if err != nil {
		detail := err.Error()
		res.Error = &detail
		res.Answer, res.Path = o.engine.Answer(res.Query, user, scope), domain.PathFallback
		return
	}

	if v := o.filter.CheckOutput(text); !v.Safe {
		metrics.SafetyRejectionsTotal.WithLabelValues("output", string(v.Category)).Inc()
		res.Answer, res.Path = domain.InvalidAnswer, domain.PathFiltered
		return
	}

	res.Answer, res.Path, res.ModelUsed = text, domain.PathModel, true
}
