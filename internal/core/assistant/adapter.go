package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/clientlens/clientlens-api/internal/core/domain"
	"github.com/clientlens/clientlens-api/internal/core/ports"
	"github.com/clientlens/clientlens-api/internal/pkg/metrics"
)

const tracerName = "github.com/clientlens/clientlens-api/internal/core/assistant"

const probePrompt = "Hi"

// Failure is a failed model attempt. Detail is the human-readable reason
// reported in the query result; errors.Is matches Kind and Cause.
type Failure struct {
	Kind   error
	Detail string
	Cause  error
}

func (f *Failure) Error() string { return f.Detail }

func (f *Failure) Unwrap() []error {
	if f.Cause == nil {
		return []error{f.Kind}
	}
	return []error{f.Kind, f.Cause}
}

// Adapter turns a query plus scope into a compact prompt and races the
// model call against the configured timeout.
type Adapter struct {
	client   ports.ModelClient
	settings Settings
	log      zerolog.Logger
}

// NewAdapter returns an Adapter. client may be nil, in which case the
// adapter reports itself disabled.
func NewAdapter(client ports.ModelClient, settings Settings, log zerolog.Logger) *Adapter {
	return &Adapter{client: client, settings: settings, log: log}
}

// Enabled reports whether queries should be sent to the model.
func (a *Adapter) Enabled() bool {
	return a != nil && a.client != nil && !a.settings.FreeTier()
}

// Settings returns the configuration the adapter was built with.
func (a *Adapter) Settings() Settings { return a.settings }

type reply struct {
	text string
	err  error
}

// Invoke asks the model to answer query over scope. The returned text has
// markdown stripped and is never empty. Errors are *Failure values matching
// domain.ErrModelTimeout or domain.ErrModelUnavailable.
func (a *Adapter) Invoke(ctx context.Context, query string, user domain.User, scope []domain.Client) (string, error) {
	if !a.Enabled() {
		return "", &Failure{Kind: domain.ErrModelNotConfigured, Detail: "model not configured"}
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "assistant.Invoke")
	defer span.End()

	prompt, shown := buildPrompt(query, user, scope)
	span.SetAttributes(
		attribute.String("model.name", a.client.Name()),
		attribute.Int("prompt.bytes", len(prompt)),
		attribute.Int("prompt.clients", shown),
	)
	if a.settings.TokenOptimization {
		a.log.Debug().
			Int("prompt_bytes", len(prompt)).
			Int("clients_shown", shown).
			Int("clients_total", len(scope)).
			Msg("model prompt size")
	}

	start := time.Now()
	text, err := a.race(ctx, prompt)
	elapsed := time.Since(start)

	if err != nil {
		outcome := "error"
		if errors.Is(err, domain.ErrModelTimeout) {
			outcome = "timeout"
		}
		metrics.ModelRequestDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		a.log.Warn().Err(err).Dur("elapsed", elapsed).Str("model", a.client.Name()).Msg("model request failed")
		return "", err
	}
	metrics.ModelRequestDuration.WithLabelValues("ok").Observe(elapsed.Seconds())
	a.log.Debug().Dur("elapsed", elapsed).Str("model", a.client.Name()).Msg("model replied")

	cleaned := cleanMarkdown(text)
	if cleaned == "" {
		return "", &Failure{Kind: domain.ErrModelUnavailable, Detail: "model returned an empty response"}
	}
	return cleaned, nil
}

// race runs the model call in its own goroutine and returns whichever of
// the reply, the timer, or ctx settles first. The channel is buffered so a
// late reply never blocks the abandoned goroutine.
func (a *Adapter) race(ctx context.Context, prompt string) (string, error) {
	done := make(chan reply, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- reply{err: fmt.Errorf("model client panic: %v", rec)}
			}
		}()
		text, err := a.client.Generate(ctx, prompt)
		done <- reply{text: text, err: err}
	}()

	timeout := a.settings.timeout()
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r := <-done:
		if r.err != nil {
			return "", &Failure{Kind: domain.ErrModelUnavailable, Detail: r.err.Error(), Cause: r.err}
		}
		return r.text, nil
	case <-timer.C:
		return "", &Failure{
			Kind:   domain.ErrModelTimeout,
			Detail: fmt.Sprintf("Timeout: AI response took longer than %dms", timeout.Milliseconds()),
		}
	case <-ctx.Done():
		return "", &Failure{Kind: domain.ErrModelUnavailable, Detail: ctx.Err().Error(), Cause: ctx.Err()}
	}
}

// Probe sends a minimal prompt to check connectivity.
func (a *Adapter) Probe(ctx context.Context) ports.ModelStatus {
	if !a.Enabled() {
		return ports.ModelStatus{
			Success: true,
			Mode:    "Free Tier",
			Message: "Using enhanced free tier responses",
		}
	}

	text, err := a.race(ctx, probePrompt)
	if err != nil {
		return ports.ModelStatus{Success: false, Mode: a.client.Name(), Error: err.Error()}
	}
	return ports.ModelStatus{
		Success:  true,
		Mode:     a.client.Name(),
		Message:  "Model connection successful",
		Response: text,
	}
}
