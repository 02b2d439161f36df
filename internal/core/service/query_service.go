package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/clientlens/clientlens-api/internal/core/domain"
	"github.com/clientlens/clientlens-api/internal/core/ports"
)

// Answerer runs the answer pipeline (assistant.Orchestrator).
type Answerer interface {
	Answer(ctx context.Context, query string, user domain.User, scope []domain.Client) *domain.QueryResult
}

// ModelProber checks model connectivity (assistant.Adapter).
type ModelProber interface {
	Probe(ctx context.Context) ports.ModelStatus
}

type queryService struct {
	store    ports.AccessStore
	answerer Answerer
	prober   ModelProber
	log      zerolog.Logger
}

// NewQueryService returns a QueryService implementation.
func NewQueryService(store ports.AccessStore, answerer Answerer, prober ModelProber, log zerolog.Logger) ports.QueryService {
	return &queryService{
		store:    store,
		answerer: answerer,
		prober:   prober,
		log:      log,
	}
}

// Ask resolves the user's client scope and answers the query over it.
func (s *queryService) Ask(ctx context.Context, in ports.QueryInput) (*domain.QueryResult, error) {
	if strings.TrimSpace(in.Query) == "" {
		return nil, fmt.Errorf("ask: %w: query is empty", domain.ErrInvalidQuery)
	}

	user, err := s.store.FindUser(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("ask: %w", err)
	}

	scope, err := s.store.ListAccessibleClients(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("ask: list clients: %w", err)
	}

	s.log.Debug().
		Int64("user_id", user.ID).
		Int("clients", len(scope)).
		Msg("scope resolved")

	return s.answerer.Answer(ctx, in.Query, *user, scope), nil
}

// CheckModel probes the model with a minimal prompt.
func (s *queryService) CheckModel(ctx context.Context) ports.ModelStatus {
	status := s.prober.Probe(ctx)
	if !status.Success {
		s.log.Warn().Str("error", status.Error).Msg("model connectivity check failed")
	}
	return status
}
