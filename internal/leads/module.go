// Package leads provides the lead management bounded context module.
// This file defines the module that encapsulates all leads setup and route registration.
package leads

import (
	"leadflow_backend/internal/events"
	apphttp "leadflow_backend/internal/http"
	"leadflow_backend/internal/leads/handler"
	"leadflow_backend/internal/leads/messages"
	"leadflow_backend/internal/leads/repository"
	"leadflow_backend/internal/leads/scoring"
	"leadflow_backend/internal/leads/service"
	"leadflow_backend/platform/config"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler  *handler.Handler
	service  *service.Service
	scoring  *scoring.Service
	messages *messages.Service
	repo     *repository.Repository
}

// NewModule creates and initializes the leads module with all its dependencies.
// The scoring weight table is validated here so bad overrides fail at startup.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, val *validator.Validator, cfg config.ScoringConfig, log *logger.Logger) (*Module, error) {
	repo := repository.New(pool)

	weights, err := scoring.NewWeights(cfg.GetScoringWeightOverrides())
	if err != nil {
		return nil, err
	}

	scorer, err := scoring.New(repo, eventBus, log, weights, cfg.GetScoringModelVersion())
	if err != nil {
		return nil, err
	}

	svc := service.New(repo, eventBus)
	msgs := messages.New(repo)
	h := handler.New(svc, scorer, msgs, val)

	return &Module{
		handler:  h,
		service:  svc,
		scoring:  scorer,
		messages: msgs,
		repo:     repo,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// ScoringService returns the scoring service for external use
// (the async worker runs scoring outside the HTTP layer).
func (m *Module) ScoringService() *scoring.Service {
	return m.scoring
}

// Repository returns the lead repository for the stale-score sweeper.
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// RegisterRoutes mounts leads routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// All leads routes require authentication
	leadsGroup := ctx.Protected.Group("/leads")
	m.handler.RegisterRoutes(leadsGroup)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
