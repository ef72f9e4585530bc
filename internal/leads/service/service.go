// Package service provides lead CRUD operations for the HTTP layer.
package service

import (
	"context"
	"errors"

	"leadflow_backend/internal/events"
	"leadflow_backend/internal/leads/repository"
	"leadflow_backend/internal/leads/scoring"
	"leadflow_backend/internal/leads/transport"
	"leadflow_backend/platform/apperr"

	"github.com/google/uuid"
)

// Service manages lead records for a tenant.
type Service struct {
	repo *repository.Repository
	bus  events.Bus
}

// New creates a lead service.
func New(repo *repository.Repository, bus events.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

// Create stores a new lead and publishes LeadCreated so downstream modules
// (initial scoring, notifications) can react.
func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, req transport.CreateLeadRequest) (repository.Lead, error) {
	var source *string
	if req.Source != "" {
		source = &req.Source
	}

	lead, err := s.repo.Create(ctx, repository.CreateLeadParams{
		TenantID: tenantID,
		Name:     req.Name,
		Source:   source,
		Data:     req.Data,
	})
	if err != nil {
		return repository.Lead{}, apperr.Unavailable("lead store unreachable", err)
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.LeadCreated{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    lead.ID,
			TenantID:  lead.TenantID,
			Name:      lead.Name,
			Source:    req.Source,
		})
	}

	return lead, nil
}

// GetByID returns a single lead scoped to the tenant.
func (s *Service) GetByID(ctx context.Context, tenantID, leadID uuid.UUID) (repository.Lead, error) {
	lead, err := s.repo.GetByID(ctx, leadID, tenantID)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Lead{}, apperr.NotFound("lead not found")
	}
	if err != nil {
		return repository.Lead{}, apperr.Unavailable("lead store unreachable", err)
	}
	return lead, nil
}

// List returns the tenant's leads, newest first.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]repository.Lead, error) {
	leads, err := s.repo.List(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, apperr.Unavailable("lead store unreachable", err)
	}
	return leads, nil
}

// ScoreHistory returns the append-only scoring history for a lead.
func (s *Service) ScoreHistory(ctx context.Context, tenantID, leadID uuid.UUID, limit int) ([]scoring.ScoreRecord, error) {
	if _, err := s.GetByID(ctx, tenantID, leadID); err != nil {
		return nil, err
	}

	records, err := s.repo.ListScoreHistory(ctx, leadID, tenantID, limit)
	if err != nil {
		return nil, apperr.Unavailable("lead store unreachable", err)
	}
	return records, nil
}

// EnrichmentSummary returns the current AI scoring summary for a lead.
func (s *Service) EnrichmentSummary(ctx context.Context, tenantID, leadID uuid.UUID) (scoring.EnrichmentSummary, error) {
	summary, err := s.repo.GetEnrichmentSummary(ctx, leadID, tenantID, scoring.SummarySource)
	if errors.Is(err, repository.ErrNotFound) {
		return scoring.EnrichmentSummary{}, apperr.NotFound("lead has not been scored yet")
	}
	if err != nil {
		return scoring.EnrichmentSummary{}, apperr.Unavailable("lead store unreachable", err)
	}
	return summary, nil
}
