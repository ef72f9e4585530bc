// Package scoring computes weighted lead scores.
//
// A scoring run is a single stateless request/response computation: fetch the
// lead, merge caller-supplied enrichment over its stored attribute bag,
// evaluate seven independent sub-scores, combine them through the fixed
// weight table, then persist an immutable history record and the
// last-write-wins enrichment summary.
package scoring

import (
	"context"
	"errors"
	"time"

	"leadflow_backend/internal/events"
	"leadflow_backend/platform/apperr"
	"leadflow_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// SummarySource identifies the enrichment summary row owned by the scorer.
const SummarySource = "ai_scoring"

// ErrLeadNotFound is returned by Store implementations when the lead does not
// exist for the requesting tenant. Cross-tenant reads must surface this same
// error so lead existence never leaks across tenants.
var ErrLeadNotFound = errors.New("lead not found")

// Lead is the stored record a scoring run reads.
type Lead struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      string
	Data      map[string]any
	CreatedAt time.Time
}

// ScoreRecord is one append-only scoring history entry. Records are never
// mutated or deleted by this component.
type ScoreRecord struct {
	LeadID       uuid.UUID
	TenantID     uuid.UUID
	Score        int
	Factors      Factors
	ModelVersion string
	CreatedAt    time.Time
}

// SummaryData is the payload stored on the enrichment summary row.
type SummaryData struct {
	Score   int     `json:"score"`
	Factors Factors `json:"factors"`
}

// EnrichmentSummary is the mutable "latest known score" row, one per
// (leadID, source). Every scoring run overwrites it.
type EnrichmentSummary struct {
	LeadID    uuid.UUID
	TenantID  uuid.UUID
	Source    string
	Data      SummaryData
	AIScore   int
	UpdatedAt time.Time
}

// Store is the narrow persistence contract the scorer depends on.
// Implementations must enforce tenant isolation on reads and provide per-row
// atomicity on the upsert; cross-row transactions are not required.
type Store interface {
	GetLead(ctx context.Context, leadID, tenantID uuid.UUID) (Lead, error)
	// GetLatestScore returns the lead's current summary score, or nil when
	// the lead has never been scored.
	GetLatestScore(ctx context.Context, leadID, tenantID uuid.UUID) (*int, error)
	AppendScoreHistory(ctx context.Context, record ScoreRecord) error
	UpsertEnrichmentSummary(ctx context.Context, summary EnrichmentSummary) error
}

// Result is the outcome of a scoring run.
type Result struct {
	Score        int
	Factors      Factors
	ModelVersion string
	ScoredAt     time.Time
}

// Service computes and persists lead scores.
type Service struct {
	store        Store
	bus          events.Bus
	log          *logger.Logger
	weights      Weights
	modelVersion string
}

// New creates a scoring service. The weight table is validated here so a
// misconfigured deployment fails at startup, not per request.
func New(store Store, bus events.Bus, log *logger.Logger, weights Weights, modelVersion string) (*Service, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if modelVersion == "" {
		modelVersion = "1.0.0"
	}
	return &Service{
		store:        store,
		bus:          bus,
		log:          log,
		weights:      weights,
		modelVersion: modelVersion,
	}, nil
}

// Weights returns the active weight table.
func (s *Service) Weights() Weights {
	return s.weights
}

// Score runs a full scoring pass for the lead.
//
// enrichment is optional; when present it is merged over the lead's stored
// data with enrichment fields winning on collision. The history append and
// summary upsert are independent writes issued concurrently; if either fails
// the operation reports PartialFailure without rolling back the other, since
// re-running the call converges both rows to the same values.
func (s *Service) Score(ctx context.Context, tenantID, leadID uuid.UUID, enrichment map[string]any) (Result, error) {
	lead, err := s.store.GetLead(ctx, leadID, tenantID)
	if err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			return Result{}, apperr.NotFound("lead not found")
		}
		return Result{}, apperr.Unavailable("lead store unreachable", err)
	}

	// Capture the pre-run score before the upsert overwrites it; consumers
	// use it to tell a fresh threshold crossing from a repeat. A failed read
	// degrades to a nil previous score rather than failing the run.
	previousScore, err := s.store.GetLatestScore(ctx, leadID, tenantID)
	if err != nil {
		if s.log != nil {
			s.log.Warn("previous score lookup failed", "leadId", leadID, "error", err)
		}
		previousScore = nil
	}

	merged := MergeData(lead.Data, enrichment)
	factors := ComputeFactors(ExtractProfile(merged))
	score := s.weights.Total(factors)
	now := time.Now().UTC()

	record := ScoreRecord{
		LeadID:       lead.ID,
		TenantID:     lead.TenantID,
		Score:        score,
		Factors:      factors,
		ModelVersion: s.modelVersion,
		CreatedAt:    now,
	}
	summary := EnrichmentSummary{
		LeadID:    lead.ID,
		TenantID:  lead.TenantID,
		Source:    SummarySource,
		Data:      SummaryData{Score: score, Factors: factors},
		AIScore:   score,
		UpdatedAt: now,
	}

	// Plain errgroup, no shared cancellation: both writes must be attempted
	// even if the first one to finish fails.
	var g errgroup.Group
	g.Go(func() error {
		return s.store.AppendScoreHistory(ctx, record)
	})
	g.Go(func() error {
		return s.store.UpsertEnrichmentSummary(ctx, summary)
	})
	if err := g.Wait(); err != nil {
		if s.log != nil {
			s.log.Error("lead score persistence failed", "leadId", leadID, "error", err)
		}
		return Result{}, apperr.PartialFailure("score computed but not fully persisted", err)
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.LeadScored{
			BaseEvent:    events.NewBaseEvent(),
			LeadID:        lead.ID,
			TenantID:      lead.TenantID,
			Score:         score,
			PreviousScore: previousScore,
			Factors:       factors.Map(),
			ModelVersion:  s.modelVersion,
		})
	}

	if s.log != nil {
		s.log.Info("lead scored", "leadId", leadID, "score", score, "modelVersion", s.modelVersion)
	}

	return Result{
		Score:        score,
		Factors:      factors,
		ModelVersion: s.modelVersion,
		ScoredAt:     now,
	}, nil
}
