package repository

import (
	"context"
	"errors"
	"time"

	"leadflow_backend/internal/leads/scoring"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("lead not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Lead is the full stored lead row.
type Lead struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      string
	Source    *string
	Data      map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateLeadParams struct {
	TenantID uuid.UUID
	Name     string
	Source   *string
	Data     map[string]any
}

// LeadRef identifies a lead together with its owning tenant.
type LeadRef struct {
	LeadID   uuid.UUID
	TenantID uuid.UUID
}

func (r *Repository) Create(ctx context.Context, params CreateLeadParams) (Lead, error) {
	data := params.Data
	if data == nil {
		data = map[string]any{}
	}

	var lead Lead
	err := r.pool.QueryRow(ctx, `
		INSERT INTO leads (id, tenant_id, name, source, data)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, tenant_id, name, source, data, created_at, updated_at
	`, uuid.New(), params.TenantID, params.Name, params.Source, data).Scan(
		&lead.ID, &lead.TenantID, &lead.Name, &lead.Source, &lead.Data, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return Lead{}, err
	}
	return lead, nil
}

func (r *Repository) GetByID(ctx context.Context, leadID, tenantID uuid.UUID) (Lead, error) {
	var lead Lead
	err := r.pool.QueryRow(ctx, `
		SELECT id, tenant_id, name, source, data, created_at, updated_at
		FROM leads
		WHERE id = $1 AND tenant_id = $2
	`, leadID, tenantID).Scan(
		&lead.ID, &lead.TenantID, &lead.Name, &lead.Source, &lead.Data, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	if err != nil {
		return Lead{}, err
	}
	return lead, nil
}

func (r *Repository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]Lead, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, tenant_id, name, source, data, created_at, updated_at
		FROM leads
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Lead, 0)
	for rows.Next() {
		var lead Lead
		if err := rows.Scan(&lead.ID, &lead.TenantID, &lead.Name, &lead.Source, &lead.Data, &lead.CreatedAt, &lead.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, lead)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return items, nil
}

// =============================================================================
// scoring.Store implementation
// =============================================================================

// GetLead returns the minimal lead view the scorer reads. Tenant isolation is
// enforced in the query: a lead belonging to another tenant reads as not found.
func (r *Repository) GetLead(ctx context.Context, leadID, tenantID uuid.UUID) (scoring.Lead, error) {
	var lead scoring.Lead
	err := r.pool.QueryRow(ctx, `
		SELECT id, tenant_id, name, data, created_at
		FROM leads
		WHERE id = $1 AND tenant_id = $2
	`, leadID, tenantID).Scan(&lead.ID, &lead.TenantID, &lead.Name, &lead.Data, &lead.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return scoring.Lead{}, scoring.ErrLeadNotFound
	}
	if err != nil {
		return scoring.Lead{}, err
	}
	return lead, nil
}

// AppendScoreHistory inserts one immutable scoring history row.
func (r *Repository) AppendScoreHistory(ctx context.Context, record scoring.ScoreRecord) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO lead_score_history (lead_id, tenant_id, score, factors, model_version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, record.LeadID, record.TenantID, record.Score, record.Factors, record.ModelVersion, record.CreatedAt)
	return err
}

// UpsertEnrichmentSummary overwrites the (lead_id, source) summary row.
// Last write wins; the row only ever reflects the most recent scoring run.
func (r *Repository) UpsertEnrichmentSummary(ctx context.Context, summary scoring.EnrichmentSummary) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO lead_enrichment (lead_id, tenant_id, source, data, ai_score, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (lead_id, source) DO UPDATE
		SET data = EXCLUDED.data,
		    ai_score = EXCLUDED.ai_score,
		    updated_at = EXCLUDED.updated_at
	`, summary.LeadID, summary.TenantID, summary.Source, summary.Data, summary.AIScore, summary.UpdatedAt)
	return err
}

// ListScoreHistory returns the scoring history for a lead, newest first.
func (r *Repository) ListScoreHistory(ctx context.Context, leadID, tenantID uuid.UUID, limit int) ([]scoring.ScoreRecord, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx, `
		SELECT lead_id, tenant_id, score, factors, model_version, created_at
		FROM lead_score_history
		WHERE lead_id = $1 AND tenant_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`, leadID, tenantID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]scoring.ScoreRecord, 0)
	for rows.Next() {
		var record scoring.ScoreRecord
		if err := rows.Scan(&record.LeadID, &record.TenantID, &record.Score, &record.Factors, &record.ModelVersion, &record.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, record)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return items, nil
}

// GetLatestScore returns the lead's current AI summary score, or nil when the
// lead has never been scored.
func (r *Repository) GetLatestScore(ctx context.Context, leadID, tenantID uuid.UUID) (*int, error) {
	var score int
	err := r.pool.QueryRow(ctx, `
		SELECT ai_score
		FROM lead_enrichment
		WHERE lead_id = $1 AND tenant_id = $2 AND source = $3
	`, leadID, tenantID, scoring.SummarySource).Scan(&score)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &score, nil
}

// GetEnrichmentSummary returns the current summary row for a lead and source.
func (r *Repository) GetEnrichmentSummary(ctx context.Context, leadID, tenantID uuid.UUID, source string) (scoring.EnrichmentSummary, error) {
	var summary scoring.EnrichmentSummary
	err := r.pool.QueryRow(ctx, `
		SELECT lead_id, tenant_id, source, data, ai_score, updated_at
		FROM lead_enrichment
		WHERE lead_id = $1 AND tenant_id = $2 AND source = $3
	`, leadID, tenantID, source).Scan(
		&summary.LeadID, &summary.TenantID, &summary.Source, &summary.Data, &summary.AIScore, &summary.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return scoring.EnrichmentSummary{}, ErrNotFound
	}
	if err != nil {
		return scoring.EnrichmentSummary{}, err
	}
	return summary, nil
}

// ListStaleLeads returns leads whose AI score is older than the cutoff or
// that have never been scored, oldest first. Used by the re-score sweeper.
func (r *Repository) ListStaleLeads(ctx context.Context, cutoff time.Time, limit int) ([]LeadRef, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx, `
		SELECT l.id, l.tenant_id
		FROM leads l
		LEFT JOIN lead_enrichment e
		  ON e.lead_id = l.id AND e.source = $1
		WHERE e.lead_id IS NULL OR e.updated_at < $2
		ORDER BY e.updated_at ASC NULLS FIRST
		LIMIT $3
	`, scoring.SummarySource, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := make([]LeadRef, 0)
	for rows.Next() {
		var ref LeadRef
		if err := rows.Scan(&ref.LeadID, &ref.TenantID); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return refs, nil
}

// Compile-time check that Repository satisfies the scorer's store contract.
var _ scoring.Store = (*Repository)(nil)
