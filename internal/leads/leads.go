// Package leads provides lead management and scoring functionality.
// This file defines the public API of the leads bounded context.
// Only types and interfaces defined here should be imported by other domains.
package leads

import (
	"context"

	"leadflow_backend/internal/leads/scoring"

	"github.com/google/uuid"
)

// Lead represents the minimal lead information that can be shared with other domains.
type Lead struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	Name     string
}

// Scorer defines the public scoring interface. Satisfied by *scoring.Service.
// Other domains should depend on this interface, not on concrete implementations.
type Scorer interface {
	// Score runs a full scoring pass for the lead, persisting the history
	// record and the latest-score summary.
	Score(ctx context.Context, tenantID, leadID uuid.UUID, enrichment map[string]any) (scoring.Result, error)
}

var _ Scorer = (*scoring.Service)(nil)

// Note: The full leads service with all CRUD operations is intended for use
// within the HTTP handler layer only. Other domains should use the minimal
// interfaces above or define their own for the specific data they need.
