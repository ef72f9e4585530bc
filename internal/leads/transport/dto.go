package transport

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateLeadRequest struct {
	Name   string         `json:"name" validate:"required,min=1,max=200"`
	Source string         `json:"source,omitempty" validate:"omitempty,max=100"`
	Data   map[string]any `json:"data,omitempty"`
}

// ScoreLeadRequest carries optional freshly fetched enrichment that is merged
// over the lead's stored data before scoring. Unknown fields are ignored.
type ScoreLeadRequest struct {
	EnrichmentData map[string]any `json:"enrichmentData,omitempty"`
}

// Response DTOs

type LeadResponse struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Source    *string        `json:"source,omitempty"`
	Data      map[string]any `json:"data"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type ScoreResponse struct {
	Score        int                `json:"score"`
	Factors      map[string]float64 `json:"factors"`
	ModelVersion string             `json:"modelVersion"`
	ScoredAt     time.Time          `json:"scoredAt"`
}

type ScoreHistoryEntry struct {
	Score        int                `json:"score"`
	Factors      map[string]float64 `json:"factors"`
	ModelVersion string             `json:"modelVersion"`
	Timestamp    time.Time          `json:"timestamp"`
}

type EnrichmentSummaryResponse struct {
	Source    string             `json:"source"`
	Score     int                `json:"score"`
	Factors   map[string]float64 `json:"factors"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

type MessageResponse struct {
	LeadID  uuid.UUID `json:"leadId"`
	Bucket  string    `json:"bucket"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
}
