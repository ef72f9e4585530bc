// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"leadflow_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCreated is published when a new lead is created.
type LeadCreated struct {
	BaseEvent
	LeadID   uuid.UUID `json:"leadId"`
	TenantID uuid.UUID `json:"tenantId"`
	Name     string    `json:"name"`
	Source   string    `json:"source,omitempty"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadScored is published after a scoring run persisted its results.
type LeadScored struct {
	BaseEvent
	LeadID        uuid.UUID          `json:"leadId"`
	TenantID      uuid.UUID          `json:"tenantId"`
	Score         int                `json:"score"`
	PreviousScore *int               `json:"previousScore,omitempty"`
	Factors       map[string]float64 `json:"factors"`
	ModelVersion  string             `json:"modelVersion"`
}

func (e LeadScored) EventName() string { return "leads.lead.scored" }
