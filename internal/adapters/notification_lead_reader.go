// Package adapters contains anti-corruption-layer adapters that let modules
// collaborate without importing each other's internals.
package adapters

import (
	"context"
	"strings"

	"leadflow_backend/internal/events"
	"leadflow_backend/internal/leads/repository"
	"leadflow_backend/internal/notification"
)

// NotificationLeadReader resolves lead and company names for alert content
// from the leads repository.
type NotificationLeadReader struct {
	repo *repository.Repository
}

func NewNotificationLeadReader(repo *repository.Repository) *NotificationLeadReader {
	return &NotificationLeadReader{repo: repo}
}

// LeadName returns the lead's display name and company, or empty strings when
// the lead cannot be read. Alerting degrades to the lead ID in that case.
func (r *NotificationLeadReader) LeadName(ctx context.Context, event events.LeadScored) (string, string) {
	lead, err := r.repo.GetByID(ctx, event.LeadID, event.TenantID)
	if err != nil {
		return "", ""
	}

	company := ""
	if data, ok := lead.Data["company"].(map[string]any); ok {
		if name, ok := data["name"].(string); ok {
			company = strings.TrimSpace(name)
		}
	}

	return lead.Name, company
}

// Compile-time check against the notification module's contract.
var _ notification.LeadReader = (*NotificationLeadReader)(nil)
