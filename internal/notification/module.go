// Package notification reacts to domain events with outbound alerts
// (email, WhatsApp). It subscribes to events and inverts the dependency:
// the leads module never needs to know about email providers or gateways.
package notification

import (
	"context"
	"fmt"

	"leadflow_backend/internal/email"
	"leadflow_backend/internal/events"
	"leadflow_backend/platform/config"
	"leadflow_backend/platform/logger"
)

// WhatsAppSender sends WhatsApp messages. Satisfied by *whatsapp.Client.
type WhatsAppSender interface {
	SendMessage(ctx context.Context, phoneNumber string, message string) error
}

// LeadReader resolves lead details for alert content.
type LeadReader interface {
	LeadName(ctx context.Context, event events.LeadScored) (name, company string)
}

// Module dispatches hot-lead alerts when a scoring run crosses the
// configured threshold.
type Module struct {
	sender    email.Sender
	whatsapp  WhatsAppSender
	cfg       config.NotificationConfig
	log       *logger.Logger
	leadNames LeadReader
}

// New creates the notification module. whatsapp may be nil.
func New(sender email.Sender, whatsapp WhatsAppSender, cfg config.NotificationConfig, log *logger.Logger) *Module {
	return &Module{
		sender:   sender,
		whatsapp: whatsapp,
		cfg:      cfg,
		log:      log,
	}
}

// SetLeadReader wires an optional resolver for richer alert content.
func (m *Module) SetLeadReader(r LeadReader) {
	m.leadNames = r
}

// Subscribe registers the module's event handlers on the bus.
func (m *Module) Subscribe(bus events.Bus) {
	bus.Subscribe(events.LeadScored{}.EventName(), events.HandlerFunc(m.handleLeadScored))
}

func (m *Module) handleLeadScored(ctx context.Context, event events.Event) error {
	e, ok := event.(events.LeadScored)
	if !ok {
		return nil
	}

	threshold := m.cfg.GetHotLeadThreshold()
	if threshold <= 0 || e.Score < threshold {
		return nil
	}

	// Only alert on the upward crossing, not on every re-score of an
	// already hot lead.
	if e.PreviousScore != nil && *e.PreviousScore >= threshold {
		return nil
	}

	name := e.LeadID.String()
	company := ""
	if m.leadNames != nil {
		if n, c := m.leadNames.LeadName(ctx, e); n != "" {
			name, company = n, c
		}
	}

	if to := m.cfg.GetAlertEmail(); to != "" {
		if err := m.sender.SendHotLeadAlert(ctx, to, name, company, e.Score); err != nil {
			m.log.Error("hot lead email alert failed", "error", err, "leadId", e.LeadID)
		}
	}

	if phone := m.cfg.GetAlertPhone(); phone != "" && m.whatsapp != nil {
		msg := fmt.Sprintf("Hot lead: %s scored %d. Follow up while it's fresh.", name, e.Score)
		if err := m.whatsapp.SendMessage(ctx, phone, msg); err != nil {
			m.log.Error("hot lead whatsapp alert failed", "error", err, "leadId", e.LeadID)
		}
	}

	m.log.Info("hot lead alert dispatched", "leadId", e.LeadID, "score", e.Score, "threshold", threshold)
	return nil
}
