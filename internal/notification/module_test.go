package notification

import (
	"context"
	"testing"

	"leadflow_backend/internal/events"
	"leadflow_backend/platform/logger"

	"github.com/google/uuid"
)

type testNotificationConfig struct {
	threshold int
	email     string
	phone     string
}

func (c testNotificationConfig) GetHotLeadThreshold() int { return c.threshold }
func (c testNotificationConfig) GetAlertEmail() string    { return c.email }
func (c testNotificationConfig) GetAlertPhone() string    { return c.phone }

type testSender struct {
	alertCalls int
	lastScore  int
}

func (s *testSender) SendHotLeadAlert(_ context.Context, _, _, _ string, score int) error {
	s.alertCalls++
	s.lastScore = score
	return nil
}

func (s *testSender) SendCustomEmail(context.Context, string, string, string) error { return nil }

type testWhatsApp struct {
	sendCalls int
}

func (w *testWhatsApp) SendMessage(context.Context, string, string) error {
	w.sendCalls++
	return nil
}

func scoredEvent(score int, previous *int) events.LeadScored {
	return events.LeadScored{
		BaseEvent:     events.NewBaseEvent(),
		LeadID:        uuid.New(),
		TenantID:      uuid.New(),
		Score:         score,
		PreviousScore: previous,
		ModelVersion:  "1.0.0",
	}
}

func TestHotLeadAlertFiresAboveThreshold(t *testing.T) {
	sender := &testSender{}
	wa := &testWhatsApp{}
	cfg := testNotificationConfig{threshold: 80, email: "sales@example.com", phone: "+14155550123"}

	m := New(sender, wa, cfg, logger.New("development"))

	if err := m.handleLeadScored(context.Background(), scoredEvent(85, nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sender.alertCalls != 1 {
		t.Fatalf("expected one email alert, got %d", sender.alertCalls)
	}
	if sender.lastScore != 85 {
		t.Errorf("alert carried wrong score: %d", sender.lastScore)
	}
	if wa.sendCalls != 1 {
		t.Fatalf("expected one whatsapp alert, got %d", wa.sendCalls)
	}
}

func TestNoAlertBelowThreshold(t *testing.T) {
	sender := &testSender{}
	cfg := testNotificationConfig{threshold: 80, email: "sales@example.com"}

	m := New(sender, nil, cfg, logger.New("development"))

	if err := m.handleLeadScored(context.Background(), scoredEvent(79, nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.alertCalls != 0 {
		t.Fatalf("expected no alert below threshold, got %d", sender.alertCalls)
	}
}

func TestNoRepeatAlertForAlreadyHotLead(t *testing.T) {
	sender := &testSender{}
	cfg := testNotificationConfig{threshold: 80, email: "sales@example.com"}

	m := New(sender, nil, cfg, logger.New("development"))

	previous := 90
	if err := m.handleLeadScored(context.Background(), scoredEvent(85, &previous)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.alertCalls != 0 {
		t.Fatalf("re-score of an already hot lead should not alert again, got %d", sender.alertCalls)
	}
}

func TestAlertSkipsUnconfiguredChannels(t *testing.T) {
	sender := &testSender{}
	cfg := testNotificationConfig{threshold: 80}

	m := New(sender, nil, cfg, logger.New("development"))

	if err := m.handleLeadScored(context.Background(), scoredEvent(95, nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.alertCalls != 0 {
		t.Fatalf("no alert email configured, expected zero sends, got %d", sender.alertCalls)
	}
}
