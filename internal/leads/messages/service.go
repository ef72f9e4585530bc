// Package messages generates outreach message drafts for leads.
// Selection is plain template lookup keyed by the lead's score bucket;
// there is no model call involved.
package messages

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"leadflow_backend/internal/leads/repository"
	"leadflow_backend/internal/leads/scoring"
	"leadflow_backend/platform/apperr"

	"github.com/google/uuid"
)

// Score buckets used for template selection.
const (
	BucketHot     = "hot"
	BucketWarm    = "warm"
	BucketNurture = "nurture"

	hotThreshold  = 80
	warmThreshold = 60
)

// Message is a generated outreach draft.
type Message struct {
	LeadID  uuid.UUID
	Bucket  string
	Subject string
	Body    string
}

type template struct {
	subject string
	body    string
}

var templates = map[string]template{
	BucketHot: {
		subject: "Quick call this week, %s?",
		body: "Hi %s,\n\nYour team at %s looks like a strong fit for what we do. " +
			"Based on what we're seeing, now is a good moment to talk specifics. " +
			"Do you have 15 minutes this week?\n",
	},
	BucketWarm: {
		subject: "A resource for %s",
		body: "Hi %s,\n\nTeams like %s often run into the same growth bottlenecks. " +
			"I put together a short overview of how similar companies solved them. " +
			"Happy to share if useful.\n",
	},
	BucketNurture: {
		subject: "Keeping in touch with %s",
		body: "Hi %s,\n\nNo ask here. We work with companies like %s and publish a " +
			"monthly note on what's working in the space. Want me to add you?\n",
	},
}

// Store is the lead data the message generator reads.
type Store interface {
	GetByID(ctx context.Context, leadID, tenantID uuid.UUID) (repository.Lead, error)
	GetEnrichmentSummary(ctx context.Context, leadID, tenantID uuid.UUID, source string) (scoring.EnrichmentSummary, error)
}

// Service generates outreach messages from a lead's latest score.
type Service struct {
	repo Store
}

// New creates a message generation service.
func New(repo Store) *Service {
	return &Service{repo: repo}
}

// Generate drafts an outreach message for the lead. Never-scored leads fall
// into the nurture bucket.
func (s *Service) Generate(ctx context.Context, tenantID, leadID uuid.UUID) (Message, error) {
	lead, err := s.repo.GetByID(ctx, leadID, tenantID)
	if errors.Is(err, repository.ErrNotFound) {
		return Message{}, apperr.NotFound("lead not found")
	}
	if err != nil {
		return Message{}, apperr.Unavailable("lead store unreachable", err)
	}

	// A missing summary means the lead has never been scored and drops into
	// the nurture bucket. Any other read failure is a real outage and must
	// not be mistaken for an unscored lead.
	score := 0
	summary, err := s.repo.GetEnrichmentSummary(ctx, leadID, tenantID, scoring.SummarySource)
	switch {
	case err == nil:
		score = summary.AIScore
	case errors.Is(err, repository.ErrNotFound):
		// never scored
	default:
		return Message{}, apperr.Unavailable("lead store unreachable", err)
	}

	bucket := BucketForScore(score)
	tpl := templates[bucket]

	firstName := firstName(lead.Name)
	company := companyName(lead)

	return Message{
		LeadID:  lead.ID,
		Bucket:  bucket,
		Subject: fmt.Sprintf(tpl.subject, company),
		Body:    fmt.Sprintf(tpl.body, firstName, company),
	}, nil
}

// BucketForScore maps a 0-100 score to a template bucket.
func BucketForScore(score int) string {
	switch {
	case score >= hotThreshold:
		return BucketHot
	case score >= warmThreshold:
		return BucketWarm
	default:
		return BucketNurture
	}
}

func firstName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "there"
	}
	parts := strings.Fields(trimmed)
	return parts[0]
}

// companyName prefers the company name from the attribute bag and falls back
// to the lead name.
func companyName(lead repository.Lead) string {
	if company, ok := lead.Data["company"].(map[string]any); ok {
		if name, ok := company["name"].(string); ok && strings.TrimSpace(name) != "" {
			return strings.TrimSpace(name)
		}
	}
	if strings.TrimSpace(lead.Name) != "" {
		return strings.TrimSpace(lead.Name)
	}
	return "your team"
}
