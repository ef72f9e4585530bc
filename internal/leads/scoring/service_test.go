package scoring

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"leadflow_backend/internal/events"
	"leadflow_backend/platform/apperr"

	"github.com/google/uuid"
)

// fakeStore is an in-memory Store with switchable failure modes.
type fakeStore struct {
	mu        sync.Mutex
	leads     map[uuid.UUID]Lead
	history   []ScoreRecord
	summaries map[uuid.UUID]EnrichmentSummary

	failRead    bool
	failLatest  bool
	failHistory bool
	failSummary bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		leads:     map[uuid.UUID]Lead{},
		summaries: map[uuid.UUID]EnrichmentSummary{},
	}
}

func (s *fakeStore) addLead(tenantID uuid.UUID, data map[string]any) Lead {
	lead := Lead{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Name:      "Test Lead",
		Data:      data,
		CreatedAt: time.Now(),
	}
	s.leads[lead.ID] = lead
	return lead
}

func (s *fakeStore) GetLead(_ context.Context, leadID, tenantID uuid.UUID) (Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failRead {
		return Lead{}, errors.New("connection refused")
	}
	lead, ok := s.leads[leadID]
	if !ok || lead.TenantID != tenantID {
		return Lead{}, ErrLeadNotFound
	}
	return lead, nil
}

func (s *fakeStore) GetLatestScore(_ context.Context, leadID, tenantID uuid.UUID) (*int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failLatest {
		return nil, errors.New("connection refused")
	}
	summary, ok := s.summaries[leadID]
	if !ok || summary.TenantID != tenantID {
		return nil, nil
	}
	score := summary.AIScore
	return &score, nil
}

func (s *fakeStore) AppendScoreHistory(_ context.Context, record ScoreRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failHistory {
		return errors.New("history insert failed")
	}
	s.history = append(s.history, record)
	return nil
}

func (s *fakeStore) UpsertEnrichmentSummary(_ context.Context, summary EnrichmentSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSummary {
		return errors.New("summary upsert failed")
	}
	s.summaries[summary.LeadID] = summary
	return nil
}

func (s *fakeStore) writeCounts() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history), len(s.summaries)
}

// captureBus records published events for assertions.
type captureBus struct {
	mu     sync.Mutex
	scored []events.LeadScored
}

func (b *captureBus) Publish(_ context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if e, ok := event.(events.LeadScored); ok {
		b.scored = append(b.scored, e)
	}
}

func (b *captureBus) PublishSync(ctx context.Context, event events.Event) error {
	b.Publish(ctx, event)
	return nil
}

func (b *captureBus) Subscribe(string, events.Handler) {}

func newTestService(t *testing.T, store Store) *Service {
	t.Helper()
	svc, err := New(store, nil, nil, DefaultWeights(), "1.0.0")
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}
	return svc
}

func TestScorePersistsHistoryAndSummary(t *testing.T) {
	store := newFakeStore()
	tenantID := uuid.New()
	lead := store.addLead(tenantID, map[string]any{
		"company": map[string]any{"employees": 150.0, "industry": "SaaS"},
	})

	svc := newTestService(t, store)

	result, err := svc.Score(context.Background(), tenantID, lead.ID, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 54 {
		t.Errorf("expected score 54, got %d", result.Score)
	}

	if len(store.history) != 1 {
		t.Fatalf("expected one history row, got %d", len(store.history))
	}
	if store.history[0].Score != 54 {
		t.Errorf("history score mismatch: %d", store.history[0].Score)
	}

	summary, ok := store.summaries[lead.ID]
	if !ok {
		t.Fatal("summary row missing")
	}
	if summary.Source != SummarySource {
		t.Errorf("expected source %q, got %q", SummarySource, summary.Source)
	}
	if summary.AIScore != 54 || summary.Data.Score != 54 {
		t.Errorf("summary score mismatch: %+v", summary)
	}
}

func TestScoreEnrichmentOverridesStoredData(t *testing.T) {
	store := newFakeStore()
	tenantID := uuid.New()
	lead := store.addLead(tenantID, map[string]any{
		"company": map[string]any{"employees": 5.0},
	})

	svc := newTestService(t, store)

	without, err := svc.Score(context.Background(), tenantID, lead.ID, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	with, err := svc.Score(context.Background(), tenantID, lead.ID, map[string]any{
		"company": map[string]any{"employees": 5000.0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if with.Score <= without.Score {
		t.Fatalf("enrichment with larger company should raise score: %d vs %d", with.Score, without.Score)
	}
	if with.Factors.CompanySize != 95 {
		t.Errorf("expected companySize factor 95 after enrichment, got %v", with.Factors.CompanySize)
	}
}

func TestScoreUnknownLeadReturnsNotFoundWithoutWrites(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)

	_, err := svc.Score(context.Background(), uuid.New(), uuid.New(), nil)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}

	history, summaries := store.writeCounts()
	if history != 0 || summaries != 0 {
		t.Fatalf("no writes expected on NotFound, got history=%d summaries=%d", history, summaries)
	}
}

func TestScoreCrossTenantReadsAsNotFound(t *testing.T) {
	store := newFakeStore()
	lead := store.addLead(uuid.New(), nil)
	svc := newTestService(t, store)

	otherTenant := uuid.New()
	_, err := svc.Score(context.Background(), otherTenant, lead.ID, nil)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("cross-tenant access must read as NotFound, got %v", err)
	}
}

func TestScoreReadFailureReturnsUnavailableWithoutWrites(t *testing.T) {
	store := newFakeStore()
	store.failRead = true
	svc := newTestService(t, store)

	_, err := svc.Score(context.Background(), uuid.New(), uuid.New(), nil)
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected Unavailable, got %v", err)
	}

	history, summaries := store.writeCounts()
	if history != 0 || summaries != 0 {
		t.Fatalf("no writes expected on Unavailable, got history=%d summaries=%d", history, summaries)
	}
}

func TestScoreWriteFailureReturnsPartialFailure(t *testing.T) {
	store := newFakeStore()
	tenantID := uuid.New()
	lead := store.addLead(tenantID, nil)
	store.failHistory = true

	svc := newTestService(t, store)

	_, err := svc.Score(context.Background(), tenantID, lead.ID, nil)
	if !apperr.Is(err, apperr.KindPartialFailure) {
		t.Fatalf("expected PartialFailure, got %v", err)
	}

	// The sibling write must still have been attempted.
	if _, ok := store.summaries[lead.ID]; !ok {
		t.Fatal("summary write skipped; both writes must be attempted independently")
	}
}

func TestScoreBothWritesFailingReturnsPartialFailure(t *testing.T) {
	store := newFakeStore()
	tenantID := uuid.New()
	lead := store.addLead(tenantID, nil)
	store.failHistory = true
	store.failSummary = true

	svc := newTestService(t, store)

	_, err := svc.Score(context.Background(), tenantID, lead.ID, nil)
	if !apperr.Is(err, apperr.KindPartialFailure) {
		t.Fatalf("expected PartialFailure, got %v", err)
	}
}

func TestConcurrentScoresConverge(t *testing.T) {
	store := newFakeStore()
	tenantID := uuid.New()
	lead := store.addLead(tenantID, map[string]any{
		"company": map[string]any{"employees": 150.0, "industry": "SaaS"},
	})

	svc := newTestService(t, store)

	var wg sync.WaitGroup
	results := make([]Result, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Score(context.Background(), tenantID, lead.ID, nil)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("call %d failed: %v", i, err)
		}
	}
	if results[0].Score != results[1].Score {
		t.Fatalf("identical inputs produced different scores: %d vs %d", results[0].Score, results[1].Score)
	}

	history, _ := store.writeCounts()
	if history != 2 {
		t.Fatalf("expected two history rows, got %d", history)
	}
	if store.summaries[lead.ID].AIScore != results[0].Score {
		t.Fatalf("summary out of sync: %d vs %d", store.summaries[lead.ID].AIScore, results[0].Score)
	}
}

func TestRescorePublishesPreviousScore(t *testing.T) {
	store := newFakeStore()
	bus := &captureBus{}
	tenantID := uuid.New()
	lead := store.addLead(tenantID, map[string]any{
		"company": map[string]any{"employees": 150.0, "industry": "SaaS"},
	})

	svc, err := New(store, bus, nil, DefaultWeights(), "1.0.0")
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}

	first, err := svc.Score(context.Background(), tenantID, lead.ID, nil)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if _, err := svc.Score(context.Background(), tenantID, lead.ID, nil); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()
	if len(bus.scored) != 2 {
		t.Fatalf("expected two scored events, got %d", len(bus.scored))
	}
	if bus.scored[0].PreviousScore != nil {
		t.Errorf("first run should carry no previous score, got %d", *bus.scored[0].PreviousScore)
	}
	if bus.scored[1].PreviousScore == nil {
		t.Fatal("second run must carry the previous score")
	}
	if *bus.scored[1].PreviousScore != first.Score {
		t.Errorf("previous score mismatch: got %d, want %d", *bus.scored[1].PreviousScore, first.Score)
	}
}

func TestPreviousScoreLookupFailureDoesNotFailRun(t *testing.T) {
	store := newFakeStore()
	store.failLatest = true
	bus := &captureBus{}
	tenantID := uuid.New()
	lead := store.addLead(tenantID, nil)

	svc, err := New(store, bus, nil, DefaultWeights(), "1.0.0")
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}

	if _, err := svc.Score(context.Background(), tenantID, lead.ID, nil); err != nil {
		t.Fatalf("run must not fail on a previous-score lookup error: %v", err)
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()
	if len(bus.scored) != 1 {
		t.Fatalf("expected one scored event, got %d", len(bus.scored))
	}
	if bus.scored[0].PreviousScore != nil {
		t.Errorf("previous score should be absent when the lookup fails, got %d", *bus.scored[0].PreviousScore)
	}
}

func TestNewRejectsInvalidWeights(t *testing.T) {
	bad := DefaultWeights()
	bad.Engagement = 0.9

	_, err := New(newFakeStore(), nil, nil, bad, "1.0.0")
	if err == nil {
		t.Fatal("expected error for weights not summing to 1.0")
	}
}
