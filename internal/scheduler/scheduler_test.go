package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"terminsure/internal/db"
	"terminsure/internal/models"
	"terminsure/internal/scraper"
)

type fakeStore struct {
	mu      sync.Mutex
	plans   []*models.Plan
	outcome db.UpsertOutcome
	err     error
}

func (f *fakeStore) UpsertPlan(ctx context.Context, plan *models.Plan) (db.UpsertOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return db.UpsertSkipped, f.err
	}
	f.plans = append(f.plans, plan)
	return f.outcome, nil
}

type fakeSource struct {
	name     string
	listings []scraper.RawListing
	err      error
	delay    time.Duration
	started  chan struct{}
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(ctx context.Context) ([]scraper.RawListing, error) {
	if f.started != nil {
		close(f.started)
	}
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.delay):
		}
	}
	return f.listings, f.err
}

func validListing(name string) scraper.RawListing {
	return scraper.RawListing{
		PlanName:             name,
		Provider:             "Test Life",
		SumAssuredMin:        "25L",
		SumAssuredMax:        "2Cr",
		PremiumAnnual:        "12000",
		PolicyTermMin:        "10",
		PolicyTermMax:        "40",
		ClaimSettlementRatio: "98.5",
	}
}

func TestRunNowSuccess(t *testing.T) {
	store := &fakeStore{outcome: db.UpsertInserted}
	sources := []scraper.Source{
		&fakeSource{name: "alpha", listings: []scraper.RawListing{validListing("Plan A"), validListing("Plan B")}},
		&fakeSource{name: "beta", listings: []scraper.RawListing{validListing("Plan C")}},
	}

	sched := New(store, sources, Options{})
	run, err := sched.RunNow(context.Background(), models.ReasonManual)
	if err != nil {
		t.Fatalf("RunNow failed: %v", err)
	}

	if run.Status != models.RunSuccess {
		t.Errorf("expected success, got %s", run.Status)
	}
	if run.Inserted != 3 {
		t.Errorf("expected 3 inserted, got %d", run.Inserted)
	}
	if len(store.plans) != 3 {
		t.Errorf("expected 3 upserts, got %d", len(store.plans))
	}
	if last := sched.LastRun(); last == nil || last.Status != models.RunSuccess {
		t.Errorf("expected last run recorded, got %+v", last)
	}
}

func TestRunNowPartialFailure(t *testing.T) {
	store := &fakeStore{outcome: db.UpsertUpdated}
	sources := []scraper.Source{
		&fakeSource{name: "alpha", listings: []scraper.RawListing{validListing("Plan A")}},
		&fakeSource{name: "beta", err: errors.New("connection refused")},
	}

	sched := New(store, sources, Options{})
	run, err := sched.RunNow(context.Background(), models.ReasonScheduled)
	if err != nil {
		t.Fatalf("RunNow failed: %v", err)
	}

	if run.Status != models.RunPartialSuccess {
		t.Errorf("expected partial_success, got %s", run.Status)
	}
	if run.Updated != 1 {
		t.Errorf("expected 1 updated, got %d", run.Updated)
	}
	if len(run.Sources) != 2 {
		t.Fatalf("expected 2 source results, got %d", len(run.Sources))
	}
	if run.Sources[1].Status != models.SourceFailed || run.Sources[1].Error == "" {
		t.Errorf("expected failed source with error, got %+v", run.Sources[1])
	}
}

func TestRunNowAllSourcesFailed(t *testing.T) {
	store := &fakeStore{}
	sources := []scraper.Source{
		&fakeSource{name: "alpha", err: errors.New("boom")},
		&fakeSource{name: "beta", err: errors.New("boom")},
	}

	sched := New(store, sources, Options{})
	run, err := sched.RunNow(context.Background(), models.ReasonManual)
	if err != nil {
		t.Fatalf("RunNow failed: %v", err)
	}
	if run.Status != models.RunFailed {
		t.Errorf("expected failed, got %s", run.Status)
	}
	if len(store.plans) != 0 {
		t.Errorf("expected no upserts, got %d", len(store.plans))
	}
}

func TestRunNowDropsInvalidListings(t *testing.T) {
	bad := validListing("Plan X")
	bad.PremiumAnnual = "free"

	store := &fakeStore{outcome: db.UpsertInserted}
	sources := []scraper.Source{
		&fakeSource{name: "alpha", listings: []scraper.RawListing{validListing("Plan A"), bad}},
	}

	sched := New(store, sources, Options{})
	run, err := sched.RunNow(context.Background(), models.ReasonManual)
	if err != nil {
		t.Fatalf("RunNow failed: %v", err)
	}

	if run.Status != models.RunSuccess {
		t.Errorf("expected success, got %s", run.Status)
	}
	if run.Sources[0].Records != 2 || run.Inserted != 1 {
		t.Errorf("expected 2 records with 1 inserted, got records=%d inserted=%d",
			run.Sources[0].Records, run.Inserted)
	}
}

func TestRunNowSingleFlight(t *testing.T) {
	started := make(chan struct{})
	slow := &fakeSource{
		name:     "slow",
		listings: []scraper.RawListing{validListing("Plan A")},
		delay:    200 * time.Millisecond,
		started:  started,
	}

	store := &fakeStore{outcome: db.UpsertInserted}
	sched := New(store, []scraper.Source{slow}, Options{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := sched.RunNow(context.Background(), models.ReasonScheduled); err != nil {
			t.Errorf("background run failed: %v", err)
		}
	}()

	<-started
	run, err := sched.RunNow(context.Background(), models.ReasonManual)
	if err != nil {
		t.Fatalf("RunNow failed: %v", err)
	}
	if run.Status != models.RunSkipped {
		t.Errorf("expected skipped while a run is in flight, got %s", run.Status)
	}

	wg.Wait()
	if last := sched.LastRun(); last == nil || last.Status != models.RunSuccess {
		t.Errorf("expected completed run recorded, got %+v", last)
	}
}

func TestSourceTimeoutEnforced(t *testing.T) {
	slow := &fakeSource{
		name:  "slow",
		delay: 5 * time.Second,
	}
	fast := &fakeSource{name: "fast", listings: []scraper.RawListing{validListing("Plan A")}}

	store := &fakeStore{outcome: db.UpsertInserted}
	sched := New(store, []scraper.Source{slow, fast}, Options{SourceTimeout: 50 * time.Millisecond})

	run, err := sched.RunNow(context.Background(), models.ReasonManual)
	if err != nil {
		t.Fatalf("RunNow failed: %v", err)
	}
	if run.Status != models.RunPartialSuccess {
		t.Errorf("expected partial_success, got %s", run.Status)
	}
	if run.Inserted != 1 {
		t.Errorf("expected the fast source's record inserted, got %d", run.Inserted)
	}
}
