// Package scheduler runs the scrape pipeline: fetch every registered source,
// normalize the listings, and merge them into the catalog on a recurring
// interval.
package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"terminsure/internal/db"
	"terminsure/internal/metrics"
	"terminsure/internal/models"
	"terminsure/internal/scraper"
)

// PlanStore is the catalog write surface the pipeline needs.
type PlanStore interface {
	UpsertPlan(ctx context.Context, plan *models.Plan) (db.UpsertOutcome, error)
}

// Options tunes the scheduler.
type Options struct {
	// Interval between recurring runs.
	Interval time.Duration
	// SourceTimeout bounds each adapter's fetch.
	SourceTimeout time.Duration
}

// Scheduler owns the recurring scrape loop. At most one run executes at a
// time; a trigger that arrives mid-run reports skipped instead of queuing.
type Scheduler struct {
	store         PlanStore
	sources       []scraper.Source
	interval      time.Duration
	sourceTimeout time.Duration

	runMu sync.Mutex // held for the duration of a run

	mu      sync.RWMutex
	lastRun *models.ScrapeRun

	cron *cron.Cron
}

// New creates a scheduler over the given sources.
func New(store PlanStore, sources []scraper.Source, opts Options) *Scheduler {
	if opts.Interval <= 0 {
		opts.Interval = 6 * time.Hour
	}
	if opts.SourceTimeout <= 0 {
		opts.SourceTimeout = 90 * time.Second
	}
	return &Scheduler{
		store:         store,
		sources:       sources,
		interval:      opts.Interval,
		sourceTimeout: opts.SourceTimeout,
	}
}

// Start performs one synchronous run so the catalog is populated before the
// server accepts traffic, then schedules recurring runs. The ctx bounds the
// startup run and all scheduled runs.
func (s *Scheduler) Start(ctx context.Context) {
	log.Printf("Scrape scheduler started (interval: %v, sources: %d)", s.interval, len(s.sources))

	if _, err := s.RunNow(ctx, models.ReasonStartup); err != nil {
		log.Printf("Startup scrape failed: %v", err)
	}

	s.cron = cron.New()
	s.cron.AddFunc("@every "+s.interval.String(), func() {
		if ctx.Err() != nil {
			return
		}
		if _, err := s.RunNow(ctx, models.ReasonScheduled); err != nil {
			log.Printf("Scheduled scrape failed: %v", err)
		}
	})
	s.cron.Start()
}

// Stop halts the recurring schedule and waits for an in-flight scheduled run
// to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	log.Println("Scrape scheduler stopped")
}

// LastRun returns the most recent completed run, or nil before the first one.
func (s *Scheduler) LastRun() *models.ScrapeRun {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastRun == nil {
		return nil
	}
	run := *s.lastRun
	return &run
}

// RunNow executes one scrape run. If another run is already in flight it
// returns immediately with a skipped run instead of waiting.
func (s *Scheduler) RunNow(ctx context.Context, reason string) (*models.ScrapeRun, error) {
	if !s.runMu.TryLock() {
		now := time.Now().UTC()
		run := &models.ScrapeRun{
			Reason:     reason,
			Status:     models.RunSkipped,
			StartedAt:  now,
			FinishedAt: now,
		}
		metrics.RecordScrapeRun(reason, models.RunSkipped)
		return run, nil
	}
	defer s.runMu.Unlock()

	run := &models.ScrapeRun{
		Reason:    reason,
		StartedAt: time.Now().UTC(),
	}

	// Fetch all sources concurrently, each under its own timeout.
	type fetchResult struct {
		listings []scraper.RawListing
		err      error
	}
	results := make([]fetchResult, len(s.sources))

	var wg sync.WaitGroup
	for i, source := range s.sources {
		wg.Add(1)
		go func(i int, source scraper.Source) {
			defer wg.Done()
			fetchCtx, cancel := context.WithTimeout(ctx, s.sourceTimeout)
			defer cancel()
			listings, err := source.Fetch(fetchCtx)
			results[i] = fetchResult{listings: listings, err: err}
		}(i, source)
	}
	wg.Wait()

	// Merge sequentially so counts stay simple and the pool is not hammered.
	for i, source := range s.sources {
		sr := models.SourceResult{Source: source.Name()}

		if err := results[i].err; err != nil {
			sr.Status = models.SourceFailed
			sr.Error = err.Error()
			log.Printf("Scrape: source %s failed: %v", source.Name(), err)
			run.Sources = append(run.Sources, sr)
			continue
		}

		sr.Status = models.SourceSuccess
		sr.Records = len(results[i].listings)
		for _, raw := range results[i].listings {
			plan, err := scraper.Normalize(source.Name(), raw)
			if err != nil {
				log.Printf("Scrape: dropped %v", err)
				continue
			}
			outcome, err := s.store.UpsertPlan(ctx, plan)
			if err != nil {
				log.Printf("Scrape: upsert %q failed: %v", plan.PlanName, err)
				continue
			}
			switch outcome {
			case db.UpsertInserted:
				sr.Inserted++
			case db.UpsertUpdated:
				sr.Updated++
			case db.UpsertSkipped:
				sr.Skipped++
			}
			metrics.RecordPlanUpsert(outcomeLabel(outcome))
		}
		run.Sources = append(run.Sources, sr)
	}

	for _, sr := range run.Sources {
		run.Inserted += sr.Inserted
		run.Updated += sr.Updated
		run.Skipped += sr.Skipped
	}
	run.Aggregate()
	run.FinishedAt = time.Now().UTC()

	s.mu.Lock()
	s.lastRun = run
	s.mu.Unlock()

	metrics.RecordScrapeRun(reason, run.Status)
	log.Printf("Scrape run finished (reason: %s, status: %s, inserted: %d, updated: %d, skipped: %d)",
		reason, run.Status, run.Inserted, run.Updated, run.Skipped)

	result := *run
	return &result, nil
}

func outcomeLabel(outcome db.UpsertOutcome) string {
	switch outcome {
	case db.UpsertInserted:
		return "inserted"
	case db.UpsertUpdated:
		return "updated"
	default:
		return "skipped"
	}
}
