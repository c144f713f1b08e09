package models

import "time"

// Scrape run trigger reasons.
const (
	ReasonStartup   = "startup"
	ReasonScheduled = "scheduled"
	ReasonManual    = "manual"
)

// Aggregate run statuses.
const (
	RunSuccess        = "success"
	RunPartialSuccess = "partial_success"
	RunFailed         = "failed"
	RunSkipped        = "skipped"
)

// Per-source outcomes within a run.
const (
	SourceSuccess = "success"
	SourceFailed  = "failed"
)

// SourceResult records one adapter's outcome within a scrape run.
type SourceResult struct {
	Source   string `json:"source"`
	Status   string `json:"status"`
	Records  int    `json:"records"`
	Inserted int    `json:"inserted"`
	Updated  int    `json:"updated"`
	Skipped  int    `json:"skipped"`
	Error    string `json:"error,omitempty"`
}

// ScrapeRun summarizes one execution of all registered sources. Only the
// most recent run is retained.
type ScrapeRun struct {
	Reason     string         `json:"reason"`
	Status     string         `json:"status"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Sources    []SourceResult `json:"sources"`
	Inserted   int            `json:"inserted"`
	Updated    int            `json:"updated"`
	Skipped    int            `json:"skipped"`
}

// Aggregate derives the run status from the per-source outcomes: failed iff
// every source failed, partial_success iff at least one failed and one
// succeeded, success otherwise.
func (r *ScrapeRun) Aggregate() {
	var ok, failed int
	for _, s := range r.Sources {
		switch s.Status {
		case SourceSuccess:
			ok++
		case SourceFailed:
			failed++
		}
	}
	switch {
	case failed > 0 && ok == 0:
		r.Status = RunFailed
	case failed > 0:
		r.Status = RunPartialSuccess
	default:
		r.Status = RunSuccess
	}
}
