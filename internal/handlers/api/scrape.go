package api

import (
	"github.com/gofiber/fiber/v3"

	"terminsure/internal/db"
	"terminsure/internal/models"
	"terminsure/internal/scheduler"
)

// ScrapeHandler triggers scrape runs and reports catalog statistics.
type ScrapeHandler struct {
	db    *db.DB
	sched *scheduler.Scheduler
}

// NewScrapeHandler creates a new API scrape handler.
func NewScrapeHandler(database *db.DB, sched *scheduler.Scheduler) *ScrapeHandler {
	return &ScrapeHandler{db: database, sched: sched}
}

// Trigger runs a scrape synchronously and returns the run summary. If a run
// is already in flight the response reports skipped instead of waiting.
func (h *ScrapeHandler) Trigger(c fiber.Ctx) error {
	run, err := h.sched.RunNow(c.Context(), models.ReasonManual)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "scrape run failed")
	}
	return jsonSuccess(c, run)
}

// Stats returns catalog statistics plus the most recent scrape run.
func (h *ScrapeHandler) Stats(c fiber.Ctx) error {
	stats, err := h.db.GetStats(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch stats")
	}

	return jsonSuccess(c, fiber.Map{
		"total_plans":                stats.TotalPlans,
		"sources":                    stats.Sources,
		"avg_claim_settlement_ratio": stats.AvgCSR,
		"last_run":                   h.sched.LastRun(),
	})
}
