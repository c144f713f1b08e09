package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"terminsure/internal/db"
)

var (
	plansBySourceDesc = prometheus.NewDesc(
		"terminsure_catalog_plans",
		"Current catalog plan count by source",
		[]string{"source"},
		nil,
	)
	avgCSRDesc = prometheus.NewDesc(
		"terminsure_catalog_avg_claim_settlement_ratio",
		"Average claim settlement ratio across the catalog",
		nil,
		nil,
	)

	scrapeRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "terminsure_scrape_runs_total",
			Help: "Total scrape runs by trigger reason and outcome",
		},
		[]string{"reason", "status"},
	)
	planUpserts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "terminsure_plan_upserts_total",
			Help: "Total plan records applied during scrape runs by outcome",
		},
		[]string{"outcome"},
	)
)

// CatalogCollector is a custom Prometheus collector that reads catalog
// statistics from the database on each scrape.
type CatalogCollector struct {
	db *db.DB
}

// Describe sends the metric descriptors to the channel.
func (c *CatalogCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- plansBySourceDesc
	ch <- avgCSRDesc
}

// Collect queries the database for catalog stats and emits them as gauges.
func (c *CatalogCollector) Collect(ch chan<- prometheus.Metric) {
	stats, err := c.db.GetStats(context.Background())
	if err != nil {
		slog.Error("failed to collect catalog metrics", "error", err)
		return
	}
	for source, count := range stats.Sources {
		ch <- prometheus.MustNewConstMetric(
			plansBySourceDesc,
			prometheus.GaugeValue,
			float64(count),
			source,
		)
	}
	ch <- prometheus.MustNewConstMetric(avgCSRDesc, prometheus.GaugeValue, stats.AvgCSR)
}

var initOnce sync.Once

// Init registers the custom collector and the run counters.
// Must be called once at startup.
func Init(database *db.DB) {
	initOnce.Do(func() {
		prometheus.MustRegister(&CatalogCollector{db: database})
		prometheus.MustRegister(scrapeRuns, planUpserts)
	})
}

// RecordScrapeRun counts a completed (or skipped) scrape run.
func RecordScrapeRun(reason, status string) {
	scrapeRuns.WithLabelValues(reason, status).Inc()
}

// RecordPlanUpsert counts one applied record by its outcome.
func RecordPlanUpsert(outcome string) {
	planUpserts.WithLabelValues(outcome).Inc()
}
