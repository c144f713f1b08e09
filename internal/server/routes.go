package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"terminsure/internal/advisor"
	"terminsure/internal/db"
	"terminsure/internal/handlers/api"
	"terminsure/internal/scheduler"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(database *db.DB, sched *scheduler.Scheduler, engine *advisor.Engine) {
	healthHandler := api.NewHealthHandler(database)
	planHandler := api.NewPlanHandler(database)
	advisorHandler := api.NewAdvisorHandler(engine)
	scrapeHandler := api.NewScrapeHandler(database, sched)

	s.App.Get("/api/health", healthHandler.Check)

	// Catalog routes
	s.App.Get("/api/plans", planHandler.List)
	s.App.Post("/api/plans", planHandler.Create)
	s.App.Get("/api/plans/:id", planHandler.Get)
	s.App.Put("/api/plans/:id", planHandler.Update)
	s.App.Delete("/api/plans/:id", planHandler.Delete)

	// Advisory routes
	s.App.Post("/api/recommend", advisorHandler.Recommend)
	s.App.Post("/api/compare", advisorHandler.Compare)
	s.App.Post("/api/chat", advisorHandler.Chat)
	s.App.Post("/api/premium-estimate", advisorHandler.PremiumEstimate)

	// Ingestion routes
	s.App.Post("/api/scrape", scrapeHandler.Trigger)
	s.App.Get("/api/stats", scrapeHandler.Stats)

	// Prometheus exposition
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
