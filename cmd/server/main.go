package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"terminsure/internal/advisor"
	"terminsure/internal/config"
	"terminsure/internal/db"
	"terminsure/internal/metrics"
	"terminsure/internal/scheduler"
	"terminsure/internal/scraper"
	"terminsure/internal/server"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	metrics.Init(database)

	// Reasoning service is optional; without it the catalog and scraping
	// still work and advisory endpoints report 502.
	var llm advisor.Client
	if cfg.LLMAPIKey != "" {
		client, err := advisor.NewOpenAIClient(advisor.OpenAIConfig{
			APIKey:     cfg.LLMAPIKey,
			BaseURL:    cfg.LLMBaseURL,
			Model:      cfg.LLMModel,
			Timeout:    cfg.LLMTimeout,
			MaxRetries: cfg.LLMMaxRetries,
		})
		if err != nil {
			log.Printf("Warning: failed to initialize completion client: %v", err)
		} else {
			llm = client
		}
	} else {
		log.Println("LLM_API_KEY not set, advisory endpoints are disabled")
	}
	engine := advisor.NewEngine(database, llm)

	sched := scheduler.New(database, buildSources(cfg), scheduler.Options{
		Interval:      cfg.ScrapeInterval,
		SourceTimeout: cfg.SourceTimeout,
	})

	srv := server.New(cfg)
	srv.RegisterRoutes(database, sched, engine)

	// Populates the catalog synchronously before traffic is accepted.
	sched.Start(ctx)

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()
	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	sched.Stop()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}

// buildSources assembles the scrape sources, applying overrides and disables
// from the optional sources.yaml file.
func buildSources(cfg *config.Config) []scraper.Source {
	overrides, err := config.LoadSources(cfg.SourcesFile)
	if err != nil {
		log.Printf("Warning: failed to load %s: %v", cfg.SourcesFile, err)
	}

	var sources []scraper.Source
	add := func(name string, build func(url string) scraper.Source) {
		var url string
		if override := overrides.Get(name); override != nil {
			if override.Disabled {
				log.Printf("Source %s disabled via %s", name, cfg.SourcesFile)
				return
			}
			url = override.URL
		}
		sources = append(sources, build(url))
	}

	add("seed", func(string) scraper.Source { return scraper.NewSeedSource() })
	add("policybazaar", func(url string) scraper.Source { return scraper.NewPolicyBazaarSource(url) })
	add("insurancedekho", func(url string) scraper.Source {
		return scraper.NewInsuranceDekhoSource(url, cfg.SourceTimeout)
	})
	return sources
}
