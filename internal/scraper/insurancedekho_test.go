package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const dekhoFixture = `{
	"plans": [
		{
			"plan_name": "iProtect Smart",
			"insurer": "ICICI Prudential",
			"min_cover": 5000000,
			"max_cover": 100000000,
			"annual_premium": 12800,
			"min_term": 5,
			"max_term": 40,
			"min_entry_age": 18,
			"max_entry_age": 65,
			"claim_settlement_ratio": 97.8,
			"features": ["Terminal illness payout"],
			"details_url": "https://example.com/iprotect-smart"
		}
	]
}`

func TestInsuranceDekhoFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(dekhoFixture))
	}))
	defer srv.Close()

	source := NewInsuranceDekhoSource(srv.URL, 5*time.Second)
	listings, err := source.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(listings))
	}

	got := listings[0]
	if got.PlanName != "iProtect Smart" || got.Provider != "ICICI Prudential" {
		t.Errorf("unexpected identity fields: %+v", got)
	}
	if got.PremiumAnnual != "12800" {
		t.Errorf("expected premium 12800, got %q", got.PremiumAnnual)
	}

	plan, err := Normalize(source.Name(), got)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if plan.SumAssuredMin != 50 {
		t.Errorf("expected 5000000 rupees = 50 lakhs, got %v", plan.SumAssuredMin)
	}
}

func TestInsuranceDekhoRetriesThenSucceeds(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(dekhoFixture))
	}))
	defer srv.Close()

	source := NewInsuranceDekhoSource(srv.URL, 5*time.Second)
	listings, err := source.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
	if len(listings) != 1 {
		t.Errorf("expected 1 listing, got %d", len(listings))
	}
}

func TestInsuranceDekhoExhaustsRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	source := NewInsuranceDekhoSource(srv.URL, 5*time.Second)
	_, err := source.Fetch(context.Background())
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}

	var ferr *FetchError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected FetchError, got %T: %v", err, err)
	}
	if ferr.Source != "insurancedekho" {
		t.Errorf("expected source insurancedekho, got %q", ferr.Source)
	}
}
