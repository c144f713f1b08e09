// Package scraper fetches term insurance listings from provider sites and
// normalizes them into canonical catalog plans.
package scraper

import (
	"context"
	"fmt"
)

// RawListing holds unprocessed listing data exactly as an adapter extracted
// it. It is owned by the adapter that produced it and discarded after
// normalization.
type RawListing struct {
	PlanName             string
	Provider             string
	SumAssuredMin        string
	SumAssuredMax        string
	PremiumAnnual        string
	PolicyTermMin        string
	PolicyTermMax        string
	AgeMin               string
	AgeMax               string
	ClaimSettlementRatio string
	Features             []string
	SourceURL            string
}

// Source is the capability every scrape adapter implements. The registered
// adapters form a closed set; the scheduler treats them uniformly.
type Source interface {
	// Name identifies the adapter in run summaries and as the stored
	// source of the plans it produces.
	Name() string
	// Fetch retrieves raw listings. Implementations retry transient
	// failures internally and honor ctx for timeout and cancellation.
	Fetch(ctx context.Context) ([]RawListing, error)
}

// FetchError is returned when an adapter exhausts its retry budget. The
// scheduler records it against the source; it is never surfaced to an API
// caller.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("source %s: fetch failed: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
