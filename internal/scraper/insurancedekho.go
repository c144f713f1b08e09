package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const dekhoDefaultEndpoint = "https://www.insurancedekho.com/api/v2/term-insurance/plans"

// InsuranceDekhoSource fetches term plan listings from the InsuranceDekho
// aggregator endpoint.
type InsuranceDekhoSource struct {
	endpoint string
	client   *http.Client
}

// NewInsuranceDekhoSource creates the adapter. An empty endpoint uses the
// production default; tests point it at an httptest server.
func NewInsuranceDekhoSource(endpoint string, timeout time.Duration) *InsuranceDekhoSource {
	if endpoint == "" {
		endpoint = dekhoDefaultEndpoint
	}
	return &InsuranceDekhoSource{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (s *InsuranceDekhoSource) Name() string {
	return "insurancedekho"
}

// dekhoPlan is the aggregator's wire shape for one listing.
type dekhoPlan struct {
	PlanName      string      `json:"plan_name"`
	Insurer       string      `json:"insurer"`
	MinCover      json.Number `json:"min_cover"`
	MaxCover      json.Number `json:"max_cover"`
	AnnualPremium json.Number `json:"annual_premium"`
	MinTerm       json.Number `json:"min_term"`
	MaxTerm       json.Number `json:"max_term"`
	MinEntryAge   json.Number `json:"min_entry_age"`
	MaxEntryAge   json.Number `json:"max_entry_age"`
	CSR           json.Number `json:"claim_settlement_ratio"`
	Features      []string    `json:"features"`
	DetailsURL    string      `json:"details_url"`
}

// Fetch retrieves and decodes the listing endpoint, with bounded retries on
// transient failure.
func (s *InsuranceDekhoSource) Fetch(ctx context.Context) ([]RawListing, error) {
	var listings []RawListing

	err := defaultRetry.do(ctx, "insurancedekho fetch", func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		var payload struct {
			Plans []dekhoPlan `json:"plans"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return fmt.Errorf("decode listing payload: %w", err)
		}

		listings = listings[:0]
		for _, p := range payload.Plans {
			listings = append(listings, RawListing{
				PlanName:             p.PlanName,
				Provider:             p.Insurer,
				SumAssuredMin:        p.MinCover.String(),
				SumAssuredMax:        p.MaxCover.String(),
				PremiumAnnual:        p.AnnualPremium.String(),
				PolicyTermMin:        p.MinTerm.String(),
				PolicyTermMax:        p.MaxTerm.String(),
				AgeMin:               p.MinEntryAge.String(),
				AgeMax:               p.MaxEntryAge.String(),
				ClaimSettlementRatio: p.CSR.String(),
				Features:             p.Features,
				SourceURL:            p.DetailsURL,
			})
		}
		return nil
	})

	if err != nil {
		return nil, &FetchError{Source: s.Name(), Err: err}
	}
	return listings, nil
}
