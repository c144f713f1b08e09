package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SourceManual marks plans created or edited directly through the API.
// Automated scrape runs never overwrite a manual plan.
const SourceManual = "manual"

// Plan represents one canonical term insurance offer in the catalog.
// Sum assured bounds are in lakhs, the annual premium is in rupees.
type Plan struct {
	ID                   uuid.UUID `json:"id"`
	PlanName             string    `json:"plan_name"`
	Provider             string    `json:"provider"`
	Source               string    `json:"source"`
	SumAssuredMin        float64   `json:"sum_assured_min"`
	SumAssuredMax        float64   `json:"sum_assured_max"`
	PremiumAnnual        float64   `json:"premium_annual"`
	PolicyTermMin        int       `json:"policy_term_min"`
	PolicyTermMax        int       `json:"policy_term_max"`
	AgeMin               int       `json:"age_min"`
	AgeMax               int       `json:"age_max"`
	ClaimSettlementRatio float64   `json:"claim_settlement_ratio"`
	KeyFeatures          []string  `json:"key_features"`
	SourceURL            string    `json:"source_url"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// ValidationError describes a rejected field. Records failing validation are
// never stored.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the catalog invariants. A plan that fails validation must
// be dropped at normalization time or rejected at the API boundary.
func (p *Plan) Validate() error {
	if len(p.PlanName) < 2 {
		return &ValidationError{"plan_name", "must be at least 2 characters"}
	}
	if len(p.Provider) < 2 {
		return &ValidationError{"provider", "must be at least 2 characters"}
	}
	if p.SumAssuredMin <= 0 || p.SumAssuredMax <= 0 {
		return &ValidationError{"sum_assured", "bounds must be positive"}
	}
	if p.SumAssuredMin > p.SumAssuredMax {
		return &ValidationError{"sum_assured", "min exceeds max"}
	}
	if p.PremiumAnnual <= 0 {
		return &ValidationError{"premium_annual", "must be positive"}
	}
	if p.PolicyTermMin < 1 || p.PolicyTermMax < 1 {
		return &ValidationError{"policy_term", "bounds must be at least 1 year"}
	}
	if p.PolicyTermMin > p.PolicyTermMax {
		return &ValidationError{"policy_term", "min exceeds max"}
	}
	if p.AgeMin < 1 || p.AgeMax > 99 {
		return &ValidationError{"age", "bounds must be within 1-99"}
	}
	if p.AgeMin > p.AgeMax {
		return &ValidationError{"age", "min exceeds max"}
	}
	if p.ClaimSettlementRatio < 0 || p.ClaimSettlementRatio > 100 {
		return &ValidationError{"claim_settlement_ratio", "must be within 0-100"}
	}
	return nil
}

// MatchesProfile reports whether the plan satisfies all five hard constraints
// of the given profile. The recommendation engine only sends matching plans
// to the reasoning service.
func (p *Plan) MatchesProfile(profile *UserProfile) bool {
	return profile.Age >= p.AgeMin && profile.Age <= p.AgeMax &&
		profile.SumAssured >= p.SumAssuredMin && profile.SumAssured <= p.SumAssuredMax &&
		profile.PremiumBudget >= p.PremiumAnnual &&
		profile.PolicyTerm >= p.PolicyTermMin && profile.PolicyTerm <= p.PolicyTermMax &&
		p.ClaimSettlementRatio >= profile.MinCSR
}
