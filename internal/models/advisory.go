package models

// RankedPlan is one entry in a recommendation, referencing a plan from the
// eligible set by name.
type RankedPlan struct {
	PlanName  string `json:"plan_name"`
	Provider  string `json:"provider,omitempty"`
	Rationale string `json:"rationale"`
}

// RecommendationResult is the validated output of the recommendation engine.
type RecommendationResult struct {
	OverallSummary     string       `json:"overall_summary"`
	TopPick            string       `json:"top_pick"`
	RankedPlans        []RankedPlan `json:"ranked_plans"`
	TotalPlansAnalyzed int          `json:"total_plans_analyzed"`
}

// ComparisonEntry is the side-by-side verdict for one compared plan.
type ComparisonEntry struct {
	PlanName   string   `json:"plan_name"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Verdict    string   `json:"verdict"`
}

// ComparisonResult is the validated output of a compare request.
type ComparisonResult struct {
	Summary    string            `json:"summary"`
	Plans      []ComparisonEntry `json:"plans"`
	BetterPick string            `json:"better_pick"`
}

// PremiumEstimate is a locally computed premium range in rupees per year.
type PremiumEstimate struct {
	PremiumMin float64 `json:"premium_min"`
	PremiumMax float64 `json:"premium_max"`
	Currency   string  `json:"currency"`
}
