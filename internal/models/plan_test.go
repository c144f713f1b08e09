package models

import "testing"

func validPlan() *Plan {
	return &Plan{
		PlanName:             "Shield Plus",
		Provider:             "Acme Life",
		Source:               "policybazaar",
		SumAssuredMin:        25,
		SumAssuredMax:        200,
		PremiumAnnual:        12000,
		PolicyTermMin:        10,
		PolicyTermMax:        40,
		AgeMin:               18,
		AgeMax:               65,
		ClaimSettlementRatio: 98.5,
	}
}

func TestPlanValidate(t *testing.T) {
	if err := validPlan().Validate(); err != nil {
		t.Fatalf("valid plan rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Plan)
		field  string
	}{
		{"short plan name", func(p *Plan) { p.PlanName = "X" }, "plan_name"},
		{"short provider", func(p *Plan) { p.Provider = "" }, "provider"},
		{"zero sum assured", func(p *Plan) { p.SumAssuredMin = 0 }, "sum_assured"},
		{"inverted sum assured", func(p *Plan) { p.SumAssuredMin = 300 }, "sum_assured"},
		{"zero premium", func(p *Plan) { p.PremiumAnnual = 0 }, "premium_annual"},
		{"negative premium", func(p *Plan) { p.PremiumAnnual = -100 }, "premium_annual"},
		{"zero term", func(p *Plan) { p.PolicyTermMin = 0 }, "policy_term"},
		{"inverted term", func(p *Plan) { p.PolicyTermMin = 45 }, "policy_term"},
		{"age out of bounds", func(p *Plan) { p.AgeMax = 120 }, "age"},
		{"inverted age", func(p *Plan) { p.AgeMin = 70 }, "age"},
		{"csr above 100", func(p *Plan) { p.ClaimSettlementRatio = 100.5 }, "claim_settlement_ratio"},
		{"negative csr", func(p *Plan) { p.ClaimSettlementRatio = -1 }, "claim_settlement_ratio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := validPlan()
			tt.mutate(plan)

			err := plan.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
		})
	}
}

func TestMatchesProfile(t *testing.T) {
	profile := &UserProfile{
		Age:           30,
		SumAssured:    50,
		PremiumBudget: 15000,
		PolicyTerm:    30,
		MinCSR:        95,
	}

	if !validPlan().MatchesProfile(profile) {
		t.Fatal("expected plan to match profile")
	}

	tests := []struct {
		name   string
		mutate func(*Plan)
	}{
		{"age below entry window", func(p *Plan) { p.AgeMin = 35 }},
		{"age above entry window", func(p *Plan) { p.AgeMax = 25 }},
		{"cover below plan minimum", func(p *Plan) { p.SumAssuredMin = 100 }},
		{"cover above plan maximum", func(p *Plan) { p.SumAssuredMax = 40 }},
		{"premium over budget", func(p *Plan) { p.PremiumAnnual = 20000 }},
		{"term below plan minimum", func(p *Plan) { p.PolicyTermMin = 35 }},
		{"term above plan maximum", func(p *Plan) { p.PolicyTermMax = 25 }},
		{"csr below threshold", func(p *Plan) { p.ClaimSettlementRatio = 90 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := validPlan()
			tt.mutate(plan)
			if plan.MatchesProfile(profile) {
				t.Error("expected plan rejected by profile")
			}
		})
	}
}

func TestMatchesProfileBoundaries(t *testing.T) {
	plan := validPlan()
	// Exact boundary values are inclusive.
	profile := &UserProfile{
		Age:           18,
		SumAssured:    25,
		PremiumBudget: 12000,
		PolicyTerm:    10,
		MinCSR:        98.5,
	}
	if !plan.MatchesProfile(profile) {
		t.Error("expected boundary values to match")
	}
}
