package scraper

import (
	"errors"
	"testing"

	"terminsure/internal/models"
)

func validRaw() RawListing {
	return RawListing{
		PlanName:             "Click 2 Protect Super",
		Provider:             "HDFC Life",
		SumAssuredMin:        "25L",
		SumAssuredMax:        "2Cr",
		PremiumAnnual:        "₹14,500",
		PolicyTermMin:        "10",
		PolicyTermMax:        "40",
		AgeMin:               "18",
		AgeMax:               "65",
		ClaimSettlementRatio: "99.5",
		Features:             []string{"Return of premium", ""},
		SourceURL:            "https://example.com/plan",
	}
}

func TestNormalizeValidListing(t *testing.T) {
	plan, err := Normalize("seed", validRaw())
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if plan.SumAssuredMin != 25 {
		t.Errorf("expected sum assured min 25 lakhs, got %v", plan.SumAssuredMin)
	}
	if plan.SumAssuredMax != 200 {
		t.Errorf("expected 2Cr = 200 lakhs, got %v", plan.SumAssuredMax)
	}
	if plan.PremiumAnnual != 14500 {
		t.Errorf("expected premium 14500, got %v", plan.PremiumAnnual)
	}
	if plan.Source != "seed" {
		t.Errorf("expected source seed, got %q", plan.Source)
	}
	if len(plan.KeyFeatures) != 1 {
		t.Errorf("expected empty feature dropped, got %v", plan.KeyFeatures)
	}
}

func TestNormalizeSumAssuredUnits(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"50L", 50},
		{"75 Lakhs", 75},
		{"1.5Cr", 150},
		{"2 Crore", 200},
		{"5000000", 50},  // plain rupees
		{"₹1,00,000", 1}, // one lakh in rupees
		{"10", 10},       // already in lakhs
		{"", 0},
	}

	for _, tt := range tests {
		if got := parseSumAssured(tt.raw); got != tt.want {
			t.Errorf("parseSumAssured(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeAppliesAgeDefaults(t *testing.T) {
	raw := validRaw()
	raw.AgeMin = ""
	raw.AgeMax = ""

	plan, err := Normalize("seed", raw)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if plan.AgeMin != 18 || plan.AgeMax != 65 {
		t.Errorf("expected default ages 18/65, got %d/%d", plan.AgeMin, plan.AgeMax)
	}
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	raw := validRaw()
	raw.PlanName = "  Click 2\n  Protect   Super  "

	plan, err := Normalize("seed", raw)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if plan.PlanName != "Click 2 Protect Super" {
		t.Errorf("expected collapsed name, got %q", plan.PlanName)
	}
}

func TestNormalizeDropsInvalidListings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RawListing)
	}{
		{"missing plan name", func(r *RawListing) { r.PlanName = "" }},
		{"one char provider", func(r *RawListing) { r.Provider = "X" }},
		{"zero premium", func(r *RawListing) { r.PremiumAnnual = "free" }},
		{"inverted cover range", func(r *RawListing) { r.SumAssuredMin = "5Cr"; r.SumAssuredMax = "50L" }},
		{"csr above 100", func(r *RawListing) { r.ClaimSettlementRatio = "101.2" }},
		{"inverted term range", func(r *RawListing) { r.PolicyTermMin = "40"; r.PolicyTermMax = "10" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			tt.mutate(&raw)

			_, err := Normalize("seed", raw)
			if err == nil {
				t.Fatal("expected drop error, got nil")
			}
			var verr *models.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("expected ValidationError, got %T: %v", err, err)
			}
		})
	}
}
