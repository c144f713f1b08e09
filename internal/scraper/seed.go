package scraper

import "context"

// SeedSource provides a built-in catalog of well-known term plans so a cold
// database is never the normal case, even when every remote source is down.
type SeedSource struct{}

// NewSeedSource creates the seed adapter.
func NewSeedSource() *SeedSource {
	return &SeedSource{}
}

func (s *SeedSource) Name() string {
	return "seed"
}

// Fetch returns the built-in listings. It never fails.
func (s *SeedSource) Fetch(ctx context.Context) ([]RawListing, error) {
	return []RawListing{
		{
			PlanName:             "Click 2 Protect Super",
			Provider:             "HDFC Life",
			SumAssuredMin:        "25L",
			SumAssuredMax:        "20Cr",
			PremiumAnnual:        "14500",
			PolicyTermMin:        "10",
			PolicyTermMax:        "40",
			AgeMin:               "18",
			AgeMax:               "65",
			ClaimSettlementRatio: "99.5",
			Features: []string{
				"Return of premium option",
				"Waiver of premium on critical illness",
				"Life stage cover enhancement",
			},
			SourceURL: "https://www.hdfclife.com/term-insurance-plans/click-2-protect-super",
		},
		{
			PlanName:             "iProtect Smart",
			Provider:             "ICICI Prudential",
			SumAssuredMin:        "50L",
			SumAssuredMax:        "10Cr",
			PremiumAnnual:        "12800",
			PolicyTermMin:        "5",
			PolicyTermMax:        "40",
			AgeMin:               "18",
			AgeMax:               "65",
			ClaimSettlementRatio: "97.8",
			Features: []string{
				"Terminal illness payout",
				"Accidental death benefit rider",
				"Premium waiver on disability",
			},
			SourceURL: "https://www.iciciprulife.com/term-insurance-plans/iprotect-smart.html",
		},
		{
			PlanName:             "Smart Secure Plus",
			Provider:             "Max Life",
			SumAssuredMin:        "20L",
			SumAssuredMax:        "5Cr",
			PremiumAnnual:        "11900",
			PolicyTermMin:        "10",
			PolicyTermMax:        "50",
			AgeMin:               "18",
			AgeMax:               "60",
			ClaimSettlementRatio: "99.3",
			Features: []string{
				"Joint life cover option",
				"Special exit value",
				"Voluntary sum assured top-up",
			},
			SourceURL: "https://www.maxlifeinsurance.com/term-insurance-plans/smart-secure-plus",
		},
		{
			PlanName:             "New Tech Term",
			Provider:             "LIC",
			SumAssuredMin:        "50L",
			SumAssuredMax:        "5Cr",
			PremiumAnnual:        "15200",
			PolicyTermMin:        "10",
			PolicyTermMax:        "40",
			AgeMin:               "18",
			AgeMax:               "65",
			ClaimSettlementRatio: "98.6",
			Features: []string{
				"Level and increasing sum assured options",
				"Single and limited premium payment",
			},
			SourceURL: "https://licindia.in/new-tech-term",
		},
		{
			PlanName:             "Sampoorna Raksha Supreme",
			Provider:             "Tata AIA",
			SumAssuredMin:        "50L",
			SumAssuredMax:        "2Cr",
			PremiumAnnual:        "13100",
			PolicyTermMin:        "10",
			PolicyTermMax:        "40",
			AgeMin:               "18",
			AgeMax:               "65",
			ClaimSettlementRatio: "99.0",
			Features: []string{
				"Whole life cover option till age 100",
				"Inbuilt payor accelerator benefit",
			},
			SourceURL: "https://www.tataaia.com/term-insurance-plans/sampoorna-raksha-supreme",
		},
	}, nil
}
