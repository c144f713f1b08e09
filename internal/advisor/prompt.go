package advisor

import (
	"fmt"
	"strings"

	"terminsure/internal/models"
)

const recommendSystem = `You are an expert Indian term life insurance advisor.
You will receive a user profile and a list of eligible plans. Every plan in
the list already satisfies the user's hard constraints; rank them on value,
claim settlement ratio, and feature fit.

Respond with ONLY a JSON object in this exact shape, no other text:
{
  "overall_summary": "2-3 sentence summary of the recommendation",
  "top_pick": "<plan_name of the best plan>",
  "ranked_plans": [
    {"plan_name": "...", "provider": "...", "rationale": "1-2 sentences"}
  ]
}
Use only plan names from the provided list, spelled exactly as given.`

const compareSystem = `You are an expert Indian term life insurance advisor.
You will receive a user profile and 2-3 plans to compare side by side.

Respond with ONLY a JSON object in this exact shape, no other text:
{
  "summary": "2-3 sentence comparison summary",
  "plans": [
    {"plan_name": "...", "strengths": ["..."], "weaknesses": ["..."], "verdict": "one sentence"}
  ],
  "better_pick": "<plan_name of the stronger plan for this user>"
}
Use only plan names from the provided list, spelled exactly as given.`

const chatSystem = `You are a friendly Indian term life insurance advisor.
Answer the user's question in plain language, in at most 150 words. Be
practical and specific. If the question is outside term life insurance,
briefly redirect to insurance topics. Do not invent plan names or prices
that were not provided.`

func formatProfile(p *models.UserProfile) string {
	return fmt.Sprintf(
		"Age: %d\nDesired sum assured: %.0f lakhs\nAnnual premium budget: ₹%.0f\nPolicy term: %d years\nMinimum claim settlement ratio: %.1f%%",
		p.Age, p.SumAssured, p.PremiumBudget, p.PolicyTerm, p.MinCSR)
}

func formatPlan(p *models.Plan) string {
	features := "none listed"
	if len(p.KeyFeatures) > 0 {
		features = strings.Join(p.KeyFeatures, "; ")
	}
	return fmt.Sprintf(
		"- %s by %s: cover %.0f-%.0f lakhs, premium ₹%.0f/year, term %d-%d years, entry age %d-%d, CSR %.1f%%, features: %s",
		p.PlanName, p.Provider, p.SumAssuredMin, p.SumAssuredMax, p.PremiumAnnual,
		p.PolicyTermMin, p.PolicyTermMax, p.AgeMin, p.AgeMax, p.ClaimSettlementRatio, features)
}

func buildRecommendPrompt(profile *models.UserProfile, plans []models.Plan) string {
	var b strings.Builder
	b.WriteString("User profile:\n")
	b.WriteString(formatProfile(profile))
	b.WriteString("\n\nEligible plans:\n")
	for i := range plans {
		b.WriteString(formatPlan(&plans[i]))
		b.WriteString("\n")
	}
	return b.String()
}

func buildComparePrompt(profile *models.UserProfile, plans []models.Plan) string {
	var b strings.Builder
	if profile != nil {
		b.WriteString("User profile:\n")
		b.WriteString(formatProfile(profile))
		b.WriteString("\n\n")
	}
	b.WriteString("Plans to compare:\n")
	for i := range plans {
		b.WriteString(formatPlan(&plans[i]))
		b.WriteString("\n")
	}
	return b.String()
}

func buildChatPrompt(message string, profile *models.UserProfile, topPlans []models.RankedPlan) string {
	var b strings.Builder
	if profile != nil {
		b.WriteString("User profile:\n")
		b.WriteString(formatProfile(profile))
		b.WriteString("\n\n")
	}
	if len(topPlans) > 0 {
		b.WriteString("Previously recommended plans:\n")
		for _, p := range topPlans {
			fmt.Fprintf(&b, "- %s by %s\n", p.PlanName, p.Provider)
		}
		b.WriteString("\n")
	}
	b.WriteString("Question: ")
	b.WriteString(message)
	return b.String()
}
