// Package advisor turns the plan catalog into recommendations. Hard
// constraint filtering happens in code; only ranking and explanation are
// delegated to the reasoning service, and its output is checked against the
// catalog before anything reaches a client.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"terminsure/internal/db"
	"terminsure/internal/models"
)

// Catalog is the read surface the engine needs from the plan store.
type Catalog interface {
	ListPlans(ctx context.Context, filter db.PlanFilter) ([]models.Plan, error)
	GetPlansByNames(ctx context.Context, names []string) ([]models.Plan, error)
}

// Engine produces recommendations, comparisons, and advisor chat replies.
// A nil Client is allowed; advisory operations then fail with ErrAdvisory
// while the rest of the service keeps working.
type Engine struct {
	catalog Catalog
	llm     Client
}

// NewEngine creates the engine.
func NewEngine(catalog Catalog, llm Client) *Engine {
	return &Engine{catalog: catalog, llm: llm}
}

// Recommend filters the catalog by the profile's hard constraints and asks
// the reasoning service to rank the eligible plans. Plan names in the reply
// that do not exist in the eligible set are dropped.
func (e *Engine) Recommend(ctx context.Context, profile *models.UserProfile) (*models.RecommendationResult, error) {
	plans, err := e.catalog.ListPlans(ctx, db.PlanFilter{})
	if err != nil {
		return nil, err
	}

	var eligible []models.Plan
	for _, p := range plans {
		if p.MatchesProfile(profile) {
			eligible = append(eligible, p)
		}
	}
	if len(eligible) == 0 {
		return nil, ErrNoEligiblePlans
	}

	raw, err := e.complete(ctx, recommendSystem, buildRecommendPrompt(profile, eligible))
	if err != nil {
		return nil, err
	}

	var reply struct {
		OverallSummary string              `json:"overall_summary"`
		TopPick        string              `json:"top_pick"`
		RankedPlans    []models.RankedPlan `json:"ranked_plans"`
	}
	if err := json.Unmarshal(extractJSON(raw), &reply); err != nil {
		return nil, fmt.Errorf("%w: unparseable reply: %v", ErrAdvisory, err)
	}

	byName := indexByName(eligible)
	var ranked []models.RankedPlan
	for _, rp := range reply.RankedPlans {
		plan, ok := byName[nameKey(rp.PlanName)]
		if !ok {
			slog.Warn("dropping unknown plan from ranking", "plan_name", rp.PlanName)
			continue
		}
		// Canonical spelling from the catalog wins.
		rp.PlanName = plan.PlanName
		rp.Provider = plan.Provider
		ranked = append(ranked, rp)
	}
	if len(ranked) == 0 {
		return nil, fmt.Errorf("%w: reply contained no known plans", ErrAdvisory)
	}

	topPick := ranked[0].PlanName
	if plan, ok := byName[nameKey(reply.TopPick)]; ok {
		topPick = plan.PlanName
	}

	return &models.RecommendationResult{
		OverallSummary:     reply.OverallSummary,
		TopPick:            topPick,
		RankedPlans:        ranked,
		TotalPlansAnalyzed: len(eligible),
	}, nil
}

// Compare resolves the requested plan names against the catalog and asks the
// reasoning service for a side-by-side verdict.
func (e *Engine) Compare(ctx context.Context, profile *models.UserProfile, names []string) (*models.ComparisonResult, error) {
	plans, err := e.catalog.GetPlansByNames(ctx, names)
	if err != nil {
		return nil, err
	}
	if len(plans) < 2 {
		return nil, ErrNotEnoughPlans
	}

	raw, err := e.complete(ctx, compareSystem, buildComparePrompt(profile, plans))
	if err != nil {
		return nil, err
	}

	var reply models.ComparisonResult
	if err := json.Unmarshal(extractJSON(raw), &reply); err != nil {
		return nil, fmt.Errorf("%w: unparseable reply: %v", ErrAdvisory, err)
	}

	byName := indexByName(plans)
	var entries []models.ComparisonEntry
	for _, entry := range reply.Plans {
		plan, ok := byName[nameKey(entry.PlanName)]
		if !ok {
			slog.Warn("dropping unknown plan from comparison", "plan_name", entry.PlanName)
			continue
		}
		entry.PlanName = plan.PlanName
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: reply contained no known plans", ErrAdvisory)
	}
	reply.Plans = entries

	if plan, ok := byName[nameKey(reply.BetterPick)]; ok {
		reply.BetterPick = plan.PlanName
	} else {
		reply.BetterPick = entries[0].PlanName
	}
	return &reply, nil
}

// Chat answers a free-form question, optionally grounded in the user's
// profile and previously recommended plans. The exchange is stateless.
func (e *Engine) Chat(ctx context.Context, message string, profile *models.UserProfile, topPlans []models.RankedPlan) (string, error) {
	reply, err := e.complete(ctx, chatSystem, buildChatPrompt(message, profile, topPlans))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

func (e *Engine) complete(ctx context.Context, systemMsg, userMsg string) (string, error) {
	if e.llm == nil {
		return "", fmt.Errorf("%w: no completion client configured", ErrAdvisory)
	}
	reply, err := e.llm.Complete(ctx, systemMsg, userMsg)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAdvisory, err)
	}
	return reply, nil
}

// extractJSON strips markdown code fences and any prose around the first
// JSON object in the reply.
func extractJSON(raw string) []byte {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		s = s[start : end+1]
	}
	return []byte(s)
}

func indexByName(plans []models.Plan) map[string]*models.Plan {
	byName := make(map[string]*models.Plan, len(plans))
	for i := range plans {
		byName[nameKey(plans[i].PlanName)] = &plans[i]
	}
	return byName
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
