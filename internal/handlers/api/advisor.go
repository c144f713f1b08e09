package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"

	"terminsure/internal/advisor"
	"terminsure/internal/models"
)

// AdvisorHandler exposes the recommendation engine via JSON API.
type AdvisorHandler struct {
	engine *advisor.Engine
}

// NewAdvisorHandler creates a new API advisor handler.
func NewAdvisorHandler(engine *advisor.Engine) *AdvisorHandler {
	return &AdvisorHandler{engine: engine}
}

type profileBody struct {
	Age           int      `json:"age"`
	SumAssured    float64  `json:"sum_assured"`
	PremiumBudget float64  `json:"premium_budget"`
	PolicyTerm    int      `json:"policy_term"`
	MinCSR        *float64 `json:"min_csr"`
}

// toProfile applies the min_csr default for omitted values. An explicit zero
// means the caller does not care about claim settlement history.
func (b *profileBody) toProfile() *models.UserProfile {
	minCSR := models.DefaultMinCSR
	if b.MinCSR != nil {
		minCSR = *b.MinCSR
	}
	return &models.UserProfile{
		Age:           b.Age,
		SumAssured:    b.SumAssured,
		PremiumBudget: b.PremiumBudget,
		PolicyTerm:    b.PolicyTerm,
		MinCSR:        minCSR,
	}
}

// Recommend ranks the plans matching the submitted profile.
func (h *AdvisorHandler) Recommend(c fiber.Ctx) error {
	var body profileBody
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	profile := body.toProfile()
	if err := profile.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.engine.Recommend(c.Context(), profile)
	if err != nil {
		return advisoryError(c, err)
	}
	return jsonSuccess(c, result)
}

// Compare returns a side-by-side verdict for 2-3 named plans.
func (h *AdvisorHandler) Compare(c fiber.Ctx) error {
	var body struct {
		PlanNames   []string     `json:"plan_names"`
		UserProfile *profileBody `json:"user_profile"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(body.PlanNames) < 2 || len(body.PlanNames) > 3 {
		return jsonError(c, fiber.StatusBadRequest, "plan_names must contain 2 or 3 plans")
	}

	var profile *models.UserProfile
	if body.UserProfile != nil {
		profile = body.UserProfile.toProfile()
		if err := profile.Validate(); err != nil {
			return jsonError(c, fiber.StatusBadRequest, err.Error())
		}
	}

	result, err := h.engine.Compare(c.Context(), profile, body.PlanNames)
	if err != nil {
		return advisoryError(c, err)
	}
	return jsonSuccess(c, result)
}

// Chat answers a free-form question to the advisor. The exchange is
// stateless; callers resend context with every message.
func (h *AdvisorHandler) Chat(c fiber.Ctx) error {
	var body struct {
		Message     string              `json:"message"`
		UserProfile *profileBody        `json:"user_profile"`
		TopPlans    []models.RankedPlan `json:"top_plans"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(body.Message) < 1 || len(body.Message) > 1000 {
		return jsonError(c, fiber.StatusBadRequest, "message must be 1-1000 characters")
	}

	var profile *models.UserProfile
	if body.UserProfile != nil {
		profile = body.UserProfile.toProfile()
	}

	reply, err := h.engine.Chat(c.Context(), body.Message, profile, body.TopPlans)
	if err != nil {
		return advisoryError(c, err)
	}
	return jsonSuccess(c, fiber.Map{"reply": reply})
}

// PremiumEstimate computes an indicative premium range locally, without the
// catalog or the reasoning service.
func (h *AdvisorHandler) PremiumEstimate(c fiber.Ctx) error {
	var body struct {
		Age        int     `json:"age"`
		SumAssured float64 `json:"sum_assured"`
		PolicyTerm int     `json:"policy_term"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if body.Age < 18 || body.Age > 70 {
		return jsonError(c, fiber.StatusBadRequest, "age must be within 18-70")
	}
	if body.SumAssured <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "sum_assured must be positive")
	}
	if body.PolicyTerm < 5 || body.PolicyTerm > 50 {
		return jsonError(c, fiber.StatusBadRequest, "policy_term must be within 5-50 years")
	}

	return jsonSuccess(c, advisor.EstimatePremium(body.Age, body.SumAssured, body.PolicyTerm))
}

// advisoryError maps engine errors to HTTP statuses.
func advisoryError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, advisor.ErrNoEligiblePlans):
		return jsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, advisor.ErrNotEnoughPlans):
		return jsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, advisor.ErrAdvisory):
		return jsonError(c, fiber.StatusBadGateway, err.Error())
	default:
		return jsonError(c, fiber.StatusInternalServerError, "advisory request failed")
	}
}
