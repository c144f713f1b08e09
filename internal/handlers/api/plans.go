package api

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"terminsure/internal/db"
	"terminsure/internal/models"
)

// PlanHandler handles catalog CRUD operations via JSON API.
type PlanHandler struct {
	db *db.DB
}

// NewPlanHandler creates a new API plan handler.
func NewPlanHandler(database *db.DB) *PlanHandler {
	return &PlanHandler{db: database}
}

// List returns catalog plans, optionally filtered by source, minimum claim
// settlement ratio, and a name/provider search term.
func (h *PlanHandler) List(c fiber.Ctx) error {
	filter := db.PlanFilter{
		Source: c.Query("source", ""),
		Search: c.Query("search", ""),
	}
	if raw := c.Query("min_csr", ""); raw != "" {
		minCSR, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "min_csr must be a number")
		}
		filter.MinCSR = &minCSR
	}

	plans, err := h.db.ListPlans(c.Context(), filter)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch plans")
	}
	if plans == nil {
		plans = []models.Plan{}
	}
	return jsonSuccess(c, plans)
}

// Get returns a single plan by ID.
func (h *PlanHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid plan id")
	}

	plan, err := h.db.GetPlan(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrPlanNotFound) {
			return jsonError(c, fiber.StatusNotFound, "plan not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch plan")
	}
	return jsonSuccess(c, plan)
}

type planBody struct {
	PlanName             string   `json:"plan_name"`
	Provider             string   `json:"provider"`
	SumAssuredMin        float64  `json:"sum_assured_min"`
	SumAssuredMax        float64  `json:"sum_assured_max"`
	PremiumAnnual        float64  `json:"premium_annual"`
	PolicyTermMin        int      `json:"policy_term_min"`
	PolicyTermMax        int      `json:"policy_term_max"`
	AgeMin               int      `json:"age_min"`
	AgeMax               int      `json:"age_max"`
	ClaimSettlementRatio float64  `json:"claim_settlement_ratio"`
	KeyFeatures          []string `json:"key_features"`
	SourceURL            string   `json:"source_url"`
}

// Create inserts a manual plan. Manual plans are never overwritten by
// automated scrape runs.
func (h *PlanHandler) Create(c fiber.Ctx) error {
	var body planBody
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	plan := &models.Plan{
		PlanName:             body.PlanName,
		Provider:             body.Provider,
		SumAssuredMin:        body.SumAssuredMin,
		SumAssuredMax:        body.SumAssuredMax,
		PremiumAnnual:        body.PremiumAnnual,
		PolicyTermMin:        body.PolicyTermMin,
		PolicyTermMax:        body.PolicyTermMax,
		AgeMin:               body.AgeMin,
		AgeMax:               body.AgeMax,
		ClaimSettlementRatio: body.ClaimSettlementRatio,
		KeyFeatures:          body.KeyFeatures,
		SourceURL:            body.SourceURL,
	}
	if err := plan.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.db.CreatePlan(c.Context(), plan); err != nil {
		if errors.Is(err, db.ErrDuplicatePlan) {
			return jsonError(c, fiber.StatusConflict, "a plan with this provider and name already exists")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to create plan")
	}
	return jsonCreated(c, plan)
}

// Update applies a partial edit to a plan. The merged result must still
// satisfy the catalog invariants.
func (h *PlanHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid plan id")
	}

	var updates db.PlanUpdate
	if err := json.Unmarshal(c.Body(), &updates); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	existing, err := h.db.GetPlan(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrPlanNotFound) {
			return jsonError(c, fiber.StatusNotFound, "plan not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch plan")
	}

	merged := applyUpdates(*existing, updates)
	if err := merged.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	plan, err := h.db.UpdatePlan(c.Context(), id, updates)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrPlanNotFound):
			return jsonError(c, fiber.StatusNotFound, "plan not found")
		case errors.Is(err, db.ErrDuplicatePlan):
			return jsonError(c, fiber.StatusConflict, "a plan with this provider and name already exists")
		default:
			return jsonError(c, fiber.StatusInternalServerError, "failed to update plan")
		}
	}
	return jsonSuccess(c, plan)
}

// Delete removes a plan by ID.
func (h *PlanHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid plan id")
	}

	if err := h.db.DeletePlan(c.Context(), id); err != nil {
		if errors.Is(err, db.ErrPlanNotFound) {
			return jsonError(c, fiber.StatusNotFound, "plan not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete plan")
	}
	return jsonSuccess(c, fiber.Map{"deleted": id})
}

// applyUpdates overlays non-nil update fields on a copy of the plan so the
// merged result can be validated before touching the database.
func applyUpdates(plan models.Plan, updates db.PlanUpdate) models.Plan {
	if updates.PlanName != nil {
		plan.PlanName = *updates.PlanName
	}
	if updates.Provider != nil {
		plan.Provider = *updates.Provider
	}
	if updates.SumAssuredMin != nil {
		plan.SumAssuredMin = *updates.SumAssuredMin
	}
	if updates.SumAssuredMax != nil {
		plan.SumAssuredMax = *updates.SumAssuredMax
	}
	if updates.PremiumAnnual != nil {
		plan.PremiumAnnual = *updates.PremiumAnnual
	}
	if updates.PolicyTermMin != nil {
		plan.PolicyTermMin = *updates.PolicyTermMin
	}
	if updates.PolicyTermMax != nil {
		plan.PolicyTermMax = *updates.PolicyTermMax
	}
	if updates.AgeMin != nil {
		plan.AgeMin = *updates.AgeMin
	}
	if updates.AgeMax != nil {
		plan.AgeMax = *updates.AgeMax
	}
	if updates.ClaimSettlementRatio != nil {
		plan.ClaimSettlementRatio = *updates.ClaimSettlementRatio
	}
	if updates.KeyFeatures != nil {
		plan.KeyFeatures = updates.KeyFeatures
	}
	if updates.SourceURL != nil {
		plan.SourceURL = *updates.SourceURL
	}
	return plan
}
