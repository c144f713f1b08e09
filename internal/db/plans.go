package db

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"terminsure/internal/models"
)

// UpsertOutcome reports how an automated upsert was applied.
type UpsertOutcome int

const (
	UpsertInserted UpsertOutcome = iota
	UpsertUpdated
	UpsertSkipped
)

// planColumns is the standard column list for plan queries.
const planColumns = `id, plan_name, provider, source, sum_assured_min, sum_assured_max,
	premium_annual, policy_term_min, policy_term_max, age_min, age_max,
	claim_settlement_ratio, key_features, source_url, created_at, updated_at`

// scanPlan scans a row into a Plan struct.
func scanPlan(row pgx.Row) (*models.Plan, error) {
	var plan models.Plan
	err := row.Scan(
		&plan.ID,
		&plan.PlanName,
		&plan.Provider,
		&plan.Source,
		&plan.SumAssuredMin,
		&plan.SumAssuredMax,
		&plan.PremiumAnnual,
		&plan.PolicyTermMin,
		&plan.PolicyTermMax,
		&plan.AgeMin,
		&plan.AgeMax,
		&plan.ClaimSettlementRatio,
		&plan.KeyFeatures,
		&plan.SourceURL,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// scanPlans scans multiple rows into a slice of Plans.
func scanPlans(rows pgx.Rows) ([]models.Plan, error) {
	defer rows.Close()

	var plans []models.Plan
	for rows.Next() {
		var plan models.Plan
		if err := rows.Scan(
			&plan.ID,
			&plan.PlanName,
			&plan.Provider,
			&plan.Source,
			&plan.SumAssuredMin,
			&plan.SumAssuredMax,
			&plan.PremiumAnnual,
			&plan.PolicyTermMin,
			&plan.PolicyTermMax,
			&plan.AgeMin,
			&plan.AgeMax,
			&plan.ClaimSettlementRatio,
			&plan.KeyFeatures,
			&plan.SourceURL,
			&plan.CreatedAt,
			&plan.UpdatedAt,
		); err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	return plans, rows.Err()
}

// UpsertPlan applies one normalized record from a scrape run. The whole
// operation is a single atomic statement: insert on a fresh identity,
// overwrite mutable fields when the existing record came from an automated
// source, and skip entirely when the existing record is manual. Manual edits
// are sticky and are never downgraded by automated ingestion.
func (d *DB) UpsertPlan(ctx context.Context, plan *models.Plan) (UpsertOutcome, error) {
	query := `
		INSERT INTO plans (plan_name, provider, source, sum_assured_min, sum_assured_max,
			premium_annual, policy_term_min, policy_term_max, age_min, age_max,
			claim_settlement_ratio, key_features, source_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT ((lower(provider)), (lower(plan_name))) DO UPDATE SET
			sum_assured_min = EXCLUDED.sum_assured_min,
			sum_assured_max = EXCLUDED.sum_assured_max,
			premium_annual = EXCLUDED.premium_annual,
			policy_term_min = EXCLUDED.policy_term_min,
			policy_term_max = EXCLUDED.policy_term_max,
			age_min = EXCLUDED.age_min,
			age_max = EXCLUDED.age_max,
			claim_settlement_ratio = EXCLUDED.claim_settlement_ratio,
			key_features = EXCLUDED.key_features,
			source_url = EXCLUDED.source_url,
			updated_at = NOW()
		WHERE plans.source <> $14
		RETURNING id, (xmax = 0) AS inserted
	`

	var id uuid.UUID
	var inserted bool
	err := d.Pool.QueryRow(ctx, query,
		plan.PlanName,
		plan.Provider,
		plan.Source,
		plan.SumAssuredMin,
		plan.SumAssuredMax,
		plan.PremiumAnnual,
		plan.PolicyTermMin,
		plan.PolicyTermMax,
		plan.AgeMin,
		plan.AgeMax,
		plan.ClaimSettlementRatio,
		plan.KeyFeatures,
		plan.SourceURL,
		models.SourceManual,
	).Scan(&id, &inserted)

	if errors.Is(err, pgx.ErrNoRows) {
		// The conflict row is manual; nothing was written.
		return UpsertSkipped, nil
	}
	if err != nil {
		return UpsertSkipped, err
	}

	plan.ID = id
	if inserted {
		return UpsertInserted, nil
	}
	return UpsertUpdated, nil
}

// PlanFilter holds the optional list filters.
type PlanFilter struct {
	Source string
	MinCSR *float64
	Search string
}

// ListPlans returns catalog plans matching the filter, ordered by claim
// settlement ratio descending.
func (d *DB) ListPlans(ctx context.Context, filter PlanFilter) ([]models.Plan, error) {
	var conditions []string
	var args []any

	if filter.Source != "" {
		args = append(args, filter.Source)
		conditions = append(conditions, "source = $"+strconv.Itoa(len(args)))
	}
	if filter.MinCSR != nil {
		args = append(args, *filter.MinCSR)
		conditions = append(conditions, "claim_settlement_ratio >= $"+strconv.Itoa(len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := strconv.Itoa(len(args))
		conditions = append(conditions, "(plan_name ILIKE $"+n+" OR provider ILIKE $"+n+")")
	}

	query := "SELECT " + planColumns + " FROM plans"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY claim_settlement_ratio DESC, plan_name"

	rows, err := d.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanPlans(rows)
}

// GetPlan returns a single plan by its identifier.
func (d *DB) GetPlan(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
	query := "SELECT " + planColumns + " FROM plans WHERE id = $1"
	return scanPlan(d.Pool.QueryRow(ctx, query, id))
}

// GetPlansByNames resolves plan names case-insensitively against the catalog.
// Names that do not resolve are simply absent from the result.
func (d *DB) GetPlansByNames(ctx context.Context, names []string) ([]models.Plan, error) {
	if len(names) == 0 {
		return nil, nil
	}
	lowered := make([]string, len(names))
	for i, n := range names {
		lowered[i] = strings.ToLower(strings.TrimSpace(n))
	}

	query := "SELECT " + planColumns + " FROM plans WHERE lower(plan_name) = ANY($1)"
	rows, err := d.Pool.Query(ctx, query, lowered)
	if err != nil {
		return nil, err
	}
	return scanPlans(rows)
}

// CreatePlan inserts a plan through the manual path. Manual plans bypass the
// merge algorithm and always win over automated ingestion.
func (d *DB) CreatePlan(ctx context.Context, plan *models.Plan) error {
	plan.Source = models.SourceManual

	query := `
		INSERT INTO plans (plan_name, provider, source, sum_assured_min, sum_assured_max,
			premium_annual, policy_term_min, policy_term_max, age_min, age_max,
			claim_settlement_ratio, key_features, source_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`

	err := d.Pool.QueryRow(ctx, query,
		plan.PlanName,
		plan.Provider,
		plan.Source,
		plan.SumAssuredMin,
		plan.SumAssuredMax,
		plan.PremiumAnnual,
		plan.PolicyTermMin,
		plan.PolicyTermMax,
		plan.AgeMin,
		plan.AgeMax,
		plan.ClaimSettlementRatio,
		plan.KeyFeatures,
		plan.SourceURL,
	).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicatePlan
		}
		return err
	}
	return nil
}

// PlanUpdate holds optional fields for a partial manual update. Nil fields
// are left unchanged.
type PlanUpdate struct {
	PlanName             *string  `json:"plan_name"`
	Provider             *string  `json:"provider"`
	SumAssuredMin        *float64 `json:"sum_assured_min"`
	SumAssuredMax        *float64 `json:"sum_assured_max"`
	PremiumAnnual        *float64 `json:"premium_annual"`
	PolicyTermMin        *int     `json:"policy_term_min"`
	PolicyTermMax        *int     `json:"policy_term_max"`
	AgeMin               *int     `json:"age_min"`
	AgeMax               *int     `json:"age_max"`
	ClaimSettlementRatio *float64 `json:"claim_settlement_ratio"`
	KeyFeatures          []string `json:"key_features"`
	SourceURL            *string  `json:"source_url"`
}

// UpdatePlan applies a partial update to a plan. This is the direct-edit
// path: it bypasses the merge algorithm and works on any plan regardless of
// its source.
func (d *DB) UpdatePlan(ctx context.Context, id uuid.UUID, updates PlanUpdate) (*models.Plan, error) {
	var sets []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if updates.PlanName != nil {
		add("plan_name", *updates.PlanName)
	}
	if updates.Provider != nil {
		add("provider", *updates.Provider)
	}
	if updates.SumAssuredMin != nil {
		add("sum_assured_min", *updates.SumAssuredMin)
	}
	if updates.SumAssuredMax != nil {
		add("sum_assured_max", *updates.SumAssuredMax)
	}
	if updates.PremiumAnnual != nil {
		add("premium_annual", *updates.PremiumAnnual)
	}
	if updates.PolicyTermMin != nil {
		add("policy_term_min", *updates.PolicyTermMin)
	}
	if updates.PolicyTermMax != nil {
		add("policy_term_max", *updates.PolicyTermMax)
	}
	if updates.AgeMin != nil {
		add("age_min", *updates.AgeMin)
	}
	if updates.AgeMax != nil {
		add("age_max", *updates.AgeMax)
	}
	if updates.ClaimSettlementRatio != nil {
		add("claim_settlement_ratio", *updates.ClaimSettlementRatio)
	}
	if updates.KeyFeatures != nil {
		add("key_features", updates.KeyFeatures)
	}
	if updates.SourceURL != nil {
		add("source_url", *updates.SourceURL)
	}

	if len(sets) == 0 {
		return d.GetPlan(ctx, id)
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)
	query := fmt.Sprintf("UPDATE plans SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), planColumns)

	plan, err := scanPlan(d.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicatePlan
		}
		return nil, err
	}
	return plan, nil
}

// DeletePlan removes a plan by its identifier.
func (d *DB) DeletePlan(ctx context.Context, id uuid.UUID) error {
	result, err := d.Pool.Exec(ctx, "DELETE FROM plans WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrPlanNotFound
	}
	return nil
}

// Stats summarizes the catalog: totals, per-source counts, and the average
// claim settlement ratio rounded to two decimals.
type Stats struct {
	TotalPlans int64            `json:"total_plans"`
	Sources    map[string]int64 `json:"sources"`
	AvgCSR     float64          `json:"avg_claim_settlement_ratio"`
}

// GetStats computes catalog statistics.
func (d *DB) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{Sources: make(map[string]int64)}

	rows, err := d.Pool.Query(ctx, "SELECT source, COUNT(*) FROM plans GROUP BY source")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var source string
		var count int64
		if err := rows.Scan(&source, &count); err != nil {
			return nil, err
		}
		stats.Sources[source] = count
		stats.TotalPlans += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var avg *float64
	if err := d.Pool.QueryRow(ctx, "SELECT AVG(claim_settlement_ratio) FROM plans").Scan(&avg); err != nil {
		return nil, err
	}
	if avg != nil {
		stats.AvgCSR = math.Round(*avg*100) / 100
	}

	return stats, nil
}
