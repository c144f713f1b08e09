package scraper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"terminsure/internal/models"
)

// Age bounds applied when a listing omits them.
const (
	defaultAgeMin = 18
	defaultAgeMax = 65
)

// numberRegexp captures the first numeric value in a raw field.
var numberRegexp = regexp.MustCompile(`[\d,]+(?:\.\d+)?`)

// Normalize maps a RawListing to a validated canonical Plan. The returned
// error carries the drop reason; a dropped record never aborts the adapter's
// batch.
func Normalize(sourceName string, raw RawListing) (*models.Plan, error) {
	plan := &models.Plan{
		PlanName:             normalizeText(raw.PlanName),
		Provider:             normalizeText(raw.Provider),
		Source:               sourceName,
		SumAssuredMin:        parseSumAssured(raw.SumAssuredMin),
		SumAssuredMax:        parseSumAssured(raw.SumAssuredMax),
		PremiumAnnual:        parseAmount(raw.PremiumAnnual),
		PolicyTermMin:        parseIntField(raw.PolicyTermMin, 0),
		PolicyTermMax:        parseIntField(raw.PolicyTermMax, 0),
		AgeMin:               parseIntField(raw.AgeMin, defaultAgeMin),
		AgeMax:               parseIntField(raw.AgeMax, defaultAgeMax),
		ClaimSettlementRatio: parseAmount(raw.ClaimSettlementRatio),
		KeyFeatures:          normalizeFeatures(raw.Features),
		SourceURL:            strings.TrimSpace(raw.SourceURL),
	}

	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("listing %q from %s: %w", raw.PlanName, sourceName, err)
	}
	return plan, nil
}

// parseSumAssured converts a raw sum assured value to lakhs. Handles
// "50L" / "75 Lakhs", "1.5Cr" / "2 Crore", and plain rupee amounts.
func parseSumAssured(raw string) float64 {
	value := parseAmount(raw)
	if value == 0 {
		return 0
	}

	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "cr"):
		return value * 100
	case strings.Contains(lower, "l"):
		return value
	case value >= 100000:
		// Plain rupee amount.
		return value / 100000
	default:
		return value
	}
}

// parseAmount extracts the first numeric value, ignoring currency symbols
// and thousands separators.
func parseAmount(raw string) float64 {
	cleaned := strings.ReplaceAll(raw, ",", "")
	match := numberRegexp.FindString(cleaned)
	if match == "" {
		return 0
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return value
}

// parseIntField extracts an integer, falling back when the field is empty or
// unparseable.
func parseIntField(raw string, fallback int) int {
	match := numberRegexp.FindString(strings.ReplaceAll(raw, ",", ""))
	if match == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return fallback
	}
	return int(value)
}

// normalizeText collapses internal whitespace and trims the ends.
func normalizeText(s string) string {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}

// normalizeFeatures drops empty entries while preserving order.
func normalizeFeatures(features []string) []string {
	out := make([]string, 0, len(features))
	for _, f := range features {
		if cleaned := normalizeText(f); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}
