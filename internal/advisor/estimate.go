package advisor

import (
	"github.com/shopspring/decimal"

	"terminsure/internal/models"
)

// Annual premium per lakh of cover, in rupees, by entry age band. Derived
// from published term plan rate cards for a healthy non-smoker.
var ageBandRates = []struct {
	maxAge int
	rate   decimal.Decimal
}{
	{24, decimal.NewFromInt(55)},
	{29, decimal.NewFromInt(62)},
	{34, decimal.NewFromInt(78)},
	{39, decimal.NewFromInt(98)},
	{44, decimal.NewFromInt(135)},
	{49, decimal.NewFromInt(190)},
	{54, decimal.NewFromInt(265)},
	{59, decimal.NewFromInt(370)},
	{70, decimal.NewFromInt(520)},
}

var (
	termLoadingPerYear = decimal.NewFromFloat(0.01)
	termLoadingBase    = 20
	estimateBand       = decimal.NewFromFloat(0.15)
)

// EstimatePremium computes an indicative annual premium range for the given
// age, cover, and term. It is a pure rate table lookup, no catalog or
// reasoning service involved: rate per lakh for the age band, a 1% loading
// per policy year beyond 20, and a ±15% market band around the midpoint.
func EstimatePremium(age int, sumAssuredLakhs float64, policyTerm int) *models.PremiumEstimate {
	rate := ageBandRates[len(ageBandRates)-1].rate
	for _, band := range ageBandRates {
		if age <= band.maxAge {
			rate = band.rate
			break
		}
	}

	base := rate.Mul(decimal.NewFromFloat(sumAssuredLakhs))

	if policyTerm > termLoadingBase {
		extraYears := decimal.NewFromInt(int64(policyTerm - termLoadingBase))
		loading := decimal.NewFromInt(1).Add(termLoadingPerYear.Mul(extraYears))
		base = base.Mul(loading)
	}

	one := decimal.NewFromInt(1)
	min := base.Mul(one.Sub(estimateBand)).Round(2)
	max := base.Mul(one.Add(estimateBand)).Round(2)

	minF, _ := min.Float64()
	maxF, _ := max.Float64()
	return &models.PremiumEstimate{
		PremiumMin: minF,
		PremiumMax: maxF,
		Currency:   "INR",
	}
}
