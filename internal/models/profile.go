package models

// DefaultMinCSR is applied when a request omits min_csr.
const DefaultMinCSR = 95.0

// UserProfile is the transient input to recommendation and comparison
// requests. It is never persisted.
type UserProfile struct {
	Age           int     `json:"age"`
	SumAssured    float64 `json:"sum_assured"`
	PremiumBudget float64 `json:"premium_budget"`
	PolicyTerm    int     `json:"policy_term"`
	MinCSR        float64 `json:"min_csr"`
}

// Validate checks the profile bounds before any filtering happens.
func (u *UserProfile) Validate() error {
	if u.Age < 18 || u.Age > 70 {
		return &ValidationError{"age", "must be within 18-70"}
	}
	if u.SumAssured <= 0 {
		return &ValidationError{"sum_assured", "must be positive"}
	}
	if u.PremiumBudget <= 0 {
		return &ValidationError{"premium_budget", "must be positive"}
	}
	if u.PolicyTerm < 5 || u.PolicyTerm > 50 {
		return &ValidationError{"policy_term", "must be within 5-50 years"}
	}
	if u.MinCSR < 0 || u.MinCSR > 100 {
		return &ValidationError{"min_csr", "must be within 0-100"}
	}
	return nil
}
