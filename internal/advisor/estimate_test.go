package advisor

import "testing"

func TestEstimatePremium(t *testing.T) {
	// Age 30 falls in the 78/lakh band; 50 lakhs over 30 years carries a
	// 10% term loading: 78 * 50 * 1.10 = 4290, banded ±15%.
	est := EstimatePremium(30, 50, 30)

	if est.PremiumMin != 3646.50 {
		t.Errorf("expected premium min 3646.50, got %v", est.PremiumMin)
	}
	if est.PremiumMax != 4933.50 {
		t.Errorf("expected premium max 4933.50, got %v", est.PremiumMax)
	}
	if est.Currency != "INR" {
		t.Errorf("expected INR, got %q", est.Currency)
	}
}

func TestEstimatePremiumNoTermLoading(t *testing.T) {
	// 20-year term carries no loading: 55 * 100 = 5500 midpoint.
	est := EstimatePremium(22, 100, 20)

	if est.PremiumMin != 4675 {
		t.Errorf("expected premium min 4675, got %v", est.PremiumMin)
	}
	if est.PremiumMax != 6325 {
		t.Errorf("expected premium max 6325, got %v", est.PremiumMax)
	}
}

func TestEstimatePremiumRisesWithAge(t *testing.T) {
	young := EstimatePremium(25, 50, 20)
	old := EstimatePremium(55, 50, 20)

	if old.PremiumMin <= young.PremiumMin {
		t.Errorf("expected premium to rise with age: young=%v old=%v",
			young.PremiumMin, old.PremiumMin)
	}
}

func TestEstimatePremiumOrdering(t *testing.T) {
	for _, age := range []int{18, 30, 45, 60, 70} {
		est := EstimatePremium(age, 75, 35)
		if est.PremiumMin > est.PremiumMax {
			t.Errorf("age %d: min %v exceeds max %v", age, est.PremiumMin, est.PremiumMax)
		}
		if est.PremiumMin <= 0 {
			t.Errorf("age %d: non-positive premium %v", age, est.PremiumMin)
		}
	}
}
