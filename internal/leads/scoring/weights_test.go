package scoring

import "testing"

func TestDefaultWeightsValidate(t *testing.T) {
	if err := DefaultWeights().Validate(); err != nil {
		t.Fatalf("default weights must validate: %v", err)
	}
}

func TestNewWeightsRejectsUnknownFactor(t *testing.T) {
	_, err := NewWeights(map[string]float64{"brandAwareness": 0.5})
	if err == nil {
		t.Fatal("expected error for unknown factor name")
	}
}

func TestNewWeightsRejectsBadSum(t *testing.T) {
	_, err := NewWeights(map[string]float64{FactorEngagement: 0.5})
	if err == nil {
		t.Fatal("expected error when overridden weights no longer sum to 1.0")
	}
}

func TestNewWeightsRejectsOutOfRange(t *testing.T) {
	_, err := NewWeights(map[string]float64{
		FactorEngagement:  1.25,
		FactorCompanySize: -0.10,
	})
	if err == nil {
		t.Fatal("expected error for weight outside [0,1]")
	}
}

func TestNewWeightsAppliesValidOverrides(t *testing.T) {
	w, err := NewWeights(map[string]float64{
		FactorEngagement:     0.30,
		FactorRecentActivity: 0.0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Engagement != 0.30 {
		t.Errorf("expected engagement weight 0.30, got %v", w.Engagement)
	}
	if w.RecentActivity != 0 {
		t.Errorf("expected recentActivity weight 0, got %v", w.RecentActivity)
	}
	if w.Industry != 0.20 {
		t.Errorf("untouched weight changed: got %v", w.Industry)
	}
}

func TestTotalWeightedSum(t *testing.T) {
	// 150 employees in a SaaS company, everything else absent.
	factors := Factors{
		CompanySize:        70,
		Industry:           85,
		Engagement:         40,
		DecisionMakerLevel: 30,
		TechStack:          50,
		FundingStatus:      50,
		RecentActivity:     40,
	}

	if got := DefaultWeights().Total(factors); got != 54 {
		t.Fatalf("expected total 54, got %d", got)
	}
}

func TestTotalClampsToRange(t *testing.T) {
	maxed := Factors{
		CompanySize:        100,
		Industry:           100,
		Engagement:         100,
		DecisionMakerLevel: 100,
		TechStack:          100,
		FundingStatus:      100,
		RecentActivity:     100,
	}
	if got := DefaultWeights().Total(maxed); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}

	if got := DefaultWeights().Total(Factors{}); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestTotalIsDeterministic(t *testing.T) {
	weights := DefaultWeights()
	factors := ComputeFactors(Profile{
		CompanyEmployees: float(150),
		Industry:         str("SaaS"),
	})

	first := weights.Total(factors)
	for i := 0; i < 10; i++ {
		again := weights.Total(ComputeFactors(Profile{
			CompanyEmployees: float(150),
			Industry:         str("SaaS"),
		}))
		if again != first {
			t.Fatalf("score varied across identical inputs: %d vs %d", first, again)
		}
	}
}
