package scoring

import (
	"fmt"
	"math"
)

// Factor names accepted as weight override keys.
const (
	FactorCompanySize        = "companySize"
	FactorIndustry           = "industry"
	FactorEngagement         = "engagement"
	FactorDecisionMakerLevel = "decisionMakerLevel"
	FactorTechStack          = "techStack"
	FactorFundingStatus      = "fundingStatus"
	FactorRecentActivity     = "recentActivity"
)

// weightSumTolerance absorbs float accumulation error when checking that
// weights sum to exactly 1.0.
const weightSumTolerance = 1e-9

// Weights defines how much each factor contributes to the final score.
// The seven weights must sum to 1.0; Validate enforces this at startup so
// weight tuning cannot silently skew the 0-100 score range.
type Weights struct {
	CompanySize        float64 `json:"companySize"`
	Industry           float64 `json:"industry"`
	Engagement         float64 `json:"engagement"`
	DecisionMakerLevel float64 `json:"decisionMakerLevel"`
	TechStack          float64 `json:"techStack"`
	FundingStatus      float64 `json:"fundingStatus"`
	RecentActivity     float64 `json:"recentActivity"`
}

// DefaultWeights returns the shipped weight table.
func DefaultWeights() Weights {
	return Weights{
		CompanySize:        0.15,
		Industry:           0.20,
		Engagement:         0.25,
		DecisionMakerLevel: 0.15,
		TechStack:          0.10,
		FundingStatus:      0.10,
		RecentActivity:     0.05,
	}
}

// NewWeights returns the default table with the given overrides applied.
// Unknown factor names and tables that do not sum to 1.0 are rejected.
func NewWeights(overrides map[string]float64) (Weights, error) {
	w := DefaultWeights()

	for name, value := range overrides {
		switch name {
		case FactorCompanySize:
			w.CompanySize = value
		case FactorIndustry:
			w.Industry = value
		case FactorEngagement:
			w.Engagement = value
		case FactorDecisionMakerLevel:
			w.DecisionMakerLevel = value
		case FactorTechStack:
			w.TechStack = value
		case FactorFundingStatus:
			w.FundingStatus = value
		case FactorRecentActivity:
			w.RecentActivity = value
		default:
			return Weights{}, fmt.Errorf("unknown scoring factor %q", name)
		}
	}

	if err := w.Validate(); err != nil {
		return Weights{}, err
	}
	return w, nil
}

// Validate checks that every weight is within [0,1] and the table sums to 1.0.
func (w Weights) Validate() error {
	values := map[string]float64{
		FactorCompanySize:        w.CompanySize,
		FactorIndustry:           w.Industry,
		FactorEngagement:         w.Engagement,
		FactorDecisionMakerLevel: w.DecisionMakerLevel,
		FactorTechStack:          w.TechStack,
		FactorFundingStatus:      w.FundingStatus,
		FactorRecentActivity:     w.RecentActivity,
	}

	sum := 0.0
	for name, value := range values {
		if value < 0 || value > 1 {
			return fmt.Errorf("scoring weight %q out of range: %v", name, value)
		}
		sum += value
	}

	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("scoring weights must sum to 1.0, got %v", sum)
	}
	return nil
}

// Total computes the weighted sum over the factors, rounded to the nearest
// integer and clamped to [0,100].
func (w Weights) Total(f Factors) int {
	total := f.CompanySize*w.CompanySize +
		f.Industry*w.Industry +
		f.Engagement*w.Engagement +
		f.DecisionMakerLevel*w.DecisionMakerLevel +
		f.TechStack*w.TechStack +
		f.FundingStatus*w.FundingStatus +
		f.RecentActivity*w.RecentActivity

	return clampScore(total)
}

func clampScore(value float64) int {
	rounded := int(math.Round(value))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

func clampFloat(value float64, min float64, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
