package scoring

import "strings"

// Factors holds the seven sub-scores, each within [0,100].
type Factors struct {
	CompanySize        float64 `json:"companySize"`
	Industry           float64 `json:"industry"`
	Engagement         float64 `json:"engagement"`
	DecisionMakerLevel float64 `json:"decisionMakerLevel"`
	TechStack          float64 `json:"techStack"`
	FundingStatus      float64 `json:"fundingStatus"`
	RecentActivity     float64 `json:"recentActivity"`
}

// Map returns the factors keyed by factor name, for factor breakdown payloads.
func (f Factors) Map() map[string]float64 {
	return map[string]float64{
		FactorCompanySize:        f.CompanySize,
		FactorIndustry:           f.Industry,
		FactorEngagement:         f.Engagement,
		FactorDecisionMakerLevel: f.DecisionMakerLevel,
		FactorTechStack:          f.TechStack,
		FactorFundingStatus:      f.FundingStatus,
		FactorRecentActivity:     f.RecentActivity,
	}
}

// highValueIndustries convert measurably better than the long tail.
var highValueIndustries = map[string]struct{}{
	"technology": {},
	"finance":    {},
	"healthcare": {},
	"saas":       {},
	"enterprise": {},
}

// cSuiteTitles is the set of titles treated as top-level decision makers.
var cSuiteTitles = map[string]struct{}{
	"ceo": {},
	"cto": {},
	"cfo": {},
	"cmo": {},
	"coo": {},
}

// marketingTechStack is the reference set of marketing/sales platforms whose
// presence signals tooling affinity.
var marketingTechStack = map[string]struct{}{
	"salesforce": {},
	"hubspot":    {},
	"marketo":    {},
	"pardot":     {},
	"eloqua":     {},
}

// ComputeFactors evaluates the seven sub-scores for a lead profile.
// Every sub-score is a pure function of its own slice of the profile;
// none depends on another.
func ComputeFactors(p Profile) Factors {
	return Factors{
		CompanySize:        scoreCompanySize(p.CompanyEmployees),
		Industry:           scoreIndustry(p.Industry),
		Engagement:         scoreEngagement(p.Engagement),
		DecisionMakerLevel: scoreDecisionMakers(p.DecisionMakers),
		TechStack:          scoreTechStack(p.TechStack),
		FundingStatus:      scoreFunding(p.FundingStage),
		RecentActivity:     scoreRecentActivity(p.Activity),
	}
}

// scoreCompanySize buckets the employee count. Mid-size and larger companies
// have budget and buying processes worth pursuing; unknown size is neutral.
func scoreCompanySize(employees *float64) float64 {
	if employees == nil {
		return 50
	}
	count := *employees
	switch {
	case count < 10:
		return 30
	case count < 50:
		return 50
	case count < 200:
		return 70
	case count < 1000:
		return 85
	default:
		return 95
	}
}

// scoreIndustry rewards verticals with proven conversion rates.
func scoreIndustry(industry *string) float64 {
	if industry == nil {
		return 50
	}
	normalized := strings.ToLower(strings.TrimSpace(*industry))
	if _, ok := highValueIndustries[normalized]; ok {
		return 85
	}
	return 60
}

// scoreEngagement starts at a base and adds bonuses per behavioral signal.
// A lead with no engagement data at all scores below the base: silence is a
// weaker signal than tracked-but-low activity.
func scoreEngagement(m *EngagementMetrics) float64 {
	if m == nil {
		return 40
	}

	score := 50.0
	if m.EmailOpens > 3 {
		score += 20
	}
	if m.WebsiteVisits > 5 {
		score += 15
	}
	if m.ContentDownloads > 0 {
		score += 15
	}

	return clampFloat(score, 0, 100)
}

// scoreDecisionMakers evaluates the most senior known contact.
// Checked in priority order: C-suite, then VP, then director.
func scoreDecisionMakers(makers []DecisionMaker) float64 {
	if len(makers) == 0 {
		return 30
	}

	hasVP := false
	hasDirector := false
	for _, maker := range makers {
		title := strings.ToLower(strings.TrimSpace(maker.Title))
		if _, ok := cSuiteTitles[title]; ok {
			return 95
		}
		if strings.Contains(title, "vp") || strings.Contains(title, "vice president") {
			hasVP = true
		}
		if strings.Contains(title, "director") {
			hasDirector = true
		}
	}

	if hasVP {
		return 80
	}
	if hasDirector {
		return 65
	}
	return 50
}

// scoreTechStack counts matches against the marketing platform reference set.
// Each match adds 15 points over the neutral base, capped at 100.
func scoreTechStack(stack []string) float64 {
	if len(stack) == 0 {
		return 50
	}

	matches := 0
	for _, name := range stack {
		if _, ok := marketingTechStack[strings.ToLower(strings.TrimSpace(name))]; ok {
			matches++
		}
	}

	score := 50 + 15*float64(matches)
	if score > 100 {
		return 100
	}
	return score
}

// scoreFunding buckets the funding stage. Late-stage companies buy; unknown
// stages rank below the neutral default because they are usually bootstrap
// or pre-seed operations.
func scoreFunding(stage *string) float64 {
	if stage == nil {
		return 50
	}
	switch strings.ToLower(strings.TrimSpace(*stage)) {
	case "series-c", "series-d", "ipo":
		return 95
	case "series-b":
		return 80
	case "series-a":
		return 65
	case "seed":
		return 50
	default:
		return 40
	}
}

// staleActivityDays stands in for a missing recency value; it lands in the
// worst bucket.
const staleActivityDays = 999

// scoreRecentActivity rewards recency. Leads active in the last week convert
// at a multiple of stale ones.
func scoreRecentActivity(a *ActivityMetrics) float64 {
	if a == nil {
		return 40
	}

	days := float64(staleActivityDays)
	if a.DaysSinceLastActivity != nil {
		days = *a.DaysSinceLastActivity
	}

	switch {
	case days < 7:
		return 90
	case days < 30:
		return 70
	case days < 90:
		return 50
	default:
		return 30
	}
}
