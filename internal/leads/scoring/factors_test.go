package scoring

import "testing"

func float(v float64) *float64 { return &v }
func str(v string) *string     { return &v }

func TestComputeFactorsDefaultsForEmptyProfile(t *testing.T) {
	factors := ComputeFactors(Profile{})

	expected := Factors{
		CompanySize:        50,
		Industry:           50,
		Engagement:         40,
		DecisionMakerLevel: 30,
		TechStack:          50,
		FundingStatus:      50,
		RecentActivity:     40,
	}
	if factors != expected {
		t.Fatalf("expected default factors %+v, got %+v", expected, factors)
	}
}

func TestAllFactorsStayWithinRange(t *testing.T) {
	profiles := []Profile{
		{},
		{CompanyEmployees: float(-5)},
		{CompanyEmployees: float(1e9)},
		{Industry: str("")},
		{Industry: str("TECHNOLOGY")},
		{Engagement: &EngagementMetrics{EmailOpens: 1000, WebsiteVisits: 1000, ContentDownloads: 1000}},
		{DecisionMakers: []DecisionMaker{{Title: ""}, {Title: "CEO"}, {Title: "intern"}}},
		{TechStack: []string{"salesforce", "hubspot", "marketo", "pardot", "eloqua"}},
		{FundingStage: str("nonsense-stage")},
		{Activity: &ActivityMetrics{DaysSinceLastActivity: float(-1)}},
		{Activity: &ActivityMetrics{DaysSinceLastActivity: float(1e6)}},
		{Activity: &ActivityMetrics{}},
	}

	for i, profile := range profiles {
		factors := ComputeFactors(profile)
		for name, value := range factors.Map() {
			if value < 0 || value > 100 {
				t.Errorf("profile %d: factor %s out of range: %v", i, name, value)
			}
		}
	}
}

func TestCompanySizeBuckets(t *testing.T) {
	tests := []struct {
		employees float64
		expected  float64
	}{
		{1, 30},
		{9, 30},
		{10, 50},
		{49, 50},
		{50, 70},
		{199, 70},
		{200, 85},
		{999, 85},
		{1000, 95},
		{50000, 95},
	}

	for _, tt := range tests {
		got := scoreCompanySize(float(tt.employees))
		if got != tt.expected {
			t.Errorf("employees=%v: expected %v, got %v", tt.employees, tt.expected, got)
		}
	}
}

func TestCompanySizeMonotonicallyNonDecreasing(t *testing.T) {
	previous := 0.0
	for _, employees := range []float64{1, 5, 10, 30, 50, 100, 200, 500, 1000, 10000} {
		score := scoreCompanySize(float(employees))
		if score < previous {
			t.Fatalf("score decreased at employees=%v: %v < %v", employees, score, previous)
		}
		previous = score
	}
}

func TestIndustryMatchIsCaseInsensitive(t *testing.T) {
	for _, industry := range []string{"SaaS", "saas", " TECHNOLOGY ", "Finance"} {
		if got := scoreIndustry(str(industry)); got != 85 {
			t.Errorf("industry %q: expected 85, got %v", industry, got)
		}
	}
	if got := scoreIndustry(str("agriculture")); got != 60 {
		t.Errorf("non-matching industry: expected 60, got %v", got)
	}
}

func TestEngagementBonuses(t *testing.T) {
	tests := []struct {
		name     string
		metrics  EngagementMetrics
		expected float64
	}{
		{"no signals", EngagementMetrics{}, 50},
		{"email opens boundary not crossed", EngagementMetrics{EmailOpens: 3}, 50},
		{"email opens only", EngagementMetrics{EmailOpens: 4}, 70},
		{"visits only", EngagementMetrics{WebsiteVisits: 6}, 65},
		{"downloads only", EngagementMetrics{ContentDownloads: 1}, 65},
		{"all signals capped", EngagementMetrics{EmailOpens: 10, WebsiteVisits: 10, ContentDownloads: 5}, 100},
	}

	for _, tt := range tests {
		if got := scoreEngagement(&tt.metrics); got != tt.expected {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.expected, got)
		}
	}
}

func TestDecisionMakerPriorityOrdering(t *testing.T) {
	vpAndDirector := []DecisionMaker{{Title: "Director of IT"}, {Title: "VP of Sales"}}
	if got := scoreDecisionMakers(vpAndDirector); got != 80 {
		t.Fatalf("VP should outrank Director: expected 80, got %v", got)
	}

	ceoAndVP := []DecisionMaker{{Title: "VP Engineering"}, {Title: "CEO"}}
	if got := scoreDecisionMakers(ceoAndVP); got != 95 {
		t.Fatalf("C-suite should outrank VP: expected 95, got %v", got)
	}

	if got := scoreDecisionMakers([]DecisionMaker{{Title: "VP of Sales"}}); got != 80 {
		t.Fatalf("VP substring match: expected 80, got %v", got)
	}

	if got := scoreDecisionMakers([]DecisionMaker{{Title: "Vice President, Marketing"}}); got != 80 {
		t.Fatalf("vice president substring match: expected 80, got %v", got)
	}

	if got := scoreDecisionMakers([]DecisionMaker{{Title: "Account Manager"}}); got != 50 {
		t.Fatalf("unrecognized title: expected 50, got %v", got)
	}

	if got := scoreDecisionMakers(nil); got != 30 {
		t.Fatalf("no decision makers: expected 30, got %v", got)
	}
}

func TestTechStackMatchCounting(t *testing.T) {
	if got := scoreTechStack([]string{"Salesforce", "HubSpot", "unknown-tool"}); got != 80 {
		t.Fatalf("two matches: expected 80, got %v", got)
	}

	allMatches := []string{"salesforce", "hubspot", "marketo", "pardot", "eloqua"}
	if got := scoreTechStack(allMatches); got != 100 {
		t.Fatalf("five matches caps at 100, got %v", got)
	}

	if got := scoreTechStack([]string{"jira", "confluence"}); got != 50 {
		t.Fatalf("zero matches: expected 50, got %v", got)
	}
}

func TestFundingStageBuckets(t *testing.T) {
	tests := []struct {
		stage    string
		expected float64
	}{
		{"series-c", 95},
		{"Series-D", 95},
		{"IPO", 95},
		{"series-b", 80},
		{"series-a", 65},
		{"seed", 50},
		{"bootstrapped", 40},
	}

	for _, tt := range tests {
		if got := scoreFunding(str(tt.stage)); got != tt.expected {
			t.Errorf("stage %q: expected %v, got %v", tt.stage, tt.expected, got)
		}
	}
}

func TestRecentActivityRecencyBuckets(t *testing.T) {
	tests := []struct {
		days     float64
		expected float64
	}{
		{0, 90},
		{6, 90},
		{7, 70},
		{29, 70},
		{30, 50},
		{89, 50},
		{90, 30},
		{400, 30},
	}

	for _, tt := range tests {
		got := scoreRecentActivity(&ActivityMetrics{DaysSinceLastActivity: float(tt.days)})
		if got != tt.expected {
			t.Errorf("days=%v: expected %v, got %v", tt.days, tt.expected, got)
		}
	}

	// Unknown recency lands in the worst bucket, not the absent default.
	if got := scoreRecentActivity(&ActivityMetrics{}); got != 30 {
		t.Fatalf("missing days with activity block present: expected 30, got %v", got)
	}
}
