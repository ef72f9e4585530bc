package scoring

import "testing"

func TestMergeDataOverlayWins(t *testing.T) {
	base := map[string]any{
		"company": map[string]any{"employees": 10.0, "industry": "retail"},
		"source":  "webform",
	}
	overlay := map[string]any{
		"company": map[string]any{"employees": 500.0},
	}

	merged := MergeData(base, overlay)

	company := merged["company"].(map[string]any)
	if company["employees"] != 500.0 {
		t.Errorf("overlay should win on collision: got %v", company["employees"])
	}
	if company["industry"] != "retail" {
		t.Errorf("nested base key lost: got %v", company["industry"])
	}
	if merged["source"] != "webform" {
		t.Errorf("top-level base key lost: got %v", merged["source"])
	}
}

func TestMergeDataDoesNotMutateInputs(t *testing.T) {
	base := map[string]any{
		"company": map[string]any{"employees": 10.0},
	}
	overlay := map[string]any{
		"company": map[string]any{"employees": 500.0},
	}

	_ = MergeData(base, overlay)

	if base["company"].(map[string]any)["employees"] != 10.0 {
		t.Fatal("base map was mutated by merge")
	}
}

func TestMergeDataScalarReplacesMap(t *testing.T) {
	base := map[string]any{"company": map[string]any{"employees": 10.0}}
	overlay := map[string]any{"company": "acme"}

	merged := MergeData(base, overlay)
	if merged["company"] != "acme" {
		t.Fatalf("non-map overlay should replace map: got %v", merged["company"])
	}
}

func TestExtractProfileReadsKnownFields(t *testing.T) {
	data := map[string]any{
		"company": map[string]any{
			"employees": 150.0,
			"industry":  "SaaS",
		},
		"engagement": map[string]any{
			"emailOpens":       4.0,
			"websiteVisits":    2.0,
			"contentDownloads": 1.0,
		},
		"decisionMakers": []any{
			map[string]any{"title": "VP of Sales"},
			map[string]any{"name": "no title here"},
		},
		"techStack": []any{"Salesforce", 42, "HubSpot"},
		"funding":   map[string]any{"stage": "series-b"},
		"recentActivity": map[string]any{
			"daysSinceLastActivity": 3.0,
		},
	}

	p := ExtractProfile(data)

	if p.CompanyEmployees == nil || *p.CompanyEmployees != 150 {
		t.Errorf("employees: got %v", p.CompanyEmployees)
	}
	if p.Industry == nil || *p.Industry != "SaaS" {
		t.Errorf("industry: got %v", p.Industry)
	}
	if p.Engagement == nil || p.Engagement.EmailOpens != 4 {
		t.Errorf("engagement: got %+v", p.Engagement)
	}
	if len(p.DecisionMakers) != 1 || p.DecisionMakers[0].Title != "VP of Sales" {
		t.Errorf("decision makers: got %+v", p.DecisionMakers)
	}
	if len(p.TechStack) != 2 {
		t.Errorf("tech stack should skip non-strings: got %v", p.TechStack)
	}
	if p.FundingStage == nil || *p.FundingStage != "series-b" {
		t.Errorf("funding stage: got %v", p.FundingStage)
	}
	if p.Activity == nil || p.Activity.DaysSinceLastActivity == nil || *p.Activity.DaysSinceLastActivity != 3 {
		t.Errorf("activity: got %+v", p.Activity)
	}
}

func TestExtractProfileIgnoresMalformedAndUnknownFields(t *testing.T) {
	data := map[string]any{
		"company":        "not a map",
		"engagement":     []any{"wrong shape"},
		"decisionMakers": "also wrong",
		"funding":        map[string]any{"stage": "   "},
		"someCrmField":   map[string]any{"nested": true},
	}

	p := ExtractProfile(data)

	if p.CompanyEmployees != nil || p.Industry != nil || p.Engagement != nil {
		t.Errorf("malformed fields should read as absent: %+v", p)
	}
	if p.FundingStage != nil {
		t.Errorf("blank funding stage should read as absent: %v", *p.FundingStage)
	}
	if len(p.DecisionMakers) != 0 {
		t.Errorf("malformed decision makers should read as absent: %+v", p.DecisionMakers)
	}
}

func TestExtractProfileAcceptsIntegerNumbers(t *testing.T) {
	data := map[string]any{
		"company": map[string]any{"employees": 150},
	}
	p := ExtractProfile(data)
	if p.CompanyEmployees == nil || *p.CompanyEmployees != 150 {
		t.Fatalf("int employees should extract: got %v", p.CompanyEmployees)
	}
}
