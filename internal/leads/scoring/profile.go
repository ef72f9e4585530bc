package scoring

import "strings"

// Profile is the typed view of a lead's merged attribute bag that the factor
// functions consume. Every field is optional; a nil field means the
// corresponding data was absent and the factor falls back to its documented
// neutral default. Extraction is total: malformed or unknown fields are
// silently ignored, never an error.
type Profile struct {
	CompanyEmployees *float64
	Industry         *string
	Engagement       *EngagementMetrics
	DecisionMakers   []DecisionMaker
	TechStack        []string
	FundingStage     *string
	Activity         *ActivityMetrics
}

// EngagementMetrics carries behavioral counters for a lead.
// Absent counters are zero, which earns no bonus.
type EngagementMetrics struct {
	EmailOpens       float64
	WebsiteVisits    float64
	ContentDownloads float64
}

// DecisionMaker is a known contact at the lead's company.
type DecisionMaker struct {
	Title string
}

// ActivityMetrics carries recency information for a lead.
// DaysSinceLastActivity nil means unknown and is treated as stale.
type ActivityMetrics struct {
	DaysSinceLastActivity *float64
}

// MergeData deep-merges the overlay bag over the base bag. Nested maps merge
// recursively; on any other collision the overlay value wins. Neither input
// is mutated.
func MergeData(base, overlay map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(overlay))
	for key, value := range base {
		merged[key] = value
	}

	for key, value := range overlay {
		existing, ok := merged[key]
		if !ok {
			merged[key] = value
			continue
		}

		existingMap, existingIsMap := existing.(map[string]any)
		overlayMap, overlayIsMap := value.(map[string]any)
		if existingIsMap && overlayIsMap {
			merged[key] = MergeData(existingMap, overlayMap)
			continue
		}

		merged[key] = value
	}

	return merged
}

// ExtractProfile pulls the scorable fields out of a merged attribute bag.
func ExtractProfile(data map[string]any) Profile {
	profile := Profile{}

	if company := asMap(data["company"]); company != nil {
		profile.CompanyEmployees = asNumber(company["employees"])
		if industry := asString(company["industry"]); industry != nil && strings.TrimSpace(*industry) != "" {
			profile.Industry = industry
		}
	}

	if engagement := asMap(data["engagement"]); engagement != nil {
		metrics := EngagementMetrics{}
		if v := asNumber(engagement["emailOpens"]); v != nil {
			metrics.EmailOpens = *v
		}
		if v := asNumber(engagement["websiteVisits"]); v != nil {
			metrics.WebsiteVisits = *v
		}
		if v := asNumber(engagement["contentDownloads"]); v != nil {
			metrics.ContentDownloads = *v
		}
		profile.Engagement = &metrics
	}

	for _, entry := range asSlice(data["decisionMakers"]) {
		maker := asMap(entry)
		if maker == nil {
			continue
		}
		if title := asString(maker["title"]); title != nil {
			profile.DecisionMakers = append(profile.DecisionMakers, DecisionMaker{Title: *title})
		}
	}

	for _, entry := range asSlice(data["techStack"]) {
		if name := asString(entry); name != nil {
			profile.TechStack = append(profile.TechStack, *name)
		}
	}

	if funding := asMap(data["funding"]); funding != nil {
		if stage := asString(funding["stage"]); stage != nil && strings.TrimSpace(*stage) != "" {
			profile.FundingStage = stage
		}
	}

	if activity := asMap(data["recentActivity"]); activity != nil {
		profile.Activity = &ActivityMetrics{
			DaysSinceLastActivity: asNumber(activity["daysSinceLastActivity"]),
		}
	}

	return profile
}

func asMap(value any) map[string]any {
	m, _ := value.(map[string]any)
	return m
}

func asSlice(value any) []any {
	s, _ := value.([]any)
	return s
}

func asString(value any) *string {
	s, ok := value.(string)
	if !ok {
		return nil
	}
	return &s
}

// asNumber accepts the numeric types JSON decoding and Go callers produce.
func asNumber(value any) *float64 {
	switch typed := value.(type) {
	case float64:
		return &typed
	case float32:
		f := float64(typed)
		return &f
	case int:
		f := float64(typed)
		return &f
	case int64:
		f := float64(typed)
		return &f
	default:
		return nil
	}
}
