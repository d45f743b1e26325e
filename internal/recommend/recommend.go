// Package recommend turns scored gaps into strategic action items and a
// content calendar.
package recommend

import (
	"fmt"
	"sort"

	"gapscan/internal/models"
)

// Buckets groups opportunities by priority tier and by search intent.
type Buckets struct {
	QuickWins    []models.KeywordGapOpportunity
	HighPriority []models.KeywordGapOpportunity
	Medium       []models.KeywordGapOpportunity
	LongTerm     []models.KeywordGapOpportunity

	ByIntent map[models.SearchIntent][]models.KeywordGapOpportunity
}

// Categorize distributes each opportunity into exactly one priority bucket
// and one intent bucket.
func Categorize(opps []models.KeywordGapOpportunity) Buckets {
	b := Buckets{ByIntent: make(map[models.SearchIntent][]models.KeywordGapOpportunity)}
	for _, opp := range opps {
		switch opp.PriorityTier {
		case models.TierQuickWin:
			b.QuickWins = append(b.QuickWins, opp)
		case models.TierHighPriority:
			b.HighPriority = append(b.HighPriority, opp)
		case models.TierLongTerm:
			b.LongTerm = append(b.LongTerm, opp)
		default:
			b.Medium = append(b.Medium, opp)
		}
		b.ByIntent[opp.Query.SearchIntent] = append(b.ByIntent[opp.Query.SearchIntent], opp)
	}
	return b
}

// Strategic emits up to three recommendation blocks, each only when the
// corresponding bucket is non-empty.
func Strategic(b Buckets) []models.StrategicRecommendation {
	var recs []models.StrategicRecommendation

	if len(b.QuickWins) > 0 {
		recs = append(recs, models.StrategicRecommendation{
			Title:       "Focus on Quick Wins First",
			Priority:    "high",
			Description: fmt.Sprintf("You have %d quick win opportunities with high relevance and low difficulty.", len(b.QuickWins)),
			Action:      "Start creating content for these keywords within the next 2-4 weeks",
			Keywords:    topKeywords(b.QuickWins, 10),
		})
	}

	if informational := b.ByIntent[models.IntentInformational]; len(informational) > 0 {
		recs = append(recs, models.StrategicRecommendation{
			Title:       "Build Top-of-Funnel Content",
			Priority:    "medium",
			Description: fmt.Sprintf("Found %d informational keywords for awareness stage.", len(informational)),
			Action:      "Create comprehensive guides and how-to content",
			Keywords:    topKeywords(informational, 10),
		})
	}

	if transactional := b.ByIntent[models.IntentTransactional]; len(transactional) > 0 {
		recs = append(recs, models.StrategicRecommendation{
			Title:       "Capture Transactional Intent",
			Priority:    "high",
			Description: fmt.Sprintf("%d transactional keywords found - direct revenue potential.", len(transactional)),
			Action:      "Create service/product pages with strong CTAs",
			Keywords:    topKeywords(transactional, 10),
		})
	}

	return recs
}

const (
	calendarSize   = 20
	entriesPerWeek = 3
)

// Calendar schedules the top-scored opportunities three per week. No
// capacity or effort balancing, just score order.
func Calendar(opps []models.KeywordGapOpportunity) []models.CalendarEntry {
	sorted := make([]models.KeywordGapOpportunity, len(opps))
	copy(sorted, opps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OpportunityScore > sorted[j].OpportunityScore
	})
	if len(sorted) > calendarSize {
		sorted = sorted[:calendarSize]
	}

	entries := make([]models.CalendarEntry, 0, len(sorted))
	for i, opp := range sorted {
		entries = append(entries, models.CalendarEntry{
			Week:             i/entriesPerWeek + 1,
			Keyword:          opp.Query.QueryText,
			ContentType:      opp.Query.RecommendedContentType,
			Priority:         opp.PriorityTier,
			EffortHours:      opp.EffortEstimateHours,
			EstimatedTraffic: opp.EstimatedMonthlyTraffic,
			Actions:          opp.RecommendedActions,
		})
	}
	return entries
}

// Actions produces per-opportunity action strings based on gap type, SERP
// hints, intent and extraction source.
func Actions(opp models.KeywordGapOpportunity) []string {
	var actions []string
	q := opp.Query

	if opp.GapType == "missing" {
		actions = append(actions, fmt.Sprintf("Create %s page targeting '%s'", q.RecommendedContentType, q.QueryText))
	}

	if len(q.SERPFeatures) > 0 {
		features := q.SERPFeatures
		if len(features) > 2 {
			features = features[:2]
		}
		list := string(features[0])
		if len(features) == 2 {
			list += ", " + string(features[1])
		}
		actions = append(actions, fmt.Sprintf("Implement %s for better visibility", list))
	}

	switch q.SearchIntent {
	case models.IntentLocal:
		actions = append(actions, "Add local SEO elements (NAP, maps, reviews)")
	case models.IntentTransactional:
		actions = append(actions, "Add clear CTAs and conversion elements")
	}

	if q.Source == models.SourceTitle || q.Source == models.SourceH1 {
		actions = append(actions, "Use keyword in page title and H1")
	}

	return actions
}

func topKeywords(opps []models.KeywordGapOpportunity, n int) []string {
	if len(opps) < n {
		n = len(opps)
	}
	out := make([]string, 0, n)
	for _, opp := range opps[:n] {
		out = append(out, opp.Query.QueryText)
	}
	return out
}
