package scoring

import (
	"strings"

	"gapscan/internal/models"
)

// assignPriority runs the four-tier decision tree. Conditions overlap, so
// evaluation order matters: first match wins. Every gap lands in exactly
// one tier; this is a one-shot classification.
func assignPriority(opp *models.KeywordGapOpportunity) {
	score := opp.OpportunityScore
	relevance := opp.RelevanceScore
	difficulty := opp.DifficultyScore

	switch {
	case relevance >= 70 && difficulty >= 80 && score >= 70:
		opp.PriorityTier = models.TierQuickWin
		opp.PriorityReasoning = "High relevance, easy to rank, good opportunity"
	case score >= 75 && relevance >= 60:
		opp.PriorityTier = models.TierHighPriority
		opp.PriorityReasoning = "High overall value and relevance"
	case difficulty < 50 && relevance >= 70:
		opp.PriorityTier = models.TierLongTerm
		opp.PriorityReasoning = "High value but requires significant effort"
	default:
		opp.PriorityTier = models.TierMedium
		opp.PriorityReasoning = "Moderate opportunity"
	}
}

func contains(text, term string) bool {
	return term != "" && strings.Contains(text, strings.ToLower(term))
}

// containsTerm reports whether any configured term occurs in text. Only the
// first match counts for scoring, so it short-circuits.
func containsTerm(text string, terms []string) bool {
	for _, t := range terms {
		if contains(text, t) {
			return true
		}
	}
	return false
}

func fields(s string) []string {
	return strings.Fields(strings.ToLower(s))
}
