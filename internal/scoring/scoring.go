// Package scoring computes the five-factor opportunity score and assigns
// priority tiers to keyword gaps.
package scoring

import "gapscan/internal/models"

// Weights are the component weights of the composite opportunity score.
// They must sum to 1 for the composite to stay within [0,100].
type Weights struct {
	Volume      float64 `yaml:"volume"`
	Relevance   float64 `yaml:"relevance"`
	Difficulty  float64 `yaml:"difficulty"`
	Intent      float64 `yaml:"intent"`
	Competition float64 `yaml:"competition"`
}

// DefaultWeights returns the documented scoring defaults.
func DefaultWeights() Weights {
	return Weights{
		Volume:      0.25,
		Relevance:   0.30,
		Difficulty:  0.20,
		Intent:      0.15,
		Competition: 0.10,
	}
}

type Scorer struct {
	weights Weights
}

func NewScorer(w Weights) *Scorer {
	return &Scorer{weights: w}
}

// Score fills the five component scores and the composite opportunity score
// for one gap, estimates traffic and effort, and assigns a priority tier.
// A nil business context degrades to the neutral relevance default; nothing
// here returns an error.
func (s *Scorer) Score(opp *models.KeywordGapOpportunity, ctx *models.BusinessContext) {
	q := opp.Query

	// Volume rewards both raw repetition and cross-competitor consensus,
	// each capped so one extreme value cannot dominate.
	freqScore := capUnit(float64(q.Frequency) / 10.0)
	presenceScore := capUnit(float64(len(q.FoundOnCompetitors)) / 5.0)
	opp.VolumeScore = (freqScore + presenceScore) / 2.0 * 100

	opp.RelevanceScore = relevance(q, ctx)
	opp.DifficultyScore = difficultyScore(q.Difficulty)
	opp.IntentMatchScore = intentMatch(q.SearchIntent)
	opp.CompetitionScore = opp.VisibilityGap * 100

	opp.OpportunityScore = opp.VolumeScore*s.weights.Volume +
		opp.RelevanceScore*s.weights.Relevance +
		opp.DifficultyScore*s.weights.Difficulty +
		opp.IntentMatchScore*s.weights.Intent +
		opp.CompetitionScore*s.weights.Competition

	opp.EstimatedMonthlyTraffic = q.Frequency * len(q.FoundOnCompetitors) * trafficPerOccurrence
	opp.EffortEstimateHours = effortHours(q.Difficulty)

	assignPriority(opp)
}

const trafficPerOccurrence = 50

func capUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}

// Fixed point awards for business-context matches. Neutral prior of 50 when
// no context is available.
const (
	serviceAward  = 30.0
	productAward  = 25.0
	nicheAward    = 10.0
	nicheCap      = 30.0
	locationAward = 15.0

	neutralRelevance = 50.0
)

func relevance(q models.SearchQuery, ctx *models.BusinessContext) float64 {
	if ctx == nil {
		return neutralRelevance
	}

	var score float64
	text := q.QueryText

	if containsTerm(text, ctx.Services) {
		score += serviceAward
	}
	if containsTerm(text, ctx.Products) {
		score += productAward
	}

	var nicheScore float64
	for _, word := range fields(ctx.Niche) {
		if contains(text, word) {
			nicheScore += nicheAward
		}
	}
	if nicheScore > nicheCap {
		nicheScore = nicheCap
	}
	score += nicheScore

	if containsTerm(text, ctx.TargetLocations) {
		score += locationAward
	}

	if score > 100 {
		score = 100
	}
	return score
}

func difficultyScore(d models.KeywordDifficulty) float64 {
	switch d {
	case models.DifficultyEasy:
		return 100
	case models.DifficultyMedium:
		return 70
	case models.DifficultyHard:
		return 40
	case models.DifficultyVeryHard:
		return 20
	default:
		return 70
	}
}

func effortHours(d models.KeywordDifficulty) float64 {
	switch d {
	case models.DifficultyEasy:
		return 2
	case models.DifficultyMedium:
		return 5
	case models.DifficultyHard:
		return 10
	case models.DifficultyVeryHard:
		return 20
	default:
		return 5
	}
}

// intentMatch models suitability for a service-oriented business funnel:
// purchase-ready intents score highest, awareness content still matters.
func intentMatch(in models.SearchIntent) float64 {
	switch in {
	case models.IntentTransactional, models.IntentLocal:
		return 90
	case models.IntentInformational:
		return 70
	case models.IntentComparison:
		return 80
	default:
		return 60
	}
}
