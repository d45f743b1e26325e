package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gapscan/internal/models"
)

func opportunity(text string, freq int, found []string, difficulty models.KeywordDifficulty, in models.SearchIntent, visGap float64) *models.KeywordGapOpportunity {
	return &models.KeywordGapOpportunity{
		Query: models.SearchQuery{
			QueryText:          text,
			Frequency:          freq,
			FoundOnCompetitors: found,
			Difficulty:         difficulty,
			SearchIntent:       in,
		},
		GapType:              "missing",
		CompetitorVisibility: visGap,
		VisibilityGap:        visGap,
	}
}

func TestScoreSingleCompetitorScenario(t *testing.T) {
	s := NewScorer(DefaultWeights())
	opp := opportunity("laser hair removal price", 4, []string{"https://rival.example"},
		models.DifficultyEasy, models.IntentTransactional, 1.0)
	s.Score(opp, nil)

	// avg(min(4/10,1), min(1/5,1)) x 100
	assert.InDelta(t, 30.0, opp.VolumeScore, 0.001)
	assert.Equal(t, 50.0, opp.RelevanceScore) // neutral prior without context
	assert.Equal(t, 100.0, opp.DifficultyScore)
	assert.Equal(t, 90.0, opp.IntentMatchScore)
	assert.Equal(t, 100.0, opp.CompetitionScore)

	want := 30.0*0.25 + 50.0*0.30 + 100.0*0.20 + 90.0*0.15 + 100.0*0.10
	assert.InDelta(t, want, opp.OpportunityScore, 0.001)

	assert.Equal(t, 4*1*50, opp.EstimatedMonthlyTraffic)
	assert.Equal(t, 2.0, opp.EffortEstimateHours)
}

func TestScoreBounds(t *testing.T) {
	s := NewScorer(DefaultWeights())
	cases := []*models.KeywordGapOpportunity{
		opportunity("x", 0, nil, models.DifficultyVeryHard, models.IntentNavigational, 0),
		opportunity("laser hair removal tehran clinic price", 1000, []string{"a", "b", "c", "d", "e", "f"},
			models.DifficultyEasy, models.IntentTransactional, 1.0),
	}
	ctx := &models.BusinessContext{
		Niche:           "laser skin hair",
		Services:        []string{"laser hair removal"},
		Products:        []string{"laser device"},
		TargetLocations: []string{"tehran"},
	}
	for _, opp := range cases {
		s.Score(opp, ctx)
		for name, v := range map[string]float64{
			"volume":      opp.VolumeScore,
			"relevance":   opp.RelevanceScore,
			"difficulty":  opp.DifficultyScore,
			"intent":      opp.IntentMatchScore,
			"competition": opp.CompetitionScore,
			"composite":   opp.OpportunityScore,
		} {
			assert.GreaterOrEqual(t, v, 0.0, "%s below 0", name)
			assert.LessOrEqual(t, v, 100.0, "%s above 100", name)
		}
	}
}

func TestRelevanceServiceMatch(t *testing.T) {
	s := NewScorer(DefaultWeights())
	ctx := &models.BusinessContext{Services: []string{"laser hair removal"}}
	opp := opportunity("laser hair removal price", 2, []string{"a"}, models.DifficultyMedium, models.IntentTransactional, 1.0)
	s.Score(opp, ctx)
	assert.GreaterOrEqual(t, opp.RelevanceScore, 30.0)
}

func TestRelevanceAwards(t *testing.T) {
	tests := []struct {
		name string
		text string
		ctx  *models.BusinessContext
		want float64
	}{
		{"no context", "anything", nil, 50},
		{"zero matches with context", "botox", &models.BusinessContext{Services: []string{"laser"}}, 0},
		{"service", "laser price", &models.BusinessContext{Services: []string{"laser"}}, 30},
		{"product", "device price", &models.BusinessContext{Products: []string{"device"}}, 25},
		{"location", "clinic tehran", &models.BusinessContext{TargetLocations: []string{"tehran"}}, 15},
		{
			"niche words capped",
			"laser skin hair removal clinic",
			&models.BusinessContext{Niche: "laser skin hair removal"},
			30, // four matches at 10 each, capped
		},
		{
			"stacked awards",
			"laser hair removal tehran",
			&models.BusinessContext{
				Services:        []string{"laser hair removal"},
				Niche:           "laser",
				TargetLocations: []string{"tehran"},
			},
			30 + 10 + 15,
		},
	}
	s := NewScorer(DefaultWeights())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opp := opportunity(tt.text, 1, []string{"a"}, models.DifficultyMedium, models.IntentInformational, 1.0)
			s.Score(opp, tt.ctx)
			assert.Equal(t, tt.want, opp.RelevanceScore)
		})
	}
}

func TestDifficultyAndEffortMapping(t *testing.T) {
	s := NewScorer(DefaultWeights())
	tests := []struct {
		difficulty models.KeywordDifficulty
		wantScore  float64
		wantHours  float64
	}{
		{models.DifficultyEasy, 100, 2},
		{models.DifficultyMedium, 70, 5},
		{models.DifficultyHard, 40, 10},
		{models.DifficultyVeryHard, 20, 20},
	}
	for _, tt := range tests {
		opp := opportunity("x y", 1, []string{"a"}, tt.difficulty, models.IntentInformational, 0.5)
		s.Score(opp, nil)
		assert.Equal(t, tt.wantScore, opp.DifficultyScore)
		assert.Equal(t, tt.wantHours, opp.EffortEstimateHours)
	}
}

func TestIntentMatchMapping(t *testing.T) {
	s := NewScorer(DefaultWeights())
	tests := []struct {
		in   models.SearchIntent
		want float64
	}{
		{models.IntentTransactional, 90},
		{models.IntentLocal, 90},
		{models.IntentInformational, 70},
		{models.IntentComparison, 80},
		{models.IntentNavigational, 60},
	}
	for _, tt := range tests {
		opp := opportunity("x y", 1, []string{"a"}, models.DifficultyMedium, tt.in, 0.5)
		s.Score(opp, nil)
		assert.Equal(t, tt.want, opp.IntentMatchScore)
	}
}

func TestPriorityTiers(t *testing.T) {
	tests := []struct {
		name       string
		relevance  float64
		difficulty float64
		score      float64
		want       models.PriorityTier
	}{
		{"quick win", 80, 100, 85, models.TierQuickWin},
		{"high priority", 65, 70, 80, models.TierHighPriority},
		{"long term", 75, 40, 60, models.TierLongTerm},
		{"medium default", 40, 70, 50, models.TierMedium},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opp := &models.KeywordGapOpportunity{
				RelevanceScore:   tt.relevance,
				DifficultyScore:  tt.difficulty,
				OpportunityScore: tt.score,
			}
			assignPriority(opp)
			assert.Equal(t, tt.want, opp.PriorityTier)
			assert.NotEmpty(t, opp.PriorityReasoning)
		})
	}
}

func TestPriorityCoverage(t *testing.T) {
	s := NewScorer(DefaultWeights())
	intents := []models.SearchIntent{
		models.IntentInformational, models.IntentTransactional,
		models.IntentLocal, models.IntentComparison, models.IntentNavigational,
	}
	difficulties := []models.KeywordDifficulty{
		models.DifficultyEasy, models.DifficultyMedium,
		models.DifficultyHard, models.DifficultyVeryHard,
	}
	valid := map[models.PriorityTier]bool{
		models.TierQuickWin: true, models.TierHighPriority: true,
		models.TierMedium: true, models.TierLongTerm: true,
	}
	for _, in := range intents {
		for _, d := range difficulties {
			for _, freq := range []int{0, 1, 8, 50} {
				opp := opportunity("laser clinic", freq, []string{"a", "b"}, d, in, 1.0)
				s.Score(opp, nil)
				require.True(t, valid[opp.PriorityTier],
					"intent=%s difficulty=%s freq=%d got tier %q", in, d, freq, opp.PriorityTier)
			}
		}
	}
}
