// Package analyzer orchestrates a full keyword gap analysis: fetch pages,
// extract demand units, find gaps, score them and assemble the report.
package analyzer

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"gapscan/internal/extractor"
	"gapscan/internal/gap"
	"gapscan/internal/models"
	"gapscan/internal/recommend"
	"gapscan/internal/scoring"
)

// Fetcher retrieves a page's HTML. Implementations own all network
// politeness, timeout and retry concerns.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type Analyzer struct {
	fetcher   Fetcher
	extractor *extractor.Extractor
	scorer    *scoring.Scorer
	log       zerolog.Logger
}

func New(fetcher Fetcher, scorer *scoring.Scorer, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		fetcher:   fetcher,
		extractor: extractor.New(),
		scorer:    scorer,
		log:       log,
	}
}

// Analyze runs the whole pipeline. Fetch or parse failures degrade to empty
// query sets for the affected URL rather than aborting; a failed competitor
// still counts in the visibility denominator.
func (a *Analyzer) Analyze(ctx context.Context, ownURL string, competitorURLs []string, bctx *models.BusinessContext) (*models.AnalysisResult, error) {
	start := time.Now()

	a.log.Info().Str("own", ownURL).Int("competitors", len(competitorURLs)).Msg("starting keyword gap analysis")

	ownQueries := a.extractFrom(ctx, ownURL)
	a.log.Info().Int("queries", len(ownQueries)).Msg("analyzed own website")

	competitorQueries := make(map[string][]models.SearchQuery, len(competitorURLs))
	for i, u := range competitorURLs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		queries := a.extractFrom(ctx, u)
		competitorQueries[u] = queries
		a.log.Info().
			Str("url", u).
			Int("queries", len(queries)).
			Msgf("analyzed competitor %d/%d", i+1, len(competitorURLs))
	}

	gaps := gap.FindGaps(ownQueries, competitorQueries)
	for i := range gaps {
		a.scorer.Score(&gaps[i], bctx)
		gaps[i].RecommendedActions = recommend.Actions(gaps[i])
	}
	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].OpportunityScore > gaps[j].OpportunityScore
	})

	buckets := recommend.Categorize(gaps)

	result := &models.AnalysisResult{
		OwnWebsiteURL:     ownURL,
		CompetitorURLs:    competitorURLs,
		BusinessContext:   bctx,
		OwnQueries:        ownQueries,
		CompetitorQueries: competitorQueries,
		GapOpportunities:  gaps,

		QuickWins:      buckets.QuickWins,
		HighPriority:   buckets.HighPriority,
		MediumPriority: buckets.Medium,
		LongTerm:       buckets.LongTerm,

		InformationalGaps: buckets.ByIntent[models.IntentInformational],
		TransactionalGaps: buckets.ByIntent[models.IntentTransactional],
		LocalGaps:         buckets.ByIntent[models.IntentLocal],
		ComparisonGaps:    buckets.ByIntent[models.IntentComparison],
		NavigationalGaps:  buckets.ByIntent[models.IntentNavigational],

		StrategicRecommendations:   recommend.Strategic(buckets),
		ContentCalendarSuggestions: recommend.Calendar(gaps),

		TotalGapsFound: len(gaps),
		AnalysisDate:   start,
	}

	for _, g := range gaps {
		result.TotalOpportunityValue += g.EstimatedMonthlyTraffic
	}
	if len(gaps) > 0 {
		var diffSum, relSum float64
		for _, g := range gaps {
			diffSum += difficultyLevel(g.Query.Difficulty)
			relSum += g.RelevanceScore
		}
		result.AvgDifficulty = diffSum / float64(len(gaps))
		result.AvgRelevance = relSum / float64(len(gaps))
	}

	result.ProcessingTimeSeconds = time.Since(start).Seconds()

	a.log.Info().
		Int("gaps", result.TotalGapsFound).
		Int("quick_wins", len(result.QuickWins)).
		Int("estimated_traffic", result.TotalOpportunityValue).
		Float64("seconds", result.ProcessingTimeSeconds).
		Msg("analysis complete")

	return result, nil
}

// extractFrom fetches and extracts one URL, degrading to an empty query set
// on failure.
func (a *Analyzer) extractFrom(ctx context.Context, url string) []models.SearchQuery {
	html, err := a.fetcher.Fetch(ctx, url)
	if err != nil {
		a.log.Warn().Str("url", url).Err(err).Msg("fetch failed, contributing empty query set")
		return nil
	}
	queries, err := a.extractor.ExtractQueries(html, url)
	if err != nil {
		a.log.Warn().Str("url", url).Err(err).Msg("extraction failed, contributing empty query set")
		return nil
	}
	return queries
}

// difficultyLevel maps the coarse enum onto 1..4 for report averaging.
func difficultyLevel(d models.KeywordDifficulty) float64 {
	switch d {
	case models.DifficultyEasy:
		return 1
	case models.DifficultyMedium:
		return 2
	case models.DifficultyHard:
		return 3
	case models.DifficultyVeryHard:
		return 4
	default:
		return 2
	}
}
