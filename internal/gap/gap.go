// Package gap compares the analyzed site's demand units against competitor
// corpora and emits coverage gaps.
package gap

import (
	"sort"
	"strings"

	"gapscan/internal/models"
)

// FindGaps returns one opportunity for every distinct query text observed in
// any competitor corpus but absent from the own set. The competitor map may
// contain empty slices for failed fetches; those competitors still count in
// the visibility denominator. Output ordering is deterministic
// (lexicographic by query text) but callers should not depend on it; the
// scorer re-sorts by opportunity score.
func FindGaps(own []models.SearchQuery, competitors map[string][]models.SearchQuery) []models.KeywordGapOpportunity {
	ownSet := make(map[string]struct{}, len(own))
	for _, q := range own {
		ownSet[strings.ToLower(q.QueryText)] = struct{}{}
	}

	type occurrence struct {
		url   string
		query models.SearchQuery
	}
	byText := make(map[string][]occurrence)

	// Iterate competitors in sorted order so the canonical-query tie-break
	// (first encountered) is stable across runs.
	urls := make([]string, 0, len(competitors))
	for u := range competitors {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	for _, u := range urls {
		for _, q := range competitors[u] {
			key := strings.ToLower(q.QueryText)
			byText[key] = append(byText[key], occurrence{url: u, query: q})
		}
	}

	texts := make([]string, 0, len(byText))
	for t := range byText {
		texts = append(texts, t)
	}
	sort.Strings(texts)

	total := len(competitors)
	var gaps []models.KeywordGapOpportunity
	for _, text := range texts {
		if _, have := ownSet[text]; have {
			continue
		}
		occs := byText[text]

		// Canonical record: highest competitor frequency, first encountered
		// on ties.
		best := occs[0]
		for _, o := range occs[1:] {
			if o.query.Frequency > best.query.Frequency {
				best = o
			}
		}

		seen := make(map[string]struct{}, len(occs))
		var found []string
		for _, o := range occs {
			if _, dup := seen[o.url]; dup {
				continue
			}
			seen[o.url] = struct{}{}
			found = append(found, o.url)
		}

		query := best.query
		query.FoundOnCompetitors = found

		var visibility float64
		if total > 0 {
			visibility = float64(len(found)) / float64(total)
		}

		top := found
		if len(top) > 3 {
			top = top[:3]
		}

		gaps = append(gaps, models.KeywordGapOpportunity{
			Query:                query,
			GapType:              "missing",
			OwnVisibility:        0,
			CompetitorVisibility: visibility,
			VisibilityGap:        visibility,
			TopCompetitorURLs:    top,
		})
	}
	return gaps
}
