// Package extractor builds demand units from a page's textual surface:
// title, meta description, headings, body content, URL path, alt text and
// anchor text.
package extractor

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"gapscan/internal/intent"
	"gapscan/internal/models"
	"gapscan/internal/textproc"
)

// Per-source n-gram ceilings. Titles carry the longest meaningful phrases,
// URL segments the shortest.
const (
	maxNTitle   = 5
	maxNMeta    = 4
	maxNHeading = 5
	maxNContent = 4
	maxNURL     = 3
	maxNAlt     = 3
	maxNAnchor  = 3

	// Body phrases must recur to survive; single occurrences are noise.
	contentMinFrequency = 2

	maxAnchorLen  = 100
	snippetLen    = 200
	contextWindow = 100
)

var contentClassRe = regexp.MustCompile(`(?i)content|main|post`)

type Extractor struct {
	intents *intent.Classifier
}

func New() *Extractor {
	return &Extractor{intents: intent.New()}
}

// ExtractQueries extracts demand units from already-fetched HTML. Queries
// with identical normalized text are merged: frequencies sum, the
// first-seen source and context are retained. The returned set contains no
// duplicate query texts. Missing sources contribute nothing; they are not
// errors.
func (e *Extractor) ExtractQueries(html, pageURL string) ([]models.SearchQuery, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	var headings []string
	doc.Find("h1,h2,h3").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			headings = append(headings, t)
		}
	})

	var queries []models.SearchQuery
	add := func(ngrams []textproc.Ngram, src models.KeywordSource, snippet string) {
		for _, ng := range ngrams {
			queries = append(queries, models.SearchQuery{
				QueryText:      ng.Phrase,
				Source:         src,
				Frequency:      ng.Frequency,
				NgramSize:      ng.Size,
				IsLongTail:     ng.Size >= 3,
				ContextSnippet: snippet,
			})
		}
	}

	if title != "" {
		add(textproc.ExtractNgrams(title, maxNTitle, 1), models.SourceTitle, clip(title))
	}

	desc := strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", ""))
	if desc == "" {
		desc = strings.TrimSpace(doc.Find(`meta[property="og:description"]`).AttrOr("content", ""))
	}
	if desc != "" {
		add(textproc.ExtractNgrams(desc, maxNMeta, 1), models.SourceMeta, clip(desc))
	}

	for level := 1; level <= 6; level++ {
		src := headingSource(level)
		doc.Find(fmt.Sprintf("h%d", level)).Each(func(_ int, s *goquery.Selection) {
			txt := strings.TrimSpace(s.Text())
			if txt == "" {
				return
			}
			add(textproc.ExtractNgrams(txt, maxNHeading, 1), src, clip(txt))
		})
	}

	// Alt and anchor text are read before the content pass prunes the DOM.
	var altQueries, anchorQueries []models.SearchQuery
	doc.Find("img[alt]").Each(func(_ int, s *goquery.Selection) {
		alt := strings.TrimSpace(s.AttrOr("alt", ""))
		if alt == "" {
			return
		}
		for _, ng := range textproc.ExtractNgrams(alt, maxNAlt, 1) {
			altQueries = append(altQueries, models.SearchQuery{
				QueryText:      ng.Phrase,
				Source:         models.SourceAltText,
				Frequency:      ng.Frequency,
				NgramSize:      ng.Size,
				IsLongTail:     ng.Size >= 3,
				ContextSnippet: clip(alt),
			})
		}
	})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		anchor := strings.TrimSpace(s.Text())
		if anchor == "" || utf8.RuneCountInString(anchor) >= maxAnchorLen {
			return
		}
		for _, ng := range textproc.ExtractNgrams(anchor, maxNAnchor, 1) {
			anchorQueries = append(anchorQueries, models.SearchQuery{
				QueryText:      ng.Phrase,
				Source:         models.SourceAnchorText,
				Frequency:      ng.Frequency,
				NgramSize:      ng.Size,
				IsLongTail:     ng.Size >= 3,
				ContextSnippet: clip(anchor),
			})
		}
	})

	contentText := mainContent(doc)
	for _, ng := range textproc.ExtractNgrams(contentText, maxNContent, contentMinFrequency) {
		queries = append(queries, models.SearchQuery{
			QueryText:      ng.Phrase,
			Source:         models.SourceContent,
			Frequency:      ng.Frequency,
			NgramSize:      ng.Size,
			IsLongTail:     ng.Size >= 3,
			ContextSnippet: contextAround(ng.Phrase, contentText),
		})
	}

	for _, part := range pathSegments(pageURL) {
		clean := strings.NewReplacer("-", " ", "_", " ").Replace(part)
		add(textproc.ExtractNgrams(clean, maxNURL, 1), models.SourceURL, part)
	}

	queries = append(queries, altQueries...)
	queries = append(queries, anchorQueries...)

	merged := mergeQueries(queries)

	totalWords := len(textproc.ValidTokens(contentText))
	for i := range merged {
		e.annotate(&merged[i], title, pageURL, headings)
		applyTFIDF(&merged[i], totalWords)
		merged[i].Difficulty = assessDifficulty(merged[i])
	}
	return merged, nil
}

// mergeQueries collapses duplicate query texts. Frequencies sum; source and
// context stay with the earliest extraction (earliest wins, not
// highest-weight wins).
func mergeQueries(queries []models.SearchQuery) []models.SearchQuery {
	index := make(map[string]int, len(queries))
	merged := make([]models.SearchQuery, 0, len(queries))
	for _, q := range queries {
		if at, seen := index[q.QueryText]; seen {
			merged[at].Frequency += q.Frequency
			continue
		}
		index[q.QueryText] = len(merged)
		merged = append(merged, q)
	}
	return merged
}

func (e *Extractor) annotate(q *models.SearchQuery, title, pageURL string, headings []string) {
	q.SearchIntent, q.IntentConfidence = e.intents.Detect(title, pageURL, q.ContextSnippet, headings)

	switch q.SearchIntent {
	case models.IntentLocal:
		q.EntityContext = "local_business"
	case models.IntentTransactional:
		q.EntityContext = "product_service"
	case models.IntentInformational:
		q.EntityContext = "information"
	}

	q.SERPFeatures = suggestSERPFeatures(q)
	q.RecommendedContentType = recommendContentType(q)
}

var (
	questionWords = []string{"چگونه", "چطور", "how", "چرا", "why", "چیست", "what"}
	howtoWords    = []string{"آموزش", "راهنما", "tutorial", "guide", "how to"}
	videoWords    = []string{"ویدیو", "فیلم", "video", "watch"}
)

func suggestSERPFeatures(q *models.SearchQuery) []models.SERPFeature {
	var features []models.SERPFeature
	text := q.QueryText
	if containsAny(text, questionWords) {
		features = append(features, models.SERPFAQ, models.SERPPeopleAlsoAsk)
	}
	if containsAny(text, howtoWords) {
		features = append(features, models.SERPHowTo)
	}
	if containsAny(text, videoWords) {
		features = append(features, models.SERPVideo)
	}
	if q.SearchIntent == models.IntentLocal {
		features = append(features, models.SERPLocalPack)
	}
	return features
}

func recommendContentType(q *models.SearchQuery) models.PageType {
	switch {
	case q.SearchIntent == models.IntentTransactional:
		return models.PageService
	case q.SearchIntent == models.IntentLocal:
		return models.PageLocal
	case q.SearchIntent == models.IntentComparison:
		return models.PageArticle
	case strings.Contains(q.QueryText, "how") || strings.Contains(q.QueryText, "چگونه"):
		return models.PageFAQ
	default:
		return models.PageArticle
	}
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// applyTFIDF stamps the simplified single-corpus statistic: tf over the
// body token count, idf against a nominal 1000-document collection.
func applyTFIDF(q *models.SearchQuery, totalWords int) {
	if totalWords > 0 {
		q.TFScore = float64(q.Frequency) / float64(totalWords)
	}
	q.IDFScore = math.Log(1000.0 / float64(q.Frequency+1))
	q.TFIDFScore = q.TFScore * q.IDFScore
}

func assessDifficulty(q models.SearchQuery) models.KeywordDifficulty {
	difficulty := models.DifficultyMedium
	switch q.Source {
	case models.SourceTitle, models.SourceH1, models.SourceURL, models.SourceAltText:
		difficulty = models.DifficultyEasy
	case models.SourceContent:
		switch {
		case q.Frequency > 5:
			difficulty = models.DifficultyEasy
		case q.Frequency > 2:
			difficulty = models.DifficultyMedium
		default:
			difficulty = models.DifficultyHard
		}
	}
	// Long queries tend to be long-tail and easier to rank for.
	if utf8.RuneCountInString(q.QueryText) > 10 {
		difficulty = models.DifficultyEasy
	}
	return difficulty
}

// mainContent isolates the page's primary text, discarding boilerplate
// regions. Prefers a main/article element or a content-classed div, falling
// back to the whole body.
func mainContent(doc *goquery.Document) string {
	doc.Find("nav,footer,header,aside,script,noscript,style").Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})

	sel := doc.Find("main").First()
	if sel.Length() == 0 {
		sel = doc.Find("article").First()
	}
	if sel.Length() == 0 {
		sel = doc.Find("div").FilterFunction(func(_ int, s *goquery.Selection) bool {
			return contentClassRe.MatchString(s.AttrOr("class", ""))
		}).First()
	}
	if sel.Length() == 0 {
		sel = doc.Find("body")
	}
	return strings.TrimSpace(sel.Text())
}

func headingSource(level int) models.KeywordSource {
	switch level {
	case 1:
		return models.SourceH1
	case 2:
		return models.SourceH2
	case 3:
		return models.SourceH3
	case 4:
		return models.SourceH4
	case 5:
		return models.SourceH5
	default:
		return models.SourceH6
	}
}

func pathSegments(rawURL string) []string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	var out []string
	for _, part := range strings.Split(strings.Trim(u.Path, "/"), "/") {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// contextAround returns up to contextWindow characters on either side of
// the phrase's first occurrence in text, preserving the original casing;
// empty when the joined phrase does not literally occur (tokens separated
// by punctuation in the source).
func contextAround(phrase, text string) string {
	lower := strings.ToLower(text)
	idx := strings.Index(lower, phrase)
	if idx < 0 {
		return ""
	}
	// Lowercasing can shift byte offsets for a few scripts; slice the
	// lowered copy only when the offsets no longer line up.
	src := text
	if len(lower) != len(text) {
		src = lower
	}
	start := idx - contextWindow
	if start < 0 {
		start = 0
	}
	for start > 0 && !utf8.RuneStart(src[start]) {
		start--
	}
	end := idx + len(phrase) + contextWindow
	if end > len(src) {
		end = len(src)
	}
	for end < len(src) && !utf8.RuneStart(src[end]) {
		end++
	}
	return strings.TrimSpace(src[start:end])
}

func clip(s string) string {
	r := []rune(s)
	if len(r) <= snippetLen {
		return s
	}
	return string(r[:snippetLen])
}
