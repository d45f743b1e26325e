package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gapscan/internal/models"
)

const samplePage = `<!doctype html><html lang="en"><head>
<title>Skin Care Guide</title>
<meta name="description" content="Professional skin rejuvenation treatments">
</head><body>
<nav>home about contact</nav>
<h1>Rejuvenation Services</h1>
<main>
<p>Our rejuvenation clinic offers modern rejuvenation treatments.</p>
<img src="/d.jpg" alt="laser device photo">
<a href="/booking">booking page</a>
</main>
<footer>copyright</footer>
</body></html>`

func queriesByText(t *testing.T, queries []models.SearchQuery) map[string]models.SearchQuery {
	t.Helper()
	out := make(map[string]models.SearchQuery, len(queries))
	for _, q := range queries {
		_, dup := out[q.QueryText]
		require.False(t, dup, "duplicate query text %q", q.QueryText)
		out[q.QueryText] = q
	}
	return out
}

func TestExtractQueriesSources(t *testing.T) {
	e := New()
	queries, err := e.ExtractQueries(samplePage, "https://clinic.example/skin-care/guide")
	require.NoError(t, err)
	require.NotEmpty(t, queries)

	byText := queriesByText(t, queries)

	assert.Equal(t, models.SourceTitle, byText["skin care guide"].Source)
	assert.Equal(t, models.SourceMeta, byText["professional"].Source)
	assert.Equal(t, models.SourceH1, byText["rejuvenation services"].Source)
	assert.Equal(t, models.SourceAltText, byText["laser device photo"].Source)
	assert.Equal(t, models.SourceAnchorText, byText["booking page"].Source)

	// "rejuvenation" recurs in the page body
	rej, ok := byText["rejuvenation"]
	require.True(t, ok)
	assert.GreaterOrEqual(t, rej.Frequency, 2)

	// boilerplate regions do not contribute content queries
	assert.NotContains(t, byText, "copyright")
}

func TestExtractQueriesURLSegments(t *testing.T) {
	e := New()
	queries, err := e.ExtractQueries("<html><body></body></html>", "https://clinic.example/laser-hair-removal/price")
	require.NoError(t, err)

	byText := queriesByText(t, queries)
	require.Contains(t, byText, "laser hair removal")
	assert.Equal(t, models.SourceURL, byText["laser hair removal"].Source)
	assert.True(t, byText["laser hair removal"].IsLongTail)
	assert.Contains(t, byText, "price")
}

func TestExtractQueriesMergesAcrossSources(t *testing.T) {
	page := `<html><head><title>Laser Clinic</title></head><body>
<main>laser clinic services laser clinic services</main>
</body></html>`

	e := New()
	queries, err := e.ExtractQueries(page, "https://clinic.example/")
	require.NoError(t, err)

	byText := queriesByText(t, queries)
	lc, ok := byText["laser clinic"]
	require.True(t, ok)
	// title occurrence plus two body occurrences
	assert.Equal(t, 3, lc.Frequency)
	// earliest extraction wins the source
	assert.Equal(t, models.SourceTitle, lc.Source)
}

func TestExtractQueriesIdempotent(t *testing.T) {
	e := New()
	first, err := e.ExtractQueries(samplePage, "https://clinic.example/skin-care/guide")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := e.ExtractQueries(samplePage, "https://clinic.example/skin-care/guide")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestExtractQueriesEmptyPage(t *testing.T) {
	e := New()
	queries, err := e.ExtractQueries("<html><head></head><body></body></html>", "https://clinic.example/")
	require.NoError(t, err)
	assert.Empty(t, queries)
}

func TestExtractQueriesAnnotations(t *testing.T) {
	page := `<html><head><title>قیمت لیزر موهای زائد</title></head><body></body></html>`
	e := New()
	queries, err := e.ExtractQueries(page, "https://clinic.example/قیمت/laser")
	require.NoError(t, err)
	require.NotEmpty(t, queries)

	for _, q := range queries {
		assert.NotEmpty(t, q.SearchIntent, "query %q missing intent", q.QueryText)
		assert.Greater(t, q.IntentConfidence, 0.0)
		assert.NotEmpty(t, q.Difficulty)
		assert.NotEmpty(t, q.RecommendedContentType)
	}

	byText := queriesByText(t, queries)
	full, ok := byText["قیمت لیزر موهای زائد"]
	require.True(t, ok)
	assert.Equal(t, models.IntentTransactional, full.SearchIntent)
	assert.Equal(t, models.DifficultyEasy, full.Difficulty)
}

func TestContextAroundKeepsOriginalCasing(t *testing.T) {
	text := "Our Laser Clinic offers gentle treatments for every skin type."

	snippet := contextAround("laser clinic", text)
	assert.Contains(t, snippet, "Laser Clinic")
	assert.Contains(t, snippet, "gentle treatments")

	assert.Empty(t, contextAround("hair removal", text))
}
