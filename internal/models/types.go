package models

import "time"

// SearchIntent classifies what a searcher is trying to accomplish.
type SearchIntent string

const (
	IntentInformational SearchIntent = "informational"
	IntentTransactional SearchIntent = "transactional"
	IntentLocal         SearchIntent = "local"
	IntentComparison    SearchIntent = "comparison"
	IntentNavigational  SearchIntent = "navigational"
)

// Intents lists every intent category.
var Intents = []SearchIntent{
	IntentInformational,
	IntentTransactional,
	IntentLocal,
	IntentComparison,
	IntentNavigational,
}

// KeywordSource identifies where on a page a query was extracted from.
type KeywordSource string

const (
	SourceTitle      KeywordSource = "title"
	SourceMeta       KeywordSource = "meta"
	SourceH1         KeywordSource = "h1"
	SourceH2         KeywordSource = "h2"
	SourceH3         KeywordSource = "h3"
	SourceH4         KeywordSource = "h4"
	SourceH5         KeywordSource = "h5"
	SourceH6         KeywordSource = "h6"
	SourceContent    KeywordSource = "content"
	SourceURL        KeywordSource = "url"
	SourceAltText    KeywordSource = "alt_text"
	SourceAnchorText KeywordSource = "anchor_text"
)

// KeywordDifficulty is a coarse ranking-difficulty estimate.
type KeywordDifficulty string

const (
	DifficultyEasy     KeywordDifficulty = "easy"
	DifficultyMedium   KeywordDifficulty = "medium"
	DifficultyHard     KeywordDifficulty = "hard"
	DifficultyVeryHard KeywordDifficulty = "very_hard"
)

// PageType is the content format recommended for targeting a query.
type PageType string

const (
	PageArticle PageType = "article"
	PageService PageType = "service"
	PageLocal   PageType = "local"
	PageFAQ     PageType = "faq"
	PageProduct PageType = "product"
)

// SERPFeature is a search-result feature a query could surface in.
type SERPFeature string

const (
	SERPFAQ           SERPFeature = "faq"
	SERPHowTo         SERPFeature = "howto"
	SERPVideo         SERPFeature = "video"
	SERPLocalPack     SERPFeature = "local_pack"
	SERPPeopleAlsoAsk SERPFeature = "people_also_ask"
)

// PriorityTier buckets an opportunity by recommended urgency.
type PriorityTier string

const (
	TierQuickWin     PriorityTier = "quick_win"
	TierHighPriority PriorityTier = "high_priority"
	TierMedium       PriorityTier = "medium"
	TierLongTerm     PriorityTier = "long_term"
)

// SearchQuery is a demand unit: a candidate search query extracted from a
// page, carrying provenance, frequency and scoring metadata rather than
// being a bare string.
type SearchQuery struct {
	QueryText string        `json:"query_text"`
	Source    KeywordSource `json:"source"`
	Frequency int           `json:"frequency"`

	NgramSize  int  `json:"ngram_size"`
	IsLongTail bool `json:"is_long_tail"` // 3+ tokens

	SearchIntent     SearchIntent `json:"search_intent"`
	IntentConfidence float64      `json:"intent_confidence"`
	EntityContext    string       `json:"entity_context,omitempty"`

	Difficulty KeywordDifficulty `json:"difficulty"`

	SERPFeatures           []SERPFeature `json:"serp_features,omitempty"`
	RecommendedContentType PageType      `json:"recommended_content_type"`

	ContextSnippet string `json:"context_snippet,omitempty"`

	TFScore    float64 `json:"tf_score"`
	IDFScore   float64 `json:"idf_score"`
	TFIDFScore float64 `json:"tfidf_score"`

	// Competitor URLs where this exact query text was observed. Empty for
	// queries extracted from the analyzed site itself.
	FoundOnCompetitors []string `json:"found_on_competitors,omitempty"`
}

// KeywordGapOpportunity wraps a query found on competitors but absent from
// the analyzed site's own query set.
type KeywordGapOpportunity struct {
	Query SearchQuery `json:"query"`

	// Only "missing" is produced today; "weak_presence" and "underoptimized"
	// are reserved.
	GapType string `json:"gap_type"`

	OwnVisibility        float64 `json:"own_visibility"`
	CompetitorVisibility float64 `json:"competitor_visibility"`
	VisibilityGap        float64 `json:"visibility_gap"`

	VolumeScore      float64 `json:"volume_score"`
	RelevanceScore   float64 `json:"relevance_score"`
	DifficultyScore  float64 `json:"difficulty_score"`
	IntentMatchScore float64 `json:"intent_match_score"`
	CompetitionScore float64 `json:"competition_score"`

	OpportunityScore float64 `json:"opportunity_score"`

	PriorityTier      PriorityTier `json:"priority_tier"`
	PriorityReasoning string       `json:"priority_reasoning"`

	EffortEstimateHours     float64 `json:"effort_estimate_hours"`
	EstimatedMonthlyTraffic int     `json:"estimated_monthly_traffic"`

	RecommendedActions []string `json:"recommended_actions,omitempty"`
	TopCompetitorURLs  []string `json:"top_competitor_urls,omitempty"`
}

// BusinessContext is caller-supplied business information used only as a
// read-only input to relevance scoring. All fields are optional.
type BusinessContext struct {
	Industry         string   `json:"industry,omitempty" yaml:"industry"`
	Niche            string   `json:"niche,omitempty" yaml:"niche"`
	Services         []string `json:"services,omitempty" yaml:"services"`
	Products         []string `json:"products,omitempty" yaml:"products"`
	TargetLocations  []string `json:"target_locations,omitempty" yaml:"target_locations"`
	BrandKeywords    []string `json:"brand_keywords,omitempty" yaml:"brand_keywords"`
	ExcludedKeywords []string `json:"excluded_keywords,omitempty" yaml:"excluded_keywords"`
}

// StrategicRecommendation is one high-level action block in the report.
type StrategicRecommendation struct {
	Title       string   `json:"title"`
	Priority    string   `json:"priority"`
	Description string   `json:"description"`
	Action      string   `json:"action"`
	Keywords    []string `json:"keywords"`
}

// CalendarEntry schedules one opportunity into the content calendar.
type CalendarEntry struct {
	Week             int          `json:"week"`
	Keyword          string       `json:"keyword"`
	ContentType      PageType     `json:"content_type"`
	Priority         PriorityTier `json:"priority"`
	EffortHours      float64      `json:"effort_hours"`
	EstimatedTraffic int          `json:"estimated_traffic"`
	Actions          []string     `json:"actions,omitempty"`
}

// AnalysisResult is the full JSON-serializable output of one gap analysis.
type AnalysisResult struct {
	OwnWebsiteURL   string           `json:"own_website_url"`
	CompetitorURLs  []string         `json:"competitor_urls"`
	BusinessContext *BusinessContext `json:"business_context,omitempty"`

	OwnQueries        []SearchQuery            `json:"own_queries"`
	CompetitorQueries map[string][]SearchQuery `json:"competitor_queries"`

	// Sorted by opportunity score, descending.
	GapOpportunities []KeywordGapOpportunity `json:"gap_opportunities"`

	QuickWins      []KeywordGapOpportunity `json:"quick_wins"`
	HighPriority   []KeywordGapOpportunity `json:"high_priority"`
	MediumPriority []KeywordGapOpportunity `json:"medium_priority"`
	LongTerm       []KeywordGapOpportunity `json:"long_term"`

	InformationalGaps []KeywordGapOpportunity `json:"informational_gaps"`
	TransactionalGaps []KeywordGapOpportunity `json:"transactional_gaps"`
	LocalGaps         []KeywordGapOpportunity `json:"local_gaps"`
	ComparisonGaps    []KeywordGapOpportunity `json:"comparison_gaps"`
	NavigationalGaps  []KeywordGapOpportunity `json:"navigational_gaps"`

	StrategicRecommendations   []StrategicRecommendation `json:"strategic_recommendations"`
	ContentCalendarSuggestions []CalendarEntry           `json:"content_calendar_suggestions"`

	TotalGapsFound        int     `json:"total_gaps_found"`
	TotalOpportunityValue int     `json:"total_opportunity_value"`
	AvgDifficulty         float64 `json:"avg_difficulty"`
	AvgRelevance          float64 `json:"avg_relevance"`

	AnalysisDate          time.Time `json:"analysis_date"`
	ProcessingTimeSeconds float64   `json:"processing_time_seconds"`
}
