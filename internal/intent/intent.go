// Package intent detects search intent from page signals using weighted
// keyword, URL-pattern and title-pattern matching.
package intent

import (
	"regexp"
	"strings"

	"gapscan/internal/models"
)

// signalSet holds the match signals for one intent category.
type signalSet struct {
	keywords      []string
	urlPatterns   []*regexp.Regexp
	titlePatterns []string
	weight        float64
}

// Classifier scores text against per-intent signal tables. Safe for
// concurrent use; all state is read-only after construction.
type Classifier struct {
	signals map[models.SearchIntent]signalSet

	// Service/procedure terms that imply purchase intent on their own,
	// independent of the transactional keyword list.
	domainTransactional []string
}

func New() *Classifier {
	return &Classifier{
		signals: map[models.SearchIntent]signalSet{
			models.IntentInformational: {
				keywords: []string{
					"چیست", "چگونه", "راهنما", "آموزش", "نحوه", "معرفی",
					"what", "how", "guide", "tutorial", "learn",
					"معنی", "تعریف", "definition", "مزایا", "معایب", "advantages",
				},
				urlPatterns: compile(`/blog/`, `/guide/`, `/learn/`, `/راهنما/`, `/آموزش/`),
				titlePatterns: []string{
					"چیست", "چگونه", "راهنمای", "آموزش", "معرفی",
				},
				weight: 1.0,
			},
			models.IntentTransactional: {
				keywords: []string{
					"خرید", "قیمت", "هزینه", "buy", "price", "cost", "booking",
					"رزرو", "نوبت", "پکیج", "تخفیف", "discount", "offer",
					"پیشنهاد", "سفارش", "order", "پرداخت",
				},
				urlPatterns: compile(`/buy/`, `/price/`, `/booking/`, `/خرید/`, `/قیمت/`, `/نوبت/`),
				titlePatterns: []string{
					"خرید", "قیمت", "هزینه", "رزرو", "نوبت",
				},
				weight: 1.2,
			},
			models.IntentLocal: {
				keywords: []string{
					"نزدیک", "محله", "منطقه", "تهران", "شهر", "آدرس",
					"near", "location", "address",
					"شمال", "جنوب", "شرق", "غرب", "north", "south", "east", "west",
				},
				urlPatterns: compile(`/location/`, `/\w+-tehran/`, `/محله/`, `/منطقه/`),
				titlePatterns: []string{
					"تهران", "شمال", "جنوب", "شرق", "غرب", "منطقه", "محله",
				},
				weight: 1.3,
			},
			models.IntentComparison: {
				keywords: []string{
					"مقایسه", "بهترین", "برتر", "compare", "best", "vs", "versus",
					"یا", "تفاوت", "difference", "انتخاب", "choose", "بهتر", "better",
				},
				urlPatterns: compile(`/compare/`, `/vs/`, `/مقایسه/`, `/best/`),
				titlePatterns: []string{
					"مقایسه", "بهترین", "یا", "vs", "تفاوت",
				},
				weight: 1.1,
			},
			models.IntentNavigational: {
				keywords: []string{
					"سایت", "website", "صفحه اصلی", "home", "login", "ورود", "dashboard",
				},
				urlPatterns: compile(`^/$`, `/home/?$`, `/index`),
				titlePatterns: []string{
					"صفحه اصلی", "home", "خانه",
				},
				weight: 0.9,
			},
		},
		domainTransactional: []string{
			"جراحی", "عمل", "درمان", "لیزر", "surgery", "treatment", "procedure",
		},
	}
}

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(`(?i)`+p))
	}
	return out
}

const contentWindow = 1000

// Detect scores each intent category against the page signals and returns
// the winning category with a confidence in [0,1]. When nothing matches it
// falls back to informational with confidence 0.5.
func (c *Classifier) Detect(title, url, content string, headings []string) (models.SearchIntent, float64) {
	if len(content) > contentWindow {
		content = content[:contentWindow]
	}
	text := strings.ToLower(title + " " + url + " " + content + " " + strings.Join(headings, " "))
	titleLower := strings.ToLower(title)

	scores := make(map[models.SearchIntent]float64, len(c.signals))
	for in, sig := range c.signals {
		var score float64
		for _, kw := range sig.keywords {
			if strings.Contains(text, kw) {
				score += sig.weight
			}
		}
		// URL and title hits outweigh generic keyword occurrence: they are
		// structurally more reliable intent markers.
		for _, re := range sig.urlPatterns {
			if re.MatchString(url) {
				score += 2.0 * sig.weight
			}
		}
		for _, tp := range sig.titlePatterns {
			if strings.Contains(titleLower, tp) {
				score += 1.5 * sig.weight
			}
		}
		scores[in] = score
	}

	for _, kw := range c.domainTransactional {
		if strings.Contains(text, kw) {
			scores[models.IntentTransactional] += 2.0
			break
		}
	}

	// Local searches for a service are usually transactional too.
	if scores[models.IntentLocal] > 0 && scores[models.IntentTransactional] > 0 {
		scores[models.IntentLocal] += 1.5
	}

	var total float64
	for _, s := range scores {
		total += s
	}
	if total == 0 {
		return models.IntentInformational, 0.5
	}

	winner := models.IntentInformational
	best := -1.0
	for _, in := range models.Intents {
		if scores[in] > best {
			best = scores[in]
			winner = in
		}
	}

	confidence := best / total
	if best > 3.0 {
		confidence += 0.2
	}
	if confidence > 1.0 {
		confidence = 1.0
	}
	return winner, confidence
}
