package textproc

// Persian stop words. Compound forms written with a zero-width non-joiner
// are kept for completeness even though tokenization splits them.
var persianStopWords = map[string]struct{}{
	// Articles, pronouns, particles
	"و": {}, "در": {}, "از": {}, "به": {}, "که": {}, "این": {}, "آن": {}, "با": {},
	"برای": {}, "تا": {}, "را": {}, "است": {}, "بود": {}, "باشد": {}, "می": {},
	"خواهد": {}, "کرد": {}, "کرده": {}, "هم": {}, "نیز": {}, "همچنین": {}, "اما": {},
	"ولی": {}, "اگر": {}, "چون": {}, "زیرا": {}, "چرا": {}, "کجا": {}, "کی": {},
	"چگونه": {}, "چه": {}, "کدام": {}, "کسی": {}, "چیزی": {}, "همه": {}, "تمام": {},
	"کلی": {}, "بعضی": {}, "برخی": {}, "هر": {}, "هیچ": {}, "نه": {}, "نمی": {},
	"های": {}, "ها": {}, "ان": {}, "ات": {}, "ین": {}, "ون": {},

	// Conjugated verbs
	"می‌کند": {}, "می‌شود": {}, "می‌تواند": {}, "می‌توان": {}, "می‌خواهد": {},
	"نمی‌شود": {}, "نمی‌تواند": {}, "نمی‌خواهد": {}, "نمی‌کند": {}, "نمی‌باشد": {},
	"هست": {}, "هستند": {}, "بودند": {}, "باشند": {}, "خواهند": {}, "کردند": {},
	"کرده‌اند": {}, "می‌کنند": {}, "می‌شوند": {}, "می‌توانند": {}, "می‌خواهند": {},
	"شد": {}, "شده": {}, "داشت": {}, "داشته": {}, "خواست": {}, "خواسته": {},

	// Time and place
	"امروز": {}, "دیروز": {}, "فردا": {}, "حالا": {}, "الان": {}, "هفته": {},
	"ماه": {}, "سال": {}, "روز": {}, "شب": {}, "صبح": {}, "ظهر": {}, "عصر": {},
	"داخل": {}, "خارج": {}, "بالا": {}, "پایین": {}, "چپ": {}, "راست": {},
	"وسط": {}, "کنار": {}, "جلوی": {}, "پشت": {}, "زیر": {}, "روی": {}, "بین": {},
	"میان": {}, "دور": {}, "نزدیک": {}, "قبل": {}, "بعد": {},

	// Generic nouns, too broad to be keywords
	"چیز": {}, "کار": {}, "مورد": {}, "نوع": {}, "گونه": {}, "مدل": {}, "سبک": {},
	"روش": {}, "طریقه": {}, "شیوه": {}, "نحوه": {}, "چگونگی": {}, "کیفیت": {},
	"مقدار": {}, "تعداد": {}, "اندازه": {}, "حجم": {}, "وزن": {},

	// Generic adjectives
	"خوب": {}, "بد": {}, "زیبا": {}, "بزرگ": {}, "کوچک": {}, "بلند": {},
	"کوتاه": {}, "جدید": {}, "قدیمی": {}, "تازه": {}, "سریع": {}, "آهسته": {},
	"آسان": {}, "سخت": {}, "مشکل": {}, "راحت": {},
}

var englishStopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "he": {}, "in": {}, "is": {},
	"it": {}, "its": {}, "of": {}, "on": {}, "that": {}, "the": {}, "to": {},
	"was": {}, "will": {}, "with": {}, "would": {}, "you": {}, "your": {},
	"we": {}, "they": {}, "them": {}, "their": {}, "this": {}, "these": {},
	"those": {}, "have": {}, "had": {}, "do": {}, "does": {}, "did": {},
	"can": {}, "could": {}, "should": {}, "may": {}, "might": {}, "must": {},
	"shall": {}, "or": {}, "but": {},
}

// Two-letter words short enough to trip the length filter but meaningful as
// search terms (hair, foot, head, water, copper, thread, barley).
var twoLetterAllow = map[string]struct{}{
	"مو": {}, "پا": {}, "سر": {}, "آب": {}, "مس": {}, "نخ": {}, "جو": {},
}

// IsStopWord reports whether w belongs to the bilingual stop-word set.
func IsStopWord(w string) bool {
	if _, ok := persianStopWords[w]; ok {
		return true
	}
	_, ok := englishStopWords[w]
	return ok
}
