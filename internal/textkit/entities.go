package textkit

import "regexp"

var (
	emailPattern   = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	urlPattern     = regexp.MustCompile(`https?://[^\s]+`)
	phonePattern   = regexp.MustCompile(`(?:\+\d{1,3}\s?)?\(?\d{2,3}\)?[\s.-]?\d{3,5}[\s.-]?\d{4}`)
	datePattern    = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)
	moneyPattern   = regexp.MustCompile(`[$€£¥]\s?\d+(?:[.,]\d+)?|\d+(?:[.,]\d+)?\s?[$€£¥]`)
	hashtagPattern = regexp.MustCompile(`#[a-zA-Z0-9_]+`)
)

// Entities holds pattern-matched items found in a text, in document order.
type Entities struct {
	Emails   []string
	URLs     []string
	Phones   []string
	Dates    []string
	Money    []string
	Hashtags []string
}

// ExtractEntities finds emails, URLs, phone numbers, dates, money amounts
// and hashtags.
func ExtractEntities(text string) *Entities {
	return &Entities{
		Emails:   emailPattern.FindAllString(text, -1),
		URLs:     urlPattern.FindAllString(text, -1),
		Phones:   phonePattern.FindAllString(text, -1),
		Dates:    datePattern.FindAllString(text, -1),
		Money:    moneyPattern.FindAllString(text, -1),
		Hashtags: hashtagPattern.FindAllString(text, -1),
	}
}
