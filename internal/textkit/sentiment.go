package textkit

import "strings"

// Sentiment labels.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Lexicon languages.
const (
	LangEnglish    = "english"
	LangPortuguese = "portuguese"
)

var positiveWords = map[string][]string{
	LangEnglish: {
		"good", "great", "excellent", "happy", "love", "best", "wonderful",
		"fantastic", "amazing", "beautiful", "nice", "awesome", "super",
		"positive", "perfect", "enjoy", "like", "fun", "impressed",
	},
	LangPortuguese: {
		"bom", "ótimo", "excelente", "feliz", "amor", "melhor", "maravilhoso",
		"fantástico", "incrível", "bonito", "legal", "impressionante",
		"positivo", "perfeito", "gosto", "divertido", "impressionado",
	},
}

var negativeWords = map[string][]string{
	LangEnglish: {
		"bad", "terrible", "awful", "worst", "hate", "horrible", "poor",
		"disappointing", "sad", "angry", "negative", "annoying", "wrong",
		"problem", "difficult", "dislike", "boring", "ugly",
	},
	LangPortuguese: {
		"ruim", "terrível", "horrível", "pior", "odeio", "péssimo",
		"decepcionante", "triste", "raiva", "negativo", "irritante",
		"errado", "problema", "difícil", "chato", "feio",
	},
}

var sentimentLexicon = buildLexicon()

func buildLexicon() map[string]map[string]bool {
	lexicon := make(map[string]map[string]bool)
	for lang, words := range positiveWords {
		lexicon["+"+lang] = toSet(words)
	}
	for lang, words := range negativeWords {
		lexicon["-"+lang] = toSet(words)
	}
	return lexicon
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, word := range words {
		set[word] = true
	}
	return set
}

// Sentiment is the outcome of a keyword-based sentiment analysis.
type Sentiment struct {
	Sentiment     string
	Score         float64
	PositiveWords int
	NegativeWords int
	Language      string
}

// AnalyzeSentiment scores a text against small positive and negative word
// lists. The language is guessed from which lexicon matches more words. A
// text with no matches at all is neutral with score 0.5.
func AnalyzeSentiment(text string) (*Sentiment, error) {
	tokens, err := tokenize(strings.ToLower(text))
	if err != nil {
		return nil, err
	}

	ptCount := 0
	enCount := 0
	for _, word := range tokens {
		if sentimentLexicon["+"+LangPortuguese][word] || sentimentLexicon["-"+LangPortuguese][word] {
			ptCount++
		}
		if sentimentLexicon["+"+LangEnglish][word] || sentimentLexicon["-"+LangEnglish][word] {
			enCount++
		}
	}

	lang := LangEnglish
	if ptCount > enCount {
		lang = LangPortuguese
	}

	positive := 0
	negative := 0
	for _, word := range tokens {
		if sentimentLexicon["+"+lang][word] {
			positive++
		}
		if sentimentLexicon["-"+lang][word] {
			negative++
		}
	}

	result := &Sentiment{
		PositiveWords: positive,
		NegativeWords: negative,
		Language:      lang,
	}

	total := positive + negative
	positiveScore := 0.5
	negativeScore := 0.5
	if total > 0 {
		positiveScore = float64(positive) / float64(total)
		negativeScore = float64(negative) / float64(total)
	}

	switch {
	case positiveScore > negativeScore:
		result.Sentiment = SentimentPositive
		result.Score = positiveScore
	case negativeScore > positiveScore:
		result.Sentiment = SentimentNegative
		result.Score = negativeScore
	default:
		result.Sentiment = SentimentNeutral
		result.Score = 0.5
	}

	return result, nil
}
