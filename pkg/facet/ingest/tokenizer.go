package ingest

import (
	"strings"
	"unicode"
)

// DefaultStopwords is the built-in stop-word list: pronouns, auxiliary and
// linking verbs, articles, generic sentiment adjectives, and domain-filler
// nouns that carry no topical signal in product reviews.
var DefaultStopwords = []string{
	// pronouns & determiners
	"the", "and", "for", "with", "this", "that", "these", "those",
	"you", "your", "yours", "our", "ours", "their", "theirs", "his", "her",
	"hers", "its", "she", "him", "them", "they", "what", "which", "who",
	"whom", "any", "all", "each", "some", "such", "both", "few", "more",
	"most", "other", "own", "same", "than", "then", "too", "very", "just",
	"also", "about", "into", "over", "under", "again", "further", "once",
	"here", "there", "when", "where", "why", "how", "not", "nor", "only",
	// auxiliary & linking verbs
	"was", "were", "are", "been", "being", "have", "has", "had", "having",
	"does", "did", "doing", "would", "should", "could", "can", "will",
	"may", "might", "must", "shall", "get", "got", "getting",
	// generic sentiment adjectives (the lexicon handles polarity, the
	// topic vocabulary should not)
	"good", "great", "bad", "nice", "love", "like", "best", "worst",
	"amazing", "awesome", "terrible", "horrible", "perfect", "excellent",
	"really", "definitely", "absolutely", "highly",
	// domain fillers
	"product", "item", "thing", "stuff", "buy", "bought", "purchase",
	"purchased", "order", "ordered", "use", "used", "using", "one", "two",
	"time", "day", "way", "lot", "bit", "recommend", "review", "star",
	"stars", "amazon",
}

// Tokenizer normalizes raw review text into topic tokens.
type Tokenizer struct {
	stopwords map[string]struct{}
}

// NewTokenizer creates a tokenizer with the given stop-word list.
// A nil list falls back to DefaultStopwords.
func NewTokenizer(stopwords []string) *Tokenizer {
	if stopwords == nil {
		stopwords = DefaultStopwords
	}
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &Tokenizer{stopwords: stops}
}

// Normalize lowercases the text, strips possessives and punctuation,
// drops short and stop-word tokens, and stems what survives.
func (t *Tokenizer) Normalize(text string) []string {
	var tokens []string
	for _, run := range t.NormalizeRuns(text) {
		tokens = append(tokens, run...)
	}
	return tokens
}

// NormalizeRuns behaves like Normalize but preserves phrase boundaries:
// each inner slice is a run of consecutive content tokens. Every filtered
// word (stop-word or short token) ends the current run, so a bigram never
// spans a filtered word.
func (t *Tokenizer) NormalizeRuns(text string) [][]string {
	cleaned := stripPossessives(strings.ToLower(text))

	var runs [][]string
	var current []string
	flush := func() {
		if len(current) > 0 {
			runs = append(runs, current)
			current = nil
		}
	}

	var word strings.Builder
	emit := func() {
		if word.Len() == 0 {
			return
		}
		raw := word.String()
		word.Reset()
		if len(raw) <= 2 || t.isStopword(raw) {
			flush()
			return
		}
		stemmed := Stem(raw)
		if t.isStopword(stemmed) {
			flush()
			return
		}
		current = append(current, stemmed)
	}

	for _, r := range cleaned {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			word.WriteRune(r)
		} else {
			emit()
		}
	}
	emit()
	flush()

	return runs
}

// stripPossessives removes trailing 's and 't contractions so that
// "battery's" and "doesn't" tokenize as "battery" and "doesn".
func stripPossessives(text string) string {
	text = strings.ReplaceAll(text, "'s", "")
	text = strings.ReplaceAll(text, "’s", "")
	text = strings.ReplaceAll(text, "'t", "")
	text = strings.ReplaceAll(text, "’t", "")
	return text
}

func (t *Tokenizer) isStopword(word string) bool {
	_, ok := t.stopwords[word]
	return ok
}

// AddStopword adds a word to the stop-word list.
func (t *Tokenizer) AddStopword(word string) {
	t.stopwords[strings.ToLower(word)] = struct{}{}
}

// RemoveStopword removes a word from the stop-word list.
func (t *Tokenizer) RemoveStopword(word string) {
	delete(t.stopwords, strings.ToLower(word))
}
