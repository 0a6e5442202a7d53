package signal

import (
	"math"
	"sort"
	"strings"
)

// WordStat is a ranked vocabulary entry: a unigram or a space-joined
// bigram with its raw count and significance score.
type WordStat struct {
	Token string  `json:"token"`
	Count int64   `json:"count"`
	Score float64 `json:"score"`
}

// PolarityFunc reports whether a token carries intrinsic sentiment
// polarity. Polar tokens belong to the sentiment lexicon, not the topic
// vocabulary, and are excluded from unigram candidates.
type PolarityFunc func(token string) bool

// Normalizer turns raw text into runs of content tokens.
type Normalizer interface {
	NormalizeRuns(text string) [][]string
}

// Document is one corpus entry seen by the extractor.
type Document struct {
	ID   string
	Text string
}

// Extractor computes the ranked word/phrase statistics that seed
// taxonomy discovery.
type Extractor struct {
	tokenizer    Normalizer
	noiseFloor   int64
	pmiThreshold float64
	isPolar      PolarityFunc
}

// NewExtractor creates an extractor. noiseFloor is the minimum raw count
// for any candidate, pmiThreshold the minimum PMI for a bigram to be
// considered a true collocation. isPolar may be nil (no exclusion).
func NewExtractor(tokenizer Normalizer, noiseFloor int, pmiThreshold float64, isPolar PolarityFunc) *Extractor {
	return &Extractor{
		tokenizer:    tokenizer,
		noiseFloor:   int64(noiseFloor),
		pmiThreshold: pmiThreshold,
		isPolar:      isPolar,
	}
}

// Extract runs the global corpus pass and returns at most limit
// WordStats sorted by score descending. Deterministic for a fixed corpus
// and configuration: ties are broken by token. An empty or all-stopword
// corpus yields an empty result.
func (e *Extractor) Extract(docs []Document, limit int) []WordStat {
	counter := NewCounter()
	for _, doc := range docs {
		counter.AddDocument(doc.ID, e.tokenizer.NormalizeRuns(doc.Text))
	}
	return e.rank(counter, limit)
}

func (e *Extractor) rank(c *Counter, limit int) []WordStat {
	var stats []WordStat

	// Bigrams scored by count x PMI. High PMI means the pair co-occurs
	// far more than its parts' frequencies predict (a true collocation
	// like "battery life" rather than compositional noise).
	for pair, count := range c.bigrams {
		if count < e.noiseFloor {
			continue
		}
		pmi := e.pmi(c, pair, count)
		if pmi <= e.pmiThreshold {
			continue
		}
		stats = append(stats, WordStat{
			Token: pair.First + " " + pair.Second,
			Count: count,
			Score: float64(count) * pmi,
		})
	}

	// Unigrams scored by count x log2(df+1): frequency weighted by
	// spread across documents, which suppresses tokens inflated by
	// repetition inside a handful of reviews.
	for token, count := range c.unigrams {
		if count < e.noiseFloor {
			continue
		}
		if e.isPolar != nil && e.isPolar(token) {
			continue
		}
		df := c.DocFreq(token)
		stats = append(stats, WordStat{
			Token: token,
			Count: count,
			Score: float64(count) * math.Log2(float64(df)+1),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Score != stats[j].Score {
			return stats[i].Score > stats[j].Score
		}
		return strings.Compare(stats[i].Token, stats[j].Token) < 0
	})
	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	return stats
}

// pmi computes log2(P(w1,w2) / (P(w1) P(w2))) over corpus-wide
// probabilities.
func (e *Extractor) pmi(c *Counter, pair Bigram, count int64) float64 {
	if c.totalBigrams == 0 || c.totalUnigrams == 0 {
		return 0
	}
	pPair := float64(count) / float64(c.totalBigrams)
	p1 := float64(c.unigrams[pair.First]) / float64(c.totalUnigrams)
	p2 := float64(c.unigrams[pair.Second]) / float64(c.totalUnigrams)
	if p1 == 0 || p2 == 0 {
		return 0
	}
	return math.Log2(pPair / (p1 * p2))
}
