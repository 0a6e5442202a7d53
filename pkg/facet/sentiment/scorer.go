package sentiment

import (
	"math"
	"strings"

	"github.com/jonreiter/govader"
)

// Label is a sentiment polarity class.
type Label string

const (
	Positive Label = "positive"
	Negative Label = "negative"
	Neutral  Label = "neutral"
)

// Result is a scored clause: a polarity label plus the compound score
// in [-1, 1].
type Result struct {
	Label Label
	Score float64
}

// intensifiers exempt a clause from the magnitude clamp: an explicit
// booster word justifies an extreme score.
var intensifiers = map[string]struct{}{
	"very": {}, "extremely": {}, "absolutely": {}, "incredibly": {},
	"really": {}, "totally": {}, "completely": {}, "utterly": {},
	"super": {}, "amazingly": {},
}

// Scorer assigns polarity to clauses using the VADER lexicon. It is pure
// and total: no state changes between calls, and internal failures fall
// back to Neutral/0 rather than aborting a corpus scan.
type Scorer struct {
	analyzer     *govader.SentimentIntensityAnalyzer
	posThreshold float64
	negThreshold float64
	clampLimit   float64
}

// NewScorer creates a scorer with the given label thresholds and
// magnitude clamp. Zero thresholds fall back to the +-0.05 defaults and
// a 0.85 clamp.
func NewScorer(posThreshold, negThreshold, clampLimit float64) *Scorer {
	if posThreshold == 0 {
		posThreshold = 0.05
	}
	if negThreshold == 0 {
		negThreshold = -0.05
	}
	if clampLimit == 0 {
		clampLimit = 0.85
	}
	return &Scorer{
		analyzer:     govader.NewSentimentIntensityAnalyzer(),
		posThreshold: posThreshold,
		negThreshold: negThreshold,
		clampLimit:   clampLimit,
	}
}

// Score rates one clause. Compound magnitudes above the clamp limit are
// pulled back unless the clause contains an intensifier word.
func (s *Scorer) Score(clause string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Label: Neutral, Score: 0}
		}
	}()

	compound := s.analyzer.PolarityScores(clause).Compound
	if math.Abs(compound) > s.clampLimit && !hasIntensifier(clause) {
		compound = math.Copysign(s.clampLimit, compound)
	}

	switch {
	case compound >= s.posThreshold:
		return Result{Label: Positive, Score: compound}
	case compound <= s.negThreshold:
		return Result{Label: Negative, Score: compound}
	default:
		return Result{Label: Neutral, Score: compound}
	}
}

// IsPolar reports whether a single token carries intrinsic sentiment
// polarity on its own. The signal extractor uses this to keep lexicon
// words out of the topic vocabulary.
func (s *Scorer) IsPolar(token string) (polar bool) {
	defer func() {
		if r := recover(); r != nil {
			polar = false
		}
	}()
	compound := s.analyzer.PolarityScores(token).Compound
	return compound >= s.posThreshold || compound <= s.negThreshold
}

func hasIntensifier(clause string) bool {
	for _, field := range strings.Fields(strings.ToLower(clause)) {
		word := strings.Trim(field, ".,!?;:\"'()")
		if _, ok := intensifiers[word]; ok {
			return true
		}
	}
	return false
}
