package aggregate

import (
	"math"
	"sort"
	"strings"

	"github.com/facetlabs/facet/pkg/facet/sentiment"
)

// Observation is one matched (aspect, sentiment) pair from the local
// pass, tied to the review it came from.
type Observation struct {
	ReviewID string
	Aspect   string
	Trigger  string
	Label    sentiment.Label
	Score    float64
}

// AspectStats is the per-aspect fold of all observations in a run.
type AspectStats struct {
	Name         string   `json:"name"`
	Count        int      `json:"count"`
	ReviewCount  int      `json:"review_count"`
	Positive     int      `json:"positive"`
	Negative     int      `json:"negative"`
	Neutral      int      `json:"neutral"`
	NetSentiment float64  `json:"net_sentiment"`
	Confidence   float64  `json:"confidence"`
	Keywords     []string `json:"keywords,omitempty"`
}

// Aggregator folds observations into per-aspect statistics. All state
// lives in per-call locals; an Aggregator only carries the confidence
// saturation constants.
type Aggregator struct {
	coverageSaturation  int // distinct reviews at which coverage maxes out
	diversitySaturation int // distinct triggers at which diversity maxes out
}

// NewAggregator creates an aggregator. Non-positive saturation constants
// fall back to the defaults (50 reviews, 3 keywords).
func NewAggregator(coverageSaturation, diversitySaturation int) *Aggregator {
	if coverageSaturation <= 0 {
		coverageSaturation = 50
	}
	if diversitySaturation <= 0 {
		diversitySaturation = 3
	}
	return &Aggregator{
		coverageSaturation:  coverageSaturation,
		diversitySaturation: diversitySaturation,
	}
}

type accumulator struct {
	count    int
	reviews  map[string]struct{}
	triggers map[string]struct{}
	positive int
	negative int
	neutral  int
	scoreSum float64
}

// Aggregate folds all observations into AspectStats, sorted by segment
// count descending (ties by name for determinism).
func (a *Aggregator) Aggregate(observations []Observation) []AspectStats {
	acc := make(map[string]*accumulator)
	for _, obs := range observations {
		cur := acc[obs.Aspect]
		if cur == nil {
			cur = &accumulator{
				reviews:  make(map[string]struct{}),
				triggers: make(map[string]struct{}),
			}
			acc[obs.Aspect] = cur
		}
		cur.count++
		cur.reviews[obs.ReviewID] = struct{}{}
		cur.triggers[obs.Trigger] = struct{}{}
		cur.scoreSum += obs.Score
		switch obs.Label {
		case sentiment.Positive:
			cur.positive++
		case sentiment.Negative:
			cur.negative++
		default:
			cur.neutral++
		}
	}

	stats := make([]AspectStats, 0, len(acc))
	for name, cur := range acc {
		net := 0.0
		if cur.count > 0 {
			net = cur.scoreSum / float64(cur.count)
		}
		stats = append(stats, AspectStats{
			Name:         name,
			Count:        cur.count,
			ReviewCount:  len(cur.reviews),
			Positive:     cur.positive,
			Negative:     cur.negative,
			Neutral:      cur.neutral,
			NetSentiment: net,
			Confidence:   a.confidence(len(cur.reviews), len(cur.triggers)),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return strings.Compare(stats[i].Name, stats[j].Name) < 0
	})
	return stats
}

// confidence blends coverage (how many distinct reviews confirm the
// aspect) with trigger diversity (how many different keywords fired).
// A single repeated phrase across thousands of reviews still scores low
// on diversity.
func (a *Aggregator) confidence(reviewCount, triggerCount int) float64 {
	coverage := math.Log2(float64(reviewCount)+1) / math.Log2(float64(a.coverageSaturation))
	if coverage > 1 {
		coverage = 1
	}
	diversity := float64(triggerCount) / float64(a.diversitySaturation)
	if diversity > 1 {
		diversity = 1
	}
	return 0.7*coverage + 0.3*diversity
}
