// Package facet is an aspect-based sentiment analysis engine for
// free-text product reviews. A global pass extracts the statistical
// signals (ranked unigrams and collocations) that seed taxonomy
// discovery; a local pass segments every review into clauses, matches
// them against the taxonomy, scores their sentiment, and folds the
// results into per-aspect statistics.
package facet

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/facetlabs/facet/pkg/facet/aggregate"
	"github.com/facetlabs/facet/pkg/facet/config"
	"github.com/facetlabs/facet/pkg/facet/ingest"
	"github.com/facetlabs/facet/pkg/facet/internalerr"
	"github.com/facetlabs/facet/pkg/facet/sentiment"
	"github.com/facetlabs/facet/pkg/facet/signal"
	"github.com/facetlabs/facet/pkg/facet/taxonomy"
)

// Review is one corpus entry. Immutable once created.
type Review struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// AspectSegment is a single clause matched to an aspect and scored.
type AspectSegment struct {
	Text    string          `json:"text"`
	Aspect  string          `json:"aspect"`
	Trigger string          `json:"trigger"`
	Label   sentiment.Label `json:"label"`
	Score   float64         `json:"score"`
}

// AnalyzedReview is a review with at least one matched segment. Reviews
// where nothing matched are excluded from the result.
type AnalyzedReview struct {
	ReviewID string          `json:"review_id"`
	Text     string          `json:"text"`
	Segments []AspectSegment `json:"segments"`
}

// Result is the immutable snapshot of one analysis run.
type Result struct {
	RunID          string                  `json:"run_id"`
	CreatedAt      time.Time               `json:"created_at"`
	ProcessedCount int                     `json:"processed_count"`
	Reviews        []AnalyzedReview        `json:"reviews"`
	Aspects        []aggregate.AspectStats `json:"aspects"`
	TopWords       []signal.WordStat       `json:"top_words"`
	Warnings       []string                `json:"warnings"`
}

// ProgressFunc receives a monotonically non-decreasing percentage
// (0-100) as the local pass advances. It is always called with 100 at
// completion, even for an empty corpus.
type ProgressFunc func(percent int)

// Options configures an Analyzer.
type Options struct {
	Stopwords []string // nil means the built-in list
	Params    config.Params
	Progress  ProgressFunc // optional
}

// Analyzer owns the full pipeline for one configuration. All aggregate
// state produced during Analyze lives in locals scoped to that call, so
// an Analyzer is safe to reuse across runs.
type Analyzer struct {
	tokenizer  *ingest.Tokenizer
	segmenter  *ingest.Segmenter
	scorer     *sentiment.Scorer
	extractor  *signal.Extractor
	aggregator *aggregate.Aggregator
	integrity  *aggregate.IntegrityChecker
	params     config.Params
	progress   ProgressFunc
}

// New creates an Analyzer from options.
func New(opts Options) *Analyzer {
	params := opts.Params.Normalized()
	tokenizer := ingest.NewTokenizer(opts.Stopwords)
	scorer := sentiment.NewScorer(params.PositiveThreshold, params.NegativeThreshold, params.ClampLimit)
	return &Analyzer{
		tokenizer:  tokenizer,
		segmenter:  ingest.NewSegmenter(),
		scorer:     scorer,
		extractor:  signal.NewExtractor(tokenizer, params.NoiseFloor, params.PMIThreshold, scorer.IsPolar),
		aggregator: aggregate.NewAggregator(params.CoverageSaturation, params.DiversitySaturation),
		integrity:  aggregate.NewIntegrityChecker(params.RepetitionThreshold, params.ConcentrationThreshold),
		params:     params,
		progress:   opts.Progress,
	}
}

// ExtractSignals runs the global corpus pass and returns the ranked
// word/phrase statistics that seed taxonomy discovery. Deterministic
// for a fixed corpus and configuration.
func (a *Analyzer) ExtractSignals(reviews []Review) []signal.WordStat {
	docs := make([]signal.Document, len(reviews))
	for i, r := range reviews {
		docs[i] = signal.Document{ID: r.ID, Text: r.Text}
	}
	return a.extractor.Extract(docs, a.params.SignalLimit)
}

// Analyze runs the full pipeline against a taxonomy: global signal
// pass, then clause segmentation, aspect matching, and sentiment
// scoring per review, then aggregation and integrity checks.
// Cancellation is checked at every batch checkpoint; a cancelled run
// discards its partial state.
func (a *Analyzer) Analyze(ctx context.Context, reviews []Review, tax *taxonomy.Taxonomy) (*Result, error) {
	if tax == nil {
		return nil, fmt.Errorf("%w: nil taxonomy", internalerr.ErrInvalidTaxonomy)
	}

	res := &Result{
		RunID:          ulid.Make().String(),
		CreatedAt:      time.Now().UTC(),
		ProcessedCount: len(reviews),
	}
	if len(reviews) == 0 {
		a.report(100)
		return res, nil
	}

	res.TopWords = a.ExtractSignals(reviews)

	var observations []aggregate.Observation
	for i, rev := range reviews {
		if i > 0 && i%a.params.BatchSize == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			a.report(i * 100 / len(reviews))
		}

		analyzed := AnalyzedReview{ReviewID: rev.ID, Text: rev.Text}
		for _, clause := range a.segmenter.Segment(rev.Text) {
			match, ok := tax.Match(clause)
			if !ok {
				continue
			}
			scored := a.scorer.Score(clause)
			analyzed.Segments = append(analyzed.Segments, AspectSegment{
				Text:    clause,
				Aspect:  match.Aspect,
				Trigger: match.Trigger,
				Label:   scored.Label,
				Score:   scored.Score,
			})
			observations = append(observations, aggregate.Observation{
				ReviewID: rev.ID,
				Aspect:   match.Aspect,
				Trigger:  match.Trigger,
				Label:    scored.Label,
				Score:    scored.Score,
			})
		}
		if len(analyzed.Segments) > 0 {
			res.Reviews = append(res.Reviews, analyzed)
		}
	}

	stats := a.aggregator.Aggregate(observations)
	for i := range stats {
		stats[i].Keywords = tax.Keywords(stats[i].Name)
	}
	res.Aspects = stats

	texts := make([]string, len(reviews))
	for i, r := range reviews {
		texts[i] = r.Text
	}
	res.Warnings = a.integrity.Check(texts, res.TopWords)

	a.report(100)
	return res, nil
}

func (a *Analyzer) report(percent int) {
	if a.progress != nil {
		a.progress(percent)
	}
}
