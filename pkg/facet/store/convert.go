package store

import "github.com/facetlabs/facet/pkg/facet"

// FromResult converts an engine Result snapshot into its stored form.
// Per-segment detail is not persisted; runs keep the aggregate view the
// report surfaces need.
func FromResult(res *facet.Result) Run {
	segments := 0
	for _, rev := range res.Reviews {
		segments += len(rev.Segments)
	}

	run := Run{
		ID:           res.RunID,
		CreatedAt:    res.CreatedAt,
		ReviewCount:  res.ProcessedCount,
		SegmentCount: segments,
		Warnings:     res.Warnings,
	}

	for _, a := range res.Aspects {
		run.Aspects = append(run.Aspects, AspectRecord{
			Name:         a.Name,
			Count:        a.Count,
			ReviewCount:  a.ReviewCount,
			Positive:     a.Positive,
			Negative:     a.Negative,
			Neutral:      a.Neutral,
			NetSentiment: a.NetSentiment,
			Confidence:   a.Confidence,
			Keywords:     a.Keywords,
		})
	}
	for i, w := range res.TopWords {
		run.TopWords = append(run.TopWords, WordRecord{
			Rank:  i + 1,
			Token: w.Token,
			Count: w.Count,
			Score: w.Score,
		})
	}
	return run
}
