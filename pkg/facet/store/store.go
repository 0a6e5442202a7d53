package store

import (
	"context"
	"time"
)

// Store persists completed analysis runs for later reporting. The
// engine itself never writes here; persistence happens after a run's
// Result snapshot is sealed.
type Store interface {
	Close() error

	SaveRun(ctx context.Context, r Run) error
	GetRun(ctx context.Context, id string) (Run, error)
	LatestRun(ctx context.Context) (Run, error)
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
}

// Run is a stored analysis snapshot.
type Run struct {
	ID           string
	CreatedAt    time.Time
	ReviewCount  int
	SegmentCount int
	Warnings     []string
	Aspects      []AspectRecord
	TopWords     []WordRecord
}

// RunSummary is the listing view of a run.
type RunSummary struct {
	ID           string
	CreatedAt    time.Time
	ReviewCount  int
	SegmentCount int
	AspectCount  int
}

// AspectRecord is one aspect's aggregated statistics within a run.
type AspectRecord struct {
	Name         string
	Count        int
	ReviewCount  int
	Positive     int
	Negative     int
	Neutral      int
	NetSentiment float64
	Confidence   float64
	Keywords     []string
}

// WordRecord is one ranked vocabulary entry within a run.
type WordRecord struct {
	Rank  int
	Token string
	Count int64
	Score float64
}
