package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/facetlabs/facet/pkg/facet/internalerr"
	"github.com/facetlabs/facet/pkg/facet/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu   sync.RWMutex
	runs map[string]store.Run
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{runs: make(map[string]store.Run)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveRun stores a run snapshot, rejecting duplicate IDs.
func (s *Store) SaveRun(ctx context.Context, r store.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[r.ID]; ok {
		return fmt.Errorf("run %s already stored", r.ID)
	}
	s.runs[r.ID] = copyRun(r)
	return nil
}

// GetRun returns a run snapshot by ID.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.runs[id]; ok {
		return copyRun(r), nil
	}
	return store.Run{}, fmt.Errorf("%w: run %s", internalerr.ErrNotFound, id)
}

// LatestRun returns the most recently created run.
func (s *Store) LatestRun(ctx context.Context) (store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		latest store.Run
		found  bool
	)
	for _, r := range s.runs {
		if !found || r.CreatedAt.After(latest.CreatedAt) {
			latest = r
			found = true
		}
	}
	if !found {
		return store.Run{}, fmt.Errorf("%w: no runs stored", internalerr.ErrNotFound)
	}
	return copyRun(latest), nil
}

// ListRuns returns run summaries ordered newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]store.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	out := make([]store.RunSummary, 0, len(s.runs))
	for _, r := range s.runs {
		out = append(out, store.RunSummary{
			ID:           r.ID,
			CreatedAt:    r.CreatedAt,
			ReviewCount:  r.ReviewCount,
			SegmentCount: r.SegmentCount,
			AspectCount:  len(r.Aspects),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func copyRun(r store.Run) store.Run {
	copySlice := func(in []string) []string {
		if in == nil {
			return nil
		}
		out := make([]string, len(in))
		copy(out, in)
		return out
	}

	out := r
	out.Warnings = copySlice(r.Warnings)
	if r.Aspects != nil {
		out.Aspects = make([]store.AspectRecord, len(r.Aspects))
		for i, a := range r.Aspects {
			out.Aspects[i] = a
			out.Aspects[i].Keywords = copySlice(a.Keywords)
		}
	}
	if r.TopWords != nil {
		out.TopWords = make([]store.WordRecord, len(r.TopWords))
		copy(out.TopWords, r.TopWords)
	}
	return out
}
