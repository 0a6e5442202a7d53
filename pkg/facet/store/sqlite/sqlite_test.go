package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/facetlabs/facet/pkg/facet/internalerr"
	"github.com/facetlabs/facet/pkg/facet/store"
)

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := Open(context.Background(), filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func sampleRun(id string, createdAt time.Time) store.Run {
	return store.Run{
		ID:           id,
		CreatedAt:    createdAt,
		ReviewCount:  120,
		SegmentCount: 245,
		Warnings:     []string{"high duplication: 40% of reviews are repeated text"},
		Aspects: []store.AspectRecord{
			{
				Name: "Battery", Count: 80, ReviewCount: 60,
				Positive: 50, Negative: 20, Neutral: 10,
				NetSentiment: 0.31, Confidence: 0.92,
				Keywords: []string{"battery", "battery life", "charge"},
			},
			{
				Name: "Packaging", Count: 40, ReviewCount: 35,
				Positive: 5, Negative: 30, Neutral: 5,
				NetSentiment: -0.44, Confidence: 0.78,
				Keywords: []string{"box", "packaging"},
			},
		},
		TopWords: []store.WordRecord{
			{Rank: 1, Token: "battery life", Count: 85, Score: 201.4},
			{Rank: 2, Token: "battery", Count: 97, Score: 188.2},
		},
	}
}

func TestSaveAndGetRun(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	run := sampleRun("01RUN", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	if err := st.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, err := st.GetRun(ctx, "01RUN")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if !reflect.DeepEqual(got, run) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, run)
	}
}

func TestGetRunNotFound(t *testing.T) {
	st := openTestStore(t)

	_, err := st.GetRun(context.Background(), "missing")
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLatestRun(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	older := sampleRun("01OLD", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	newer := sampleRun("01NEW", time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC))
	if err := st.SaveRun(ctx, older); err != nil {
		t.Fatalf("SaveRun older: %v", err)
	}
	if err := st.SaveRun(ctx, newer); err != nil {
		t.Fatalf("SaveRun newer: %v", err)
	}

	got, err := st.LatestRun(ctx)
	if err != nil {
		t.Fatalf("LatestRun: %v", err)
	}
	if got.ID != "01NEW" {
		t.Errorf("latest = %q, want 01NEW", got.ID)
	}
}

func TestLatestRunEmpty(t *testing.T) {
	st := openTestStore(t)

	_, err := st.LatestRun(context.Background())
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListRuns(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for i, id := range []string{"01AAA", "01BBB", "01CCC"} {
		run := sampleRun(id, time.Date(2025, 6, 1+i, 0, 0, 0, 0, time.UTC))
		if err := st.SaveRun(ctx, run); err != nil {
			t.Fatalf("SaveRun %s: %v", id, err)
		}
	}

	summaries, err := st.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].ID != "01CCC" || summaries[1].ID != "01BBB" {
		t.Errorf("unexpected order: %+v", summaries)
	}
	if summaries[0].AspectCount != 2 {
		t.Errorf("aspect count = %d, want 2", summaries[0].AspectCount)
	}
}

func TestSaveRunDuplicateID(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	run := sampleRun("01DUP", time.Now().UTC())
	if err := st.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if err := st.SaveRun(ctx, run); err == nil {
		t.Fatal("expected primary key violation on duplicate run id")
	}
}
