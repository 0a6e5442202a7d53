package ingest

import (
	"strings"
	"testing"
)

func TestSegmentSentences(t *testing.T) {
	seg := NewSegmenter()

	clauses := seg.Segment("Arrived fast. Box was dented! Works fine?")
	if len(clauses) != 3 {
		t.Fatalf("expected 3 clauses, got %v", clauses)
	}
}

func TestSegmentContrastiveSplit(t *testing.T) {
	seg := NewSegmenter()

	clauses := seg.Segment("Battery life is great but the box was crushed.")
	if len(clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %v", clauses)
	}
	if clauses[0] != "Battery life is great" {
		t.Errorf("unexpected first clause %q", clauses[0])
	}
	if clauses[1] != "the box was crushed" {
		t.Errorf("unexpected second clause %q", clauses[1])
	}
}

func TestSegmentContrastiveWithComma(t *testing.T) {
	seg := NewSegmenter()

	clauses := seg.Segment("Tastes great, however the delivery took weeks")
	if len(clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %v", clauses)
	}
	for _, c := range clauses {
		if strings.Contains(strings.ToLower(c), "however") {
			t.Errorf("conjunction should be consumed by the split: %q", c)
		}
	}
}

func TestSegmentConjunctionVariants(t *testing.T) {
	seg := NewSegmenter()

	for _, conj := range []string{"but", "however", "although", "yet", "while"} {
		text := "Solid build quality " + conj + " the price seems steep"
		if clauses := seg.Segment(text); len(clauses) != 2 {
			t.Errorf("%q should split on %q, got %v", text, conj, clauses)
		}
	}
}

func TestSegmentDropsTinyClauses(t *testing.T) {
	seg := NewSegmenter()

	clauses := seg.Segment("Ok. The speaker crackles at high volume.")
	if len(clauses) != 1 {
		t.Fatalf("expected the two-character clause dropped, got %v", clauses)
	}
}

func TestSegmentFallbackToWholeText(t *testing.T) {
	seg := NewSegmenter()

	clauses := seg.Segment("ok")
	if len(clauses) != 1 || clauses[0] != "ok" {
		t.Fatalf("non-empty input must yield at least one clause, got %v", clauses)
	}
}

func TestSegmentEmptyInput(t *testing.T) {
	seg := NewSegmenter()

	if clauses := seg.Segment("   "); clauses != nil {
		t.Fatalf("whitespace input should yield nil, got %v", clauses)
	}
}
