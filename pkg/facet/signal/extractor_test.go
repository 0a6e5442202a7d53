package signal

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

// splitNormalizer is a trivial Normalizer for tests: words separated by
// whitespace form one run per line.
type splitNormalizer struct{}

func (splitNormalizer) NormalizeRuns(text string) [][]string {
	var runs [][]string
	for _, line := range strings.Split(text, "\n") {
		if fields := strings.Fields(line); len(fields) > 0 {
			runs = append(runs, fields)
		}
	}
	return runs
}

func collocationCorpus() []Document {
	// "battery life" co-occurs in every document while the surrounding
	// vocabulary varies, giving the bigram high PMI.
	var docs []Document
	fillers := []string{"case", "cable", "manual", "screen", "button", "charger", "socket", "stand", "strap", "clip"}
	for i, filler := range fillers {
		docs = append(docs, Document{
			ID:   fmt.Sprintf("rev-%d", i),
			Text: "battery life " + filler,
		})
	}
	return docs
}

func TestExtractFindsCollocation(t *testing.T) {
	ex := NewExtractor(splitNormalizer{}, 3, 2.0, nil)

	stats := ex.Extract(collocationCorpus(), 20)
	if len(stats) == 0 {
		t.Fatal("expected stats")
	}
	if !hasToken(stats, "battery life") {
		t.Errorf("expected bigram 'battery life' in %v", stats)
	}
}

func TestExtractNoiseFloorSuppressesRareBigrams(t *testing.T) {
	ex := NewExtractor(splitNormalizer{}, 3, 2.0, nil)

	docs := append(collocationCorpus(),
		Document{ID: "x1", Text: "zinc alloy"},
		Document{ID: "x2", Text: "zinc alloy"},
	)
	stats := ex.Extract(docs, 50)
	if hasToken(stats, "zinc alloy") {
		t.Error("bigram below the noise floor must not appear")
	}
	if hasToken(stats, "zinc") {
		t.Error("unigram below the noise floor must not appear")
	}
}

func TestExtractSortedDescending(t *testing.T) {
	ex := NewExtractor(splitNormalizer{}, 1, 2.0, nil)

	stats := ex.Extract(collocationCorpus(), 50)
	for i := 1; i < len(stats); i++ {
		if stats[i].Score > stats[i-1].Score {
			t.Fatalf("stats not sorted by score at %d: %v", i, stats)
		}
	}
}

func TestExtractLimit(t *testing.T) {
	ex := NewExtractor(splitNormalizer{}, 1, 2.0, nil)

	stats := ex.Extract(collocationCorpus(), 2)
	if len(stats) > 2 {
		t.Fatalf("limit not applied: %d stats", len(stats))
	}
}

func TestExtractDeterministic(t *testing.T) {
	ex := NewExtractor(splitNormalizer{}, 1, 2.0, nil)

	docs := collocationCorpus()
	first := ex.Extract(docs, 50)
	for i := 0; i < 10; i++ {
		if again := ex.Extract(docs, 50); !reflect.DeepEqual(first, again) {
			t.Fatalf("extract not deterministic on run %d", i)
		}
	}
}

func TestExtractEmptyCorpus(t *testing.T) {
	ex := NewExtractor(splitNormalizer{}, 3, 2.0, nil)

	if stats := ex.Extract(nil, 10); len(stats) != 0 {
		t.Errorf("empty corpus should yield no stats, got %v", stats)
	}
}

func TestExtractExcludesPolarTokens(t *testing.T) {
	isPolar := func(token string) bool { return token == "delightful" }
	ex := NewExtractor(splitNormalizer{}, 1, 2.0, isPolar)

	var docs []Document
	for i := 0; i < 5; i++ {
		docs = append(docs, Document{ID: fmt.Sprintf("d%d", i), Text: "delightful\nbattery"})
	}
	stats := ex.Extract(docs, 50)
	if hasToken(stats, "delightful") {
		t.Error("polar token must not enter the topic vocabulary")
	}
	if !hasToken(stats, "battery") {
		t.Errorf("expected 'battery' in %v", stats)
	}
}

func hasToken(stats []WordStat, token string) bool {
	for _, ws := range stats {
		if ws.Token == token {
			return true
		}
	}
	return false
}
