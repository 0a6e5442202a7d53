package aggregate

import (
	"strings"
	"testing"

	"github.com/facetlabs/facet/pkg/facet/signal"
)

func TestCheckRepetitionWarning(t *testing.T) {
	c := NewIntegrityChecker(0, 0)

	texts := make([]string, 100)
	for i := range texts {
		texts[i] = "Amazing product, five stars!"
	}
	warnings := c.Check(texts, nil)
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "duplication") {
		t.Errorf("unexpected warning text %q", warnings[0])
	}
}

func TestCheckNoRepetitionWarningForVariedCorpus(t *testing.T) {
	c := NewIntegrityChecker(0, 0)

	texts := []string{"first review", "second review", "third review", "first review"}
	// 3 unique out of 4: rate 0.25, under the 0.3 threshold.
	if warnings := c.Check(texts, nil); len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestCheckConcentrationWarning(t *testing.T) {
	c := NewIntegrityChecker(0, 0)

	stats := []signal.WordStat{
		{Token: "spam", Score: 50},
		{Token: "spam deal", Score: 40},
		{Token: "deal", Score: 30},
		{Token: "battery", Score: 5},
		{Token: "shipping", Score: 3},
	}
	warnings := c.Check([]string{"a", "b", "c"}, stats)
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "entropy") {
		t.Errorf("unexpected warning text %q", warnings[0])
	}
}

func TestCheckConcentrationNeedsEnoughStats(t *testing.T) {
	c := NewIntegrityChecker(0, 0)

	stats := []signal.WordStat{{Token: "one", Score: 100}, {Token: "two", Score: 1}}
	if warnings := c.Check([]string{"a", "b"}, stats); len(warnings) != 0 {
		t.Errorf("too few stats for a concentration verdict, got %v", warnings)
	}
}

func TestCheckEmptyCorpus(t *testing.T) {
	c := NewIntegrityChecker(0, 0)

	if warnings := c.Check(nil, nil); len(warnings) != 0 {
		t.Errorf("empty corpus should warn about nothing, got %v", warnings)
	}
}

func TestCheckBalancedCorpusClean(t *testing.T) {
	c := NewIntegrityChecker(0, 0)

	stats := []signal.WordStat{
		{Token: "battery", Score: 10},
		{Token: "shipping", Score: 9},
		{Token: "flavor", Score: 8},
		{Token: "price", Score: 8},
		{Token: "box", Score: 7},
		{Token: "service", Score: 7},
	}
	texts := []string{"one", "two", "three", "four"}
	if warnings := c.Check(texts, stats); len(warnings) != 0 {
		t.Errorf("balanced corpus should be clean, got %v", warnings)
	}
}
