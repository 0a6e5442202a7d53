package aggregate

import (
	"fmt"
	"strings"

	"github.com/facetlabs/facet/pkg/facet/signal"
)

// IntegrityChecker inspects the corpus and the extracted signals for
// duplication and vocabulary concentration. Its warnings are advisory;
// they never block a run.
type IntegrityChecker struct {
	repetitionThreshold    float64 // share of duplicate texts that triggers a warning
	concentrationThreshold float64 // share of score mass in the top tokens that triggers a warning
	concentrationTopN      int
}

// NewIntegrityChecker creates a checker. Non-positive thresholds fall
// back to the defaults (0.3 repetition, 0.6 concentration over the top
// 3 tokens).
func NewIntegrityChecker(repetitionThreshold, concentrationThreshold float64) *IntegrityChecker {
	if repetitionThreshold <= 0 {
		repetitionThreshold = 0.3
	}
	if concentrationThreshold <= 0 {
		concentrationThreshold = 0.6
	}
	return &IntegrityChecker{
		repetitionThreshold:    repetitionThreshold,
		concentrationThreshold: concentrationThreshold,
		concentrationTopN:      3,
	}
}

// Check returns zero or more human-readable warnings about the corpus.
func (c *IntegrityChecker) Check(texts []string, topWords []signal.WordStat) []string {
	var warnings []string
	if w, ok := c.checkRepetition(texts); ok {
		warnings = append(warnings, w)
	}
	if w, ok := c.checkConcentration(topWords); ok {
		warnings = append(warnings, w)
	}
	return warnings
}

func (c *IntegrityChecker) checkRepetition(texts []string) (string, bool) {
	if len(texts) == 0 {
		return "", false
	}
	unique := make(map[string]struct{}, len(texts))
	for _, t := range texts {
		unique[strings.TrimSpace(t)] = struct{}{}
	}
	rate := 1 - float64(len(unique))/float64(len(texts))
	if rate <= c.repetitionThreshold {
		return "", false
	}
	return fmt.Sprintf("high duplication: %.0f%% of reviews are repeated text; aggregate sentiment may be skewed by copies", rate*100), true
}

func (c *IntegrityChecker) checkConcentration(topWords []signal.WordStat) (string, bool) {
	if len(topWords) <= c.concentrationTopN {
		return "", false
	}
	var total, top float64
	for i, ws := range topWords {
		total += ws.Score
		if i < c.concentrationTopN {
			top += ws.Score
		}
	}
	if total <= 0 {
		return "", false
	}
	share := top / total
	if share <= c.concentrationThreshold {
		return "", false
	}
	return fmt.Sprintf("low vocabulary entropy: top %d terms hold %.0f%% of signal mass; the corpus may be synthetic or spam-heavy", c.concentrationTopN, share*100), true
}
