package ingest

import (
	"regexp"
	"strings"
)

// minClauseLen is the shortest clause (after trimming) worth scoring.
const minClauseLen = 3

// contrastive conjunctions split a sentence into clauses with potentially
// opposite sentiment ("tastes great but the box was crushed").
var contrastivePattern = regexp.MustCompile(`(?i),?\s+\b(but|however|although|yet|while)\b\s+`)

var sentencePattern = regexp.MustCompile(`[.!?]+`)

// Segmenter splits raw review text into clause-level spans.
type Segmenter struct{}

// NewSegmenter creates a clause segmenter.
func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

// Segment splits text on sentence-terminal punctuation and contrastive
// conjunctions, dropping clauses shorter than 3 characters. Non-empty
// input always yields at least one clause (the whole text as fallback).
func (s *Segmenter) Segment(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	var clauses []string
	for _, sentence := range sentencePattern.Split(trimmed, -1) {
		for _, clause := range contrastivePattern.Split(sentence, -1) {
			clause = strings.TrimSpace(clause)
			if len(clause) >= minClauseLen {
				clauses = append(clauses, clause)
			}
		}
	}

	if len(clauses) == 0 {
		return []string{trimmed}
	}
	return clauses
}
