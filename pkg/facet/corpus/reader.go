package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/facetlabs/facet/pkg/facet"
)

// ReadLines reads one review per line, skipping blank lines, and
// assigns stable identifiers of the form rev-{index}.
func ReadLines(r io.Reader) ([]facet.Review, error) {
	var reviews []facet.Review
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	index := 0
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		reviews = append(reviews, facet.Review{
			ID:   fmt.Sprintf("rev-%d", index),
			Text: text,
		})
		index++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

// ReadJSONL reads reviews from JSON-lines input. Entries without an id
// get a generated rev-{index} identifier.
func ReadJSONL(r io.Reader) ([]facet.Review, error) {
	var reviews []facet.Review
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	index := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rev facet.Review
		if err := json.Unmarshal([]byte(line), &rev); err != nil {
			return nil, fmt.Errorf("line %d: %w", index+1, err)
		}
		if strings.TrimSpace(rev.Text) == "" {
			continue
		}
		if rev.ID == "" {
			rev.ID = fmt.Sprintf("rev-%d", index)
		}
		reviews = append(reviews, rev)
		index++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

// ReadFile loads a corpus from disk, picking the reader by extension:
// .jsonl for JSON lines, .html/.htm for tag-stripped HTML exports,
// anything else as plain one-review-per-line text.
func ReadFile(path string) ([]facet.Review, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl":
		return ReadJSONL(f)
	case ".html", ".htm":
		raw, err := io.ReadAll(f)
		if err != nil {
			return nil, err
		}
		return ReadLines(strings.NewReader(StripHTML(string(raw))))
	default:
		return ReadLines(f)
	}
}

// Sample returns up to n reviews drawn without replacement using the
// given seed. The input slice is not modified. Only taxonomy-discovery
// prompting uses this; the analysis passes themselves are never
// randomized.
func Sample(reviews []facet.Review, n int, seed int64) []facet.Review {
	if n >= len(reviews) {
		out := make([]facet.Review, len(reviews))
		copy(out, reviews)
		return out
	}
	rng := rand.New(rand.NewSource(seed))
	picked := rng.Perm(len(reviews))[:n]
	out := make([]facet.Review, 0, n)
	for _, idx := range picked {
		out = append(out, reviews[idx])
	}
	return out
}
