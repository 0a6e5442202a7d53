package taxonomy

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/facetlabs/facet/pkg/facet/internalerr"
)

// Aspect is one externally supplied taxonomy entry: a topic customers
// discuss, with the keywords that signal it.
type Aspect struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Keywords    []string `yaml:"keywords" json:"keywords"`
}

// Taxonomy is a validated, immutable aspect set with keyword matchers
// compiled once up front. Iteration order is the supplied slice order.
type Taxonomy struct {
	aspects  []Aspect
	patterns [][]*regexp.Regexp // parallel to aspects/keywords
}

// New validates the aspect list and compiles keyword patterns.
// Aspects with empty keyword lists are dropped (they can match nothing);
// duplicate names are an error.
func New(aspects []Aspect) (*Taxonomy, error) {
	seen := make(map[string]struct{}, len(aspects))
	t := &Taxonomy{}
	for _, a := range aspects {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: aspect with empty name", internalerr.ErrInvalidTaxonomy)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: duplicate aspect %q", internalerr.ErrInvalidTaxonomy, name)
		}
		seen[name] = struct{}{}

		keywords := make([]string, 0, len(a.Keywords))
		for _, kw := range a.Keywords {
			if kw = strings.TrimSpace(kw); kw != "" {
				keywords = append(keywords, strings.ToLower(kw))
			}
		}
		if len(keywords) == 0 {
			continue
		}

		patterns := make([]*regexp.Regexp, len(keywords))
		for i, kw := range keywords {
			patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
		}
		t.aspects = append(t.aspects, Aspect{Name: name, Description: a.Description, Keywords: keywords})
		t.patterns = append(t.patterns, patterns)
	}
	return t, nil
}

// Aspects returns the retained aspect definitions in order.
func (t *Taxonomy) Aspects() []Aspect {
	return t.aspects
}

// Keywords returns the keyword list for a named aspect, or nil.
func (t *Taxonomy) Keywords(name string) []string {
	for _, a := range t.aspects {
		if a.Name == name {
			return a.Keywords
		}
	}
	return nil
}

// Len returns the number of retained aspects.
func (t *Taxonomy) Len() int {
	return len(t.aspects)
}
