package taxonomy

import (
	"errors"
	"testing"

	"github.com/facetlabs/facet/pkg/facet/internalerr"
)

func TestNewDropsEmptyKeywordAspects(t *testing.T) {
	tax, err := New([]Aspect{
		{Name: "Battery", Keywords: []string{"battery"}},
		{Name: "Inert", Keywords: nil},
		{Name: "Blank", Keywords: []string{"  ", ""}},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tax.Len() != 1 {
		t.Fatalf("expected 1 retained aspect, got %d", tax.Len())
	}
	if tax.Aspects()[0].Name != "Battery" {
		t.Errorf("unexpected aspect %q", tax.Aspects()[0].Name)
	}
}

func TestNewRejectsDuplicateNames(t *testing.T) {
	_, err := New([]Aspect{
		{Name: "Battery", Keywords: []string{"battery"}},
		{Name: "Battery", Keywords: []string{"charge"}},
	})
	if !errors.Is(err, internalerr.ErrInvalidTaxonomy) {
		t.Fatalf("expected ErrInvalidTaxonomy, got %v", err)
	}
}

func TestNewRejectsEmptyName(t *testing.T) {
	_, err := New([]Aspect{{Name: "  ", Keywords: []string{"battery"}}})
	if !errors.Is(err, internalerr.ErrInvalidTaxonomy) {
		t.Fatalf("expected ErrInvalidTaxonomy, got %v", err)
	}
}

func TestNewLowercasesKeywords(t *testing.T) {
	tax, err := New([]Aspect{{Name: "Service", Keywords: []string{"Customer Service"}}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := tax.Keywords("Service"); len(got) != 1 || got[0] != "customer service" {
		t.Errorf("keywords not normalized: %v", got)
	}
}

func TestNewZeroAspects(t *testing.T) {
	tax, err := New(nil)
	if err != nil {
		t.Fatalf("zero aspects must be tolerated, got %v", err)
	}
	if _, ok := tax.Match("anything at all"); ok {
		t.Error("empty taxonomy cannot match")
	}
}
