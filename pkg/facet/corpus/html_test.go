package corpus

import (
	"strings"
	"testing"
)

func TestStripHTMLBasic(t *testing.T) {
	input := `<html><body><p>Great battery.</p><p>Box was crushed.</p></body></html>`

	out := StripHTML(input)
	if !strings.Contains(out, "Great battery.") {
		t.Errorf("missing first paragraph in %q", out)
	}
	if !strings.Contains(out, "Box was crushed.") {
		t.Errorf("missing second paragraph in %q", out)
	}
	if strings.Contains(out, "<p>") {
		t.Errorf("tags leaked into %q", out)
	}
}

func TestStripHTMLParagraphsBecomeLines(t *testing.T) {
	input := `<div>first review</div><div>second review</div>`

	reviews, err := ReadLines(strings.NewReader(StripHTML(input)))
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("expected 2 reviews from block elements, got %v", reviews)
	}
}

func TestStripHTMLDropsScriptAndStyle(t *testing.T) {
	input := `<p>visible</p><script>var hidden = 1;</script><style>.x{color:red}</style>`

	out := StripHTML(input)
	if strings.Contains(out, "hidden") || strings.Contains(out, "color") {
		t.Errorf("script/style content leaked into %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("visible text missing from %q", out)
	}
}

func TestStripHTMLPlainText(t *testing.T) {
	out := StripHTML("no markup at all")
	if !strings.Contains(out, "no markup at all") {
		t.Errorf("plain text should survive, got %q", out)
	}
}
