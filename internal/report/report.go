// Package report renders a stored analysis run as a markdown dashboard
// or as standalone HTML.
package report

import (
	"fmt"
	"strings"

	"github.com/russross/blackfriday/v2"

	"github.com/facetlabs/facet/pkg/facet/store"
)

// Markdown renders a run as a markdown dashboard: aspect table,
// sentiment distribution bars, top signals, and integrity warnings.
func Markdown(run store.Run) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Aspect Sentiment Report\n\n")
	fmt.Fprintf(&b, "Run `%s` — %s\n\n", run.ID, run.CreatedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "%d reviews analyzed, %d aspect segments matched.\n\n", run.ReviewCount, run.SegmentCount)

	for _, w := range run.Warnings {
		fmt.Fprintf(&b, "> ⚠ %s\n\n", w)
	}

	if len(run.Aspects) > 0 {
		b.WriteString("## Aspects\n\n")
		b.WriteString("| Aspect | Mentions | Reviews | Sentiment | Net | Confidence |\n")
		b.WriteString("|--------|---------:|--------:|-----------|----:|-----------:|\n")
		for _, a := range run.Aspects {
			fmt.Fprintf(&b, "| %s | %d | %d | %s | %+.2f | %.0f%% |\n",
				a.Name, a.Count, a.ReviewCount, distributionBar(a), a.NetSentiment, a.Confidence*100)
		}
		b.WriteString("\n")

		for _, a := range run.Aspects {
			if len(a.Keywords) == 0 {
				continue
			}
			fmt.Fprintf(&b, "- **%s**: %s\n", a.Name, strings.Join(a.Keywords, ", "))
		}
		b.WriteString("\n")
	}

	if len(run.TopWords) > 0 {
		b.WriteString("## Top Signals\n\n")
		b.WriteString("| # | Term | Count | Score |\n")
		b.WriteString("|--:|------|------:|------:|\n")
		for _, w := range run.TopWords {
			fmt.Fprintf(&b, "| %d | %s | %d | %.1f |\n", w.Rank, w.Token, w.Count, w.Score)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// HTML renders the markdown dashboard as a standalone HTML page.
func HTML(run store.Run) string {
	body := blackfriday.Run([]byte(Markdown(run)))
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>Aspect Sentiment Report %s</title>\n", run.ID)
	b.WriteString("<style>body{font-family:sans-serif;max-width:52rem;margin:2rem auto;padding:0 1rem}table{border-collapse:collapse}td,th{border:1px solid #ccc;padding:0.3rem 0.6rem}blockquote{color:#a40;border-left:3px solid #a40;padding-left:0.8rem}</style>\n")
	b.WriteString("</head>\n<body>\n")
	b.Write(body)
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// distributionBar shows the positive/neutral/negative split as a small
// glyph bar, ten cells wide.
func distributionBar(a store.AspectRecord) string {
	total := a.Positive + a.Negative + a.Neutral
	if total == 0 {
		return ""
	}
	const width = 10
	pos := a.Positive * width / total
	neg := a.Negative * width / total
	neu := width - pos - neg
	return strings.Repeat("+", pos) + strings.Repeat("·", neu) + strings.Repeat("−", neg)
}
