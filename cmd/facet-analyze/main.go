package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/subosito/gotenv"

	"github.com/facetlabs/facet/internal/llm"
	"github.com/facetlabs/facet/internal/logging"
	"github.com/facetlabs/facet/internal/report"
	"github.com/facetlabs/facet/pkg/facet"
	"github.com/facetlabs/facet/pkg/facet/config"
	"github.com/facetlabs/facet/pkg/facet/corpus"
	"github.com/facetlabs/facet/pkg/facet/store"
	"github.com/facetlabs/facet/pkg/facet/store/sqlite"
	"github.com/facetlabs/facet/pkg/facet/taxonomy"
)

func main() {
	var (
		input      = flag.String("input", "", "Corpus file: .txt (one review per line), .jsonl, or .html (required)")
		stoplist   = flag.String("stoplist", "", "Optional stop-word YAML file")
		paramsPath = flag.String("params", "", "Optional pipeline parameters YAML file")
		taxPath    = flag.String("taxonomy", "", "Taxonomy YAML file; omit to discover via LLM")
		llmBase    = flag.String("llm-base", "", "OpenAI-compatible base URL for taxonomy discovery")
		llmModel   = flag.String("llm-model", "", "Model name for taxonomy discovery")
		maxAspects = flag.Int("max-aspects", 8, "Maximum aspects to request from the LLM")
		sampleN    = flag.Int("sample", 15, "Raw reviews sampled into the discovery prompt")
		seed       = flag.Int64("seed", 1, "Seed for discovery prompt sampling")
		dbPath     = flag.String("db", "", "Optional SQLite path to persist the run")
		htmlOut    = flag.String("html-out", "", "Optional path for an HTML report")
		verbose    = flag.Bool("v", false, "Debug logging")
	)
	flag.Parse()

	logging.Init(*verbose)
	gotenv.Load()

	if *input == "" {
		slog.Error("--input required")
		os.Exit(2)
	}

	params := config.DefaultParams()
	if *paramsPath != "" {
		var err error
		if params, err = config.LoadParams(*paramsPath); err != nil {
			fatal("load params", err)
		}
	}

	var stopwords []string
	if *stoplist != "" {
		sl, err := config.LoadStoplist(*stoplist)
		if err != nil {
			fatal("load stoplist", err)
		}
		stopwords = sl.Terms
	}

	reviews, err := corpus.ReadFile(*input)
	if err != nil {
		fatal("read corpus", err)
	}
	slog.Info("corpus loaded", slog.Int("reviews", len(reviews)))

	analyzer := facet.New(facet.Options{
		Stopwords: stopwords,
		Params:    params,
		Progress: func(percent int) {
			slog.Info("analyzing", slog.Int("percent", percent))
		},
	})

	ctx := context.Background()

	tax, err := loadTaxonomy(ctx, analyzer, reviews, *taxPath, *llmBase, *llmModel, *maxAspects, *sampleN, *seed)
	if err != nil {
		fatal("taxonomy", err)
	}
	slog.Info("taxonomy ready", slog.Int("aspects", tax.Len()))

	result, err := analyzer.Analyze(ctx, reviews, tax)
	if err != nil {
		fatal("analyze", err)
	}

	run := store.FromResult(result)
	fmt.Print(report.Markdown(run))

	if *htmlOut != "" {
		if err := os.WriteFile(*htmlOut, []byte(report.HTML(run)), 0o644); err != nil {
			fatal("write html report", err)
		}
		slog.Info("html report written", slog.String("path", *htmlOut))
	}

	if *dbPath != "" {
		st, err := sqlite.Open(ctx, *dbPath)
		if err != nil {
			fatal("open store", err)
		}
		defer st.Close()
		if err := st.SaveRun(ctx, run); err != nil {
			fatal("save run", err)
		}
		slog.Info("run persisted", slog.String("run_id", run.ID), slog.String("db", *dbPath))
	}
}

// loadTaxonomy reads an aspect taxonomy from a YAML file when one is
// given, otherwise runs the signal pass and asks the LLM collaborator
// to name aspects from the ranked terms plus a review sample.
func loadTaxonomy(ctx context.Context, analyzer *facet.Analyzer, reviews []facet.Review, taxPath, llmBase, llmModel string, maxAspects, sampleN int, seed int64) (*taxonomy.Taxonomy, error) {
	if taxPath != "" {
		return config.LoadTaxonomy(taxPath)
	}

	stats := analyzer.ExtractSignals(reviews)
	tokens := make([]string, len(stats))
	for i, ws := range stats {
		tokens[i] = ws.Token
	}
	var samples []string
	for _, rev := range corpus.Sample(reviews, sampleN, seed) {
		samples = append(samples, rev.Text)
	}

	client := llm.NewClient(os.Getenv("OPENAI_API_KEY"), llmBase, llmModel)
	return client.DiscoverTaxonomy(ctx, tokens, samples, maxAspects)
}

func fatal(msg string, err error) {
	slog.Error(msg, slog.String("error", err.Error()))
	os.Exit(1)
}
