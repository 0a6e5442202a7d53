package main

import (
	"encoding/json"
	"flag"
	"log/slog"
	"os"

	"github.com/facetlabs/facet/internal/logging"
	"github.com/facetlabs/facet/pkg/facet"
	"github.com/facetlabs/facet/pkg/facet/config"
	"github.com/facetlabs/facet/pkg/facet/corpus"
)

// facet-signals runs only the global corpus pass and dumps the ranked
// word statistics as JSON, for inspection or for feeding an external
// taxonomy step.
func main() {
	var (
		input      = flag.String("input", "", "Corpus file (required)")
		stoplist   = flag.String("stoplist", "", "Optional stop-word YAML file")
		paramsPath = flag.String("params", "", "Optional pipeline parameters YAML file")
		top        = flag.Int("top", 0, "Override the retained top-N signals")
	)
	flag.Parse()

	logging.Init(false)

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
	if *top > 0 {
		params.SignalLimit = *top
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

	analyzer := facet.New(facet.Options{Stopwords: stopwords, Params: params})
	stats := analyzer.ExtractSignals(reviews)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(stats); err != nil {
		fatal("encode", err)
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, slog.String("error", err.Error()))
	os.Exit(1)
}
