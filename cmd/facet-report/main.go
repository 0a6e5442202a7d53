package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/facetlabs/facet/internal/logging"
	"github.com/facetlabs/facet/internal/report"
	"github.com/facetlabs/facet/pkg/facet/store"
	"github.com/facetlabs/facet/pkg/facet/store/sqlite"
)

// facet-report renders a persisted run from the SQLite store as
// markdown (default) or HTML.
func main() {
	var (
		dbPath = flag.String("db", "", "SQLite run store (required)")
		runID  = flag.String("run", "", "Run ID; omit for the latest run")
		list   = flag.Bool("list", false, "List stored runs instead of rendering")
		asHTML = flag.Bool("html", false, "Render HTML instead of markdown")
	)
	flag.Parse()

	logging.Init(false)

	if *dbPath == "" {
		slog.Error("--db required")
		os.Exit(2)
	}

	ctx := context.Background()
	st, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		fatal("open store", err)
	}
	defer st.Close()

	if *list {
		summaries, err := st.ListRuns(ctx, 20)
		if err != nil {
			fatal("list runs", err)
		}
		for _, s := range summaries {
			fmt.Printf("%s  %s  reviews=%d segments=%d aspects=%d\n",
				s.ID, s.CreatedAt.Format("2006-01-02 15:04"), s.ReviewCount, s.SegmentCount, s.AspectCount)
		}
		return
	}

	var run store.Run
	if *runID != "" {
		run, err = st.GetRun(ctx, *runID)
	} else {
		run, err = st.LatestRun(ctx)
	}
	if err != nil {
		fatal("load run", err)
	}

	if *asHTML {
		fmt.Print(report.HTML(run))
	} else {
		fmt.Print(report.Markdown(run))
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, slog.String("error", err.Error()))
	os.Exit(1)
}
