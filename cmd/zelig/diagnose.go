package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/zelig/zelig-backend/internal/app"
)

var (
	diagnoseRuns  int
	diagnoseQuery string
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Check connectivity and latency of every external service",
	Long: `Runs one call against each configured dependency: LLM completion,
embeddings, the vector store (averaged over --runs queries), DuckDuckGo and
the Terjman Lambda. Unconfigured services are reported as skipped.`,
	RunE: runDiagnose,
}

func init() {
	diagnoseCmd.Flags().IntVar(&diagnoseRuns, "runs", 5, "Vector store queries to average")
	diagnoseCmd.Flags().StringVar(&diagnoseQuery, "query", "Is the Jemaa el-Fna square safe at night?", "Test query")
}

type checkResult struct {
	name    string
	skipped bool
	err     error
	took    time.Duration
	detail  string
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	application, err := app.New(ctx, cfg, logger, app.WithoutIndexing())
	if err != nil {
		return err
	}
	defer application.Close()

	var results []checkResult
	var embedding []float32

	if application.Provider == nil {
		results = append(results, checkResult{name: "LLM completion", skipped: true}, checkResult{name: "Embeddings", skipped: true})
	} else {
		results = append(results, timed("LLM completion", func() (string, error) {
			out, err := application.Provider.GetCompletion(ctx, "Reply with the single word: pong")
			return fmt.Sprintf("%s answered %q", application.Provider.Name(), out), err
		}))
		results = append(results, timed("Embeddings", func() (string, error) {
			var err error
			embedding, err = application.Provider.CreateEmbedding(ctx, diagnoseQuery)
			return fmt.Sprintf("%d dimensions", len(embedding)), err
		}))
	}

	if application.Store == nil || embedding == nil {
		results = append(results, checkResult{name: "Vector store", skipped: true})
	} else {
		results = append(results, vectorCheck(ctx, application, embedding))
	}

	if application.Searcher == nil {
		results = append(results, checkResult{name: "Web search", skipped: true})
	} else {
		results = append(results, timed("Web search", func() (string, error) {
			hits, err := application.Searcher.Search(ctx, "Marrakech Morocco news", 3)
			return fmt.Sprintf("%d results", len(hits)), err
		}))
	}

	if application.Local == nil {
		results = append(results, checkResult{name: "Terjman", skipped: true})
	} else {
		results = append(results, timed("Terjman", func() (string, error) {
			out, err := application.Local.Translate(ctx, "Hello, how are you?")
			return fmt.Sprintf("%q", out), err
		}))
	}

	failed := report(cmd.OutOrStdout(), results)
	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	return nil
}

// vectorCheck averages query latency over diagnoseRuns queries.
func vectorCheck(ctx context.Context, application *app.App, embedding []float32) checkResult {
	res := checkResult{name: "Vector store"}
	runs := diagnoseRuns
	if runs < 1 {
		runs = 1
	}

	var total time.Duration
	matches := 0
	for i := 0; i < runs; i++ {
		start := time.Now()
		found, err := application.Store.Query(ctx, embedding, 3)
		if err != nil {
			res.err = err
			return res
		}
		total += time.Since(start)
		matches = len(found)
	}
	res.took = total / time.Duration(runs)
	res.detail = fmt.Sprintf("%s, %d matches, average over %d runs", application.Store.Name(), matches, runs)
	return res
}

func timed(name string, fn func() (string, error)) checkResult {
	start := time.Now()
	detail, err := fn()
	return checkResult{name: name, err: err, took: time.Since(start), detail: detail}
}

func report(w io.Writer, results []checkResult) int {
	failed := 0
	for _, r := range results {
		switch {
		case r.skipped:
			fmt.Fprintf(w, "⏭️  %-16s not configured\n", r.name)
		case r.err != nil:
			failed++
			fmt.Fprintf(w, "❌ %-16s %v\n", r.name, r.err)
		default:
			fmt.Fprintf(w, "✅ %-16s %s (%s)\n", r.name, r.detail, r.took.Round(time.Millisecond))
		}
	}
	return failed
}
