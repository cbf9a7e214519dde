package main

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mrnerf/paperlist/internal/arxiv"
	"github.com/mrnerf/paperlist/internal/catalog"
)

// backfillConcurrency bounds the lookup worker pool.
const backfillConcurrency = 5

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Backfill publication dates and sort the catalog",
	Long: `Fill in publication_date for entries that lack one: look the paper up
on arXiv when its URL carries an identifier, otherwise estimate mid-year
from the id or year field. The catalog is then sorted newest-first and
rewritten once.

Partial completion is acceptable; failed entries are reported and the
command still exits 0.`,
	Args: cobra.NoArgs,
	RunE: runBackfill,
}

func init() {
	rootCmd.AddCommand(backfillCmd)
}

// BackfillResult is the JSON output for the backfill command.
type BackfillResult struct {
	Processed int      `json:"processed"`
	FromArxiv int      `json:"from_arxiv"`
	Estimated int      `json:"estimated"`
	Failed    []string `json:"failed,omitempty"`
}

func runBackfill(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	st := mustLoadStore(repoRoot)
	ctx := cmd.Context()

	var targets []int
	for i, r := range st.All() {
		if r.PublicationDate == "" {
			targets = append(targets, i)
		}
	}

	if len(targets) == 0 {
		if humanOutput {
			outputHuman("No entries need date updates\n")
			return nil
		}
		return outputJSON(BackfillResult{})
	}
	progress("%d entries need date updates\n", len(targets))

	client := newArxivClient(cfg)
	records := st.All()

	// Each worker owns one record index and writes only to that record
	// and its own result slot; the rewrite below is single-threaded.
	failures := make([]string, len(targets))
	sources := make([]string, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(backfillConcurrency)
	for slot, idx := range targets {
		g.Go(func() error {
			rec := records[idx]
			progress("processing %s\n", rec.ID)

			if id := arxiv.FindIDInURL(rec.Paper); id != "" {
				if meta, err := client.Lookup(gctx, id); err == nil {
					rec.PublicationDate = meta.Raw().PublicationDate
					rec.DateSource = catalog.DateSourceArxiv
					records[idx] = rec
					sources[slot] = catalog.DateSourceArxiv
					return nil
				}
			}

			if date := estimatedDate(rec); date != "" {
				rec.PublicationDate = date
				rec.DateSource = catalog.DateSourceEstimated
				records[idx] = rec
				sources[slot] = catalog.DateSourceEstimated
				return nil
			}

			failures[slot] = fmt.Sprintf("%s: no date source available", rec.ID)
			return nil
		})
	}
	g.Wait()

	st.SortByDate()
	if err := st.Save(); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	result := BackfillResult{Processed: len(targets)}
	for _, s := range sources {
		switch s {
		case catalog.DateSourceArxiv:
			result.FromArxiv++
		case catalog.DateSourceEstimated:
			result.Estimated++
		}
	}
	for _, f := range failures {
		if f != "" {
			result.Failed = append(result.Failed, f)
		}
	}

	if humanOutput {
		outputHuman("Updated from arXiv: %d\nEstimated: %d\nFailed: %d\n",
			result.FromArxiv, result.Estimated, len(result.Failed))
		for _, f := range result.Failed {
			outputHuman("  %s\n", f)
		}
		return nil
	}
	return outputJSON(result)
}

var idYearPattern = regexp.MustCompile(`20\d{2}`)

// estimatedDate builds a mid-year fallback date from the year embedded in
// the record id, or from the year field.
func estimatedDate(rec catalog.Record) string {
	year := 0
	if m := idYearPattern.FindString(rec.ID); m != "" {
		year, _ = strconv.Atoi(m)
	}
	if year == 0 {
		year = rec.Year.Int()
	}
	if year == 0 {
		return ""
	}
	return fmt.Sprintf("%d-07-01T00:00:00", year)
}
