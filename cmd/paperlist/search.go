package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mrnerf/paperlist/internal/catalog"
	"github.com/mrnerf/paperlist/internal/config"
	"github.com/mrnerf/paperlist/internal/index"
)

var searchTag string

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search entries by title, authors, or tags",
	Long: `Search the catalog with case-insensitive substring matching over
title and authors, and substring matching over tags.

Uses the SQLite index when it is present and in sync with the catalog;
otherwise scans the catalog in memory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVar(&searchTag, "tag", "", "Filter by tag")
}

// SearchResult is the JSON output for the search command.
type SearchResult struct {
	Count   int            `json:"count"`
	Indexed bool           `json:"indexed"` // whether the SQLite index served the query
	Papers  []PaperSummary `json:"papers"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	var query string
	if len(args) > 0 {
		query = args[0]
	}
	if query == "" && searchTag == "" {
		exitWithError(ExitError, "provide a query or --tag")
	}

	repoRoot := mustFindRepository()

	records, indexed := searchIndexed(repoRoot, query, searchTag)
	if !indexed {
		st := mustLoadStore(repoRoot)
		records = st.Search(query, searchTag)
	}

	if humanOutput {
		for _, r := range records {
			outputHuman("%-28s %4d  %s\n", r.ID, r.Year.Int(), truncate(r.Title, 60))
		}
		outputHuman("%d matches\n", len(records))
		return nil
	}

	result := SearchResult{Count: len(records), Indexed: indexed}
	for _, r := range records {
		result.Papers = append(result.Papers, summarize(r))
	}
	return outputJSON(result)
}

// searchIndexed tries the SQLite cache. It only answers when the cache
// exists and matches the current catalog file; anything else falls back to
// the in-memory scan.
func searchIndexed(repoRoot, query, tag string) ([]catalog.Record, bool) {
	indexPath := config.IndexPath(repoRoot)
	if _, err := os.Stat(indexPath); err != nil {
		return nil, false
	}

	db, err := index.Open(indexPath)
	if err != nil {
		return nil, false
	}
	defer db.Close()

	hash, err := index.ComputeCatalogHash(config.CatalogPath(repoRoot))
	if err != nil {
		return nil, false
	}
	if ok, err := db.InSync(hash); err != nil || !ok {
		return nil, false
	}

	records, err := db.Search(query, tag)
	if err != nil {
		return nil, false
	}
	return records, true
}
