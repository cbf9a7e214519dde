package main

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrnerf/paperlist/internal/catalog"
	"github.com/mrnerf/paperlist/internal/config"
	"github.com/mrnerf/paperlist/internal/scrape"
	"github.com/mrnerf/paperlist/internal/store"
)

var importFlags struct {
	startMarker string
	terminator  string
	dryRun      bool
}

var importCmd = &cobra.Command{
	Use:   "import <path-or-url>",
	Short: "Import papers by scraping a markdown paper list",
	Long: `Scrape a semi-structured markdown document (year/category headings,
per-paper sub-headings, emoji-prefixed links) and insert the entries into
the catalog. Entries that fail normalization or already exist are skipped
and reported; the rest are inserted.

Example:
  paperlist import https://raw.githubusercontent.com/MrNeRF/awesome-3D-gaussian-splatting/main/README.md`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	defaults := scrape.DefaultOptions()
	importCmd.Flags().StringVar(&importFlags.startMarker, "start", defaults.StartMarker, "Heading that begins the paper sections")
	importCmd.Flags().StringVar(&importFlags.terminator, "stop", defaults.Terminator, "Heading that ends parsing")
	importCmd.Flags().BoolVar(&importFlags.dryRun, "dry-run", false, "Parse and report without writing")
}

// ImportResult is the JSON output for the import command.
type ImportResult struct {
	Scraped  int            `json:"scraped"`
	Imported int            `json:"imported"`
	Skipped  []ImportSkip   `json:"skipped,omitempty"`
	Papers   []PaperSummary `json:"papers,omitempty"`
}

// ImportSkip reports one entry that could not be imported.
type ImportSkip struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

func runImport(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	st := mustLoadStore(repoRoot)

	reader, err := openSource(cmd, args[0], cfg)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer reader.Close()

	papers, err := scrape.Parse(reader, scrape.Options{
		StartMarker: importFlags.startMarker,
		Terminator:  importFlags.terminator,
	})
	if err != nil {
		exitWithError(ExitDataError, "parsing document: %v", err)
	}

	result := ImportResult{Scraped: len(papers)}
	for _, p := range papers {
		rec, err := catalog.Normalize(p.Raw())
		if err != nil {
			// Per-record failures never abort the batch.
			progress("skip %q: %v\n", p.Title, err)
			result.Skipped = append(result.Skipped, ImportSkip{Title: p.Title, Reason: err.Error()})
			continue
		}

		if importFlags.dryRun {
			result.Imported++
			result.Papers = append(result.Papers, summarize(rec))
			continue
		}

		if err := st.Insert(rec); err != nil {
			if errors.Is(err, store.ErrDuplicateID) {
				progress("skip %s: already exists\n", rec.ID)
				result.Skipped = append(result.Skipped, ImportSkip{Title: p.Title, Reason: "duplicate id " + rec.ID})
				continue
			}
			exitWithError(ExitError, "%v", err)
		}
		progress("imported %s\n", rec.ID)
		result.Imported++
		result.Papers = append(result.Papers, summarize(rec))
	}

	if humanOutput {
		outputHuman("Scraped %d entries: %d imported, %d skipped\n",
			result.Scraped, result.Imported, len(result.Skipped))
		return nil
	}
	return outputJSON(result)
}

// openSource opens a local file or fetches a URL.
func openSource(cmd *cobra.Command, pathOrURL string, cfg *config.Config) (io.ReadCloser, error) {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		resp, err := newFetchClient(cfg).Get(cmd.Context(), pathOrURL)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != 200 {
			resp.Body.Close()
			return nil, errors.New("fetching document: status " + resp.Status)
		}
		return resp.Body, nil
	}
	return os.Open(pathOrURL)
}
