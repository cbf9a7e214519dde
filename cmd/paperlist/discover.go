package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrnerf/paperlist/internal/catalog"
	"github.com/mrnerf/paperlist/internal/config"
)

var discoverFlags struct {
	keywords []string
	days     int
	limit    int
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Search arXiv for recent papers and emit catalog entries",
	Long: `Search arXiv for each keyword, keep papers submitted within the
lookback window, and emit the results as normalized catalog entries
(YAML, newest first) on stdout. Nothing is written to the catalog;
pipe or paste the output into a review flow.

Example:
  paperlist discover -k "gaussian splatting" -k "radiance field" --days 2`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)
	discoverCmd.Flags().StringArrayVarP(&discoverFlags.keywords, "keyword", "k", nil, "Search keyword (repeatable, required)")
	discoverCmd.Flags().IntVar(&discoverFlags.days, "days", 1, "Lookback window in days")
	discoverCmd.Flags().IntVar(&discoverFlags.limit, "limit", 100, "Maximum results per keyword")
	discoverCmd.MarkFlagRequired("keyword")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	// Discovery emits to stdout and touches no catalog, so it works
	// outside a repository too.
	cfg := &config.Config{}
	if cwd, err := os.Getwd(); err == nil {
		if root, err := config.FindRepository(cwd); err == nil {
			cfg = mustLoadConfig(root)
		}
	}

	client := newArxivClient(cfg)
	lookback := time.Duration(discoverFlags.days) * 24 * time.Hour
	papers, err := client.Discover(cmd.Context(), discoverFlags.keywords, lookback, discoverFlags.limit)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	var records []catalog.Record
	for _, p := range papers {
		raw := p.Raw()
		if len(p.CodeLinks) > 0 {
			raw.Code = p.CodeLinks[0]
		}
		if len(p.ProjectPages) > 0 {
			raw.ProjectPage = p.ProjectPages[0]
		}

		rec, err := catalog.Normalize(raw)
		if err != nil {
			progress("skip %s: %v\n", p.ID, err)
			continue
		}
		records = append(records, rec)
	}

	progress("%d papers matched %d keywords\n", len(records), len(discoverFlags.keywords))

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		exitWithError(ExitError, "encoding results: %v", err)
	}
	return enc.Close()
}
