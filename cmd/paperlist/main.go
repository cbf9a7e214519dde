// Package main provides the paperlist CLI entry point.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrnerf/paperlist/internal/arxiv"
	"github.com/mrnerf/paperlist/internal/config"
	"github.com/mrnerf/paperlist/internal/fetch"
	"github.com/mrnerf/paperlist/internal/store"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "paperlist",
	Short: "Curated paper catalog maintenance",
	Long: `paperlist maintains a curated, versioned catalog of research papers
stored as a single YAML file, and renders it as a static filterable page.

Core features:
  - Add entries from arXiv (URL, identifier, or a local PDF) or manually
  - Import entries by scraping a markdown paper list
  - Validate changed entries: tag vocabulary and link reachability
  - Backfill publication dates and keep the catalog sorted
  - Generate the static HTML page

The catalog file is the git-versionable source of truth; an ephemeral
SQLite index can be rebuilt from it for faster queries.
All commands output JSON by default for automation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// mustFindRepository finds the repository root, exits on error.
func mustFindRepository() string {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	repoRoot, err := config.FindRepository(cwd)
	if err != nil {
		exitWithError(ExitConfigError, "%v\n\nRun 'paperlist init' to create a repository here.", err)
	}
	return repoRoot
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig(repoRoot string) *config.Config {
	cfg, err := config.Load(repoRoot)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustLoadStore loads the whole catalog, exits on error. A parse failure is
// fatal before any write; data loss is worse than a failed command.
func mustLoadStore(repoRoot string) *store.Store {
	st, err := store.Load(config.CatalogPath(repoRoot))
	if err != nil {
		if errors.Is(err, store.ErrCorruptCatalog) {
			exitWithError(ExitDataError, "%v", err)
		}
		exitWithError(ExitError, "%v", err)
	}
	return st
}

// newFetchClient builds the shared HTTP client, honoring a configured
// User-Agent override.
func newFetchClient(cfg *config.Config) *fetch.Client {
	if cfg.UserAgent != "" {
		return fetch.NewClient(fetch.WithUserAgent(cfg.UserAgent))
	}
	return fetch.NewClient()
}

// newArxivClient builds the arXiv API client for a config.
func newArxivClient(cfg *config.Config) *arxiv.Client {
	opts := []arxiv.Option{arxiv.WithFetchClient(newFetchClient(cfg))}
	if cfg.ArxivBaseURL != "" {
		opts = append(opts, arxiv.WithBaseURL(cfg.ArxivBaseURL))
	}
	return arxiv.NewClient(opts...)
}
