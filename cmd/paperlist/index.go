package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mrnerf/paperlist/internal/config"
	"github.com/mrnerf/paperlist/internal/index"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the SQLite search cache",
	Long: `Rebuild the search cache from the catalog. The cache is derived
data: it only speeds up search and can be deleted at any time.`,
	Args: cobra.NoArgs,
	RunE: runIndexRebuild,
}

var indexStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show search cache status",
	Args:  cobra.NoArgs,
	RunE:  runIndexStatus,
}

func init() {
	indexCmd.AddCommand(indexStatusCmd)
	rootCmd.AddCommand(indexCmd)
}

// IndexResult is the JSON output for the index command.
type IndexResult struct {
	Indexed int    `json:"indexed"`
	Path    string `json:"path"`
}

// IndexStatus is the JSON output for the index status command.
type IndexStatus struct {
	Exists  bool   `json:"exists"`
	Indexed int    `json:"indexed"`
	InSync  bool   `json:"in_sync"`
	Path    string `json:"path"`
}

func runIndexRebuild(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	st := mustLoadStore(repoRoot)

	indexPath := config.IndexPath(repoRoot)
	if err := os.MkdirAll(filepath.Dir(indexPath), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}

	hash, err := index.ComputeCatalogHash(config.CatalogPath(repoRoot))
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	db, err := index.Open(indexPath)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer db.Close()

	if err := db.Rebuild(st.All(), hash); err != nil {
		exitWithError(ExitError, "rebuilding index: %v", err)
	}

	if humanOutput {
		outputHuman("Indexed %d papers\n", st.Len())
		return nil
	}
	return outputJSON(IndexResult{Indexed: st.Len(), Path: indexPath})
}

func runIndexStatus(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()

	indexPath := config.IndexPath(repoRoot)
	status := IndexStatus{Path: indexPath}

	if _, err := os.Stat(indexPath); err == nil {
		status.Exists = true

		db, err := index.Open(indexPath)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		defer db.Close()

		status.Indexed, err = db.Count()
		if err != nil {
			exitWithError(ExitError, "reading index: %v", err)
		}

		hash, err := index.ComputeCatalogHash(config.CatalogPath(repoRoot))
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		status.InSync, err = db.InSync(hash)
		if err != nil {
			exitWithError(ExitError, "reading index: %v", err)
		}
	}

	if humanOutput {
		if !status.Exists {
			outputHuman("No index; run 'paperlist index' to build one\n")
			return nil
		}
		syncNote := "stale"
		if status.InSync {
			syncNote = "in sync"
		}
		outputHuman("Indexed %d papers (%s)\n", status.Indexed, syncNote)
		return nil
	}
	return outputJSON(status)
}
