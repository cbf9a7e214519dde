package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mrnerf/paperlist/internal/arxiv"
	"github.com/mrnerf/paperlist/internal/catalog"
	"github.com/mrnerf/paperlist/internal/store"
	"github.com/mrnerf/paperlist/internal/thumbs"
)

var addTags []string

var addCmd = &cobra.Command{
	Use:   "add <arxiv-url-or-id>",
	Short: "Add a paper from arXiv",
	Long: `Add a paper to the catalog by looking up its metadata on arXiv.

Accepts an abs/pdf URL or a bare identifier:
  paperlist add https://arxiv.org/abs/2412.21206v2
  paperlist add 2412.21206 --tag Rendering`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringArrayVar(&addTags, "tag", nil, "Descriptive tag (repeatable)")
}

// AddResult is the JSON output for commands that insert one record.
type AddResult struct {
	Action string       `json:"action"` // added
	Paper  PaperSummary `json:"paper"`
}

func runAdd(cmd *cobra.Command, args []string) error {
	id, err := arxiv.ExtractID(args[0])
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	return addFromArxiv(cmd, id)
}

// addFromArxiv runs the shared lookup -> normalize -> insert -> thumbnail
// flow for an already-extracted identifier.
func addFromArxiv(cmd *cobra.Command, id string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	st := mustLoadStore(repoRoot)
	ctx := cmd.Context()

	client := newArxivClient(cfg)
	meta, err := client.Lookup(ctx, id)
	if err != nil {
		if errors.Is(err, arxiv.ErrPaperNotFound) {
			exitWithError(ExitError, "%v", err)
		}
		exitWithError(ExitError, "looking up %s: %v", id, err)
	}

	raw := meta.Raw()
	raw.Tags = addTags
	rec, err := catalog.Normalize(raw)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	if err := st.Insert(rec); err != nil {
		if errors.Is(err, store.ErrDuplicateID) {
			exitWithError(ExitError, "paper with id %s already exists", rec.ID)
		}
		exitWithError(ExitError, "%v", err)
	}

	// Thumbnail generation is best-effort and never rolls back the insert.
	gen := &thumbs.CommandGenerator{RepoRoot: repoRoot, Tool: cfg.ThumbnailTool}
	if err := gen.Generate(ctx, rec.Paper, rec.ID); err != nil {
		progress("warning: thumbnail generation for %s failed: %v\n", rec.ID, err)
	}

	if humanOutput {
		outputHuman("Added %s: %s (%d)\n", rec.ID, rec.Title, rec.Year.Int())
		return nil
	}
	return outputJSON(AddResult{Action: "added", Paper: summarize(rec)})
}
