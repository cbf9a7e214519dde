package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mrnerf/paperlist/internal/catalog"
	"github.com/mrnerf/paperlist/internal/store"
)

var newFlags struct {
	title       string
	authors     []string
	year        string
	abstract    string
	paper       string
	projectPage string
	code        string
	video       string
	tags        []string
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Add a paper manually",
	Long: `Add a paper to the catalog from manually supplied fields. The entry
goes through the same normalization as arXiv lookups: year coercion,
whitespace cleanup, derived id, and tag defaulting.

Example:
  paperlist new --title "3D Gaussian Splatting for Real-Time Radiance Field Rendering" \
    --author "Bernhard Kerbl" --author "Georgios Kopanas" \
    --year 2023 --paper https://arxiv.org/pdf/2308.04079.pdf --tag "Classic Work"`,
	Args: cobra.NoArgs,
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)
	f := newCmd.Flags()
	f.StringVar(&newFlags.title, "title", "", "Paper title (required)")
	f.StringArrayVar(&newFlags.authors, "author", nil, "Author full name (repeatable, required)")
	f.StringVar(&newFlags.year, "year", "", "Publication year (required)")
	f.StringVar(&newFlags.abstract, "abstract", "", "Abstract text")
	f.StringVar(&newFlags.paper, "paper", "", "Paper PDF/landing URL")
	f.StringVar(&newFlags.projectPage, "project-page", "", "Project page URL")
	f.StringVar(&newFlags.code, "code", "", "Code repository URL")
	f.StringVar(&newFlags.video, "video", "", "Video URL")
	f.StringArrayVar(&newFlags.tags, "tag", nil, "Descriptive tag (repeatable)")
	newCmd.MarkFlagRequired("title")
	newCmd.MarkFlagRequired("author")
	newCmd.MarkFlagRequired("year")
}

func runNew(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	st := mustLoadStore(repoRoot)

	rec, err := catalog.Normalize(catalog.RawMetadata{
		Title:       newFlags.title,
		Authors:     newFlags.authors,
		Year:        newFlags.year,
		Abstract:    newFlags.abstract,
		Paper:       newFlags.paper,
		ProjectPage: newFlags.projectPage,
		Code:        newFlags.code,
		Video:       newFlags.video,
		Tags:        newFlags.tags,
	})
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	if err := st.Insert(rec); err != nil {
		if errors.Is(err, store.ErrDuplicateID) {
			exitWithError(ExitError, "paper with id %s already exists", rec.ID)
		}
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		outputHuman("Added %s: %s (%d)\n", rec.ID, rec.Title, rec.Year.Int())
		return nil
	}
	return outputJSON(AddResult{Action: "added", Paper: summarize(rec)})
}
