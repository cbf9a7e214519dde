package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrnerf/paperlist/internal/catalog"
)

var editFlags struct {
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

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a catalog entry",
	Long: `Edit an entry by full-record replacement: unset flags keep their
current values, set flags replace them, and the whole record is
re-normalized and rewritten. The id is immutable; it is never re-derived
from edited fields.

Link fields can be cleared by passing an empty value, e.g. --code "".`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
	f := editCmd.Flags()
	f.StringVar(&editFlags.title, "title", "", "New title")
	f.StringArrayVar(&editFlags.authors, "author", nil, "New author list (repeatable, replaces all)")
	f.StringVar(&editFlags.year, "year", "", "New year")
	f.StringVar(&editFlags.abstract, "abstract", "", "New abstract")
	f.StringVar(&editFlags.paper, "paper", "", "New paper URL")
	f.StringVar(&editFlags.projectPage, "project-page", "", "New project page URL")
	f.StringVar(&editFlags.code, "code", "", "New code URL")
	f.StringVar(&editFlags.video, "video", "", "New video URL")
	f.StringArrayVar(&editFlags.tags, "tag", nil, "New tag set (repeatable, replaces all)")
}

func runEdit(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	st := mustLoadStore(repoRoot)

	id := args[0]
	existing, ok := st.Find(id)
	if !ok {
		exitWithError(ExitError, "no entry with id %q", id)
	}

	raw := rawFromRecord(existing)
	flags := cmd.Flags()
	if flags.Changed("title") {
		raw.Title = editFlags.title
	}
	if flags.Changed("author") {
		raw.Authors = editFlags.authors
	}
	if flags.Changed("year") {
		raw.Year = editFlags.year
	}
	if flags.Changed("abstract") {
		raw.Abstract = editFlags.abstract
	}
	if flags.Changed("paper") {
		raw.Paper = editFlags.paper
	}
	if flags.Changed("project-page") {
		raw.ProjectPage = editFlags.projectPage
	}
	if flags.Changed("code") {
		raw.Code = editFlags.code
	}
	if flags.Changed("video") {
		raw.Video = editFlags.video
	}
	if flags.Changed("tag") {
		raw.Tags = editFlags.tags
	}

	rec, err := catalog.Normalize(raw)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	if err := st.Update(id, rec); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		outputHuman("Updated %s\n", id)
		return nil
	}
	return outputJSON(AddResult{Action: "updated", Paper: summarize(rec)})
}

// rawFromRecord converts an existing record back to the raw tuple so edits
// share the normalizer path. Authors are split back into the flat list.
func rawFromRecord(rec catalog.Record) catalog.RawMetadata {
	raw := catalog.RawMetadata{
		ID:              rec.ID,
		Title:           rec.Title,
		Year:            rec.Year.Int(),
		Abstract:        rec.Abstract,
		Paper:           rec.Paper,
		ProjectPage:     rec.ProjectPage,
		Code:            rec.Code,
		Video:           rec.Video,
		Tags:            rec.Tags,
		Thumbnail:       rec.Thumbnail,
		PublicationDate: rec.PublicationDate,
		DateSource:      rec.DateSource,
	}
	for _, a := range strings.Split(rec.Authors, ",") {
		if a = strings.TrimSpace(a); a != "" {
			raw.Authors = append(raw.Authors, a)
		}
	}
	return raw
}
