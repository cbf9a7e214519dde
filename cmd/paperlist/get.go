package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrnerf/paperlist/internal/catalog"
)

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one catalog entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	st := mustLoadStore(repoRoot)

	rec, ok := st.Find(args[0])
	if !ok {
		exitWithError(ExitError, "no entry with id %q", args[0])
	}

	if humanOutput {
		printRecord(rec)
		return nil
	}
	return outputJSON(rec)
}

func printRecord(rec catalog.Record) {
	outputHuman("%s (%d)\n", rec.Title, rec.Year.Int())
	outputHuman("  id:      %s\n", rec.ID)
	outputHuman("  authors: %s\n", rec.Authors)
	outputHuman("  tags:    %s\n", strings.Join(rec.Tags, ", "))
	for _, l := range []struct{ name, url string }{
		{"paper", rec.Paper},
		{"project", rec.ProjectPage},
		{"code", rec.Code},
		{"video", rec.Video},
	} {
		if l.url != "" {
			outputHuman("  %-7s  %s\n", l.name+":", l.url)
		}
	}
	if rec.PublicationDate != "" {
		outputHuman("  date:    %s (%s)\n", rec.PublicationDate, rec.DateSource)
	}
}
