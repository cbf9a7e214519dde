package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mrnerf/paperlist/internal/pdfid"
)

var addPdfCmd = &cobra.Command{
	Use:   "add-pdf <pdf-path>",
	Short: "Add a paper by extracting its arXiv id from a PDF file",
	Long: `Add a paper by scanning a local PDF for the arXiv identifier stamp,
then running the normal arXiv lookup flow.

Examples:
  paperlist add-pdf ~/Downloads/2412.21206v2.pdf
  paperlist add-pdf paper.pdf --tag SLAM`,
	Args: cobra.ExactArgs(1),
	RunE: runAddPdf,
}

func init() {
	rootCmd.AddCommand(addPdfCmd)
	addPdfCmd.Flags().StringArrayVar(&addTags, "tag", nil, "Descriptive tag (repeatable)")
}

func runAddPdf(cmd *cobra.Command, args []string) error {
	absPath, err := filepath.Abs(args[0])
	if err != nil {
		exitWithError(ExitError, "resolving path: %v", err)
	}
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		exitWithError(ExitError, "PDF not found: %s", absPath)
	}

	id, err := pdfid.ExtractArxivID(absPath)
	if err != nil {
		exitWithError(ExitError, "reading PDF: %v", err)
	}
	if id == "" {
		exitWithError(ExitDataError, "no arXiv identifier found in %s", absPath)
	}

	return addFromArxiv(cmd, id)
}
