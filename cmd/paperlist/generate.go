package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mrnerf/paperlist/internal/render"
)

var generateOutput string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the static HTML page from the catalog",
	Long: `Render the catalog to a single self-contained HTML page with
client-side search and tag filtering. Records appear in catalog order;
rendering the same catalog twice produces identical output.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output file (default from config)")
	rootCmd.AddCommand(generateCmd)
}

// GenerateResult is the JSON output for the generate command.
type GenerateResult struct {
	Output string `json:"output"`
	Papers int    `json:"papers"`
}

func runGenerate(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	st := mustLoadStore(repoRoot)

	outPath := generateOutput
	if outPath == "" {
		outPath = cfg.OutputPath(repoRoot)
	}

	page, err := render.BuildPage(cfg.PageTitle, st.All())
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			exitWithError(ExitError, "creating output directory: %v", err)
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		exitWithError(ExitError, "creating %s: %v", outPath, err)
	}
	if err := render.WriteHTML(f, page); err != nil {
		f.Close()
		exitWithError(ExitError, "rendering %s: %v", outPath, err)
	}
	if err := f.Close(); err != nil {
		exitWithError(ExitError, "writing %s: %v", outPath, err)
	}

	if humanOutput {
		outputHuman("Generated %s with %d papers\n", outPath, st.Len())
		return nil
	}
	return outputJSON(GenerateResult{Output: outPath, Papers: st.Len()})
}
