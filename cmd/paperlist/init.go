package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mrnerf/paperlist/internal/config"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a paperlist repository in the current directory",
	Long: `Create an empty catalog file and the .paperlist directory in the
current working directory.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

// InitResult is the JSON output for the init command.
type InitResult struct {
	Status  string `json:"status"`
	Catalog string `json:"catalog"`
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	catalogPath := config.CatalogPath(cwd)
	if _, err := os.Stat(catalogPath); err == nil {
		exitWithError(ExitError, "catalog already exists at %s", catalogPath)
	}

	if err := os.WriteFile(catalogPath, []byte("[]\n"), 0644); err != nil {
		exitWithError(ExitError, "creating catalog: %v", err)
	}
	if err := config.Save(cwd, &config.Config{}); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		outputHuman("Initialized empty catalog at %s\n", catalogPath)
		return nil
	}
	return outputJSON(InitResult{Status: "initialized", Catalog: catalogPath})
}
