package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrnerf/paperlist/internal/store"
	"github.com/mrnerf/paperlist/internal/validate"
)

var validateFlags struct {
	base string
	all  bool
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate changed entries against the tag vocabulary and check links",
	Long: `Validate catalog entries: every descriptive tag must be in the
controlled vocabulary, every entry needs at least one non-year tag, and
link fields must be reachable (HEAD with GET fallback, with retries).

Only entries that are new or changed relative to the base snapshot are
checked, keeping incremental validation cheap. Use --all to check the
whole catalog.

Exits 3 when any validation error was found.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateFlags.base, "base", "", "Base catalog snapshot to diff against")
	validateCmd.Flags().BoolVar(&validateFlags.all, "all", false, "Validate every entry")
}

// ValidateResult is the JSON output for the validate command.
type ValidateResult struct {
	Checked int      `json:"checked"`
	Errors  []string `json:"errors,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	st := mustLoadStore(repoRoot)

	changed := st.All()
	switch {
	case validateFlags.all:
		// keep everything
	case validateFlags.base != "":
		if _, err := os.Stat(validateFlags.base); err != nil {
			exitWithError(ExitError, "base snapshot: %v", err)
		}
		base, err := store.Load(validateFlags.base)
		if err != nil {
			if errors.Is(err, store.ErrCorruptCatalog) {
				exitWithError(ExitDataError, "base snapshot: %v", err)
			}
			exitWithError(ExitError, "base snapshot: %v", err)
		}
		changed = validate.ChangedEntries(st.All(), base.All())
	default:
		exitWithError(ExitError, "provide --base <snapshot> or --all")
	}

	if len(changed) == 0 {
		if humanOutput {
			outputHuman("No entries changed\n")
			return nil
		}
		return outputJSON(ValidateResult{Checked: 0})
	}

	v := validate.New(
		validate.WithClient(newFetchClient(cfg)),
		validate.WithProgress(progress),
	)
	errs := v.Validate(cmd.Context(), changed)

	if humanOutput {
		for _, e := range errs {
			outputHuman("%s\n", e)
		}
		outputHuman("Checked %d entries, %d errors\n", len(changed), len(errs))
	} else {
		outputJSON(ValidateResult{Checked: len(changed), Errors: errs})
	}

	if len(errs) > 0 {
		os.Exit(ExitDataError)
	}
	return nil
}
