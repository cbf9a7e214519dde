package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mrnerf/paperlist/internal/store"
	"github.com/mrnerf/paperlist/internal/thumbs"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a catalog entry and its thumbnail",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

// DeleteResult is the JSON output for the delete command.
type DeleteResult struct {
	Action string `json:"action"` // deleted
	ID     string `json:"id"`
}

func runDelete(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	st := mustLoadStore(repoRoot)

	id := args[0]
	rec, err := st.Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			exitWithError(ExitError, "no entry with id %q", id)
		}
		exitWithError(ExitError, "%v", err)
	}

	if err := thumbs.Remove(repoRoot, rec.ID); err != nil {
		progress("warning: %v\n", err)
	}

	if humanOutput {
		outputHuman("Deleted %s\n", id)
		return nil
	}
	return outputJSON(DeleteResult{Action: "deleted", ID: id})
}
