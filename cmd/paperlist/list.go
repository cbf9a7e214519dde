package main

import (
	"github.com/spf13/cobra"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog entries",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum entries to show (0 = all)")
}

// ListResult is the JSON output for the list command.
type ListResult struct {
	Total  int            `json:"total"`
	Papers []PaperSummary `json:"papers"`
}

func runList(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	st := mustLoadStore(repoRoot)

	records := st.All()
	total := len(records)
	if listLimit > 0 && listLimit < len(records) {
		records = records[:listLimit]
	}

	if humanOutput {
		for _, r := range records {
			outputHuman("%-28s %4d  %s\n", r.ID, r.Year.Int(), truncate(r.Title, 60))
		}
		outputHuman("%d entries\n", total)
		return nil
	}

	result := ListResult{Total: total}
	for _, r := range records {
		result.Papers = append(result.Papers, summarize(r))
	}
	return outputJSON(result)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
