package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mrnerf/paperlist/internal/catalog"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// progress writes a per-record progress line to stderr during batch
// operations.
func progress(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
}

// exitWithError outputs an error in the appropriate format and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PaperSummary is the compact record representation used in command output.
type PaperSummary struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Authors string `json:"authors"`
	Year    int    `json:"year"`
}

func summarize(rec catalog.Record) PaperSummary {
	return PaperSummary{
		ID:      rec.ID,
		Title:   rec.Title,
		Authors: rec.Authors,
		Year:    rec.Year.Int(),
	}
}
