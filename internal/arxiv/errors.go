package arxiv

import "errors"

// Common errors returned by the arXiv adapter. Both are recoverable; the
// caller decides whether to retry with corrected input.
var (
	// ErrInvalidIdentifier indicates input that does not reduce to a
	// well-formed arXiv identifier.
	ErrInvalidIdentifier = errors.New("invalid arXiv identifier")

	// ErrPaperNotFound indicates the API returned no result for the
	// identifier.
	ErrPaperNotFound = errors.New("paper not found on arXiv")
)
