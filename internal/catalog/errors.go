package catalog

import "errors"

// Errors returned during record construction. Callers reject the single
// offending record and continue; none of these abort a batch.
var (
	// ErrInvalidYear indicates a year that could not be coerced to an
	// integer in the accepted range.
	ErrInvalidYear = errors.New("invalid year")

	// ErrDegenerateIdentifier indicates that id generation would produce
	// an empty or ambiguous token (e.g. an author name that is all
	// punctuation).
	ErrDegenerateIdentifier = errors.New("degenerate identifier")

	// ErrMalformedRecord indicates a record missing required fields or
	// carrying a non-URL value in a link field.
	ErrMalformedRecord = errors.New("malformed record")
)
