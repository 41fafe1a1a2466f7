package search

import "errors"

var (
	// ErrToolUnavailable is returned when neither fd nor fdfind can be found
	ErrToolUnavailable = errors.New("tool unavailable: install fd (or fdfind)")

	// ErrSuperseded is returned for a search that a newer search replaced;
	// its results must not be rendered
	ErrSuperseded = errors.New("search superseded by a newer query")
)
