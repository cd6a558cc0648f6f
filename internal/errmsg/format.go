// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Catalog operations
	OpCatalogLoad    Op = "load songs"
	OpCatalogOptions Op = "load filter options"
	OpRadioLoad      Op = "load radio"

	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpMediaLoad     Op = "load media"

	// Lyrics and artwork
	OpLyricsFetch Op = "fetch lyrics"
	OpCoverSearch Op = "search cover art"

	// Persistence
	OpLikeToggle Op = "update likes"
	OpStateLoad  Op = "load saved state"
	OpStateSave  Op = "save state"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Status lines shown instead of a track list.
const (
	StatusLoading     = "Loading songs..."
	StatusEmptyAPI    = "No tracks were returned from the API."
	StatusNoMatches   = "No songs match your current filters."
	StatusEmptySelect = "Pick a song"
	StatusEmptyLikes  = "No liked songs yet."
	StatusEmptyRadio  = "No radio picks right now."
	StatusEmptyDeck   = "The swipe deck is empty."
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
