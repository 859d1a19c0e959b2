package directory

import (
	"errors"

	"github.com/smileynet/addressbook/internal/contact"
	"github.com/smileynet/addressbook/internal/store"
)

// Describe returns the one-line user message for a directory error, so every
// front-end reports the same condition the same way.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyDirectory):
		return "The directory is empty."
	case errors.Is(err, ErrNotFound):
		return "Contact not found."
	case errors.Is(err, ErrCapacityExceeded):
		return "The directory is full, no more contacts can be added."
	case errors.Is(err, ErrInvalidSelection):
		return "Invalid selection, please choose 0-6."
	case errors.Is(err, ErrInvalidIndex):
		return "Invalid number, please try again."
	case errors.Is(err, contact.ErrInvalidSexCode):
		return "Invalid sex code, enter 1 (Male) or 2 (Female)."
	case errors.Is(err, store.ErrStaleMatch):
		return "That contact is no longer in the directory."
	default:
		return err.Error()
	}
}
