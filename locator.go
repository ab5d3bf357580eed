package diaclass

import "context"

// Locator resolves a document reference to the document's text.
type Locator interface {
	// Locate returns the content of the document at ref.
	// Returns ENOTFOUND if no candidate root contains the file.
	Locate(ctx context.Context, ref string) (string, error)
}
