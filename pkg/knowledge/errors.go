package knowledge

import "errors"

var (
	// ErrDuplicateURL is returned by Save when an entry with the same URL
	// already exists. The store is left unmodified.
	ErrDuplicateURL = errors.New("entry already exists for url")

	// ErrNotFound is returned by GetByID for unknown entry ids.
	ErrNotFound = errors.New("entry not found")
)
