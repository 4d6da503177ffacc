package api

import "errors"

// Sentinel errors returned by the storage layer. Handlers map these onto
// HTTP status codes; anything else is treated as a storage failure.
var (
	// ErrNotFound reports that the referenced entity does not exist or has
	// been soft-deleted.
	ErrNotFound = errors.New("not found")
	// ErrForbidden reports that the acting user is not the entity's author.
	ErrForbidden = errors.New("forbidden")
)
