package storage

import "errors"

var (
	// ErrNotFound is returned when an entity does not exist or the supplied
	// id is malformed for the active backend.
	ErrNotFound = errors.New("storage: not found")

	// ErrDuplicateKey is returned when a uniqueness invariant (slug,
	// membership pair) would be violated.
	ErrDuplicateKey = errors.New("storage: duplicate key")

	// ErrNotConfigured is returned by Open when neither a document-store nor
	// a relational connection string is configured.
	ErrNotConfigured = errors.New("storage: no database configured")
)

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsDuplicateKey reports whether err wraps ErrDuplicateKey.
func IsDuplicateKey(err error) bool { return errors.Is(err, ErrDuplicateKey) }
