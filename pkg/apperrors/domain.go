package apperrors

import (
	"net/http"
)

// Factories for the error classes the content API actually produces.

// NewNotFoundError reports a missing record for the given resource domain.
func NewNotFoundError(domain, message string) *AppError {
	return New(CodeNotFound, domain, message, http.StatusNotFound)
}

// DatabaseError wraps a failed database round-trip.
func DatabaseError(err error, domain string) *AppError {
	return Wrap(err, CodeDatabaseError, domain, "Database operation failed", http.StatusInternalServerError)
}

// StorageError wraps a filesystem read/write failure. Record state must not
// be considered persisted when one of these is returned.
func StorageError(err error, domain string) *AppError {
	return Wrap(err, CodeStorageError, domain, "File storage operation failed", http.StatusInternalServerError)
}

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)
