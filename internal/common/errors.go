// Package common defines the sentinel errors shared across the storage,
// transform and HTTP layers. Callers match these values with errors.Is;
// the HTTP layer maps each to a status code exactly once.
package common

import "errors"

var (
	// ErrInvalidParameter covers bad caller input: missing upload file,
	// non-numeric or out-of-range rotation degrees, unknown mirror axis.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNotFound deliberately merges "no such image" and "image owned by
	// someone else". A non-owner must not be able to tell the two apart.
	ErrNotFound = errors.New("not found")

	// ErrUnprocessableImage means the payload could not be decoded as an
	// image. Surfaced to the caller as an internal error, never a crash.
	ErrUnprocessableImage = errors.New("unprocessable image")

	// ErrStorageUnavailable is any blob store or metadata store failure,
	// including a call exceeding its bounded wait.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrObjectNotFound is returned by blob drivers when deleting a key
	// that is already absent. Deletion stays idempotent for callers; the
	// distinct value exists so cleanup logging can tell "already gone"
	// from a real I/O failure.
	ErrObjectNotFound = errors.New("object not found")

	// Auth errors.
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)
