// Package repository defines the backend-neutral storage facade and
// the sentinel error values shared by both implementations. Handlers
// and services branch on these sentinels rather than on backend
// details: neither sql.ErrNoRows nor a driver constraint error ever
// escapes a repository.
package repository

import "errors"

// ErrNotFound is returned when the requested entity does not exist.
// Handlers translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when creating or updating a user would
// violate the unique email constraint. Handlers translate it into an
// HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// ErrDuplicateCode is returned when a ticket insert collides on the
// unique qr_code_value column. With UUID-derived codes this is
// effectively unreachable, but the constraint is still surfaced.
var ErrDuplicateCode = errors.New("ticket code already exists")

// ErrAlreadyVoted is returned when a user attempts a second vote in
// the same poll.
var ErrAlreadyVoted = errors.New("user has already voted in this poll")

// ErrConflict is returned when an operation cannot proceed due to
// conflicting state, such as deleting a ticket type that existing
// tickets still reference by id.
var ErrConflict = errors.New("conflict")
