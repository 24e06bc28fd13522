// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// leaking database/sql details upward.
package repository

import "errors"

// ErrNotFound is returned when a row with the requested identifier does not
// exist. Handlers translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when a registration collides with an existing
// unique email. Handlers translate this into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// ErrDuplicate is returned when an insert violates a uniqueness rule other
// than the user email, such as a second portfolio for the same user.
// Handlers translate this into an HTTP 409 response.
var ErrDuplicate = errors.New("duplicate record")
