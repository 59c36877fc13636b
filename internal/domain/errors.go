// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist, or is not
// visible to the acting user. Ownership failures deliberately surface as
// ErrNotFound so a caller cannot confirm the existence of another user's
// resources.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a structural invariant would be violated by the write.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized indicates the acting identity is missing or invalid.
var ErrUnauthorized = errors.New("unauthorized")

// ErrValidation indicates a semantic invariant on the input was violated.
var ErrValidation = errors.New("validation failed")
