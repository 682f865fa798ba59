// Package apperr defines sentinel errors shared across layers.
package apperr

import "errors"

// ErrNotFound indicates a requested entity (product, storage slot)
// does not exist.
var ErrNotFound = errors.New("not found")
