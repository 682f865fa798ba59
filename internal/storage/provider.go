// Package storage defines the durable key-value slot abstraction used to
// persist the cart across restarts.
package storage

import "context"

// Provider is the interface for durable key-value slot operations.
// Values are opaque blobs; the cart store encodes and decodes them itself.
type Provider interface {
	// Get returns the value stored under key.
	// Returns apperr.ErrNotFound when the slot has never been written.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set overwrites the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
}
