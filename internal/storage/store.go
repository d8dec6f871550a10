// Package storage provides content-addressed blob storage for letterheads
// and generated offer documents.
package storage

import (
	"context"
	"fmt"
	"time"
)

// Store is the object-store contract the pipeline depends on. Keys are
// forward-slash-delimited strings; no enumeration is required.
type Store interface {
	// Put uploads bytes under a key, overwriting any existing object.
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// Get downloads the object's bytes, or a NotFoundError.
	Get(ctx context.Context, key string) ([]byte, error)
	// Sign mints a time-limited retrieval URL for a key.
	Sign(ctx context.Context, key string, ttl time.Duration) (string, error)
	// Remove deletes an object. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// NotFoundError reports a key with no stored object.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("object not found: %s", e.Key)
}

// StorageError reports a failed storage operation.
type StorageError struct {
	Op    string
	Key   string
	Cause error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed for %s: %v", e.Op, e.Key, e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}
