// Package store persists serialized surface snapshots under string keys.
//
// The engine treats a store as a dumb blob bucket: it never inspects
// stored bytes and never lists keys on its own. Implementations decide
// durability; FileStore maps keys onto files of a hackpadfs filesystem,
// which covers the OS disk, an in-memory tree for tests, and browser
// storage backends with the same code.
package store

import (
	"context"
	"errors"
)

// Errors reported by stores. Backend failures wrap ErrUnavailable;
// lookups of absent keys report ErrNotFound, so callers can tell
// "nothing saved yet" from "storage is broken".
var (
	ErrNotFound    = errors.New("store: key not found")
	ErrUnavailable = errors.New("store: unavailable")
)

// Store is a keyed durable store for opaque snapshot blobs. Keys are
// caller-chosen names without path separators. Implementations are used
// from a single goroutine at a time; the engine never calls them
// concurrently.
type Store interface {
	// Save writes data under key, replacing any previous value.
	Save(ctx context.Context, key string, data []byte) error
	// Load returns the data stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// List returns all stored keys in lexical order.
	List(ctx context.Context) ([]string, error)
	// Close releases backend resources.
	Close() error
}
