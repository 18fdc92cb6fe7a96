// Package storage keeps small records on the client between runs.
//
// The session is persisted as a single record under KeyPrincipal. Two
// implementations are provided: SQLiteStore, backed by a local database file,
// and MemoryStore, which forgets everything when the process exits.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no record exists under the key.
var ErrNotFound = errors.New("record not found")

const (
	// KeyPrincipal holds the JSON-encoded signed-in principal.
	KeyPrincipal = "user"
	// KeyLastBoard holds the ID of the board the user had open last.
	KeyLastBoard = "last_board"
)

// Store is a durable key/value record store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes the given keys atomically. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
	Close() error
}
