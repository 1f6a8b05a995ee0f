// Package store persists serialized diagrams under string keys.
//
// Every backend implements [Store]:
//   - file: one JSON file per key in a directory, for the CLI
//   - memory: in-process map, for tests and ephemeral servers
//   - sqlite: a single-file database via ncruces/go-sqlite3
//   - redis: a shared key space for multi-instance servers
//   - mongo: one document per key in a MongoDB collection
//   - postgres: one row per key via pgx
//
// Stores treat the diagram text as opaque; callers hand them the output of
// diagram.Serialize and get the same text back.
//
// # Usage
//
//	st, err := store.Open(ctx, store.Config{Backend: store.BackendSQLite, DSN: "diagrams.db"})
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	if err := st.Save(ctx, "network", text); err != nil {
//	    return err
//	}
//	text, err := st.Load(ctx, "network")
//	if errors.Is(err, store.ErrNotFound) {
//	    // no such diagram
//	}
package store

import (
	"context"
	stderrors "errors"

	"github.com/matzehuels/isostack/pkg/errors"
)

// ErrNotFound is returned by Load when no diagram is stored under the key.
var ErrNotFound = errors.New(errors.ErrCodeNotFound, "diagram not found")

// Store is the interface for diagram storage backends.
// Implementations are safe for concurrent use.
type Store interface {
	// Save stores text under key, replacing any previous value.
	Save(ctx context.Context, key, text string) error

	// Load returns the text stored under key.
	// Returns an error wrapping ErrNotFound if the key does not exist.
	Load(ctx context.Context, key string) (string, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns all stored keys in ascending order.
	List(ctx context.Context) ([]string, error)

	// Close releases the backend's resources.
	Close() error
}

// IsNotFound reports whether err means the key does not exist.
func IsNotFound(err error) bool {
	return stderrors.Is(err, ErrNotFound)
}

func notFound(key string) error {
	return errors.Wrap(errors.ErrCodeNotFound, ErrNotFound, "load %q", key)
}

func ioError(err error, format string, args ...any) error {
	return errors.Wrap(errors.ErrCodeInternal, err, format, args...)
}

func validKey(key string) error {
	return errors.ValidateKey(key)
}
