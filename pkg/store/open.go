package store

import (
	"context"
	"slices"

	"github.com/matzehuels/isostack/pkg/errors"
)

// Backend names accepted by Open.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
)

// Backends lists every backend name Open understands.
var Backends = []string{
	BackendFile, BackendMemory, BackendSQLite,
	BackendRedis, BackendMongo, BackendPostgres,
}

// Config selects and configures a backend.
type Config struct {
	// Backend is one of Backends. Empty means BackendFile.
	Backend string

	// DSN is backend specific: a directory for file, a database path for
	// sqlite, a connection URL for redis, mongo and postgres.
	DSN string

	// Database names the MongoDB database. Ignored by other backends.
	Database string
}

// Open creates the backend described by cfg.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", BackendFile:
		return NewFileStore(cfg.DSN)
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		if cfg.DSN == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "sqlite store requires a database path")
		}
		return OpenSQLite(ctx, cfg.DSN)
	case BackendRedis, BackendMongo, BackendPostgres:
		if cfg.DSN == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s store requires a connection URL", cfg.Backend)
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q (want one of %v)", cfg.Backend, Backends)
	}

	switch cfg.Backend {
	case BackendRedis:
		return OpenRedis(ctx, cfg.DSN)
	case BackendMongo:
		return OpenMongo(ctx, cfg.DSN, cfg.Database)
	default:
		return OpenPostgres(ctx, cfg.DSN)
	}
}

// IsBackend reports whether name is a known backend.
func IsBackend(name string) bool {
	return slices.Contains(Backends, name)
}
