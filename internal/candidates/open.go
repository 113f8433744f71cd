package candidates

import (
	"context"
	"errors"
	"strings"
)

// Backend identifies the database behind a DSN.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendMemory   Backend = "memory"
)

// ParseDSN resolves the backend of dsn and the value passed to its driver.
//
//	postgres://..., postgresql://...  -> PostgreSQL, dsn unchanged
//	sqlite://<path>                   -> SQLite at <path>
//	memory://                         -> in-memory store
//	anything else                     -> SQLite, dsn used as path
func ParseDSN(dsn string) (Backend, string, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return "", "", errors.New("database is not configured")
	}

	lower := strings.ToLower(dsn)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return BackendPostgres, dsn, nil
	case strings.HasPrefix(lower, "memory://"):
		return BackendMemory, "", nil
	case strings.HasPrefix(lower, "sqlite://"):
		path := dsn[len("sqlite://"):]
		if path == "" {
			return "", "", errors.New("sqlite path is empty")
		}
		return BackendSQLite, path, nil
	default:
		return BackendSQLite, dsn, nil
	}
}

// Open opens the store described by dsn.
func Open(ctx context.Context, dsn string) (Store, error) {
	backend, target, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}

	switch backend {
	case BackendPostgres:
		return OpenPostgres(ctx, target)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return OpenSQLite(ctx, target)
	}
}
