package artists

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is stamped into PRAGMA user_version. Bump it whenever
// schema.sql changes incompatibly.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was created by an incompatible build.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// initSchema creates the tables on a fresh database and refuses to open one
// stamped with a different version.
func (s *Store) initSchema(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	switch version {
	case schemaVersion:
		return nil
	case 0:
		return s.applySchema(ctx)
	default:
		return fmt.Errorf("%w: %s has version %d, this build expects %d (delete it and re-seed the directory)",
			ErrSchemaMismatch, s.path, version, schemaVersion)
	}
}

func (s *Store) applySchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// PRAGMA does not accept bound parameters.
	stamp := fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)
	for _, stmt := range []string{schemaSQL, stamp} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return tx.Commit()
}
