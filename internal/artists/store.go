package artists

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"soundguard/internal/config"
	"soundguard/internal/services"
	"soundguard/internal/textutil"
)

const (
	stageName     = "directory"
	artistColumns = "id, display_name, verified, created_at"
)

// Store manages the artist directory backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to the directory database configured in cfg, creating it
// and its parent directories on first use.
func Open(cfg *config.Config) (*Store, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, stageName, "open", "config is nil", nil)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.Directory.Path)
}

// OpenPath connects to the directory database at path.
func OpenPath(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, services.Wrap(services.ErrConfiguration, stageName, "open", "directory path is empty", nil)
	}
	// Pragmas in the DSN apply to every pooled connection.
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Upsert inserts or updates an identity. A blank ID is assigned a new UUID and
// a zero CreatedAt is set to now; the original creation time of an existing
// row is preserved.
func (s *Store) Upsert(ctx context.Context, identity Identity) (Identity, error) {
	identity.DisplayName = strings.TrimSpace(identity.DisplayName)
	if identity.DisplayName == "" {
		return Identity{}, services.Wrap(services.ErrValidation, stageName, "upsert", "display name is required", nil)
	}
	identity.ID = strings.TrimSpace(identity.ID)
	if identity.ID == "" {
		identity.ID = uuid.NewString()
	}
	if identity.CreatedAt.IsZero() {
		identity.CreatedAt = time.Now()
	}
	identity.CreatedAt = identity.CreatedAt.UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO artists (id, display_name, normalized_name, search_name, verified, created_at)
         VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET
            display_name = excluded.display_name,
            normalized_name = excluded.normalized_name,
            search_name = excluded.search_name,
            verified = excluded.verified`,
		identity.ID,
		identity.DisplayName,
		textutil.NormalizeName(identity.DisplayName),
		searchName(identity.DisplayName),
		boolToInt(identity.Verified),
		identity.CreatedAt.UnixNano(),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("upsert artist %s: %w", identity.ID, err)
	}
	return s.Get(ctx, identity.ID)
}

// Get returns the identity with the given ID.
func (s *Store) Get(ctx context.Context, id string) (Identity, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+artistColumns+" FROM artists WHERE id = ?", strings.TrimSpace(id))
	identity, err := scanIdentity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Identity{}, services.Wrap(services.ErrNotFound, stageName, "get", fmt.Sprintf("artist %q", id), nil)
	}
	if err != nil {
		return Identity{}, fmt.Errorf("get artist %s: %w", id, err)
	}
	return identity, nil
}

// List returns directory entries ordered by creation time.
func (s *Store) List(ctx context.Context, verifiedOnly bool) ([]Identity, error) {
	query := "SELECT " + artistColumns + " FROM artists"
	if verifiedOnly {
		query += " WHERE verified = 1"
	}
	query += " ORDER BY created_at, id"
	return s.query(ctx, query)
}

// Remove deletes the identity with the given ID.
func (s *Store) Remove(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM artists WHERE id = ?", strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("remove artist %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove artist %s: rows affected: %w", id, err)
	}
	if affected == 0 {
		return services.Wrap(services.ErrNotFound, stageName, "remove", fmt.Sprintf("artist %q", id), nil)
	}
	return nil
}

// FindVerifiedArtists returns verified identities other than filter.ExcludeID
// whose name satisfies at least one non-empty predicate of filter.
func (s *Store) FindVerifiedArtists(ctx context.Context, filter Filter) ([]Identity, error) {
	if filter.Empty() {
		return nil, nil
	}
	var (
		clauses []string
		args    = []any{strings.TrimSpace(filter.ExcludeID)}
	)
	if filter.NameEquals != "" {
		clauses = append(clauses, "normalized_name = ?")
		args = append(args, filter.NameEquals)
	}
	if filter.NameStartsWith != "" {
		clauses = append(clauses, `search_name LIKE ? ESCAPE '\'`)
		args = append(args, escapeLike(filter.NameStartsWith)+"%")
	}
	if filter.NameContains != "" {
		clauses = append(clauses, "instr(search_name, ?) > 0")
		args = append(args, filter.NameContains)
	}
	query := "SELECT " + artistColumns + " FROM artists WHERE verified = 1 AND id <> ? AND (" +
		strings.Join(clauses, " OR ") + ") ORDER BY created_at, id"
	return s.query(ctx, query, args...)
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]Identity, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query artists: %w", err)
	}
	defer rows.Close()

	var out []Identity
	for rows.Next() {
		identity, err := scanIdentity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		out = append(out, identity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artists: %w", err)
	}
	return out, nil
}

func scanIdentity(scanner interface{ Scan(dest ...any) error }) (Identity, error) {
	var (
		identity Identity
		verified int64
		created  int64
	)
	if err := scanner.Scan(&identity.ID, &identity.DisplayName, &verified, &created); err != nil {
		return Identity{}, err
	}
	identity.Verified = verified != 0
	identity.CreatedAt = time.Unix(0, created).UTC()
	return identity, nil
}

func searchName(displayName string) string {
	return strings.ToLower(strings.TrimSpace(displayName))
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
