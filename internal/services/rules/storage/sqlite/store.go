// Package sqlite stores catalog content in SQLite so match servers and tools
// load the same unit, building and tile definitions.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/errors"
	sqlitemigrate "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/storage/sqlitemigrate"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/platform/timeouts"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/catalog"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/core/encoding"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// ErrNoContent is returned by LoadContent before any content was stored.
var ErrNoContent = apperrors.New(apperrors.CodeNotFound, "no catalog content stored")

// Store persists catalog content.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// OpenContent opens the content database at path and applies migrations.
func OpenContent(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_synchronous=NORMAL&_busy_timeout=" +
		strconv.FormatInt(timeouts.SQLiteBusy.Milliseconds(), 10)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

type row struct {
	id   int
	name string
	data any
}

// PutContent validates content and replaces the stored catalog with it in a
// single transaction. It returns the content hash of the new revision.
func (s *Store) PutContent(ctx context.Context, content catalog.Content) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s == nil || s.sqlDB == nil {
		return "", fmt.Errorf("storage is not configured")
	}
	cat, err := catalog.New(content)
	if err != nil {
		return "", err
	}
	content = cat.Content()
	hash, err := encoding.ContentHash(content)
	if err != nil {
		return "", fmt.Errorf("hash content: %w", err)
	}

	tables := map[string][]row{}
	for _, m := range content.MovementTypes {
		tables["movement_types"] = append(tables["movement_types"], row{id: int(m.ID), name: m.Name, data: m})
	}
	for _, w := range content.Weapons {
		tables["weapons"] = append(tables["weapons"], row{id: int(w.ID), name: w.Name, data: w})
	}
	for _, t := range content.Tiles {
		tables["tiles"] = append(tables["tiles"], row{id: int(t.ID), name: t.Name, data: t})
	}
	for _, u := range content.Units {
		tables["units"] = append(tables["units"], row{id: int(u.ID), name: u.Name, data: u})
	}
	for _, b := range content.Buildings {
		tables["buildings"] = append(tables["buildings"], row{id: int(b.ID), name: b.Name, data: b})
	}

	now := s.now().UTC().UnixMilli()
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin content tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range contentTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return "", fmt.Errorf("clear %s: %w", table, err)
		}
		for _, r := range tables[table] {
			data, err := json.Marshal(r.data)
			if err != nil {
				return "", fmt.Errorf("marshal %s %d: %w", table, r.id, err)
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO "+table+" (id, name, data_json, updated_at) VALUES (?, ?, ?, ?)",
				r.id, r.name, string(data), now,
			); err != nil {
				if isConstraintError(err) {
					return "", apperrors.WithMetadata(apperrors.CodeDuplicateEntry, "duplicate "+table+" row", map[string]string{
						"Kind": table,
						"ID":   fmt.Sprint(r.id),
					})
				}
				return "", fmt.Errorf("insert %s %d: %w", table, r.id, err)
			}
		}
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO content_revisions (hash, applied_at) VALUES (?, ?)", hash, now,
	); err != nil {
		return "", fmt.Errorf("record revision: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit content tx: %w", err)
	}
	return hash, nil
}

var contentTables = []string{"movement_types", "weapons", "tiles", "units", "buildings"}

// LoadContent reads the stored catalog in id order.
func (s *Store) LoadContent(ctx context.Context) (catalog.Content, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Content{}, err
	}
	if s == nil || s.sqlDB == nil {
		return catalog.Content{}, fmt.Errorf("storage is not configured")
	}
	if _, err := s.Revision(ctx); err != nil {
		return catalog.Content{}, err
	}
	var content catalog.Content
	if err := loadTable(ctx, s.sqlDB, "movement_types", &content.MovementTypes); err != nil {
		return catalog.Content{}, err
	}
	if err := loadTable(ctx, s.sqlDB, "weapons", &content.Weapons); err != nil {
		return catalog.Content{}, err
	}
	if err := loadTable(ctx, s.sqlDB, "tiles", &content.Tiles); err != nil {
		return catalog.Content{}, err
	}
	if err := loadTable(ctx, s.sqlDB, "units", &content.Units); err != nil {
		return catalog.Content{}, err
	}
	if err := loadTable(ctx, s.sqlDB, "buildings", &content.Buildings); err != nil {
		return catalog.Content{}, err
	}
	return content, nil
}

// LoadCatalog loads and validates the stored catalog.
func (s *Store) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	content, err := s.LoadContent(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.New(content)
}

// Revision returns the hash of the most recently stored content.
func (s *Store) Revision(ctx context.Context) (string, error) {
	var hash string
	err := s.sqlDB.QueryRowContext(ctx,
		"SELECT hash FROM content_revisions ORDER BY seq DESC LIMIT 1",
	).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoContent
	}
	if err != nil {
		return "", fmt.Errorf("get content revision: %w", err)
	}
	return hash, nil
}

func loadTable[T any](ctx context.Context, sqlDB *sql.DB, table string, out *[]T) error {
	rows, err := sqlDB.QueryContext(ctx, "SELECT id, data_json FROM "+table+" ORDER BY id")
	if err != nil {
		return fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id   int
			data string
		)
		if err := rows.Scan(&id, &data); err != nil {
			return fmt.Errorf("scan %s: %w", table, err)
		}
		var value T
		if err := json.Unmarshal([]byte(data), &value); err != nil {
			return fmt.Errorf("decode %s %d: %w", table, id, err)
		}
		*out = append(*out, value)
	}
	return rows.Err()
}

func isConstraintError(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return false
}
