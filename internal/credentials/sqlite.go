package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/2beens/prtracker/internal/telemetry/tracing"
	"github.com/2beens/prtracker/pkg"
)

const createStorageTable = `
CREATE TABLE IF NOT EXISTS local_storage (
	origin TEXT NOT NULL,
	key    TEXT NOT NULL,
	value  TEXT NOT NULL,
	PRIMARY KEY (origin, key)
)`

// SQLiteStore persists the token across runs in a local database file,
// one row per (origin, key), like browser local storage.
type SQLiteStore struct {
	origin string
	db     *sql.DB
	tracer *tracing.StorageTracer
}

// OpenSQLiteStore opens (and creates if needed) the storage database at path.
// Path ":memory:" gives a throwaway database.
func OpenSQLiteStore(path, origin string, tracer *tracing.StorageTracer) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := pkg.EnsureDir(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("creating storage directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening storage database: %w", err)
	}
	// the in-memory database lives as long as its single connection does
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := db.Exec(createStorageTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating storage table: %w", err)
	}

	return &SQLiteStore{
		origin: origin,
		db:     db,
		tracer: tracer,
	}, nil
}

func (s *SQLiteStore) Get(ctx context.Context) (string, bool) {
	ctx, end := s.tracer.Start(ctx, "sqlite", "get")
	var token string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM local_storage WHERE origin = ? AND key = ?`,
		s.origin, TokenKey,
	).Scan(&token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			end(nil)
		} else {
			log.Errorf("sqlite store, get token: %s", err)
			end(err)
		}
		return "", false
	}
	end(nil)
	return token, true
}

func (s *SQLiteStore) Set(ctx context.Context, token string) (err error) {
	ctx, end := s.tracer.Start(ctx, "sqlite", "set")
	defer func() { end(err) }()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO local_storage (origin, key, value) VALUES (?, ?, ?)
		 ON CONFLICT (origin, key) DO UPDATE SET value = excluded.value`,
		s.origin, TokenKey, token,
	)
	if err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) (err error) {
	ctx, end := s.tracer.Start(ctx, "sqlite", "clear")
	defer func() { end(err) }()

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM local_storage WHERE origin = ? AND key = ?`,
		s.origin, TokenKey,
	); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
