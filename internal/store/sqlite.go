package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	data       BLOB NOT NULL,
	etag       TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLite keeps every key as a row of a single kv table.
type SQLite struct {
	sqlDB *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}
	return &SQLite{sqlDB: sqlDB}, nil
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	if err := checkKey(key); err != nil {
		return nil, "", err
	}
	var (
		data []byte
		etag string
	)
	err := s.sqlDB.QueryRowContext(ctx, `SELECT data, etag FROM kv WHERE key = ?`, key).Scan(&data, &etag)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("get %s: %w", key, err)
	}
	return data, etag, nil
}

func (s *SQLite) Put(ctx context.Context, key string, data []byte, expect string) (string, error) {
	if err := s.PutAll(ctx, []Write{{Key: key, Data: data, Expect: expect}}); err != nil {
		return "", err
	}
	return ETag(data), nil
}

func (s *SQLite) PutAll(ctx context.Context, writes []Write) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkWrites(writes); err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := toMillis(time.Now())
	for _, w := range writes {
		if err := putTx(ctx, tx, w, now); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func putTx(ctx context.Context, tx *sql.Tx, w Write, now int64) error {
	etag := ETag(w.Data)
	switch w.Expect {
	case Any:
		_, err := tx.ExecContext(ctx,
			`INSERT INTO kv (key, data, etag, updated_at) VALUES (?, ?, ?, ?)
			 ON CONFLICT(key) DO UPDATE SET
			   data = excluded.data,
			   etag = excluded.etag,
			   updated_at = excluded.updated_at`,
			w.Key, w.Data, etag, now)
		if err != nil {
			return fmt.Errorf("put %s: %w", w.Key, err)
		}
		return nil

	case MustNotExist:
		_, err := tx.ExecContext(ctx,
			`INSERT INTO kv (key, data, etag, updated_at) VALUES (?, ?, ?, ?)`,
			w.Key, w.Data, etag, now)
		if isUniqueViolation(err) {
			return checkExpect(w.Key, "", true, w.Expect)
		}
		if err != nil {
			return fmt.Errorf("insert %s: %w", w.Key, err)
		}
		return nil

	default:
		res, err := tx.ExecContext(ctx,
			`UPDATE kv SET data = ?, etag = ?, updated_at = ? WHERE key = ? AND etag = ?`,
			w.Data, etag, now, w.Key, w.Expect)
		if err != nil {
			return fmt.Errorf("update %s: %w", w.Key, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update %s: %w", w.Key, err)
		}
		if n == 0 {
			return checkExpect(w.Key, "", false, w.Expect)
		}
		return nil
	}
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

// Close closes the SQLite handle.
func (s *SQLite) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

var _ KV = (*SQLite)(nil)
