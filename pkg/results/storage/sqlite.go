package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"github.com/jneufeld/slushy/pkg/results"
)

// Driver names accepted by SQLiteConfig.Driver.
const (
	// DriverPure selects modernc.org/sqlite (no cgo).
	DriverPure = "sqlite"

	// DriverCgo selects github.com/mattn/go-sqlite3.
	DriverCgo = "sqlite3"
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// Driver is DriverPure or DriverCgo.
	// Default: DriverPure
	Driver string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 4
	MaxOpenConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/runs.db",
		Driver:       DriverPure,
		MaxOpenConns: 4,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements results.Storage using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage opens the database, applies connection pragmas and
// creates the schema.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if config.Driver == "" {
		config.Driver = DriverPure
	}

	logger := slog.Default().With("component", "results.storage.sqlite")

	dsn, err := buildDSN(config)
	if err != nil {
		return nil, results.NewStorageError("sqlite", "open", err)
	}

	if dir := filepath.Dir(config.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, results.NewStorageError("sqlite", "mkdir", err)
		}
	}

	db, err := sql.Open(config.Driver, dsn)
	if err != nil {
		return nil, results.NewStorageError("sqlite", "open", err)
	}
	if config.MaxOpenConns > 0 {
		db.SetMaxOpenConns(config.MaxOpenConns)
		db.SetMaxIdleConns(config.MaxOpenConns)
	}

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("SQLite storage initialized",
		"path", config.Path,
		"driver", config.Driver,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)

	return s, nil
}

// buildDSN encodes the pragmas as connection parameters so every pooled
// connection gets them. The two drivers spell these differently.
func buildDSN(config *SQLiteConfig) (string, error) {
	if config.Path == "" {
		return "", errors.New("database path is required")
	}

	busyMs := config.BusyTimeout.Milliseconds()
	params := url.Values{}

	switch config.Driver {
	case DriverPure:
		params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyMs))
		if config.WALMode {
			params.Add("_pragma", "journal_mode(WAL)")
		}
	case DriverCgo:
		params.Set("_busy_timeout", fmt.Sprintf("%d", busyMs))
		if config.WALMode {
			params.Set("_journal_mode", "WAL")
		}
	default:
		return "", fmt.Errorf("unknown sqlite driver %q", config.Driver)
	}

	return config.Path + "?" + params.Encode(), nil
}

func (s *SQLiteStorage) initialize() error {
	if _, err := s.db.Exec(Schema); err != nil {
		return results.NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return results.NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return results.NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return results.NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// Store inserts run.
func (s *SQLiteStorage) Store(ctx context.Context, run *results.Run) error {
	var errorVal any
	if run.Error != "" {
		errorVal = run.Error
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs ("+runColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		run.ID, run.Input, run.InputHash, run.DigitMode,
		run.Pairs, run.Documents, run.OrderedIndexSum, run.DecoderKey,
		int64(run.Duration), string(run.Status), errorVal, run.CreatedAt.UnixNano(),
	)
	if err != nil {
		return results.NewStorageError("sqlite", "store", err)
	}
	return nil
}

// Get returns the run with the given id.
func (s *SQLiteStorage) Get(ctx context.Context, id string) (*results.Run, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs WHERE id = ?", id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, results.ErrNotFound
	}
	if err != nil {
		return nil, results.NewStorageError("sqlite", "get", err)
	}
	return run, nil
}

// Query returns matching runs, newest first.
func (s *SQLiteStorage) Query(ctx context.Context, query *results.Query) ([]*results.Run, error) {
	where, args := buildWhereClause(query)

	sqlQuery := "SELECT " + runColumns + " FROM runs"
	if where != "" {
		sqlQuery += " WHERE " + where
	}
	sqlQuery += " ORDER BY created_at DESC, id DESC"

	if query != nil && (query.Limit > 0 || query.Offset > 0) {
		limit := -1
		if query.Limit > 0 {
			limit = query.Limit
		}
		sqlQuery += " LIMIT ? OFFSET ?"
		args = append(args, limit, query.Offset)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, results.NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	runs := []*results.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, results.NewStorageError("sqlite", "scan", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, results.NewStorageError("sqlite", "query", err)
	}

	return runs, nil
}

// Count returns the number of matching runs.
func (s *SQLiteStorage) Count(ctx context.Context, query *results.Query) (int64, error) {
	where, args := buildWhereClause(query)

	sqlQuery := "SELECT COUNT(*) FROM runs"
	if where != "" {
		sqlQuery += " WHERE " + where
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, results.NewStorageError("sqlite", "count", err)
	}
	return count, nil
}

// DeleteBefore removes runs created strictly before cutoff.
func (s *SQLiteStorage) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE created_at < ?", cutoff.UnixNano())
	if err != nil {
		return 0, results.NewStorageError("sqlite", "delete_before", err)
	}
	return rowsAffected(res, "delete_before")
}

// DeleteOldest removes all but the newest keep runs.
func (s *SQLiteStorage) DeleteOldest(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY created_at DESC, id DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, results.NewStorageError("sqlite", "delete_oldest", err)
	}
	return rowsAffected(res, "delete_oldest")
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return results.NewStorageError("sqlite", "close", err)
	}
	s.logger.Debug("SQLite storage closed")
	return nil
}

func rowsAffected(res sql.Result, op string) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, results.NewStorageError("sqlite", op, err)
	}
	return n, nil
}

// buildWhereClause returns the WHERE clause (without the keyword) and its
// arguments.
func buildWhereClause(query *results.Query) (string, []any) {
	if query == nil {
		return "", nil
	}

	var conditions []string
	var args []any

	if query.InputHash != "" {
		conditions = append(conditions, "input_hash = ?")
		args = append(args, query.InputHash)
	}
	if query.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, string(query.Status))
	}
	if query.Since != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, query.Since.UnixNano())
	}
	if query.Until != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, query.Until.UnixNano())
	}

	return strings.Join(conditions, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*results.Run, error) {
	var (
		run        results.Run
		durationNs int64
		status     string
		errorVal   sql.NullString
		createdAt  int64
	)

	err := row.Scan(
		&run.ID, &run.Input, &run.InputHash, &run.DigitMode,
		&run.Pairs, &run.Documents, &run.OrderedIndexSum, &run.DecoderKey,
		&durationNs, &status, &errorVal, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	run.Duration = time.Duration(durationNs)
	run.Status = results.Status(status)
	if errorVal.Valid {
		run.Error = errorVal.String
	}
	run.CreatedAt = time.Unix(0, createdAt).UTC()

	return &run, nil
}
