package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3" // dialect import
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // driver import

	"afisha/internal/ports/output"
)

var (
	_ output.ClientStateStorage = (*SQLite)(nil)
	_ output.ChangeWatcher      = (*SQLite)(nil)
)

const (
	dialectSQLite    = "sqlite3"
	tableClientState = "client_state"
	colKey           = "key"
	colValue         = "value"
	colOrigin        = "origin"
	colUpdatedAt     = "updated_at"

	createClientStateTable = `CREATE TABLE IF NOT EXISTS client_state (
	key        TEXT PRIMARY KEY,
	value      TEXT,
	origin     TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`
)

// DefaultPollInterval is the SQLite change watcher period.
const DefaultPollInterval = 2 * time.Second

// SQLite stores the client state in a local database file. Deleted keys are
// kept as NULL tombstones so that watchers on other handles see the deletion.
type SQLite struct {
	db           *sqlx.DB
	dialect      goqu.DialectWrapper
	origin       string
	pollInterval time.Duration
	logger       *slog.Logger
}

type changedRow struct {
	Key       string `db:"key"`
	UpdatedAt int64  `db:"updated_at"`
}

// OpenSQLite opens (and creates when missing) the database at path.
func OpenSQLite(ctx context.Context, path string, pollInterval time.Duration, logger *slog.Logger) (*SQLite, error) {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, createClientStateTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create client_state table: %w", err)
	}
	return &SQLite{
		db:           db,
		dialect:      goqu.Dialect(dialectSQLite),
		origin:       uuid.NewString(),
		pollInterval: pollInterval,
		logger:       logger,
	}, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := s.dialect.From(tableClientState).
		Select(colValue).
		Where(goqu.Ex{colKey: key}, goqu.C(colValue).IsNotNull()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return "", false, fmt.Errorf("build select query: %w", err)
	}

	var value string
	if err := s.db.GetContext(ctx, &value, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLite) Set(ctx context.Context, key, value string) error {
	return s.write(ctx, key, sql.NullString{String: value, Valid: true})
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	return s.write(ctx, key, sql.NullString{})
}

func (s *SQLite) write(ctx context.Context, key string, value sql.NullString) error {
	deleteQuery, deleteArgs, err := s.dialect.Delete(tableClientState).
		Where(goqu.Ex{colKey: key}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}
	insertQuery, insertArgs, err := s.dialect.Insert(tableClientState).
		Rows(goqu.Record{
			colKey:       key,
			colValue:     value,
			colOrigin:    s.origin,
			colUpdatedAt: time.Now().UnixNano(),
		}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %q: %w", key, err)
	}
	return nil
}

// Watch polls the table for rows written by other handles.
func (s *SQLite) Watch(ctx context.Context, onChange func(key string)) error {
	last, err := s.lastUpdate(ctx)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		rows, err := s.changedSince(ctx, last)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.logger.Warn("client state poll failed", "error", err)
			continue
		}
		for _, row := range rows {
			if row.UpdatedAt > last {
				last = row.UpdatedAt
			}
			onChange(row.Key)
		}
	}
}

func (s *SQLite) lastUpdate(ctx context.Context) (int64, error) {
	query, args, err := s.dialect.From(tableClientState).
		Select(goqu.COALESCE(goqu.MAX(colUpdatedAt), 0)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build max query: %w", err)
	}
	var last int64
	if err := s.db.GetContext(ctx, &last, query, args...); err != nil {
		return 0, fmt.Errorf("read last update: %w", err)
	}
	return last, nil
}

func (s *SQLite) changedSince(ctx context.Context, since int64) ([]changedRow, error) {
	query, args, err := s.dialect.From(tableClientState).
		Select(colKey, colUpdatedAt).
		Where(goqu.C(colUpdatedAt).Gt(since), goqu.C(colOrigin).Neq(s.origin)).
		Order(goqu.C(colUpdatedAt).Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build changes query: %w", err)
	}
	var rows []changedRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("read changes: %w", err)
	}
	return rows, nil
}
