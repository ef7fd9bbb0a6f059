// Package store maps the six entity kinds onto their tables.
//
// Every Store call opens its own single-connection handle, runs and closes
// it. Read failures are logged and reported as absent or empty results;
// write failures are logged and returned.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/infra/db"
)

// Executor is implemented by *Store (one connection per call) and *Session
// (one connection or transaction shared by several calls).
type Executor interface {
	Insert(ctx context.Context, kind Kind, fields ...any) error
	InsertNew(ctx context.Context, kind Kind, build func(key string) []any) (string, error)
	Update(ctx context.Context, kind Kind, fields ...any) error
	Delete(ctx context.Context, kind Kind, key string) error
	FetchOne(ctx context.Context, kind Kind, value any, by Lookup) (Row, bool)
	FetchAll(ctx context.Context, kind Kind) []Row
	FetchAllWithColumns(ctx context.Context, kind Kind) ([]Row, []string)
	Query(ctx context.Context, query string, args ...any) ([]Row, []string)
	Exec(ctx context.Context, query string, args ...any) error
	GenerateID(ctx context.Context, kind Kind) (string, error)
}

type Store struct {
	driver string
	dsn    string
	log    *slog.Logger
}

func New(driver, dsn string, log *slog.Logger) *Store {
	return &Store{driver: driver, dsn: dsn, log: log.With("component", "store")}
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Session runs mapper operations over one connection or transaction.
type Session struct {
	q      querier
	driver string
	log    *slog.Logger
}

func (s *Store) open(ctx context.Context) (*sql.DB, error) {
	return db.Open(ctx, s.driver, s.dsn)
}

func (s *Store) session(q querier) *Session {
	return &Session{q: q, driver: s.driver, log: s.log}
}

// Ping checks the store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.open(ctx)
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// write opens a connection for fn and returns fn's error.
func (s *Store) write(ctx context.Context, fn func(*Session) error) error {
	sqlDB, err := s.open(ctx)
	if err != nil {
		s.log.Error("open connection failed", "err", err)
		return fmt.Errorf("store: open: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()
	return fn(s.session(sqlDB))
}

// read opens a connection for fn; a failed open is logged and fn is skipped.
func (s *Store) read(ctx context.Context, fn func(*Session)) {
	sqlDB, err := s.open(ctx)
	if err != nil {
		s.log.Error("open connection failed", "err", err)
		return
	}
	defer func() { _ = sqlDB.Close() }()
	fn(s.session(sqlDB))
}

// WithTx runs fn inside one transaction, committing when fn returns nil.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Session) error) error {
	return s.write(ctx, func(sess *Session) error {
		sqlDB := sess.q.(*sql.DB)
		tx, err := sqlDB.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("store: begin: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if err := fn(s.session(tx)); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			s.log.Error("commit failed", "err", err)
			return fmt.Errorf("store: commit: %w", err)
		}
		return nil
	})
}

func (s *Store) Insert(ctx context.Context, kind Kind, fields ...any) error {
	return s.write(ctx, func(sess *Session) error { return sess.Insert(ctx, kind, fields...) })
}

func (s *Store) InsertNew(ctx context.Context, kind Kind, build func(key string) []any) (key string, err error) {
	err = s.write(ctx, func(sess *Session) error {
		key, err = sess.InsertNew(ctx, kind, build)
		return err
	})
	return key, err
}

func (s *Store) Update(ctx context.Context, kind Kind, fields ...any) error {
	return s.write(ctx, func(sess *Session) error { return sess.Update(ctx, kind, fields...) })
}

func (s *Store) Delete(ctx context.Context, kind Kind, key string) error {
	return s.write(ctx, func(sess *Session) error { return sess.Delete(ctx, kind, key) })
}

func (s *Store) Exec(ctx context.Context, query string, args ...any) error {
	return s.write(ctx, func(sess *Session) error { return sess.Exec(ctx, query, args...) })
}

func (s *Store) GenerateID(ctx context.Context, kind Kind) (key string, err error) {
	err = s.write(ctx, func(sess *Session) error {
		key, err = sess.GenerateID(ctx, kind)
		return err
	})
	return key, err
}

func (s *Store) FetchOne(ctx context.Context, kind Kind, value any, by Lookup) (row Row, ok bool) {
	s.read(ctx, func(sess *Session) { row, ok = sess.FetchOne(ctx, kind, value, by) })
	return row, ok
}

func (s *Store) FetchAll(ctx context.Context, kind Kind) (rows []Row) {
	s.read(ctx, func(sess *Session) { rows = sess.FetchAll(ctx, kind) })
	return rows
}

func (s *Store) FetchAllWithColumns(ctx context.Context, kind Kind) (rows []Row, cols []string) {
	s.read(ctx, func(sess *Session) { rows, cols = sess.FetchAllWithColumns(ctx, kind) })
	return rows, cols
}

func (s *Store) Query(ctx context.Context, query string, args ...any) (rows []Row, cols []string) {
	s.read(ctx, func(sess *Session) { rows, cols = sess.Query(ctx, query, args...) })
	return rows, cols
}

// rebind rewrites ? placeholders as $n for postgres.
func (s *Session) rebind(query string) string {
	if s.driver != db.DriverPostgres {
		return query
	}
	var (
		b strings.Builder
		n int
	)
	b.Grow(len(query) + 8)
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Session) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.q.ExecContext(ctx, s.rebind(query), args...)
}

func (s *Session) query(ctx context.Context, query string, args ...any) ([]Row, []string, error) {
	rows, err := s.q.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanRows(rows)
}

// Insert maps fields positionally onto kind's columns.
func (s *Session) Insert(ctx context.Context, kind Kind, fields ...any) error {
	tb, err := kind.table()
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return fmt.Errorf("%w: insert %s", ErrEmptyPayload, kind)
	}
	if len(fields) != len(tb.columns) {
		return fmt.Errorf("%w: insert %s wants %d, got %d", ErrArity, kind, len(tb.columns), len(fields))
	}
	_, err = s.exec(ctx, tb.insertSQL(), fields...)
	observe(kind, "insert", err)
	if err != nil {
		s.log.Error("insert failed", "kind", kind.String(), "err", err)
		if isUniqueViolation(err) {
			return fmt.Errorf("insert %s: %w: %w", kind, ErrDuplicate, err)
		}
		return fmt.Errorf("insert %s: %w", kind, err)
	}
	return nil
}

// Update runs kind's UPDATE; the last field is the key.
func (s *Session) Update(ctx context.Context, kind Kind, fields ...any) error {
	tb, err := kind.table()
	if err != nil {
		return err
	}
	if tb.update == "" {
		return fmt.Errorf("%w: %s has no update", ErrUnsupportedKind, kind)
	}
	if len(fields) == 0 {
		return fmt.Errorf("%w: update %s", ErrEmptyPayload, kind)
	}
	if want := strings.Count(tb.update, "?"); len(fields) != want {
		return fmt.Errorf("%w: update %s wants %d, got %d", ErrArity, kind, want, len(fields))
	}
	_, err = s.exec(ctx, tb.update, fields...)
	observe(kind, "update", err)
	if err != nil {
		s.log.Error("update failed", "kind", kind.String(), "key", fields[len(fields)-1], "err", err)
		if isUniqueViolation(err) {
			return fmt.Errorf("update %s: %w: %w", kind, ErrDuplicate, err)
		}
		return fmt.Errorf("update %s: %w", kind, err)
	}
	return nil
}

// Delete removes the row with the given key; dependants cascade.
func (s *Session) Delete(ctx context.Context, kind Kind, key string) error {
	tb, err := kind.table()
	if err != nil {
		return err
	}
	if tb.key == "" {
		return fmt.Errorf("%w: %s has no key", ErrUnsupportedKind, kind)
	}
	_, err = s.exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s = ?", tb.name, tb.key), key)
	observe(kind, "delete", err)
	if err != nil {
		s.log.Error("delete failed", "kind", kind.String(), "key", key, "err", err)
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	return nil
}

// FetchOne returns the first row matching value on the lookup column.
func (s *Session) FetchOne(ctx context.Context, kind Kind, value any, by Lookup) (Row, bool) {
	tb, err := kind.table()
	if err != nil {
		s.log.Error("fetch one failed", "err", err)
		return nil, false
	}
	where, ok := tb.lookups[by]
	if !ok {
		s.log.Error("fetch one failed", "kind", kind.String(), "err", fmt.Sprintf("unsupported lookup %s", by))
		return nil, false
	}
	args := make([]any, strings.Count(where, "?"))
	for i := range args {
		args[i] = value
	}
	rows, _, err := s.query(ctx, tb.selectSQL()+" WHERE "+where+" LIMIT 1", args...)
	observe(kind, "fetch_one", err)
	if err != nil {
		s.log.Error("fetch one failed", "kind", kind.String(), "lookup", by.String(), "err", err)
		return nil, false
	}
	if len(rows) == 0 {
		return nil, false
	}
	return rows[0], true
}

func (s *Session) FetchAll(ctx context.Context, kind Kind) []Row {
	rows, _ := s.FetchAllWithColumns(ctx, kind)
	return rows
}

// FetchAllWithColumns scans the whole table and returns its column names
// alongside the rows.
func (s *Session) FetchAllWithColumns(ctx context.Context, kind Kind) ([]Row, []string) {
	tb, err := kind.table()
	if err != nil {
		s.log.Error("fetch all failed", "err", err)
		return nil, nil
	}
	rows, cols, err := s.query(ctx, tb.selectSQL())
	observe(kind, "fetch_all", err)
	if err != nil {
		s.log.Error("fetch all failed", "kind", kind.String(), "err", err)
		return nil, nil
	}
	if cols == nil {
		cols = kind.Columns()
	}
	return rows, cols
}

// Query runs a hand-written read; failures are logged and yield no rows.
func (s *Session) Query(ctx context.Context, query string, args ...any) ([]Row, []string) {
	rows, cols, err := s.query(ctx, query, args...)
	if err != nil {
		s.log.Error("query failed", "err", err)
		return nil, nil
	}
	return rows, cols
}

// Exec runs a hand-written write.
func (s *Session) Exec(ctx context.Context, query string, args ...any) error {
	if _, err := s.exec(ctx, query, args...); err != nil {
		s.log.Error("exec failed", "err", err)
		return fmt.Errorf("store: exec: %w", err)
	}
	return nil
}
