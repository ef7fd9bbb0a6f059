package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// keyAttempts bounds InsertNew when concurrent writers keep taking the
// generated key.
const keyAttempts = 5

// GenerateID returns a random key not present in kind's table at the time
// of the probe. A failed probe returns ErrGeneration and the caller must not
// persist the record.
func (s *Session) GenerateID(ctx context.Context, kind Kind) (string, error) {
	tb, err := kind.table()
	if err != nil {
		return "", err
	}
	if tb.key == "" {
		return "", fmt.Errorf("%w: %s has no key", ErrUnsupportedKind, kind)
	}
	probe := fmt.Sprintf("SELECT 1 FROM %s WHERE %s = ?", tb.name, tb.key)
	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("%w: %w", ErrGeneration, err)
		}
		candidate := uuid.NewString()
		keyProbes.WithLabelValues(kind.String()).Inc()

		rows, _, err := s.query(ctx, probe, candidate)
		if err != nil {
			s.log.Error("generate id failed", "kind", kind.String(), "err", err)
			return "", fmt.Errorf("%w: %s: %w", ErrGeneration, kind, err)
		}
		if len(rows) == 0 {
			return candidate, nil
		}
	}
}

// InsertNew generates a key, builds the row with it and inserts it. If
// another writer claimed the key between the probe and the insert, a new key
// is drawn.
func (s *Session) InsertNew(ctx context.Context, kind Kind, build func(key string) []any) (string, error) {
	tb, err := kind.table()
	if err != nil {
		return "", err
	}
	if tb.key == "" {
		return "", fmt.Errorf("%w: %s has no key", ErrUnsupportedKind, kind)
	}
	for range keyAttempts {
		key, err := s.GenerateID(ctx, kind)
		if err != nil {
			return "", err
		}
		fields := build(key)
		if len(fields) == 0 {
			return "", fmt.Errorf("%w: insert %s", ErrEmptyPayload, kind)
		}
		if len(fields) != len(tb.columns) {
			return "", fmt.Errorf("%w: insert %s wants %d, got %d", ErrArity, kind, len(tb.columns), len(fields))
		}

		q := fmt.Sprintf("%s ON CONFLICT (%s) DO NOTHING", tb.insertSQL(), tb.key)
		res, err := s.exec(ctx, q, fields...)
		observe(kind, "insert", err)
		if err != nil {
			s.log.Error("insert failed", "kind", kind.String(), "err", err)
			if isUniqueViolation(err) {
				return "", fmt.Errorf("insert %s: %w: %w", kind, ErrDuplicate, err)
			}
			return "", fmt.Errorf("insert %s: %w", kind, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			s.log.Warn("generated key taken, retrying", "kind", kind.String(), "key", key)
			continue
		}
		return key, nil
	}
	return "", fmt.Errorf("%w: %s: key taken %d times", ErrGeneration, kind, keyAttempts)
}
