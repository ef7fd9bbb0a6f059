package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrUnsupportedKind = errors.New("store: unsupported kind")
	ErrEmptyPayload    = errors.New("store: empty payload")
	ErrArity           = errors.New("store: field count does not match columns")
	ErrGeneration      = errors.New("store: key generation failed")
	ErrDuplicate       = errors.New("store: duplicate value")
)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique || se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		return pe.Code == pgUniqueViolation
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
