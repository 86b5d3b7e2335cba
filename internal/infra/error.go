package infra

import (
	"errors"

	"storent/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

func WrapRepoErr(kind RepositoryErrorKind, msg string, err error) error {
	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return RepositoryError{Kind: kind, msg: msg, err: err}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Infrastructure-specific error kinds
const (
	NotFound           RepositoryErrorKind = "NOT_FOUND"
	DBFailure          RepositoryErrorKind = "DB_FAILURE"
	DuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	ForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	Conflict           RepositoryErrorKind = "CONFLICT"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

// WrapDBErr classifies a driver error into a repository kind before wrapping.
func WrapDBErr(msg string, err error) error {
	return WrapRepoErr(classify(err), msg, err)
}

func classify(err error) RepositoryErrorKind {
	if errors.Is(err, pgx.ErrNoRows) {
		return NotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeUniqueViolation:
			return DuplicateKey
		case pgErrCodeForeignKeyViolation:
			return ForeignKeyViolated
		}
	}
	return DBFailure
}
