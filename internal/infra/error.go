package infra

import (
	"nest/internal/pkg/errs"
	"nest/internal/pkg/pgconv"
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

// WrapRepoErr classifies a storage failure. Without an explicit kind, pgx
// constraint errors map to their kinds and everything else is DB_FAILURE.
func WrapRepoErr(msg string, err error, kind ...RepositoryErrorKind) error {
	k := KindDBFailure
	switch {
	case len(kind) > 0:
		k = kind[0]
	case pgconv.IsNoRows(err):
		k = KindNotFound
	case pgconv.IsUniqueViolation(err):
		k = KindDuplicateKey
	case pgconv.IsForeignKeyViolation(err):
		k = KindForeignKeyViolated
	}

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	wrapped := RepositoryError{Kind: k, msg: msg, err: err}
	if k == KindNotFound {
		return errs.Mark(wrapped, errs.ErrNotFound)
	}
	return errs.Mark(wrapped, errs.ErrDatabaseOperationFailed)
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errs.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
)
