//go:build unit

package infra_test

import (
	"testing"

	"nest/internal/infra"
	"nest/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     []infra.RepositoryErrorKind
		wantKind infra.RepositoryErrorKind
		notFound bool
	}{
		{name: "no rows", err: pgx.ErrNoRows, wantKind: infra.KindNotFound, notFound: true},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, wantKind: infra.KindDuplicateKey},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, wantKind: infra.KindForeignKeyViolated},
		{name: "other failure", err: assert.AnError, wantKind: infra.KindDBFailure},
		{name: "explicit kind wins", err: assert.AnError, kind: []infra.RepositoryErrorKind{infra.KindNotFound}, wantKind: infra.KindNotFound, notFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := infra.WrapRepoErr("load order", tt.err, tt.kind...)

			assert.True(t, infra.IsKind(err, tt.wantKind))
			assert.Equal(t, tt.notFound, errs.Is(err, errs.ErrNotFound))
			assert.Contains(t, err.Error(), "load order")
		})
	}
}
